package dto

import (
	classModel "sekolahku_backend/internals/features/school/classes/model"
)

type CreateKelasRequest struct {
	KelasName        string  `json:"kelas_name" validate:"required,max=255"`
	KelasDescription *string `json:"kelas_description,omitempty"`
}

func (r CreateKelasRequest) ToModel(cid, teacherEmail string) classModel.KelasModel {
	return classModel.KelasModel{
		KelasCid:          cid,
		KelasName:         r.KelasName,
		KelasDescription:  r.KelasDescription,
		KelasTeacherEmail: teacherEmail,
	}
}

type UpdateKelasRequest struct {
	KelasCid         string  `json:"kelas_cid" validate:"required"`
	KelasName        string  `json:"kelas_name" validate:"required,max=255"`
	KelasDescription *string `json:"kelas_description,omitempty"`
}
