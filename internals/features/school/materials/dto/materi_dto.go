package dto

import (
	"time"

	materiModel "sekolahku_backend/internals/features/school/materials/model"
)

type CreateMateriRequest struct {
	MateriKelasCid    string  `json:"materi_kelas_cid" validate:"required"`
	MateriTitle       string  `json:"materi_title" validate:"required,max=255"`
	MateriDescription *string `json:"materi_description,omitempty"`
	MateriFileURL     *string `json:"materi_file_url,omitempty"`
}

func (r CreateMateriRequest) ToModel() materiModel.MateriModel {
	return materiModel.MateriModel{
		MateriKelasCid:    r.MateriKelasCid,
		MateriTitle:       r.MateriTitle,
		MateriDescription: r.MateriDescription,
		MateriFileURL:     r.MateriFileURL,
	}
}

type UpdateMateriRequest struct {
	MateriID          uint    `json:"materi_id" validate:"required"`
	MateriKelasCid    string  `json:"materi_kelas_cid" validate:"required"`
	MateriTitle       string  `json:"materi_title" validate:"required,max=255"`
	MateriDescription *string `json:"materi_description,omitempty"`
	MateriFileURL     *string `json:"materi_file_url,omitempty"`
}

// Item list dengan nama kelas hasil join.
type MateriListItem struct {
	MateriID          uint      `gorm:"column:materi_id" json:"materi_id"`
	MateriTitle       string    `gorm:"column:materi_title" json:"materi_title"`
	MateriDescription *string   `gorm:"column:materi_description" json:"materi_description,omitempty"`
	MateriFileURL     *string   `gorm:"column:materi_file_url" json:"materi_file_url,omitempty"`
	MateriKelasCid    string    `gorm:"column:materi_kelas_cid" json:"materi_kelas_cid"`
	MateriCreatedAt   time.Time `gorm:"column:materi_created_at" json:"materi_created_at"`
	KelasName         *string   `gorm:"column:kelas_name" json:"kelas_name,omitempty"`
}
