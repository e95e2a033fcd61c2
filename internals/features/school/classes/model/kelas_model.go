package model

type KelasModel struct {
	KelasID uint `gorm:"primaryKey;autoIncrement;column:kelas_id" json:"kelas_id"`

	// Identifier publik (UUID string) yang direferensikan materi/tugas/kuis
	KelasCid string `gorm:"type:varchar(64);not null;uniqueIndex:uq_kelas_cid;column:kelas_cid" json:"kelas_cid"`

	KelasName        string  `gorm:"type:varchar(255);not null;column:kelas_name" json:"kelas_name"`
	KelasDescription *string `gorm:"type:text;column:kelas_description" json:"kelas_description,omitempty"`

	// Pemilik kelas; FK ke users.user_email
	KelasTeacherEmail string `gorm:"type:varchar(255);not null;index;column:kelas_teacher_email" json:"kelas_teacher_email"`
}

func (KelasModel) TableName() string { return "kelas" }
