package model

import "time"

type MateriModel struct {
	MateriID          uint    `gorm:"primaryKey;autoIncrement;column:materi_id" json:"materi_id"`
	MateriTitle       string  `gorm:"type:varchar(255);not null;column:materi_title" json:"materi_title"`
	MateriDescription *string `gorm:"type:text;column:materi_description" json:"materi_description,omitempty"`
	MateriFileURL     *string `gorm:"type:varchar(512);column:materi_file_url" json:"materi_file_url,omitempty"`

	// Kelas pemilik; ikut terhapus saat kelas dihapus
	MateriKelasCid string `gorm:"type:varchar(64);not null;index;column:materi_kelas_cid" json:"materi_kelas_cid"`

	MateriCreatedAt time.Time `gorm:"not null;autoCreateTime;column:materi_created_at" json:"materi_created_at"`
}

func (MateriModel) TableName() string { return "materi" }
