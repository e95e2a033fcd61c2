package model

import (
	"time"

	"gorm.io/datatypes"
)

// Konten kuis dibuat sekali oleh AI lalu immutable.
type QuizModel struct {
	QuizID uint `gorm:"primaryKey;autoIncrement;column:quiz_id" json:"quiz_id"`

	QuizKelasCid string `gorm:"type:varchar(64);not null;index;column:quiz_kelas_cid" json:"quiz_kelas_cid"`

	QuizTitle   string         `gorm:"type:varchar(255);not null;column:quiz_title" json:"quiz_title"`
	QuizPayload datatypes.JSON `gorm:"type:jsonb;column:quiz_payload" json:"quiz_payload,omitempty"`

	QuizCreatedAt time.Time `gorm:"not null;autoCreateTime;column:quiz_created_at" json:"quiz_created_at"`
}

func (QuizModel) TableName() string { return "quizzes" }
