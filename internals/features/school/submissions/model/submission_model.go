package model

import "time"

// Satu siswa maksimal satu submission per tugas; dijaga unique index
// uq_submissions_task_student selain pre-check di controller.
type SubmissionModel struct {
	SubmissionID uint `gorm:"primaryKey;autoIncrement;column:submission_id" json:"submission_id"`

	SubmissionTaskID       uint   `gorm:"not null;uniqueIndex:uq_submissions_task_student;column:submission_task_id" json:"submission_task_id"`
	SubmissionStudentEmail string `gorm:"type:varchar(255);not null;uniqueIndex:uq_submissions_task_student;column:submission_student_email" json:"submission_student_email"`

	SubmissionFileURL     string    `gorm:"type:varchar(512);not null;column:submission_file_url" json:"submission_file_url"`
	SubmissionSubmittedAt time.Time `gorm:"not null;autoCreateTime;column:submission_submitted_at" json:"submission_submitted_at"`

	// NULL = belum dinilai; guru/admin boleh menimpa nilai yang sudah ada
	SubmissionGrade *int `gorm:"column:submission_grade" json:"submission_grade,omitempty"`
}

func (SubmissionModel) TableName() string { return "submissions" }
