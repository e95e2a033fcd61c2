package model

import "time"

// Satu siswa maksimal satu attempt per kuis (uq_quiz_submissions_quiz_student).
// Skor dihitung server-side, bukan dari klien.
type QuizSubmissionModel struct {
	QuizSubmissionID uint `gorm:"primaryKey;autoIncrement;column:quiz_submission_id" json:"quiz_submission_id"`

	QuizSubmissionQuizID       uint   `gorm:"not null;uniqueIndex:uq_quiz_submissions_quiz_student;column:quiz_submission_quiz_id" json:"quiz_submission_quiz_id"`
	QuizSubmissionStudentEmail string `gorm:"type:varchar(255);not null;uniqueIndex:uq_quiz_submissions_quiz_student;column:quiz_submission_student_email" json:"quiz_submission_student_email"`

	QuizSubmissionScore       int       `gorm:"not null;column:quiz_submission_score" json:"quiz_submission_score"`
	QuizSubmissionSubmittedAt time.Time `gorm:"not null;autoCreateTime;column:quiz_submission_submitted_at" json:"quiz_submission_submitted_at"`
}

func (QuizSubmissionModel) TableName() string { return "quiz_submissions" }
