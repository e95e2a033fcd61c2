package dto

import "time"

// Payload kuis hasil generate AI, disimpan apa adanya di kolom JSONB dan
// immutable setelah tersimpan.
type QuizPayload struct {
	Quiz QuizContent `json:"quiz"`
}

type QuizContent struct {
	Title      string         `json:"title"`
	Difficulty string         `json:"difficulty"`
	Questions  []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	QuestionText string `json:"question_text"`
	Options      []string `json:"options"`

	// Teks jawaban benar, sama persis dengan salah satu Options
	CorrectAnswer string `json:"correct_answer"`
}

type GenerateQuizRequest struct {
	QuizKelasCid string `json:"quiz_kelas_cid" validate:"required"`
	Topic        string `json:"topic" validate:"required,max=255"`
	NumQuestions int    `json:"num_questions" validate:"required,min=1,max=30"`
	Difficulty   string `json:"difficulty" validate:"required,oneof=Beginner Moderate Advanced"`
}

type QuizListItem struct {
	QuizID        uint      `gorm:"column:quiz_id" json:"quiz_id"`
	QuizTitle     string    `gorm:"column:quiz_title" json:"quiz_title"`
	QuizKelasCid  string    `gorm:"column:quiz_kelas_cid" json:"quiz_kelas_cid"`
	QuizCreatedAt time.Time `gorm:"column:quiz_created_at" json:"quiz_created_at"`
	KelasName     *string   `gorm:"column:kelas_name" json:"kelas_name,omitempty"`
}

// Jawaban siswa: index pertanyaan → teks pilihan. Semua pertanyaan wajib
// terjawab; skor dihitung server-side.
type CreateQuizSubmissionRequest struct {
	QuizSubmissionQuizID uint           `json:"quiz_submission_quiz_id" validate:"required"`
	Answers              map[int]string `json:"answers" validate:"required"`
}
