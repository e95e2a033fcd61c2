package dto

type CreateSubmissionRequest struct {
	SubmissionTaskID  uint   `json:"submission_task_id" validate:"required"`
	SubmissionFileURL string `json:"submission_file_url" validate:"required,max=512"`
}

type GradeSubmissionRequest struct {
	SubmissionID    uint `json:"submission_id" validate:"required"`
	SubmissionGrade *int `json:"submission_grade" validate:"required"`
}
