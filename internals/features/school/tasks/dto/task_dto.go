package dto

import (
	"time"

	taskModel "sekolahku_backend/internals/features/school/tasks/model"
)

type CreateTaskRequest struct {
	TaskKelasCid    string     `json:"task_kelas_cid" validate:"required"`
	TaskTitle       string     `json:"task_title" validate:"required,max=255"`
	TaskDescription *string    `json:"task_description,omitempty"`
	TaskFileURL     *string    `json:"task_file_url,omitempty"`
	TaskDueDate     *time.Time `json:"task_due_date,omitempty"`
}

func (r CreateTaskRequest) ToModel() taskModel.TaskModel {
	return taskModel.TaskModel{
		TaskKelasCid:    r.TaskKelasCid,
		TaskTitle:       r.TaskTitle,
		TaskDescription: r.TaskDescription,
		TaskFileURL:     r.TaskFileURL,
		TaskDueDate:     r.TaskDueDate,
	}
}

type UpdateTaskRequest struct {
	TaskID          uint       `json:"task_id" validate:"required"`
	TaskKelasCid    string     `json:"task_kelas_cid" validate:"required"`
	TaskTitle       string     `json:"task_title" validate:"required,max=255"`
	TaskDescription *string    `json:"task_description,omitempty"`
	TaskFileURL     *string    `json:"task_file_url,omitempty"`
	TaskDueDate     *time.Time `json:"task_due_date,omitempty"`
}

type TaskListItem struct {
	TaskID          uint       `gorm:"column:task_id" json:"task_id"`
	TaskKelasCid    string     `gorm:"column:task_kelas_cid" json:"task_kelas_cid"`
	TaskTitle       string     `gorm:"column:task_title" json:"task_title"`
	TaskDescription *string    `gorm:"column:task_description" json:"task_description,omitempty"`
	TaskFileURL     *string    `gorm:"column:task_file_url" json:"task_file_url,omitempty"`
	TaskCreatedAt   time.Time  `gorm:"column:task_created_at" json:"task_created_at"`
	TaskDueDate     *time.Time `gorm:"column:task_due_date" json:"task_due_date,omitempty"`
	KelasName       *string    `gorm:"column:kelas_name" json:"kelas_name,omitempty"`
}
