package model

import "time"

type TaskModel struct {
	TaskID uint `gorm:"primaryKey;autoIncrement;column:task_id" json:"task_id"`

	TaskKelasCid string `gorm:"type:varchar(64);not null;index;column:task_kelas_cid" json:"task_kelas_cid"`

	TaskTitle       string  `gorm:"type:varchar(255);not null;column:task_title" json:"task_title"`
	TaskDescription *string `gorm:"type:text;column:task_description" json:"task_description,omitempty"`
	TaskFileURL     *string `gorm:"type:varchar(512);column:task_file_url" json:"task_file_url,omitempty"`

	TaskCreatedAt time.Time  `gorm:"not null;autoCreateTime;column:task_created_at" json:"task_created_at"`
	TaskDueDate   *time.Time `gorm:"column:task_due_date" json:"task_due_date,omitempty"`
}

func (TaskModel) TableName() string { return "tasks" }
