package dto

type CreateUserRequest struct {
	UserName     string `json:"user_name" validate:"required,max=255"`
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserUsername string `json:"user_username" validate:"required,max=100"`
	UserPassword string `json:"user_password" validate:"required,min=8"`
	UserRole     string `json:"user_role" validate:"required,oneof=admin guru siswa"`

	// Opsional; siswa langsung didaftarkan ke kelas ini
	KelasCid string `json:"kelas_cid,omitempty"`
}

type UpdateUserRequest struct {
	UserID       uint   `json:"user_id" validate:"required"`
	UserName     string `json:"user_name" validate:"required,max=255"`
	UserUsername string `json:"user_username" validate:"required,max=100"`
	UserRole     string `json:"user_role" validate:"required,oneof=admin guru siswa"`
	KelasCid     string `json:"kelas_cid,omitempty"`
}

// Item list admin: user + kelas siswa hasil left join enrollments.
type UserListItem struct {
	UserID       uint    `gorm:"column:user_id" json:"user_id"`
	UserName     string  `gorm:"column:user_name" json:"user_name"`
	UserEmail    string  `gorm:"column:user_email" json:"user_email"`
	UserUsername *string `gorm:"column:user_username" json:"user_username,omitempty"`
	UserRole     string  `gorm:"column:user_role" json:"user_role"`
	KelasCid     *string `gorm:"column:kelas_cid" json:"kelas_cid,omitempty"`
}
