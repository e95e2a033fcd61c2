package model

// UserRole mengikuti CHECK: 'admin','guru','siswa'
const (
	RoleAdmin = "admin"
	RoleGuru  = "guru"
	RoleSiswa = "siswa"
)

type UserModel struct {
	UserID       uint    `gorm:"primaryKey;autoIncrement;column:user_id" json:"user_id"`
	UserName     string  `gorm:"type:varchar(255);not null;column:user_name" json:"user_name"`
	UserEmail    string  `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email;column:user_email" json:"user_email"`
	UserUsername *string `gorm:"type:varchar(100);uniqueIndex:uq_users_username;column:user_username" json:"user_username,omitempty"`

	// Hanya admin yang boleh mengubah role
	UserRole string `gorm:"type:varchar(50);not null;default:'siswa';column:user_role" json:"user_role"`
}

func (UserModel) TableName() string { return "users" }
