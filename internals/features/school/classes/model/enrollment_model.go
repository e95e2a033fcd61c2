package model

// Join many-to-many siswa ↔ kelas. Ikut terhapus saat kelas atau user dihapus.
type EnrollmentModel struct {
	EnrollmentID           uint   `gorm:"primaryKey;autoIncrement;column:enrollment_id" json:"enrollment_id"`
	EnrollmentKelasCid     string `gorm:"type:varchar(64);not null;index;column:enrollment_kelas_cid" json:"enrollment_kelas_cid"`
	EnrollmentStudentEmail string `gorm:"type:varchar(255);not null;index;column:enrollment_student_email" json:"enrollment_student_email"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
