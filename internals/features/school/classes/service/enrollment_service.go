package service

import (
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/model"
)

// Enrollment Resolver: pure lookup, tidak pernah error saat aktor tidak
// punya kelas — hasil kosong berarti list kosong, bukan error path.

// ClassesOwnedBy: cid semua kelas milik guru tsb.
func ClassesOwnedBy(db *gorm.DB, teacherEmail string) ([]string, error) {
	var cids []string
	err := db.Model(&classModel.KelasModel{}).
		Where("kelas_teacher_email = ?", teacherEmail).
		Pluck("kelas_cid", &cids).Error
	return cids, err
}

// ClassesEnrolledBy: cid semua kelas yang diikuti siswa tsb.
func ClassesEnrolledBy(db *gorm.DB, studentEmail string) ([]string, error) {
	var cids []string
	err := db.Model(&classModel.EnrollmentModel{}).
		Where("enrollment_student_email = ?", studentEmail).
		Pluck("enrollment_kelas_cid", &cids).Error
	return cids, err
}
