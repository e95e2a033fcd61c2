package helper

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// IsUniqueViolation: cek pelanggaran unique Postgres (SQLSTATE 23505).
// Fallback string-match supaya tetap jalan di driver lain (sqlite saat test).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}

// UniqueViolationConstraint mengembalikan nama constraint/kolom yang bentrok
// ("" kalau tidak bisa ditentukan). Dipakai untuk membedakan email vs username
// pada pesan 409.
func UniqueViolationConstraint(err error) string {
	if err == nil {
		return ""
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return pqErr.Constraint
	}
	s := strings.ToLower(err.Error())
	for _, name := range []string{
		"uq_users_email",
		"uq_users_username",
		"uq_kelas_cid",
		"uq_submissions_task_student",
		"uq_quiz_submissions_quiz_student",
	} {
		if strings.Contains(s, name) {
			return name
		}
	}
	// sqlite menyebut kolomnya langsung, bukan nama constraint
	switch {
	case strings.Contains(s, "user_email"):
		return "uq_users_email"
	case strings.Contains(s, "user_username"):
		return "uq_users_username"
	}
	return ""
}
