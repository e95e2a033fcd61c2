package service

import (
	"gorm.io/gorm"

	"sekolahku_backend/internals/policy"
)

// KelasScope: kelas mana saja yang boleh dilihat aktor.
// All=true hanya untuk admin; selain itu isi Cids yang menentukan
// (Cids kosong ⇒ setiap listing WAJIB mengembalikan list kosong,
// bukan error dan bukan seluruh tabel).
type KelasScope struct {
	All  bool
	Cids []string
}

func (s KelasScope) Empty() bool { return !s.All && len(s.Cids) == 0 }

// VisibleKelas:
// admin → semua; guru → kelas miliknya; siswa → kelas yang diikuti;
// role lain → scope kosong.
func VisibleKelas(db *gorm.DB, role policy.Role, email string) (KelasScope, error) {
	switch role {
	case policy.RoleAdmin:
		return KelasScope{All: true}, nil
	case policy.RoleGuru:
		cids, err := ClassesOwnedBy(db, email)
		return KelasScope{Cids: cids}, err
	case policy.RoleSiswa:
		cids, err := ClassesEnrolledBy(db, email)
		return KelasScope{Cids: cids}, err
	default:
		return KelasScope{}, nil
	}
}

// ApplyScope menempelkan filter scope ke query list (kolom cid milik tabel
// resource, mis. "materi_kelas_cid").
func ApplyScope(q *gorm.DB, scope KelasScope, cidColumn string) *gorm.DB {
	if scope.All {
		return q
	}
	return q.Where(cidColumn+" IN ?", scope.Cids)
}
