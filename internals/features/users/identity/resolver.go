package identity

import (
	"errors"

	"gorm.io/gorm"

	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/policy"
)

// ResolveUser memetakan email identitas eksternal ke baris user lokal.
// Baris tidak ada ⇒ (nil, nil): caller diperlakukan sebagai tak dikenal,
// BUKAN error. Ini fallback yang dipakai semua access check.
func ResolveUser(db *gorm.DB, email string) (*userModel.UserModel, error) {
	if email == "" {
		return nil, nil
	}
	var u userModel.UserModel
	if err := db.Where("user_email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// ResolveRole: role untuk email, RoleNone kalau user lokal tidak ada.
func ResolveRole(db *gorm.DB, email string) (policy.Role, error) {
	u, err := ResolveUser(db, email)
	if err != nil {
		return policy.RoleNone, err
	}
	if u == nil {
		return policy.RoleNone, nil
	}
	return policy.ParseRole(u.UserRole), nil
}
