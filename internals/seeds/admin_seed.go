package seeds

import (
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	userModel "sekolahku_backend/internals/features/users/user/model"
)

// EnsureAdmin menjamin ada minimal satu akun admin (dari ADMIN_EMAIL /
// ADMIN_NAME). Idempotent: kalau email sudah terdaftar, role-nya dinaikkan
// ke admin bila perlu, tidak membuat baris baru.
func EnsureAdmin(db *gorm.DB) {
	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	if email == "" {
		log.Println("⚠️  ADMIN_EMAIL kosong, seed admin dilewati")
		return
	}
	name := strings.TrimSpace(os.Getenv("ADMIN_NAME"))
	if name == "" {
		name = "Administrator"
	}

	var existing userModel.UserModel
	err := db.Where("user_email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.UserRole != userModel.RoleAdmin {
			if err := db.Model(&existing).
				Update("user_role", userModel.RoleAdmin).Error; err != nil {
				log.Printf("❌ Gagal menaikkan role admin %s: %v", email, err)
				return
			}
			log.Printf("✅ Role %s dinaikkan menjadi admin", email)
		}
	case err == gorm.ErrRecordNotFound:
		username := strings.SplitN(email, "@", 2)[0]
		admin := userModel.UserModel{
			UserName:     name,
			UserEmail:    email,
			UserUsername: &username,
			UserRole:     userModel.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("❌ Gagal membuat akun admin %s: %v", email, err)
			return
		}
		log.Printf("✅ Akun admin %s dibuat", email)
	default:
		log.Printf("❌ Gagal memeriksa akun admin: %v", err)
	}
}
