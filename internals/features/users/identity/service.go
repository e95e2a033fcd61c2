package identity

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	quizModel "sekolahku_backend/internals/features/school/quizzes/model"
	subModel "sekolahku_backend/internals/features/school/submissions/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

var (
	ErrUserNotFound     = errors.New("pengguna tidak ditemukan")
	ErrProviderNotFound = errors.New("pengguna tidak ditemukan di sistem otentikasi")
)

// Service mengikat dua store identitas (provider eksternal + tabel users)
// sebagai saga dua langkah: provider dulu, lalu lokal; gagal di langkah kedua
// saat create dikompensasi dengan menghapus akun provider supaya tidak ada
// akun yatim.
type Service struct {
	DB       *gorm.DB
	Provider Provider
}

func NewService(db *gorm.DB, p Provider) *Service {
	return &Service{DB: db, Provider: p}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Role     string
	KelasCid string // opsional; role siswa langsung didaftarkan ke kelas ini
}

type UpdateUserInput struct {
	ID       uint
	Name     string
	Username string
	Role     string
	KelasCid string // opsional; ganti pendaftaran kelas siswa
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*userModel.UserModel, error) {
	first, last := splitName(in.Name)
	providerID, err := s.Provider.CreateAccount(ctx, NewAccount{
		Email:     in.Email,
		Username:  in.Username,
		Password:  in.Password,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		return nil, err
	}

	username := in.Username
	user := userModel.UserModel{
		UserName:     in.Name,
		UserEmail:    in.Email,
		UserUsername: &username,
		UserRole:     in.Role,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if in.Role == userModel.RoleSiswa && in.KelasCid != "" {
			return tx.Create(&classModel.EnrollmentModel{
				EnrollmentKelasCid:     in.KelasCid,
				EnrollmentStudentEmail: in.Email,
			}).Error
		}
		return nil
	})
	if err != nil {
		// Kompensasi: hapus akun provider yang terlanjur dibuat
		if delErr := s.Provider.DeleteAccount(ctx, providerID); delErr != nil {
			log.Printf("[ERROR] Kompensasi gagal, akun provider %s yatim: %v", providerID, delErr)
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(ctx context.Context, in UpdateUserInput) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&user, "user_id = ?", in.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	providerID, err := s.Provider.FindAccountIDByEmail(ctx, user.UserEmail)
	if err != nil {
		return nil, err
	}
	if providerID == "" {
		return nil, ErrProviderNotFound
	}

	first, last := splitName(in.Name)
	if err := s.Provider.UpdateAccount(ctx, providerID, UpdateAccount{
		Username:  in.Username,
		FirstName: first,
		LastName:  last,
	}); err != nil {
		return nil, err
	}

	// Provider sudah berubah; kegagalan di bawah ini membuat kedua store
	// divergen dan tidak ada rekonsiliasi otomatis (hanya log).
	username := in.Username
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.UserName = in.Name
		user.UserUsername = &username
		user.UserRole = in.Role
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		// Enrollment selalu direset; hanya siswa dengan kelas_cid yang
		// didaftarkan ulang, jadi ganti role tidak meninggalkan baris basi
		if err := tx.Where("enrollment_student_email = ?", user.UserEmail).
			Delete(&classModel.EnrollmentModel{}).Error; err != nil {
			return err
		}
		if in.Role == userModel.RoleSiswa && in.KelasCid != "" {
			return tx.Create(&classModel.EnrollmentModel{
				EnrollmentKelasCid:     in.KelasCid,
				EnrollmentStudentEmail: user.UserEmail,
			}).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] Update lokal gagal setelah provider berubah (user %d): %v", in.ID, err)
		return nil, err
	}
	return &user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	providerID, err := s.Provider.FindAccountIDByEmail(ctx, user.UserEmail)
	if err != nil {
		return err
	}
	if providerID != "" {
		if err := s.Provider.DeleteAccount(ctx, providerID); err != nil {
			return err
		}
	}

	// Cascade eksplisit: enrollment & semua submission milik email ini
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enrollment_student_email = ?", user.UserEmail).
			Delete(&classModel.EnrollmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_student_email = ?", user.UserEmail).
			Delete(&subModel.SubmissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_submission_student_email = ?", user.UserEmail).
			Delete(&quizModel.QuizSubmissionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userModel.UserModel{}, "user_id = ?", id).Error
	})
}
