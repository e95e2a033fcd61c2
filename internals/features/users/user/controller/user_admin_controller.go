package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/identity"
	dto "sekolahku_backend/internals/features/users/user/dto"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// Semua handler di sini dipasang di belakang RequireAction(ManageUsers),
// admin-only.
type UserAdminController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Identity  *identity.Service
}

func NewUserAdminController(db *gorm.DB, idSvc *identity.Service) *UserAdminController {
	return &UserAdminController{DB: db, Validator: validator.New(), Identity: idSvc}
}

// GET / — semua user + kelas siswa (left join enrollments)
func (ctrl *UserAdminController) List(c *fiber.Ctx) error {
	items := []dto.UserListItem{}
	err := ctrl.DB.Table("users").
		Select("users.user_id, users.user_name, users.user_email, users.user_username, users.user_role, enrollments.enrollment_kelas_cid AS kelas_cid").
		Joins("LEFT JOIN enrollments ON enrollments.enrollment_student_email = users.user_email").
		Order("users.user_id ASC").
		Scan(&items).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengguna")
	}
	return helper.JsonList(c, "Daftar pengguna", items)
}

// POST / — saga: buat akun provider dulu, lalu baris lokal; gagal lokal →
// akun provider dihapus lagi.
func (ctrl *UserAdminController) Create(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := ctrl.Identity.CreateUser(c.UserContext(), identity.CreateUserInput{
		Name:     body.UserName,
		Email:    body.UserEmail,
		Username: body.UserUsername,
		Password: body.UserPassword,
		Role:     body.UserRole,
		KelasCid: body.KelasCid,
	})
	if err != nil {
		return ctrl.mapWriteError(c, err)
	}
	return helper.JsonCreated(c, "Pengguna berhasil dibuat", user)
}

// PUT / — provider dulu, lalu lokal (termasuk ganti role & kelas siswa)
func (ctrl *UserAdminController) Update(c *fiber.Ctx) error {
	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := ctrl.Identity.UpdateUser(c.UserContext(), identity.UpdateUserInput{
		ID:       body.UserID,
		Name:     body.UserName,
		Username: body.UserUsername,
		Role:     body.UserRole,
		KelasCid: body.KelasCid,
	})
	if err != nil {
		return ctrl.mapWriteError(c, err)
	}
	return helper.JsonUpdated(c, "Pengguna berhasil diperbarui", user)
}

// DELETE /?id= — cermin dua store, lalu 204
func (ctrl *UserAdminController) Delete(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Query("id"))
	id, err := strconv.Atoi(idStr)
	if idStr == "" || err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengguna dibutuhkan")
	}
	if uint(id) == helperAuth.GetUserID(c) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak dapat menghapus akun Anda sendiri.")
	}

	if err := ctrl.Identity.DeleteUser(c.UserContext(), uint(id)); err != nil {
		return ctrl.mapWriteError(c, err)
	}
	return helper.JsonDeleted(c)
}

// mapWriteError menerjemahkan error saga: 409 membedakan kolom mana yang
// bentrok, error provider diteruskan statusnya, sisanya 500.
func (ctrl *UserAdminController) mapWriteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, identity.ErrUserNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}
	if errors.Is(err, identity.ErrProviderNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan di sistem otentikasi.")
	}

	if helper.IsUniqueViolation(err) {
		switch helper.UniqueViolationConstraint(err) {
		case "uq_users_email":
			return helper.JsonError(c, fiber.StatusConflict, "Email ini sudah digunakan.")
		case "uq_users_username":
			return helper.JsonError(c, fiber.StatusConflict, "Username ini sudah digunakan.")
		default:
			return helper.JsonError(c, fiber.StatusConflict, "Data pengguna bentrok dengan yang sudah ada.")
		}
	}

	var provErr *identity.ProviderError
	if errors.As(err, &provErr) && provErr.Status >= 400 && provErr.Status < 500 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, provErr.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal.")
}
