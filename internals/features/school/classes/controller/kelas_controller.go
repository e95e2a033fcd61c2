package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/classes/dto"
	model "sekolahku_backend/internals/features/school/classes/model"
	materiModel "sekolahku_backend/internals/features/school/materials/model"
	quizModel "sekolahku_backend/internals/features/school/quizzes/model"
	subModel "sekolahku_backend/internals/features/school/submissions/model"
	taskModel "sekolahku_backend/internals/features/school/tasks/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/policy"
)

type KelasController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewKelasController(db *gorm.DB) *KelasController {
	return &KelasController{DB: db, Validator: validator.New()}
}

// GET / — semua caller terautentikasi boleh melihat daftar kelas
func (ctrl *KelasController) List(c *fiber.Ctx) error {
	var list []model.KelasModel
	if err := ctrl.DB.Order("kelas_id DESC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kelas")
	}
	return helper.JsonList(c, "Daftar kelas", list)
}

// POST / (GURU/ADMIN) — cid digenerate server-side
func (ctrl *KelasController) Create(c *fiber.Ctx) error {
	var body dto.CreateKelasRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	kelas := body.ToModel(uuid.NewString(), helperAuth.GetUserEmail(c))
	if err := ctrl.DB.Create(&kelas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", kelas)
}

// PUT / (GURU pemilik / ADMIN)
func (ctrl *KelasController) Update(c *fiber.Ctx) error {
	var body dto.UpdateKelasRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var kelas model.KelasModel
	if err := ctrl.DB.Where("kelas_cid = ?", body.KelasCid).First(&kelas).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}
	if err := ctrl.ensureOwner(c, &kelas); err != nil {
		return err
	}

	kelas.KelasName = body.KelasName
	kelas.KelasDescription = body.KelasDescription
	if err := ctrl.DB.Save(&kelas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kelas")
	}
	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", kelas)
}

// DELETE /?cid= (GURU pemilik / ADMIN) — cascade materi, tugas (beserta
// submission-nya), kuis (beserta attempt-nya), dan enrollment dalam satu tx.
func (ctrl *KelasController) Delete(c *fiber.Ctx) error {
	cid := strings.TrimSpace(c.Query("cid"))
	if cid == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas dibutuhkan")
	}

	var kelas model.KelasModel
	if err := ctrl.DB.Where("kelas_cid = ?", cid).First(&kelas).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}
	if err := ctrl.ensureOwner(c, &kelas); err != nil {
		return err
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&taskModel.TaskModel{}).
			Where("task_kelas_cid = ?", cid).Pluck("task_id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("submission_task_id IN ?", taskIDs).
				Delete(&subModel.SubmissionModel{}).Error; err != nil {
				return err
			}
		}

		var quizIDs []uint
		if err := tx.Model(&quizModel.QuizModel{}).
			Where("quiz_kelas_cid = ?", cid).Pluck("quiz_id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_submission_quiz_id IN ?", quizIDs).
				Delete(&quizModel.QuizSubmissionModel{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("task_kelas_cid = ?", cid).Delete(&taskModel.TaskModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_kelas_cid = ?", cid).Delete(&quizModel.QuizModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("materi_kelas_cid = ?", cid).Delete(&materiModel.MateriModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("enrollment_kelas_cid = ?", cid).Delete(&model.EnrollmentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&kelas).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kelas")
	}
	return helper.JsonDeleted(c)
}

func (ctrl *KelasController) ensureOwner(c *fiber.Ctx, kelas *model.KelasModel) error {
	role := helperAuth.GetUserRole(c)
	if role == policy.RoleAdmin {
		return nil
	}
	if kelas.KelasTeacherEmail != helperAuth.GetUserEmail(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya pemilik kelas yang diizinkan")
	}
	return nil
}
