package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classService "sekolahku_backend/internals/features/school/classes/service"
	dto "sekolahku_backend/internals/features/school/submissions/dto"
	model "sekolahku_backend/internals/features/school/submissions/model"
	taskModel "sekolahku_backend/internals/features/school/tasks/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/policy"
)

type SubmissionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{DB: db, Validator: validator.New()}
}

// GET / — siswa: jawaban miliknya sendiri (self-scoped);
// guru/admin: semua jawaban untuk tugas di kelas yang dia miliki.
func (ctrl *SubmissionController) List(c *fiber.Ctx) error {
	role := helperAuth.GetUserRole(c)
	email := helperAuth.GetUserEmail(c)
	list := []model.SubmissionModel{}

	switch {
	case policy.CanPerform(role, policy.ActionViewOwnSubmissions):
		if err := ctrl.DB.Where("submission_student_email = ?", email).
			Order("submission_id DESC").Find(&list).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jawaban")
		}
		return helper.JsonList(c, "Daftar jawaban", list)

	case policy.CanPerform(role, policy.ActionViewClassSubmissions):
		scope, err := classService.VisibleKelas(ctrl.DB, role, email)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil scope kelas")
		}
		if scope.Empty() {
			return helper.JsonList(c, "Daftar jawaban", list)
		}

		var taskIDs []uint
		q := ctrl.DB.Model(&taskModel.TaskModel{})
		q = classService.ApplyScope(q, scope, "task_kelas_cid")
		if err := q.Pluck("task_id", &taskIDs).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tugas")
		}
		if len(taskIDs) == 0 {
			return helper.JsonList(c, "Daftar jawaban", list)
		}

		if err := ctrl.DB.Where("submission_task_id IN ?", taskIDs).
			Order("submission_id DESC").Find(&list).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jawaban")
		}
		return helper.JsonList(c, "Daftar jawaban", list)

	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
	}
}

// POST / (SISWA) — satu attempt per (tugas, siswa): pre-check + insert dalam
// satu transaksi, ditambah unique index sebagai penjaga race window.
func (ctrl *SubmissionController) Create(c *fiber.Ctx) error {
	var body dto.CreateSubmissionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := helperAuth.GetUserEmail(c)

	var task taskModel.TaskModel
	if err := ctrl.DB.First(&task, "task_id = ?", body.SubmissionTaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tugas")
	}

	sub := model.SubmissionModel{
		SubmissionTaskID:       body.SubmissionTaskID,
		SubmissionStudentEmail: email,
		SubmissionFileURL:      body.SubmissionFileURL,
	}
	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.SubmissionModel{}).
			Where("submission_task_id = ? AND submission_student_email = ?", body.SubmissionTaskID, email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&sub).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) || helper.IsUniqueViolation(err) {
		return helper.JsonError(c, fiber.StatusConflict, "Anda sudah mengumpulkan jawaban untuk tugas ini")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengunggah jawaban")
	}
	return helper.JsonCreated(c, "Jawaban berhasil dikumpulkan", sub)
}

// PUT / (GURU/ADMIN) — set nilai 0–100; nilai boleh ditimpa, field lain
// immutable.
func (ctrl *SubmissionController) Grade(c *fiber.Ctx) error {
	var body dto.GradeSubmissionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if *body.SubmissionGrade < 0 || *body.SubmissionGrade > 100 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nilai harus di antara 0 dan 100")
	}

	var sub model.SubmissionModel
	if err := ctrl.DB.First(&sub, "submission_id = ?", body.SubmissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Jawaban tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jawaban")
	}

	sub.SubmissionGrade = body.SubmissionGrade
	if err := ctrl.DB.Model(&sub).
		Update("submission_grade", body.SubmissionGrade).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}
	return helper.JsonUpdated(c, "Nilai berhasil disimpan", sub)
}
