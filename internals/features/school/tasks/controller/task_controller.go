package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classService "sekolahku_backend/internals/features/school/classes/service"
	subModel "sekolahku_backend/internals/features/school/submissions/model"
	dto "sekolahku_backend/internals/features/school/tasks/dto"
	model "sekolahku_backend/internals/features/school/tasks/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type TaskController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db, Validator: validator.New()}
}

// GET / — list role-scoped dengan nama kelas
func (ctrl *TaskController) List(c *fiber.Ctx) error {
	scope, err := classService.VisibleKelas(ctrl.DB, helperAuth.GetUserRole(c), helperAuth.GetUserEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil scope kelas")
	}

	items := []dto.TaskListItem{}
	if scope.Empty() {
		return helper.JsonList(c, "Daftar tugas", items)
	}

	q := ctrl.DB.Table("tasks").
		Select("tasks.*, kelas.kelas_name AS kelas_name").
		Joins("LEFT JOIN kelas ON kelas.kelas_cid = tasks.task_kelas_cid").
		Order("tasks.task_id DESC")
	q = classService.ApplyScope(q, scope, "tasks.task_kelas_cid")
	if err := q.Scan(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tugas")
	}
	return helper.JsonList(c, "Daftar tugas", items)
}

// POST / (GURU/ADMIN)
func (ctrl *TaskController) Create(c *fiber.Ctx) error {
	var body dto.CreateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	task := body.ToModel()
	if err := ctrl.DB.Create(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tugas")
	}
	return helper.JsonCreated(c, "Tugas berhasil dibuat", task)
}

// PUT / (GURU/ADMIN)
func (ctrl *TaskController) Update(c *fiber.Ctx) error {
	var body dto.UpdateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var task model.TaskModel
	if err := ctrl.DB.First(&task, "task_id = ?", body.TaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tugas")
	}

	task.TaskKelasCid = body.TaskKelasCid
	task.TaskTitle = body.TaskTitle
	task.TaskDescription = body.TaskDescription
	task.TaskFileURL = body.TaskFileURL
	task.TaskDueDate = body.TaskDueDate
	if err := ctrl.DB.Save(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui tugas")
	}
	return helper.JsonUpdated(c, "Tugas berhasil diperbarui", task)
}

// DELETE /?id= (GURU/ADMIN) — submission tugas ikut terhapus
func (ctrl *TaskController) Delete(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Query("id"))
	id, err := strconv.Atoi(idStr)
	if idStr == "" || err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas dibutuhkan")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_task_id = ?", id).
			Delete(&subModel.SubmissionModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.TaskModel{}, "task_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus tugas")
	}
	return helper.JsonDeleted(c)
}
