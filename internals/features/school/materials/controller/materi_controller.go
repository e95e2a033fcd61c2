package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classService "sekolahku_backend/internals/features/school/classes/service"
	dto "sekolahku_backend/internals/features/school/materials/dto"
	model "sekolahku_backend/internals/features/school/materials/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type MateriController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewMateriController(db *gorm.DB) *MateriController {
	return &MateriController{DB: db, Validator: validator.New()}
}

// GET / — list role-scoped dengan nama kelas. Scope kosong ⇒ []
// (bukan error, bukan seluruh tabel).
func (ctrl *MateriController) List(c *fiber.Ctx) error {
	scope, err := classService.VisibleKelas(ctrl.DB, helperAuth.GetUserRole(c), helperAuth.GetUserEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil scope kelas")
	}

	items := []dto.MateriListItem{}
	if scope.Empty() {
		return helper.JsonList(c, "Daftar materi", items)
	}

	q := ctrl.DB.Table("materi").
		Select("materi.*, kelas.kelas_name AS kelas_name").
		Joins("LEFT JOIN kelas ON kelas.kelas_cid = materi.materi_kelas_cid").
		Order("materi.materi_id DESC")
	q = classService.ApplyScope(q, scope, "materi.materi_kelas_cid")
	if err := q.Scan(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materi")
	}
	return helper.JsonList(c, "Daftar materi", items)
}

// POST / (GURU/ADMIN)
func (ctrl *MateriController) Create(c *fiber.Ctx) error {
	var body dto.CreateMateriRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	materi := body.ToModel()
	if err := ctrl.DB.Create(&materi).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat materi")
	}
	return helper.JsonCreated(c, "Materi berhasil dibuat", materi)
}

// PUT / (GURU/ADMIN)
func (ctrl *MateriController) Update(c *fiber.Ctx) error {
	var body dto.UpdateMateriRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var materi model.MateriModel
	if err := ctrl.DB.First(&materi, "materi_id = ?", body.MateriID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materi")
	}

	materi.MateriKelasCid = body.MateriKelasCid
	materi.MateriTitle = body.MateriTitle
	materi.MateriDescription = body.MateriDescription
	materi.MateriFileURL = body.MateriFileURL
	if err := ctrl.DB.Save(&materi).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui materi")
	}
	return helper.JsonUpdated(c, "Materi berhasil diperbarui", materi)
}

// DELETE /?id= (GURU/ADMIN)
func (ctrl *MateriController) Delete(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Query("id"))
	id, err := strconv.Atoi(idStr)
	if idStr == "" || err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID materi dibutuhkan")
	}

	res := ctrl.DB.Delete(&model.MateriModel{}, "materi_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus materi")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}
	return helper.JsonDeleted(c)
}
