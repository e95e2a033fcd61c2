package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classService "sekolahku_backend/internals/features/school/classes/service"
	dto "sekolahku_backend/internals/features/school/quizzes/dto"
	model "sekolahku_backend/internals/features/school/quizzes/model"
	quizService "sekolahku_backend/internals/features/school/quizzes/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/policy"
)

type QuizController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Generator quizService.Generator
}

func NewQuizController(db *gorm.DB, gen quizService.Generator) *QuizController {
	return &QuizController{DB: db, Validator: validator.New(), Generator: gen}
}

// POST /generate-quiz (GURU/ADMIN) — panggil AI, parse, simpan. Konten kuis
// immutable setelah ini.
func (ctrl *QuizController) Generate(c *fiber.Ctx) error {
	var body dto.GenerateQuizRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	payload, err := ctrl.Generator.Generate(c.UserContext(), body.Topic, body.NumQuestions, body.Difficulty)
	if err != nil {
		log.Printf("[ERROR] Generate kuis gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat konten kuis dari AI")
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kuis")
	}

	quiz := model.QuizModel{
		QuizKelasCid: body.QuizKelasCid,
		QuizTitle:    payload.Quiz.Title,
		QuizPayload:  raw,
	}
	if err := ctrl.DB.Create(&quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kuis")
	}
	return helper.JsonCreated(c, "Kuis berhasil dibuat", quiz)
}

// GET / — list role-scoped (judul + nama kelas saja, tanpa payload)
func (ctrl *QuizController) List(c *fiber.Ctx) error {
	scope, err := classService.VisibleKelas(ctrl.DB, helperAuth.GetUserRole(c), helperAuth.GetUserEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil scope kelas")
	}

	items := []dto.QuizListItem{}
	if scope.Empty() {
		return helper.JsonList(c, "Daftar kuis", items)
	}

	q := ctrl.DB.Table("quizzes").
		Select("quizzes.quiz_id, quizzes.quiz_title, quizzes.quiz_kelas_cid, quizzes.quiz_created_at, kelas.kelas_name AS kelas_name").
		Joins("LEFT JOIN kelas ON kelas.kelas_cid = quizzes.quiz_kelas_cid").
		Order("quizzes.quiz_id DESC")
	q = classService.ApplyScope(q, scope, "quizzes.quiz_kelas_cid")
	if err := q.Scan(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kuis")
	}
	return helper.JsonList(c, "Daftar kuis", items)
}

// GET /:id — detail kuis. Di luar scope caller diperlakukan sama dengan
// tidak ada (404). Untuk siswa, correct_answer dibuang dari payload supaya
// jawaban tidak bocor sebelum dinilai.
func (ctrl *QuizController) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kuis tidak valid")
	}

	var quiz model.QuizModel
	if err := ctrl.DB.First(&quiz, "quiz_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kuis tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kuis")
	}

	role := helperAuth.GetUserRole(c)
	scope, err := classService.VisibleKelas(ctrl.DB, role, helperAuth.GetUserEmail(c))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil scope kelas")
	}
	if !scope.All && !containsCid(scope.Cids, quiz.QuizKelasCid) {
		return helper.JsonError(c, fiber.StatusNotFound, "Kuis tidak ditemukan")
	}

	if role == policy.RoleSiswa {
		var payload dto.QuizPayload
		if err := sonic.Unmarshal(quiz.QuizPayload, &payload); err == nil {
			for i := range payload.Quiz.Questions {
				payload.Quiz.Questions[i].CorrectAnswer = ""
			}
			if raw, err := sonic.Marshal(payload); err == nil {
				quiz.QuizPayload = raw
			}
		}
	}
	return helper.JsonOK(c, "Detail kuis", quiz)
}

func containsCid(cids []string, cid string) bool {
	for _, c := range cids {
		if c == cid {
			return true
		}
	}
	return false
}
