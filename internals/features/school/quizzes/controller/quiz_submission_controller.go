package controller

import (
	"errors"

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

type QuizSubmissionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewQuizSubmissionController(db *gorm.DB) *QuizSubmissionController {
	return &QuizSubmissionController{DB: db, Validator: validator.New()}
}

// POST / (SISWA) — semua pertanyaan wajib dijawab; skor dihitung server-side
// dari payload tersimpan; satu attempt per (kuis, siswa).
func (ctrl *QuizSubmissionController) Create(c *fiber.Ctx) error {
	var body dto.CreateQuizSubmissionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := helperAuth.GetUserEmail(c)

	var quiz model.QuizModel
	if err := ctrl.DB.First(&quiz, "quiz_id = ?", body.QuizSubmissionQuizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kuis tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kuis")
	}

	var payload dto.QuizPayload
	if err := sonic.Unmarshal(quiz.QuizPayload, &payload); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Payload kuis rusak")
	}

	score, err := quizService.Evaluate(payload.Quiz.Questions, body.Answers)
	if err != nil {
		if errors.Is(err, quizService.ErrIncompleteAnswers) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Semua pertanyaan harus dijawab")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menilai kuis")
	}

	sub := model.QuizSubmissionModel{
		QuizSubmissionQuizID:       body.QuizSubmissionQuizID,
		QuizSubmissionStudentEmail: email,
		QuizSubmissionScore:        score,
	}
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.QuizSubmissionModel{}).
			Where("quiz_submission_quiz_id = ? AND quiz_submission_student_email = ?", body.QuizSubmissionQuizID, email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&sub).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) || helper.IsUniqueViolation(err) {
		return helper.JsonError(c, fiber.StatusConflict, "Anda sudah pernah mengerjakan kuis ini.")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan jawaban kuis")
	}
	return helper.JsonCreated(c, "Jawaban kuis tersimpan", sub)
}

// GET / — siswa: hasil miliknya; guru/admin: hasil untuk kuis di kelas yang
// dia miliki.
func (ctrl *QuizSubmissionController) List(c *fiber.Ctx) error {
	role := helperAuth.GetUserRole(c)
	email := helperAuth.GetUserEmail(c)
	list := []model.QuizSubmissionModel{}

	switch {
	case policy.CanPerform(role, policy.ActionViewOwnSubmissions):
		if err := ctrl.DB.Where("quiz_submission_student_email = ?", email).
			Order("quiz_submission_id DESC").Find(&list).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hasil kuis")
		}
		return helper.JsonList(c, "Hasil kuis", list)

	case policy.CanPerform(role, policy.ActionViewClassSubmissions):
		scope, err := classService.VisibleKelas(ctrl.DB, role, email)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil scope kelas")
		}
		if scope.Empty() {
			return helper.JsonList(c, "Hasil kuis", list)
		}

		var quizIDs []uint
		q := ctrl.DB.Model(&model.QuizModel{})
		q = classService.ApplyScope(q, scope, "quiz_kelas_cid")
		if err := q.Pluck("quiz_id", &quizIDs).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kuis")
		}
		if len(quizIDs) == 0 {
			return helper.JsonList(c, "Hasil kuis", list)
		}

		if err := ctrl.DB.Where("quiz_submission_quiz_id IN ?", quizIDs).
			Order("quiz_submission_id DESC").Find(&list).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hasil kuis")
		}
		return helper.JsonList(c, "Hasil kuis", list)

	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
	}
}
