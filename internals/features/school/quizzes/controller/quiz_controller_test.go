package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	dto "sekolahku_backend/internals/features/school/quizzes/dto"
	model "sekolahku_backend/internals/features/school/quizzes/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&classModel.KelasModel{},
		&classModel.EnrollmentModel{},
		&model.QuizModel{},
		&model.QuizSubmissionModel{},
	))
	return db
}

func newTestApp(db *gorm.DB, email, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_email", email)
		c.Locals("userRole", role)
		return c.Next()
	})
	quizzes := NewQuizController(db, nil)
	quizSubs := NewQuizSubmissionController(db)
	app.Get("/api/quizzes", quizzes.List)
	app.Get("/api/quizzes/:id", quizzes.GetByID)
	app.Post("/api/quiz-submissions", quizSubs.Create)
	app.Get("/api/quiz-submissions", quizSubs.List)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedQuiz(t *testing.T, db *gorm.DB, cid string, questions []dto.QuizQuestion) model.QuizModel {
	t.Helper()
	raw, err := sonic.Marshal(dto.QuizPayload{Quiz: dto.QuizContent{
		Title: "Kuis Aljabar", Difficulty: "Beginner", Questions: questions,
	}})
	require.NoError(t, err)
	quiz := model.QuizModel{QuizKelasCid: cid, QuizTitle: "Kuis Aljabar", QuizPayload: raw}
	require.NoError(t, db.Create(&quiz).Error)
	return quiz
}

func twoQuestions() []dto.QuizQuestion {
	return []dto.QuizQuestion{
		{QuestionText: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"},
		{QuestionText: "3x3?", Options: []string{"6", "7", "8", "9"}, CorrectAnswer: "9"},
	}
}

func enroll(t *testing.T, db *gorm.DB, cid, email string) {
	t.Helper()
	require.NoError(t, db.Create(&classModel.KelasModel{
		KelasCid: cid, KelasName: "Kelas " + cid, KelasTeacherEmail: "guru@sekolah.id",
	}).Error)
	require.NoError(t, db.Create(&classModel.EnrollmentModel{
		EnrollmentKelasCid: cid, EnrollmentStudentEmail: email,
	}).Error)
}

func TestQuizGetByID_StripsAnswersForSiswa(t *testing.T) {
	db := openTestDB(t)
	enroll(t, db, "k1", "siswa@sekolah.id")
	quiz := seedQuiz(t, db, "k1", twoQuestions())

	app := newTestApp(db, "siswa@sekolah.id", "siswa")
	resp := doJSON(t, app, http.MethodGet, "/api/quizzes/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data model.QuizModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	var payload dto.QuizPayload
	require.NoError(t, sonic.Unmarshal(out.Data.QuizPayload, &payload))
	require.Len(t, payload.Quiz.Questions, 2)
	for _, q := range payload.Quiz.Questions {
		assert.Empty(t, q.CorrectAnswer, "kunci jawaban tidak boleh bocor ke siswa")
		assert.Len(t, q.Options, 4)
	}

	// baris di DB tidak ikut berubah
	var stored model.QuizModel
	require.NoError(t, db.First(&stored, quiz.QuizID).Error)
	var storedPayload dto.QuizPayload
	require.NoError(t, sonic.Unmarshal(stored.QuizPayload, &storedPayload))
	assert.Equal(t, "4", storedPayload.Quiz.Questions[0].CorrectAnswer)
}

func TestQuizGetByID_KeepsAnswersForGuru(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&classModel.KelasModel{
		KelasCid: "k1", KelasName: "Kelas k1", KelasTeacherEmail: "guru@sekolah.id",
	}).Error)
	seedQuiz(t, db, "k1", twoQuestions())

	app := newTestApp(db, "guru@sekolah.id", "guru")
	resp := doJSON(t, app, http.MethodGet, "/api/quizzes/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data model.QuizModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	var payload dto.QuizPayload
	require.NoError(t, sonic.Unmarshal(out.Data.QuizPayload, &payload))
	assert.Equal(t, "4", payload.Quiz.Questions[0].CorrectAnswer)
}

func TestQuizGetByID_OutOfScopeLooksMissing(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&classModel.KelasModel{
		KelasCid: "k1", KelasName: "Kelas k1", KelasTeacherEmail: "guru@sekolah.id",
	}).Error)
	seedQuiz(t, db, "k1", twoQuestions())

	app := newTestApp(db, "bukan-anggota@sekolah.id", "siswa")
	resp := doJSON(t, app, http.MethodGet, "/api/quizzes/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuizSubmissionCreate_ScoresServerSide(t *testing.T) {
	db := openTestDB(t)
	enroll(t, db, "k1", "siswa@sekolah.id")
	quiz := seedQuiz(t, db, "k1", twoQuestions())

	app := newTestApp(db, "siswa@sekolah.id", "siswa")

	// satu benar dari dua → 50
	resp := doJSON(t, app, http.MethodPost, "/api/quiz-submissions", map[string]any{
		"quiz_submission_quiz_id": quiz.QuizID,
		"answers":                 map[string]string{"0": "4", "1": "6"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Data model.QuizSubmissionModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 50, out.Data.QuizSubmissionScore)
}

func TestQuizSubmissionCreate_IncompleteAnswersRejected(t *testing.T) {
	db := openTestDB(t)
	enroll(t, db, "k1", "siswa@sekolah.id")
	quiz := seedQuiz(t, db, "k1", twoQuestions())

	app := newTestApp(db, "siswa@sekolah.id", "siswa")
	resp := doJSON(t, app, http.MethodPost, "/api/quiz-submissions", map[string]any{
		"quiz_submission_quiz_id": quiz.QuizID,
		"answers":                 map[string]string{"0": "4"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&model.QuizSubmissionModel{}).Count(&n).Error)
	assert.EqualValues(t, 0, n, "attempt tidak tersimpan")
}

func TestQuizSubmissionCreate_SecondAttemptConflict(t *testing.T) {
	db := openTestDB(t)
	enroll(t, db, "k1", "siswa@sekolah.id")
	quiz := seedQuiz(t, db, "k1", twoQuestions())

	app := newTestApp(db, "siswa@sekolah.id", "siswa")
	payload := map[string]any{
		"quiz_submission_quiz_id": quiz.QuizID,
		"answers":                 map[string]string{"0": "4", "1": "9"},
	}

	resp := doJSON(t, app, http.MethodPost, "/api/quiz-submissions", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/quiz-submissions", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errBody struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "Anda sudah pernah mengerjakan kuis ini.", errBody.Message)
}

func TestQuizList_EmptyScopeEmptyList(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&classModel.KelasModel{
		KelasCid: "k1", KelasName: "Kelas k1", KelasTeacherEmail: "guru@sekolah.id",
	}).Error)
	seedQuiz(t, db, "k1", twoQuestions())

	app := newTestApp(db, "tanpa-kelas@sekolah.id", "siswa")
	resp := doJSON(t, app, http.MethodGet, "/api/quizzes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data []dto.QuizListItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Data)
}
