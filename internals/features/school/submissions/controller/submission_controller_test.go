package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	model "sekolahku_backend/internals/features/school/submissions/model"
	taskModel "sekolahku_backend/internals/features/school/tasks/model"
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
		&taskModel.TaskModel{},
		&model.SubmissionModel{},
	))
	return db
}

// newTestApp merakit app minimal: locals diisi langsung (pengganti
// AuthMiddleware) lalu route submission didaftarkan.
func newTestApp(db *gorm.DB, email, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_email", email)
		c.Locals("userRole", role)
		return c.Next()
	})
	ctrl := NewSubmissionController(db)
	app.Get("/api/submissions", ctrl.List)
	app.Post("/api/submissions", ctrl.Create)
	app.Put("/api/submissions", ctrl.Grade)
	return app
}

func seedTask(t *testing.T, db *gorm.DB, cid, teacherEmail string) taskModel.TaskModel {
	t.Helper()
	require.NoError(t, db.Create(&classModel.KelasModel{
		KelasCid: cid, KelasName: "Kelas " + cid, KelasTeacherEmail: teacherEmail,
	}).Error)
	task := taskModel.TaskModel{TaskKelasCid: cid, TaskTitle: "Tugas 1"}
	require.NoError(t, db.Create(&task).Error)
	return task
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

func TestSubmissionCreate_SecondAttemptConflict(t *testing.T) {
	db := openTestDB(t)
	task := seedTask(t, db, "k1", "guru@sekolah.id")
	app := newTestApp(db, "siswa@sekolah.id", "siswa")

	payload := map[string]any{
		"submission_task_id":  task.TaskID,
		"submission_file_url": "https://files.sekolah.id/jawaban.pdf",
	}

	resp := doJSON(t, app, http.MethodPost, "/api/submissions", payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/submissions", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Anda sudah mengumpulkan jawaban untuk tugas ini", out.Message)

	// attempt kedua tidak boleh menambah baris
	var count int64
	require.NoError(t, db.Model(&model.SubmissionModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmissionCreate_TaskNotFound(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db, "siswa@sekolah.id", "siswa")

	resp := doJSON(t, app, http.MethodPost, "/api/submissions", map[string]any{
		"submission_task_id":  99,
		"submission_file_url": "https://files.sekolah.id/jawaban.pdf",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmissionGrade(t *testing.T) {
	db := openTestDB(t)
	task := seedTask(t, db, "k1", "guru@sekolah.id")
	sub := model.SubmissionModel{
		SubmissionTaskID:       task.TaskID,
		SubmissionStudentEmail: "siswa@sekolah.id",
		SubmissionFileURL:      "https://files.sekolah.id/jawaban.pdf",
	}
	require.NoError(t, db.Create(&sub).Error)

	app := newTestApp(db, "guru@sekolah.id", "guru")

	cases := []struct {
		name       string
		id         uint
		grade      int
		wantStatus int
	}{
		{"nilai valid", sub.SubmissionID, 85, http.StatusOK},
		{"nilai nol valid", sub.SubmissionID, 0, http.StatusOK},
		{"di atas 100", sub.SubmissionID, 101, http.StatusBadRequest},
		{"negatif", sub.SubmissionID, -1, http.StatusBadRequest},
		{"submission tidak ada", 99, 50, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPut, "/api/submissions", map[string]any{
				"submission_id":    tc.id,
				"submission_grade": tc.grade,
			})
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}

	// nilai terakhir yang valid yang tersimpan
	var got model.SubmissionModel
	require.NoError(t, db.First(&got, sub.SubmissionID).Error)
	require.NotNil(t, got.SubmissionGrade)
	assert.Equal(t, 0, *got.SubmissionGrade)
}

func TestSubmissionList_ScopedPerRole(t *testing.T) {
	db := openTestDB(t)
	taskA := seedTask(t, db, "kA", "guruA@sekolah.id")
	taskB := seedTask(t, db, "kB", "guruB@sekolah.id")

	for i, pair := range []struct {
		taskID uint
		email  string
	}{
		{taskA.TaskID, "siswa1@sekolah.id"},
		{taskA.TaskID, "siswa2@sekolah.id"},
		{taskB.TaskID, "siswa1@sekolah.id"},
	} {
		require.NoError(t, db.Create(&model.SubmissionModel{
			SubmissionTaskID:       pair.taskID,
			SubmissionStudentEmail: pair.email,
			SubmissionFileURL:      fmt.Sprintf("https://files.sekolah.id/%d.pdf", i),
		}).Error)
	}

	listLen := func(email, role string) int {
		app := newTestApp(db, email, role)
		resp := doJSON(t, app, http.MethodGet, "/api/submissions", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out struct {
			Data []model.SubmissionModel `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return len(out.Data)
	}

	assert.Equal(t, 2, listLen("siswa1@sekolah.id", "siswa"), "siswa hanya melihat miliknya")
	assert.Equal(t, 2, listLen("guruA@sekolah.id", "guru"), "guru melihat jawaban di kelasnya")
	assert.Equal(t, 0, listLen("gurubaru@sekolah.id", "guru"), "guru tanpa kelas dapat list kosong")
	assert.Equal(t, 3, listLen("admin@sekolah.id", "admin"), "admin melihat semua")
}

func TestSubmissionList_RoleNoneForbidden(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db, "hantu@sekolah.id", "")

	resp := doJSON(t, app, http.MethodGet, "/api/submissions", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
