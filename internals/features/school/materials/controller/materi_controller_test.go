package controller

import (
	"bytes"
	"encoding/json"
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
	dto "sekolahku_backend/internals/features/school/materials/dto"
	model "sekolahku_backend/internals/features/school/materials/model"
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
		&model.MateriModel{},
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
	ctrl := NewMateriController(db)
	app.Get("/api/materi", ctrl.List)
	app.Post("/api/materi", ctrl.Create)
	app.Put("/api/materi", ctrl.Update)
	app.Delete("/api/materi", ctrl.Delete)
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

func seedMateri(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&classModel.KelasModel{
		KelasCid: "k1", KelasName: "Matematika", KelasTeacherEmail: "guru@sekolah.id",
	}).Error)
	require.NoError(t, db.Create(&classModel.KelasModel{
		KelasCid: "k2", KelasName: "Fisika", KelasTeacherEmail: "gurulain@sekolah.id",
	}).Error)
	require.NoError(t, db.Create(&model.MateriModel{
		MateriKelasCid: "k1", MateriTitle: "Aljabar Dasar",
	}).Error)
	require.NoError(t, db.Create(&model.MateriModel{
		MateriKelasCid: "k2", MateriTitle: "Gerak Lurus",
	}).Error)
}

func listMateri(t *testing.T, app *fiber.App) []dto.MateriListItem {
	t.Helper()
	resp := doJSON(t, app, http.MethodGet, "/api/materi", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Data []dto.MateriListItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Data
}

func TestMateriList_ScopedWithKelasName(t *testing.T) {
	db := openTestDB(t)
	seedMateri(t, db)
	require.NoError(t, db.Create(&classModel.EnrollmentModel{
		EnrollmentKelasCid: "k1", EnrollmentStudentEmail: "siswa@sekolah.id",
	}).Error)

	items := listMateri(t, newTestApp(db, "siswa@sekolah.id", "siswa"))
	require.Len(t, items, 1, "siswa hanya melihat materi kelas yang diikuti")
	assert.Equal(t, "Aljabar Dasar", items[0].MateriTitle)
	require.NotNil(t, items[0].KelasName)
	assert.Equal(t, "Matematika", *items[0].KelasName)

	items = listMateri(t, newTestApp(db, "guru@sekolah.id", "guru"))
	require.Len(t, items, 1, "guru hanya melihat materi kelasnya")
	assert.Equal(t, "k1", items[0].MateriKelasCid)

	items = listMateri(t, newTestApp(db, "admin@sekolah.id", "admin"))
	assert.Len(t, items, 2, "admin melihat semua")
}

func TestMateriList_NoEnrollmentEmptyList(t *testing.T) {
	db := openTestDB(t)
	seedMateri(t, db)

	items := listMateri(t, newTestApp(db, "tanpa-kelas@sekolah.id", "siswa"))
	assert.Empty(t, items, "scope kosong harus [] bukan seluruh tabel")
}

func TestMateriUpdateDelete_NotFound(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db, "guru@sekolah.id", "guru")

	resp := doJSON(t, app, http.MethodPut, "/api/materi", map[string]any{
		"materi_id":        99,
		"materi_kelas_cid": "k1",
		"materi_title":     "Tidak Ada",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/materi?id=99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMateriCreate(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db, "guru@sekolah.id", "guru")

	resp := doJSON(t, app, http.MethodPost, "/api/materi", map[string]any{
		"materi_kelas_cid": "k1",
		"materi_title":     "Bab Baru",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&model.MateriModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
