package controller

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	classService "sekolahku_backend/internals/features/school/classes/service"
	materiModel "sekolahku_backend/internals/features/school/materials/model"
	quizModel "sekolahku_backend/internals/features/school/quizzes/model"
	taskModel "sekolahku_backend/internals/features/school/tasks/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GET /admin/stats — ringkasan jumlah pengguna per role
func (ctrl *StatsController) AdminStats(c *fiber.Ctx) error {
	var total, guru, siswa int64
	if err := ctrl.DB.Model(&userModel.UserModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&userModel.UserModel{}).
		Where("user_role = ?", userModel.RoleGuru).Count(&guru).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&userModel.UserModel{}).
		Where("user_role = ?", userModel.RoleSiswa).Count(&siswa).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}

	return helper.JsonOK(c, "Statistik admin", fiber.Map{
		"total_pengguna": total,
		"total_guru":     guru,
		"total_siswa":    siswa,
	})
}

// GET /guru/stats — agregat atas kelas milik guru. Guru tanpa kelas tetap
// 200 dengan semua angka nol.
func (ctrl *StatsController) GuruStats(c *fiber.Ctx) error {
	email := helperAuth.GetUserEmail(c)

	cids, err := classService.ClassesOwnedBy(ctrl.DB, email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if len(cids) == 0 {
		return helper.JsonOK(c, "Statistik guru", fiber.Map{
			"total_kelas":  0,
			"total_siswa":  0,
			"total_materi": 0,
			"total_tugas":  0,
		})
	}

	var totalSiswa, totalMateri, totalTugas, totalKuis int64
	if err := ctrl.DB.Model(&classModel.EnrollmentModel{}).
		Where("enrollment_kelas_cid IN ?", cids).Count(&totalSiswa).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&materiModel.MateriModel{}).
		Where("materi_kelas_cid IN ?", cids).Count(&totalMateri).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&taskModel.TaskModel{}).
		Where("task_kelas_cid IN ?", cids).Count(&totalTugas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if err := ctrl.DB.Model(&quizModel.QuizModel{}).
		Where("quiz_kelas_cid IN ?", cids).Count(&totalKuis).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}

	return helper.JsonOK(c, "Statistik guru", fiber.Map{
		"total_kelas":  len(cids),
		"total_siswa":  totalSiswa,
		"total_materi": totalMateri,
		// tugas = tasks + kuis, mengikuti kartu dashboard guru
		"total_tugas": totalTugas + totalKuis,
	})
}

type dashboardActivity struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	KelasCid  string    `json:"kelas_cid"`
	Type      string    `json:"type"` // "tugas" | "kuis"
	CreatedAt time.Time `json:"created_at"`
}

// GET /siswa/dashboard — 5 materi terbaru + 5 aktivitas (gabungan tugas dan
// kuis) terbaru di kelas yang diikuti. Siswa tanpa enrollment mendapat list
// kosong.
func (ctrl *StatsController) SiswaDashboard(c *fiber.Ctx) error {
	email := helperAuth.GetUserEmail(c)

	cids, err := classService.ClassesEnrolledBy(ctrl.DB, email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil dashboard")
	}
	if len(cids) == 0 {
		return helper.JsonOK(c, "Dashboard siswa", fiber.Map{
			"materi_terbaru":    []materiModel.MateriModel{},
			"aktivitas_terbaru": []dashboardActivity{},
		})
	}

	var materi []materiModel.MateriModel
	if err := ctrl.DB.
		Where("materi_kelas_cid IN ?", cids).
		Order("materi_created_at DESC").
		Limit(5).
		Find(&materi).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil dashboard")
	}

	var tasks []taskModel.TaskModel
	if err := ctrl.DB.
		Where("task_kelas_cid IN ?", cids).
		Order("task_created_at DESC").
		Limit(5).
		Find(&tasks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil dashboard")
	}
	var quizzes []quizModel.QuizModel
	if err := ctrl.DB.
		Where("quiz_kelas_cid IN ?", cids).
		Order("quiz_created_at DESC").
		Limit(5).
		Find(&quizzes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil dashboard")
	}

	activities := make([]dashboardActivity, 0, len(tasks)+len(quizzes))
	for _, t := range tasks {
		activities = append(activities, dashboardActivity{
			ID:        t.TaskID,
			Title:     t.TaskTitle,
			KelasCid:  t.TaskKelasCid,
			Type:      "tugas",
			CreatedAt: t.TaskCreatedAt,
		})
	}
	for _, q := range quizzes {
		activities = append(activities, dashboardActivity{
			ID:        q.QuizID,
			Title:     q.QuizTitle,
			KelasCid:  q.QuizKelasCid,
			Type:      "kuis",
			CreatedAt: q.QuizCreatedAt,
		})
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	if len(activities) > 5 {
		activities = activities[:5]
	}

	return helper.JsonOK(c, "Dashboard siswa", fiber.Map{
		"materi_terbaru":    materi,
		"aktivitas_terbaru": activities,
	})
}
