package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	homeController "sekolahku_backend/internals/features/home/controller"
	kelasController "sekolahku_backend/internals/features/school/classes/controller"
	materiController "sekolahku_backend/internals/features/school/materials/controller"
	quizController "sekolahku_backend/internals/features/school/quizzes/controller"
	quizService "sekolahku_backend/internals/features/school/quizzes/service"
	submissionController "sekolahku_backend/internals/features/school/submissions/controller"
	taskController "sekolahku_backend/internals/features/school/tasks/controller"
	"sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	"sekolahku_backend/internals/policy"
)

// SchoolRoutes: resource pembelajaran. GET dibuka untuk semua role
// terautentikasi (hasil dibatasi scope kelas), mutasi dijaga policy.
func SchoolRoutes(api fiber.Router, db *gorm.DB) {
	kelas := kelasController.NewKelasController(db)
	materi := materiController.NewMateriController(db)
	tasks := taskController.NewTaskController(db)
	subs := submissionController.NewSubmissionController(db)
	quizzes := quizController.NewQuizController(db, quizService.NewGeminiGeneratorFromEnv())
	quizSubs := quizController.NewQuizSubmissionController(db)
	stats := homeController.NewStatsController(db)

	// ==================== KELAS ====================
	api.Get("/kelas", kelas.List)
	api.Post("/kelas", authMiddleware.RequireAction(policy.ActionWriteKelas), kelas.Create)
	api.Put("/kelas", authMiddleware.RequireAction(policy.ActionWriteKelas), kelas.Update)
	api.Delete("/kelas", authMiddleware.RequireAction(policy.ActionWriteKelas), kelas.Delete)

	// ==================== MATERI ====================
	api.Get("/materi", materi.List)
	api.Post("/materi", authMiddleware.RequireAction(policy.ActionWriteMateri), materi.Create)
	api.Put("/materi", authMiddleware.RequireAction(policy.ActionWriteMateri), materi.Update)
	api.Delete("/materi", authMiddleware.RequireAction(policy.ActionWriteMateri), materi.Delete)

	// ==================== TUGAS ====================
	api.Get("/tasks", tasks.List)
	api.Post("/tasks", authMiddleware.RequireAction(policy.ActionWriteTask), tasks.Create)
	api.Put("/tasks", authMiddleware.RequireAction(policy.ActionWriteTask), tasks.Update)
	api.Delete("/tasks", authMiddleware.RequireAction(policy.ActionWriteTask), tasks.Delete)

	// ==================== JAWABAN TUGAS ====================
	api.Get("/submissions", subs.List)
	api.Post("/submissions", authMiddleware.RequireAction(policy.ActionSubmitTask), subs.Create)
	api.Put("/submissions", authMiddleware.RequireAction(policy.ActionGradeSubmission), subs.Grade)

	// ==================== KUIS ====================
	api.Post("/generate-quiz",
		authMiddleware.RequireAction(policy.ActionGenerateQuiz),
		middlewares.GenerateQuizRateLimiter(),
		quizzes.Generate,
	)
	api.Get("/quizzes", quizzes.List)
	api.Get("/quizzes/:id", quizzes.GetByID)

	api.Get("/quiz-submissions", quizSubs.List)
	api.Post("/quiz-submissions", authMiddleware.RequireAction(policy.ActionSubmitQuiz), quizSubs.Create)

	// ==================== DASHBOARD ====================
	// guru/stats menolak admin juga, bukan sekadar policy guru-atau-admin
	api.Get("/guru/stats",
		authMiddleware.OnlyRoles("Hanya guru yang dapat mengakses statistik ini", policy.RoleGuru),
		stats.GuruStats,
	)
	api.Get("/siswa/dashboard", stats.SiswaDashboard)
}
