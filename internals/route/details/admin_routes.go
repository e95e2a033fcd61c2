package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	homeController "sekolahku_backend/internals/features/home/controller"
	"sekolahku_backend/internals/features/users/identity"
	userController "sekolahku_backend/internals/features/users/user/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	"sekolahku_backend/internals/policy"
)

// AdminRoutes: manajemen pengguna (saga dua penyimpanan) + statistik admin.
func AdminRoutes(api fiber.Router, db *gorm.DB) {
	idSvc := identity.NewService(db, identity.NewHTTPProviderFromEnv())
	users := userController.NewUserAdminController(db, idSvc)
	stats := homeController.NewStatsController(db)

	admin := api.Group("/admin", authMiddleware.RequireAction(policy.ActionManageUsers))
	admin.Get("/users", users.List)
	admin.Post("/users", users.Create)
	admin.Put("/users", users.Update)
	admin.Delete("/users", users.Delete)
	admin.Get("/stats", stats.AdminStats)
}
