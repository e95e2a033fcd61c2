package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	routeDetails "sekolahku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH (publik) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== PRIVATE =====================
	// Role tidak dibaca dari klaim token melainkan di-resolve ulang dari
	// tabel users di setiap request.
	log.Println("[INFO] Setting up PRIVATE group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Setting up AdminRoutes...")
	routeDetails.AdminRoutes(api, db)

	log.Println("[INFO] Setting up SchoolRoutes...")
	routeDetails.SchoolRoutes(api, db)
}
