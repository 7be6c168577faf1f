// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicRoutes "academic_backend/internals/features/academic/route"
	"academic_backend/internals/features/academic/service"
)

var startTime = time.Now()

func SetupRoutes(app *fiber.App, db *gorm.DB, svc *service.GradingService) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Println("[INFO] Mounting Academic routes under /api...")
	api := app.Group("/api")
	academicRoutes.AcademicRoutes(api, svc)
}
