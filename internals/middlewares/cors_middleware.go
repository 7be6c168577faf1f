// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"academic_backend/internals/configs"
)

// CorsMiddleware membaca daftar origin dari CORS_ORIGINS (dipisah koma).
func CorsMiddleware() fiber.Handler {
	origins := strings.TrimSpace(configs.CorsOrigins)
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, Content-Disposition",
		AllowCredentials: origins != "*", // fiber menolak kredensial dengan wildcard
	})
}
