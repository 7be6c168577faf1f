package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"academic_backend/internals/configs"
	helper "academic_backend/internals/helpers"
)

// Global limiter: per IP, RATE_LIMIT_MAX request per menit
func GlobalRateLimiter() fiber.Handler {
	limit := configs.RateLimitMax
	if limit <= 0 {
		limit = 100
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Too many requests, try again later")
		},
	})
}
