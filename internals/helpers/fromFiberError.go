package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FiberErrorHandler dipasang sebagai fiber.Config.ErrorHandler: error yang
// lolos dari handler (404 route, panic via recover, *fiber.Error) tetap
// keluar dalam bentuk ErrorResponse.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] id=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
