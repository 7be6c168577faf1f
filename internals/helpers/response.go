package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationError: khusus error validasi (validator.v10)
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	fields := make(map[string][]string, len(ve))
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = append(fields[fieldErr.Field()], fieldErr.Tag())
	}
	return JsonValidationError(c, firstFieldMessage(ve), fields)
}

func firstFieldMessage(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "validation failed"
	}
	fe := ve[0]
	if fe.Tag() == "required" {
		return "Field '" + fe.Field() + "' is required"
	}
	return "Field '" + fe.Field() + "' failed on '" + fe.Tag() + "'"
}
