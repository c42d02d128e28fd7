package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ Success Response tanpa custom code (default 200)
func Success(c *fiber.Ctx, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, data)
}

// ✅ Success Response dengan custom code (contoh 201 untuk created)
func SuccessWithCode(c *fiber.Ctx, code int, data interface{}) error {
	return c.Status(code).JSON(data)
}

// ✅ Error Response sederhana: {"error": "..."}
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// ✅ Error Response advance, bisa kirim multiple field error
func ErrorWithDetails(c *fiber.Ctx, code int, message string, details interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"error":   message,
		"details": details,
	})
}

// ✅ Khusus error validasi (validator.v10)
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors, ok := err.(validator.ValidationErrors); ok {
		ve = errors
	} else {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}

	fields := make(map[string]string)
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", fields)
}
