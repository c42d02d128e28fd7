package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DBMiddleware menyimpan koneksi GORM di Locals supaya handler ad-hoc
// bisa akses DB tanpa dependency injection penuh.
func DBMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("db", db)
		return c.Next()
	}
}
