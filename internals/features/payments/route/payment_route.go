package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"examgpt_backend/internals/features/payments/controller"
	"examgpt_backend/internals/helpers/mailer"
	authMw "examgpt_backend/internals/middlewares/auth"
)

func PaymentRoutes(api fiber.Router, db *gorm.DB, m *mailer.MailerService) {
	ctrl := controller.NewPaymentController(db, m)

	payment := api.Group("/payment")

	// Webhook dari Midtrans: publik
	payment.Post("/webhook", ctrl.Webhook)

	// Sisanya butuh login
	payment.Post("/create-session", authMw.AuthMiddleware(db), ctrl.CreateSession)
	payment.Post("/verify", authMw.AuthMiddleware(db), ctrl.Verify)
	payment.Get("/status/:orderId", authMw.AuthMiddleware(db), ctrl.Status)
}
