package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"examgpt_backend/internals/features/users/auth/controller"
	"examgpt_backend/internals/helpers/mailer"
	"examgpt_backend/internals/middlewares"
	authMw "examgpt_backend/internals/middlewares/auth"
)

// AuthRoutes: endpoint publik (OTP flow) + /me yang butuh token.
func AuthRoutes(api fiber.Router, db *gorm.DB, m *mailer.MailerService) {
	ctrl := controller.NewAuthController(db, m)

	auth := api.Group("/auth")
	auth.Post("/send-otp", middlewares.OTPRateLimiter(), ctrl.SendOTP)
	auth.Post("/verify-otp", ctrl.VerifyOTP)
	auth.Post("/register", ctrl.Register)
	auth.Get("/check-user", ctrl.CheckUser)
	auth.Post("/check-user", ctrl.CheckUser)

	auth.Get("/me", authMw.AuthMiddleware(db), ctrl.Me)
}
