package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/users/auth/dto"
	"examgpt_backend/internals/features/users/auth/model"
	"examgpt_backend/internals/features/users/auth/service"
	helper "examgpt_backend/internals/helpers"
	"examgpt_backend/internals/helpers/mailer"
)

type AuthController struct {
	DB       *gorm.DB
	Mailer   *mailer.MailerService
	OTP      *service.OTPService
	validate *validator.Validate
}

func NewAuthController(db *gorm.DB, m *mailer.MailerService) *AuthController {
	return &AuthController{DB: db, Mailer: m, OTP: service.NewOTPService(db), validate: validator.New()}
}

// POST /api/auth/send-otp
func (ac *AuthController) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	otp, err := ac.OTP.CreateOTP(req.Email)
	if err != nil {
		log.Printf("[ERROR] CreateOTP %s: %v", req.Email, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create OTP")
	}

	// Kirim email non-fatal: OTP tetap tersimpan walau email gagal.
	emailSent := false
	if ac.Mailer != nil {
		if err := ac.Mailer.SendOTP(req.Email, otp.OTP); err != nil {
			log.Printf("[WARNING] Gagal kirim email OTP ke %s: %v", req.Email, err)
		} else {
			emailSent = true
		}
	}

	resp := fiber.Map{
		"success":   true,
		"message":   "OTP sent successfully",
		"emailSent": emailSent,
	}
	// Echo OTP hanya untuk environment development
	if configs.GetEnv("DEBUG_OTP", "false") == "true" {
		resp["otp"] = otp.OTP
	}
	return helper.Success(c, resp)
}

// POST /api/auth/verify-otp
func (ac *AuthController) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ac.OTP.VerifyOTP(req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, service.ErrOTPExpired):
			return helper.Error(c, fiber.StatusBadRequest, "OTP has expired")
		case errors.Is(err, service.ErrOTPInvalid):
			return helper.Error(c, fiber.StatusBadRequest, "Invalid OTP")
		default:
			log.Printf("[ERROR] VerifyOTP %s: %v", req.Email, err)
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to verify OTP")
		}
	}

	// Kalau user sudah terdaftar → langsung login (terbitkan token).
	var user model.UserModel
	err := ac.DB.First(&user, "email = ?", req.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Success(c, dto.VerifyOTPResponse{Verified: true, IsNewUser: true})
		}
		log.Printf("[ERROR] Cari user %s: %v", req.Email, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	token, err := service.GenerateToken(&user)
	if err != nil {
		log.Printf("[ERROR] GenerateToken: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return helper.Success(c, dto.VerifyOTPResponse{
		Verified:  true,
		IsNewUser: false,
		Token:     token,
		User:      toUserResponse(&user),
	})
}

// POST /api/auth/register
// Hanya boleh setelah email verifikasi OTP.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	verified, err := ac.OTP.HasVerifiedOTP(req.Email)
	if err != nil {
		log.Printf("[ERROR] HasVerifiedOTP %s: %v", req.Email, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !verified {
		return helper.Error(c, fiber.StatusForbidden, "Email not verified")
	}

	var existing model.UserModel
	if err := ac.DB.First(&existing, "email = ?", req.Email).Error; err == nil {
		return helper.Error(c, fiber.StatusConflict, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] Cek user %s: %v", req.Email, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	user := model.UserModel{
		Email:        req.Email,
		Name:         req.Name,
		DateOfBirth:  req.DateOfBirth,
		Class:        req.Class,
		PhoneNumber:  req.PhoneNumber,
		City:         req.City,
		Subscription: "free",
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		log.Printf("[ERROR] Create user %s: %v", req.Email, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	token, err := service.GenerateToken(&user)
	if err != nil {
		log.Printf("[ERROR] GenerateToken: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	log.Printf("✅ User baru terdaftar: %s", user.Email)
	return helper.SuccessWithCode(c, fiber.StatusCreated, fiber.Map{
		"token": token,
		"user":  toUserResponse(&user),
	})
}

// GET /api/auth/check-user?email=  (POST dengan body juga diterima)
// Probe eksistensi + tier subscription, dipakai frontend sebelum kirim OTP.
func (ac *AuthController) CheckUser(c *fiber.Ctx) error {
	req := dto.CheckUserRequest{Email: c.Query("email")}
	if req.Email == "" {
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := ac.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	err := ac.DB.Select("id", "subscription").First(&user, "email = ?", req.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Success(c, fiber.Map{"exists": false})
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.Success(c, fiber.Map{
		"exists":       true,
		"subscription": user.Subscription,
	})
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userUUID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid UUID format")
	}

	var user model.UserModel
	if err := ac.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, fiber.Map{"user": user})
}

func toUserResponse(u *model.UserModel) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		Name:         u.Name,
		Class:        u.Class,
		Subscription: u.Subscription,
	}
}
