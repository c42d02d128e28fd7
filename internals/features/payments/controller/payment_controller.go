package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/payments/model"
	"examgpt_backend/internals/features/payments/service"
	userModel "examgpt_backend/internals/features/users/auth/model"
	helper "examgpt_backend/internals/helpers"
	"examgpt_backend/internals/helpers/mailer"
)

type PaymentController struct {
	DB       *gorm.DB
	Webhooks *service.WebhookService
}

func NewPaymentController(db *gorm.DB, m *mailer.MailerService) *PaymentController {
	return &PaymentController{DB: db, Webhooks: service.NewWebhookService(db, m)}
}

// POST /api/payment/create-session
// Membuat payment session premium untuk user yang sedang login.
func (pc *PaymentController) CreateSession(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid UUID format")
	}

	var user userModel.UserModel
	if err := pc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	if user.IsPremium() {
		return helper.Error(c, fiber.StatusConflict, "Already premium")
	}

	payment := model.Payment{
		OrderID: fmt.Sprintf("EXAMGPT_%d", time.Now().UnixNano()),
		UserID:  user.ID,
		Email:   user.Email,
		Amount:  configs.SubscriptionPrice,
		Status:  "pending",
	}
	if err := pc.DB.Create(&payment).Error; err != nil {
		log.Printf("[ERROR] Gagal membuat payment: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create payment")
	}

	token, err := service.GenerateSnapToken(payment, user.Name, user.Email)
	if err != nil {
		log.Printf("[ERROR] GenerateSnapToken order %s: %v", payment.OrderID, err)
		pc.DB.Model(&payment).Update("status", "failed")
		return helper.Error(c, fiber.StatusBadGateway, "Failed to create payment session")
	}

	if err := pc.DB.Model(&payment).Update("payment_session_id", token).Error; err != nil {
		log.Printf("[WARNING] Gagal simpan session id order %s: %v", payment.OrderID, err)
	}

	return helper.Success(c, fiber.Map{
		"orderId":          payment.OrderID,
		"amount":           payment.Amount,
		"paymentSessionId": token,
	})
}

// POST /api/payment/verify
// Fallback manual saat webhook belum sampai: tanya status order langsung
// ke Midtrans lalu terapkan hasilnya.
func (pc *PaymentController) Verify(c *fiber.Ctx) error {
	userIDStr, _ := c.Locals("user_id").(string)

	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := c.BodyParser(&req); err != nil || req.OrderID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "orderId is required")
	}

	var payment model.Payment
	err := pc.DB.Where("order_id = ? AND user_id = ?", req.OrderID, userIDStr).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if payment.Status != "paid" {
		status, err := service.CheckTransactionStatus(payment.OrderID)
		if err != nil {
			log.Printf("[ERROR] Verify order %s: %v", payment.OrderID, err)
			return helper.Error(c, fiber.StatusBadGateway, "Failed to verify payment")
		}
		if err := pc.Webhooks.ApplyStatus(&payment, status); err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to update payment")
		}
	}

	return helper.Success(c, fiber.Map{
		"orderId": payment.OrderID,
		"status":  payment.Status,
		"premium": payment.Status == "paid",
	})
}

// POST /api/payment/webhook (publik, di-skip auth middleware)
func (pc *PaymentController) Webhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid webhook payload")
	}

	if err := pc.Webhooks.HandleNotification(body); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, fiber.Map{"received": true})
}

// GET /api/payment/status/:orderId
func (pc *PaymentController) Status(c *fiber.Ctx) error {
	userIDStr, _ := c.Locals("user_id").(string)
	orderID := c.Params("orderId")

	var payment model.Payment
	err := pc.DB.Where("order_id = ? AND user_id = ?", orderID, userIDStr).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.Success(c, fiber.Map{
		"orderId": payment.OrderID,
		"status":  payment.Status,
		"amount":  payment.Amount,
		"paidAt":  payment.PaidAt,
	})
}
