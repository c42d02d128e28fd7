package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "examgpt_backend/internals/features/payments/model"
	userModel "examgpt_backend/internals/features/users/auth/model"
	"examgpt_backend/internals/helpers/mailer"
)

/* =======================================================================
   Store
======================================================================= */

// PaymentStore memisahkan akses DB supaya alur webhook/verify bisa diuji
// dengan store in-memory.
type PaymentStore interface {
	FindByOrderID(orderID string) (*paymentModel.Payment, error)
	Save(p *paymentModel.Payment) error
	UpgradeToPremium(userID uuid.UUID) error
	FindUser(userID uuid.UUID) (*userModel.UserModel, error)
}

type GormPaymentStore struct {
	DB *gorm.DB
}

func NewGormPaymentStore(db *gorm.DB) *GormPaymentStore {
	return &GormPaymentStore{DB: db}
}

func (s *GormPaymentStore) FindByOrderID(orderID string) (*paymentModel.Payment, error) {
	var payment paymentModel.Payment
	if err := s.DB.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *GormPaymentStore) Save(p *paymentModel.Payment) error {
	return s.DB.Save(p).Error
}

func (s *GormPaymentStore) UpgradeToPremium(userID uuid.UUID) error {
	return s.DB.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("subscription", "premium").Error
}

func (s *GormPaymentStore) FindUser(userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

/* =======================================================================
   Webhook / verify
======================================================================= */

// WelcomeSender dipenuhi *mailer.MailerService.
type WelcomeSender interface {
	SendWelcome(email, name string) error
}

type WebhookService struct {
	Store  PaymentStore
	Mailer WelcomeSender
}

func NewWebhookService(db *gorm.DB, m *mailer.MailerService) *WebhookService {
	svc := &WebhookService{Store: NewGormPaymentStore(db)}
	// Assign hanya kalau non-nil supaya interface tidak berisi typed-nil.
	if m != nil {
		svc.Mailer = m
	}
	return svc
}

// HandleNotification dipanggil saat menerima notifikasi dari Midtrans.
// Idempotent: notifikasi ganda untuk order yang sudah paid tidak mengubah apa pun.
func (s *WebhookService) HandleNotification(body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	payment, err := s.Store.FindByOrderID(orderID)
	if err != nil {
		log.Println("[ERROR] Payment tidak ditemukan:", err)
		return fmt.Errorf("payment with order_id %s not found", orderID)
	}

	if payment.Status == "paid" {
		log.Println("[INFO] Payment sudah paid, notifikasi diabaikan:", orderID)
		return nil
	}

	// Simpan payload mentah untuk audit
	if raw, err := json.Marshal(body); err == nil {
		payment.PaymentDetails = raw
	}

	return s.ApplyStatus(payment, status)
}

// ApplyStatus memetakan status transaksi Midtrans ke status payment lokal,
// termasuk upgrade subscription. Dipakai webhook dan endpoint verify.
func (s *WebhookService) ApplyStatus(payment *paymentModel.Payment, status string) error {
	switch status {
	case "capture", "settlement":
		now := time.Now()
		payment.Status = "paid"
		payment.PaidAt = &now

		// Upgrade user ke premium
		if err := s.Store.UpgradeToPremium(payment.UserID); err != nil {
			log.Printf("[ERROR] Gagal upgrade user %s ke premium: %v", payment.UserID, err)
			return err
		}
		log.Printf("✅ User %s upgrade ke premium (order %s)", payment.Email, payment.OrderID)

		// Welcome email non-fatal
		if s.Mailer != nil {
			if user, err := s.Store.FindUser(payment.UserID); err == nil {
				if err := s.Mailer.SendWelcome(user.Email, user.Name); err != nil {
					log.Printf("[WARNING] Gagal kirim welcome email: %v", err)
				}
			}
		}

	case "expire":
		payment.Status = "expired"
	case "cancel", "deny":
		payment.Status = "canceled"
	default:
		log.Println("[INFO] Status tidak diproses:", status)
	}

	if err := s.Store.Save(payment); err != nil {
		log.Println("[ERROR] Gagal menyimpan status payment:", err)
		return err
	}
	return nil
}
