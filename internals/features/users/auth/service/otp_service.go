// internals/features/users/auth/service/otp_service.go
package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/users/auth/model"
)

var (
	ErrOTPInvalid = errors.New("kode OTP salah")
	ErrOTPExpired = errors.New("kode OTP sudah kedaluwarsa")
)

/* =======================================================================
   Store
======================================================================= */

// OTPStore memisahkan akses DB supaya alur verifikasi bisa diuji
// dengan store in-memory.
type OTPStore interface {
	// Replace menghanguskan OTP lama (belum verified) untuk email tsb
	// lalu menyimpan baris baru, dalam satu transaksi.
	Replace(otp *model.OTPVerification, now time.Time) error
	// LatestUnverified mengembalikan nil tanpa error kalau tidak ada
	// baris aktif (belum pernah minta OTP, atau kode sudah dipakai).
	LatestUnverified(email string) (*model.OTPVerification, error)
	MarkVerified(otp *model.OTPVerification) error
	CountVerifiedSince(email string, since time.Time) (int64, error)
}

type GormOTPStore struct {
	DB *gorm.DB
}

func NewGormOTPStore(db *gorm.DB) *GormOTPStore {
	return &GormOTPStore{DB: db}
}

func (s *GormOTPStore) Replace(otp *model.OTPVerification, now time.Time) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		// OTP lama yang belum dipakai langsung dianggap hangus
		if err := tx.Model(&model.OTPVerification{}).
			Where("email = ? AND verified = false", otp.Email).
			Update("expires_at", now).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

func (s *GormOTPStore) LatestUnverified(email string) (*model.OTPVerification, error) {
	var otp model.OTPVerification
	err := s.DB.
		Where("email = ? AND verified = false", email).
		Order("created_at DESC").
		First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (s *GormOTPStore) MarkVerified(otp *model.OTPVerification) error {
	return s.DB.Model(otp).Update("verified", true).Error
}

func (s *GormOTPStore) CountVerifiedSince(email string, since time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&model.OTPVerification{}).
		Where("email = ? AND verified = true AND expires_at > ?", email, since).
		Count(&count).Error
	return count, err
}

/* =======================================================================
   Service
======================================================================= */

type OTPService struct {
	Store OTPStore
	Now   func() time.Time
}

func NewOTPService(db *gorm.DB) *OTPService {
	return &OTPService{Store: NewGormOTPStore(db), Now: time.Now}
}

// GenerateOTP menghasilkan 6 digit acak dari crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// CreateOTP membatalkan OTP lama untuk email yang sama lalu menyimpan yang baru.
func (s *OTPService) CreateOTP(email string) (*model.OTPVerification, error) {
	code, err := GenerateOTP()
	if err != nil {
		return nil, err
	}

	now := s.Now()
	otp := &model.OTPVerification{
		Email:     email,
		OTP:       code,
		ExpiresAt: now.Add(configs.OTPExpiry),
	}
	if err := s.Store.Replace(otp, now); err != nil {
		return nil, fmt.Errorf("simpan OTP: %w", err)
	}
	return otp, nil
}

// VerifyOTP memeriksa kode untuk email tsb dan menandainya verified.
// Kode kedaluwarsa, sudah dipakai, atau salah semuanya ditolak.
func (s *OTPService) VerifyOTP(email, code string) error {
	otp, err := s.Store.LatestUnverified(email)
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrOTPInvalid
	}

	if otp.Expired(s.Now()) {
		return ErrOTPExpired
	}
	if otp.OTP != code {
		return ErrOTPInvalid
	}

	return s.Store.MarkVerified(otp)
}

// HasVerifiedOTP mengecek apakah email sudah pernah verifikasi OTP
// yang masih dalam window kedaluwarsa (dipakai gate register).
func (s *OTPService) HasVerifiedOTP(email string) (bool, error) {
	count, err := s.Store.CountVerifiedSince(email, s.Now().Add(-configs.OTPExpiry))
	return count > 0, err
}
