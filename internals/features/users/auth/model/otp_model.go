package model

import (
	"time"

	"github.com/google/uuid"
)

// OTPVerification menyimpan kode OTP per email. Satu email bisa punya
// beberapa baris; hanya baris belum-verified & belum-expired yang valid.
type OTPVerification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);index;not null" json:"email"`
	OTP       string    `gorm:"type:varchar(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OTPVerification) TableName() string {
	return "otp_verifications"
}

func (o *OTPVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
