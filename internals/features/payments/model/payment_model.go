package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Payment mencatat transaksi upgrade premium (sekali bayar).
type Payment struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID          string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_id"`
	UserID           uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Email            string         `gorm:"type:varchar(255);index;not null" json:"email"`
	Amount           int            `gorm:"not null" json:"amount"`
	Status           string         `gorm:"type:varchar(20);default:'pending'" json:"status"` // pending|paid|expired|canceled|failed
	PaymentSessionID string         `gorm:"type:varchar(255)" json:"payment_session_id,omitempty"`
	PaymentDetails   datatypes.JSON `gorm:"type:jsonb" json:"payment_details,omitempty"`
	PaidAt           *time.Time     `json:"paid_at,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
