package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel menyimpan akun siswa. Auth hanya lewat OTP email, tanpa password.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(100)" json:"name"`
	DateOfBirth  string    `gorm:"type:varchar(20)" json:"date_of_birth,omitempty"`
	Class        string    `gorm:"type:varchar(20)" json:"class,omitempty"`
	PhoneNumber  string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	City         string    `gorm:"type:varchar(100)" json:"city,omitempty"`
	Subscription string    `gorm:"type:varchar(20);default:'free'" json:"subscription"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) IsPremium() bool {
	return u.Subscription == "premium"
}
