package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage menyimpan satu tukar pesan dengan AI mentor.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text" json:"response"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
