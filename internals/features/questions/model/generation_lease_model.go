package model

import "time"

// GenerationLease adalah lock row pendek per bab supaya dua run batch
// tidak mengerjakan bab yang sama bersamaan (read-count lalu write tidak atomik).
type GenerationLease struct {
	Subject    string    `gorm:"column:subject;type:varchar(30);primaryKey" json:"subject"`
	Chapter    string    `gorm:"column:chapter;type:varchar(120);primaryKey" json:"chapter"`
	ClassLevel string    `gorm:"column:class_level;type:varchar(10);primaryKey" json:"class_level"`
	ExpiresAt  time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (GenerationLease) TableName() string {
	return "generation_leases"
}
