package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TestResult menyimpan hasil satu sesi latihan/test.
type TestResult struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Subject        string         `gorm:"type:varchar(30);index;not null" json:"subject"`
	Chapter        string         `gorm:"type:varchar(120);not null" json:"chapter"`
	ClassLevel     string         `gorm:"type:varchar(10);not null" json:"class_level"`
	Difficulty     string         `gorm:"type:varchar(10)" json:"difficulty,omitempty"`
	TotalQuestions int            `gorm:"not null" json:"total_questions"`
	Correct        int            `gorm:"not null" json:"correct"`
	Incorrect      int            `gorm:"not null" json:"incorrect"`
	Unanswered     int            `gorm:"not null" json:"unanswered"`
	Score          int            `gorm:"not null" json:"score"`
	MaxScore       int            `gorm:"not null" json:"max_score"`
	Accuracy       int            `gorm:"not null" json:"accuracy"`
	TimeTakenSec   int            `json:"time_taken_sec"`
	QuestionsData  datatypes.JSON `gorm:"type:jsonb" json:"questions_data,omitempty"`
	AIAnalysis     string         `gorm:"type:text" json:"ai_analysis,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (TestResult) TableName() string {
	return "test_results"
}
