package model

import (
	"time"

	"github.com/lib/pq"
)

// Question merepresentasikan tabel questions.
// ID bukan uuid melainkan id komposit dari generator:
// {subject}_{chapter}_{classLevel}_{difficulty}_{unixMilli}_{index}_{rand}
type Question struct {
	ID            string         `gorm:"column:id;type:varchar(200);primaryKey" json:"id"`
	Subject       string         `gorm:"column:subject;type:varchar(30);not null;index:idx_questions_chapter,priority:1" json:"subject"`
	Chapter       string         `gorm:"column:chapter;type:varchar(120);not null;index:idx_questions_chapter,priority:2" json:"chapter"`
	ClassLevel    string         `gorm:"column:class_level;type:varchar(10);not null;index:idx_questions_chapter,priority:3" json:"class_level"`
	Difficulty    string         `gorm:"column:difficulty;type:varchar(10);not null" json:"difficulty"`
	Question      string         `gorm:"column:question;type:text;not null" json:"question"`
	Options       pq.StringArray `gorm:"column:options;type:text[];not null" json:"options"`
	CorrectAnswer string         `gorm:"column:correct_answer;type:text;not null" json:"correct_answer"`
	Explanation   string         `gorm:"column:explanation;type:text" json:"explanation"`
	Topic         string         `gorm:"column:topic;type:varchar(160)" json:"topic"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}
