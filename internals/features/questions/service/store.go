// internals/features/questions/service/store.go
package service

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/questions/model"
)

// CompletionCount memetakan jumlah soal tersimpan per tingkat kesulitan.
type CompletionCount struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

func (c CompletionCount) Total() int {
	return c.Easy + c.Medium + c.Hard
}

// Complete: setiap difficulty sudah mencapai target. Melebihi target juga
// dianggap lengkap (tidak pernah dipangkas otomatis).
func (c CompletionCount) Complete() bool {
	return c.Easy >= configs.QuestionsPerDifficulty &&
		c.Medium >= configs.QuestionsPerDifficulty &&
		c.Hard >= configs.QuestionsPerDifficulty
}

func (c CompletionCount) ForDifficulty(difficulty string) int {
	switch difficulty {
	case "easy":
		return c.Easy
	case "medium":
		return c.Medium
	case "hard":
		return c.Hard
	}
	return 0
}

// QuestionStore mengabstraksi akses DB supaya orchestrator bisa dites
// dengan fake tanpa PostgreSQL.
type QuestionStore interface {
	CountByDifficulty(ctx context.Context, subject, chapter, classLevel string) (CompletionCount, error)
	TotalCount(ctx context.Context, subject, chapter, classLevel string) (int64, error)
	InsertBatch(ctx context.Context, questions []model.Question) error
	DeleteChapter(ctx context.Context, subject, chapter, classLevel string) error
	FetchChapter(ctx context.Context, subject, chapter, classLevel, difficulty string, limit int) ([]model.Question, error)
	AcquireLease(ctx context.Context, subject, chapter, classLevel string, ttl time.Duration) (bool, error)
	ReleaseLease(ctx context.Context, subject, chapter, classLevel string) error
}

/* =======================================================================
   Implementasi GORM
======================================================================= */

type GormQuestionStore struct {
	DB *gorm.DB
}

func NewGormQuestionStore(db *gorm.DB) *GormQuestionStore {
	return &GormQuestionStore{DB: db}
}

func (s *GormQuestionStore) CountByDifficulty(ctx context.Context, subject, chapter, classLevel string) (CompletionCount, error) {
	var rows []struct {
		Difficulty string
		Count      int
	}
	err := s.DB.WithContext(ctx).
		Model(&model.Question{}).
		Select("difficulty, COUNT(*) AS count").
		Where("subject = ? AND chapter = ? AND class_level = ?", subject, chapter, classLevel).
		Group("difficulty").
		Scan(&rows).Error
	if err != nil {
		return CompletionCount{}, err
	}

	var out CompletionCount
	for _, r := range rows {
		switch r.Difficulty {
		case "easy":
			out.Easy = r.Count
		case "medium":
			out.Medium = r.Count
		case "hard":
			out.Hard = r.Count
		}
	}
	return out, nil
}

func (s *GormQuestionStore) TotalCount(ctx context.Context, subject, chapter, classLevel string) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&model.Question{}).
		Where("subject = ? AND chapter = ? AND class_level = ?", subject, chapter, classLevel).
		Count(&count).Error
	return count, err
}

// InsertBatch menyimpan soal dalam satu bulk insert.
// ON CONFLICT DO NOTHING: id komposit sudah unik, bentrok berarti duplikat.
func (s *GormQuestionStore) InsertBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(questions, 200).Error
}

func (s *GormQuestionStore) DeleteChapter(ctx context.Context, subject, chapter, classLevel string) error {
	return s.DB.WithContext(ctx).
		Where("subject = ? AND chapter = ? AND class_level = ?", subject, chapter, classLevel).
		Delete(&model.Question{}).Error
}

func (s *GormQuestionStore) FetchChapter(ctx context.Context, subject, chapter, classLevel, difficulty string, limit int) ([]model.Question, error) {
	q := s.DB.WithContext(ctx).
		Where("subject = ? AND chapter = ? AND class_level = ?", subject, chapter, classLevel)
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	if limit > 0 {
		q = q.Order("RANDOM()").Limit(limit)
	}

	var out []model.Question
	err := q.Find(&out).Error
	return out, err
}

/* =======================================================================
   Lease per bab: mencegah dua proses generate bab yang sama bersamaan
======================================================================= */

// AcquireLease mencoba mengambil lease untuk satu bab. Lease yang sudah
// kedaluwarsa dibersihkan dulu, lalu insert ON CONFLICT DO NOTHING:
// RowsAffected == 0 berarti proses lain sedang memegang lease.
func (s *GormQuestionStore) AcquireLease(ctx context.Context, subject, chapter, classLevel string, ttl time.Duration) (bool, error) {
	now := time.Now()

	if err := s.DB.WithContext(ctx).
		Where("subject = ? AND chapter = ? AND class_level = ? AND expires_at < ?", subject, chapter, classLevel, now).
		Delete(&model.GenerationLease{}).Error; err != nil {
		return false, err
	}

	lease := model.GenerationLease{
		Subject:    subject,
		Chapter:    chapter,
		ClassLevel: classLevel,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&lease)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormQuestionStore) ReleaseLease(ctx context.Context, subject, chapter, classLevel string) error {
	return s.DB.WithContext(ctx).
		Where("subject = ? AND chapter = ? AND class_level = ?", subject, chapter, classLevel).
		Delete(&model.GenerationLease{}).Error
}
