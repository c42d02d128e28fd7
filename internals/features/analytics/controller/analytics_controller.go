package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"examgpt_backend/internals/configs"
	helper "examgpt_backend/internals/helpers"
)

type AnalyticsController struct {
	DB *gorm.DB

	// flag layanan eksternal untuk panel health
	OSSConfigured    bool
	GeminiConfigured bool
	ResendConfigured bool
}

func NewAnalyticsController(db *gorm.DB, oss, gemini, resend bool) *AnalyticsController {
	return &AnalyticsController{
		DB:               db,
		OSSConfigured:    oss,
		GeminiConfigured: gemini,
		ResendConfigured: resend,
	}
}

// GET /api/analytics/dashboard
func (ac *AnalyticsController) Dashboard(c *fiber.Ctx) error {
	out := fiber.Map{}

	var totalUsers, premiumUsers, totalQuestions, totalTests int64
	if err := ac.DB.Table("users").Count(&totalUsers).Error; err != nil {
		log.Printf("[ERROR] Analytics users: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}
	ac.DB.Table("users").Where("subscription = 'premium'").Count(&premiumUsers)
	ac.DB.Table("questions").Count(&totalQuestions)
	ac.DB.Table("test_results").Count(&totalTests)

	out["totals"] = fiber.Map{
		"users":        totalUsers,
		"premiumUsers": premiumUsers,
		"questions":    totalQuestions,
		"tests":        totalTests,
	}

	// Rata-rata accuracy seluruh tes
	var avgAccuracy float64
	ac.DB.Table("test_results").Select("COALESCE(AVG(accuracy), 0)").Scan(&avgAccuracy)
	out["averageAccuracy"] = avgAccuracy

	// Soal per subject per difficulty
	var questionRows []struct {
		Subject    string `json:"subject"`
		Difficulty string `json:"difficulty"`
		Count      int64  `json:"count"`
	}
	ac.DB.Table("questions").
		Select("subject, difficulty, COUNT(*) AS count").
		Group("subject, difficulty").
		Order("subject, difficulty").
		Scan(&questionRows)
	out["questionsBySubject"] = questionRows

	// Aktivitas tes 7 hari terakhir
	var dailyRows []struct {
		Day   time.Time `json:"day"`
		Tests int64     `json:"tests"`
	}
	ac.DB.Table("test_results").
		Select("DATE_TRUNC('day', created_at) AS day, COUNT(*) AS tests").
		Where("created_at > ?", time.Now().AddDate(0, 0, -7)).
		Group("day").
		Order("day").
		Scan(&dailyRows)
	out["last7Days"] = dailyRows

	// Top performer: minimal 3 tes, urut rata-rata accuracy
	var topRows []struct {
		Email       string  `json:"email"`
		Name        string  `json:"name"`
		Tests       int64   `json:"tests"`
		AvgAccuracy float64 `json:"avgAccuracy"`
	}
	ac.DB.Table("test_results").
		Select("users.email, users.name, COUNT(*) AS tests, AVG(test_results.accuracy) AS avg_accuracy").
		Joins("JOIN users ON users.id = test_results.user_id").
		Group("users.email, users.name").
		Having("COUNT(*) >= 3").
		Order("avg_accuracy DESC").
		Limit(5).
		Scan(&topRows)
	out["topPerformers"] = topRows

	return helper.Success(c, out)
}

// GET /api/analytics/features
func (ac *AnalyticsController) Health(c *fiber.Ctx) error {
	dbOK := false
	if sqlDB, err := ac.DB.DB(); err == nil {
		dbOK = sqlDB.Ping() == nil
	}

	return helper.Success(c, fiber.Map{
		"app": configs.AppName,
		"features": fiber.Map{
			"database": dbOK,
			"oss":      ac.OSSConfigured,
			"gemini":   ac.GeminiConfigured,
			"resend":   ac.ResendConfigured,
		},
	})
}
