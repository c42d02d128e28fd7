package controller

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"examgpt_backend/internals/features/questions/catalog"
	"examgpt_backend/internals/features/tests/dto"
	"examgpt_backend/internals/features/tests/model"
	"examgpt_backend/internals/features/tests/service"
	helper "examgpt_backend/internals/helpers"
	"examgpt_backend/internals/helpers/gemini"
)

type TestController struct {
	DB       *gorm.DB
	AI       *gemini.Service
	validate *validator.Validate
}

func NewTestController(db *gorm.DB, ai *gemini.Service) *TestController {
	return &TestController{DB: db, AI: ai, validate: validator.New()}
}

// POST /api/test/submit
// Menilai jawaban (+4/-1/0), simpan hasil, lalu minta analisis AI.
// Analisis gagal tidak menggagalkan submit.
func (tc *TestController) Submit(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid UUID format")
	}

	var req dto.SubmitTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := tc.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if _, ok := catalog.Find(req.Subject, req.ClassLevel, req.Chapter); !ok {
		return helper.Error(c, fiber.StatusNotFound, "Unknown chapter")
	}

	summary := service.ScoreAnswers(req.Answers)

	questionsData, err := json.Marshal(req.Answers)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid answers payload")
	}

	result := model.TestResult{
		UserID:         userID,
		Subject:        req.Subject,
		Chapter:        req.Chapter,
		ClassLevel:     req.ClassLevel,
		Difficulty:     req.Difficulty,
		TotalQuestions: summary.Total,
		Correct:        summary.Correct,
		Incorrect:      summary.Incorrect,
		Unanswered:     summary.Unanswered,
		Score:          summary.Score,
		MaxScore:       summary.MaxScore,
		Accuracy:       summary.Accuracy,
		TimeTakenSec:   req.TimeTakenSec,
		QuestionsData:  questionsData,
	}

	// Analisis AI non-fatal
	if tc.AI != nil {
		analysis, err := tc.AI.AnalyzePerformance(c.UserContext(), gemini.AnalysisInput{
			Subject:         req.Subject,
			Chapter:         req.Chapter,
			Score:           summary.Score,
			MaxScore:        summary.MaxScore,
			Accuracy:        summary.Accuracy,
			IncorrectTopics: incorrectTopics(req.Answers),
		})
		if err != nil {
			log.Printf("[WARNING] AnalyzePerformance gagal: %v", err)
		} else {
			result.AIAnalysis = analysis
		}
	}

	if err := tc.DB.Create(&result).Error; err != nil {
		log.Printf("[ERROR] Simpan test result: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save test result")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, fiber.Map{
		"resultId": result.ID,
		"summary":  summary,
		"analysis": result.AIAnalysis,
	})
}

// GET /api/test/results dan /api/test/results/:userId
// Hasil hanya bisa dilihat pemiliknya sendiri.
func (tc *TestController) Results(c *fiber.Ctx) error {
	userIDStr, _ := c.Locals("user_id").(string)
	if param := c.Params("userId"); param != "" && param != userIDStr {
		return helper.Error(c, fiber.StatusForbidden, "Cannot access another user's results")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := tc.DB.Model(&model.TestResult{}).Where("user_id = ?", userIDStr).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch results")
	}

	var results []model.TestResult
	err := tc.DB.
		Where("user_id = ?", userIDStr).
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.PerPage).
		Omit("questions_data").
		Find(&results).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch results")
	}

	return helper.Success(c, fiber.Map{
		"results":    results,
		"count":      len(results),
		"pagination": helper.BuildPagination(total, paging),
	})
}

// GET /api/test/result/:id (detail, termasuk questions_data)
func (tc *TestController) ResultDetail(c *fiber.Ctx) error {
	userIDStr, _ := c.Locals("user_id").(string)

	var result model.TestResult
	err := tc.DB.
		Where("id = ? AND user_id = ?", c.Params("id"), userIDStr).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Result not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.Success(c, fiber.Map{"result": result})
}

func incorrectTopics(answers []service.Answer) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, a := range answers {
		if a.Unanswered() || a.Correct() || a.Topic == "" {
			continue
		}
		if _, ok := seen[a.Topic]; ok {
			continue
		}
		seen[a.Topic] = struct{}{}
		out = append(out, a.Topic)
	}
	return out
}
