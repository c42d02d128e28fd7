package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"examgpt_backend/internals/features/mentor/model"
	testModel "examgpt_backend/internals/features/tests/model"
	userModel "examgpt_backend/internals/features/users/auth/model"
	helper "examgpt_backend/internals/helpers"
	"examgpt_backend/internals/helpers/gemini"
)

type MentorController struct {
	DB       *gorm.DB
	AI       *gemini.Service
	validate *validator.Validate
}

func NewMentorController(db *gorm.DB, ai *gemini.Service) *MentorController {
	return &MentorController{DB: db, AI: ai, validate: validator.New()}
}

type chatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// POST /api/ai-mentor/chat (premium)
// Context untuk model = profil singkat + 5 hasil tes terakhir.
func (mc *MentorController) Chat(c *fiber.Ctx) error {
	if mc.AI == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "AI mentor is not configured")
	}

	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid UUID format")
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := mc.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	chatContext := mc.buildContext(userID)

	response, err := mc.AI.ChatWithMentor(c.UserContext(), req.Message, chatContext)
	if err != nil {
		log.Printf("[ERROR] ChatWithMentor: %v", err)
		return helper.Error(c, fiber.StatusBadGateway, "AI mentor is temporarily unavailable")
	}

	msg := model.ChatMessage{
		UserID:   userID,
		Message:  req.Message,
		Response: response,
	}
	if err := mc.DB.Create(&msg).Error; err != nil {
		// riwayat gagal tersimpan tapi jawaban tetap dikirim
		log.Printf("[WARNING] Simpan chat message gagal: %v", err)
	}

	return helper.Success(c, fiber.Map{
		"response":  response,
		"messageId": msg.ID,
	})
}

// GET /api/ai-mentor/history (premium)
func (mc *MentorController) History(c *fiber.Ctx) error {
	userIDStr, _ := c.Locals("user_id").(string)
	paging := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := mc.DB.Model(&model.ChatMessage{}).Where("user_id = ?", userIDStr).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch chat history")
	}

	var messages []model.ChatMessage
	err := mc.DB.
		Where("user_id = ?", userIDStr).
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.PerPage).
		Find(&messages).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch chat history")
	}

	return helper.Success(c, fiber.Map{
		"messages":   messages,
		"count":      len(messages),
		"pagination": helper.BuildPagination(total, paging),
	})
}

func (mc *MentorController) buildContext(userID uuid.UUID) fiber.Map {
	ctx := fiber.Map{}

	var user userModel.UserModel
	if err := mc.DB.Select("name", "class", "city").First(&user, "id = ?", userID).Error; err == nil {
		ctx["student"] = fiber.Map{
			"name":  user.Name,
			"class": user.Class,
			"city":  user.City,
		}
	}

	var results []testModel.TestResult
	if err := mc.DB.
		Select("subject", "chapter", "score", "max_score", "accuracy", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&results).Error; err == nil && len(results) > 0 {
		ctx["recentTests"] = results
	}

	return ctx
}
