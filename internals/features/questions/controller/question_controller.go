package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"examgpt_backend/internals/features/questions/catalog"
	"examgpt_backend/internals/features/questions/dto"
	"examgpt_backend/internals/features/questions/service"
	helper "examgpt_backend/internals/helpers"
)

type QuestionController struct {
	Store     service.QuestionStore
	Generator *service.GenerationService
	validate  *validator.Validate
}

func NewQuestionController(store service.QuestionStore, generator *service.GenerationService) *QuestionController {
	return &QuestionController{Store: store, Generator: generator, validate: validator.New()}
}

// GET /api/questions/subjects
// Katalog lengkap untuk dropdown frontend.
func (qc *QuestionController) Subjects(c *fiber.Ctx) error {
	out := fiber.Map{}
	for _, subject := range catalog.Subjects() {
		perClass := fiber.Map{}
		for _, classLevel := range catalog.ClassLevels() {
			perClass[classLevel] = catalog.Chapters(subject, classLevel)
		}
		out[subject] = perClass
	}
	return helper.Success(c, fiber.Map{
		"subjects":    catalog.Subjects(),
		"classLevels": catalog.ClassLevels(),
		"chapters":    out,
	})
}

// GET /api/questions (query string) dan POST /api/questions/get (JSON body)
func (qc *QuestionController) GetQuestions(c *fiber.Ctx) error {
	var q dto.GetQuestionsQuery
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(&q); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}
	} else if err := c.QueryParser(&q); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if q.Count == 0 {
		q.Count = 10
	}
	if err := qc.validate.Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}
	if _, ok := catalog.Find(q.Subject, q.ClassLevel, q.Chapter); !ok {
		return helper.Error(c, fiber.StatusNotFound, "Unknown chapter")
	}

	questions, err := qc.Store.FetchChapter(c.UserContext(), q.Subject, q.Chapter, q.ClassLevel, q.Difficulty, q.Count)
	if err != nil {
		log.Printf("[ERROR] FetchChapter: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch questions")
	}

	return helper.Success(c, fiber.Map{
		"questions": questions,
		"count":     len(questions),
	})
}

// GET /api/questions/completeness
func (qc *QuestionController) Completeness(c *fiber.Ctx) error {
	subject := c.Query("subject")
	classLevel := c.Query("classLevel")
	chapter := c.Query("chapter")

	ref, ok := catalog.Find(subject, classLevel, chapter)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Unknown chapter")
	}

	counts, complete := qc.Generator.CheckCompleteness(c.UserContext(), ref)
	return helper.Success(c, fiber.Map{
		"chapter":  ref.ChapterID,
		"counts":   counts,
		"total":    counts.Total(),
		"complete": complete,
	})
}

// POST /api/questions/generate
// Satu bab, strict: error persist → 500.
func (qc *QuestionController) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := qc.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ref, ok := catalog.Find(req.Subject, req.ClassLevel, req.Chapter)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Unknown chapter")
	}

	res, err := qc.Generator.GenerateChapter(c.UserContext(), ref, req.Force)
	if err != nil {
		log.Printf("[ERROR] GenerateChapter %s: %v", ref.ChapterID, err)
		return helper.ErrorWithDetails(c, fiber.StatusInternalServerError, "Generation failed", res)
	}
	return helper.Success(c, res)
}

// POST /api/questions/generate-batch
// Lenient: bab gagal dicatat di results, respon tetap 200.
func (qc *QuestionController) GenerateBatch(c *fiber.Ctx) error {
	var req dto.GenerateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.BatchSize == 0 {
		req.BatchSize = 5
	}
	if err := qc.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	report, err := qc.Generator.RunBatch(c.UserContext(), req.Subject, req.ClassLevel, req.BatchSize, req.Force)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.Success(c, report)
}

// POST /api/admin/generate-all
// Menyapu seluruh katalog. Berjalan lama, dipanggil sekali saat seeding.
func (qc *QuestionController) GenerateAll(c *fiber.Ctx) error {
	var req dto.GenerateAllRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.BatchSize == 0 {
		req.BatchSize = 5
	}

	reports, err := qc.Generator.RunAll(c.UserContext(), req.BatchSize)
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusInternalServerError, "Generation sweep failed", reports)
	}
	return helper.Success(c, fiber.Map{
		"totalChapters": catalog.TotalChapters(),
		"reports":       reports,
	})
}
