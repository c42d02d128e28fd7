package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"examgpt_backend/internals/features/questions/controller"
	"examgpt_backend/internals/features/questions/service"
	ossHelper "examgpt_backend/internals/helpers/oss"
	"examgpt_backend/internals/middlewares"
	authMw "examgpt_backend/internals/middlewares/auth"
)

func QuestionRoutes(api fiber.Router, db *gorm.DB, generator *service.GenerationService, storage *ossHelper.PDFStorageService) {
	store := service.NewGormQuestionStore(db)
	ctrl := controller.NewQuestionController(store, generator)
	pdfCtrl := controller.NewPDFController(storage)

	questions := api.Group("/questions", authMw.AuthMiddleware(db))
	questions.Get("/subjects", ctrl.Subjects)
	questions.Get("/completeness", ctrl.Completeness)
	questions.Get("/", ctrl.GetQuestions)
	questions.Post("/get", ctrl.GetQuestions)

	generate := questions.Group("", middlewares.GenerateRateLimiter())
	generate.Post("/generate", ctrl.Generate)
	generate.Post("/generate-batch", ctrl.GenerateBatch)

	// Upload PDF sumber: hanya admin
	upload := api.Group("/upload", authMw.AuthMiddleware(db), authMw.AdminOnly())
	upload.Post("/pdf", pdfCtrl.Upload)
	upload.Post("/presigned-url", pdfCtrl.Presign)

	// Endpoint admin: sweep seluruh katalog + kelola PDF sumber
	admin := api.Group("/admin", authMw.AuthMiddleware(db), authMw.AdminOnly())
	admin.Post("/generate-all", ctrl.GenerateAll)
	admin.Get("/list-pdfs", pdfCtrl.List)
	admin.Delete("/pdfs", pdfCtrl.Delete)
}
