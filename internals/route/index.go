// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsRoute "examgpt_backend/internals/features/analytics/route"
	mentorRoute "examgpt_backend/internals/features/mentor/route"
	paymentRoute "examgpt_backend/internals/features/payments/route"
	questionRoute "examgpt_backend/internals/features/questions/route"
	questionService "examgpt_backend/internals/features/questions/service"
	testRoute "examgpt_backend/internals/features/tests/route"
	authRoute "examgpt_backend/internals/features/users/auth/route"
	"examgpt_backend/internals/helpers/gemini"
	"examgpt_backend/internals/helpers/mailer"
	ossHelper "examgpt_backend/internals/helpers/oss"
)

var startTime time.Time

// Deps menampung service eksternal yang dibagikan ke route.
// Field boleh nil kalau env-nya tidak di-set; endpoint terkait menolak
// dengan 503, bukan crash saat boot.
type Deps struct {
	AI      *gemini.Service
	Mailer  *mailer.MailerService
	Storage *ossHelper.PDFStorageService
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	api := app.Group("/api")

	log.Println("[INFO] Mounting Auth routes...")
	authRoute.AuthRoutes(api, db, deps.Mailer)

	log.Println("[INFO] Mounting Payment routes...")
	paymentRoute.PaymentRoutes(api, db, deps.Mailer)

	log.Println("[INFO] Mounting Question routes...")
	var storage questionService.ObjectStore
	if deps.Storage != nil {
		storage = deps.Storage
	}
	var ai questionService.GenerativeAI
	if deps.AI != nil {
		ai = deps.AI
	}
	generator := questionService.NewGenerationService(
		questionService.NewGormQuestionStore(db),
		storage,
		ai,
	)
	questionRoute.QuestionRoutes(api, db, generator, deps.Storage)

	log.Println("[INFO] Mounting Test routes...")
	testRoute.TestRoutes(api, db, deps.AI)

	log.Println("[INFO] Mounting Mentor routes...")
	mentorRoute.MentorRoutes(api, db, deps.AI)

	log.Println("[INFO] Mounting Analytics routes...")
	analyticsRoute.AnalyticsRoutes(api, db,
		deps.Storage != nil, deps.AI != nil, deps.Mailer != nil)
}
