package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"examgpt_backend/internals/configs"
	database "examgpt_backend/internals/databases"
	paymentService "examgpt_backend/internals/features/payments/service"
	scheduler "examgpt_backend/internals/features/users/auth/scheduler"
	"examgpt_backend/internals/helpers/gemini"
	"examgpt_backend/internals/helpers/mailer"
	ossHelper "examgpt_backend/internals/helpers/oss"
	middlewares "examgpt_backend/internals/middlewares"
	routes "examgpt_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               int(ossHelper.MaxPDFSize) + 1024*1024, // upload PDF NCERT
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                 // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// Timeout longgar: pipeline generate per bab bisa lama
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Minute)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.Migrate()
	database.WarmUpQueries()
	app.Use(middlewares.DBMiddleware(database.DB))

	// ⏱ scheduler setelah DB siap
	scheduler.StartOTPCleanupScheduler(database.DB)

	// ✅ MIDTRANS
	paymentService.InitMidtrans(configs.MidtransServerKey)

	// Layanan eksternal opsional: nil kalau env belum di-set
	deps := buildDeps()

	// ✅ Routes
	routes.BaseRoutes(app, database.DB)
	routes.SetupRoutes(app, database.DB, deps)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if deps.AI != nil {
		_ = deps.AI.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func buildDeps() routes.Deps {
	var deps routes.Deps

	if configs.GeminiAPIKey != "" {
		ai, err := gemini.NewService(context.Background(), configs.GeminiAPIKey)
		if err != nil {
			log.Printf("[WARNING] Gemini tidak aktif: %v", err)
		} else {
			deps.AI = ai
			log.Println("✅ Gemini siap")
		}
	} else {
		log.Println("[WARNING] GEMINI_API_KEY kosong, generate soal pakai fallback")
	}

	if configs.ResendAPIKey != "" {
		m, err := mailer.NewMailerService(configs.ResendAPIKey)
		if err != nil {
			log.Printf("[WARNING] Mailer tidak aktif: %v", err)
		} else {
			deps.Mailer = m
			log.Println("✅ Resend siap")
		}
	} else {
		log.Println("[WARNING] RESEND_API_KEY kosong, email OTP tidak dikirim")
	}

	storage, err := ossHelper.NewPDFStorageFromEnv()
	if err != nil {
		log.Printf("[WARNING] OSS tidak aktif: %v", err)
	} else {
		deps.Storage = storage
		log.Println("✅ OSS siap")
	}

	return deps
}
