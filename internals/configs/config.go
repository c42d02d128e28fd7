package configs

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret         string
	GeminiAPIKey      string
	ResendAPIKey      string
	MidtransServerKey string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	GeminiAPIKey = GetEnv("GEMINI_API_KEY")
	ResendAPIKey = GetEnv("RESEND_API_KEY")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if GeminiAPIKey == "" {
		log.Println("❌ GEMINI_API_KEY belum diset!")
	} else {
		log.Println("✅ GEMINI_API_KEY berhasil dimuat.")
	}

	if ResendAPIKey == "" {
		log.Println("⚠️ RESEND_API_KEY belum diset, OTP hanya tampil di log.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// KONSTANTA APLIKASI
// =======================
const (
	AppName = "ExamGPT"

	// Target soal per tingkat kesulitan per bab
	QuestionsPerDifficulty = 60
	TotalPerChapter        = 180

	// Batas konten yang dikirim ke model generatif (karakter)
	ContentCharBudget = 15000

	// Jeda antar bab & antar sub-batch saat generate (rate limit Gemini)
	ChapterDelay = 2 * time.Second
	BatchDelay   = 5 * time.Second

	// Harga langganan lifetime (INR)
	SubscriptionPrice = 1000

	// Masa berlaku OTP
	OTPExpiry = 30 * time.Minute

	// Masa berlaku token JWT
	TokenExpiry = 24 * time.Hour
)

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
