// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"examgpt_backend/internals/configs"
	UserModel "examgpt_backend/internals/features/users/auth/model"
)

// Public path yang di-skip auth (webhook pembayaran dsb.)
var skipPaths = map[string]struct{}{
	"/api/payment/webhook": {},
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Skip path tertentu (webhook dsb.)
		if _, ok := skipPaths[c.Path()]; ok {
			log.Println("[INFO] Skip AuthMiddleware for:", c.Path())
			return c.Next()
		}

		// 2) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 3) Parse & verifikasi JWT
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 4) Validasi exp
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 5) Ambil user_id & pastikan user masih ada.
		// Subscription dibaca dari DB, bukan dari klaim, supaya upgrade
		// lewat webhook langsung terlihat tanpa re-login.
		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		var user UserModel.UserModel
		if err := db.Select("id", "email", "subscription").First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] DB error saat cek user:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		c.Locals("user_id", userID.String())
		c.Locals("user_email", user.Email)
		c.Locals("subscription", user.Subscription)

		return c.Next()
	}
}

// PremiumOnly menolak user dengan subscription selain "premium".
func PremiumOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, _ := c.Locals("subscription").(string)
		if sub != "premium" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Premium subscription required",
			})
		}
		return c.Next()
	}
}

// AdminOnly: hanya email yang terdaftar di ADMIN_EMAILS (comma separated).
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals("user_email").(string)
		if email == "" || !isAdminEmail(email) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}

func isAdminEmail(email string) bool {
	for _, a := range strings.Split(configs.GetEnv("ADMIN_EMAILS", ""), ",") {
		if strings.EqualFold(strings.TrimSpace(a), email) {
			return true
		}
	}
	return false
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", fmt.Errorf("Unauthorized - Invalid Authorization format")
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return "", fmt.Errorf("Unauthorized - Empty token")
		}
		return token, nil
	}
	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie, nil
	}
	return "", fmt.Errorf("Unauthorized - Missing token")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("exp claim tidak ada")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return fmt.Errorf("exp claim bukan angka")
	}
	expiry := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiry.Add(leeway)) {
		return fmt.Errorf("token kedaluwarsa pada %s", expiry)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["user_id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("user_id claim tidak ada")
	}
	return uuid.Parse(raw)
}
