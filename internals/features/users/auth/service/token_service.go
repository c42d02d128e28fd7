// internals/features/users/auth/service/token_service.go
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/users/auth/model"
)

// GenerateToken menerbitkan access token JWT (HS256) untuk user.
func GenerateToken(user *model.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET belum di-set")
	}

	claims := jwt.MapClaims{
		"user_id":      user.ID.String(),
		"email":        user.Email,
		"subscription": user.Subscription,
		"iat":          time.Now().Unix(),
		"exp":          time.Now().Add(configs.TokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
