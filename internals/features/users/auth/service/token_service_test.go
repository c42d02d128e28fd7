package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examgpt_backend/internals/configs"
	"examgpt_backend/internals/features/users/auth/model"
)

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9', "OTP harus numerik: %s", otp)
		}
	}
}

func TestGenerateTokenClaims(t *testing.T) {
	configs.JWTSecret = "test-secret"

	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        "siswa@example.com",
		Subscription: "premium",
	}

	signed, err := GenerateToken(user)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "siswa@example.com", claims["email"])
	assert.Equal(t, "premium", claims["subscription"])
	assert.NotNil(t, claims["exp"])
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	configs.JWTSecret = ""
	_, err := GenerateToken(&model.UserModel{ID: uuid.New()})
	assert.Error(t, err)
}
