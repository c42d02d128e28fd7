package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examgpt_backend/internals/configs"
)

func newAuthTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/protected", AuthMiddleware(nil), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	configs.JWTSecret = "test-secret"
	resp := doRequest(t, newAuthTestApp(), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsNonHMACToken(t *testing.T) {
	configs.JWTSecret = "test-secret"

	// Token alg "none" harus ditolak di keyfunc, bukan lolos parse.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "abc",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	resp := doRequest(t, newAuthTestApp(), signed)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	configs.JWTSecret = "test-secret"

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "abc",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret-lain"))
	require.NoError(t, err)

	resp := doRequest(t, newAuthTestApp(), signed)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	configs.JWTSecret = "test-secret"

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "abc",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	resp := doRequest(t, newAuthTestApp(), signed)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
