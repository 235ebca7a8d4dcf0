package http

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nusabank/onboarding-api/pkg/jwt"
)

const testSecret = "secreto-de-test-suficientemente-largo"

func newMiddlewareApp() *fiber.App {
	app := fiber.New()
	app.Get("/protegido", AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(GetEmail(c))
	})
	return app
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := newMiddlewareApp()

	token, err := jwt.Generate(testSecret, "budi@example.com", "onboarding-api-test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "budi@example.com", string(body), "el email queda en locals")
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := newMiddlewareApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/protegido", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := newMiddlewareApp()

	for _, header := range []string{"Token abc", "Bearer", "Bearer  "} {
		req := httptest.NewRequest("GET", "/protegido", nil)
		req.Header.Set("Authorization", header)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := newMiddlewareApp()

	// Firmado con otro secret.
	token, err := jwt.Generate("otro-secreto", "budi@example.com", "onboarding-api-test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := newMiddlewareApp()

	token, err := jwt.Generate(testSecret, "budi@example.com", "onboarding-api-test", -1)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
