package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskvault/go-todo/auth"
	"github.com/taskvault/go-todo/config"
)

func newProtectedApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("POSTGRESQL_URI", "postgres://test")
	t.Setenv("JWT_SECRET", "test-secret-test-secret-test-secret!")
	_, err := config.Load()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  CallerID(c),
			"username": CallerUsername(c),
			"role":     CallerRole(c),
		})
	})
	return app
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	app := newProtectedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddleware_MalformedBearer(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddleware_CookieToken(t *testing.T) {
	app := newProtectedApp(t)

	token, err := auth.GenerateToken(42, "alice", "user")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
