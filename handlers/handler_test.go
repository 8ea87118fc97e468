package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/taskvault/go-todo/auth"
	"github.com/taskvault/go-todo/config"
	"github.com/taskvault/go-todo/database"
	"github.com/taskvault/go-todo/router"
)

const testSecret = "test-secret-test-secret-test-secret!"

// newTestApp builds a Fiber app with the real route table and swaps the
// database pool for a sqlmock connection.
func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	t.Setenv("POSTGRESQL_URI", "postgres://test")
	t.Setenv("JWT_SECRET", testSecret)
	_, err := config.Load()
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	database.SetDB(db)

	app := fiber.New()
	router.SetupRoutes(app)
	return app, mock
}

// sessionCookie issues a real token for the given identity.
func sessionCookie(t *testing.T, userID int64, username, role string) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateToken(userID, username, role)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// expectPermissionCheck queues the guard's role_permissions lookup.
func expectPermissionCheck(mock sqlmock.Sqlmock, userID int64, permission string, allowed bool) {
	mock.ExpectQuery("SELECT EXISTS\\(\\s*SELECT 1\\s*FROM role_permissions").
		WithArgs(userID, permission).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(allowed))
}
