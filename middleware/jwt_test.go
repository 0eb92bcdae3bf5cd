package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"elearn/config"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, roles ...string) *fiber.App {
	t.Helper()
	if config.AppConfig == nil {
		config.LoadConfig()
	}

	app := fiber.New()
	handlers := []fiber.Handler{JWTMiddleware}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("userRole"),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	app := testApp(t)

	token, err := GenerateJWT(7, "alice", models.RoleStudent, "alice@test.local")
	require.NoError(t, err)

	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsGarbage(t *testing.T) {
	app := testApp(t)

	resp := request(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsUnknownRole(t *testing.T) {
	app := testApp(t)

	token, err := GenerateJWT(7, "mallory", "SUPERUSER", "m@test.local")
	require.NoError(t, err)

	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	app := testApp(t, models.RoleAdmin)

	adminToken, err := GenerateJWT(1, "root", models.RoleAdmin, "root@test.local")
	require.NoError(t, err)
	studentToken, err := GenerateJWT(2, "alice", models.RoleStudent, "alice@test.local")
	require.NoError(t, err)

	resp := request(t, app, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Role must derive solely from the verified token claim; a header-asserted
// role is ignored.
func TestRoleHeaderOverrideIgnored(t *testing.T) {
	app := testApp(t, models.RoleAdmin)

	token, err := GenerateJWT(2, "alice", models.RoleStudent, "alice@test.local")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-user-role", models.RoleAdmin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
