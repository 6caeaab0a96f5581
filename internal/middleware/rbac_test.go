package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edgylearn-api/internal/models"
)

func roleApp(role interface{}, allowed ...models.Role) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != nil {
			c.Locals("user_role", role)
		}
		return c.Next()
	})
	app.Use(RequireRole(allowed...))
	app.Get("/gestion", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    interface{}
		allowed []models.Role
		status  int
	}{
		{name: "allowed", role: "admin", allowed: []models.Role{models.RoleTeacher, models.RoleAdmin}, status: fiber.StatusOK},
		{name: "typed role", role: models.RoleTeacher, allowed: []models.Role{models.RoleTeacher}, status: fiber.StatusOK},
		{name: "instructor alias", role: "Instructor", allowed: []models.Role{models.RoleTeacher}, status: fiber.StatusOK},
		{name: "other role", role: "student", allowed: []models.Role{models.RoleTeacher, models.RoleAdmin}, status: fiber.StatusForbidden},
		{name: "unknown role", role: "guest", allowed: []models.Role{models.RoleStudent}, status: fiber.StatusForbidden},
		{name: "no role", role: nil, allowed: []models.Role{models.RoleStudent}, status: fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/gestion", nil)
			resp, err := roleApp(tc.role, tc.allowed...).Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
