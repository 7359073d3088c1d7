package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"videohub/internal/middleware"
	"videohub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withUser plants a session user the way LoadSession would.
func withUser(user *models.SessionUser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		middleware.SetCurrentUser(c, user)
		return c.Next()
	}
}

func guardedApp(user *models.SessionUser) *fiber.App {
	app := fiber.New()
	app.Use(withUser(user))
	app.Get("/login", middleware.RejectIfAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendString("login form")
	})
	app.Get("/admin", middleware.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("admin panel")
	})
	return app
}

func TestGuards(t *testing.T) {
	cases := []struct {
		name        string
		user        *models.SessionUser
		path        string
		status      int
		redirection string
	}{
		{"anonymous sees login", nil, "/login", http.StatusOK, ""},
		{"user is bounced from login", &models.SessionUser{ID: 1, Role: models.RoleUser}, "/login", http.StatusFound, "/"},
		{"admin is bounced from login", &models.SessionUser{ID: 2, Role: models.RoleAdmin}, "/login", http.StatusFound, "/"},
		{"anonymous is bounced from admin", nil, "/admin", http.StatusFound, "/"},
		{"user is bounced from admin", &models.SessionUser{ID: 1, Role: models.RoleUser}, "/admin", http.StatusFound, "/"},
		{"admin reaches admin", &models.SessionUser{ID: 2, Role: models.RoleAdmin}, "/admin", http.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := guardedApp(tc.user).Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.redirection, resp.Header.Get("Location"))
		})
	}
}

func TestCurrentUser_Empty(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if middleware.CurrentUser(c) != nil {
			return c.SendStatus(http.StatusTeapot)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
