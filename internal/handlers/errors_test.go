package handlers_test

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"videohub/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nameViews renders the template name only, or fails for names in broken.
type nameViews struct {
	broken map[string]bool
}

func (v nameViews) Load() error { return nil }

func (v nameViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	if v.broken[name] {
		return fmt.Errorf("template %s missing", name)
	}
	_, err := io.WriteString(w, "view:"+name)
	return err
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newApp(views fiber.Views) *fiber.App {
	app := fiber.New(fiber.Config{Views: views, ErrorHandler: handlers.ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("dial tcp 10.0.0.5:3306: connection refused") })
	app.Get("/gone", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })
	app.Get("/unavailable", func(c *fiber.Ctx) error { return fiber.ErrServiceUnavailable })
	app.Use(handlers.NotFound)
	return app
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/boom", http.StatusInternalServerError, "view:err/500"},
		{"/gone", http.StatusNotFound, "view:err/404"},
		{"/unrouted", http.StatusNotFound, "view:err/404"},
		{"/bad", http.StatusBadRequest, "Bad Request"},
		{"/unavailable", http.StatusInternalServerError, "view:err/500"},
	}

	app := newApp(nameViews{})
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tc.body, string(b), tc.path)
	}
}

func TestErrorHandler_FallsBackToPlainText(t *testing.T) {
	app := newApp(nameViews{broken: map[string]bool{"err/500": true}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Internal Server Error", string(b))
	assert.NotContains(t, string(b), "connection refused")
}
