package session

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"videohub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresOnlySessionFields(t *testing.T) {
	storage := newTestStorage(t, 0)
	defer storage.Close()
	store := NewStore(storage, Config{TTL: time.Hour})

	app := fiber.New()
	app.Get("/login", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		return Login(sess, &models.SessionUser{ID: 7, Role: models.RoleAdmin, Name: "Ada"})
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		user := UserFrom(sess)
		if user == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(fmt.Sprintf("%d/%s/%s", user.ID, user.Role, user.Name))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "NodeJs", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "7/admin/Ada", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil), -1)
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", string(body))
}
