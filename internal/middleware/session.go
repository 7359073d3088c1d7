package middleware

import (
	"videohub/internal/models"
	vsession "videohub/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const userLocalKey = "session_user"

// LoadSession resolves the request's session user into the context and slides the
// expiry of an existing session. Anonymous visitors get no session row or cookie.
func LoadSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		SetCurrentUser(c, vsession.UserFrom(sess))

		if !sess.Fresh() {
			if err := sess.Save(); err != nil {
				return err
			}
		}
		return c.Next()
	}
}

// CurrentUser returns the logged-in user for this request, or nil.
func CurrentUser(c *fiber.Ctx) *models.SessionUser {
	user, _ := c.Locals(userLocalKey).(*models.SessionUser)
	return user
}

// SetCurrentUser records user (possibly nil) as the request's logged-in user.
func SetCurrentUser(c *fiber.Ctx, user *models.SessionUser) {
	c.Locals(userLocalKey, user)
}

// RejectIfAuthenticated sends logged-in users back to the home page.
func RejectIfAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) != nil {
			return c.Redirect("/")
		}
		return c.Next()
	}
}

// RequireAdmin lets only admins through. Everyone else is redirected home,
// so anonymous and non-admin callers see the same response.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentUser(c).IsAdmin() {
			return c.Redirect("/")
		}
		return c.Next()
	}
}
