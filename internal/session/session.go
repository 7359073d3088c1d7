package session

import (
	"fmt"
	"time"

	"videohub/internal/models"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Session keys. Only these three fields of a user ever reach storage.
const (
	keyUserID   = "user_id"
	keyUserRole = "user_role"
	keyUserName = "user_name"
)

// Config controls cookie naming and lifetime.
type Config struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// NewStore builds a fiber session store over storage.
func NewStore(storage fiber.Storage, cfg Config) *fsession.Store {
	if cfg.CookieName == "" {
		cfg.CookieName = "NodeJs"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return fsession.New(fsession.Config{
		Storage:        storage,
		Expiration:     cfg.TTL,
		KeyLookup:      "cookie:" + cfg.CookieName,
		KeyGenerator:   uuid.NewString,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Secure,
		CookieSameSite: "Lax",
	})
}

// UserFrom returns the user held by sess, or nil for an anonymous session.
func UserFrom(sess *fsession.Session) *models.SessionUser {
	id, _ := sess.Get(keyUserID).(uint)
	if id == 0 {
		return nil
	}
	role, _ := sess.Get(keyUserRole).(string)
	name, _ := sess.Get(keyUserName).(string)
	return &models.SessionUser{ID: id, Role: role, Name: name}
}

// Login rotates the session id and binds user to it.
func Login(sess *fsession.Session, user *models.SessionUser) error {
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	sess.Set(keyUserID, user.ID)
	sess.Set(keyUserRole, user.Role)
	sess.Set(keyUserName, user.Name)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
