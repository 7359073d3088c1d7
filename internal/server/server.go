package server

import (
	"crypto/sha256"
	"encoding/base64"

	"videohub/internal/handlers"
	"videohub/internal/middleware"
	"videohub/internal/services"
	"videohub/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

// Deps are the process-scoped collaborators the HTTP layer is built from.
type Deps struct {
	DB            *gorm.DB
	Sessions      *session.Store
	Auth          *services.AuthService
	Videos        *services.VideoService
	SessionSecret string
	PublicDir     string // static assets; empty disables
	ReloadViews   bool
	AccessLog     bool
}

// New assembles the Fiber app: views, middleware, routes and the 404/500 fallbacks.
func New(d Deps) *fiber.App {
	engine := html.NewFileSystem(web.Views(), ".html")
	engine.Reload(d.ReloadViews)

	app := fiber.New(fiber.Config{
		AppName:      "videohub",
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: CookieKey(d.SessionSecret),
	}))
	if d.PublicDir != "" {
		app.Static("/", d.PublicDir)
	}
	app.Use(middleware.LoadSession(d.Sessions))

	// --- Routes ---
	handlers.NewHealthHandler(d.DB).RegisterRoutes(app)
	handlers.NewPageHandler(d.Videos).RegisterRoutes(app)
	handlers.NewAuthHandler(d.Auth, d.Sessions).RegisterRoutes(app)
	handlers.NewAdminHandler(d.Videos).RegisterRoutes(app)

	app.Use(handlers.NotFound)
	return app
}

// CookieKey derives the AES-256 cookie encryption key from the session secret.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
