package handlers

import (
	"videohub/internal/middleware"
	"videohub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the public pages.
type PageHandler struct {
	service *services.VideoService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(service *services.VideoService) *PageHandler {
	return &PageHandler{
		service: service,
	}
}

// RegisterRoutes registers the public routes with the Fiber app.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/about", h.static("about"))
	router.Get("/contact", h.static("contact"))
}

// HandleHome renders the video listing, served from cache when possible.
func (h *PageHandler) HandleHome(c *fiber.Ctx) error {
	videos, err := h.service.ListVideos(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("index", fiber.Map{
		"User":    middleware.CurrentUser(c),
		"Videos":  videos,
		"Success": c.QueryBool("success"),
	})
}

func (h *PageHandler) static(view string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render(view, fiber.Map{
			"User": middleware.CurrentUser(c),
		})
	}
}
