package handlers

import (
	"log"

	"videohub/internal/middleware"
	"videohub/internal/models"
	"videohub/internal/services"

	"github.com/gofiber/fiber/v2"
)

const addVideoPath = "/admin/addvideo"

// AdminHandler serves the admin panel and the video mutations behind it.
type AdminHandler struct {
	service *services.VideoService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.VideoService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// RegisterRoutes registers the admin routes. Every one of them requires an admin session.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	requireAdmin := middleware.RequireAdmin()

	adminRoutes := router.Group("/admin", requireAdmin)
	adminRoutes.Get("/", h.HandleIndex)
	adminRoutes.Get("/addvideo", h.HandleAddVideoForm)
	adminRoutes.Post("/addvideo", h.HandleAddVideo)

	router.Post("/deleteName", requireAdmin, h.HandleDeleteByTitle)
	router.Post("/deleteAll", requireAdmin, h.HandleDeleteAll)
}

// HandleIndex renders the admin landing page.
func (h *AdminHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Render("admin/index", fiber.Map{
		"User": middleware.CurrentUser(c),
	})
}

// HandleAddVideoForm renders the add/delete video form.
func (h *AdminHandler) HandleAddVideoForm(c *fiber.Ctx) error {
	return c.Render("admin/addvideo", fiber.Map{
		"User": middleware.CurrentUser(c),
	})
}

// HandleAddVideo inserts the submitted video as-is.
func (h *AdminHandler) HandleAddVideo(c *fiber.Ctx) error {
	var video models.Video
	if err := c.BodyParser(&video); err != nil {
		log.Printf("Error parsing add-video form: %v", err)
		return fiber.ErrBadRequest
	}
	if err := h.service.AddVideo(c.UserContext(), &video); err != nil {
		return err
	}
	return c.Redirect(addVideoPath)
}

// HandleDeleteByTitle deletes every video whose title equals the titleD field.
func (h *AdminHandler) HandleDeleteByTitle(c *fiber.Ctx) error {
	title := c.FormValue("titleD")
	n, err := h.service.DeleteByTitle(c.UserContext(), title)
	if err != nil {
		return err
	}
	log.Printf("Deleted %d video(s) titled %q", n, title)
	return c.Redirect(addVideoPath)
}

// HandleDeleteAll empties the video table and restarts ids at 1.
func (h *AdminHandler) HandleDeleteAll(c *fiber.Ctx) error {
	if err := h.service.DeleteAll(c.UserContext()); err != nil {
		return err
	}
	log.Printf("All videos deleted by user %d", middleware.CurrentUser(c).ID)
	return c.Redirect(addVideoPath)
}
