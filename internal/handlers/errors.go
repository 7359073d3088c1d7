package handlers

import (
	"errors"
	"log"

	"videohub/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// NotFound renders the 404 page. It is registered as the last route.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("err/404", fiber.Map{
		"User": middleware.CurrentUser(c),
	})
}

// ErrorHandler renders the 404 page for missing routes and echoes other client
// errors with their own status. Anything else becomes the 500 page; details are
// logged and never sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusNotFound:
			return NotFound(c)
		case fe.Code >= 400 && fe.Code < 500:
			return c.Status(fe.Code).SendString(fe.Message)
		}
	}

	log.Printf("Error handling %s %s: %v", c.Method(), c.OriginalURL(), err)
	rerr := c.Status(fiber.StatusInternalServerError).Render("err/500", fiber.Map{
		"User": middleware.CurrentUser(c),
	})
	if rerr != nil {
		log.Printf("Error rendering 500 page: %v", rerr)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
	return nil
}
