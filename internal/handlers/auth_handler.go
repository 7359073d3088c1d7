package handlers

import (
	"errors"
	"log"

	"videohub/internal/middleware"
	"videohub/internal/services"
	vsession "videohub/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles sign-up, login and sign-out.
type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/login", middleware.RejectIfAuthenticated(), h.HandleLoginForm)
	router.Get("/sign-up", middleware.RejectIfAuthenticated(), h.HandleSignUpForm)
	router.Post("/login", h.HandleLogin)
	router.Post("/sign-up", h.HandleSignUp)
	router.Get("/sign-out", h.HandleSignOut)
}

// HandleLoginForm renders the login form along with any outcome flag from a previous attempt.
func (h *AuthHandler) HandleLoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"User":                  middleware.CurrentUser(c),
		"Success":               c.QueryBool("success"),
		"ErrorUserNotFound":     c.QueryBool("errorUserNotFound"),
		"ErrorPasswordNotMatch": c.QueryBool("errorPasswordNotMatch"),
	})
}

// HandleSignUpForm renders an empty sign-up form.
func (h *AuthHandler) HandleSignUpForm(c *fiber.Ctx) error {
	return c.Render("sign-up", fiber.Map{
		"User": middleware.CurrentUser(c),
	})
}

// HandleSignUp validates the form and creates a user account.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var in services.SignUpInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing sign-up form: %v", err)
		return fiber.ErrBadRequest
	}

	if _, err := h.authService.SignUp(c.UserContext(), in); err != nil {
		var verrs services.ValidationErrors
		if errors.As(err, &verrs) {
			// Passwords are never echoed back.
			return c.Render("sign-up", fiber.Map{
				"User":   middleware.CurrentUser(c),
				"Errors": verrs,
				"OldData": fiber.Map{
					"Name":  in.Name,
					"Email": in.Email,
				},
			})
		}
		return err
	}
	return c.Redirect("/login?success=true")
}

// LoginForm is the login form as posted by the browser.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// HandleLogin checks credentials and binds the user to a new session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		return fiber.ErrBadRequest
	}

	user, err := h.authService.Login(c.UserContext(), form.Email, form.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return c.Redirect("/login?errorUserNotFound=true")
	case errors.Is(err, services.ErrPasswordMismatch):
		return c.Redirect("/login?errorPasswordNotMatch=true")
	case err != nil:
		return err
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	if err := vsession.Login(sess, user); err != nil {
		return err
	}
	log.Printf("User %d logged in", user.ID)
	return c.Redirect("/?success=true")
}

// HandleSignOut destroys the session whether or not anyone was logged in.
func (h *AuthHandler) HandleSignOut(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		return err
	}
	return c.Redirect("/")
}
