package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"videohub/internal/models"
	"videohub/internal/repositories"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUserNotFound is returned by Login when no account has the email.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch is returned by Login when the password does not match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
)

// SignUpInput is the sign-up form as posted by the browser.
type SignUpInput struct {
	Name            string `form:"name"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"min=6"`
	ConfirmPassword string `form:"ConfirmPassword" validate:"eqfield=Password"`
}

// FieldError is a single failed check, keyed by form field name.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists every failed check in form order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// messages keyed by struct field; form field names follow the form tags.
var signUpMessages = map[string]FieldError{
	"Email":           {Field: "email", Message: "Invalid email format"},
	"Password":        {Field: "password", Message: "Password must be at least 6 characters"},
	"ConfirmPassword": {Field: "ConfirmPassword", Message: "Passwords do not match"},
}

// AuthService handles business logic for sign-up and login.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	validate *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, hasher PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		validate: validator.New(),
	}
}

// Validate checks the sign-up form and returns ValidationErrors when anything fails.
func (s *AuthService) Validate(in SignUpInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate sign-up form: %w", err)
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, e := range verrs {
		fe, ok := signUpMessages[e.StructField()]
		if !ok {
			fe = FieldError{Field: e.Field(), Message: fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())}
		}
		out = append(out, fe)
	}
	return out
}

// SignUp validates the form, hashes the password and stores a new account with the user role.
// Email uniqueness is left to the store's constraint.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Role:     models.RoleUser,
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns the session-safe view of the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !s.hasher.Verify(user.Password, password) {
		return nil, ErrPasswordMismatch
	}
	return user.ToSessionUser(), nil
}
