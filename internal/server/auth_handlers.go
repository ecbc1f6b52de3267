package server

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "ripple-api"
	tokenAudience = "ripple-client"
)

var usernameStripRegex = regexp.MustCompile(`[^a-z0-9_-]+`)

// deriveUsername folds a candidate display name or email local part into a
// username-shaped string.
func deriveUsername(candidate string) string {
	u := strings.ToLower(strings.TrimSpace(candidate))
	u = usernameStripRegex.ReplaceAllString(u, "")
	return strings.Trim(u, "_-")
}

// resolveUsername picks the signup username: explicit value first, then the
// display name, then the email local part.
func resolveUsername(username, name, email string) string {
	if u := deriveUsername(username); u != "" {
		return u
	}
	if u := deriveUsername(name); u != "" {
		return u
	}
	local, _, _ := strings.Cut(email, "@")
	return deriveUsername(local)
}

// Signup handles POST /api/auth/signup.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name, email, and password are required"))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	username := resolveUsername(req.Username, req.Name, email)
	if err := validation.ValidateUsername(username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("email already in use"))
	}
	existing, err = s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("username already in use"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithAppError(c, createErr)
	}

	token, err := s.generateToken(user.ID, user.Username, user.Name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// produce the same response.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewInvalidCredentialsError())
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewInvalidCredentialsError())
	}

	token, err := s.generateToken(user.ID, user.Username, user.Name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// generateToken creates a JWT carrying the user's ID, username, and
// display name.
func (s *Server) generateToken(userID uint, username, name string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"name":     name,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(time.Hour * 24 * 7).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
