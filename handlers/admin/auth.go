// handlers/admin/auth.go - Reviewer login
package admin

import (
	"time"

	"biasboard/config"
	"biasboard/database"
	"biasboard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var cfg *config.Config

// Init injects the configuration used by the admin handlers.
func Init(c *config.Config) {
	cfg = c
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"expires_at"`
}

// Login authenticates a reviewer
// POST /api/admin/login
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	db := database.GetDB()
	var reviewer models.Reviewer
	if err := db.Where("email = ?", req.Email).First(&reviewer).Error; err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(reviewer.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	reviewer.LastLogin = time.Now()
	db.Save(&reviewer)

	token, expiresAt, err := generateReviewerToken(&reviewer)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(LoginResponse{
		Token:     token,
		Email:     reviewer.Email,
		Name:      reviewer.Name,
		ExpiresAt: expiresAt,
	})
}

// VerifyToken confirms an admin session is valid
// GET /api/admin/verify
func VerifyToken(c *fiber.Ctx) error {
	// Token is already validated by middleware
	return c.JSON(fiber.Map{
		"valid":       true,
		"reviewer_id": c.Locals("reviewerId"),
		"email":       c.Locals("reviewerEmail"),
		"name":        c.Locals("reviewerName"),
	})
}

// Logout handles reviewer logout (client-side token removal)
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// generateReviewerToken creates a JWT session token for a reviewer
func generateReviewerToken(reviewer *models.Reviewer) (string, int64, error) {
	expiresAt := time.Now().Add(24 * time.Hour).Unix()

	claims := jwt.MapClaims{
		"reviewer_id": reviewer.ID,
		"email":       reviewer.Email,
		"name":        reviewer.Name,
		"jti":         uuid.New().String(),
		"exp":         expiresAt,
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}
