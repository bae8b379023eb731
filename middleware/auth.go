// middleware/auth.go
package middleware

import (
	"strings"
	"time"

	"biasboard/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewAdminAuth returns the middleware guarding the review endpoints. It
// validates the bearer token and then applies the allow-list rule from the
// injected config: an empty list admits any authenticated reviewer, a
// populated list admits only the emails on it.
func NewAdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearerToken(c, cfg.JWTSecret)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}

		email, _ := claims["email"].(string)
		if !cfg.IsAdmin(email) {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		c.Locals("reviewerId", claims["reviewer_id"])
		c.Locals("reviewerEmail", email)
		c.Locals("reviewerName", claims["name"])

		return c.Next()
	}
}

func parseBearerToken(c *fiber.Ctx, secret string) (jwt.MapClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(401, "Missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fiber.NewError(401, "Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}

	return claims, nil
}

// GetReviewerName returns the authenticated reviewer's display name, falling
// back to the email when no name claim is present.
func GetReviewerName(c *fiber.Ctx) string {
	if name, ok := c.Locals("reviewerName").(string); ok && name != "" {
		return name
	}
	if email, ok := c.Locals("reviewerEmail").(string); ok {
		return email
	}
	return ""
}
