package middleware

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/token"

	"github.com/gofiber/fiber/v2"
)

// TokenCookieName is the cookie the client may carry the session token in.
// The Authorization header takes precedence when both are present.
const TokenCookieName = "token"

// ExtractToken returns the session token from the Authorization header or,
// failing that, from the token cookie. Empty string when neither is present.
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(TokenCookieName)
}

// AuthRequired returns middleware enforcing authentication for protected
// routes. A missing token yields 401; a present but invalid or expired token
// yields 403. On success the identity is attached to Fiber locals and the
// request context, and the handler chain continues.
func AuthRequired(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authentication required"))
		}

		id, err := tokens.Verify(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Invalid or expired token"))
		}

		c.Locals("userID", id.UserID)
		c.Locals("username", id.Username)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), UserIDKey, id.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
