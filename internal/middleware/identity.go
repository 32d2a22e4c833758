// Package middleware provides request context, identity and rate limiting middleware.
package middleware

import (
	"context"
	"strings"

	"inkwell/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// identityLocal is the Fiber locals key the verified identity is stored under.
const identityLocal = "identity"

// IdentityContext returns middleware that attaches the verified token
// identity to the request, when one is present. It never rejects: a missing,
// malformed or invalid token simply leaves the request anonymous. Whether an
// anonymous caller may perform an operation is decided by the operation
// itself, not at the transport layer.
func IdentityContext(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Next()
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			// Invalid token == anonymous caller.
			return c.Next()
		}

		c.Locals(identityLocal, identity)

		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), UserIDKey, identity.UserID)
		ctx = context.WithValue(ctx, UsernameKey, identity.Username)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// IdentityFromCtx returns the verified identity attached to the request, or
// nil when the caller is anonymous.
func IdentityFromCtx(c *fiber.Ctx) *auth.Identity {
	if id, ok := c.Locals(identityLocal).(*auth.Identity); ok {
		return id
	}
	return nil
}

// bearerToken extracts the token from the Authorization header, falling back
// to the `token` query parameter for WebSocket upgrades where browsers cannot
// set headers.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}
