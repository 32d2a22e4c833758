// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Description Return the caller's account with their posts embedded, newest first
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	viewer := middleware.IdentityFromCtx(c)
	user, err := s.authService.Profile(c.Context(), viewer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
