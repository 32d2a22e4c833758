// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
// @Summary Comment on a post
// @Description Append a comment to a post's embedded comment list
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{body=string} true "Comment body"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, ok := s.parseID(c)
	if !ok {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	viewer := middleware.IdentityFromCtx(c)
	post, err := s.postService.AddComment(c.Context(), viewer, id, req.Body)
	if err != nil {
		return respondError(c, err)
	}

	s.publishFeedEvent(c.Context(), notifications.FeedEvent{
		Type:     notifications.EventCommentAdded,
		PostID:   post.ID,
		Author:   viewer.Username,
		Comments: post.CommentCount,
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}
