package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /api/posts, the global feed. Rendered pages are cached
// by page number alone for a short window and replayed byte for byte, so
// every viewer of a page sees the identical response until the entry
// expires. Writes never invalidate these entries.
func (s *Server) Index(c *fiber.Ctx) error {
	page := parsePage(c)
	key := cache.IndexPageKey(page)

	if body, found, err := cache.GetBytes(c.Context(), key); err == nil && found {
		middleware.CacheHits.WithLabelValues("hit").Inc()
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
	middleware.CacheHits.WithLabelValues("miss").Inc()

	feed, err := s.feedService.ListGlobal(c.Context(), page)
	if err != nil {
		return respondServiceError(c, err)
	}

	body, err := json.Marshal(feed)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	// Best-effort: a failed cache write just means the next reader
	// regenerates the page.
	_ = cache.SetBytes(c.Context(), key, body, s.indexTTL)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GetPost handles GET /api/posts/:id, the post detail with its full
// comment thread.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListForPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text      string `json:"text"`
		GroupSlug string `json:"group"`
		ImageID   *uint  `json:"image_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:    currentUserID(c),
		Text:      req.Text,
		GroupSlug: req.GroupSlug,
		ImageID:   req.ImageID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Someone other than the author
// submitting an edit is bounced back to the post detail; the post is left
// exactly as it was.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text      string `json:"text"`
		GroupSlug string `json:"group"`
		ImageID   *uint  `json:"image_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:    currentUserID(c),
		PostID:    id,
		Text:      req.Text,
		GroupSlug: req.GroupSlug,
		ImageID:   req.ImageID,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "FORBIDDEN" {
			return c.Redirect(fmt.Sprintf("/api/posts/%d", id), fiber.StatusFound)
		}
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), id); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "FORBIDDEN" {
			return c.Redirect(fmt.Sprintf("/api/posts/%d", id), fiber.StatusFound)
		}
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
