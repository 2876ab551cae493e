package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/:username, the author page: profile,
// follow counts and one page of the author's posts. When the viewer is
// authenticated the response also says whether they follow this author.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	author, feed, err := s.feedService.ListByAuthor(c.Context(), username, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	profile, err := s.userService.GetProfile(c.Context(), username, feed.TotalCount)
	if err != nil {
		return respondServiceError(c, err)
	}

	following := false
	if viewerID := currentUserID(c); viewerID != 0 && viewerID != author.ID {
		following, err = s.followService.IsFollowing(c.Context(), viewerID, username)
		if err != nil {
			return respondServiceError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"profile":   profile,
		"feed":      feed,
		"following": following,
	})
}

// GetAuthorPosts handles GET /api/users/:username/posts, one page of the
// author's posts without the profile envelope.
func (s *Server) GetAuthorPosts(c *fiber.Ctx) error {
	username := c.Params("username")

	author, feed, err := s.feedService.ListByAuthor(c.Context(), username, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"username": author.Username,
		"feed":     feed,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Bio string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: currentUserID(c),
		Bio:    req.Bio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
