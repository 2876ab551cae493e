package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowFeed handles GET /api/feed/follow, the reader's personal feed of
// posts by authors they follow.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.ListFollowFeed(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// Follow handles POST /api/users/:username/follow. Following an author
// twice is a no-op; following yourself is rejected.
func (s *Server) Follow(c *fiber.Ctx) error {
	username := c.Params("username")

	if err := s.followService.Follow(c.Context(), currentUserID(c), username); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": username})
}

// Unfollow handles DELETE /api/users/:username/follow. Unfollowing an
// author you never followed is a no-op.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	username := c.Params("username")

	if err := s.followService.Unfollow(c.Context(), currentUserID(c), username); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unfollowed": username})
}
