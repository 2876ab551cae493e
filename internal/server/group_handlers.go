package server

import (
	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListGroups handles GET /api/groups
func (s *Server) ListGroups(c *fiber.Ctx) error {
	params := pagination.NewParams(parsePage(c))

	groups, total, err := s.groupService.ListGroups(c.Context(), params.PageSize, (params.Page-1)*params.PageSize)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"groups":      groups,
		"page":        params.Page,
		"total_pages": params.TotalPages(total),
		"total_count": total,
	})
}

// GetGroupFeed handles GET /api/groups/:slug, the group page: the group
// plus one page of its posts, newest first.
func (s *Server) GetGroupFeed(c *fiber.Ctx) error {
	slug := c.Params("slug")

	group, feed, err := s.feedService.ListByGroup(c.Context(), slug, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"group": group,
		"feed":  feed,
	})
}

// CreateGroup handles POST /api/groups
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.CreateGroup(c.Context(), service.CreateGroupInput{
		CreatedByUserID: currentUserID(c),
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

// UpdateGroup handles PUT /api/groups/:slug
func (s *Server) UpdateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.UpdateGroup(c.Context(), service.UpdateGroupInput{
		Slug:        c.Params("slug"),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(group)
}

// DeleteGroup handles DELETE /api/groups/:slug. The group's posts survive
// the deletion, detached from any group.
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	if err := s.groupService.DeleteGroup(c.Context(), currentUserID(c), c.Params("slug")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Group deleted"})
}
