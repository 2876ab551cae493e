package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type GroupService struct {
	groupRepo repository.GroupRepository
}

type CreateGroupInput struct {
	CreatedByUserID uint
	Title           string
	Slug            string
	Description     string
}

type UpdateGroupInput struct {
	Slug        string
	Title       string
	Description string
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	if fields := validation.ValidateGroupForm(in.Title, in.Slug); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	group := &models.Group{
		Title:           strings.TrimSpace(in.Title),
		Slug:            in.Slug,
		Description:     strings.TrimSpace(in.Description),
		CreatedByUserID: &in.CreatedByUserID,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

func (s *GroupService) ListGroups(ctx context.Context, limit, offset int) ([]models.Group, int64, error) {
	return s.groupRepo.List(ctx, limit, offset)
}

func (s *GroupService) UpdateGroup(ctx context.Context, in UpdateGroupInput) (*models.Group, error) {
	group, err := s.groupRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	if fields := validation.ValidateGroupForm(in.Title, group.Slug); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	group.Title = strings.TrimSpace(in.Title)
	group.Description = strings.TrimSpace(in.Description)
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes the group. Only the creator may delete it, and its
// posts are detached, not deleted.
func (s *GroupService) DeleteGroup(ctx context.Context, userID uint, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if group.CreatedByUserID == nil || *group.CreatedByUserID != userID {
		return models.NewForbiddenError("Only the creator can delete this group")
	}
	return s.groupRepo.Delete(ctx, group.ID)
}
