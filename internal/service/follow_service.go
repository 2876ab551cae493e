package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow subscribes userID to the author named by username. Following an
// author twice is a no-op; following yourself is rejected.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) error {
	author, err := s.resolveAuthor(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		return models.NewValidationError("You cannot follow yourself")
	}
	return s.followRepo.Create(ctx, userID, author.ID)
}

// Unfollow removes the subscription. Unfollowing an author you never
// followed is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) error {
	author, err := s.resolveAuthor(ctx, username)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, userID, author.ID)
}

func (s *FollowService) IsFollowing(ctx context.Context, userID uint, username string) (bool, error) {
	author, err := s.resolveAuthor(ctx, username)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, userID, author.ID)
}

func (s *FollowService) resolveAuthor(ctx context.Context, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return author, nil
}
