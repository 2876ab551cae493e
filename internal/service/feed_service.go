// Package service contains the application's business logic.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"
)

// FeedService assembles the post listings: the global index, group pages,
// author pages and the per-reader follow feed. All listings share the same
// ordering and pagination rules.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// FeedPage is one page of a listing plus enough metadata to render
// pagination controls.
type FeedPage struct {
	Posts      []*models.Post `json:"posts"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	TotalCount int64          `json:"total_count"`
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *FeedService) ListGlobal(ctx context.Context, page int) (*FeedPage, error) {
	return s.paginate(page, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListGlobal(ctx, limit, offset)
	})
}

// ListByGroup returns the group and its page of posts. An unknown slug is a
// not-found error, never an empty page.
func (s *FeedService) ListByGroup(ctx context.Context, slug string, page int) (*models.Group, *FeedPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	feed, err := s.paginate(page, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByGroupID(ctx, group.ID, limit, offset)
	})
	if err != nil {
		return nil, nil, err
	}
	return group, feed, nil
}

// ListByAuthor returns the author and their page of posts, newest first.
func (s *FeedService) ListByAuthor(ctx context.Context, username string, page int) (*models.User, *FeedPage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if author == nil {
		return nil, nil, models.NewNotFoundError("User", username)
	}

	feed, err := s.paginate(page, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByUserID(ctx, author.ID, limit, offset)
	})
	if err != nil {
		return nil, nil, err
	}
	return author, feed, nil
}

// ListFollowFeed returns posts from the authors the reader follows. A reader
// following nobody gets an empty first page.
func (s *FeedService) ListFollowFeed(ctx context.Context, userID uint, page int) (*FeedPage, error) {
	authorIDs, err := s.followRepo.ListAuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.paginate(page, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByAuthorIDs(ctx, authorIDs, limit, offset)
	})
}

// paginate fetches the requested page, then refetches once if the request
// pointed past the end of the sequence and had to be clamped back.
func (s *FeedService) paginate(page int, list func(limit, offset int) ([]*models.Post, int64, error)) (*FeedPage, error) {
	params := pagination.NewParams(page)

	posts, total, err := list(params.PageSize, (params.Page-1)*params.PageSize)
	if err != nil {
		return nil, err
	}

	limit, offset, clamped := params.Window(total)
	if clamped != params.Page {
		posts, _, err = list(limit, offset)
		if err != nil {
			return nil, err
		}
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return &FeedPage{
		Posts:      posts,
		Page:       clamped,
		PageSize:   params.PageSize,
		TotalPages: params.TotalPages(total),
		TotalCount: total,
	}, nil
}
