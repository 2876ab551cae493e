package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

type CreatePostInput struct {
	UserID    uint
	Text      string
	GroupSlug string
	ImageID   *uint
}

type UpdatePostInput struct {
	UserID    uint
	PostID    uint
	Text      string
	GroupSlug string
	ImageID   *uint
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{postRepo: postRepo, groupRepo: groupRepo}
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	groupID, err := s.validateForm(ctx, in.Text, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:    strings.TrimSpace(in.Text),
		UserID:  in.UserID,
		GroupID: groupID,
		ImageID: in.ImageID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost applies an edit. Only the author may change a post; anyone else
// gets a forbidden error and the post stays as it was.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("Only the author can edit this post")
	}

	groupID, err := s.validateForm(ctx, in.Text, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = strings.TrimSpace(in.Text)
	post.GroupID = groupID
	if in.ImageID != nil {
		post.ImageID = in.ImageID
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("Only the author can delete this post")
	}
	return s.postRepo.Delete(ctx, postID)
}

// validateForm checks the form fields and resolves the optional group slug
// to its id.
func (s *PostService) validateForm(ctx context.Context, text, groupSlug string) (*uint, error) {
	form := validation.PostForm{Text: text, GroupSlug: groupSlug}
	fields, err := validation.ValidatePostForm(form, func(slug string) (bool, error) {
		return s.groupRepo.ExistsBySlug(ctx, slug)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	if groupSlug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, groupSlug)
	if err != nil {
		return nil, err
	}
	return &group.ID, nil
}
