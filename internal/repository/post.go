// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// feedOrder is the ordering contract for every post listing: newest first,
// with id as the deterministic tie-break for equal timestamps.
const feedOrder = "posts.created_at DESC, posts.id DESC"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListGlobal(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	ListByGroupID(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error)
	ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
	ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListGlobal(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Post{}), limit, offset)
}

func (r *postRepository) ListByGroupID(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error) {
	scope := r.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID)
	return r.list(ctx, scope, limit, offset)
}

func (r *postRepository) ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	scope := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID)
	return r.list(ctx, scope, limit, offset)
}

// ListByAuthorIDs backs the follow feed. An empty author set yields an empty
// page rather than a query with an empty IN clause.
func (r *postRepository) ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, 0, nil
	}
	scope := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id IN ?", authorIDs)
	return r.list(ctx, scope, limit, offset)
}

// list counts the scoped set, then fetches one page in feed order.
func (r *postRepository) list(ctx context.Context, scope *gorm.DB, limit, offset int) ([]*models.Post, int64, error) {
	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.applyPostDetails(scope.Session(&gorm.Session{})).
		Preload("User").
		Preload("Group").
		Order(feedOrder).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// applyPostDetails adds a subquery to fetch the comment count in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
