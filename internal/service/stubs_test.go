package service

import (
	"context"

	"inkwell/internal/models"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	listGlobalFn      func(context.Context, int, int) ([]*models.Post, int64, error)
	listByGroupIDFn   func(context.Context, uint, int, int) ([]*models.Post, int64, error)
	listByUserIDFn    func(context.Context, uint, int, int) ([]*models.Post, int64, error)
	listByAuthorIDsFn func(context.Context, []uint, int, int) ([]*models.Post, int64, error)
	updateFn          func(context.Context, *models.Post) error
	deleteFn          func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListGlobal(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return s.listGlobalFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByGroupID(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.listByGroupIDFn(ctx, groupID, limit, offset)
}
func (s *postRepoStub) ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.listByUserIDFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.listByAuthorIDsFn(ctx, authorIDs, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listGlobalFn: func(context.Context, int, int) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		listByGroupIDFn: func(context.Context, uint, int, int) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		listByUserIDFn: func(context.Context, uint, int, int) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		listByAuthorIDsFn: func(context.Context, []uint, int, int) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(context.Context, *models.Post) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn       func(context.Context, *models.Group) error
	getByIDFn      func(context.Context, uint) (*models.Group, error)
	getBySlugFn    func(context.Context, string) (*models.Group, error)
	existsBySlugFn func(context.Context, string) (bool, error)
	listFn         func(context.Context, int, int) ([]models.Group, int64, error)
	updateFn       func(context.Context, *models.Group) error
	deleteFn       func(context.Context, uint) error
}

func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *groupRepoStub) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return s.existsBySlugFn(ctx, slug)
}
func (s *groupRepoStub) List(ctx context.Context, limit, offset int) ([]models.Group, int64, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *groupRepoStub) Update(ctx context.Context, group *models.Group) error {
	return s.updateFn(ctx, group)
}
func (s *groupRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:       func(context.Context, *models.Group) error { return nil },
		getByIDFn:      func(context.Context, uint) (*models.Group, error) { return &models.Group{}, nil },
		getBySlugFn:    func(context.Context, string) (*models.Group, error) { return &models.Group{}, nil },
		existsBySlugFn: func(context.Context, string) (bool, error) { return true, nil },
		listFn:         func(context.Context, int, int) ([]models.Group, int64, error) { return nil, 0, nil },
		updateFn:       func(context.Context, *models.Group) error { return nil },
		deleteFn:       func(context.Context, uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateBioFn     func(context.Context, uint, string) (*models.User, error)
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateBio(ctx context.Context, id uint, bio string) (*models.User, error) {
	return s.updateBioFn(ctx, id, bio)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateBioFn:     func(context.Context, uint, string) (*models.User, error) { return &models.User{}, nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn         func(context.Context, uint, uint) error
	deleteFn         func(context.Context, uint, uint) error
	existsFn         func(context.Context, uint, uint) (bool, error)
	listAuthorIDsFn  func(context.Context, uint) ([]uint, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, userID, authorID uint) error {
	return s.createFn(ctx, userID, authorID)
}
func (s *followRepoStub) Delete(ctx context.Context, userID, authorID uint) error {
	return s.deleteFn(ctx, userID, authorID)
}
func (s *followRepoStub) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}
func (s *followRepoStub) ListAuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.listAuthorIDsFn(ctx, userID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	return s.countFollowersFn(ctx, authorID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(context.Context, uint, uint) error { return nil },
		deleteFn:         func(context.Context, uint, uint) error { return nil },
		existsFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		listAuthorIDsFn:  func(context.Context, uint) ([]uint, error) { return nil, nil },
		countFollowersFn: func(context.Context, uint) (int64, error) { return 0, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}
