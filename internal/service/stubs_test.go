package service

import (
	"context"
	"testing"

	"teamup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	getByIDCachedFn  func(context.Context, uint) (*models.Post, error)
	listFn           func(context.Context, models.PostStatus, int, int) ([]*models.Post, error)
	listByTagNamesFn func(context.Context, []string, models.PostStatus, int, int) ([]*models.Post, error)
	getByUserIDFn    func(context.Context, uint) ([]*models.Post, error)
	getByIDsFn       func(context.Context, []uint) ([]*models.Post, error)
	updateFn         func(context.Context, *models.Post) error
	toggleStatusFn   func(context.Context, uint) (models.PostStatus, error)
	deleteCascadeFn  func(context.Context, uint) error
	findCandidatesFn func(context.Context, uint, uint, int) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByIDCached(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDCachedFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, status models.PostStatus, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, status, limit, offset)
}
func (s *postRepoStub) ListByTagNames(ctx context.Context, tagNames []string, status models.PostStatus, limit, offset int) ([]*models.Post, error) {
	return s.listByTagNamesFn(ctx, tagNames, status, limit, offset)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *postRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]*models.Post, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) ToggleStatus(ctx context.Context, id uint) (models.PostStatus, error) {
	return s.toggleStatusFn(ctx, id)
}
func (s *postRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *postRepoStub) FindCandidates(ctx context.Context, excludeUserID, excludePostID uint, limit int) ([]*models.Post, error) {
	return s.findCandidatesFn(ctx, excludeUserID, excludePostID, limit)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		getByIDCachedFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn: func(_ context.Context, _ models.PostStatus, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listByTagNamesFn: func(_ context.Context, _ []string, _ models.PostStatus, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		getByUserIDFn:  func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		getByIDsFn:     func(_ context.Context, _ []uint) ([]*models.Post, error) { return nil, nil },
		updateFn:       func(_ context.Context, _ *models.Post) error { return nil },
		toggleStatusFn: func(_ context.Context, _ uint) (models.PostStatus, error) { return models.PostStatusComplete, nil },
		deleteCascadeFn: func(_ context.Context, _ uint) error {
			return nil
		},
		findCandidatesFn: func(_ context.Context, _, _ uint, _ int) ([]*models.Post, error) { return nil, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	getAllFn     func(context.Context) ([]*models.Tag, error)
	getByNamesFn func(context.Context, []string) ([]*models.Tag, error)
	saveAllFn    func(context.Context, []*models.Tag) error
	countFn      func(context.Context) (int64, error)
}

func (s *tagRepoStub) GetAll(ctx context.Context) ([]*models.Tag, error) {
	return s.getAllFn(ctx)
}
func (s *tagRepoStub) GetByNames(ctx context.Context, names []string) ([]*models.Tag, error) {
	return s.getByNamesFn(ctx, names)
}
func (s *tagRepoStub) SaveAll(ctx context.Context, tags []*models.Tag) error {
	return s.saveAllFn(ctx, tags)
}
func (s *tagRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		getAllFn:     func(_ context.Context) ([]*models.Tag, error) { return nil, nil },
		getByNamesFn: func(_ context.Context, _ []string) ([]*models.Tag, error) { return nil, nil },
		saveAllFn:    func(_ context.Context, _ []*models.Tag) error { return nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// techStackRepoStub is a stub for repository.TechStackRepository.
type techStackRepoStub struct {
	getAllByPostIDsFn      func(context.Context, []uint) ([]*models.PostTechStack, error)
	replaceForPostFn       func(context.Context, uint, []uint) error
	findTaggedCandidatesFn func(context.Context, []string, uint, uint, int) ([]*models.PostTechStack, error)
}

func (s *techStackRepoStub) GetAllByPostIDs(ctx context.Context, postIDs []uint) ([]*models.PostTechStack, error) {
	return s.getAllByPostIDsFn(ctx, postIDs)
}
func (s *techStackRepoStub) ReplaceForPost(ctx context.Context, postID uint, tagIDs []uint) error {
	return s.replaceForPostFn(ctx, postID, tagIDs)
}
func (s *techStackRepoStub) FindTaggedCandidates(ctx context.Context, tagNames []string, excludeUserID, excludePostID uint, limit int) ([]*models.PostTechStack, error) {
	return s.findTaggedCandidatesFn(ctx, tagNames, excludeUserID, excludePostID, limit)
}

func noopTechStackRepo() *techStackRepoStub {
	return &techStackRepoStub{
		getAllByPostIDsFn: func(_ context.Context, _ []uint) ([]*models.PostTechStack, error) {
			return nil, nil
		},
		replaceForPostFn: func(_ context.Context, _ uint, _ []uint) error { return nil },
		findTaggedCandidatesFn: func(_ context.Context, _ []string, _, _ uint, _ int) ([]*models.PostTechStack, error) {
			return nil, nil
		},
	}
}

// likePostRepoStub is a stub for repository.LikePostRepository.
type likePostRepoStub struct {
	recordViewFn       func(context.Context, uint, uint) (*models.LikePost, bool, error)
	toggleLikeFn       func(context.Context, uint, uint) (models.LikeStatus, int64, error)
	getByUserAndPostFn func(context.Context, uint, uint) (*models.LikePost, error)
	getActiveByUserFn  func(context.Context, uint) ([]*models.LikePost, error)
}

func (s *likePostRepoStub) RecordView(ctx context.Context, userID, postID uint) (*models.LikePost, bool, error) {
	return s.recordViewFn(ctx, userID, postID)
}
func (s *likePostRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (models.LikeStatus, int64, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *likePostRepoStub) GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.LikePost, error) {
	return s.getByUserAndPostFn(ctx, userID, postID)
}
func (s *likePostRepoStub) GetActiveByUser(ctx context.Context, userID uint) ([]*models.LikePost, error) {
	return s.getActiveByUserFn(ctx, userID)
}

func noopLikePostRepo() *likePostRepoStub {
	return &likePostRepoStub{
		recordViewFn: func(_ context.Context, _, _ uint) (*models.LikePost, bool, error) {
			return &models.LikePost{Status: models.LikeStatusInactive}, false, nil
		},
		toggleLikeFn: func(_ context.Context, _, _ uint) (models.LikeStatus, int64, error) {
			return models.LikeStatusActive, 1, nil
		},
		getByUserAndPostFn: func(_ context.Context, _, _ uint) (*models.LikePost, error) {
			return &models.LikePost{Status: models.LikeStatusInactive}, nil
		},
		getActiveByUserFn: func(_ context.Context, _ uint) ([]*models.LikePost, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	getByPostIDFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:     func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getByPostIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// assertAppErrorCode asserts that err is an AppError carrying the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
