package service

import (
	"context"
	"testing"

	"teamup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeEngagementStore backs the likePostRepoStub with real per-pair state so
// idempotence and involution can be exercised end to end.
type fakeEngagementStore struct {
	rows       map[[2]uint]*models.LikePost
	viewCounts map[uint]int64
	likeCounts map[uint]int64
	nextID     uint
}

func newFakeEngagementStore() *fakeEngagementStore {
	return &fakeEngagementStore{
		rows:       make(map[[2]uint]*models.LikePost),
		viewCounts: make(map[uint]int64),
		likeCounts: make(map[uint]int64),
		nextID:     1,
	}
}

func (f *fakeEngagementStore) recordView(userID, postID uint) (*models.LikePost, bool) {
	key := [2]uint{userID, postID}
	if row, ok := f.rows[key]; ok {
		return row, false
	}
	row := &models.LikePost{ID: f.nextID, UserID: userID, PostID: postID, Status: models.LikeStatusInactive}
	f.nextID++
	f.rows[key] = row
	f.viewCounts[postID]++
	return row, true
}

func (f *fakeEngagementStore) toggleLike(userID, postID uint) (models.LikeStatus, int64, error) {
	row, ok := f.rows[[2]uint{userID, postID}]
	if !ok {
		return "", 0, gorm.ErrRecordNotFound
	}
	f.likeCounts[postID] += row.Status.CountDelta()
	row.Status = row.Status.Toggle()
	return row.Status, f.likeCounts[postID], nil
}

func (f *fakeEngagementStore) stub() *likePostRepoStub {
	stub := noopLikePostRepo()
	stub.recordViewFn = func(_ context.Context, userID, postID uint) (*models.LikePost, bool, error) {
		row, created := f.recordView(userID, postID)
		return row, created, nil
	}
	stub.toggleLikeFn = func(_ context.Context, userID, postID uint) (models.LikeStatus, int64, error) {
		return f.toggleLike(userID, postID)
	}
	return stub
}

func newEngagementService(likeRepo *likePostRepoStub, postRepo *postRepoStub) *EngagementService {
	return NewEngagementService(likeRepo, postRepo, NewTagAssembler(noopTechStackRepo()))
}

func TestEngagementService_RecordView_Idempotent(t *testing.T) {
	store := newFakeEngagementStore()
	svc := newEngagementService(store.stub(), noopPostRepo())
	ctx := context.Background()

	first, err := svc.RecordView(ctx, 7, 42)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusInactive, first.Status)

	for i := 0; i < 5; i++ {
		_, err := svc.RecordView(ctx, 7, 42)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), store.viewCounts[42], "repeat views must not move the counter")
	assert.Len(t, store.rows, 1)
}

func TestEngagementService_RecordView_DistinctUsersCountSeparately(t *testing.T) {
	store := newFakeEngagementStore()
	svc := newEngagementService(store.stub(), noopPostRepo())
	ctx := context.Background()

	_, err := svc.RecordView(ctx, 7, 42)
	require.NoError(t, err)
	_, err = svc.RecordView(ctx, 8, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(2), store.viewCounts[42])
}

func TestEngagementService_RecordView_PostMissing(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := newEngagementService(noopLikePostRepo(), postRepo)

	_, err := svc.RecordView(context.Background(), 7, 999)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestEngagementService_ToggleLike_Involutive(t *testing.T) {
	store := newFakeEngagementStore()
	svc := newEngagementService(store.stub(), noopPostRepo())
	ctx := context.Background()

	_, err := svc.RecordView(ctx, 7, 42)
	require.NoError(t, err)

	res, err := svc.ToggleLike(ctx, 7, 42)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusActive, res.LikedStatus)
	assert.Equal(t, int64(1), res.LikeCount)

	res, err = svc.ToggleLike(ctx, 7, 42)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusInactive, res.LikedStatus)
	assert.Equal(t, int64(0), res.LikeCount, "a toggle pair must restore the counter")
}

func TestEngagementService_ToggleLike_WithoutViewFails(t *testing.T) {
	store := newFakeEngagementStore()
	svc := newEngagementService(store.stub(), noopPostRepo())

	_, err := svc.ToggleLike(context.Background(), 7, 42)
	assertAppErrorCode(t, err, models.CodeNotFound)
	assert.Zero(t, store.likeCounts[42])
}

func TestEngagementService_LikedStatus_AnonymousIsInactive(t *testing.T) {
	calls := 0
	likeRepo := noopLikePostRepo()
	likeRepo.getByUserAndPostFn = func(_ context.Context, _, _ uint) (*models.LikePost, error) {
		calls++
		return nil, gorm.ErrRecordNotFound
	}
	svc := newEngagementService(likeRepo, noopPostRepo())

	status, err := svc.LikedStatus(context.Background(), 0, 42)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusInactive, status)
	assert.Zero(t, calls, "anonymous requesters must not hit the tracker")
}

func TestEngagementService_LikedPosts_AssemblesTags(t *testing.T) {
	likeRepo := noopLikePostRepo()
	likeRepo.getActiveByUserFn = func(_ context.Context, userID uint) ([]*models.LikePost, error) {
		return []*models.LikePost{
			{UserID: userID, PostID: 2, Status: models.LikeStatusActive, Post: models.Post{ID: 2, Title: "Second"}},
			{UserID: userID, PostID: 1, Status: models.LikeStatusActive, Post: models.Post{ID: 1, Title: "First"}},
		}, nil
	}
	stack := noopTechStackRepo()
	stack.getAllByPostIDsFn = func(_ context.Context, _ []uint) ([]*models.PostTechStack, error) {
		return []*models.PostTechStack{
			{PostID: 2, Tag: models.Tag{Name: "Go"}},
		}, nil
	}
	svc := NewEngagementService(likeRepo, noopPostRepo(), NewTagAssembler(stack))

	posts, err := svc.LikedPosts(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, uint(2), posts[0].ID)
	assert.Equal(t, []string{"Go"}, posts[0].Tags)
	assert.Empty(t, posts[1].Tags)
	assert.NotNil(t, posts[1].Tags)
}
