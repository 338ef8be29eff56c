package service

import (
	"context"
	"strings"
	"testing"

	"teamup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(
	postRepo *postRepoStub,
	tagRepo *tagRepoStub,
	stackRepo *techStackRepoStub,
	commentRepo *commentRepoStub,
	likeRepo *likePostRepoStub,
) *PostService {
	assembler := NewTagAssembler(stackRepo)
	engagement := NewEngagementService(likeRepo, postRepo, assembler)
	return NewPostService(postRepo, tagRepo, stackRepo, commentRepo, assembler, engagement)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopTagRepo(), noopTechStackRepo(), noopCommentRepo(), noopLikePostRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input SavePostInput
	}{
		{"missing title", SavePostInput{UserID: 1, Content: "body"}},
		{"missing content", SavePostInput{UserID: 1, Title: "title"}},
		{"title too long", SavePostInput{UserID: 1, Title: strings.Repeat("x", 201), Content: "body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.input)
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestPostService_CreatePost_DropsUnknownTags(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = 10
		return nil
	}
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "t", Content: "c", Status: models.PostStatusRecruiting}, nil
	}

	tagRepo := noopTagRepo()
	tagRepo.getByNamesFn = func(_ context.Context, names []string) ([]*models.Tag, error) {
		assert.Equal(t, []string{"Go", "Cobol2099", "React"}, names)
		return []*models.Tag{{ID: 2, Name: "React"}, {ID: 1, Name: "Go"}}, nil
	}

	var replaced []uint
	stackRepo := noopTechStackRepo()
	stackRepo.replaceForPostFn = func(_ context.Context, postID uint, tagIDs []uint) error {
		assert.Equal(t, uint(10), postID)
		replaced = tagIDs
		return nil
	}

	svc := newPostService(postRepo, tagRepo, stackRepo, noopCommentRepo(), noopLikePostRepo())

	_, err := svc.CreatePost(context.Background(), SavePostInput{
		UserID:  1,
		Title:   "t",
		Content: "c",
		Tags:    []string{"Go", "Cobol2099", "React"},
	})
	require.NoError(t, err, "unknown tag names must be dropped, not rejected")
	assert.Equal(t, []uint{1, 2}, replaced, "join rows follow the requested order, unknowns skipped")
}

func TestPostService_UpdatePost_OwnerOnly(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 99, Title: "t", Content: "c"}, nil
	}
	svc := newPostService(postRepo, noopTagRepo(), noopTechStackRepo(), noopCommentRepo(), noopLikePostRepo())

	_, err := svc.UpdatePost(context.Background(), 5, SavePostInput{UserID: 1, Title: "new", Content: "new"})
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func TestPostService_UpdatePost_ReplacesTagsWholesale(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Title: "t", Content: "c"}, nil
	}
	tagRepo := noopTagRepo()
	tagRepo.getByNamesFn = func(_ context.Context, _ []string) ([]*models.Tag, error) {
		return []*models.Tag{{ID: 3, Name: "Rust"}}, nil
	}

	var replaced [][]uint
	stackRepo := noopTechStackRepo()
	stackRepo.replaceForPostFn = func(_ context.Context, _ uint, tagIDs []uint) error {
		replaced = append(replaced, tagIDs)
		return nil
	}
	svc := newPostService(postRepo, tagRepo, stackRepo, noopCommentRepo(), noopLikePostRepo())

	_, err := svc.UpdatePost(context.Background(), 5, SavePostInput{UserID: 1, Title: "new", Content: "new", Tags: []string{"Rust"}})
	require.NoError(t, err)
	require.Len(t, replaced, 1)
	assert.Equal(t, []uint{3}, replaced[0])
}

func TestPostService_UpdatePost_EmptyTagsClearsJoinRows(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Title: "t", Content: "c"}, nil
	}

	cleared := false
	stackRepo := noopTechStackRepo()
	stackRepo.replaceForPostFn = func(_ context.Context, _ uint, tagIDs []uint) error {
		cleared = len(tagIDs) == 0
		return nil
	}
	svc := newPostService(postRepo, noopTagRepo(), stackRepo, noopCommentRepo(), noopLikePostRepo())

	_, err := svc.UpdatePost(context.Background(), 5, SavePostInput{UserID: 1, Title: "new", Content: "new"})
	require.NoError(t, err)
	assert.True(t, cleared, "an update without tags must clear existing join rows")
}

func TestPostService_DeletePost(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}
	var deleted []uint
	postRepo.deleteCascadeFn = func(_ context.Context, id uint) error {
		deleted = append(deleted, id)
		return nil
	}
	svc := newPostService(postRepo, noopTagRepo(), noopTechStackRepo(), noopCommentRepo(), noopLikePostRepo())

	require.NoError(t, svc.DeletePost(context.Background(), 1, 5))
	assert.Equal(t, []uint{5}, deleted)

	err := svc.DeletePost(context.Background(), 2, 5)
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func TestPostService_DeletePost_Missing(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := newPostService(postRepo, noopTagRepo(), noopTechStackRepo(), noopCommentRepo(), noopLikePostRepo())

	err := svc.DeletePost(context.Background(), 1, 404)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostService_SearchPosts_InvalidStatus(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopTagRepo(), noopTechStackRepo(), noopCommentRepo(), noopLikePostRepo())

	_, err := svc.SearchPosts(context.Background(), SearchPostsInput{Status: "OPEN"})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestPostService_SearchPosts_TagFilterRoutesToTagQuery(t *testing.T) {
	postRepo := noopPostRepo()
	tagged := false
	postRepo.listByTagNamesFn = func(_ context.Context, tagNames []string, status models.PostStatus, _, _ int) ([]*models.Post, error) {
		tagged = true
		assert.Equal(t, []string{"Go"}, tagNames)
		assert.Equal(t, models.PostStatusRecruiting, status)
		return []*models.Post{{ID: 1, Title: "t"}}, nil
	}
	svc := newPostService(postRepo, noopTagRepo(), noopTechStackRepo(), noopCommentRepo(), noopLikePostRepo())

	out, err := svc.SearchPosts(context.Background(), SearchPostsInput{
		Status: "RECRUITING",
		Tags:   []string{"Go"},
		Limit:  20,
	})
	require.NoError(t, err)
	assert.True(t, tagged)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Tags)
}

func TestPostService_GetPostDetail_AnonymousSkipsTracking(t *testing.T) {
	postRepo := noopPostRepo()
	cachedReads := 0
	postRepo.getByIDCachedFn = func(_ context.Context, id uint) (*models.Post, error) {
		cachedReads++
		return &models.Post{ID: id, Title: "t", Content: "c"}, nil
	}

	views := 0
	likeRepo := noopLikePostRepo()
	likeRepo.recordViewFn = func(_ context.Context, _, _ uint) (*models.LikePost, bool, error) {
		views++
		return &models.LikePost{}, true, nil
	}

	svc := newPostService(postRepo, noopTagRepo(), noopTechStackRepo(), noopCommentRepo(), likeRepo)

	detail, err := svc.GetPostDetail(context.Background(), 0, 42)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusInactive, detail.LikedStatus)
	assert.Zero(t, views, "anonymous detail must not record a view")
	assert.Equal(t, 1, cachedReads)
}

func TestPostService_GetPostDetail_RecordsViewForUser(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "t", Content: "c"}, nil
	}

	store := newFakeEngagementStore()
	store.rows[[2]uint{7, 42}] = &models.LikePost{UserID: 7, PostID: 42, Status: models.LikeStatusActive}

	svc := newPostService(postRepo, noopTagRepo(), noopTechStackRepo(), noopCommentRepo(), store.stub())

	detail, err := svc.GetPostDetail(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusActive, detail.LikedStatus, "repeat view reports the existing like status")
}
