package service

import (
	"context"
	"errors"

	"teamup/internal/models"
	"teamup/internal/repository"

	"gorm.io/gorm"
)

const detailCommentLimit = 100

type PostService struct {
	postRepo      repository.PostRepository
	tagRepo       repository.TagRepository
	techStackRepo repository.TechStackRepository
	commentRepo   repository.CommentRepository
	assembler     *TagAssembler
	engagement    *EngagementService
}

type SavePostInput struct {
	UserID  uint
	Title   string
	Content string
	Tags    []string
}

type SearchPostsInput struct {
	Status string
	Tags   []string
	Limit  int
	Offset int
}

func NewPostService(
	postRepo repository.PostRepository,
	tagRepo repository.TagRepository,
	techStackRepo repository.TechStackRepository,
	commentRepo repository.CommentRepository,
	assembler *TagAssembler,
	engagement *EngagementService,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		tagRepo:       tagRepo,
		techStackRepo: techStackRepo,
		commentRepo:   commentRepo,
		assembler:     assembler,
		engagement:    engagement,
	}
}

func validatePostInput(in SavePostInput) error {
	const maxTitleLen = 200
	const maxContentLen = 50000

	if in.Title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if in.Content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}

// resolveTagIDs maps requested tag names to catalog ids with one query.
// Names missing from the catalog are dropped without error; the catalog
// itself is never extended here. Result order follows the request.
func (s *PostService) resolveTagIDs(ctx context.Context, names []string) ([]uint, error) {
	if len(names) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.GetByNames(ctx, names)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	byName := make(map[string]uint, len(tags))
	for _, tag := range tags {
		byName[tag.Name] = tag.ID
	}
	ids := make([]uint, 0, len(tags))
	seen := make(map[uint]bool, len(tags))
	for _, name := range names {
		id, ok := byName[name]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *PostService) CreatePost(ctx context.Context, in SavePostInput) (*PostSummary, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
		Status:  models.PostStatusRecruiting,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	tagIDs, err := s.resolveTagIDs(ctx, in.Tags)
	if err != nil {
		return nil, err
	}
	if len(tagIDs) > 0 {
		if err := s.techStackRepo.ReplaceForPost(ctx, post.ID, tagIDs); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return s.summaryByID(ctx, post.ID)
}

func (s *PostService) UpdatePost(ctx context.Context, postID uint, in SavePostInput) (*PostSummary, error) {
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post, err := s.ownedPost(ctx, in.UserID, postID)
	if err != nil {
		return nil, err
	}

	post.Change(in.Title, in.Content)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	tagIDs, err := s.resolveTagIDs(ctx, in.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.techStackRepo.ReplaceForPost(ctx, post.ID, tagIDs); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.summaryByID(ctx, post.ID)
}

// ToggleStatus flips the post between RECRUITING and COMPLETE.
func (s *PostService) ToggleStatus(ctx context.Context, userID, postID uint) (models.PostStatus, error) {
	if _, err := s.ownedPost(ctx, userID, postID); err != nil {
		return "", err
	}
	next, err := s.postRepo.ToggleStatus(ctx, postID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return next, nil
}

// DeletePost removes the post and everything hanging off it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.ownedPost(ctx, userID, postID); err != nil {
		return err
	}
	if err := s.postRepo.DeleteCascade(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *PostService) SearchPosts(ctx context.Context, in SearchPostsInput) ([]*PostSummary, error) {
	status := models.PostStatus(in.Status)
	if in.Status != "" && !status.Valid() {
		return nil, models.NewValidationError("Invalid status filter")
	}

	var (
		posts []*models.Post
		err   error
	)
	if len(in.Tags) > 0 {
		posts, err = s.postRepo.ListByTagNames(ctx, in.Tags, status, in.Limit, in.Offset)
	} else {
		posts, err = s.postRepo.List(ctx, status, in.Limit, in.Offset)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.summarize(ctx, posts)
}

// GetPostDetail returns the full post view for a requester. Authenticated
// requesters get their view recorded (first view bumps the counter) and
// their real like status; anonymous requesters get a cached read and
// INACTIVE.
func (s *PostService) GetPostDetail(ctx context.Context, viewerID, postID uint) (*PostDetail, error) {
	likedStatus := models.LikeStatusInactive
	if viewerID != 0 {
		row, err := s.engagement.RecordView(ctx, viewerID, postID)
		if err != nil {
			return nil, err
		}
		likedStatus = row.Status
	}

	var (
		post *models.Post
		err  error
	)
	if viewerID == 0 {
		post, err = s.postRepo.GetByIDCached(ctx, postID)
	} else {
		post, err = s.postRepo.GetByID(ctx, postID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ResourcePost, postID)
		}
		return nil, models.NewInternalError(err)
	}

	tags, err := s.assembler.TagsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByPostID(ctx, postID, detailCommentLimit, 0)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, newCommentView(c))
	}

	return &PostDetail{
		PostSummary: *newPostSummary(post, tags),
		Comments:    views,
		LikedStatus: likedStatus,
	}, nil
}

// MyPosts returns the user's own posts with tags, newest first.
func (s *PostService) MyPosts(ctx context.Context, userID uint) ([]*PostSummary, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.summarize(ctx, posts)
}

func (s *PostService) summarize(ctx context.Context, posts []*models.Post) ([]*PostSummary, error) {
	grouped, err := s.assembler.TagsForPosts(ctx, posts)
	if err != nil {
		return nil, err
	}
	summaries := make([]*PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, newPostSummary(p, grouped.Get(p.ID)))
	}
	return summaries, nil
}

func (s *PostService) summaryByID(ctx context.Context, postID uint) (*PostSummary, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ResourcePost, postID)
		}
		return nil, models.NewInternalError(err)
	}
	tags, err := s.assembler.TagsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return newPostSummary(post, tags), nil
}

// ownedPost loads a post and verifies the caller wrote it.
func (s *PostService) ownedPost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ResourcePost, postID)
		}
		return nil, models.NewInternalError(err)
	}
	if post.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only modify your own posts")
	}
	return post, nil
}
