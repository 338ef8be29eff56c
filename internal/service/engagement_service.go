package service

import (
	"context"
	"errors"

	"teamup/internal/models"
	"teamup/internal/observability"
	"teamup/internal/repository"

	"gorm.io/gorm"
)

// EngagementService owns the per-user view and like tracking for posts.
type EngagementService struct {
	likeRepo  repository.LikePostRepository
	postRepo  repository.PostRepository
	assembler *TagAssembler
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(
	likeRepo repository.LikePostRepository,
	postRepo repository.PostRepository,
	assembler *TagAssembler,
) *EngagementService {
	return &EngagementService{
		likeRepo:  likeRepo,
		postRepo:  postRepo,
		assembler: assembler,
	}
}

// RecordView notes that the user opened the post. The first view per
// (user, post) pair creates the tracker row and bumps the post's view
// counter; every later view is a no-op that just reports the current
// tracker status.
func (s *EngagementService) RecordView(ctx context.Context, userID, postID uint) (*models.LikePost, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ResourcePost, postID)
		}
		return nil, models.NewInternalError(err)
	}

	row, created, err := s.likeRepo.RecordView(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if created {
		observability.PostViewsRecorded.Inc()
	}
	return row, nil
}

// ToggleLike flips the user's like on a post. Liking requires having viewed
// the post first; without a tracker row the toggle fails rather than
// creating one.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID uint) (*ToggleLikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ResourcePost, postID)
		}
		return nil, models.NewInternalError(err)
	}

	status, likeCount, err := s.likeRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ResourceTracker, postID)
		}
		return nil, models.NewInternalError(err)
	}

	direction := "activated"
	if status == models.LikeStatusInactive {
		direction = "deactivated"
	}
	observability.LikeToggles.WithLabelValues(direction).Inc()

	return &ToggleLikeResult{LikeCount: likeCount, LikedStatus: status}, nil
}

// LikedStatus reports the user's current like status for a post, INACTIVE
// when the user has never viewed it or is anonymous.
func (s *EngagementService) LikedStatus(ctx context.Context, userID, postID uint) (models.LikeStatus, error) {
	if userID == 0 {
		return models.LikeStatusInactive, nil
	}
	row, err := s.likeRepo.GetByUserAndPost(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.LikeStatusInactive, nil
		}
		return "", models.NewInternalError(err)
	}
	return row.Status, nil
}

// LikedPosts returns the posts the user currently likes, most recently
// liked first, tags assembled in one batch.
func (s *EngagementService) LikedPosts(ctx context.Context, userID uint) ([]*PostSummary, error) {
	rows, err := s.likeRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	posts := make([]*models.Post, 0, len(rows))
	for _, row := range rows {
		post := row.Post
		posts = append(posts, &post)
	}

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
