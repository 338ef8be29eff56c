package service

import (
	"context"
	"errors"

	"teamup/internal/featureflags"
	"teamup/internal/models"
	"teamup/internal/observability"
	"teamup/internal/repository"

	"gorm.io/gorm"
)

// recommendLimit is the size of the related-posts panel.
const recommendLimit = 4

// candidateFetchLimit bounds each candidate query; a post can appear once
// per matching tag in the narrow phase, so fetch more than the panel needs.
const candidateFetchLimit = 20

// RecommendService builds the related-posts panel for a post detail view.
type RecommendService struct {
	postRepo      repository.PostRepository
	techStackRepo repository.TechStackRepository
	assembler     *TagAssembler
	flags         *featureflags.Manager
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(
	postRepo repository.PostRepository,
	techStackRepo repository.TechStackRepository,
	assembler *TagAssembler,
	flags *featureflags.Manager,
) *RecommendService {
	return &RecommendService{
		postRepo:      postRepo,
		techStackRepo: techStackRepo,
		assembler:     assembler,
		flags:         flags,
	}
}

// Recommend returns up to four posts related to the given one. The narrow
// phase collects posts sharing at least one tag with the source post; when
// that yields fewer than four, the broad phase tops the panel up with the
// most recent posts regardless of tags. Both phases exclude the source post
// and the viewer's own posts, and the panel preserves encounter order.
func (s *RecommendService) Recommend(ctx context.Context, viewerID, postID uint) ([]Recommendation, error) {
	if !s.flags.Enabled("recommendations", viewerID) {
		return []Recommendation{}, nil
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(models.ResourcePost, postID)
		}
		return nil, models.NewInternalError(err)
	}

	observability.RecommendationRequests.Inc()

	tags, err := s.assembler.TagsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Anonymous viewers own no posts; user id 0 excludes nothing.
	excludeUserID := viewerID

	picked := make([]Recommendation, 0, recommendLimit)
	seen := make(map[uint]bool, recommendLimit)

	rows, err := s.techStackRepo.FindTaggedCandidates(ctx, tags, excludeUserID, postID, candidateFetchLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		if len(picked) == recommendLimit {
			break
		}
		if seen[row.PostID] {
			continue
		}
		seen[row.PostID] = true
		picked = append(picked, Recommendation{ID: row.PostID, Title: row.Post.Title})
	}

	if len(picked) < recommendLimit {
		observability.RecommendationFallbacks.Inc()
		broad, err := s.postRepo.FindCandidates(ctx, excludeUserID, postID, candidateFetchLimit)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		for _, p := range broad {
			if len(picked) == recommendLimit {
				break
			}
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			picked = append(picked, Recommendation{ID: p.ID, Title: p.Title})
		}
	}

	return picked, nil
}
