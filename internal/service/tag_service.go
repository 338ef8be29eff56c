package service

import (
	"context"

	"teamup/internal/models"
	"teamup/internal/repository"
)

// TagService exposes the tag catalog. The catalog is read-only at runtime;
// new tags enter only through the seeding path.
type TagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

func (s *TagService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	tags, err := s.tagRepo.GetAll(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
