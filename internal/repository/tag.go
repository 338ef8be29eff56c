package repository

import (
	"context"

	"teamup/internal/cache"
	"teamup/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag catalog reads and seeding.
// Tag rows are created only through SaveAll; post saves never add names
// to the catalog.
type TagRepository interface {
	GetAll(ctx context.Context) ([]*models.Tag, error)
	GetByNames(ctx context.Context, names []string) ([]*models.Tag, error)
	SaveAll(ctx context.Context, tags []*models.Tag) error
	Count(ctx context.Context) (int64, error)
}

// tagRepository implements TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// GetAll returns the whole catalog, served cache-aside since it only changes
// when the seeding path runs.
func (r *tagRepository) GetAll(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := cache.Aside(ctx, cache.TagListKey, &tags, cache.TagListTTL, func() error {
		return r.db.WithContext(ctx).Order("id").Find(&tags).Error
	})
	return tags, err
}

// GetByNames resolves names to catalog rows with one batched query.
// Unknown names simply produce no row; the match is case-sensitive.
func (r *tagRepository) GetByNames(ctx context.Context, names []string) ([]*models.Tag, error) {
	if len(names) == 0 {
		return []*models.Tag{}, nil
	}
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) SaveAll(ctx context.Context, tags []*models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Create(&tags).Error
	if err == nil {
		cache.InvalidateTagList(ctx)
	}
	return err
}

func (r *tagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Count(&count).Error
	return count, err
}
