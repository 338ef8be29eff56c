package repository

import (
	"context"

	"teamup/internal/models"

	"gorm.io/gorm"
)

// TechStackRepository defines the interface for post-tag join row operations.
type TechStackRepository interface {
	GetAllByPostIDs(ctx context.Context, postIDs []uint) ([]*models.PostTechStack, error)
	ReplaceForPost(ctx context.Context, postID uint, tagIDs []uint) error
	FindTaggedCandidates(ctx context.Context, tagNames []string, excludeUserID, excludePostID uint, limit int) ([]*models.PostTechStack, error)
}

// techStackRepository implements TechStackRepository
type techStackRepository struct {
	db *gorm.DB
}

// NewTechStackRepository creates a new tech stack repository
func NewTechStackRepository(db *gorm.DB) TechStackRepository {
	return &techStackRepository{db: db}
}

// GetAllByPostIDs loads the join rows for every requested post in a single
// query, tags preloaded. Ordered by id so a post's tags come back in the
// order they were attached.
func (r *techStackRepository) GetAllByPostIDs(ctx context.Context, postIDs []uint) ([]*models.PostTechStack, error) {
	if len(postIDs) == 0 {
		return []*models.PostTechStack{}, nil
	}
	var rows []*models.PostTechStack
	err := r.db.WithContext(ctx).
		Preload("Tag").
		Where("post_id IN ?", postIDs).
		Order("id").
		Find(&rows).Error
	return rows, err
}

// ReplaceForPost swaps a post's join rows wholesale: delete everything, then
// insert the new set. No diffing.
func (r *techStackRepository) ReplaceForPost(ctx context.Context, postID uint, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostTechStack{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		rows := make([]*models.PostTechStack, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			rows = append(rows, &models.PostTechStack{PostID: postID, TagID: tagID})
		}
		return tx.Create(&rows).Error
	})
}

// FindTaggedCandidates is the narrow recommendation query: join rows whose
// tag name matches the source post's stack, excluding the viewer's own posts
// and the source post itself, most recent posts first. One post appears once
// per matching tag; the caller dedupes in encounter order.
func (r *techStackRepository) FindTaggedCandidates(ctx context.Context, tagNames []string, excludeUserID, excludePostID uint, limit int) ([]*models.PostTechStack, error) {
	if len(tagNames) == 0 {
		return []*models.PostTechStack{}, nil
	}
	var rows []*models.PostTechStack
	err := r.db.WithContext(ctx).
		Preload("Post").
		Joins("JOIN tags ON tags.id = post_tech_stacks.tag_id").
		Joins("JOIN posts ON posts.id = post_tech_stacks.post_id").
		Where("tags.name IN ?", tagNames).
		Where("posts.user_id <> ?", excludeUserID).
		Where("posts.id <> ?", excludePostID).
		Order("posts.created_at DESC, post_tech_stacks.id").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
