// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"teamup/internal/cache"
	"teamup/internal/models"
	"teamup/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByIDCached(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, status models.PostStatus, limit, offset int) ([]*models.Post, error)
	ListByTagNames(ctx context.Context, tagNames []string, status models.PostStatus, limit, offset int) ([]*models.Post, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Post, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	ToggleStatus(ctx context.Context, id uint) (models.PostStatus, error)
	DeleteCascade(ctx context.Context, id uint) error
	FindCandidates(ctx context.Context, excludeUserID, excludePostID uint, limit int) ([]*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDCached is the read path for anonymous detail views; the cached copy
// is invalidated on every counter or content mutation.
func (r *postRepository) GetByIDCached(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.applyPostDetails(r.db.WithContext(ctx)).
			Preload("User").
			First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, status models.PostStatus, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx)).Preload("User")
	if status != "" {
		q = q.Where("posts.status = ?", status)
	}
	err := q.Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// ListByTagNames filters via a subquery on the join table so a post matching
// several of the requested tags still appears once.
func (r *postRepository) ListByTagNames(ctx context.Context, tagNames []string, status models.PostStatus, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("posts.id IN (?)", r.db.
			Table("post_tech_stacks").
			Select("post_tech_stacks.post_id").
			Joins("JOIN tags ON tags.id = post_tech_stacks.tag_id").
			Where("tags.name IN ?", tagNames))
	if status != "" {
		q = q.Where("posts.status = ?", status)
	}
	err := q.Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Post, error) {
	if len(ids) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("posts.id IN ?", ids).
		Find(&posts).Error
	return posts, err
}

// Update persists the editable fields only. Counters and status are owned by
// their dedicated mutation paths and must never travel through here.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Model(post).
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		}).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID)
	}
	return err
}

// ToggleStatus flips RECRUITING<->COMPLETE under a row lock so concurrent
// toggles serialize instead of clobbering each other.
func (r *postRepository) ToggleStatus(ctx context.Context, id uint) (models.PostStatus, error) {
	var next models.PostStatus
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, id).Error; err != nil {
			return err
		}
		next = post.Status.Toggle()
		return tx.Model(&models.Post{}).
			Where("id = ?", id).
			Update("status", next).Error
	})
	if err != nil {
		return "", err
	}
	cache.InvalidatePost(ctx, id)
	return next, nil
}

// DeleteCascade removes a post and its dependents in one transaction.
// Child tables go first so a failure partway never leaves a post whose
// dependents are gone while the post itself survives.
func (r *postRepository) DeleteCascade(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete_cascade", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTechStack{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.LikePost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}

// FindCandidates is the broadened recommendation query: recent posts by
// anyone except the viewer, the source post excluded, regardless of tags.
func (r *postRepository) FindCandidates(ctx context.Context, excludeUserID, excludePostID uint, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("posts.user_id <> ?", excludeUserID).
		Where("posts.id <> ?", excludePostID).
		Order("posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// applyPostDetails adds the comment count subquery so list and detail reads
// stay a single round trip.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).Select(
		"posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comment_count",
	)
}
