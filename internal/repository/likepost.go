package repository

import (
	"context"

	"teamup/internal/cache"
	"teamup/internal/models"
	"teamup/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikePostRepository defines the interface for engagement tracker operations.
//
// RecordView and ToggleLike bundle the tracker write and the post counter
// update into one transaction so the counter can never drift from the
// tracker rows that justify it.
type LikePostRepository interface {
	RecordView(ctx context.Context, userID, postID uint) (*models.LikePost, bool, error)
	ToggleLike(ctx context.Context, userID, postID uint) (models.LikeStatus, int64, error)
	GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.LikePost, error)
	GetActiveByUser(ctx context.Context, userID uint) ([]*models.LikePost, error)
}

// likePostRepository implements LikePostRepository
type likePostRepository struct {
	db *gorm.DB
}

// NewLikePostRepository creates a new engagement tracker repository
func NewLikePostRepository(db *gorm.DB) LikePostRepository {
	return &likePostRepository{db: db}
}

// RecordView inserts the tracker row for (userID, postID) if none exists and
// bumps the post's view counter only when the insert actually happened.
// The unique index on (user_id, post_id) plus ON CONFLICT DO NOTHING makes
// concurrent first views race-safe: exactly one caller wins the insert, so
// the counter moves by exactly one. Returns the tracker row and whether this
// call created it.
func (r *likePostRepository) RecordView(ctx context.Context, userID, postID uint) (*models.LikePost, bool, error) {
	defer observability.TrackQuery("record_view", "like_posts")()

	var (
		row     models.LikePost
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`INSERT INTO like_posts (user_id, post_id, status, created_at, updated_at)
			 VALUES (?, ?, ?, NOW(), NOW())
			 ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID, models.LikeStatusInactive,
		)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected == 1

		if created {
			if err := tx.Model(&models.Post{}).
				Where("id = ?", postID).
				UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&row).Error
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		cache.InvalidatePost(ctx, postID)
	}
	return &row, created, nil
}

// ToggleLike flips the tracker's status and adjusts the post's like counter
// by the matching delta. The tracker row is locked for the duration of the
// transaction, so two concurrent toggles for the same pair serialize and the
// counter update is an SQL increment, never an overwrite from memory.
// Returns gorm.ErrRecordNotFound when the user has never viewed the post.
func (r *likePostRepository) ToggleLike(ctx context.Context, userID, postID uint) (models.LikeStatus, int64, error) {
	defer observability.TrackQuery("toggle_like", "like_posts")()

	var (
		next      models.LikeStatus
		likeCount int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.LikePost
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			First(&row).Error; err != nil {
			return err
		}

		delta := row.Status.CountDelta()
		next = row.Status.Toggle()

		if err := tx.Model(&models.LikePost{}).
			Where("id = ?", row.ID).
			Update("status", next).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Select("like_count").
			Where("id = ?", postID).
			Scan(&likeCount).Error
	})
	if err != nil {
		return "", 0, err
	}
	cache.InvalidatePost(ctx, postID)
	return next, likeCount, nil
}

func (r *likePostRepository) GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.LikePost, error) {
	var row models.LikePost
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetActiveByUser returns the user's currently liked posts, newest like first.
func (r *likePostRepository) GetActiveByUser(ctx context.Context, userID uint) ([]*models.LikePost, error) {
	var rows []*models.LikePost
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.User").
		Where("user_id = ? AND status = ?", userID, models.LikeStatusActive).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}
