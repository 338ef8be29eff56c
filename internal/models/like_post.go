package models

import (
	"time"
)

// LikeStatus is the like state of an engagement tracker row.
type LikeStatus string

const (
	// LikeStatusActive means the user currently likes the post.
	LikeStatusActive LikeStatus = "ACTIVE"
	// LikeStatusInactive means the user has viewed the post but does not
	// currently like it.
	LikeStatusInactive LikeStatus = "INACTIVE"
)

// Toggle returns the next status in the ACTIVE<->INACTIVE transition.
func (s LikeStatus) Toggle() LikeStatus {
	if s == LikeStatusActive {
		return LikeStatusInactive
	}
	return LikeStatusActive
}

// CountDelta is the adjustment Toggle applies to Post.LikeCount when leaving
// this status: +1 when activating, -1 when deactivating.
func (s LikeStatus) CountDelta() int64 {
	if s == LikeStatusActive {
		return -1
	}
	return 1
}

// LikePost is the engagement tracker row for one (user, post) pair.
//
// Its existence records that the user has opened the post at least once
// (driving Post.ViewCount); its Status records whether the user currently
// likes the post (driving Post.LikeCount). At most one row exists per pair.
// Rows are created on first view with status INACTIVE and are deleted only
// by the post deletion cascade.
type LikePost struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint       `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	Status    LikeStatus `gorm:"type:varchar(16);not null;default:INACTIVE" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
