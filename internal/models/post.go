package models

import (
	"time"
)

// PostStatus is the recruiting state of a post.
type PostStatus string

const (
	// PostStatusRecruiting means the post is still looking for members.
	PostStatusRecruiting PostStatus = "RECRUITING"
	// PostStatusComplete means the team has been filled.
	PostStatusComplete PostStatus = "COMPLETE"
)

// Toggle returns the next status in the RECRUITING<->COMPLETE transition.
// New states must extend this switch, not the call sites.
func (s PostStatus) Toggle() PostStatus {
	switch s {
	case PostStatusRecruiting:
		return PostStatusComplete
	default:
		return PostStatusRecruiting
	}
}

// Valid reports whether s is a known status value.
func (s PostStatus) Valid() bool {
	return s == PostStatusRecruiting || s == PostStatusComplete
}

// Post represents a recruitment post on the TeamUp board.
//
// LikeCount and ViewCount are persisted counters maintained exclusively by
// the engagement repository with atomic SQL increments; they are never
// written from an in-memory value. CommentCount is computed at query time.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"user"`
	LikeCount int64      `gorm:"not null;default:0" json:"like_count"`
	ViewCount int64      `gorm:"not null;default:0" json:"view_count"`
	Status    PostStatus `gorm:"type:varchar(16);not null;default:RECRUITING" json:"status"`
	// CommentCount is not persisted; computed at query time
	CommentCount int64     `gorm:"->" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Change replaces the post's editable fields.
func (p *Post) Change(title, content string) {
	p.Title = title
	p.Content = content
}
