package service

import (
	"time"

	"teamup/internal/models"
)

// UserRef is the author payload embedded in post and comment views.
type UserRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	PublicID string `json:"public_id"`
	Avatar   string `json:"avatar,omitempty"`
}

func newUserRef(u *models.User) UserRef {
	return UserRef{
		ID:       u.ID,
		Username: u.Username,
		PublicID: u.PublicID,
		Avatar:   u.Avatar,
	}
}

// PostSummary is the list/search item shape: the post row, its computed
// comment count, and its tags in attachment order.
type PostSummary struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	LikeCount    int64             `json:"like_count"`
	ViewCount    int64             `json:"view_count"`
	Status       models.PostStatus `json:"status"`
	CommentCount int64             `json:"comment_count"`
	Tags         []string          `json:"tags"`
	User         UserRef           `json:"user"`
	CreatedAt    time.Time         `json:"created_at"`
}

func newPostSummary(p *models.Post, tags []string) *PostSummary {
	if tags == nil {
		tags = []string{}
	}
	return &PostSummary{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		LikeCount:    p.LikeCount,
		ViewCount:    p.ViewCount,
		Status:       p.Status,
		CommentCount: p.CommentCount,
		Tags:         tags,
		User:         newUserRef(&p.User),
		CreatedAt:    p.CreatedAt,
	}
}

// CommentView is a comment as embedded in a post detail.
type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

func newCommentView(c *models.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		User:      newUserRef(&c.User),
		CreatedAt: c.CreatedAt,
	}
}

// PostDetail is the single-post view: the summary plus comments (newest
// first) and the requester's like status. Anonymous requesters always see
// INACTIVE.
type PostDetail struct {
	PostSummary
	Comments    []CommentView     `json:"comments"`
	LikedStatus models.LikeStatus `json:"liked_status"`
}

// Recommendation is one entry of the related-posts panel.
type Recommendation struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ToggleLikeResult reports the tracker state and the post's like counter
// after a toggle.
type ToggleLikeResult struct {
	LikeCount   int64             `json:"like_count"`
	LikedStatus models.LikeStatus `json:"liked_status"`
}
