package models

// Tag is a technology name in the tag catalog. Names are case-sensitive and
// unique; rows are created only by the seeding path, never by post saves.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// PostTechStack is the join row binding a post to one of its tags.
// A post's rows are always replaced wholesale on edit; there is no diffing.
type PostTechStack struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index" json:"post_id"`
	TagID  uint `gorm:"not null;index" json:"tag_id"`
	Tag    Tag  `gorm:"foreignKey:TagID" json:"tag"`
	Post   Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
