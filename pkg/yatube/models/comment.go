package models

import (
	"time"
)

// Comment is a reply left by a user under a post
type Comment struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime;<-:create;not null;index" json:"created"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// CommentOrder is the default ordering for comments under a post
const CommentOrder = "comments.created DESC, comments.id DESC"
