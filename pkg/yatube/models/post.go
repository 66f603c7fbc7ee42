package models

import (
	"time"
)

// Post is a single publication by a user, optionally filed under a group.
// PubDate is written on create only; updates never touch it.
type Post struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;<-:create;not null;index" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Image    string    `json:"image,omitempty"`

	// Relationships
	Author User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Group  *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
}

// PostOrder is the default feed ordering: newest first, id breaks ties
const PostOrder = "posts.pub_date DESC, posts.id DESC"
