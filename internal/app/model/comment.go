package model

import (
	"time"
)

// Comment on a blog post. ParentID links a reply to the comment it
// answers; the parent always belongs to the same post.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Author  User      `gorm:"foreignKey:AuthorID" json:"author"`
	Post    BlogPost  `gorm:"foreignKey:PostID" json:"-"`
	Parent  *Comment  `gorm:"foreignKey:ParentID" json:"-"`
	Answers []Comment `gorm:"foreignKey:ParentID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
