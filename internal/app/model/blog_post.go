package model

import (
	"time"
)

// BlogPost is written and maintained by the administrator.
type BlogPost struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(250);uniqueIndex;not null" json:"title"`
	Subtitle  string    `gorm:"type:varchar(250);not null" json:"subtitle"`
	Date      string    `gorm:"type:varchar(250);not null" json:"date"` // display date, e.g. "October 19, 2026"
	Body      string    `gorm:"type:text;not null" json:"body"`
	ImageURL  string    `gorm:"type:varchar(250);not null" json:"img_url"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// PostDateLayout formats BlogPost.Date.
const PostDateLayout = "January 2, 2006"
