package models

import (
	"time"
)

// Post is a single blog entry stored in the blogs table.
// Password is a plain shared secret and is never serialized.
type Post struct {
	ID       string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title    string    `gorm:"type:text;not null" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Author   string    `gorm:"type:text;not null" json:"author"`
	Password string    `gorm:"type:text;not null" json:"-"`
	Date     time.Time `gorm:"column:date;not null" json:"date"`
}

func (Post) TableName() string {
	return "blogs"
}

// NewPost is the form data submitted to create a post.
type NewPost struct {
	Title    string
	Content  string
	Author   string
	Password string
}
