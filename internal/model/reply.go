package model

import "time"

type Reply struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	AuthorID       uint      `gorm:"not null;index" json:"author_id"`
	AuthorUsername string    `gorm:"size:30;not null" json:"author_username"`
	CommentID      uint      `gorm:"not null;index" json:"comment_id"`
	CreatedAt      time.Time `json:"created_at"`
}
