package model

import "time"

type Comment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	AuthorID       uint      `gorm:"not null;index" json:"author_id"`
	AuthorUsername string    `gorm:"size:30;not null" json:"author_username"`
	PostID         uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt      time.Time `json:"created_at"`

	Replies []Reply `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}
