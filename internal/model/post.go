package model

import "time"

type Post struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:150;not null" json:"title"`
	Subtitle       string    `gorm:"size:200;not null" json:"subtitle"`
	Category       string    `gorm:"size:50;not null" json:"category"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	PostPic        string    `gorm:"size:50;not null;default:default_post_pic.jpg" json:"post_pic"`
	AuthorUsername string    `gorm:"size:30;not null" json:"author_username"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}
