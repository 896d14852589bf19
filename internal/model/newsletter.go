package model

import "time"

type Newsletter struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Subject        string     `gorm:"size:200;not null" json:"subject"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	AttachmentFile string     `gorm:"size:50;not null" json:"attachment_file"`
	AuthorName     string     `gorm:"size:30;not null" json:"author_name"`
	CreatedAt      time.Time  `json:"created_at"`
	EmailedAt      *time.Time `json:"emailed_at"`
}
