package repository

import (
	"fmt"

	"gorm.io/gorm"

	"blogpress/internal/model"
)

type ReplyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

func (r *ReplyRepository) Create(reply *model.Reply) error {
	if err := r.db.Create(reply).Error; err != nil {
		return fmt.Errorf("create reply failed: %w", err)
	}
	return nil
}
