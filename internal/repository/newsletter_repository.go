package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"blogpress/internal/model"
)

type NewsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

func (r *NewsletterRepository) Create(newsletter *model.Newsletter) error {
	if err := r.db.Create(newsletter).Error; err != nil {
		return fmt.Errorf("create newsletter failed: %w", err)
	}
	return nil
}

func (r *NewsletterRepository) GetByID(id uint) (*model.Newsletter, error) {
	var newsletter model.Newsletter
	if err := r.db.First(&newsletter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query newsletter by id failed: %w", err)
	}
	return &newsletter, nil
}

func (r *NewsletterRepository) List(offset, limit int) ([]model.Newsletter, error) {
	var newsletters []model.Newsletter
	if err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&newsletters).Error; err != nil {
		return nil, fmt.Errorf("list newsletters failed: %w", err)
	}
	return newsletters, nil
}

func (r *NewsletterRepository) Update(newsletter *model.Newsletter) error {
	if err := r.db.Save(newsletter).Error; err != nil {
		return fmt.Errorf("update newsletter failed: %w", err)
	}
	return nil
}

func (r *NewsletterRepository) MarkEmailed(id uint, emailedAt time.Time) error {
	if err := r.db.Model(&model.Newsletter{}).Where("id = ?", id).Update("emailed_at", emailedAt).Error; err != nil {
		return fmt.Errorf("mark newsletter emailed failed: %w", err)
	}
	return nil
}

func (r *NewsletterRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Newsletter{}, id).Error; err != nil {
		return fmt.Errorf("delete newsletter failed: %w", err)
	}
	return nil
}
