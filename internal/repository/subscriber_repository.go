package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogpress/internal/model"
)

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Create inserts a subscriber row. A duplicate email surfaces as
// gorm.ErrDuplicatedKey (kept in the chain via %w) so callers can treat
// the unique index as the last word on concurrent redemptions.
func (r *SubscriberRepository) Create(subscriber *model.Subscriber) error {
	if err := r.db.Create(subscriber).Error; err != nil {
		return fmt.Errorf("create subscriber failed: %w", err)
	}
	return nil
}

func (r *SubscriberRepository) GetByEmail(email string) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query subscriber by email failed: %w", err)
	}
	return &subscriber, nil
}

func (r *SubscriberRepository) GetByID(id uint) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	if err := r.db.First(&subscriber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query subscriber by id failed: %w", err)
	}
	return &subscriber, nil
}

func (r *SubscriberRepository) List(offset, limit int) ([]model.Subscriber, error) {
	var subscribers []model.Subscriber
	if err := r.db.Order("subscribed_at").Offset(offset).Limit(limit).Find(&subscribers).Error; err != nil {
		return nil, fmt.Errorf("list subscribers failed: %w", err)
	}
	return subscribers, nil
}

func (r *SubscriberRepository) ListAll() ([]model.Subscriber, error) {
	var subscribers []model.Subscriber
	if err := r.db.Order("subscribed_at").Find(&subscribers).Error; err != nil {
		return nil, fmt.Errorf("list all subscribers failed: %w", err)
	}
	return subscribers, nil
}

func (r *SubscriberRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Subscriber{}, id).Error; err != nil {
		return fmt.Errorf("delete subscriber failed: %w", err)
	}
	return nil
}
