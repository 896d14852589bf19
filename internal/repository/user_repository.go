package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogpress/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by username failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) List(offset, limit int) ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateAccount(id uint, username, email string) error {
	updates := map[string]interface{}{"username": username, "email": email}
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update user account failed: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(id uint, passwordHash string) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error; err != nil {
		return fmt.Errorf("update user password failed: %w", err)
	}
	return nil
}

func (r *UserRepository) SetAdmin(id uint, admin bool) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("admin", admin).Error; err != nil {
		return fmt.Errorf("update user admin flag failed: %w", err)
	}
	return nil
}

// Delete removes the user row. Posts, comments and replies go with it
// through the FK cascade.
func (r *UserRepository) Delete(id uint) error {
	if err := r.db.Select("Posts", "Comments", "Replies").Delete(&model.User{ID: id}).Error; err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	return nil
}
