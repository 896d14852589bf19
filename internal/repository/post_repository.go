package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogpress/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Comments").Preload("Comments.Replies").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) List(offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

// PostSearchFilter narrows the feed by exactly one criterion; the zero
// value is the plain feed.
type PostSearchFilter struct {
	Content  string
	Category string
	Year     int
	Author   string
}

func (r *PostRepository) Search(filter PostSearchFilter, offset, limit int) ([]model.Post, error) {
	query := r.db.Model(&model.Post{})
	switch {
	case filter.Content != "":
		query = query.Where("content LIKE ?", "%"+filter.Content+"%")
	case filter.Category != "":
		query = query.Where("category = ?", filter.Category)
	case filter.Year > 0:
		query = query.Where("YEAR(created_at) = ?", filter.Year)
	case filter.Author != "":
		query = query.Where("author_username = ?", filter.Author)
	}

	var posts []model.Post
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("search posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(id uint) error {
	if err := r.db.Select("Comments").Delete(&model.Post{ID: id}).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}
