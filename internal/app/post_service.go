package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"blogpress/internal/model"
	"blogpress/internal/repository"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// PostFeedCache caches listing pages; mutations invalidate the whole feed.
type PostFeedCache interface {
	GetPage(ctx context.Context, page, perPage int) ([]model.Post, bool, error)
	SetPage(ctx context.Context, page, perPage int, posts []model.Post) error
	Invalidate(ctx context.Context) error
}

type PostService struct {
	posts     *repository.PostRepository
	comments  *repository.CommentRepository
	replies   *repository.ReplyRepository
	feedCache PostFeedCache
}

type PostInput struct {
	Title    string
	Subtitle string
	Category string
	Content  string
}

func NewPostService(
	posts *repository.PostRepository,
	comments *repository.CommentRepository,
	replies *repository.ReplyRepository,
	feedCache PostFeedCache,
) *PostService {
	return &PostService{
		posts:     posts,
		comments:  comments,
		replies:   replies,
		feedCache: feedCache,
	}
}

func (s *PostService) CreatePost(ctx context.Context, actor Actor, input PostInput) (*model.Post, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:          strings.TrimSpace(input.Title),
		Subtitle:       strings.TrimSpace(input.Subtitle),
		Category:       strings.TrimSpace(input.Category),
		Content:        input.Content,
		AuthorUsername: actor.Username,
		UserID:         actor.ID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return post, nil
}

func (s *PostService) GetPost(id uint) (*model.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, page, perPage int) ([]model.Post, error) {
	offset, limit := pageBounds(page, perPage)

	if cached, ok, err := s.feedCache.GetPage(ctx, page, perPage); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Printf("feed cache read failed: %v", err)
	}

	posts, err := s.posts.List(offset, limit)
	if err != nil {
		return nil, err
	}
	if err := s.feedCache.SetPage(ctx, page, perPage, posts); err != nil {
		log.Printf("feed cache write failed: %v", err)
	}
	return posts, nil
}

type PostSearchQuery struct {
	Content  string
	Category string
	Year     int
	Author   string
}

// SearchPosts filters the public feed by one criterion. A content match
// takes precedence over category, category over year, year over author;
// with nothing set it is the plain feed. Search results bypass the feed
// cache, it only covers the unfiltered listing.
func (s *PostService) SearchPosts(query PostSearchQuery, page, perPage int) ([]model.Post, error) {
	offset, limit := pageBounds(page, perPage)
	return s.posts.Search(searchFilter(query), offset, limit)
}

func searchFilter(query PostSearchQuery) repository.PostSearchFilter {
	switch {
	case strings.TrimSpace(query.Content) != "":
		return repository.PostSearchFilter{Content: strings.TrimSpace(query.Content)}
	case strings.TrimSpace(query.Category) != "":
		return repository.PostSearchFilter{Category: strings.TrimSpace(query.Category)}
	case query.Year > 0:
		return repository.PostSearchFilter{Year: query.Year}
	case strings.TrimSpace(query.Author) != "":
		return repository.PostSearchFilter{Author: strings.TrimSpace(query.Author)}
	default:
		return repository.PostSearchFilter{}
	}
}

func (s *PostService) UpdatePost(ctx context.Context, actor Actor, id uint, input PostInput) (*model.Post, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Subtitle = strings.TrimSpace(input.Subtitle)
	post.Category = strings.TrimSpace(input.Category)
	post.Content = input.Content
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, actor Actor, id uint) error {
	if !actor.Admin {
		return ErrForbidden
	}

	post, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.posts.Delete(id); err != nil {
		return err
	}
	s.invalidateFeed(ctx)
	return nil
}

func (s *PostService) AddComment(actor Actor, postID uint, content string) (*model.Comment, error) {
	if actor.ID == 0 {
		return nil, ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		Content:        content,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		PostID:         postID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) AddReply(actor Actor, commentID uint, content string) (*model.Reply, error) {
	if actor.ID == 0 {
		return nil, ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput
	}

	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	reply := &model.Reply{
		Content:        content,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		CommentID:      commentID,
	}
	if err := s.replies.Create(reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if err := s.feedCache.Invalidate(ctx); err != nil {
		log.Printf("feed cache invalidate failed: %v", err)
	}
}

func validatePostInput(input PostInput) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Subtitle) == "" ||
		strings.TrimSpace(input.Category) == "" ||
		strings.TrimSpace(input.Content) == "" {
		return ErrInvalidInput
	}
	return nil
}
