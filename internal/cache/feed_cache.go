package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"blogpress/internal/model"
)

// FeedCache keeps recently served post pages in redis. Keys carry a
// generation counter; invalidation bumps the counter instead of scanning
// for page keys, and stale generations fall out via TTL.
type FeedCache struct {
	client  *redisv9.Client
	feedTTL time.Duration
}

func NewFeedCache(client *redisv9.Client, feedTTL time.Duration) *FeedCache {
	if feedTTL <= 0 {
		feedTTL = 60 * time.Second
	}
	return &FeedCache{
		client:  client,
		feedTTL: feedTTL,
	}
}

func (c *FeedCache) GetPage(ctx context.Context, page, perPage int) ([]model.Post, bool, error) {
	key, err := c.pageKey(ctx, page, perPage)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get feed page failed: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached feed page failed: %w", err)
	}
	return posts, true, nil
}

func (c *FeedCache) SetPage(ctx context.Context, page, perPage int, posts []model.Post) error {
	key, err := c.pageKey(ctx, page, perPage)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("marshal feed page failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.feedTTL).Err(); err != nil {
		return fmt.Errorf("redis set feed page failed: %w", err)
	}
	return nil
}

// Invalidate bumps the feed generation so every cached page misses.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("redis bump feed generation failed: %w", err)
	}
	return nil
}

func (c *FeedCache) pageKey(ctx context.Context, page, perPage int) (string, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if err != nil && err != redisv9.Nil {
		return "", fmt.Errorf("redis get feed generation failed: %w", err)
	}
	return fmt.Sprintf("posts:feed:g%d:p%d:s%d", gen, page, perPage), nil
}

func (c *FeedCache) genKey() string {
	return "posts:feed:gen"
}
