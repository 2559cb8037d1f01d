package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"

	"github.com/redis/go-redis/v9"
)

// ContentCache keeps content pricing hot for access checks. A cache miss is
// reported as (nil, nil).
type ContentCache interface {
	Get(ctx context.Context, contentID string) (*entity.Content, error)
	Set(ctx context.Context, content *entity.Content) error
	Invalidate(ctx context.Context, contentID string) error
}

type contentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache returns a no-op cache when client is nil.
func NewContentCache(client *redis.Client, ttl time.Duration) ContentCache {
	if client == nil {
		return noopContentCache{}
	}
	return &contentCache{client: client, ttl: ttl}
}

func contentKey(contentID string) string {
	return fmt.Sprintf("content:%s", contentID)
}

func (c *contentCache) Get(ctx context.Context, contentID string) (*entity.Content, error) {
	fields, err := c.client.HGetAll(ctx, contentKey(contentID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return decodeContent(contentID, fields)
}

func (c *contentCache) Set(ctx context.Context, content *entity.Content) error {
	key := contentKey(content.ID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, encodeContent(content))
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	return err
}

func (c *contentCache) Invalidate(ctx context.Context, contentID string) error {
	return c.client.Del(ctx, contentKey(contentID)).Err()
}

func encodeContent(content *entity.Content) map[string]interface{} {
	return map[string]interface{}{
		"owner_id":    content.OwnerID,
		"kind":        string(content.Kind),
		"visibility":  string(content.Visibility),
		"price_cents": strconv.FormatInt(content.Price.Int64(), 10),
	}
}

func decodeContent(contentID string, fields map[string]string) (*entity.Content, error) {
	price, err := strconv.ParseInt(fields["price_cents"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cached price for %s: %w", contentID, err)
	}
	return &entity.Content{
		ID:         contentID,
		OwnerID:    fields["owner_id"],
		Kind:       entity.ContentKind(fields["kind"]),
		Visibility: entity.Visibility(fields["visibility"]),
		Price:      money.Cents(price),
	}, nil
}

type noopContentCache struct{}

func (noopContentCache) Get(context.Context, string) (*entity.Content, error) { return nil, nil }
func (noopContentCache) Set(context.Context, *entity.Content) error           { return nil }
func (noopContentCache) Invalidate(context.Context, string) error             { return nil }
