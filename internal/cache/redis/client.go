package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/pkg/logger"
)

// Client caches raw fetch responses so repeated ingestion runs inside
// the TTL do not re-hit the upstream APIs. It is an optional
// accelerator, not a record store.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis fetch cache initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) SetFetchResult(ctx context.Context, key string, docs []models.Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to marshal fetch result: %w", err)
	}

	if err := c.client.Set(ctx, "fetch:"+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache fetch result: %w", err)
	}

	logger.Debug("Fetch result cached", zap.String("key", key), zap.Int("docs", len(docs)))
	return nil
}

func (c *Client) GetFetchResult(ctx context.Context, key string) ([]models.Document, bool, error) {
	data, err := c.client.Get(ctx, "fetch:"+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read fetch cache: %w", err)
	}

	var docs []models.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached fetch result: %w", err)
	}

	logger.Debug("Fetch cache hit", zap.String("key", key))
	return docs, true, nil
}
