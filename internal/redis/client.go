package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrTempDataNotFound = errors.New("temp data not found")
)

type Client struct {
	rdb *redis.Client
}

// FilterSession is a saved dashboard selection. Dates are YYYY-MM-DD.
type FilterSession struct {
	ID        string    `json:"id"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Courier   string    `json:"courier"`
	Area      string    `json:"area"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management
func (c *Client) SetSession(ctx context.Context, session *FilterSession, ttl time.Duration) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+session.ID, jsonData, ttl).Err()
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (*FilterSession, error) {
	val, err := c.rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session FilterSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, "session:"+sessionID).Err()
}

// Temporary data management. Values are stored as raw bytes so rendered
// exports come back byte for byte.
func (c *Client) SetTempData(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, "temp:"+key, value, ttl).Err()
}

func (c *Client) GetTempData(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, "temp:"+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrTempDataNotFound
		}
		return nil, fmt.Errorf("failed to get temp data: %w", err)
	}
	return val, nil
}

func (c *Client) DeleteTempData(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, "temp:"+key).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
