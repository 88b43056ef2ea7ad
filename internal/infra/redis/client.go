package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/payout/internal/core/domain"
)

const pendingKey = "pending_transfers"

// Client wraps the Redis operations of the confirmation pipeline: a ZSET of
// broadcast transfers scored by broadcast time, plus reconcile locks.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// PendingMember builds the queue member for a broadcast transfer.
func PendingMember(asset domain.Asset, txID string) string {
	return fmt.Sprintf("%s:%s", asset, txID)
}

// ParsePendingMember splits a queue member back into asset and txid.
func ParsePendingMember(member string) (domain.Asset, string, error) {
	asset, txID, ok := strings.Cut(member, ":")
	if !ok || asset == "" || txID == "" {
		return "", "", fmt.Errorf("invalid pending member: %s", member)
	}
	return domain.Asset(asset), txID, nil
}

// PushPending enqueues a broadcast transfer, scored by broadcast time.
func (c *Client) PushPending(ctx context.Context, asset domain.Asset, txID string, broadcastAt time.Time) error {
	member := PendingMember(asset, txID)
	z := redis.Z{Score: float64(broadcastAt.Unix()), Member: member}
	if err := c.rdb.ZAdd(ctx, pendingKey, z).Err(); err != nil {
		return fmt.Errorf("zadd failed: %w", err)
	}
	return nil
}

// DuePending returns up to limit members broadcast at least minAge ago,
// oldest first. Members stay queued until removed.
func (c *Client) DuePending(ctx context.Context, minAge time.Duration, limit int64) ([]string, error) {
	cutoff := time.Now().Add(-minAge).Unix()
	members, err := c.rdb.ZRangeByScore(ctx, pendingKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   fmt.Sprintf("%d", cutoff),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("zrangebyscore failed: %w", err)
	}
	return members, nil
}

// BroadcastTime returns when a member was enqueued.
func (c *Client) BroadcastTime(ctx context.Context, member string) (time.Time, error) {
	score, err := c.rdb.ZScore(ctx, pendingKey, member).Result()
	if err == redis.Nil {
		return time.Time{}, fmt.Errorf("member not queued: %s", member)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("zscore failed: %w", err)
	}
	return time.Unix(int64(score), 0), nil
}

// RemovePending drops a settled transfer from the queue.
func (c *Client) RemovePending(ctx context.Context, member string) error {
	if err := c.rdb.ZRem(ctx, pendingKey, member).Err(); err != nil {
		return fmt.Errorf("zrem failed: %w", err)
	}
	return nil
}

// PendingCount returns the queue depth.
func (c *Client) PendingCount(ctx context.Context) (int64, error) {
	n, err := c.rdb.ZCard(ctx, pendingKey).Result()
	if err != nil {
		return 0, fmt.Errorf("zcard failed: %w", err)
	}
	return n, nil
}

func lockKey(member string) string {
	return "reconciling:" + member
}

// AcquireLock attempts to take the reconcile lock for a member. Prevents
// two reconciler instances from settling the same transfer.
func (c *Client) AcquireLock(ctx context.Context, member string, ttl time.Duration) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, lockKey(member), "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx failed: %w", err)
	}
	return ok, nil
}

// ReleaseLock releases a reconcile lock.
func (c *Client) ReleaseLock(ctx context.Context, member string) error {
	return c.rdb.Del(ctx, lockKey(member)).Err()
}
