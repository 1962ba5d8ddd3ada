package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sosEngine/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// SnapshotCache holds the current set of non-terminal signals, so cluster
// and map reads do not hit Postgres on every poll. A cache miss returns
// (nil, nil); callers fall back to the repository.
type SnapshotCache struct {
	client *goredis.Client
	key    string
}

func NewSnapshotCache(r *Redis) *SnapshotCache {
	return &SnapshotCache{
		client: r.Client,
		key:    "signals:active",
	}
}

func (c *SnapshotCache) GetActive(ctx context.Context) ([]*domain.Signal, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var signals []*domain.Signal
	if err := json.Unmarshal(data, &signals); err != nil {
		return nil, err
	}
	// An empty snapshot is still a hit; nil means miss.
	if signals == nil {
		signals = []*domain.Signal{}
	}

	return signals, nil
}

func (c *SnapshotCache) SetActive(ctx context.Context, signals []*domain.Signal, ttl time.Duration) error {
	if signals == nil {
		signals = []*domain.Signal{}
	}
	b, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}

// Invalidate drops the snapshot after a lifecycle write, so the next read
// refetches the current state.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
