package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

const pendingDeletionsKey = "prompts:pending_delete"

// RedisPendingDeletions stores queued ids in a Redis set so they survive restarts.
type RedisPendingDeletions struct {
	client *redis.Client
}

func NewRedisPendingDeletions(client *redis.Client) *RedisPendingDeletions {
	return &RedisPendingDeletions{client: client}
}

func (q *RedisPendingDeletions) Add(ctx context.Context, id string) error {
	if err := q.client.SAdd(ctx, pendingDeletionsKey, id).Err(); err != nil {
		return fmt.Errorf("queue pending deletion %s: %w", id, err)
	}
	return nil
}

func (q *RedisPendingDeletions) List(ctx context.Context) ([]string, error) {
	ids, err := q.client.SMembers(ctx, pendingDeletionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list pending deletions: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (q *RedisPendingDeletions) Remove(ctx context.Context, id string) error {
	if err := q.client.SRem(ctx, pendingDeletionsKey, id).Err(); err != nil {
		return fmt.Errorf("dequeue pending deletion %s: %w", id, err)
	}
	return nil
}

// MemoryPendingDeletions is used when no Redis instance is configured.
// Queued ids are lost on restart.
type MemoryPendingDeletions struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewMemoryPendingDeletions() *MemoryPendingDeletions {
	return &MemoryPendingDeletions{ids: make(map[string]struct{})}
}

func (q *MemoryPendingDeletions) Add(_ context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids[id] = struct{}{}
	return nil
}

func (q *MemoryPendingDeletions) List(_ context.Context) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]string, 0, len(q.ids))
	for id := range q.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (q *MemoryPendingDeletions) Remove(_ context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.ids, id)
	return nil
}
