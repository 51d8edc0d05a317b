package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists checkpoints in Redis, keyed as
// "checkpoint:{episode_id}:{sprint}:{phase}", for multi-worker curriculum
// replay where a shared filesystem isn't available.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore against addr.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func redisKey(episodeID string, sprint int, phase string) string {
	return fmt.Sprintf("checkpoint:%s:%d:%s", episodeID, sprint, phase)
}

// Save writes cp as JSON under its canonical key.
func (s *RedisStore) Save(ctx context.Context, cp Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(cp.EpisodeID, cp.Sprint, cp.Phase), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set checkpoint: %w", err)
	}
	return nil
}

// Restore reads and decodes the checkpoint at its canonical key. As with
// FileStore, a config-hash mismatch only warns.
func (s *RedisStore) Restore(ctx context.Context, episodeID string, sprint int, phase string, expectedConfigHash string) (Checkpoint, error) {
	data, err := s.client.Get(ctx, redisKey(episodeID, sprint, phase)).Bytes()
	if err != nil {
		return Checkpoint{}, fmt.Errorf("redis get checkpoint: %w", err)
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("unmarshal checkpoint: %w", err)
	}
	if expectedConfigHash != "" && cp.ConfigHash != expectedConfigHash {
		slog.WarnContext(ctx, "checkpoint config hash mismatch",
			"episode_id", episodeID, "sprint", sprint, "phase", phase,
			"expected", expectedConfigHash, "actual", cp.ConfigHash)
	}
	return cp, nil
}

// List scans for checkpoint keys under episodeID and returns them sorted.
func (s *RedisStore) List(ctx context.Context, episodeID string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("checkpoint:%s:*", episodeID), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan checkpoints: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
