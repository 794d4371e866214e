// Package cache wraps Redis to hold the serialized Competition snapshot,
// keyed by its state commit so stale snapshots are never served once the
// underlying compstate directory has moved on.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const competitionKeyPrefix = "srcomp:competition:"

// Service handles all caching operations for the competition snapshot.
type Service struct {
	client *redis.Client
	logger *log.Logger
}

// NewService creates a new cache service.
func NewService(client *redis.Client, logger *log.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Set stores a value in cache with expiration.
func (s *Service) Set(key string, value interface{}, expiration time.Duration) error {
	ctx := context.Background()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Get retrieves a value from cache.
func (s *Service) Get(key string, dest interface{}) error {
	ctx := context.Background()

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return fmt.Errorf("key not found")
	}
	if err != nil {
		return fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

// Delete removes a key from cache.
func (s *Service) Delete(key string) error {
	ctx := context.Background()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from cache: %w", err)
	}

	return nil
}

// InvalidatePattern deletes all keys matching a pattern.
func (s *Service) InvalidatePattern(pattern string) error {
	ctx := context.Background()

	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("failed to get keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}

	return nil
}

// Ping checks if cache is available.
func (s *Service) Ping() error {
	ctx := context.Background()
	return s.client.Ping(ctx).Err()
}

// competitionKey builds the cache key for a snapshot at the given state
// commit. An empty commit (no git repo, or a dirty tree) still gets its own
// key so uncommitted states don't collide with a prior commit's snapshot.
func competitionKey(stateCommit string) string {
	if stateCommit == "" {
		return competitionKeyPrefix + "working-tree"
	}
	return competitionKeyPrefix + stateCommit
}

// SetCompetition caches a competition snapshot (any JSON-serializable value;
// the competition service passes the full model) under its state commit,
// for the given TTL.
func (s *Service) SetCompetition(stateCommit string, snapshot interface{}, ttl time.Duration) error {
	if err := s.Set(competitionKey(stateCommit), snapshot, ttl); err != nil {
		return err
	}
	if err := s.Set(competitionKeyPrefix+"latest", stateCommit, ttl); err != nil {
		s.logger.Printf("failed to record latest competition state commit: %v", err)
	}
	return nil
}

// GetCompetition retrieves the cached snapshot for the given state commit.
func (s *Service) GetCompetition(stateCommit string, dest interface{}) error {
	return s.Get(competitionKey(stateCommit), dest)
}

// InvalidateAll clears every cached competition snapshot, called whenever
// the compstate directory is reloaded from disk.
func (s *Service) InvalidateAll() error {
	return s.InvalidatePattern(competitionKeyPrefix + "*")
}
