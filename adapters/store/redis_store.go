package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/ports"
)

// RedisStore is a Redis implementation of the ChallengeStore interface.
// The binding is stored as a JSON value and the attempt counter as a
// companion key driven by INCR, so concurrent failures never lose
// increments. Both keys expire with the challenge TTL, so abandoned
// logins clean themselves up.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis challenge store
func NewRedisStore(client *redis.Client) ports.ChallengeStore {
	return &RedisStore{
		client: client,
		prefix: "sentinel:challenge:",
	}
}

func (s *RedisStore) dataKey(ref string) string {
	return s.prefix + ref
}

func (s *RedisStore) attemptsKey(ref string) string {
	return s.prefix + "attempts:" + ref
}

// Put stores a pending challenge with a TTL matching its expiry
func (s *RedisStore) Put(ctx context.Context, challenge *core.Challenge) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	ttl := time.Until(challenge.ExpiresAt) + time.Minute

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.dataKey(challenge.Ref), payload, ttl)
	pipe.Set(ctx, s.attemptsKey(challenge.Ref), challenge.Attempts, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	return nil
}

// Get retrieves the pending challenge for ref. The attempt count comes
// from the counter key, which is the authoritative value.
func (s *RedisStore) Get(ctx context.Context, ref string) (*core.Challenge, error) {
	payload, err := s.client.Get(ctx, s.dataKey(ref)).Bytes()
	if err == redis.Nil {
		return nil, core.ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge: %w", err)
	}

	var challenge core.Challenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	attempts, err := s.client.Get(ctx, s.attemptsKey(ref)).Int()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to fetch attempt count: %w", err)
	}
	if err == nil {
		challenge.Attempts = attempts
	}

	return &challenge, nil
}

// RecordFailure atomically increments the attempt counter for ref and
// returns the new count
func (s *RedisStore) RecordFailure(ctx context.Context, ref string) (int, error) {
	count, err := s.client.Incr(ctx, s.attemptsKey(ref)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}

	// Bound the counter lifetime in case the binding expired between the
	// caller's read and this increment
	if err := s.client.ExpireNX(ctx, s.attemptsKey(ref), time.Hour).Err(); err != nil {
		return 0, fmt.Errorf("failed to bound attempt counter: %w", err)
	}

	return int(count), nil
}

// Delete removes the pending challenge for ref, reporting whether the
// binding was removed. DEL's reply makes racing deletes resolve to a
// single winner.
func (s *RedisStore) Delete(ctx context.Context, ref string) (bool, error) {
	removed, err := s.client.Del(ctx, s.dataKey(ref)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete challenge: %w", err)
	}

	if err := s.client.Del(ctx, s.attemptsKey(ref)).Err(); err != nil {
		return false, fmt.Errorf("failed to delete attempt counter: %w", err)
	}

	return removed > 0, nil
}
