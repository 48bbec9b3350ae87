// Package otp provides the Redis-backed one-time-password repository.
//
// Unlike the in-memory fallback, this implementation shares state across
// horizontally scaled instances: a code requested against one instance can
// be verified against another.
package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kalakraft_backend/internal/feature/auth/domain/entity"
	"kalakraft_backend/internal/feature/auth/usecase"
)

// OTPRedis implements usecase.OTPRepository using Redis.
type OTPRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.OTPRepository = (*OTPRedis)(nil)

// NewOTPRedis creates a new OTPRedis instance.
func NewOTPRedis(client *redis.Client, prefix string) *OTPRedis {
	if prefix == "" {
		prefix = "otp"
	}
	return &OTPRedis{
		client: client,
		prefix: prefix,
	}
}

// entryKey returns the Redis key for a user's pending entry.
func (r *OTPRedis) entryKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Save persists an entry, overwriting any previous one for the same user.
// The Redis TTL mirrors the entry expiry so abandoned entries vanish on
// their own; expiry is still enforced by the caller against ExpiresAt.
func (r *OTPRedis) Save(ctx context.Context, entry *entity.OTPEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal otp entry: %w", err)
	}

	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("otp entry already expired")
	}

	return r.client.Set(ctx, r.entryKey(entry.UserID), data, ttl).Err()
}

// Find retrieves the pending entry for a user.
// It returns usecase.ErrOTPNotFound when no entry exists (including entries
// Redis has already expired).
func (r *OTPRedis) Find(ctx context.Context, userID uint) (*entity.OTPEntry, error) {
	data, err := r.client.Get(ctx, r.entryKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrOTPNotFound
		}
		return nil, err
	}

	var entry entity.OTPEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp entry: %w", err)
	}

	return &entry, nil
}

// Delete removes the pending entry for a user. Deleting a missing entry
// succeeds.
func (r *OTPRedis) Delete(ctx context.Context, userID uint) error {
	return r.client.Del(ctx, r.entryKey(userID)).Err()
}
