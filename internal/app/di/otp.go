package di

import (
	"kalakraft_backend/internal/feature/auth/adapters"
	"kalakraft_backend/internal/feature/auth/usecase"
	"kalakraft_backend/internal/platform/otp"

	"github.com/redis/go-redis/v9"
)

// NewOTPRepository creates an OTPRepository implementation.
// If Redis is available, it returns a Redis-backed implementation so that a
// code requested against one instance can be verified against another.
// Otherwise, it falls back to a process-local in-memory store.
func NewOTPRepository(rdb *redis.Client) usecase.OTPRepository {
	if rdb != nil {
		return otp.NewOTPRedis(rdb, "otp")
	}
	return adapters.NewOTPMemory()
}
