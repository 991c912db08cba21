package repositories

import (
	"context"
	"time"
)

// Cache is a narrow interface over the external cache (Redis in production,
// miniredis in tests). A miss returns ("", nil).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
