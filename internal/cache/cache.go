package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache in front of the student directory.
// A hit=false with nil error is an ordinary miss; the caller falls
// back to the database and repopulates with SetJSON.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error

	// Del drops keys after a profile write so the next directory
	// request sees the change.
	Del(ctx context.Context, keys ...string) error
}
