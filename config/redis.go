package config

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the shared client used for the directory cache.
// The address may come as a bare host:port or as a redis:// / rediss://
// URL (managed Redis providers hand out the latter).
func InitRedis() error {
	addr := firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL")
	if addr == "" {
		return errors.New("REDIS_ADDR (or REDIS_URI/REDIS_URL) environment variable is not set")
	}
	if !strings.Contains(addr, "://") {
		addr = "redis://" + addr
	}

	opt, err := redis.ParseURL(addr)
	if err != nil {
		return err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}

	RedisClient = client
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
