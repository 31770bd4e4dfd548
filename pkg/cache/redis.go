package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/lingua-center-api/pkg/config"
)

// NewRedis connects to Redis and fails fast when the server does not answer.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", client.Options().Addr, err)
	}
	return client, nil
}

// Keyspace prefixes every cache key of one deployment so several
// environments can share a Redis database.
type Keyspace string

// Key joins parts under the keyspace: Keyspace("lingua").Key("tpl", "welcome") is "lingua:tpl:welcome".
// Empty parts are skipped.
func (k Keyspace) Key(parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	if k != "" {
		segments = append(segments, string(k))
	}
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, ":")
}
