package blob

import (
	"context"
	"fmt"

	"github.com/mx-space/formcraft/internal/pkg/redis"
)

// Redis stores the blob under a single key.
type Redis struct {
	client     *redis.Client
	key        string
	ownsClient bool
}

func NewRedis(client *redis.Client, key string, owns bool) *Redis {
	return &Redis{client: client, key: key, ownsClient: owns}
}

func (r *Redis) Read(ctx context.Context) (string, error) {
	value, ok, err := r.client.Get(ctx, r.key)
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", r.key, err)
	}
	if !ok {
		return EmptyCollection, nil
	}
	return value, nil
}

func (r *Redis) Write(ctx context.Context, value string) error {
	if err := r.client.Set(ctx, r.key, value, 0); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	if !r.ownsClient {
		return nil
	}
	return r.client.Close()
}
