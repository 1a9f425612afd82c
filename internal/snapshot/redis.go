package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient é o subconjunto do go-redis usado pelo backend.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis grava cada chave como uma string sem expiração.
type Redis struct {
	client RedisClient
	prefix string
}

// NewRedis cria o backend; prefix vazio usa "painel:snapshot:".
func NewRedis(client RedisClient, prefix string) *Redis {
	if prefix == "" {
		prefix = "painel:snapshot:"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, key string, payload []byte) error {
	return r.client.Set(ctx, r.prefix+key, payload, 0).Err()
}

// Close não fecha o cliente, que pertence a quem o criou.
func (r *Redis) Close() error { return nil }
