package database

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Redis keeps each collection under "<prefix>:<collection>".
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(addr, password string, db int, prefix string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		prefix: prefix,
	}
}

func (r *Redis) key(collection string) string {
	return r.prefix + ":" + collection
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, collection string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(collection)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %s", r.key(collection))
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, collection string, value []byte) error {
	err := r.client.Set(ctx, r.key(collection), value, 0).Err()
	if err != nil {
		return errors.Wrapf(err, "redis set %s", r.key(collection))
	}
	return nil
}

// Clear removes both collections, used by tests.
func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key(Whispers), r.key(Blobs)).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
