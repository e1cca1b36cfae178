package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "leadflow:"

// RedisAdapter stores each collection under one string key.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

// OpenRedis parses a redis:// URL and pings the server.
func OpenRedis(ctx context.Context, url string) (*RedisAdapter, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return NewRedisAdapter(client, redisKeyPrefix), nil
}

func NewRedisAdapter(client *redis.Client, prefix string) *RedisAdapter {
	return &RedisAdapter{client: client, prefix: prefix}
}

func (r *RedisAdapter) key(collection string) string {
	return r.prefix + collection
}

func (r *RedisAdapter) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	payload, err := r.client.Get(ctx, r.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", collection, err)
	}
	return decodeCollection(ctx, collection, payload), nil
}

func (r *RedisAdapter) Set(ctx context.Context, collection string, records []json.RawMessage) error {
	payload, err := encodeCollection(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}
	if err := r.client.Set(ctx, r.key(collection), payload, 0).Err(); err != nil {
		return fmt.Errorf("saving %s: %w", collection, err)
	}
	return nil
}

// SetBatch writes every collection in a MULTI/EXEC pipeline.
func (r *RedisAdapter) SetBatch(ctx context.Context, batch map[string][]json.RawMessage) error {
	encoded := make(map[string][]byte, len(batch))
	for name, records := range batch {
		payload, err := encodeCollection(records)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		encoded[name] = payload
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, payload := range encoded {
			pipe.Set(ctx, r.key(name), payload, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving batch: %w", err)
	}
	return nil
}

func (r *RedisAdapter) Close() error { return r.client.Close() }
