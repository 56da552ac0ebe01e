// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ManuGH/vuejs/internal/library"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash holding one field per library.
const DefaultRedisKey = ConfigName + ":libraries"

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string // host:port
	Password string // optional
	DB       int
	Key      string // hash key, defaults to DefaultRedisKey
}

// RedisStore keeps the record in a Redis hash.
type RedisStore struct {
	client *redis.Client
	key    string
}

// OpenRedisStore connects to Redis and verifies the connection.
func OpenRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return NewRedisStore(client, cfg.Key), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (Record, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Record{}, fmt.Errorf("redis hgetall %s: %w", s.key, err)
	}
	if len(fields) == 0 {
		return Record{}, nil
	}

	rec := Record{Libraries: make(map[string]library.LibrarySetting, len(fields))}
	for name, raw := range fields {
		var ls library.LibrarySetting
		if err := json.Unmarshal([]byte(raw), &ls); err != nil {
			return Record{}, fmt.Errorf("decode library %s: %w", name, err)
		}
		ls.Name = name
		rec.Libraries[name] = ls
	}
	return rec, nil
}

// Save replaces the hash inside MULTI/EXEC.
func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	values := make([]any, 0, 2*len(rec.Libraries))
	for _, name := range rec.Names() {
		buf, err := json.Marshal(rec.Libraries[name])
		if err != nil {
			return fmt.Errorf("encode library %s: %w", name, err)
		}
		values = append(values, name, string(buf))
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.HSet(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Backend() string { return BackendRedis }

func (s *RedisStore) Close() error { return s.client.Close() }
