// Package cache memoizes rendered cards in Redis.
//
// Rendering is pure, so a cache entry is keyed by everything the output
// depends on: language, sheet and a hash of the raw card record. Editing a
// record therefore misses the cache instead of serving stale fields.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/store.go -package=cachemocks -source=store.go

// Store reads and writes rendered field maps.
type Store interface {
	// Get returns the fields stored under key. found is false on a miss.
	Get(ctx context.Context, key string) (fields map[string]string, found bool, err error)
	// Set stores fields under key, replacing any previous entry.
	Set(ctx context.Context, key string, fields map[string]string) error
}

// DefaultPrefix namespaces cache keys.
const DefaultPrefix = "secard:"

// Sentinel errors for cache operations.
var (
	ErrNilClient     = errors.New("cache: redis client is required")
	ErrEmptyEndpoint = errors.New("cache: redis endpoint is required")
	ErrNegativeTTL   = errors.New("cache: ttl cannot be negative")
)

// Key builds the cache key for one rendered sheet of a record.
func Key(prefix, lang string, raw []byte, sheet int) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + lang + ":" + strconv.Itoa(sheet) + ":" + strconv.FormatUint(xxhash.Sum64(raw), 16)
}

// NewClient creates a single-instance Redis client. Redis connects lazily.
func NewClient(endpoint string) (redis.UniversalClient, error) {
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}
	return redis.NewClient(&redis.Options{Addr: endpoint}), nil
}

// Config holds the dependencies of a RedisStore.
type Config struct {
	Client redis.UniversalClient
	TTL    time.Duration // zero keeps entries until evicted
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	if c.Client == nil {
		return ErrNilClient
	}
	if c.TTL < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeTTL, c.TTL)
	}
	return nil
}

// RedisStore keeps each rendered card as one Redis hash.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// Compile-time interface check.
var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore.
func NewRedisStore(cfg *Config) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RedisStore{client: cfg.Client, ttl: cfg.TTL}, nil
}

// Get reads the hash at key. A missing key is a miss, not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (map[string]string, bool, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, false, nil
	}
	return fields, true, nil
}

// Set replaces the hash at key and refreshes its TTL in one transaction.
func (s *RedisStore) Set(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
