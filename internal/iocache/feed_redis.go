package iocache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
	"github.com/redis/go-redis/v9"
)

// Redis key layout for the feed cache.
const (
	redisFeedPrefix = "fastball:feed:"
	redisFeedIndex  = "fastball:feed-index" // sorted set: member=key, score=timestamp
)

// RedisFeedStore stores raw game feeds as Redis strings without expiry.
// A sorted set indexes keys by write time for listing and status.
type RedisFeedStore struct {
	client *redis.Client
}

var _ contract.FeedStore = &RedisFeedStore{} // Compile-time check

// NewRedisFeedStore connects to Redis using a redis:// URL.
func NewRedisFeedStore(ctx context.Context, redisURL string) (*RedisFeedStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	return &RedisFeedStore{client: client}, nil
}

// NewRedisFeedStoreWithClient wraps an existing client.
func NewRedisFeedStoreWithClient(client *redis.Client) *RedisFeedStore {
	return &RedisFeedStore{client: client}
}

// Has reports whether a feed is cached under key.
func (s *RedisFeedStore) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, redisFeedPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cache key %s: %w", key, err)
	}
	return n > 0, nil
}

// Get retrieves a feed by key. A missing key returns contract.ErrCacheMiss.
func (s *RedisFeedStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisFeedPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, contract.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return data, nil
}

// Set stores the feed and indexes its key by timestamp in one transaction.
func (s *RedisFeedStore) Set(ctx context.Context, key string, value []byte, timestamp int64) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisFeedPrefix+key, value, 0)
		pipe.ZAdd(ctx, redisFeedIndex, redis.Z{Score: float64(timestamp), Member: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Keys returns every indexed key in ascending order.
func (s *RedisFeedStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.ZRange(ctx, redisFeedIndex, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

// GetStatus reports entry count, write time range and stored bytes.
func (s *RedisFeedStore) GetStatus(ctx context.Context) (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.RedisBackend),
		Connected: true,
	}

	count, err := s.client.ZCard(ctx, redisFeedIndex).Result()
	if err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	status.TotalEntries = int(count)
	if count == 0 {
		return status, nil
	}

	oldest, err := s.client.ZRangeWithScores(ctx, redisFeedIndex, 0, 0).Result()
	if err != nil {
		return status, fmt.Errorf("failed to get oldest entry time: %w", err)
	}
	newest, err := s.client.ZRevRangeWithScores(ctx, redisFeedIndex, 0, 0).Result()
	if err != nil {
		return status, fmt.Errorf("failed to get last entry time: %w", err)
	}
	if len(oldest) > 0 {
		status.OldestEntryTime = time.Unix(int64(oldest[0].Score), 0)
	}
	if len(newest) > 0 {
		status.LastEntryTime = time.Unix(int64(newest[0].Score), 0)
	}

	keys, err := s.client.ZRange(ctx, redisFeedIndex, 0, -1).Result()
	if err != nil {
		return status, fmt.Errorf("failed to list cache keys: %w", err)
	}
	pipe := s.client.Pipeline()
	lens := make([]*redis.IntCmd, len(keys))
	for i, k := range keys {
		lens[i] = pipe.StrLen(ctx, redisFeedPrefix+k)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return status, fmt.Errorf("failed to measure cache entries: %w", err)
	}
	for _, l := range lens {
		status.TableSizeBytes += l.Val()
	}
	return status, nil
}

// Close closes the Redis client.
func (s *RedisFeedStore) Close() error {
	return s.client.Close()
}

// clear deletes every feed key and the index.
func (s *RedisFeedStore) clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisFeedPrefix+"*", 500).Result()
		if err != nil {
			return fmt.Errorf("failed to scan feed keys: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete feed keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if err := s.client.Del(ctx, redisFeedIndex).Err(); err != nil {
		return fmt.Errorf("failed to delete feed index: %w", err)
	}
	return nil
}
