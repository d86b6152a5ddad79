package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/metadata"
)

// CacheMetadata stores fetched page metadata under its URL
func (s *Store) CacheMetadata(ctx context.Context, m *metadata.Metadata, ttl time.Duration) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := s.client.Set(ctx, MetadataKey(m.URL), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache metadata: %w", err)
	}
	return nil
}

// GetCachedMetadata returns cached metadata, or nil on a miss
func (s *Store) GetCachedMetadata(ctx context.Context, pageURL string) (*metadata.Metadata, error) {
	m, err := getJSON[metadata.Metadata](ctx, s.client, MetadataKey(pageURL))
	if errors.Is(err, ErrNotFound) {
		return nil, nil // Cache miss
	}
	return m, err
}

// InvalidateMetadata removes the cached metadata of a page
func (s *Store) InvalidateMetadata(ctx context.Context, pageURL string) error {
	if err := s.client.Del(ctx, MetadataKey(pageURL)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate metadata: %w", err)
	}
	return nil
}

// FlushMetadataCache removes all cached metadata
func (s *Store) FlushMetadataCache(ctx context.Context) (int, error) {
	var removed int
	iter := s.client.Scan(ctx, 0, KeyPrefixMetadata+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete cache key: %w", err)
		}
		removed++
	}
	if err := iter.Err(); err != nil && !errors.Is(err, redis.Nil) {
		return removed, fmt.Errorf("failed to flush metadata cache: %w", err)
	}
	return removed, nil
}

var _ metadata.Cache = (*Store)(nil)
