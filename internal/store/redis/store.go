package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is wrapped by lookups of missing keys.
var ErrNotFound = errors.New("not found")

// Store persists bookmarks, categories and the metadata cache in Redis.
// Entities are JSON values indexed by a set of IDs per kind.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return errors.New("redis client not initialized")
	}
	return s.client.Ping(ctx).Err()
}

func (s *Store) putJSON(ctx context.Context, pipe redis.Pipeliner, key, setKey, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, setKey, id)
	return nil
}

func (s *Store) remove(ctx context.Context, key, setKey, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, setKey, id)
		return nil
	})
	return err
}

func getJSON[T any](ctx context.Context, client *redis.Client, key string) (*T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return &v, nil
}

// loadAll reads every member of setKey in one pipeline. IDs whose value
// vanished are dropped from the set.
func loadAll[T any](ctx context.Context, client *redis.Client, setKey string, keyFn func(string) string) ([]*T, error) {
	ids, err := client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", setKey, err)
	}
	if len(ids) == 0 {
		return []*T{}, nil
	}

	pipe := client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, keyFn(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load %s: %w", setKey, err)
	}

	out := make([]*T, 0, len(ids))
	var stale []any
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if errors.Is(err, redis.Nil) {
			stale = append(stale, ids[i])
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", keyFn(ids[i]), err)
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			// Skip entries that no longer decode
			continue
		}
		out = append(out, &v)
	}

	if len(stale) > 0 {
		_ = client.SRem(ctx, setKey, stale...).Err()
	}
	return out, nil
}
