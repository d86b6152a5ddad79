package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// SaveBookmark stores a bookmark in Redis
func (s *Store) SaveBookmark(ctx context.Context, bookmark *domain.Bookmark) error {
	return s.SaveBookmarksMany(ctx, []*domain.Bookmark{bookmark})
}

// SaveBookmarksMany stores multiple bookmarks in one pipeline
func (s *Store) SaveBookmarksMany(ctx context.Context, bookmarks []*domain.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, b := range bookmarks {
		if err := s.putJSON(ctx, pipe, BookmarkKey(b.ID), KeyAllBookmarks, b.ID, b); err != nil {
			return err
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

// GetBookmark retrieves a bookmark by ID; missing IDs wrap ErrNotFound
func (s *Store) GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	return getJSON[domain.Bookmark](ctx, s.client, BookmarkKey(id))
}

// GetAllBookmarks retrieves all bookmarks, disabled ones included
func (s *Store) GetAllBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	return loadAll[domain.Bookmark](ctx, s.client, KeyAllBookmarks, BookmarkKey)
}

// DeleteBookmark removes a bookmark from Redis
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	if err := s.remove(ctx, BookmarkKey(id), KeyAllBookmarks, id); err != nil {
		return fmt.Errorf("failed to delete bookmark %s: %w", id, err)
	}
	return nil
}

// DeleteBookmarksMany removes several bookmarks in one transaction
func (s *Store) DeleteBookmarksMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		members := make([]any, len(ids))
		for i, id := range ids {
			pipe.Del(ctx, BookmarkKey(id))
			members[i] = id
		}
		pipe.SRem(ctx, KeyAllBookmarks, members...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete bookmarks: %w", err)
	}
	return nil
}
