package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// RedisSyncer loads persisted bookmarks and categories into the memory index on startup
type RedisSyncer struct {
	store  Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync replaces the index content with what Redis holds
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing bookmarks and categories from redis to memory")

	categories, err := rs.store.GetAllCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	bookmarks, err := rs.store.GetAllBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	rs.index.ReplaceCategories(categories)
	rs.index.ReplaceBookmarks(bookmarks)

	rs.logger.Info("synced from redis",
		logger.Int("bookmarks", len(bookmarks)),
		logger.Int("categories", len(categories)))

	return nil
}
