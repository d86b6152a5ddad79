package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

const (
	// DefaultGCThreshold is how long a bookmark stays disabled before it is purged
	DefaultGCThreshold = 30 * 24 * time.Hour // 30 days
)

// GarbageCollector purges bookmarks that have been disabled for too long
type GarbageCollector struct {
	store     Store
	index     *index.MemoryIndex
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
}

// NewGarbageCollector creates a new garbage collector. store may be nil.
func NewGarbageCollector(
	store Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     store,
		index:     idx,
		logger:    log.With(logger.String("job", "gc")),
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start runs a collection immediately, then on every interval
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if _, err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed", logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect removes bookmarks disabled for longer than the threshold and
// returns how many were purged. Redis deletion is best effort.
func (gc *GarbageCollector) Collect(ctx context.Context) (int, error) {
	now := time.Now()
	var purged []string

	for _, b := range gc.index.GetAllBookmarks() {
		if !b.Disabled || b.UpdatedAt.IsZero() {
			continue
		}

		disabledFor := now.Sub(b.UpdatedAt)
		if disabledFor < gc.threshold {
			continue
		}

		gc.index.DeleteBookmark(b.ID)
		purged = append(purged, b.ID)

		gc.logger.Info("garbage collected disabled bookmark",
			logger.String("bookmark_id", b.ID),
			logger.String("url", b.URL),
			logger.Duration("disabled_for", disabledFor))
	}

	if len(purged) == 0 {
		gc.logger.Debug("no bookmarks to garbage collect")
		return 0, nil
	}

	if gc.store != nil {
		if err := gc.store.DeleteBookmarksMany(ctx, purged); err != nil {
			gc.logger.Warn("failed to delete bookmarks from redis",
				logger.Int("count", len(purged)),
				logger.Error(err))
		}
	}

	gc.logger.Info("garbage collection completed", logger.Int("bookmarks_deleted", len(purged)))
	return len(purged), nil
}
