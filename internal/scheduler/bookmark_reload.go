package scheduler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/sources/seedfile"
)

// Enqueuer schedules metadata enrichment for a bookmark.
type Enqueuer interface {
	Enqueue(job EnrichJob) bool
}

// BookmarkReloader periodically merges the seed file into the index
type BookmarkReloader struct {
	loader        *seedfile.Loader
	store         Store
	index         *index.MemoryIndex
	enricher      Enqueuer
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
	now           func() time.Time
}

// NewBookmarkReloader creates a new seed file reloader. store and enricher may be nil.
func NewBookmarkReloader(
	seedFile string,
	store Store,
	idx *index.MemoryIndex,
	enricher Enqueuer,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BookmarkReloader {
	return &BookmarkReloader{
		loader:        seedfile.NewLoader(seedFile),
		store:         store,
		index:         idx,
		enricher:      enricher,
		logger:        log.With(logger.String("job", "seed_reload")),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		now:           time.Now,
	}
}

// Start loads the seed file once, then reloads on interval or manual trigger
func (br *BookmarkReloader) Start(ctx context.Context) error {
	if err := br.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed reload failed: %w", err)
	}

	ticker := time.NewTicker(br.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				br.reloadLogged(ctx)
			case <-br.manualTrigger:
				br.logger.Info("manual seed reload triggered")
				br.reloadLogged(ctx)
			case <-br.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (br *BookmarkReloader) Stop() {
	close(br.stopCh)
}

func (br *BookmarkReloader) reloadLogged(ctx context.Context) {
	if err := br.Reload(ctx); err != nil {
		br.logger.Error("failed to reload seed file", logger.Error(err))
	}
}

// Reload merges the seed file into the index and store.
// Seeded bookmarks missing from the file are disabled, or lose the seed
// source when they were also saved through the API.
func (br *BookmarkReloader) Reload(ctx context.Context) error {
	config, err := br.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	now := br.now()
	res, err := seedfile.Map(config, now)
	if err != nil {
		return fmt.Errorf("failed to map seed file: %w", err)
	}
	for _, skipped := range res.Skipped {
		br.logger.Warn("skipping seed entry", logger.String("url", skipped))
	}

	newCategories := br.mergeCategories(res.Categories)
	changed, added := br.mergeBookmarks(res.Bookmarks, now)

	br.index.PutBookmarks(changed)
	br.index.MarkBookmarkReload(now)

	br.logger.Info("seed file reloaded",
		logger.String("file", br.loader.Path()),
		logger.Int("bookmarks", len(res.Bookmarks)),
		logger.Int("changed", len(changed)),
		logger.Int("new", len(added)),
		logger.Int("new_categories", len(newCategories)))

	if br.store != nil {
		for _, c := range newCategories {
			if err := br.store.SaveCategory(ctx, c); err != nil {
				br.logger.Warn("failed to save category to redis",
					logger.String("category_id", c.ID), logger.Error(err))
			}
		}
		if err := br.store.SaveBookmarksMany(ctx, changed); err != nil {
			br.logger.Warn("failed to save bookmarks to redis", logger.Error(err))
		}
	}

	if br.enricher != nil {
		for _, b := range added {
			br.enricher.Enqueue(EnrichJob{BookmarkID: b.ID})
		}
	}

	return nil
}

// mergeCategories adds categories unknown to the index and returns them.
func (br *BookmarkReloader) mergeCategories(categories []*domain.Category) []*domain.Category {
	var added []*domain.Category
	for _, c := range categories {
		if _, ok := br.index.GetCategory(c.ID); ok {
			continue
		}
		br.index.PutCategory(c)
		added = append(added, c)
	}
	return added
}

// mergeBookmarks computes the bookmarks to write. added lists those the
// index did not know yet.
func (br *BookmarkReloader) mergeBookmarks(seeded []*domain.Bookmark, now time.Time) (changed, added []*domain.Bookmark) {
	inFile := make(map[string]bool, len(seeded))

	for _, b := range seeded {
		inFile[b.ID] = true

		cur, ok := br.index.GetBookmark(b.ID)
		if !ok {
			changed = append(changed, b)
			added = append(added, b)
			continue
		}

		if merged, dirty := mergeSeeded(cur, b, now); dirty {
			changed = append(changed, merged)
		}
	}

	for _, cur := range br.index.GetAllBookmarks() {
		if inFile[cur.ID] || !cur.HasSource(domain.SourceSeed) || cur.Disabled {
			continue
		}
		next := cur.Clone()
		next.UpdatedAt = now
		if next.HasSource(domain.SourceAPI) {
			next.Sources = slices.DeleteFunc(next.Sources, func(s string) bool { return s == domain.SourceSeed })
		} else {
			next.Disabled = true
		}
		changed = append(changed, next)
	}

	return changed, added
}

// mergeSeeded folds a seed entry into the existing bookmark. Explicit seed
// titles and descriptions win; the category is only taken from the file for
// bookmarks nobody saved through the API.
func mergeSeeded(cur, seed *domain.Bookmark, now time.Time) (*domain.Bookmark, bool) {
	next := cur.Clone()

	if !next.HasSource(domain.SourceSeed) {
		next.Sources = append(next.Sources, domain.SourceSeed)
	}
	next.URL = seed.URL
	next.Disabled = false
	if seed.Title != seed.Domain {
		next.Title = seed.Title
	}
	if seed.Description != "" {
		next.Description = seed.Description
	}
	if !next.HasSource(domain.SourceAPI) {
		next.CategoryID = seed.CategoryID
	}

	dirty := next.URL != cur.URL ||
		next.Title != cur.Title ||
		next.Description != cur.Description ||
		next.Disabled != cur.Disabled ||
		len(next.Sources) != len(cur.Sources) ||
		!sameCategory(next.CategoryID, cur.CategoryID)
	if dirty {
		next.UpdatedAt = now
	}
	return next, dirty
}

func sameCategory(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
