package scheduler

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/metadata"
)

// EnrichJob asks for a bookmark's metadata to be fetched and applied.
type EnrichJob struct {
	BookmarkID string
	// Overwrite replaces titles and descriptions the user already set.
	Overwrite bool
}

// MetadataFetcher is satisfied by *metadata.Fetcher.
type MetadataFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*metadata.Metadata, error)
}

// Enricher fills in bookmark titles, descriptions and icons in the background.
// Enqueue never blocks: when the queue is full the job is dropped.
type Enricher struct {
	fetcher MetadataFetcher
	store   Store
	index   *index.MemoryIndex
	logger  logger.Logger
	queue   chan EnrichJob
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewEnricher creates an enricher with a queue of queueSize jobs. store may be nil.
func NewEnricher(
	fetcher MetadataFetcher,
	store Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	queueSize int,
) *Enricher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Enricher{
		fetcher: fetcher,
		store:   store,
		index:   idx,
		logger:  log.With(logger.String("job", "enrich")),
		queue:   make(chan EnrichJob, queueSize),
		stopCh:  make(chan struct{}),
	}
}

// Enqueue schedules job and reports whether it was accepted
func (e *Enricher) Enqueue(job EnrichJob) bool {
	select {
	case e.queue <- job:
		return true
	default:
		e.logger.Warn("enrich queue full, dropping job",
			logger.String("bookmark_id", job.BookmarkID))
		return false
	}
}

// Pending returns the number of queued jobs
func (e *Enricher) Pending() int {
	return len(e.queue)
}

// Start launches the worker
func (e *Enricher) Start(ctx context.Context) error {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for {
			select {
			case job := <-e.queue:
				e.Process(ctx, job)
			case <-e.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop stops the worker and waits for the job in flight
func (e *Enricher) Stop() {
	close(e.stopCh)
	e.wg.Wait()
}

// Process runs one job synchronously
func (e *Enricher) Process(ctx context.Context, job EnrichJob) {
	b, ok := e.index.GetBookmark(job.BookmarkID)
	if !ok {
		e.logger.Debug("bookmark vanished before enrichment",
			logger.String("bookmark_id", job.BookmarkID))
		return
	}

	m, err := e.fetcher.Fetch(ctx, b.URL)
	if err != nil {
		e.logger.Warn("metadata fetch rejected",
			logger.String("bookmark_id", b.ID),
			logger.String("url", b.URL),
			logger.Error(err))
		return
	}

	changed := false
	updated, ok := e.index.UpdateBookmark(b.ID, func(next *domain.Bookmark) {
		if changed = m.Apply(next, job.Overwrite); changed {
			next.UpdatedAt = m.FetchedAt
		}
	})
	if !ok || !changed {
		return
	}

	e.logger.Info("bookmark enriched",
		logger.String("bookmark_id", updated.ID),
		logger.String("title", updated.Title),
		logger.Bool("fallback", m.Fallback))

	if e.store != nil {
		if err := e.store.SaveBookmark(ctx, updated); err != nil {
			e.logger.Warn("failed to save enriched bookmark to redis",
				logger.String("bookmark_id", updated.ID),
				logger.Error(err))
		}
	}
}
