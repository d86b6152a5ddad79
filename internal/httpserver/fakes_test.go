package httpserver

import (
	"context"
	"errors"
	"sync"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/metadata"
	"github.com/MrSnakeDoc/shelf/internal/scheduler"
)

type fakeStore struct {
	mu          sync.Mutex
	bookmarks   map[string]*domain.Bookmark
	categories  map[string]*domain.Category
	invalidated []string
	pingErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookmarks:  make(map[string]*domain.Bookmark),
		categories: make(map[string]*domain.Category),
	}
}

func (s *fakeStore) SaveBookmark(ctx context.Context, b *domain.Bookmark) error {
	return s.SaveBookmarksMany(ctx, []*domain.Bookmark{b})
}

func (s *fakeStore) SaveBookmarksMany(_ context.Context, bs []*domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bs {
		s.bookmarks[b.ID] = b.Clone()
	}
	return nil
}

func (s *fakeStore) DeleteBookmark(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookmarks, id)
	return nil
}

func (s *fakeStore) DeleteBookmarksMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		_ = s.DeleteBookmark(ctx, id)
	}
	return nil
}

func (s *fakeStore) GetAllBookmarks(context.Context) ([]*domain.Bookmark, error) {
	return nil, errors.New("not used")
}

func (s *fakeStore) SaveCategory(_ context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s *fakeStore) GetAllCategories(context.Context) ([]*domain.Category, error) {
	return nil, errors.New("not used")
}

func (s *fakeStore) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, id)
	return nil
}

func (s *fakeStore) InvalidateMetadata(_ context.Context, pageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = append(s.invalidated, pageURL)
	return nil
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

// fakeQueue records jobs and refuses them once full is set.
type fakeQueue struct {
	jobs []scheduler.EnrichJob
	full bool
}

func (q *fakeQueue) Enqueue(job scheduler.EnrichJob) bool {
	if q.full {
		return false
	}
	q.jobs = append(q.jobs, job)
	return true
}

func (q *fakeQueue) Pending() int { return len(q.jobs) }

type fakeFetcher struct{}

func (fakeFetcher) Fetch(_ context.Context, rawURL string) (*metadata.Metadata, error) {
	if err := metadata.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	return &metadata.Metadata{
		URL:    rawURL,
		Title:  "Example Domain",
		Domain: domain.ExtractComparableHostname(rawURL),
	}, nil
}
