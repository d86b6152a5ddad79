package scheduler

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/metadata"
)

// memStore is an in-memory Store used by the scheduler tests.
type memStore struct {
	mu         sync.Mutex
	bookmarks  map[string]*domain.Bookmark
	categories map[string]*domain.Category
	deleted    []string
}

func newMemStore() *memStore {
	return &memStore{
		bookmarks:  make(map[string]*domain.Bookmark),
		categories: make(map[string]*domain.Category),
	}
}

func (s *memStore) SaveBookmark(ctx context.Context, b *domain.Bookmark) error {
	return s.SaveBookmarksMany(ctx, []*domain.Bookmark{b})
}

func (s *memStore) SaveBookmarksMany(_ context.Context, bs []*domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bs {
		s.bookmarks[b.ID] = b.Clone()
	}
	return nil
}

func (s *memStore) DeleteBookmarksMany(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.bookmarks, id)
		s.deleted = append(s.deleted, id)
	}
	return nil
}

func (s *memStore) GetAllBookmarks(context.Context) ([]*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		out = append(out, b.Clone())
	}
	return out, nil
}

func (s *memStore) SaveCategory(_ context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s *memStore) GetAllCategories(context.Context) ([]*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memStore) bookmark(id string) (*domain.Bookmark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookmarks[id]
	return b, ok
}

// recordingEnqueuer remembers every job it is given.
type recordingEnqueuer struct {
	mu   sync.Mutex
	jobs []EnrichJob
}

func (r *recordingEnqueuer) Enqueue(job EnrichJob) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	return true
}

// stubFetcher serves canned metadata and signals every call.
type stubFetcher struct {
	meta  *metadata.Metadata
	err   error
	calls chan string
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) (*metadata.Metadata, error) {
	if f.calls != nil {
		f.calls <- rawURL
	}
	if f.err != nil {
		return nil, f.err
	}
	m := *f.meta
	m.URL = rawURL
	return &m, nil
}
