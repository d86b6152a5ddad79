package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// MemoryIndex is the read path for bookmarks and categories.
// Redis is synced into it at startup and written through on mutation.
// Stored values are never mutated in place; updates swap in a fresh copy.
type MemoryIndex struct {
	mu                 sync.RWMutex
	bookmarks          map[string]*domain.Bookmark // ID -> Bookmark
	categories         map[string]*domain.Category // ID -> Category
	lastBookmarkReload time.Time                   // Timestamp of last seed file reload
}

// NewMemoryIndex creates an empty memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		bookmarks:  make(map[string]*domain.Bookmark),
		categories: make(map[string]*domain.Category),
	}
}

// ─────────────────────────────────────────────────────────────────
// Bookmarks
// ─────────────────────────────────────────────────────────────────

// ReplaceBookmarks swaps the whole bookmark set
func (idx *MemoryIndex) ReplaceBookmarks(bookmarks []*domain.Bookmark) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.bookmarks = make(map[string]*domain.Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		if b != nil {
			idx.bookmarks[b.ID] = b
		}
	}
}

// GetBookmark retrieves a bookmark by ID
func (idx *MemoryIndex) GetBookmark(id string) (*domain.Bookmark, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	b, ok := idx.bookmarks[id]
	return b, ok
}

// GetAllBookmarks returns a snapshot of every bookmark, disabled ones included.
// Order is unspecified; callers sort with domain.FilterBookmarks.
func (idx *MemoryIndex) GetAllBookmarks() []*domain.Bookmark {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.Bookmark, 0, len(idx.bookmarks))
	for _, b := range idx.bookmarks {
		out = append(out, b)
	}
	return out
}

// PutBookmark adds or replaces a single bookmark
func (idx *MemoryIndex) PutBookmark(b *domain.Bookmark) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.bookmarks[b.ID] = b
}

// PutBookmarks adds or replaces several bookmarks under one lock
func (idx *MemoryIndex) PutBookmarks(bookmarks []*domain.Bookmark) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, b := range bookmarks {
		idx.bookmarks[b.ID] = b
	}
}

// UpdateBookmark applies fn to a copy of the bookmark and stores the copy.
// It returns the updated copy, or false when id is unknown.
func (idx *MemoryIndex) UpdateBookmark(id string, fn func(*domain.Bookmark)) (*domain.Bookmark, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	cur, ok := idx.bookmarks[id]
	if !ok {
		return nil, false
	}
	next := cur.Clone()
	fn(next)
	idx.bookmarks[id] = next
	return next, true
}

// DeleteBookmark removes a bookmark, reporting whether it existed
func (idx *MemoryIndex) DeleteBookmark(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	_, ok := idx.bookmarks[id]
	delete(idx.bookmarks, id)
	return ok
}

// BookmarkCount returns the number of bookmarks in the index
func (idx *MemoryIndex) BookmarkCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.bookmarks)
}

// MarkBookmarkReload records a completed seed file reload
func (idx *MemoryIndex) MarkBookmarkReload(t time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastBookmarkReload = t
}

// GetLastBookmarkReload returns the timestamp of the last seed file reload
func (idx *MemoryIndex) GetLastBookmarkReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastBookmarkReload
}

// ─────────────────────────────────────────────────────────────────
// Categories
// ─────────────────────────────────────────────────────────────────

// ReplaceCategories swaps the whole category set
func (idx *MemoryIndex) ReplaceCategories(categories []*domain.Category) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.categories = make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		if c != nil {
			idx.categories[c.ID] = c
		}
	}
}

// GetCategory retrieves a category by ID
func (idx *MemoryIndex) GetCategory(id string) (*domain.Category, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	c, ok := idx.categories[id]
	return c, ok
}

// GetAllCategories returns copies of every category with BookmarkCount filled in,
// ordered by name.
func (idx *MemoryIndex) GetAllCategories() []*domain.Category {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.Category, 0, len(idx.categories))
	for _, c := range idx.categories {
		cp := *c
		out = append(out, &cp)
	}
	bookmarks := make([]*domain.Bookmark, 0, len(idx.bookmarks))
	for _, b := range idx.bookmarks {
		bookmarks = append(bookmarks, b)
	}
	domain.CountBookmarks(out, bookmarks)
	domain.SortCategories(out)
	return out
}

// PutCategory adds or replaces a single category
func (idx *MemoryIndex) PutCategory(c *domain.Category) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.categories[c.ID] = c
}

// DeleteCategory removes a category and detaches its bookmarks.
// It returns the detached bookmarks so the caller can persist them,
// and false when the category does not exist.
func (idx *MemoryIndex) DeleteCategory(id string) ([]*domain.Bookmark, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.categories[id]; !ok {
		return nil, false
	}
	delete(idx.categories, id)

	var detached []*domain.Bookmark
	for bid, b := range idx.bookmarks {
		if b.CategoryID == nil || *b.CategoryID != id {
			continue
		}
		next := b.Clone()
		next.CategoryID = nil
		next.UpdatedAt = time.Now()
		idx.bookmarks[bid] = next
		detached = append(detached, next)
	}
	return detached, true
}

// CategoryCount returns the number of categories in the index
func (idx *MemoryIndex) CategoryCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.categories)
}
