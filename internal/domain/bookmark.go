package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Bookmark represents a saved link.
// The ranking functions treat it as a read-only value.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// UUID for bookmarks created through the API, URL hash for seeded ones.
	ID string `json:"id"`

	// URL is the bookmarked address.
	// Example: https://news.ycombinator.com
	URL string `json:"url"`

	// ─────────────────────────────
	// Searchable description
	// (may be overwritten by metadata enrichment)
	// ─────────────────────────────

	// Title is never empty; it falls back to the domain before enrichment.
	Title string `json:"title"`

	// Domain is the comparable hostname of URL.
	// Example: news.ycombinator.com
	Domain string `json:"domain"`

	// Description is optional.
	Description string `json:"description,omitempty"`

	// IconURL points to the favicon of the page.
	IconURL string `json:"iconUrl,omitempty"`

	// ─────────────────────────────
	// Organization
	// ─────────────────────────────

	// CategoryID is nil for uncategorized bookmarks.
	CategoryID *string `json:"categoryId"`

	// Sources indicates where this bookmark came from.
	// Example: api, seed
	Sources []string `json:"sources,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// ─────────────────────────────
	// Liveness & cleanup
	// ─────────────────────────────

	// Disabled marks a bookmark as soft-deleted.
	// It may be garbage-collected later.
	Disabled bool `json:"disabled,omitempty"`
}

const (
	SourceAPI  = "api"
	SourceSeed = "seed"
)

// NewBookmark builds a bookmark for url before any metadata is known.
// Title and Domain both start as the comparable hostname.
func NewBookmark(id, url string, categoryID *string, now time.Time) *Bookmark {
	domain := ExtractComparableHostname(url)
	return &Bookmark{
		ID:         id,
		URL:        url,
		Title:      domain,
		Domain:     domain,
		CategoryID: categoryID,
		Sources:    []string{SourceAPI},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy, safe to mutate while readers hold the original.
func (b *Bookmark) Clone() *Bookmark {
	c := *b
	if b.CategoryID != nil {
		id := *b.CategoryID
		c.CategoryID = &id
	}
	c.Sources = append([]string(nil), b.Sources...)
	return &c
}

// HasSource reports whether the bookmark was observed from source.
func (b *Bookmark) HasSource(source string) bool {
	for _, s := range b.Sources {
		if s == source {
			return true
		}
	}
	return false
}

// InCategory reports whether the bookmark belongs to categoryID.
// A nil categoryID matches every bookmark.
func (b *Bookmark) InCategory(categoryID *string) bool {
	if categoryID == nil {
		return true
	}
	return b.CategoryID != nil && *b.CategoryID == *categoryID
}

// SortOrder controls listing order.
type SortOrder string

const (
	SortCreatedDesc SortOrder = "created-desc"
	SortCreatedAsc  SortOrder = "created-asc"
)

// ParseSortOrder returns the order for s, defaulting to newest first.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortCreatedAsc {
		return SortCreatedAsc
	}
	return SortCreatedDesc
}

// ListFilter selects which bookmarks a listing returns.
type ListFilter struct {
	CategoryID *string
	Sort       SortOrder
}

// FilterBookmarks drops disabled bookmarks and those outside the filter's
// category, then orders the rest by creation time with ID as tie-break.
// The input slice is not modified.
func FilterBookmarks(bookmarks []*Bookmark, filter ListFilter) []*Bookmark {
	out := make([]*Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b == nil || b.Disabled || !b.InCategory(filter.CategoryID) {
			continue
		}
		out = append(out, b)
	}

	asc := filter.Sort == SortCreatedAsc
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if asc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	return out
}

// Cursor marks the last bookmark of a page: "<createdAt RFC3339Nano>|<id>".
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

func (c Cursor) String() string {
	return c.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + c.ID
}

// ParseCursor decodes a cursor produced by Cursor.String.
func ParseCursor(s string) (Cursor, error) {
	ts, id, ok := strings.Cut(s, "|")
	if !ok || id == "" {
		return Cursor{}, fmt.Errorf("malformed cursor %q", s)
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor time: %w", err)
	}
	return Cursor{CreatedAt: t, ID: id}, nil
}

// after reports whether b sorts strictly after c in the given order.
func (c Cursor) after(b *Bookmark, order SortOrder) bool {
	if order == SortCreatedAsc {
		return b.CreatedAt.After(c.CreatedAt) || (b.CreatedAt.Equal(c.CreatedAt) && b.ID > c.ID)
	}
	return b.CreatedAt.Before(c.CreatedAt) || (b.CreatedAt.Equal(c.CreatedAt) && b.ID < c.ID)
}

// PageBookmarks returns up to limit bookmarks following cursor from a slice
// already ordered by FilterBookmarks. next is nil on the last page.
func PageBookmarks(sorted []*Bookmark, order SortOrder, cursor *Cursor, limit int) (page []*Bookmark, next *Cursor) {
	start := 0
	if cursor != nil {
		start = len(sorted)
		for i, b := range sorted {
			if cursor.after(b, order) {
				start = i
				break
			}
		}
	}

	rest := sorted[start:]
	if limit <= 0 || len(rest) <= limit {
		return rest, nil
	}

	page = rest[:limit]
	last := page[len(page)-1]
	return page, &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
}
