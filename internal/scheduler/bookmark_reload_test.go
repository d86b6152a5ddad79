package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

const seedBoth = `---
- name: Development
  color: "#3b82f6"
  bookmarks:
    - title: Go
      url: https://go.dev
    - url: https://github.com
`

const seedGoOnly = `---
- name: Development
  bookmarks:
    - title: Go
      url: https://go.dev
`

const seedGitHubOnly = `---
- name: Development
  bookmarks:
    - url: https://github.com
`

func writeSeedFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
}

func findByURL(t *testing.T, idx *index.MemoryIndex, url string) *domain.Bookmark {
	t.Helper()
	for _, b := range idx.GetAllBookmarks() {
		if b.URL == url {
			return b
		}
	}
	t.Fatalf("bookmark %s not found in index", url)
	return nil
}

func newTestReloader(t *testing.T, content string) (*BookmarkReloader, string, *index.MemoryIndex, *memStore, *recordingEnqueuer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	writeSeedFile(t, path, content)

	idx := index.NewMemoryIndex()
	store := newMemStore()
	enq := &recordingEnqueuer{}
	br := NewBookmarkReloader(path, store, idx, enq, logger.Nop(), time.Hour, nil)
	return br, path, idx, store, enq
}

func TestBookmarkReloader_InitialLoad(t *testing.T) {
	br, _, idx, store, enq := newTestReloader(t, seedBoth)

	if err := br.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if idx.BookmarkCount() != 2 {
		t.Fatalf("Expected 2 bookmarks, got %d", idx.BookmarkCount())
	}
	if idx.CategoryCount() != 1 {
		t.Fatalf("Expected 1 category, got %d", idx.CategoryCount())
	}
	if len(store.bookmarks) != 2 || len(store.categories) != 1 {
		t.Errorf("store not written through: %d bookmarks, %d categories", len(store.bookmarks), len(store.categories))
	}
	if len(enq.jobs) != 2 {
		t.Errorf("Expected 2 enrich jobs, got %d", len(enq.jobs))
	}
	if idx.GetLastBookmarkReload().IsZero() {
		t.Error("reload timestamp not recorded")
	}

	goDev := findByURL(t, idx, "https://go.dev")
	if goDev.Title != "Go" {
		t.Errorf("Title = %q, want Go", goDev.Title)
	}
	if goDev.CategoryID == nil {
		t.Fatal("seeded bookmark has no category")
	}
	if c, ok := idx.GetCategory(*goDev.CategoryID); !ok || c.Name != "Development" {
		t.Errorf("category = %+v, want Development", c)
	}

	gh := findByURL(t, idx, "https://github.com")
	if gh.Title != "github.com" {
		t.Errorf("untitled entry should fall back to domain, got %q", gh.Title)
	}
}

func TestBookmarkReloader_ReloadIsIdempotent(t *testing.T) {
	br, _, idx, _, enq := newTestReloader(t, seedBoth)
	ctx := context.Background()

	if err := br.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	before := findByURL(t, idx, "https://go.dev")

	if err := br.Reload(ctx); err != nil {
		t.Fatalf("second Reload failed: %v", err)
	}
	after := findByURL(t, idx, "https://go.dev")

	if idx.BookmarkCount() != 2 {
		t.Errorf("Expected 2 bookmarks, got %d", idx.BookmarkCount())
	}
	if before.ID != after.ID {
		t.Errorf("ID changed across reloads: %s -> %s", before.ID, after.ID)
	}
	if len(enq.jobs) != 2 {
		t.Errorf("known bookmarks must not be enqueued again, got %d jobs", len(enq.jobs))
	}
}

func TestBookmarkReloader_DisablesRemovedSeedBookmarks(t *testing.T) {
	br, path, idx, store, _ := newTestReloader(t, seedBoth)
	ctx := context.Background()

	if err := br.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	writeSeedFile(t, path, seedGitHubOnly)
	if err := br.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	goDev := findByURL(t, idx, "https://go.dev")
	if !goDev.Disabled {
		t.Error("bookmark removed from the seed file should be disabled")
	}
	if persisted, _ := store.bookmark(goDev.ID); persisted == nil || !persisted.Disabled {
		t.Error("disabled state not written through to the store")
	}

	writeSeedFile(t, path, seedBoth)
	if err := br.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if findByURL(t, idx, "https://go.dev").Disabled {
		t.Error("bookmark back in the seed file should be enabled again")
	}
}

func TestBookmarkReloader_KeepsBookmarksSavedThroughAPI(t *testing.T) {
	br, path, idx, _, _ := newTestReloader(t, seedBoth)
	ctx := context.Background()

	if err := br.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	gh := findByURL(t, idx, "https://github.com")
	idx.UpdateBookmark(gh.ID, func(b *domain.Bookmark) {
		b.Sources = append(b.Sources, domain.SourceAPI)
	})

	writeSeedFile(t, path, seedGoOnly)
	if err := br.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	gh = findByURL(t, idx, "https://github.com")
	if gh.Disabled {
		t.Error("bookmark also saved through the API must stay enabled")
	}
	if gh.HasSource(domain.SourceSeed) || !gh.HasSource(domain.SourceAPI) {
		t.Errorf("Sources = %v, want [api]", gh.Sources)
	}
}

func TestBookmarkReloader_MissingFile(t *testing.T) {
	idx := index.NewMemoryIndex()
	br := NewBookmarkReloader(filepath.Join(t.TempDir(), "missing.yaml"), nil, idx, nil, logger.Nop(), time.Hour, nil)

	if err := br.Reload(context.Background()); err == nil {
		t.Error("expected an error for a missing seed file")
	}
	if err := br.Start(context.Background()); err == nil {
		t.Error("Start should fail when the initial reload fails")
	}
}
