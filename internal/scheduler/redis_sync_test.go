package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

func TestRedisSyncer_Sync(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	catID := "dev"
	_ = store.SaveCategory(ctx, &domain.Category{ID: catID, Name: "Development"})
	_ = store.SaveBookmarksMany(ctx, []*domain.Bookmark{
		domain.NewBookmark("a", "https://go.dev", &catID, time.Now()),
		domain.NewBookmark("b", "https://github.com", nil, time.Now()),
	})

	idx := index.NewMemoryIndex()
	idx.PutBookmark(&domain.Bookmark{ID: "stale"})

	if err := NewRedisSyncer(store, idx, logger.Nop()).Sync(ctx); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if idx.BookmarkCount() != 2 {
		t.Errorf("Expected 2 bookmarks, got %d", idx.BookmarkCount())
	}
	if _, ok := idx.GetBookmark("stale"); ok {
		t.Error("sync should replace the index content")
	}
	cats := idx.GetAllCategories()
	if len(cats) != 1 || cats[0].BookmarkCount != 1 {
		t.Errorf("categories = %+v, want one with 1 bookmark", cats)
	}
}
