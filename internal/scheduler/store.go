package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Store is the persistence the background jobs write through to.
// *redisstore.Store implements it; a nil Store keeps jobs memory-only.
type Store interface {
	SaveBookmark(ctx context.Context, bookmark *domain.Bookmark) error
	SaveBookmarksMany(ctx context.Context, bookmarks []*domain.Bookmark) error
	DeleteBookmarksMany(ctx context.Context, ids []string) error
	GetAllBookmarks(ctx context.Context) ([]*domain.Bookmark, error)
	SaveCategory(ctx context.Context, category *domain.Category) error
	GetAllCategories(ctx context.Context) ([]*domain.Category, error)
}
