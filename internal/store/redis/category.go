package redis

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// SaveCategory stores a category. BookmarkCount is derived and not meaningful once stored.
func (s *Store) SaveCategory(ctx context.Context, category *domain.Category) error {
	pipe := s.client.Pipeline()
	if err := s.putJSON(ctx, pipe, CategoryKey(category.ID), KeyAllCategories, category.ID, category); err != nil {
		return err
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// GetAllCategories retrieves all categories
func (s *Store) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	return loadAll[domain.Category](ctx, s.client, KeyAllCategories, CategoryKey)
}

// DeleteCategory removes a category; bookmarks referencing it are the caller's concern
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.remove(ctx, CategoryKey(id), KeyAllCategories, id); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}
