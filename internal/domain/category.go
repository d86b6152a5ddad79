package domain

import (
	"sort"
	"time"
)

// Category groups bookmarks under a user-chosen name.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// BookmarkCount is derived at read time, never stored.
	BookmarkCount int `json:"bookmarkCount"`
}

// CountBookmarks fills BookmarkCount for each category from the active bookmarks.
func CountBookmarks(categories []*Category, bookmarks []*Bookmark) {
	counts := make(map[string]int, len(categories))
	for _, b := range bookmarks {
		if b.Disabled || b.CategoryID == nil {
			continue
		}
		counts[*b.CategoryID]++
	}
	for _, c := range categories {
		c.BookmarkCount = counts[c.ID]
	}
}

// SortCategories orders categories by name, then ID.
func SortCategories(categories []*Category) {
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
}
