package seedfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Result is the mapped content of a seed file.
type Result struct {
	Categories []*domain.Category
	Bookmarks  []*domain.Bookmark
	Skipped    []string // URLs rejected as invalid or duplicate
}

// Map converts the seed file into domain values stamped with now.
// IDs are derived from the content, so reloading the same file yields the same IDs.
func Map(config Config, now time.Time) (*Result, error) {
	res := &Result{}
	seen := make(map[string]bool)

	for _, entry := range config {
		var categoryID *string
		if name := strings.TrimSpace(entry.Name); name != "" {
			id := stableID("category:" + name)
			categoryID = &id
			res.Categories = append(res.Categories, &domain.Category{
				ID:        id,
				Name:      name,
				Color:     strings.TrimSpace(entry.Color),
				CreatedAt: now,
			})
		}

		for _, e := range entry.Bookmarks {
			rawURL := strings.TrimSpace(e.URL)
			if !isHTTPURL(rawURL) {
				res.Skipped = append(res.Skipped, rawURL)
				continue
			}

			key := domain.NormalizeURLForComparison(rawURL)
			if seen[key] {
				res.Skipped = append(res.Skipped, rawURL)
				continue
			}
			seen[key] = true

			b := domain.NewBookmark(stableID(key), rawURL, categoryID, now)
			b.Sources = []string{domain.SourceSeed}
			if title := strings.TrimSpace(e.Title); title != "" {
				b.Title = title
			}
			b.Description = strings.TrimSpace(e.Description)
			res.Bookmarks = append(res.Bookmarks, b)
		}
	}

	if len(res.Bookmarks) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in seed file")
	}
	return res, nil
}

// stableID hashes s with SHA-256 and keeps the first 16 hex characters.
func stableID(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])[:16]
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
