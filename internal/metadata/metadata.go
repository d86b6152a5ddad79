// Package metadata fetches a page and extracts what a bookmark displays:
// title, description and icon.
package metadata

import (
	"net/url"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Metadata is the display information of a bookmarked page.
type Metadata struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IconURL     string    `json:"iconUrl,omitempty"`
	Domain      string    `json:"domain"`
	FetchedAt   time.Time `json:"fetchedAt"`

	// Fallback is true when the page could not be read and only
	// URL-derived values are present.
	Fallback bool `json:"fallback,omitempty"`
}

// FallbackIcon is the favicon service URL used when a page declares no icon.
func FallbackIcon(domain string) string {
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(domain) + "&sz=64"
}

// fallback builds metadata from the URL alone.
func fallback(rawURL string, now time.Time) *Metadata {
	d := domain.ExtractComparableHostname(rawURL)
	return &Metadata{
		URL:       rawURL,
		Title:     d,
		Domain:    d,
		IconURL:   FallbackIcon(d),
		FetchedAt: now,
		Fallback:  true,
	}
}

// Apply copies metadata onto b and reports whether anything changed.
// Without overwrite only placeholder values are replaced: a title equal
// to the domain, an empty description or icon.
func (m *Metadata) Apply(b *domain.Bookmark, overwrite bool) bool {
	changed := false
	set := func(dst *string, v string, placeholder bool) {
		if v != "" && *dst != v && (overwrite || placeholder) {
			*dst = v
			changed = true
		}
	}
	set(&b.Title, m.Title, b.Title == "" || b.Title == b.Domain)
	set(&b.Description, m.Description, b.Description == "")
	set(&b.IconURL, m.IconURL, b.IconURL == "")
	return changed
}
