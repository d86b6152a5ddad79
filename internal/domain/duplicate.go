package domain

// MatchKind tells which rule identified a duplicate.
type MatchKind string

const (
	MatchKindURL      MatchKind = "url"
	MatchKindHostname MatchKind = "hostname"
	MatchKindFuzzy    MatchKind = "fuzzy"
)

// DuplicateMatch is an existing bookmark that a submitted URL most likely refers to.
type DuplicateMatch struct {
	Bookmark *Bookmark `json:"bookmark"`
	Kind     MatchKind `json:"kind"`
	Score    float64   `json:"score"`
}

// FindDuplicate looks for an existing bookmark equivalent to rawURL.
// Rules are tried in order: same comparison key, same hostname, then a
// ranked match scoring at least StrongMatchThreshold.
func FindDuplicate(bookmarks []*Bookmark, rawURL string) (*DuplicateMatch, bool) {
	return FindDuplicateAbove(bookmarks, rawURL, StrongMatchThreshold)
}

// FindDuplicateAbove is FindDuplicate with a custom fuzzy threshold.
func FindDuplicateAbove(bookmarks []*Bookmark, rawURL string, strong float64) (*DuplicateMatch, bool) {
	key := NormalizeURLForComparison(rawURL)
	for _, b := range bookmarks {
		if b != nil && NormalizeURLForComparison(b.URL) == key {
			return &DuplicateMatch{Bookmark: b, Kind: MatchKindURL, Score: 1.0}, true
		}
	}

	host := ExtractComparableHostname(rawURL)
	for _, b := range bookmarks {
		if host != "" && b != nil && ExtractComparableHostname(b.URL) == host {
			return &DuplicateMatch{Bookmark: b, Kind: MatchKindHostname, Score: 1.0}, true
		}
	}

	if top := FindBestBookmark(rawURL, bookmarks); top != nil && top.Score >= strong {
		return &DuplicateMatch{Bookmark: top.Bookmark, Kind: MatchKindFuzzy, Score: top.Score}, true
	}

	return nil, false
}
