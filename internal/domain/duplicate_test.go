package domain

import "testing"

func TestFindDuplicate(t *testing.T) {
	bookmarks := []*Bookmark{
		{ID: "hn", Title: "Hacker News", URL: "https://news.ycombinator.com/", Domain: "news.ycombinator.com"},
		{ID: "gh", Title: "GitHub", URL: "https://www.github.com", Domain: "github.com"},
		{ID: "docs", Title: "Go Docs", URL: "https://go.dev/doc/?tab=1", Domain: "go.dev"},
	}

	tests := []struct {
		name      string
		url       string
		wantFound bool
		wantID    string
		wantKind  MatchKind
	}{
		{name: "same url other scheme", url: "http://news.ycombinator.com", wantFound: true, wantID: "hn", wantKind: MatchKindURL},
		{name: "same url with query", url: "https://go.dev/doc?tab=1", wantFound: true, wantID: "docs", wantKind: MatchKindURL},
		{name: "same host other path", url: "https://github.com/golang/go", wantFound: true, wantID: "gh", wantKind: MatchKindHostname},
		{name: "typo in host", url: "https://githb.com", wantFound: true, wantID: "gh", wantKind: MatchKindFuzzy},
		{name: "new site", url: "https://example.org/new", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, found := FindDuplicate(bookmarks, tt.url)

			if found != tt.wantFound {
				t.Fatalf("FindDuplicate(%q) found = %v, want %v", tt.url, found, tt.wantFound)
			}
			if !found {
				return
			}
			if match.Bookmark.ID != tt.wantID {
				t.Errorf("Expected bookmark %s, got %s", tt.wantID, match.Bookmark.ID)
			}
			if match.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, match.Kind)
			}
			if match.Score < StrongMatchThreshold {
				t.Errorf("Expected a strong score, got %f", match.Score)
			}
		})
	}
}

func TestFindDuplicate_Empty(t *testing.T) {
	if _, found := FindDuplicate(nil, "https://example.org"); found {
		t.Error("Expected no duplicate in an empty collection")
	}
}

func TestFindDuplicateAbove_Threshold(t *testing.T) {
	bookmarks := []*Bookmark{
		{ID: "gh", Title: "GitHub", URL: "https://www.github.com", Domain: "github.com"},
	}

	if _, found := FindDuplicateAbove(bookmarks, "https://githb.com", 0.95); found {
		t.Error("a 0.9 fuzzy match should not pass a 0.95 threshold")
	}
	if _, found := FindDuplicateAbove(bookmarks, "https://githb.com", 0.9); !found {
		t.Error("a 0.9 fuzzy match should pass a 0.9 threshold")
	}
	if m, found := FindDuplicateAbove(bookmarks, "https://github.com/x", 1.1); !found || m.Kind != MatchKindHostname {
		t.Error("exact rules must not depend on the fuzzy threshold")
	}
}
