package domain

import (
	"testing"
)

func testBookmarks() []*Bookmark {
	return []*Bookmark{
		{ID: "1", Title: "Hacker News", URL: "https://news.ycombinator.com", Domain: "news.ycombinator.com"},
		{ID: "2", Title: "GitHub", URL: "https://github.com", Domain: "github.com"},
	}
}

func TestRankBookmarks_EmptyQueryIsIdentity(t *testing.T) {
	bookmarks := testBookmarks()

	for _, query := range []string{"", "   ", "\t\n"} {
		matches := RankBookmarks(bookmarks, query)

		if len(matches) != len(bookmarks) {
			t.Fatalf("query %q: expected %d matches, got %d", query, len(bookmarks), len(matches))
		}
		for i, m := range matches {
			if m.Bookmark != bookmarks[i] {
				t.Errorf("query %q: position %d holds %s, want %s", query, i, m.Bookmark.ID, bookmarks[i].ID)
			}
			if m.Score != 1 {
				t.Errorf("query %q: expected score 1, got %f", query, m.Score)
			}
		}
	}
}

func TestRankBookmarks_EmptyQueryIgnoresThreshold(t *testing.T) {
	matches := RankBookmarks(testBookmarks(), "", WithThreshold(2))

	if len(matches) != 2 {
		t.Errorf("Expected pass-through of 2 bookmarks, got %d", len(matches))
	}
}

func TestRankBookmarks_EndToEnd(t *testing.T) {
	matches := RankBookmarks(testBookmarks(), "hacker")

	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Bookmark.ID != "1" {
		t.Errorf("Expected bookmark 1, got %s", matches[0].Bookmark.ID)
	}
	if matches[0].Score != 1 {
		t.Errorf("Expected score 1, got %f", matches[0].Score)
	}
}

func TestRankBookmarks_ThresholdFiltering(t *testing.T) {
	bookmarks := testBookmarks()

	// GitHub only shares a stray "h" with "hacker"
	all := RankBookmarks(bookmarks, "hacker", WithThreshold(0.01))
	if len(all) != 2 {
		t.Fatalf("Expected 2 matches with a low threshold, got %d", len(all))
	}
	if all[0].Bookmark.ID != "1" || all[1].Bookmark.ID != "2" {
		t.Errorf("Expected order [1 2], got [%s %s]", all[0].Bookmark.ID, all[1].Bookmark.ID)
	}
	if all[1].Score >= DefaultRankThreshold {
		t.Errorf("Expected GitHub below the default threshold, got %f", all[1].Score)
	}

	for _, m := range RankBookmarks(bookmarks, "gthb") {
		if m.Score < DefaultRankThreshold {
			t.Errorf("Match %s scored %f below threshold", m.Bookmark.ID, m.Score)
		}
	}
}

func TestRankBookmarks_StableTieBreak(t *testing.T) {
	bookmarks := []*Bookmark{
		{ID: "b1", Title: "Go Blog", URL: "https://a.test", Domain: "a.test"},
		{ID: "b2", Title: "Golang Docs", URL: "https://b.test", Domain: "b.test"},
		{ID: "b3", Title: "Go Blog", URL: "https://c.test", Domain: "c.test"},
	}

	matches := RankBookmarks(bookmarks, "go blog")

	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}
	want := []string{"b1", "b3", "b2"}
	for i, id := range want {
		if matches[i].Bookmark.ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, matches[i].Bookmark.ID)
		}
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("Expected descending scores, got %f after %f", matches[i].Score, matches[i-1].Score)
		}
	}
}

func TestRankBookmarks_Scenarios(t *testing.T) {
	bookmarks := []*Bookmark{
		{ID: "k8s", Title: "Kubernetes", URL: "https://kubernetes.io", Domain: "kubernetes.io"},
		{ID: "gh", Title: "GitHub", URL: "https://github.com", Domain: "github.com"},
		{ID: "gl", Title: "GitLab", URL: "https://gitlab.com", Domain: "gitlab.com"},
		{ID: "apple", Title: "Apple", URL: "https://apple.com", Domain: "apple.com"},
		{ID: "tsr", Title: "TanStack Router", URL: "https://tanstack.com/router", Domain: "tanstack.com"},
	}

	tests := []struct {
		name        string
		query       string
		expectedTop string
		expectEmpty bool
	}{
		{name: "exact title", query: "GitLab", expectedTop: "gl"},
		{name: "typo", query: "kubernettes", expectedTop: "k8s"},
		{name: "subsequence", query: "gthb", expectedTop: "gh"},
		{name: "path match", query: "stack/router", expectedTop: "tsr"},
		{name: "nothing close", query: "xyz123", expectEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := RankBookmarks(bookmarks, tt.query)

			if tt.expectEmpty {
				if len(matches) != 0 {
					t.Errorf("Expected no match, got %d (top %s)", len(matches), matches[0].Bookmark.ID)
				}
				return
			}
			if len(matches) == 0 {
				t.Fatalf("Expected %s on top, got no match", tt.expectedTop)
			}
			if matches[0].Bookmark.ID != tt.expectedTop {
				t.Errorf("Expected %s on top, got %s (score %.3f)", tt.expectedTop, matches[0].Bookmark.ID, matches[0].Score)
			}
		})
	}
}

func TestRankBookmarks_HomelabScenarios(t *testing.T) {
	var bookmarks []*Bookmark
	for _, name := range []string{"adguard", "adguardha", "traefik", "jellyfin", "jellyseerr"} {
		host := name + ".domain.ext"
		bookmarks = append(bookmarks, &Bookmark{ID: name, Title: name, URL: "https://" + host, Domain: host})
	}

	tests := []struct {
		name        string
		query       string
		expectedTop string
	}{
		{name: "exact match beats longer name by order", query: "adguard", expectedTop: "adguard"},
		{name: "prefix shared by two", query: "jelly", expectedTop: "jellyfin"},
		{name: "abbreviation", query: "trfk", expectedTop: "traefik"},
		{name: "abbreviation picks the right sibling", query: "jlyser", expectedTop: "jellyseerr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := RankBookmarks(bookmarks, tt.query)
			if len(matches) == 0 {
				t.Fatalf("Expected %s on top, got no match", tt.expectedTop)
			}
			if matches[0].Bookmark.ID != tt.expectedTop {
				t.Errorf("Expected %s on top, got %s (score %.3f)", tt.expectedTop, matches[0].Bookmark.ID, matches[0].Score)
			}
		})
	}
}

func TestRankBookmarks_WithWeights(t *testing.T) {
	bookmarks := []*Bookmark{{ID: "gh", Title: "GitHub", URL: "https://github.com", Domain: "github.com"}}

	if len(RankBookmarks(bookmarks, "gthb")) != 1 {
		t.Fatal("Expected default weights to keep the subsequence match")
	}

	none := ScoringWeights{SubstringBase: 0.85, SubstringBonus: 0.15}
	if matches := RankBookmarks(bookmarks, "gthb", WithWeights(none)); len(matches) != 0 {
		t.Errorf("Expected no match without subsequence weights, got score %f", matches[0].Score)
	}
}

func TestRankBookmarks_SkipsNilEntries(t *testing.T) {
	bookmarks := []*Bookmark{nil, {ID: "gh", Title: "GitHub", URL: "https://github.com"}}

	matches := RankBookmarks(bookmarks, "github")
	if len(matches) != 1 || matches[0].Bookmark.ID != "gh" {
		t.Errorf("Expected only gh, got %d matches", len(matches))
	}
}

func TestFindBestBookmark(t *testing.T) {
	bookmarks := testBookmarks()

	if best := FindBestBookmark("github", bookmarks); best == nil || best.Bookmark.ID != "2" {
		t.Errorf("Expected bookmark 2, got %v", best)
	}
	if best := FindBestBookmark("", bookmarks); best != nil {
		t.Errorf("Expected nil for blank query, got %s", best.Bookmark.ID)
	}
	if best := FindBestBookmark("xyz123", bookmarks); best != nil {
		t.Errorf("Expected nil without match, got %s", best.Bookmark.ID)
	}
}
