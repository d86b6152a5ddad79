package domain

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestScoreBookmark(t *testing.T) {
	tests := []struct {
		name     string
		queryStr string
		bookmark *Bookmark
		wantMin  float64
		wantMax  float64
	}{
		{
			name:     "exact title substring",
			queryStr: "hacker",
			bookmark: &Bookmark{Title: "Hacker News", URL: "https://news.ycombinator.com"},
			wantMin:  1.0,
			wantMax:  1.0,
		},
		{
			name:     "exact match is case insensitive and trimmed",
			queryStr: "  NEWS.ycombinator  ",
			bookmark: &Bookmark{Title: "HN", URL: "https://news.ycombinator.com"},
			wantMin:  1.0,
			wantMax:  1.0,
		},
		{
			name:     "exact description substring",
			queryStr: "orange site",
			bookmark: &Bookmark{Title: "HN", URL: "https://news.ycombinator.com", Description: "The orange site"},
			wantMin:  1.0,
			wantMax:  1.0,
		},
		{
			name:     "subsequence partial match",
			queryStr: "gthb",
			bookmark: &Bookmark{Title: "GitHub", URL: "https://github.com"},
			wantMin:  0.000001,
			wantMax:  0.999999,
		},
		{
			name:     "typo tolerated by edit distance",
			queryStr: "Kubernettes",
			bookmark: &Bookmark{Title: "Kubernetes", URL: "https://k8s.io"},
			wantMin:  DefaultRankThreshold,
			wantMax:  0.999999,
		},
		{
			name:     "no match",
			queryStr: "xyz123",
			bookmark: &Bookmark{Title: "Apple", URL: "https://apple.com"},
			wantMin:  0.0,
			wantMax:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreBookmark(tt.queryStr, tt.bookmark)

			if score < tt.wantMin || score > tt.wantMax {
				t.Errorf("Expected score in [%f, %f], got %f", tt.wantMin, tt.wantMax, score)
			}
		})
	}
}

func TestScoreBookmark_NilBookmark(t *testing.T) {
	if score := ScoreBookmark("anything", nil); score != 0 {
		t.Errorf("Expected 0 for nil bookmark, got %f", score)
	}
}

func TestScoreBookmark_SanitizedSubstring(t *testing.T) {
	bookmark := &Bookmark{Title: "The Hacker News Digest", URL: "https://example.org"}

	score := ScoreBookmark("hacker-news", bookmark)

	// "hackernews" inside "thehackernewsdigest"
	want := 0.85 + 0.15*10.0/19.0
	if !approxEqual(score, want) {
		t.Errorf("Expected %f, got %f", want, score)
	}
}

func TestScoreBookmark_SanitizedFullMatchReachesOne(t *testing.T) {
	bookmark := &Bookmark{Title: "Hacker News", URL: "https://example.org"}

	if score := ScoreBookmark("hacker_news", bookmark); !approxEqual(score, 1.0) {
		t.Errorf("Expected 1, got %f", score)
	}
}

func TestScoreBookmark_TypoScore(t *testing.T) {
	bookmark := &Bookmark{Title: "Kubernetes", URL: "https://k8s.io"}

	// one insertion against a 11 character pattern
	want := 1 - 1.0/12.0
	if score := ScoreBookmark("kubernettes", bookmark); !approxEqual(score, want) {
		t.Errorf("Expected %f, got %f", want, score)
	}
}

func TestScoreBookmark_EmptyFieldsSkipped(t *testing.T) {
	bookmark := &Bookmark{Title: "GitHub", Domain: "", URL: "", Description: ""}

	if score := ScoreBookmark("zzz", bookmark); score != 0 {
		t.Errorf("Expected 0, got %f", score)
	}
}

func TestScoreBookmark_PunctuationQuery(t *testing.T) {
	bookmark := &Bookmark{Title: "C++ reference", URL: "https://cppreference.com"}

	// "+-" has no sanitized form, only the raw subsequence path applies
	score := ScoreBookmark("+-", bookmark)
	if score <= 0 || score >= 1 {
		t.Errorf("Expected partial score, got %f", score)
	}

	// "++" is a verbatim substring of the title
	if score := ScoreBookmark("++", bookmark); score != 1 {
		t.Errorf("Expected 1, got %f", score)
	}
}

func TestScoreBookmark_Bounds(t *testing.T) {
	bookmarks := []*Bookmark{
		{Title: "GitHub", Domain: "github.com", URL: "https://github.com"},
		{Title: "Hacker News", Domain: "news.ycombinator.com", URL: "https://news.ycombinator.com", Description: "tech news"},
		{Title: "x", URL: "x"},
		{Title: "A very long title about distributed systems and consensus algorithms", URL: "https://example.com/a/b/c/d/e/f/g?h=i&j=k"},
	}
	queries := []string{"g", "gh", "git", "hub", "news", "xyz", "?!", "consensus algo", "distrbuted", "https", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}

	for _, b := range bookmarks {
		for _, q := range queries {
			score := ScoreBookmark(q, b)
			if score < 0 || score > 1 {
				t.Errorf("score(%q, %q) = %f out of [0, 1]", b.Title, q, score)
			}
		}
	}
}

func TestSubsequenceScore(t *testing.T) {
	w := DefaultScoringWeights()
	tests := []struct {
		name    string
		text    string
		pattern string
		want    float64
	}{
		{name: "empty pattern", text: "abc", pattern: "", want: 1.0},
		{name: "no character matched", text: "abc", pattern: "zz", want: 0.0},
		{name: "capped below exact", text: "github", pattern: "gthb", want: MaxSubsequenceScore},
		{name: "partial completeness", text: "abc", pattern: "az", want: 0.5*0.75 + 0.25},
		{name: "gap penalty capped", text: "abcdefghij", pattern: "aj", want: 0.75 + 0.4*0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subsequenceScore([]rune(tt.text), []rune(tt.pattern), w)
			if !approxEqual(got, tt.want) {
				t.Errorf("subsequenceScore(%q, %q) = %f, want %f", tt.text, tt.pattern, got, tt.want)
			}
		})
	}
}
