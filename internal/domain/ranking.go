package domain

import (
	"sort"
	"strings"
)

const (
	// DefaultRankThreshold is the minimum score kept by RankBookmarks.
	DefaultRankThreshold = 0.45

	// StrongMatchThreshold is the score above which the top match is taken
	// to be the same bookmark as the query.
	StrongMatchThreshold = 0.8
)

// Match pairs a bookmark with its score against a query.
type Match struct {
	Bookmark *Bookmark `json:"bookmark"`
	Score    float64   `json:"score"`
}

type rankOptions struct {
	threshold float64
	weights   ScoringWeights
}

// RankOption customizes RankBookmarks.
type RankOption func(*rankOptions)

// WithThreshold overrides DefaultRankThreshold.
func WithThreshold(threshold float64) RankOption {
	return func(o *rankOptions) { o.threshold = threshold }
}

// WithWeights overrides DefaultScoringWeights.
func WithWeights(weights ScoringWeights) RankOption {
	return func(o *rankOptions) { o.weights = weights }
}

// RankBookmarks scores every bookmark against query and returns those at or
// above the threshold, best first. Equal scores keep their input order.
// A blank query returns every bookmark with score 1, in input order.
func RankBookmarks(bookmarks []*Bookmark, query string, opts ...RankOption) []*Match {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		matches := make([]*Match, len(bookmarks))
		for i, bookmark := range bookmarks {
			matches[i] = &Match{Bookmark: bookmark, Score: 1.0}
		}
		return matches
	}

	o := rankOptions{
		threshold: DefaultRankThreshold,
		weights:   DefaultScoringWeights(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	q := strings.ToLower(trimmed)
	sq := Sanitize(q)

	type indexed struct {
		match *Match
		index int
	}
	candidates := make([]indexed, 0, len(bookmarks))
	for i, bookmark := range bookmarks {
		if bookmark == nil {
			continue
		}
		score := scoreBookmark(bookmark, q, sq, o.weights)
		if score < o.threshold {
			continue
		}
		candidates = append(candidates, indexed{
			match: &Match{Bookmark: bookmark, Score: score},
			index: i,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.match.Score != b.match.Score {
			return a.match.Score > b.match.Score
		}
		return a.index < b.index
	})

	matches := make([]*Match, len(candidates))
	for i, c := range candidates {
		matches[i] = c.match
	}
	return matches
}

// FindBestBookmark returns the top-ranked bookmark for a query, or nil
func FindBestBookmark(queryStr string, bookmarks []*Bookmark) *Match {
	if strings.TrimSpace(queryStr) == "" {
		return nil
	}
	matches := RankBookmarks(bookmarks, queryStr)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
