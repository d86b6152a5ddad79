package domain

import (
	"math"
	"strings"
)

const (
	// Upper bounds of the partial-match strategies. Only a verbatim
	// substring hit reaches 1.
	MaxSubsequenceScore  = 0.9
	MaxEditDistanceScore = 0.95

	// Gap penalty of a subsequence match never exceeds this share.
	MaxGapPenalty = 0.6
)

// ScoringWeights shapes partial-match scores.
type ScoringWeights struct {
	// Sanitized substring match: SubstringBase + min(SubstringBonus, ratio*SubstringBonus)
	SubstringBase  float64
	SubstringBonus float64

	// Subsequence match: completeness*Completeness + cohesion*Cohesion
	Completeness float64
	Cohesion     float64
}

// DefaultScoringWeights returns the tuned coefficients.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		SubstringBase:  0.85,
		SubstringBonus: 0.15,
		Completeness:   0.75,
		Cohesion:       0.25,
	}
}

// ScoreBookmark calculates the match score in [0, 1] for a bookmark against a query string
func ScoreBookmark(queryStr string, bookmark *Bookmark) float64 {
	if bookmark == nil {
		return 0.0
	}
	q := strings.ToLower(strings.TrimSpace(queryStr))
	return scoreBookmark(bookmark, q, Sanitize(q), DefaultScoringWeights())
}

// searchableFields returns title, domain, url and description in that order.
func searchableFields(b *Bookmark) []string {
	fields := []string{b.Title, b.Domain, b.URL}
	if b.Description != "" {
		fields = append(fields, b.Description)
	}
	return fields
}

// scoreBookmark expects q lower-cased and trimmed, sq = Sanitize(q).
func scoreBookmark(b *Bookmark, q, sq string, w ScoringWeights) float64 {
	var bestScore float64

	for _, field := range searchableFields(b) {
		if field == "" {
			continue
		}
		lowered := strings.ToLower(field)

		// Verbatim hit anywhere wins outright
		if strings.Contains(lowered, q) {
			return 1.0
		}

		var fieldScore float64
		if sq != "" {
			sf := Sanitize(lowered)
			if sf == "" {
				continue
			}
			fieldScore = scoreSanitized(sf, sq, w)
		} else {
			// Query is pure punctuation: compare raw forms
			fieldScore = subsequenceScore([]rune(lowered), []rune(q), w)
		}

		if fieldScore > bestScore {
			bestScore = fieldScore
		}
	}

	return math.Min(1.0, bestScore)
}

// scoreSanitized takes the best of substring, subsequence and edit-distance
// matching of sq against sf.
func scoreSanitized(sf, sq string, w ScoringWeights) float64 {
	var score float64

	if strings.Contains(sf, sq) {
		ratio := float64(len(sq)) / float64(max(len(sf), len(sq)))
		score = w.SubstringBase + math.Min(w.SubstringBonus, ratio*w.SubstringBonus)
	}

	if s := subsequenceScore([]rune(sf), []rune(sq), w); s > score {
		score = s
	}

	if s := editDistanceScore(sf, sq); s > score {
		score = s
	}

	return score
}

// subsequenceScore greedily matches pattern in order inside text and rewards
// complete, tightly packed matches. Never exceeds MaxSubsequenceScore.
func subsequenceScore(text, pattern []rune, w ScoringWeights) float64 {
	if len(pattern) == 0 {
		return 1.0
	}

	matched := 0
	lastMatch := -1
	gap := 0
	for i := 0; i < len(text) && matched < len(pattern); i++ {
		if text[i] != pattern[matched] {
			continue
		}
		if lastMatch != -1 {
			gap += i - lastMatch - 1
		}
		lastMatch = i
		matched++
	}

	if matched == 0 {
		return 0.0
	}

	completeness := float64(matched) / float64(len(pattern))
	gapPenalty := math.Min(float64(gap)/float64(max(len(text), 1)), MaxGapPenalty)
	cohesion := 1 - gapPenalty

	return math.Min(MaxSubsequenceScore, completeness*w.Completeness+cohesion*w.Cohesion)
}
