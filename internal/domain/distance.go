package domain

import (
	"math"
	"slices"
	"sort"
)

const (
	// maxEditPatternLen bounds the pattern length considered for edit-distance scoring.
	maxEditPatternLen = 64

	// extraWindowStarts is added to the pattern length to cap candidate windows.
	extraWindowStarts = 6
)

// editDistanceScore scores how closely pattern matches some window of text,
// tolerating a number of typos that grows with the pattern length.
func editDistanceScore(text, pattern string) float64 {
	n := len(pattern)
	if n == 0 || n > maxEditPatternLen {
		return 0.0
	}

	maxDistance := maxDistanceFor(n)
	if maxDistance == 0 {
		return 0.0
	}

	distance := bestWindowDistance(text, pattern, maxDistance)
	if distance > maxDistance {
		return 0.0
	}

	base := 1 - float64(distance)/float64(n+1)
	if base <= 0 {
		return 0.0
	}
	return math.Min(MaxEditDistanceScore, base)
}

// maxDistanceFor returns the number of edits tolerated for a pattern of length n.
func maxDistanceFor(n int) int {
	switch {
	case n <= 2:
		return 0
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

// bestWindowDistance returns the lowest bounded distance between pattern and
// a window of text, or maxDistance+1 when no window is close enough.
func bestWindowDistance(text, pattern string, maxDistance int) int {
	if len(pattern) == 0 {
		return 0
	}
	if len(text) == 0 {
		return len(pattern)
	}

	window := len(pattern) + maxDistance
	best := maxDistance + 1

	for _, start := range windowStarts(text, pattern) {
		end := min(len(text), start+window)
		if d := boundedLevenshtein(text[start:end], pattern, maxDistance); d < best {
			best = d
			if best == 0 {
				break
			}
		}
	}

	return best
}

// windowStarts picks a bounded set of offsets worth comparing: both ends,
// offsets where the first pattern byte occurs, and evenly spaced offsets.
// The result is sorted and free of duplicates.
func windowStarts(text, pattern string) []int {
	lastStart := max(len(text)-len(pattern), 0)
	limit := len(pattern) + extraWindowStarts

	starts := make([]int, 0, limit+2)
	register := func(start int) {
		start = max(0, min(start, lastStart))
		if !slices.Contains(starts, start) {
			starts = append(starts, start)
		}
	}

	register(0)
	register(lastStart)

	first := pattern[0]
	for i := 0; i <= lastStart && len(starts) < limit; i++ {
		if text[i] == first {
			register(i)
		}
	}

	step := max(1, len(pattern)/2)
	for i := step; i < lastStart && len(starts) < limit; i += step {
		register(i)
	}

	sort.Ints(starts)
	return starts
}

// boundedLevenshtein computes the edit distance between text and pattern
// restricted to the diagonal band of width 2*maxDistance+1. Any result above
// maxDistance only means "too far"; the exact value is not meaningful.
func boundedLevenshtein(text, pattern string, maxDistance int) int {
	tooFar := maxDistance + 1
	tl, pl := len(text), len(pattern)
	if abs(tl-pl) > maxDistance {
		return tooFar
	}

	prev := make([]int, pl+1)
	curr := make([]int, pl+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= tl; i++ {
		from := max(1, i-maxDistance)
		to := min(pl, i+maxDistance)

		curr[0] = i
		rowMin := curr[0]
		for j := 1; j < from; j++ {
			curr[j] = tooFar
		}
		for j := from; j <= to; j++ {
			cost := 1
			if text[i-1] == pattern[j-1] {
				cost = 0
			}
			v := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			curr[j] = v
			if v < rowMin {
				rowMin = v
			}
		}
		for j := to + 1; j <= pl; j++ {
			curr[j] = tooFar
		}

		if rowMin > maxDistance {
			return tooFar
		}
		prev, curr = curr, prev
	}

	return prev[pl]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
