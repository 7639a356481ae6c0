package search

import "strings"

// Fuzzy matches below this similarity are rejected entirely so near-random
// matches never surface.
const fuzzyFloor = 0.6

// Similarity computes a 0-1 similarity between two free-text strings using
// exact, containment, word-overlap, and edit-distance heuristics, in that
// priority order. The first matching rule wins; cheap high-confidence checks
// short-circuit before the O(n*m) edit-distance computation. Scoring is
// asymmetric: containment of target inside source scores higher than the
// reverse.
func Similarity(source, target string) float64 {
	if source == "" || target == "" {
		return 0
	}

	src := Normalize(source)
	tgt := Normalize(target)
	if src == "" || tgt == "" {
		return 0
	}

	// Exact match
	if src == tgt {
		return 1
	}

	// Containment
	if strings.Contains(src, tgt) {
		return 0.9
	}
	if strings.Contains(tgt, src) {
		return 0.8
	}

	// Word overlap
	srcWords := strings.Split(src, " ")
	tgtWords := strings.Split(tgt, " ")
	matched := 0
	for _, w := range srcWords {
		for _, tw := range tgtWords {
			if tw == w || strings.Contains(tw, w) || strings.Contains(w, tw) {
				matched++
				break
			}
		}
	}
	if matched > 0 {
		return 0.7 * float64(matched) / float64(max(len(srcWords), len(tgtWords)))
	}

	// Edit distance, normalized by the longer string
	maxLen := max(len([]rune(src)), len([]rune(tgt)))
	distance := levenshteinDistance(src, tgt)
	similarity := 1 - float64(distance)/float64(maxLen)
	if similarity > fuzzyFloor {
		return similarity * 0.6
	}
	return 0
}
