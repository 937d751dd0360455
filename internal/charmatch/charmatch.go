// Package charmatch implements the character-level similarity scorer.
package charmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Score returns the similarity of a and b in [0,1]: case-insensitive,
// accent-folded, and equal to 1 minus the normalized Damerau-Levenshtein
// edit distance (insertions, deletions, and substitutions at unit cost,
// transpositions counted as a single operation).
func Score(a, b string) float64 {
	na := normalize(a)
	nb := normalize(b)

	ra := []rune(na)
	rb := []rune(nb)

	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	dist := distance(ra, rb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1 - float64(dist)/float64(maxLen)
}

// normalize lowercases and strips combining marks after NFD decomposition,
// so accented Spanish vowels compare equal to their unaccented form.
func normalize(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// distance computes the optimal string alignment distance between a and b:
// classic Levenshtein plus adjacent-transposition as one operation.
func distance(a, b []rune) int {
	la, lb := len(a), len(b)
	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
	}
	for i := 0; i <= la; i++ {
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := min3(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if t := d[i-2][j-2] + 1; t < best {
					best = t
				}
			}
			d[i][j] = best
		}
	}
	return d[la][lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
