// Package grammar implements the POS-tagging and word-order validator.
package grammar

import "github.com/nl-sre/semantico/lexeme"

// Validate returns the best grammatical validity score in [0,1] for
// sentence, searching the POS-assignment space (each word may carry
// several candidate tags) for the assignment maximizing
// matched-constraints / total-constraints.
func Validate(sentence lexeme.Sentence) float64 {
	score, _ := BestAssignment(sentence)
	return score
}

// BestAssignment returns the best score together with the winning tag
// sequence, chosen among ties by the lexicographically smallest sequence
// in POS declaration order.
func BestAssignment(sentence lexeme.Sentence) (float64, []lexeme.POS) {
	n := len(sentence.Words)
	if n == 0 {
		return 1, nil
	}

	bestScore := -1.0
	var bestSeq []lexeme.POS
	assign := make([]lexeme.POS, n)

	var search func(i int)
	search = func(i int) {
		if i == n {
			score := scoreAssignment(assign)
			if score > bestScore || (score == bestScore && lexLess(assign, bestSeq)) {
				bestScore = score
				bestSeq = append([]lexeme.POS(nil), assign...)
			}
			return
		}
		tags := sentence.Words[i].Tags
		if len(tags) == 0 {
			tags = []lexeme.POS{lexeme.POSUnknown}
		}
		for _, tag := range tags {
			assign[i] = tag
			search(i + 1)
		}
	}
	search(0)

	return bestScore, bestSeq
}

func scoreAssignment(assign []lexeme.POS) float64 {
	matched, total := 0, 0

	total++
	if sentenceOrderOK(assign) {
		matched++
	}

	for i, tag := range assign {
		switch tag {
		case lexeme.POSAdjective:
			total++
			if adjacentToNoun(assign, i) {
				matched++
			}
		case lexeme.POSArticle:
			total++
			if precedesNoun(assign, i) {
				matched++
			}
		}
	}

	if total == 0 {
		return 1
	}
	return float64(matched) / float64(total)
}

// sentenceOrderOK accepts SVO, OVS, VSO, SV, and VS by reducing the
// assignment to its Noun/Verb shape: SVO and OVS share the shape N-V-N
// since the two share exactly one noun/pronoun slot on either side of the
// verb, VSO is V-N-N, SV is N-V, and VS is V-N.
func sentenceOrderOK(assign []lexeme.POS) bool {
	shape := make([]byte, 0, len(assign))
	for _, tag := range assign {
		switch tag {
		case lexeme.POSVerb:
			shape = append(shape, 'V')
		case lexeme.POSNoun, lexeme.POSPronoun:
			shape = append(shape, 'N')
		}
	}
	switch string(shape) {
	case "", "N", "V", "NV", "VN", "NVN", "VNN":
		return true
	default:
		return false
	}
}

// adjacentToNoun allows an adjective to sit directly next to its noun, or
// separated from it by a single intervening article on either side ("azul
// la casa" and "la casa azul" alike).
func adjacentToNoun(assign []lexeme.POS, i int) bool {
	if i > 0 && assign[i-1] == lexeme.POSNoun {
		return true
	}
	if i > 1 && assign[i-1] == lexeme.POSArticle && assign[i-2] == lexeme.POSNoun {
		return true
	}
	if i+1 < len(assign) && assign[i+1] == lexeme.POSNoun {
		return true
	}
	if i+2 < len(assign) && assign[i+1] == lexeme.POSArticle && assign[i+2] == lexeme.POSNoun {
		return true
	}
	return false
}

// precedesNoun allows an article to be separated from its noun by at most
// one intervening adjective ("la casa azul" / "la azul casa" alike).
func precedesNoun(assign []lexeme.POS, i int) bool {
	for j := i + 1; j < len(assign) && j <= i+2; j++ {
		if assign[j] == lexeme.POSNoun {
			return true
		}
		if assign[j] != lexeme.POSAdjective {
			break
		}
	}
	return false
}

func lexLess(a, b []lexeme.POS) bool {
	if b == nil {
		return true
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
