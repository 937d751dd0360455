package engine

import (
	"strings"
	"unicode"

	"github.com/nl-sre/semantico/lexeme"
)

// Correction is one applied replacement inside a ProcessedSentence.
type Correction struct {
	Position   int
	Original   string
	Corrected  string
	Confidence float64
	Decision   Decision
}

// ProcessedSentence is the result of the whole-sentence convenience
// wrapper: it scans every token, disambiguates each one absent from the
// lexicon, and applies corrections that clear MinConfidence.
type ProcessedSentence struct {
	Original    string
	Corrected   string
	Confidence  float64
	Corrections []Correction
}

// ProcessSentence tokenizes text, disambiguates every token missing from
// the lexicon (and not punctuation), and applies corrections whose
// confidence clears minConfidence. It is a documented caller of
// Disambiguate, not a change to the per-target contract.
func (d *Disambiguator) ProcessSentence(text string, weights Weights, minConfidence float64) (ProcessedSentence, error) {
	tokens := Tokenize(text)
	sentence := d.buildSentence(tokens)

	var corrections []Correction
	var confidenceSum float64

	for i, tok := range sentence.Words {
		if isPunctuation(tok.Surface) {
			continue
		}
		if _, known := d.lexicon[strings.ToLower(tok.Surface)]; known {
			continue
		}

		decision, err := d.Disambiguate(sentence, i, weights)
		if err != nil {
			// NoCandidates for this anomaly: leave it uncorrected.
			continue
		}
		if decision.Confidence < minConfidence {
			continue
		}

		sentence = sentence.WithReplacement(i, decision.Surface)
		corrections = append(corrections, Correction{
			Position:   i,
			Original:   tok.Surface,
			Corrected:  decision.Surface,
			Confidence: decision.Confidence,
			Decision:   decision,
		})
		confidenceSum += decision.Confidence
	}

	overall := 1.0
	if len(corrections) > 0 {
		overall = confidenceSum / float64(len(corrections))
	}

	return ProcessedSentence{
		Original:    strings.Join(tokens, " "),
		Corrected:   sentence.Text(),
		Confidence:  overall,
		Corrections: corrections,
	}, nil
}

func (d *Disambiguator) buildSentence(tokens []string) lexeme.Sentence {
	words := make([]lexeme.Word, len(tokens))
	for i, tok := range tokens {
		if w, ok := d.lexicon[strings.ToLower(tok)]; ok {
			w.Surface = tok
			words[i] = w
			continue
		}
		words[i] = lexeme.Word{Surface: tok}
	}
	return lexeme.Sentence{Words: words}
}

// Tokenize splits text on whitespace, treating letters (including
// accented Spanish vowels and ñ), digits, apostrophes, and hyphens as word
// characters, and emitting every other non-space rune as its own
// punctuation token.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case isWordRune(r):
			current.WriteRune(r)
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-'
}

func isPunctuation(tok string) bool {
	r := []rune(tok)
	return len(r) == 1 && !isWordRune(r[0])
}
