// Package engine is the public library entry point: it exposes
// Disambiguator, the pure disambiguate operation, and the Decision/Weights
// types described by the external interface.
package engine

import (
	"errors"
	"math"
	"sort"

	"github.com/nl-sre/semantico/internal/charmatch"
	"github.com/nl-sre/semantico/internal/dispatch"
	"github.com/nl-sre/semantico/internal/semantics"
	"github.com/nl-sre/semantico/internal/sharedcontext"
	"github.com/nl-sre/semantico/lexeme"
	"github.com/nl-sre/semantico/lexicon"
)

// User-visible errors. ConstraintViolation and UnifyError are internal to
// the shared-context and unification layers and never reach this boundary.
var (
	ErrInvalidWeights   = errors.New("engine: weights must be in [0,1] and sum to 1")
	ErrTargetOutOfRange = errors.New("engine: target index out of range")
	ErrNoCandidates     = errors.New("engine: no candidates generated for target")
)

// Weights are the blending coefficients (α, β, γ) for char, grammar, and
// context sub-scores. They must sum to 1 within 1e-9 and each lie in [0,1].
type Weights struct {
	Char, Grammar, Context float64
}

// DefaultWeights returns the (0.30, 0.30, 0.40) default.
func DefaultWeights() Weights {
	return Weights{Char: 0.30, Grammar: 0.30, Context: 0.40}
}

func (w Weights) Validate() error {
	const eps = 1e-9
	if w.Char < 0 || w.Char > 1 || w.Grammar < 0 || w.Grammar > 1 || w.Context < 0 || w.Context > 1 {
		return ErrInvalidWeights
	}
	if math.Abs(w.Char+w.Grammar+w.Context-1) > eps {
		return ErrInvalidWeights
	}
	return nil
}

// Breakdown carries the three sub-scores behind a Decision's confidence.
type Breakdown struct {
	Char, Grammar, Context float64
}

// RationaleEntry is one entry of a Decision's ordered rationale.
type RationaleEntry = dispatch.RationaleEntry

// Decision is the result of one disambiguate call.
type Decision struct {
	Original   string
	Corrected  string
	Surface    string
	Confidence float64
	Breakdown  Breakdown
	Rationale  []RationaleEntry
}

// Config bounds candidate generation. Documented, not guessed: k=3, cap=64.
type Config struct {
	MaxEditDistance int
	MaxCandidates   int
}

func DefaultConfig() Config {
	return Config{MaxEditDistance: 3, MaxCandidates: 64}
}

// Disambiguator is the orchestrator: it generates candidates, queries the
// three base scorers through the message dispatcher, and blends the
// results. The lexicon and semantic database are immutable after
// construction and safely shared across concurrent calls, provided each
// call uses its own SharedContext, which Disambiguate always creates fresh.
type Disambiguator struct {
	lexicon  map[string]lexeme.Word
	semantic *semantics.DB
	config   Config
}

func New(words map[string]lexeme.Word, semantic *semantics.DB, config Config) *Disambiguator {
	return &Disambiguator{lexicon: words, semantic: semantic, config: config}
}

// NewDefault builds a Disambiguator from the embedded default lexicon and
// semantic database, usable with zero external files.
func NewDefault() *Disambiguator {
	return New(lexicon.DefaultLexicon(), lexicon.DefaultSemanticDB(), DefaultConfig())
}

type scoredCandidate struct {
	surface                string
	char, grammar, context float64
	blended                float64
	rationale              []RationaleEntry
}

// Disambiguate is the library entry point described in the external
// interface: disambiguate(sentence, target_index, weights) -> Decision.
func (d *Disambiguator) Disambiguate(sentence lexeme.Sentence, target int, weights Weights) (Decision, error) {
	if target < 0 || target >= len(sentence.Words) {
		return Decision{}, ErrTargetOutOfRange
	}
	if err := weights.Validate(); err != nil {
		return Decision{}, err
	}

	targetWord := sentence.Words[target].Surface
	candidates := d.generateCandidates(sentence, targetWord)
	if len(candidates) == 0 {
		return Decision{}, ErrNoCandidates
	}

	ctxTokens := contentTokens(sentence, target)

	results := make([]scoredCandidate, 0, len(candidates))
	for _, surface := range candidates {
		sctx := sharedcontext.New()
		obj := &candidateObject{
			surface:     surface,
			surfaceTags: d.lexicon[surface].Tags,
			targetWord:  targetWord,
			sentence:    sentence,
			position:    target,
			ctxTokens:   ctxTokens,
			semantic:    d.semantic,
			sctx:        sctx,
		}

		err := sctx.WithCandidate(func() error {
			if err := obj.bindSelf(); err != nil {
				return err
			}
			dispatch.Send(obj, dispatch.SelectorChar)
			dispatch.Send(obj, dispatch.SelectorGrammar)
			dispatch.Send(obj, dispatch.SelectorContext)
			return nil
		})
		if err != nil {
			// ConstraintViolation: candidate rejected, never surfaces.
			continue
		}

		blended := weights.Char*obj.charScore + weights.Grammar*obj.grammarScore + weights.Context*obj.contextScore
		results = append(results, scoredCandidate{
			surface:   surface,
			char:      obj.charScore,
			grammar:   obj.grammarScore,
			context:   obj.contextScore,
			blended:   blended,
			rationale: dispatch.SendExplain(obj),
		})
	}

	if len(results) == 0 {
		return Decision{}, ErrNoCandidates
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.blended != b.blended {
			return a.blended > b.blended
		}
		if a.context != b.context {
			return a.context > b.context
		}
		if a.grammar != b.grammar {
			return a.grammar > b.grammar
		}
		if a.char != b.char {
			return a.char > b.char
		}
		return a.surface < b.surface
	})

	best := results[0]
	corrected := sentence.WithReplacement(target, best.surface)

	return Decision{
		Original:   sentence.Text(),
		Corrected:  corrected.Text(),
		Surface:    best.surface,
		Confidence: best.blended,
		Breakdown:  Breakdown{Char: best.char, Grammar: best.grammar, Context: best.context},
		Rationale:  best.rationale,
	}, nil
}

// generateCandidates unions lexicon entries within MaxEditDistance of
// target with entries whose semantic tags intersect the sentence's tag
// bag, capped at MaxCandidates and returned in a deterministic order.
func (d *Disambiguator) generateCandidates(sentence lexeme.Sentence, target string) []string {
	tagBag := sentenceTagBag(sentence, d.semantic)

	seen := make(map[string]struct{})
	var out []string
	add := func(surface string) {
		if _, ok := seen[surface]; ok {
			return
		}
		seen[surface] = struct{}{}
		out = append(out, surface)
	}

	surfaces := make([]string, 0, len(d.lexicon))
	for s := range d.lexicon {
		surfaces = append(surfaces, s)
	}
	sort.Strings(surfaces)

	for _, surface := range surfaces {
		if editDistanceWithinK(target, surface, d.config.MaxEditDistance) {
			add(surface)
			continue
		}
		if len(tagBag) > 0 && tagsIntersect(d.semantic.TagsOf(surface), tagBag) {
			add(surface)
		}
	}

	if len(out) > d.config.MaxCandidates {
		out = out[:d.config.MaxCandidates]
	}
	return out
}

// editDistanceWithinK approximates "edit-distance <= k" from the
// CharMatcher score, since the score is exactly 1 - distance/maxLen for
// non-empty tokens: distance <= k iff score >= 1 - k/maxLen.
func editDistanceWithinK(a, b string, k int) bool {
	if a == "" || b == "" {
		return false
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	threshold := 1 - float64(k)/float64(maxLen)
	return charmatch.Score(a, b) >= threshold
}

func tagsIntersect(a, b map[string]struct{}) bool {
	for t := range a {
		if _, ok := b[t]; ok {
			return true
		}
	}
	return false
}

func sentenceTagBag(sentence lexeme.Sentence, db *semantics.DB) map[string]struct{} {
	bag := make(map[string]struct{})
	for _, w := range sentence.Words {
		for t := range db.TagsOf(w.Surface) {
			bag[t] = struct{}{}
		}
	}
	return bag
}

// contentTokens returns every surface form in the sentence except the
// target position, matching the "other content words" definition used by
// the context score.
func contentTokens(sentence lexeme.Sentence, target int) []string {
	tokens := make([]string, 0, len(sentence.Words)-1)
	for i, w := range sentence.Words {
		if i == target {
			continue
		}
		tokens = append(tokens, w.Surface)
	}
	return tokens
}
