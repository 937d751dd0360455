package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nl-sre/semantico/internal/semantics"
	"github.com/nl-sre/semantico/lexeme"
)

func word(surface string, tags ...lexeme.POS) lexeme.Word {
	return lexeme.Word{Surface: surface, Tags: tags}
}

func TestDisambiguateRejectsInvalidWeights(t *testing.T) {
	d := NewDefault()
	sentence := lexeme.Sentence{Words: []lexeme.Word{word("smor")}}
	_, err := d.Disambiguate(sentence, 0, Weights{Char: 0.5, Grammar: 0.5, Context: 0.5})
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestDisambiguateRejectsTargetOutOfRange(t *testing.T) {
	d := NewDefault()
	sentence := lexeme.Sentence{Words: []lexeme.Word{word("smor")}}
	_, err := d.Disambiguate(sentence, 5, DefaultWeights())
	assert.ErrorIs(t, err, ErrTargetOutOfRange)
}

func TestDisambiguateNoCandidatesForEmptyLexicon(t *testing.T) {
	d := New(map[string]lexeme.Word{}, semantics.New(), DefaultConfig())
	sentence := lexeme.Sentence{Words: []lexeme.Word{word("smor")}}
	_, err := d.Disambiguate(sentence, 0, DefaultWeights())
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestDisambiguateIsPureAndDeterministic(t *testing.T) {
	d := NewDefault()
	sentence := lexeme.Sentence{Words: []lexeme.Word{
		word("visite", lexeme.POSVerb),
		word("el", lexeme.POSArticle),
		word("coliseo", lexeme.POSNoun),
		word("romano", lexeme.POSAdjective),
		word("en", lexeme.POSPreposition),
		word("smor"),
	}}

	first, err := d.Disambiguate(sentence, 5, DefaultWeights())
	require.NoError(t, err)
	second, err := d.Disambiguate(sentence, 5, DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConfidenceEqualsExactWeightedBlend(t *testing.T) {
	d := NewDefault()
	sentence := lexeme.Sentence{Words: []lexeme.Word{
		word("visite", lexeme.POSVerb),
		word("el", lexeme.POSArticle),
		word("coliseo", lexeme.POSNoun),
		word("romano", lexeme.POSAdjective),
		word("en", lexeme.POSPreposition),
		word("smor"),
	}}

	weights := DefaultWeights()
	decision, err := d.Disambiguate(sentence, 5, weights)
	require.NoError(t, err)

	want := weights.Char*decision.Breakdown.Char + weights.Grammar*decision.Breakdown.Grammar + weights.Context*decision.Breakdown.Context
	assert.InDelta(t, want, decision.Confidence, 1e-9)
}

// Seed scenario 1/4 (flagship weight-reconfiguration example): the same
// anomalous "smor" in "Visité el Coliseo romano en smor" resolves to the
// context-favored "roma" under the default weights, and flips to the
// character-favored "amor" once char weight dominates.
func TestScenarioWeightReconfigurationFlipsWinner(t *testing.T) {
	d := NewDefault()
	sentence := lexeme.Sentence{Words: []lexeme.Word{
		word("visite", lexeme.POSVerb),
		word("el", lexeme.POSArticle),
		word("coliseo", lexeme.POSNoun),
		word("romano", lexeme.POSAdjective),
		word("en", lexeme.POSPreposition),
		word("smor"),
	}}

	underDefault, err := d.Disambiguate(sentence, 5, DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, "roma", underDefault.Surface)
	assert.InDelta(t, 0.775, underDefault.Confidence, 0.01)

	charHeavy, err := d.Disambiguate(sentence, 5, Weights{Char: 0.70, Grammar: 0.15, Context: 0.15})
	require.NoError(t, err)
	assert.Equal(t, "amor", charHeavy.Surface)
}

// Seed scenario 2: "Te quiero mucho mi smor" resolves to "amor" with
// confidence at least 0.70.
func TestScenarioVocativeResolvesToAmor(t *testing.T) {
	d := NewDefault()
	sentence := lexeme.Sentence{Words: []lexeme.Word{
		word("te", lexeme.POSPronoun),
		word("quiero", lexeme.POSVerb),
		word("mucho", lexeme.POSAdverb),
		word("mi", lexeme.POSPronoun, lexeme.POSArticle),
		word("smor"),
	}}

	decision, err := d.Disambiguate(sentence, 4, DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, "amor", decision.Surface)
	assert.GreaterOrEqual(t, decision.Confidence, 0.70)
}

// Seed scenario 3: "Viajé a smor el año pasado" resolves to "roma" with
// confidence at least 0.70, the same as the flagship scenario 1/4 blend
// once the travel/past context fully covers roma's tag set.
func TestScenarioTravelContextResolvesToRoma(t *testing.T) {
	d := NewDefault()
	sentence := lexeme.Sentence{Words: []lexeme.Word{
		word("viaje", lexeme.POSVerb),
		word("a", lexeme.POSPreposition),
		word("smor"),
		word("el", lexeme.POSArticle),
		word("ano", lexeme.POSNoun),
		word("pasado", lexeme.POSAdjective),
	}}

	decision, err := d.Disambiguate(sentence, 2, DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, "roma", decision.Surface)
	assert.GreaterOrEqual(t, decision.Confidence, 0.70)
	assert.InDelta(t, 0.775, decision.Confidence, 0.01)
	assert.Len(t, decision.Rationale, 3)
}
