package engine

import (
	"fmt"

	"github.com/nl-sre/semantico/internal/charmatch"
	"github.com/nl-sre/semantico/internal/dispatch"
	"github.com/nl-sre/semantico/internal/grammar"
	"github.com/nl-sre/semantico/internal/semantics"
	"github.com/nl-sre/semantico/internal/sharedcontext"
	"github.com/nl-sre/semantico/internal/term"
	"github.com/nl-sre/semantico/lexeme"
)

// candidateObject wraps one candidate replacement as a message-receiving
// object per the message dispatcher's closed message set. It reads the
// shared context but only ever mutates it through the context's own API.
type candidateObject struct {
	surface     string
	surfaceTags []lexeme.POS
	targetWord  string
	sentence    lexeme.Sentence
	position    int
	ctxTokens   []string
	semantic    *semantics.DB

	sctx *sharedcontext.SharedContext

	charScore, grammarScore, contextScore float64
	notes                                 []dispatch.RationaleEntry
}

var _ dispatch.Scorer = (*candidateObject)(nil)

// bindSelf records this candidate's surface form in the shared context as
// an atom bound to a fresh variable, exercising the unification kernel and
// the constraint-checking path described for the shared-context layer. A
// second, idempotent bind on the same variable is what would surface an
// AtomMismatch as a ConstraintViolation if a scorer ever tried to rebind it
// to a different candidate within the same scoped subcontext.
func (c *candidateObject) bindSelf() error {
	v := c.sctx.Fresh("candidate")
	return c.sctx.Bind(v, term.Atom(c.surface))
}

func (c *candidateObject) Char() float64 {
	score := charmatch.Score(c.targetWord, c.surface)
	c.charScore = score
	c.notes = append(c.notes, dispatch.RationaleEntry{
		Factor: "char", Score: score,
		Note: fmt.Sprintf("character similarity of %q against %q", c.targetWord, c.surface),
	})
	return score
}

func (c *candidateObject) Grammar() float64 {
	candidate := c.sentence.WithWord(c.position, lexeme.Word{Surface: c.surface, Tags: c.surfaceTags})
	score := grammar.Validate(candidate)
	c.grammarScore = score
	c.notes = append(c.notes, dispatch.RationaleEntry{
		Factor: "grammar", Score: score,
		Note: "best POS assignment validity over the candidate sentence",
	})
	return score
}

func (c *candidateObject) Context() float64 {
	score := c.semantic.ContextScore(c.surface, c.ctxTokens)
	c.contextScore = score
	c.notes = append(c.notes, dispatch.RationaleEntry{
		Factor: "context", Score: score,
		Note: "Jaccard similarity of semantic tags against sentence context",
	})
	return score
}

func (c *candidateObject) Explain() []dispatch.RationaleEntry {
	return c.notes
}
