// Package dispatch encapsulates each candidate as an object answering a
// closed set of typed messages, isolating scorer internals from the
// orchestrator. Dispatch is a tagged-variant match, never open dynamic
// dispatch.
package dispatch

import "fmt"

// Selector is the closed set of messages a candidate object answers.
type Selector int

const (
	SelectorChar Selector = iota
	SelectorGrammar
	SelectorContext
	SelectorExplain
)

func (s Selector) String() string {
	switch s {
	case SelectorChar:
		return "char?"
	case SelectorGrammar:
		return "grammar?"
	case SelectorContext:
		return "context?"
	case SelectorExplain:
		return "explain?"
	default:
		return "?"
	}
}

// RationaleEntry records one factor's contribution for the explain? reply.
type RationaleEntry struct {
	Factor string
	Score  float64
	Note   string
}

// Scorer is implemented by a candidate object: it answers every message in
// the closed set. Dispatch is total — every candidate handles every
// message.
type Scorer interface {
	Char() float64
	Grammar() float64
	Context() float64
	Explain() []RationaleEntry
}

// UnknownSelectorError is a programming fault: it can only be triggered by
// a bug in the dispatcher itself, never by caller input, since Selector's
// constructors are limited to the four constants above.
type UnknownSelectorError struct {
	Selector Selector
}

func (e *UnknownSelectorError) Error() string {
	return fmt.Sprintf("dispatch: unknown selector %v", e.Selector)
}

// Send dispatches a scoring message (char?, grammar?, or context?) to c and
// returns its reply. Any selector outside that closed set is an
// UnknownSelector programming fault and panics rather than returning an
// error, since it cannot originate from caller-supplied data.
func Send(c Scorer, sel Selector) float64 {
	switch sel {
	case SelectorChar:
		return c.Char()
	case SelectorGrammar:
		return c.Grammar()
	case SelectorContext:
		return c.Context()
	default:
		panic(&UnknownSelectorError{Selector: sel})
	}
}

// SendExplain dispatches the explain? message.
func SendExplain(c Scorer) []RationaleEntry {
	return c.Explain()
}
