// Package sharedcontext implements the logic-variable layer that
// propagates partial information across candidates within one
// disambiguation call, on top of the unification kernel.
package sharedcontext

import (
	"fmt"

	"github.com/nl-sre/semantico/internal/term"
)

// ConstraintViolation is caught per-candidate by the orchestrator and
// converts to candidate rejection; it never escapes a disambiguation call.
type ConstraintViolation struct {
	Reason string
}

func (e *ConstraintViolation) Error() string {
	return "constraint violation: " + e.Reason
}

// Constraint is a predicate over the resolved context, run after every
// Bind. It returns nil (Ok) or a *ConstraintViolation.
type Constraint func(c *SharedContext) error

// SharedContext holds bindings scoped to one disambiguation call. It is
// single-threaded and non-blocking.
type SharedContext struct {
	bindings     term.Bindings
	freshCounter int
	constraints  []Constraint
}

func New() *SharedContext {
	return &SharedContext{}
}

// Fresh introduces a new variable unique within this context.
func (c *SharedContext) Fresh(name string) term.Term {
	c.freshCounter++
	return term.Var(fmt.Sprintf("%s#%d", name, c.freshCounter))
}

// AddConstraint registers a predicate that runs after every subsequent Bind.
func (c *SharedContext) AddConstraint(constraint Constraint) {
	c.constraints = append(c.constraints, constraint)
}

// Bind attempts to unify v's current resolution with value. On success it
// runs every registered constraint; the first violation is returned and the
// binding is rolled back so a failed Bind never leaves a partial trace.
func (c *SharedContext) Bind(v, value term.Term) error {
	mark := c.bindings.Len()
	next, err := term.Unify(v, value, c.bindings)
	if err != nil {
		return &ConstraintViolation{Reason: err.Error()}
	}
	c.bindings = next

	for _, constraint := range c.constraints {
		if err := constraint(c); err != nil {
			c.bindings = c.bindings.Truncate(mark)
			return err
		}
	}
	return nil
}

// Resolve returns the fully resolved term for t, following binding chains.
func (c *SharedContext) Resolve(t term.Term) term.Term {
	return term.Resolve(t, c.bindings)
}

// Checkpoint returns a marker for the current binding table length.
func (c *SharedContext) Checkpoint() int {
	return c.bindings.Len()
}

// Rollback truncates the binding table back to a checkpoint.
func (c *SharedContext) Rollback(mark int) {
	c.bindings = c.bindings.Truncate(mark)
}

// WithCandidate runs fn inside a scoped subcontext: bindings introduced by
// fn are discarded on exit regardless of whether fn returns an error.
func (c *SharedContext) WithCandidate(fn func() error) error {
	mark := c.Checkpoint()
	defer c.Rollback(mark)
	return fn()
}
