package sharedcontext

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nl-sre/semantico/internal/term"
)

func TestBindAndResolve(t *testing.T) {
	c := New()
	v := c.Fresh("candidate")
	require.NoError(t, c.Bind(v, term.Atom("roma")))
	assert.Equal(t, term.Atom("roma"), c.Resolve(v))
}

func TestFreshVariablesAreUnique(t *testing.T) {
	c := New()
	a := c.Fresh("x")
	b := c.Fresh("x")
	assert.NotEqual(t, a.Var, b.Var)
}

func TestBindConflictReturnsConstraintViolation(t *testing.T) {
	c := New()
	v := c.Fresh("candidate")
	require.NoError(t, c.Bind(v, term.Atom("roma")))

	err := c.Bind(v, term.Atom("amor"))
	require.Error(t, err)
	var cv *ConstraintViolation
	assert.True(t, errors.As(err, &cv))
}

func TestFailedConstraintRollsBackTheBinding(t *testing.T) {
	c := New()
	c.AddConstraint(func(c *SharedContext) error {
		return &ConstraintViolation{Reason: "always fails"}
	})

	v := c.Fresh("candidate")
	mark := c.Checkpoint()
	err := c.Bind(v, term.Atom("roma"))
	require.Error(t, err)
	assert.Equal(t, mark, c.Checkpoint())
	assert.Equal(t, v, c.Resolve(v))
}

func TestWithCandidateAlwaysRollsBackOnExit(t *testing.T) {
	c := New()
	mark := c.Checkpoint()

	v := c.Fresh("candidate")
	err := c.WithCandidate(func() error {
		return c.Bind(v, term.Atom("roma"))
	})
	require.NoError(t, err)
	assert.Equal(t, mark, c.Checkpoint())
	assert.Equal(t, v, c.Resolve(v))
}

func TestWithCandidateRollsBackEvenOnError(t *testing.T) {
	c := New()
	mark := c.Checkpoint()

	v := c.Fresh("candidate")
	err := c.WithCandidate(func() error {
		if bindErr := c.Bind(v, term.Atom("roma")); bindErr != nil {
			return bindErr
		}
		return errors.New("candidate rejected for an unrelated reason")
	})
	require.Error(t, err)
	assert.Equal(t, mark, c.Checkpoint())
}
