package term

// UnifyErrorKind enumerates the closed set of ways unification can fail.
type UnifyErrorKind int

const (
	AtomMismatch UnifyErrorKind = iota
	ArityMismatch
	FunctorMismatch
	OccursCheck
	StructuralMismatch
)

func (k UnifyErrorKind) String() string {
	switch k {
	case AtomMismatch:
		return "AtomMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case FunctorMismatch:
		return "FunctorMismatch"
	case OccursCheck:
		return "OccursCheck"
	case StructuralMismatch:
		return "StructuralMismatch"
	default:
		return "UnknownUnifyError"
	}
}

// UnifyError is internal to the engine. Its only producer in the engine's
// path is sharedcontext.Bind, which wraps it in a ConstraintViolation that
// rejects the candidate; no scorer runs unification, so a UnifyError never
// becomes a zero sub-score or a rationale note. It never escapes to a
// caller.
type UnifyError struct {
	Kind UnifyErrorKind
	A, B Term
}

func (e *UnifyError) Error() string {
	return e.Kind.String() + ": " + e.A.String() + " vs " + e.B.String()
}

func fail(kind UnifyErrorKind, a, b Term) error {
	return &UnifyError{Kind: kind, A: a, B: b}
}
