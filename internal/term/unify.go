package term

// Unify attempts to unify a and b under bindings, returning the extended
// bindings on success. It is a pure function: it never mutates bindings in
// place, and identical inputs always produce identical outputs in identical
// insertion order.
func Unify(a, b Term, bindings Bindings) (Bindings, error) {
	a = Resolve(a, bindings)
	b = Resolve(b, bindings)

	switch {
	case a.Kind == KindVar:
		return bindVar(a, b, bindings)
	case b.Kind == KindVar:
		return bindVar(b, a, bindings)
	case a.Kind == KindAtom && b.Kind == KindAtom:
		if a.Atom == b.Atom {
			return bindings, nil
		}
		return bindings, fail(AtomMismatch, a, b)
	case a.Kind == KindCompound && b.Kind == KindCompound:
		return unifyCompound(a, b, bindings)
	default:
		return bindings, fail(StructuralMismatch, a, b)
	}
}

func bindVar(v, other Term, bindings Bindings) (Bindings, error) {
	if other.Kind == KindVar && other.Var == v.Var {
		return bindings, nil
	}
	if occursIn(v.Var, other, bindings) {
		return bindings, fail(OccursCheck, v, other)
	}
	return bindings.extend(v.Var, other), nil
}

func unifyCompound(a, b Term, bindings Bindings) (Bindings, error) {
	if a.Functor != b.Functor {
		return bindings, fail(FunctorMismatch, a, b)
	}
	if len(a.Args) != len(b.Args) {
		return bindings, fail(ArityMismatch, a, b)
	}
	var err error
	for i := range a.Args {
		bindings, err = Unify(a.Args[i], b.Args[i], bindings)
		if err != nil {
			return bindings, err
		}
	}
	return bindings, nil
}

// occursIn reports whether varName transitively appears within t, following
// resolved bindings. It prevents cyclic structures from being created.
func occursIn(varName string, t Term, bindings Bindings) bool {
	t = Resolve(t, bindings)
	switch t.Kind {
	case KindVar:
		return t.Var == varName
	case KindCompound:
		for _, arg := range t.Args {
			if occursIn(varName, arg, bindings) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
