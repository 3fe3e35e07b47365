package types

import (
	"fmt"

	"github.com/ember-lang/emberc/internal/diag"
)

// Unifier accumulates a running substitution across a sequence of
// unification problems, exactly as the original's Unifier struct
// threads one Substitution through the whole inference pass.
type Unifier struct {
	subst Substitution
}

// NewUnifier returns a Unifier with the empty substitution.
func NewUnifier() *Unifier {
	return &Unifier{subst: Substitution{}}
}

// Subst returns the unifier's current substitution.
func (u *Unifier) Subst() Substitution { return u.subst }

// Unify solves a = b under the unifier's current substitution,
// extending it in place. On failure it returns a TYPE_MISMATCH (or
// TYPE_OCCURS_CHECK) diagnostic and leaves the substitution unchanged.
func (u *Unifier) Unify(a, b Type, span diag.Span) *diag.Diagnostic {
	a = u.subst.Apply(a)
	b = u.subst.Apply(b)

	switch at := a.(type) {
	case Var:
		return u.bindVar(at.ID, b, span)
	default:
		if bt, ok := b.(Var); ok {
			return u.bindVar(bt.ID, a, span)
		}
	}

	switch at := a.(type) {
	case primitive:
		if bt, ok := b.(primitive); ok && at == bt {
			return nil
		}
		return mismatch(a, b, span)

	case Function:
		bt, ok := b.(Function)
		if !ok {
			return mismatch(a, b, span)
		}
		if len(at.Params) != len(bt.Params) {
			d := diag.New(diag.StageTypeCheck, diag.CodeArityMismatch, span,
				fmt.Sprintf("function expects %d argument(s), found %d", len(at.Params), len(bt.Params)))
			return &d
		}
		for i := range at.Params {
			if d := u.Unify(at.Params[i], bt.Params[i], span); d != nil {
				return d
			}
		}
		return u.Unify(at.Return, bt.Return, span)

	case List:
		bt, ok := b.(List)
		if !ok {
			return mismatch(a, b, span)
		}
		return u.Unify(at.Element, bt.Element, span)

	case Map:
		bt, ok := b.(Map)
		if !ok {
			return mismatch(a, b, span)
		}
		return u.Unify(at.Value, bt.Value, span)

	case Tuple:
		bt, ok := b.(Tuple)
		if !ok || len(at.Elements) != len(bt.Elements) {
			return mismatch(a, b, span)
		}
		for i := range at.Elements {
			if d := u.Unify(at.Elements[i], bt.Elements[i], span); d != nil {
				return d
			}
		}
		return nil

	case User:
		bt, ok := b.(User)
		if !ok || at.Name != bt.Name {
			return mismatch(a, b, span)
		}
		return nil
	}

	return mismatch(a, b, span)
}

// bindVar binds type variable id to ty, rejecting an occurs-check
// violation (id occurring within ty would produce an infinite type).
func (u *Unifier) bindVar(id int, ty Type, span diag.Span) *diag.Diagnostic {
	if v, ok := ty.(Var); ok && v.ID == id {
		return nil
	}
	if occurs(id, ty) {
		d := diag.New(diag.StageTypeCheck, diag.CodeOccursCheck, span,
			fmt.Sprintf("infinite type: t%d occurs in %s", id, ty.String()))
		return &d
	}
	u.subst = Compose(Substitution{id: ty}, u.subst)
	return nil
}

func occurs(id int, ty Type) bool {
	return FreeVars(ty).Contains(id)
}

func mismatch(a, b Type, span diag.Span) *diag.Diagnostic {
	d := diag.New(diag.StageTypeCheck, diag.CodeTypeMismatch, span,
		fmt.Sprintf("expected %s, found %s", a.String(), b.String()))
	return &d
}
