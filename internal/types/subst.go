package types

import set "github.com/hashicorp/go-set/v3"

// Substitution maps type-variable ids to the type they stand for.
// Ported from the original's Substitution = HashMap<usize, Type>.
type Substitution map[int]Type

// Apply recursively replaces every variable in ty that s binds, and is
// idempotent with respect to s's own bindings (each lookup walks to a
// fixed point rather than assuming s is already fully composed).
func (s Substitution) Apply(ty Type) Type {
	switch t := ty.(type) {
	case Var:
		if bound, ok := s[t.ID]; ok {
			return s.Apply(bound)
		}
		return t
	case Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = s.Apply(p)
		}
		return Function{Params: params, Return: s.Apply(t.Return)}
	case List:
		return List{Element: s.Apply(t.Element)}
	case Map:
		return Map{Value: s.Apply(t.Value)}
	case Tuple:
		elems := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = s.Apply(e)
		}
		return Tuple{Elements: elems}
	default:
		return ty
	}
}

// ApplyScheme applies s to every free occurrence in a scheme's body,
// leaving quantified variables untouched (they are bound, not free).
func (s Substitution) ApplyScheme(sc Scheme) Scheme {
	filtered := make(Substitution, len(s))
	bound := make(map[int]bool, len(sc.Vars))
	for _, v := range sc.Vars {
		bound[v] = true
	}
	for id, t := range s {
		if !bound[id] {
			filtered[id] = t
		}
	}
	return Scheme{Vars: sc.Vars, Type: filtered.Apply(sc.Type)}
}

// Compose returns a substitution equivalent to applying s2 then s1:
// for every variable, Compose(s1, s2).Apply(t) == s1.Apply(s2.Apply(t)).
func Compose(s1, s2 Substitution) Substitution {
	result := make(Substitution, len(s1)+len(s2))
	for id, t := range s2 {
		result[id] = s1.Apply(t)
	}
	for id, t := range s1 {
		if _, already := result[id]; !already {
			result[id] = t
		}
	}
	return result
}

// FreeVars returns the set of unbound type-variable ids occurring in ty.
func FreeVars(ty Type) *set.Set[int] {
	out := set.New[int](4)
	collectFreeVars(ty, out)
	return out
}

func collectFreeVars(ty Type, out *set.Set[int]) {
	switch t := ty.(type) {
	case Var:
		out.Insert(t.ID)
	case Function:
		for _, p := range t.Params {
			collectFreeVars(p, out)
		}
		collectFreeVars(t.Return, out)
	case List:
		collectFreeVars(t.Element, out)
	case Map:
		collectFreeVars(t.Value, out)
	case Tuple:
		for _, e := range t.Elements {
			collectFreeVars(e, out)
		}
	}
}

// SchemeFreeVars is a scheme's free variables: those in its body minus
// its own quantified variables.
func SchemeFreeVars(sc Scheme) *set.Set[int] {
	free := FreeVars(sc.Type)
	for _, v := range sc.Vars {
		free.Remove(v)
	}
	return free
}
