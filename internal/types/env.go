package types

import (
	"slices"

	set "github.com/hashicorp/go-set/v3"
)

// Context mints fresh type variables, exactly as the original's
// per-pass counter does for Instantiate and for every unannotated
// binder.
type Context struct{ next int }

// NewContext returns a Context starting from variable id 0.
func NewContext() *Context { return &Context{} }

// Fresh returns a new, never-before-seen type variable.
func (c *Context) Fresh() Type {
	v := Var{ID: c.next}
	c.next++
	return v
}

// Generalize closes over every variable free in ty but not free in the
// enclosing environment, producing the let-polymorphic scheme bound at
// a `let` (spec §4.4 "Generalisation").
func Generalize(ty Type, envFree *set.Set[int]) Scheme {
	tyFree := FreeVars(ty)
	var vars []int
	for _, id := range tyFree.Slice() {
		if !envFree.Contains(id) {
			vars = append(vars, id)
		}
	}
	return Scheme{Vars: vars, Type: ty}
}

// Instantiate replaces every quantified variable in sc with a fresh
// one, producing a monomorphic type suitable for a single use site
// (spec §4.4 "Instantiation").
func Instantiate(ctx *Context, sc Scheme) Type {
	if len(sc.Vars) == 0 {
		return sc.Type
	}
	fresh := make(Substitution, len(sc.Vars))
	for _, v := range sc.Vars {
		fv := ctx.Fresh()
		for slices.Contains(sc.Vars, fv.(Var).ID) {
			fv = ctx.Fresh()
		}
		fresh[v] = fv
	}
	return fresh.Apply(sc.Type)
}

// Environment is a chain of scheme-valued scopes, mirroring the
// resolver's Scope but carrying type schemes instead of symbols.
type Environment struct {
	parent *Environment
	vars   map[string]Scheme
}

// NewEnvironment returns an empty root environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Scheme)}
}

// Child opens a nested environment, e.g. for a function body or block.
func (e *Environment) Child() *Environment {
	return &Environment{parent: e, vars: make(map[string]Scheme)}
}

// Bind introduces name with scheme sc in this environment.
func (e *Environment) Bind(name string, sc Scheme) {
	e.vars[name] = sc
}

// Lookup walks outward through parents for name's scheme.
func (e *Environment) Lookup(name string) (Scheme, bool) {
	for env := e; env != nil; env = env.parent {
		if sc, ok := env.vars[name]; ok {
			return sc, true
		}
	}
	return Scheme{}, false
}

// FreeVars is the set of type variables free anywhere in this
// environment chain, used by Generalize to avoid quantifying over a
// variable some outer binding still depends on.
func (e *Environment) FreeVars() *set.Set[int] {
	out := set.New[int](8)
	for env := e; env != nil; env = env.parent {
		for _, sc := range env.vars {
			for _, id := range SchemeFreeVars(sc).Slice() {
				out.Insert(id)
			}
		}
	}
	return out
}

// Builtins returns a fresh root Environment pre-populated with the
// built-in function schemes of spec §6.3, exactly as tabulated there
// (range/input/abs/min/max are NOT generic; len is generic over its
// list's element type, and print/println/str/int/float/bool/type take
// an arbitrary α). Every
// quantified scheme here uses the reserved placeholder id -1, which
// Instantiate replaces with a fresh variable at every use site so -1
// never leaks into real inference output.
func Builtins() *Environment {
	const placeholder = -1
	anyArg := func(ret Type) Scheme {
		return Scheme{Vars: []int{placeholder}, Type: FuncOf([]Type{Var{ID: placeholder}}, ret)}
	}

	env := NewEnvironment()
	env.Bind("print", anyArg(Unit))
	env.Bind("println", anyArg(Unit))
	env.Bind("len", Scheme{Vars: []int{placeholder}, Type: FuncOf([]Type{List{Element: Var{ID: placeholder}}}, Int)})
	env.Bind("range", Monomorphic(FuncOf([]Type{Int}, List{Element: Int})))
	env.Bind("input", Monomorphic(FuncOf([]Type{String}, String)))
	env.Bind("str", anyArg(String))
	env.Bind("int", anyArg(Int))
	env.Bind("float", anyArg(Float))
	env.Bind("bool", anyArg(Bool))
	env.Bind("type", anyArg(String))
	env.Bind("abs", Monomorphic(FuncOf([]Type{Int}, Int)))
	env.Bind("min", Monomorphic(FuncOf([]Type{Int, Int}, Int)))
	env.Bind("max", Monomorphic(FuncOf([]Type{Int, Int}, Int)))
	return env
}
