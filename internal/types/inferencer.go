package types

import (
	"fmt"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
)

// Result is the inferencer's output artefact: a per-NodeID type
// attribution, fully resolved against the final substitution.
type Result struct {
	Types map[ast.NodeID]Type
}

// TypeOf returns the type attributed to n, or nil if n was never typed
// (dead code reached after an earlier diagnostic, typically).
func (r *Result) TypeOf(n ast.Node) Type { return r.Types[n.ID()] }

// Inferencer walks a fully resolved program and assigns every
// expression a Type, threading one Unifier and fresh-variable Context
// across the whole pass (spec §4.4).
type Inferencer struct {
	ctx      *Context
	uni      *Unifier
	bag      *diag.Bag
	types    map[ast.NodeID]Type
	aliases  map[string]Type
	returnTy []Type // stack of enclosing function return types, for `return`
}

// Infer runs the full Hindley-Milner pass over a resolved top-level
// statement vector.
func Infer(stmts []ast.Stmt) (*Result, []diag.Diagnostic) {
	inf := &Inferencer{
		ctx:     NewContext(),
		uni:     NewUnifier(),
		bag:     &diag.Bag{},
		types:   make(map[ast.NodeID]Type),
		aliases: make(map[string]Type),
	}
	env := Builtins()
	inf.declareTopLevel(env, stmts)
	for _, s := range stmts {
		inf.inferStmt(env, s)
	}

	final := make(map[ast.NodeID]Type, len(inf.types))
	for id, t := range inf.types {
		final[id] = inf.uni.Subst().Apply(t)
	}
	return &Result{Types: final}, inf.bag.All()
}

func (inf *Inferencer) record(n ast.Node, ty Type) Type {
	inf.types[n.ID()] = ty
	return ty
}

func (inf *Inferencer) fail(span diag.Span, code diag.Code, format string, args ...any) {
	inf.bag.Add(diag.New(diag.StageTypeCheck, code, span, fmt.Sprintf(format, args...)))
}

// note records a non-fatal diagnostic: one that must never halt the
// pipeline (spec §4.6 only halts a stage on an *error*-severity
// diagnostic). Used for match exhaustiveness (spec §9: "produce a
// non-fatal note but do not reject non-exhaustive matches").
func (inf *Inferencer) note(span diag.Span, code diag.Code, format string, args ...any) {
	d := diag.New(diag.StageTypeCheck, code, span, fmt.Sprintf(format, args...))
	d.Severity = diag.SeverityNote
	inf.bag.Add(d)
}

// hasCatchAllArm reports whether pattern/guard pairs include an
// unguarded WildcardPattern or VarPattern arm. This is a coarse,
// deliberately incomplete exhaustiveness check — it does not reason
// about literal or structural coverage, only about the presence of a
// pattern that by itself matches anything — which matches spec §9's
// instruction to warn, not to implement full exhaustiveness analysis.
func hasCatchAllArm(patterns []ast.Pattern, guards []ast.Expr) bool {
	for i, p := range patterns {
		if guards[i] != nil {
			continue
		}
		switch p.(type) {
		case *ast.WildcardPattern, *ast.VarPattern:
			return true
		}
	}
	return false
}

func matchExprIsExhaustive(arms []ast.MatchArm) bool {
	patterns := make([]ast.Pattern, len(arms))
	guards := make([]ast.Expr, len(arms))
	for i, a := range arms {
		patterns[i], guards[i] = a.Pattern, a.Guard
	}
	return hasCatchAllArm(patterns, guards)
}

func matchStmtIsExhaustive(arms []ast.MatchArmStmt) bool {
	patterns := make([]ast.Pattern, len(arms))
	guards := make([]ast.Expr, len(arms))
	for i, a := range arms {
		patterns[i], guards[i] = a.Pattern, a.Guard
	}
	return hasCatchAllArm(patterns, guards)
}

func (inf *Inferencer) unify(a, b Type, span diag.Span) {
	if d := inf.uni.Unify(a, b, span); d != nil {
		inf.bag.Add(*d)
	}
}

// declareTopLevel pre-binds every top-level function, type alias, and
// class name with a fresh (monomorphic, for now) type before any body
// is inferred, admitting the resolver's mutual recursion among
// top-level functions (spec §4.3/§4.4).
func (inf *Inferencer) declareTopLevel(env *Environment, stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.FunctionStmt:
			env.Bind(n.Name, Monomorphic(inf.freshFunctionType(n)))
		case *ast.TypeAliasStmt:
			inf.aliases[n.Name] = inf.resolveAnn(n.Aliased)
		case *ast.ClassStmt:
			inf.aliases[n.Name] = User{Name: n.Name}
		}
	}
}

func (inf *Inferencer) freshFunctionType(n *ast.FunctionStmt) Type {
	params := make([]Type, len(n.Params))
	for i, p := range n.Params {
		if p.Type != nil {
			params[i] = inf.resolveAnn(p.Type)
		} else {
			params[i] = inf.ctx.Fresh()
		}
	}
	var ret Type
	if n.ReturnType != nil {
		ret = inf.resolveAnn(n.ReturnType)
	} else {
		ret = inf.ctx.Fresh()
	}
	return Function{Params: params, Return: ret}
}

// resolveAnn turns a surface TypeAnn into a Type, consulting the alias
// table for user-defined names.
func (inf *Inferencer) resolveAnn(ann ast.TypeAnn) Type {
	switch a := ann.(type) {
	case *ast.NamedTypeAnn:
		switch a.Name {
		case "Int":
			return Int
		case "Float":
			return Float
		case "String":
			return String
		case "Bool":
			return Bool
		case "Null":
			return Null
		case "Unit":
			return Unit
		case "List":
			if len(a.Args) == 1 {
				return List{Element: inf.resolveAnn(a.Args[0])}
			}
			return List{Element: inf.ctx.Fresh()}
		case "Map":
			if len(a.Args) == 1 {
				return Map{Value: inf.resolveAnn(a.Args[0])}
			}
			return Map{Value: inf.ctx.Fresh()}
		default:
			if ty, ok := inf.aliases[a.Name]; ok {
				return ty
			}
			return User{Name: a.Name}
		}
	case *ast.FuncTypeAnn:
		params := make([]Type, len(a.Params))
		for i, p := range a.Params {
			params[i] = inf.resolveAnn(p)
		}
		return Function{Params: params, Return: inf.resolveAnn(a.Return)}
	default:
		return inf.ctx.Fresh()
	}
}

func (inf *Inferencer) inferStmts(env *Environment, stmts []ast.Stmt) Type {
	last := Type(Unit)
	for _, s := range stmts {
		last = inf.inferStmt(env, s)
	}
	return last
}

func (inf *Inferencer) inferStmt(env *Environment, s ast.Stmt) Type {
	switch n := s.(type) {
	case *ast.LetStmt:
		var ty Type
		if n.Type != nil {
			ty = inf.resolveAnn(n.Type)
			valTy := inf.inferExpr(env, n.Value)
			inf.unify(ty, valTy, toSpan(n.Span()))
		} else {
			ty = inf.inferExpr(env, n.Value)
		}
		scheme := Generalize(ty, env.FreeVars())
		env.Bind(n.Name, scheme)
		inf.record(n, ty)
		return Unit

	case *ast.FunctionStmt:
		scheme, alreadyDeclared := env.Lookup(n.Name)
		fnTy := scheme.Type
		if !alreadyDeclared {
			fnTy = inf.freshFunctionType(n)
			env.Bind(n.Name, Monomorphic(fnTy))
		}
		fn := fnTy.(Function)

		body := env.Child()
		for i, p := range n.Params {
			inf.bindPattern(body, p.Pattern, fn.Params[i])
		}
		inf.returnTy = append(inf.returnTy, fn.Return)
		bodyTy := inf.inferExpr(body, n.Body)
		inf.returnTy = inf.returnTy[:len(inf.returnTy)-1]
		inf.unify(fn.Return, bodyTy, toSpan(n.Span()))

		final := inf.uni.Subst().Apply(fn)
		env.Bind(n.Name, Generalize(final, env.FreeVars()))
		inf.record(n, final)
		return Unit

	case *ast.TypeAliasStmt:
		return Unit

	case *ast.IfStmt:
		condTy := inf.inferExpr(env, n.Cond)
		inf.unify(condTy, Bool, toSpan(n.Cond.Span()))
		thenEnv := env.Child()
		inf.inferStmts(thenEnv, n.Then)
		if n.Else != nil {
			elseEnv := env.Child()
			inf.inferStmts(elseEnv, n.Else)
		}
		return Unit

	case *ast.WhileStmt:
		condTy := inf.inferExpr(env, n.Cond)
		inf.unify(condTy, Bool, toSpan(n.Cond.Span()))
		inf.inferStmts(env.Child(), n.Body)
		return Unit

	case *ast.ForStmt:
		iterTy := inf.inferExpr(env, n.Iter)
		elem := inf.ctx.Fresh()
		inf.unify(iterTy, List{Element: elem}, toSpan(n.Iter.Span()))
		body := env.Child()
		body.Bind(n.Var, Monomorphic(inf.uni.Subst().Apply(elem)))
		inf.inferStmts(body, n.Body)
		return Unit

	case *ast.MatchStmt:
		scrutTy := inf.inferExpr(env, n.Scrutinee)
		for _, arm := range n.Arms {
			armEnv := env.Child()
			inf.bindPattern(armEnv, arm.Pattern, scrutTy)
			if arm.Guard != nil {
				guardTy := inf.inferExpr(armEnv, arm.Guard)
				inf.unify(guardTy, Bool, toSpan(arm.Guard.Span()))
			}
			inf.inferStmts(armEnv, arm.Body)
		}
		if !matchStmtIsExhaustive(n.Arms) {
			inf.note(toSpan(n.Span()), diag.CodeNonExhaustive, "match does not cover every case")
		}
		return Unit

	case *ast.ReturnStmt:
		var ty Type = Unit
		if n.Value != nil {
			ty = inf.inferExpr(env, n.Value)
		}
		if len(inf.returnTy) > 0 {
			inf.unify(inf.returnTy[len(inf.returnTy)-1], ty, toSpan(n.Span()))
		}
		return Unit

	case *ast.BreakStmt, *ast.ContinueStmt:
		return Unit

	case *ast.ExprStmt:
		return inf.record(n, inf.inferExpr(env, n.X))

	case *ast.ImportStmt:
		for _, name := range n.Symbols {
			env.Bind(name, Scheme{Type: inf.ctx.Fresh()})
		}
		return Unit

	case *ast.ClassStmt:
		selfTy := User{Name: n.Name}
		classEnv := env.Child()
		classEnv.Bind("self", Monomorphic(selfTy))
		for _, m := range n.Members {
			if m.Method != nil {
				inf.inferStmt(classEnv, m.Method)
			}
		}
		return Unit
	}
	return Unit
}

func (inf *Inferencer) inferExpr(env *Environment, e ast.Expr) Type {
	switch n := e.(type) {
	case *ast.Ident:
		scheme, ok := env.Lookup(n.Name)
		if !ok {
			inf.fail(toSpan(n.Span()), diag.CodeUndefinedName, "undefined name '%s'", n.Name)
			return inf.record(n, inf.ctx.Fresh())
		}
		return inf.record(n, Instantiate(inf.ctx, scheme))

	case *ast.IntLit:
		return inf.record(n, Int)
	case *ast.FloatLit:
		return inf.record(n, Float)
	case *ast.StringLit:
		return inf.record(n, String)
	case *ast.CharLit:
		return inf.record(n, String)
	case *ast.BoolLit:
		return inf.record(n, Bool)
	case *ast.NullLit:
		return inf.record(n, Null)

	case *ast.BinaryExpr:
		lt := inf.inferExpr(env, n.Left)
		rt := inf.inferExpr(env, n.Right)
		if n.Op == ast.Concat {
			// `++` is the unambiguous String-only spelling of `+`'s
			// concatenation reading: both operands must be String.
			inf.unify(lt, String, toSpan(n.Left.Span()))
			inf.unify(rt, String, toSpan(n.Right.Span()))
			return inf.record(n, String)
		}
		inf.unify(lt, rt, toSpan(n.Span()))
		return inf.record(n, inf.uni.Subst().Apply(lt))

	case *ast.CompareExpr:
		lt := inf.inferExpr(env, n.Left)
		rt := inf.inferExpr(env, n.Right)
		inf.unify(lt, rt, toSpan(n.Span()))
		return inf.record(n, Bool)

	case *ast.LogicalExpr:
		lt := inf.inferExpr(env, n.Left)
		rt := inf.inferExpr(env, n.Right)
		inf.unify(lt, Bool, toSpan(n.Left.Span()))
		inf.unify(rt, Bool, toSpan(n.Right.Span()))
		return inf.record(n, Bool)

	case *ast.BitwiseExpr:
		lt := inf.inferExpr(env, n.Left)
		rt := inf.inferExpr(env, n.Right)
		inf.unify(lt, Int, toSpan(n.Left.Span()))
		inf.unify(rt, Int, toSpan(n.Right.Span()))
		return inf.record(n, Int)

	case *ast.UnaryExpr:
		ty := inf.inferExpr(env, n.Operand)
		if n.Op == ast.Not {
			inf.unify(ty, Bool, toSpan(n.Span()))
			return inf.record(n, Bool)
		}
		return inf.record(n, ty)

	case *ast.CallExpr:
		calleeTy := inf.inferExpr(env, n.Callee)
		argTypes := make([]Type, len(n.Args))
		for i, a := range n.Args {
			argTypes[i] = inf.inferExpr(env, a)
		}
		retVar := inf.ctx.Fresh()
		inf.unify(calleeTy, Function{Params: argTypes, Return: retVar}, toSpan(n.Span()))
		return inf.record(n, inf.uni.Subst().Apply(retVar))

	case *ast.IndexExpr:
		targetTy := inf.inferExpr(env, n.Target)
		indexTy := inf.inferExpr(env, n.Index)
		elem := inf.ctx.Fresh()
		switch inf.uni.Subst().Apply(targetTy).(type) {
		case Map:
			inf.unify(indexTy, String, toSpan(n.Index.Span()))
		default:
			inf.unify(indexTy, Int, toSpan(n.Index.Span()))
		}
		inf.unify(targetTy, inf.indexedContainer(targetTy, elem), toSpan(n.Span()))
		return inf.record(n, inf.uni.Subst().Apply(elem))

	case *ast.MemberExpr:
		inf.inferExpr(env, n.Target)
		// Field types are not modelled independently of their owning
		// class here; a fresh variable keeps member access usable in
		// positions that further unify it (e.g. as a call argument).
		return inf.record(n, inf.ctx.Fresh())

	case *ast.PipelineExpr:
		current := inf.inferExpr(env, n.Stages[0])
		for _, stage := range n.Stages[1:] {
			stageTy := inf.inferExpr(env, stage)
			ret := inf.ctx.Fresh()
			inf.unify(stageTy, Function{Params: []Type{current}, Return: ret}, toSpan(stage.Span()))
			current = inf.uni.Subst().Apply(ret)
		}
		return inf.record(n, current)

	case *ast.LambdaExpr:
		body := env.Child()
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			v := inf.ctx.Fresh()
			params[i] = v
			inf.bindPattern(body, p, v)
		}
		bodyTy := inf.inferExpr(body, n.Body)
		return inf.record(n, Function{Params: params, Return: bodyTy})

	case *ast.IfExpr:
		condTy := inf.inferExpr(env, n.Cond)
		inf.unify(condTy, Bool, toSpan(n.Cond.Span()))
		thenTy := inf.inferExpr(env.Child(), n.Then)
		if n.Else == nil {
			inf.unify(thenTy, Unit, toSpan(n.Span()))
			return inf.record(n, Unit)
		}
		elseTy := inf.inferExpr(env.Child(), n.Else)
		inf.unify(thenTy, elseTy, toSpan(n.Span()))
		return inf.record(n, inf.uni.Subst().Apply(thenTy))

	case *ast.BlockExpr:
		block := env.Child()
		inf.inferStmts(block, n.Statements)
		if n.Tail == nil {
			return inf.record(n, Unit)
		}
		return inf.record(n, inf.inferExpr(block, n.Tail))

	case *ast.ListExpr:
		if len(n.Elements) == 0 {
			return inf.record(n, List{Element: inf.ctx.Fresh()})
		}
		elemTy := inf.inferExpr(env, n.Elements[0])
		for _, el := range n.Elements[1:] {
			ty := inf.inferExpr(env, el)
			inf.unify(elemTy, ty, toSpan(el.Span()))
		}
		return inf.record(n, List{Element: inf.uni.Subst().Apply(elemTy)})

	case *ast.MapExpr:
		if len(n.Entries) == 0 {
			return inf.record(n, Map{Value: inf.ctx.Fresh()})
		}
		valueTy := inf.inferExpr(env, n.Entries[0].Value)
		for _, entry := range n.Entries {
			keyTy := inf.inferExpr(env, entry.Key)
			inf.unify(keyTy, String, toSpan(entry.Key.Span()))
			ty := inf.inferExpr(env, entry.Value)
			inf.unify(valueTy, ty, toSpan(entry.Value.Span()))
		}
		return inf.record(n, Map{Value: inf.uni.Subst().Apply(valueTy)})

	case *ast.MatchExpr:
		scrutTy := inf.inferExpr(env, n.Scrutinee)
		var first Type
		for i, arm := range n.Arms {
			armEnv := env.Child()
			inf.bindPattern(armEnv, arm.Pattern, scrutTy)
			if arm.Guard != nil {
				guardTy := inf.inferExpr(armEnv, arm.Guard)
				inf.unify(guardTy, Bool, toSpan(arm.Guard.Span()))
			}
			armTy := inf.inferExpr(armEnv, arm.Body)
			if i == 0 {
				first = armTy
			} else {
				inf.unify(first, armTy, toSpan(arm.Body.Span()))
			}
		}
		if !matchExprIsExhaustive(n.Arms) {
			inf.note(toSpan(n.Span()), diag.CodeNonExhaustive, "match does not cover every case")
		}
		if first == nil {
			return inf.record(n, Unit)
		}
		return inf.record(n, inf.uni.Subst().Apply(first))

	case *ast.AssignExpr:
		valTy := inf.inferExpr(env, n.Value)
		if scheme, ok := env.Lookup(n.Target.Name); ok {
			inf.unify(Instantiate(inf.ctx, scheme), valTy, toSpan(n.Span()))
		}
		inf.record(n.Target, valTy)
		return inf.record(n, Unit)
	}
	return Unit
}

// indexedContainer returns the List or Map shape that target must
// unify with for an IndexExpr, preferring whichever shape is already
// apparent from a prior unification.
func (inf *Inferencer) indexedContainer(target Type, elem Type) Type {
	switch inf.uni.Subst().Apply(target).(type) {
	case Map:
		return Map{Value: elem}
	default:
		return List{Element: elem}
	}
}

// bindPattern destructures expected against p, binding every variable
// pattern into env at its corresponding sub-type (spec §4.4's pattern
// typing rules, ported from check_pattern).
func (inf *Inferencer) bindPattern(env *Environment, p ast.Pattern, expected Type) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:

	case *ast.VarPattern:
		env.Bind(pat.Name, Monomorphic(expected))
		inf.record(pat, expected)

	case *ast.LiteralPattern:
		litTy := inf.inferExpr(env, pat.Value)
		inf.unify(litTy, expected, toSpan(pat.Span()))

	case *ast.TuplePattern:
		expected = inf.uni.Subst().Apply(expected)
		tup, ok := expected.(Tuple)
		if !ok {
			elems := make([]Type, len(pat.Elements))
			for i := range elems {
				elems[i] = inf.ctx.Fresh()
			}
			tup = Tuple{Elements: elems}
			inf.unify(expected, tup, toSpan(pat.Span()))
		} else if len(tup.Elements) != len(pat.Elements) {
			inf.fail(toSpan(pat.Span()), diag.CodeArityMismatch,
				"tuple pattern expects %d element(s), found %d", len(tup.Elements), len(pat.Elements))
			return
		}
		for i, el := range pat.Elements {
			inf.bindPattern(env, el, tup.Elements[i])
		}

	case *ast.ListPattern:
		elem := inf.ctx.Fresh()
		inf.unify(expected, List{Element: elem}, toSpan(pat.Span()))
		for _, el := range pat.Elements {
			inf.bindPattern(env, el, inf.uni.Subst().Apply(elem))
		}

	case *ast.ListConsPattern:
		elem := inf.ctx.Fresh()
		inf.unify(expected, List{Element: elem}, toSpan(pat.Span()))
		inf.bindPattern(env, pat.Head, inf.uni.Subst().Apply(elem))
		inf.bindPattern(env, pat.Tail, List{Element: inf.uni.Subst().Apply(elem)})

	case *ast.StructPattern:
		for _, f := range pat.Fields {
			inf.bindPattern(env, f.Pattern, inf.ctx.Fresh())
		}

	case *ast.OrPattern:
		for _, alt := range pat.Alternatives {
			inf.bindPattern(env, alt, expected)
		}

	case *ast.RangePattern:
		lowTy := inf.inferExpr(env, pat.Low)
		highTy := inf.inferExpr(env, pat.High)
		inf.unify(lowTy, expected, toSpan(pat.Span()))
		inf.unify(highTy, expected, toSpan(pat.Span()))
	}
}
