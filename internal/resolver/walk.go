package resolver

import (
	"fmt"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	set "github.com/hashicorp/go-set/v3"
)

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.LetStmt:
		r.resolveExpr(n.Value)
		r.declare(n.Name, &Symbol{Name: n.Name, Kind: KindVariable, Mutable: n.Mutable, DeclaringSpan: n.Span()}, n.Span())

	case *ast.FunctionStmt:
		wasTopLevel := r.atTopLevel
		if !wasTopLevel {
			r.declare(n.Name, &Symbol{Name: n.Name, Kind: KindFunction, Arity: len(n.Params), DeclaringSpan: n.Span()}, n.Span())
		}
		r.scopes.Push()
		r.atTopLevel = false
		r.scopes.EnterFunction()
		for i, p := range n.Params {
			r.declarePattern(p.Pattern, KindParameter, i)
		}
		r.resolveExpr(n.Body)
		r.scopes.ExitFunction()
		r.scopes.Pop()
		r.atTopLevel = wasTopLevel

	case *ast.TypeAliasStmt:
		// Nothing to resolve: type annotations are surface sugar only.

	case *ast.IfStmt:
		r.resolveExpr(n.Cond)
		r.scopes.Push()
		r.resolveStmts(n.Then)
		r.scopes.Pop()
		if n.Else != nil {
			r.scopes.Push()
			r.resolveStmts(n.Else)
			r.scopes.Pop()
		}

	case *ast.WhileStmt:
		r.resolveExpr(n.Cond)
		r.scopes.EnterLoop()
		r.scopes.Push()
		r.resolveStmts(n.Body)
		r.scopes.Pop()
		r.scopes.ExitLoop()

	case *ast.ForStmt:
		r.resolveExpr(n.Iter)
		r.scopes.Push()
		r.declare(n.Var, &Symbol{Name: n.Var, Kind: KindLoopVariable, DeclaringSpan: n.Span()}, n.Span())
		r.scopes.EnterLoop()
		r.resolveStmts(n.Body)
		r.scopes.ExitLoop()
		r.scopes.Pop()

	case *ast.MatchStmt:
		r.resolveExpr(n.Scrutinee)
		for _, arm := range n.Arms {
			r.scopes.Push()
			r.declarePattern(arm.Pattern, KindVariable, -1)
			if arm.Guard != nil {
				r.resolveExpr(arm.Guard)
			}
			r.resolveStmts(arm.Body)
			r.scopes.Pop()
		}

	case *ast.ReturnStmt:
		if !r.scopes.InFunction() {
			r.bag.Add(diag.New(diag.StageResolver, diag.CodeInvalidReturnContext, toSpan(n.Span()),
				"'return' used outside of a function"))
		}
		if n.Value != nil {
			r.resolveExpr(n.Value)
		}

	case *ast.BreakStmt:
		if !r.scopes.InLoop() {
			r.bag.Add(diag.New(diag.StageResolver, diag.CodeInvalidBreakContext, toSpan(n.Span()),
				"'break' used outside of a loop"))
		}

	case *ast.ContinueStmt:
		if !r.scopes.InLoop() {
			r.bag.Add(diag.New(diag.StageResolver, diag.CodeInvalidContinueContext, toSpan(n.Span()),
				"'continue' used outside of a loop"))
		}

	case *ast.ExprStmt:
		r.resolveExpr(n.X)

	case *ast.ImportStmt:
		for _, name := range n.Symbols {
			r.scopes.Declare(name, &Symbol{Name: name, Kind: KindVariable, DeclaringSpan: n.Span()})
		}

	case *ast.ClassStmt:
		wasTopLevel := r.atTopLevel
		if !wasTopLevel {
			r.declare(n.Name, &Symbol{Name: n.Name, Kind: KindType, DeclaringSpan: n.Span()}, n.Span())
		}
		r.scopes.Push()
		r.atTopLevel = false
		for _, m := range n.Members {
			if m.Method != nil {
				r.resolveStmt(m.Method)
			}
		}
		r.scopes.Pop()
		r.atTopLevel = wasTopLevel
	}
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		r.use(n, n.Name)

	case *ast.IntLit, *ast.FloatLit, *ast.StringLit, *ast.CharLit, *ast.BoolLit, *ast.NullLit:
		// literals bind nothing, use nothing

	case *ast.BinaryExpr:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.CompareExpr:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.LogicalExpr:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.BitwiseExpr:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.UnaryExpr:
		r.resolveExpr(n.Operand)

	case *ast.CallExpr:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}

	case *ast.IndexExpr:
		r.resolveExpr(n.Target)
		r.resolveExpr(n.Index)

	case *ast.MemberExpr:
		r.resolveExpr(n.Target)

	case *ast.PipelineExpr:
		for _, s := range n.Stages {
			r.resolveExpr(s)
		}

	case *ast.LambdaExpr:
		r.scopes.Push()
		for i, p := range n.Params {
			r.declarePattern(p, KindParameter, i)
		}
		r.resolveExpr(n.Body)
		r.scopes.Pop()

	case *ast.IfExpr:
		r.resolveExpr(n.Cond)
		r.scopes.Push()
		r.resolveExpr(n.Then)
		r.scopes.Pop()
		if n.Else != nil {
			r.scopes.Push()
			r.resolveExpr(n.Else)
			r.scopes.Pop()
		}

	case *ast.BlockExpr:
		r.scopes.Push()
		r.resolveStmts(n.Statements)
		if n.Tail != nil {
			r.resolveExpr(n.Tail)
		}
		r.scopes.Pop()

	case *ast.ListExpr:
		for _, el := range n.Elements {
			r.resolveExpr(el)
		}

	case *ast.MapExpr:
		for _, entry := range n.Entries {
			r.resolveExpr(entry.Key)
			r.resolveExpr(entry.Value)
		}

	case *ast.MatchExpr:
		r.resolveExpr(n.Scrutinee)
		for _, arm := range n.Arms {
			r.scopes.Push()
			r.declarePattern(arm.Pattern, KindVariable, -1)
			if arm.Guard != nil {
				r.resolveExpr(arm.Guard)
			}
			r.resolveExpr(arm.Body)
			r.scopes.Pop()
		}

	case *ast.AssignExpr:
		r.resolveExpr(n.Value)
		r.resolveAssignTarget(n.Target)
	}
}

// resolveAssignTarget resolves the left-hand side of an assignment and
// rejects assignment to anything that isn't a `var`-bound variable
// (spec §9 Open Questions: "Treat assignment to a let-bound as a
// diagnostic at resolve time").
func (r *Resolver) resolveAssignTarget(target *ast.Ident) {
	sym := r.scopes.Lookup(target.Name)
	if sym == nil {
		r.bag.Add(diag.New(diag.StageResolver, diag.CodeUndefinedName, toSpan(target.Span()),
			fmt.Sprintf("undefined name '%s'", target.Name)))
		r.uses[target.ID()] = ErrorSymbol
		return
	}
	r.uses[target.ID()] = sym
	if sym.Kind != KindVariable || !sym.Mutable {
		r.bag.Add(diag.New(diag.StageResolver, diag.CodeAssignToImmutable, toSpan(target.Span()),
			fmt.Sprintf("cannot assign to '%s': it is not declared with 'var'", target.Name)))
	}
}

// declarePattern resolves a pattern in binding position: every bound
// variable is declared exactly once in the current scope. Repeated
// names within the same pattern are a diagnostic; wildcards bind
// nothing (spec §4.3 "Patterns"). paramIndex is forwarded onto
// KindParameter symbols created for a direct *ast.VarPattern and is
// ignored (-1) for anything else.
func (r *Resolver) declarePattern(p ast.Pattern, kind SymbolKind, paramIndex int) {
	seen := set.New[string](4)
	r.declarePatternRec(p, kind, paramIndex, seen)
}

func (r *Resolver) declarePatternRec(p ast.Pattern, kind SymbolKind, paramIndex int, seen *set.Set[string]) {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		// binds nothing

	case *ast.VarPattern:
		if !seen.Insert(n.Name) {
			r.bag.Add(diag.New(diag.StageResolver, diag.CodeDuplicateDefinition, toSpan(n.Span()),
				fmt.Sprintf("'%s' is bound more than once in this pattern", n.Name)))
			return
		}
		sym := &Symbol{Name: n.Name, Kind: kind, ParamIndex: paramIndex, DeclaringSpan: n.Span()}
		r.declare(n.Name, sym, n.Span())
		r.uses[n.ID()] = sym

	case *ast.LiteralPattern:
		r.resolveExpr(n.Value)

	case *ast.TuplePattern:
		for _, el := range n.Elements {
			r.declarePatternRec(el, kind, -1, seen)
		}

	case *ast.ListPattern:
		for _, el := range n.Elements {
			r.declarePatternRec(el, kind, -1, seen)
		}

	case *ast.ListConsPattern:
		r.declarePatternRec(n.Head, kind, -1, seen)
		r.declarePatternRec(n.Tail, kind, -1, seen)

	case *ast.StructPattern:
		for _, f := range n.Fields {
			r.declarePatternRec(f.Pattern, kind, -1, seen)
		}

	case *ast.OrPattern:
		for _, alt := range n.Alternatives {
			r.declarePatternRec(alt, kind, -1, seen)
		}

	case *ast.RangePattern:
		r.resolveExpr(n.Low)
		r.resolveExpr(n.High)
	}
}
