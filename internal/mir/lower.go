package mir

import (
	"fmt"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
)

// lowerer walks a resolved, typed top-level statement vector and
// produces a Program by mechanical translation (spec §4.5). It carries
// no type or symbol information of its own — by the time lowering
// runs, the resolver and inferencer have already rejected anything
// that would make lowering itself ambiguous.
type lowerer struct {
	bag *diag.Bag
}

// Lower runs the mechanical AST-to-MIR translation over a fully
// resolved and type-checked top-level statement vector.
func Lower(stmts []ast.Stmt) (*Program, []diag.Diagnostic) {
	l := &lowerer{bag: &diag.Bag{}}
	prog := &Program{}
	for _, s := range stmts {
		if fn, ok := s.(*ast.FunctionStmt); ok {
			prog.Functions = append(prog.Functions, l.lowerFunction(fn))
			continue
		}
		prog.TopLevel = append(prog.TopLevel, l.lowerStmt(s)...)
	}
	return prog, l.bag.All()
}

func (l *lowerer) fail(span diag.Span, code diag.Code, format string, args ...any) {
	l.bag.Add(diag.New(diag.StageLowering, code, span, fmt.Sprintf(format, args...)))
}

func spanOf(n ast.Node) diag.Span {
	s := n.Span()
	return diag.Span{Filename: s.Filename, Line: s.Line, Column: s.Column, Start: s.Start, End: s.End}
}

func (l *lowerer) lowerFunction(fn *ast.FunctionStmt) *FunctionDef {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = paramName(p.Pattern)
	}
	return &FunctionDef{Name: fn.Name, Params: params, Body: l.lowerFunctionBody(fn.Body)}
}

// paramName extracts the bound name of a function parameter pattern.
// Function parameters are restricted to variable patterns by the
// parser (spec §4.2 "Pattern parsing"); a wildcard parameter binds no
// name and is rendered as a placeholder the emitter never reads.
func paramName(p ast.Pattern) string {
	switch pt := p.(type) {
	case *ast.VarPattern:
		return pt.Name
	default:
		return "_"
	}
}

// lowerFunctionBody lowers a function body, which is always either a
// BlockExpr or a single expression (ast.FunctionStmt.Body), into a
// flattened statement list whose last element (if any) is the
// function's return value.
func (l *lowerer) lowerFunctionBody(body ast.Expr) []Stmt {
	var out []Stmt
	if block, ok := body.(*ast.BlockExpr); ok {
		l.lowerBlockInto(block, &out, tailReturn)
		return out
	}
	l.lowerTailInto(body, &out, tailReturn)
	return out
}

// tailPolicy controls how a block's or function's trailing expression
// is turned into a Stmt once it has no further statement to flow into
// (spec §4.5: "a block's tail expression becomes either the value of
// the enclosing let or (in statement position) an expression
// statement").
type tailPolicy int

const (
	tailExprStmt tailPolicy = iota // bare expression statement
	tailReturn                    // wrap in `return`
)

// lowerBlockInto flattens block's statements into out, then lowers its
// tail expression (if any) according to policy.
func (l *lowerer) lowerBlockInto(block *ast.BlockExpr, out *[]Stmt, policy tailPolicy) {
	for _, s := range block.Statements {
		*out = append(*out, l.lowerStmt(s)...)
	}
	if block.Tail != nil {
		l.lowerTailInto(block.Tail, out, policy)
	}
}

// lowerTailInto lowers a value-position expression that is the last
// thing in its enclosing sequence, applying policy to decide what
// statement wraps its value. If e is itself a Block or a statement-
// shaped construct (if/match in statement form), the lowering
// recurses so the wrapping policy reaches every leaf tail.
func (l *lowerer) lowerTailInto(e ast.Expr, out *[]Stmt, policy tailPolicy) {
	switch n := e.(type) {
	case *ast.BlockExpr:
		l.lowerBlockInto(n, out, policy)
	case *ast.IfExpr:
		then, els := l.lowerBranchTail(n.Then, policy), l.lowerBranchTail(n.Else, policy)
		*out = append(*out, &IfStmt{Cond: l.lowerExpr(n.Cond), Then: then, Else: els})
	case *ast.MatchExpr:
		arms := make([]MatchArm, len(n.Arms))
		for i, arm := range n.Arms {
			arms[i] = MatchArm{Pattern: arm.Pattern, Guard: l.lowerExprOrNil(arm.Guard), Body: l.lowerBranchTail(arm.Body, policy)}
		}
		*out = append(*out, &MatchStmt{Scrutinee: l.lowerExpr(n.Scrutinee), Arms: arms})
	default:
		*out = append(*out, wrapTail(l.lowerExpr(e), policy))
	}
}

// lowerBranchTail lowers one tail-position branch (an if/match arm's
// body) into its own flattened statement list. A nil branch (an
// absent `else`) lowers to nil.
func (l *lowerer) lowerBranchTail(e ast.Expr, policy tailPolicy) []Stmt {
	if e == nil {
		return nil
	}
	var out []Stmt
	l.lowerTailInto(e, &out, policy)
	return out
}

func wrapTail(e Expr, policy tailPolicy) Stmt {
	if policy == tailReturn {
		return &ReturnStmt{Value: e}
	}
	return &ExprStmt{X: e}
}

// lowerStmt lowers one AST statement into zero or more MIR statements
// (zero for declarations that have no runtime representation: type
// aliases and imports are compile-time-only, spec §3.6/§4.5).
func (l *lowerer) lowerStmt(s ast.Stmt) []Stmt {
	switch n := s.(type) {
	case *ast.LetStmt:
		return []Stmt{&LetStmt{Name: n.Name, Value: l.lowerExpr(n.Value)}}
	case *ast.FunctionStmt:
		return []Stmt{l.lowerFunction(n)}
	case *ast.TypeAliasStmt:
		return nil
	case *ast.ImportStmt:
		return nil
	case *ast.IfStmt:
		return []Stmt{&IfStmt{Cond: l.lowerExpr(n.Cond), Then: l.lowerStmtList(n.Then), Else: l.lowerStmtList(n.Else)}}
	case *ast.WhileStmt:
		return []Stmt{&WhileStmt{Cond: l.lowerExpr(n.Cond), Body: l.lowerStmtList(n.Body)}}
	case *ast.ForStmt:
		return []Stmt{&ForStmt{Var: n.Var, Iter: l.lowerExpr(n.Iter), Body: l.lowerStmtList(n.Body)}}
	case *ast.MatchStmt:
		arms := make([]MatchArm, len(n.Arms))
		for i, arm := range n.Arms {
			arms[i] = MatchArm{Pattern: arm.Pattern, Guard: l.lowerExprOrNil(arm.Guard), Body: l.lowerStmtList(arm.Body)}
		}
		return []Stmt{&MatchStmt{Scrutinee: l.lowerExpr(n.Scrutinee), Arms: arms}}
	case *ast.ReturnStmt:
		return []Stmt{&ReturnStmt{Value: l.lowerExprOrNil(n.Value)}}
	case *ast.BreakStmt:
		return []Stmt{&BreakStmt{}}
	case *ast.ContinueStmt:
		return []Stmt{&ContinueStmt{}}
	case *ast.ClassStmt:
		l.fail(spanOf(n), diag.CodeUnsupportedConstruct, "class definitions have no lowering: '%s' is not emitted", n.Name)
		return nil
	case *ast.ExprStmt:
		if a, ok := n.X.(*ast.AssignExpr); ok {
			return []Stmt{&AssignStmt{Name: a.Target.Name, Value: l.lowerExpr(a.Value)}}
		}
		var out []Stmt
		l.lowerTailInto(n.X, &out, tailExprStmt)
		return out
	default:
		l.fail(spanOf(s), diag.CodeUnsupportedConstruct, "unsupported statement in lowering")
		return nil
	}
}

func (l *lowerer) lowerStmtList(stmts []ast.Stmt) []Stmt {
	var out []Stmt
	for _, s := range stmts {
		out = append(out, l.lowerStmt(s)...)
	}
	return out
}

func (l *lowerer) lowerExprOrNil(e ast.Expr) Expr {
	if e == nil {
		return nil
	}
	return l.lowerExpr(e)
}
