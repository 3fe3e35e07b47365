package resolver

import (
	"fmt"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
	"github.com/samber/lo"
)

// ErrorSymbol marks an identifier use that failed to resolve, so later
// stages can continue without cascading further diagnostics from the
// same root cause (spec §4.3 "Uses").
var ErrorSymbol = &Symbol{Name: "<error>", Kind: KindVariable}

// Result is the resolver's output artefact: a per-NodeId attribution
// of every identifier use (and pattern binding) to its Symbol.
type Result struct {
	Uses map[ast.NodeID]*Symbol
}

// SymbolFor returns the symbol attached to n, if any.
func (r *Result) SymbolFor(n ast.Node) *Symbol { return r.Uses[n.ID()] }

// Resolver performs the two-phase walk described in spec §4.3.
type Resolver struct {
	scopes     *ScopeStack
	bag        *diag.Bag
	uses       map[ast.NodeID]*Symbol
	atTopLevel bool
}

// New creates a Resolver with a fresh outermost scope pre-populated
// with built-ins.
func New() *Resolver {
	r := &Resolver{
		scopes:     NewScopeStack(),
		bag:        &diag.Bag{},
		uses:       make(map[ast.NodeID]*Symbol),
		atTopLevel: true,
	}
	populateBuiltins(r.scopes.top)
	return r
}

// Resolve runs both passes over a top-level statement vector and
// returns the attribution result together with accumulated
// diagnostics. Never panics: every failure is a recorded diagnostic.
func Resolve(stmts []ast.Stmt) (*Result, []diag.Diagnostic) {
	r := New()
	r.declarationPass(stmts)
	for _, s := range stmts {
		r.resolveStmt(s)
	}
	return &Result{Uses: r.uses}, r.bag.All()
}

func toSpan(s lexer.Span) diag.Span {
	return diag.Span{Filename: s.Filename, Line: s.Line, Column: s.Column, Start: s.Start, End: s.End}
}

// declarationPass inserts top-level function, type-alias, and class
// names before any body is walked, admitting mutual recursion among
// top-level functions (spec §4.3 step 1).
func (r *Resolver) declarationPass(stmts []ast.Stmt) {
	declarable := lo.Filter(stmts, func(s ast.Stmt, _ int) bool {
		switch s.(type) {
		case *ast.FunctionStmt, *ast.TypeAliasStmt, *ast.ClassStmt:
			return true
		default:
			return false
		}
	})
	lo.ForEach(declarable, func(s ast.Stmt, _ int) {
		switch n := s.(type) {
		case *ast.FunctionStmt:
			r.declare(n.Name, &Symbol{Name: n.Name, Kind: KindFunction, Arity: len(n.Params), DeclaringSpan: n.Span()}, n.Span())
		case *ast.TypeAliasStmt:
			r.declare(n.Name, &Symbol{Name: n.Name, Kind: KindType, DeclaringSpan: n.Span()}, n.Span())
		case *ast.ClassStmt:
			r.declare(n.Name, &Symbol{Name: n.Name, Kind: KindType, DeclaringSpan: n.Span()}, n.Span())
		}
	})
}

// declare binds name in the current scope, reporting a
// duplicate-definition diagnostic if it was already bound in this
// exact scope (shadowing an outer scope is fine and is not this path).
func (r *Resolver) declare(name string, sym *Symbol, span lexer.Span) {
	if prev := r.scopes.Declare(name, sym); prev != nil {
		r.bag.Add(diag.New(diag.StageResolver, diag.CodeDuplicateDefinition, toSpan(span),
			fmt.Sprintf("'%s' is already defined in this scope", name)))
	}
}

// use resolves name, recording the attribution (or ErrorSymbol plus a
// diagnostic) against node.
func (r *Resolver) use(node ast.Node, name string) *Symbol {
	sym := r.scopes.Lookup(name)
	if sym == nil {
		r.bag.Add(diag.New(diag.StageResolver, diag.CodeUndefinedName, toSpan(node.Span()),
			fmt.Sprintf("undefined name '%s'", name)))
		r.uses[node.ID()] = ErrorSymbol
		return ErrorSymbol
	}
	r.uses[node.ID()] = sym
	return sym
}
