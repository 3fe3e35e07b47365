package resolver

import (
	"testing"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/lexer"
)

func TestShadowingLawInnerXRefersToOuter(t *testing.T) {
	gen := &ast.IDGen{}
	outerSpan := lexer.Span{Line: 1}
	innerSpan := lexer.Span{Line: 2}

	outerLet := ast.NewLetStmt(gen, outerSpan, false, "x", nil, ast.NewIntLit(gen, outerSpan, 1))
	innerUse := ast.NewIdent(gen, innerSpan, "x")
	innerLet := ast.NewLetStmt(gen, innerSpan, false, "x", nil, innerUse)
	// The inner let sits in a nested block: redeclaring x in the same
	// scope would be a duplicate definition instead of a shadow.
	inner := ast.NewExprStmt(gen, innerSpan, ast.NewBlockExpr(gen, innerSpan, []ast.Stmt{innerLet}, nil))

	result, diags := Resolve([]ast.Stmt{outerLet, inner})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	sym := result.SymbolFor(innerUse)
	if sym == nil || sym == ErrorSymbol {
		t.Fatalf("inner use of x did not resolve")
	}
	if sym.DeclaringSpan != outerLet.Span() {
		t.Fatalf("inner x should resolve to the outer declaration, not itself")
	}
}

func TestUndefinedNameIsADiagnostic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	use := ast.NewIdent(gen, span, "nope")
	stmt := ast.NewExprStmt(gen, span, use)

	result, diags := Resolve([]ast.Stmt{stmt})
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if result.SymbolFor(use) != ErrorSymbol {
		t.Fatalf("expected undefined name to map to ErrorSymbol")
	}
}

func TestMutualRecursionAmongTopLevelFunctions(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	callB := ast.NewCallExpr(gen, span, ast.NewIdent(gen, span, "b"), nil)
	fnA := ast.NewFunctionStmt(gen, span, "a", nil, nil, callB)
	callA := ast.NewCallExpr(gen, span, ast.NewIdent(gen, span, "a"), nil)
	fnB := ast.NewFunctionStmt(gen, span, "b", nil, nil, callA)

	_, diags := Resolve([]ast.Stmt{fnA, fnB})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for mutually recursive top-level functions: %v", diags)
	}
}

func TestDuplicateTopLevelDefinitionIsADiagnostic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	fn1 := ast.NewFunctionStmt(gen, span, "f", nil, nil, ast.NewIntLit(gen, span, 1))
	fn2 := ast.NewFunctionStmt(gen, span, "f", nil, nil, ast.NewIntLit(gen, span, 2))

	_, diags := Resolve([]ast.Stmt{fn1, fn2})
	if len(diags) != 1 || diags[0].Code != "RES_DUPLICATE_DEFINITION" {
		t.Fatalf("expected one RES_DUPLICATE_DEFINITION diagnostic, got %v", diags)
	}
}

func TestReturnOutsideFunctionIsADiagnostic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	ret := ast.NewReturnStmt(gen, span, nil)

	_, diags := Resolve([]ast.Stmt{ret})
	if len(diags) != 1 || diags[0].Code != "RES_INVALID_RETURN_CONTEXT" {
		t.Fatalf("expected RES_INVALID_RETURN_CONTEXT, got %v", diags)
	}
}

func TestBreakInsideWhileIsFine(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	brk := ast.NewBreakStmt(gen, span)
	loop := ast.NewWhileStmt(gen, span, ast.NewBoolLit(gen, span, true), []ast.Stmt{brk})

	_, diags := Resolve([]ast.Stmt{loop})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestAssignToLetBoundIsADiagnostic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	let := ast.NewLetStmt(gen, span, false, "x", nil, ast.NewIntLit(gen, span, 1))
	assign := ast.NewAssignExpr(gen, span, ast.NewIdent(gen, span, "x"), ast.NewIntLit(gen, span, 2))
	stmt := ast.NewExprStmt(gen, span, assign)

	_, diags := Resolve([]ast.Stmt{let, stmt})
	if len(diags) != 1 || diags[0].Code != "RES_ASSIGN_TO_IMMUTABLE" {
		t.Fatalf("expected RES_ASSIGN_TO_IMMUTABLE, got %v", diags)
	}
}

func TestAssignToVarBoundIsFine(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	v := ast.NewLetStmt(gen, span, true, "x", nil, ast.NewIntLit(gen, span, 1))
	assign := ast.NewAssignExpr(gen, span, ast.NewIdent(gen, span, "x"), ast.NewIntLit(gen, span, 2))
	stmt := ast.NewExprStmt(gen, span, assign)

	_, diags := Resolve([]ast.Stmt{v, stmt})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestDuplicateBindingWithinOnePatternIsADiagnostic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	pat := ast.NewTuplePattern(gen, span, []ast.Pattern{
		ast.NewVarPattern(gen, span, "x"),
		ast.NewVarPattern(gen, span, "x"),
	})
	arm := ast.MatchArm{Pattern: pat, Body: ast.NewIntLit(gen, span, 1)}
	match := ast.NewMatchExpr(gen, span, ast.NewIntLit(gen, span, 1), []ast.MatchArm{arm})
	stmt := ast.NewExprStmt(gen, span, match)

	_, diags := Resolve([]ast.Stmt{stmt})
	if len(diags) != 1 || diags[0].Code != "RES_DUPLICATE_DEFINITION" {
		t.Fatalf("expected one duplicate-binding diagnostic, got %v", diags)
	}
}

func TestBuiltinsResolveWithoutDeclaration(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	use := ast.NewIdent(gen, span, "print")
	stmt := ast.NewExprStmt(gen, span, ast.NewCallExpr(gen, span, use, []ast.Expr{ast.NewStringLit(gen, span, "hi", `"hi"`)}))

	result, diags := Resolve([]ast.Stmt{stmt})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	sym := result.SymbolFor(use)
	if sym == nil || sym.Kind != KindBuiltin {
		t.Fatalf("expected 'print' to resolve as a builtin")
	}
}
