package types

import (
	"testing"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

func TestInferLiteralsAssignBaseTypes(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	i := ast.NewIntLit(gen, span, 1)
	f := ast.NewFloatLit(gen, span, 1.5)
	s := ast.NewStringLit(gen, span, "hi", `"hi"`)
	b := ast.NewBoolLit(gen, span, true)

	stmts := []ast.Stmt{
		ast.NewExprStmt(gen, span, i),
		ast.NewExprStmt(gen, span, f),
		ast.NewExprStmt(gen, span, s),
		ast.NewExprStmt(gen, span, b),
	}

	result, diags := Infer(stmts)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if result.TypeOf(i) != Int {
		t.Errorf("int literal: got %v", result.TypeOf(i))
	}
	if result.TypeOf(f) != Float {
		t.Errorf("float literal: got %v", result.TypeOf(f))
	}
	if result.TypeOf(s) != String {
		t.Errorf("string literal: got %v", result.TypeOf(s))
	}
	if result.TypeOf(b) != Bool {
		t.Errorf("bool literal: got %v", result.TypeOf(b))
	}
}

func TestInferLetBindingIsPolymorphic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	// let id = |x| x
	idParam := ast.NewVarPattern(gen, span, "x")
	idLambda := ast.NewLambdaExpr(gen, span, []ast.Pattern{idParam}, ast.NewIdent(gen, span, "x"))
	letID := ast.NewLetStmt(gen, span, false, "id", nil, idLambda)

	useInt := ast.NewCallExpr(gen, span, ast.NewIdent(gen, span, "id"), []ast.Expr{ast.NewIntLit(gen, span, 1)})
	useStr := ast.NewCallExpr(gen, span, ast.NewIdent(gen, span, "id"), []ast.Expr{ast.NewStringLit(gen, span, "s", `"s"`)})

	stmts := []ast.Stmt{letID, ast.NewExprStmt(gen, span, useInt), ast.NewExprStmt(gen, span, useStr)}

	result, diags := Infer(stmts)
	if len(diags) != 0 {
		t.Fatalf("expected id to be usable polymorphically, got diagnostics: %v", diags)
	}
	if result.TypeOf(useInt) != Int {
		t.Errorf("id(1): got %v, want Int", result.TypeOf(useInt))
	}
	if result.TypeOf(useStr) != String {
		t.Errorf(`id("s"): got %v, want String`, result.TypeOf(useStr))
	}
}

func TestInferIfBranchMismatchIsADiagnostic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	ifExpr := ast.NewIfExpr(gen, span, ast.NewBoolLit(gen, span, true),
		ast.NewIntLit(gen, span, 1), ast.NewStringLit(gen, span, "s", `"s"`))

	_, diags := Infer([]ast.Stmt{ast.NewExprStmt(gen, span, ifExpr)})
	if len(diags) != 1 || diags[0].Code != "TYPE_MISMATCH" {
		t.Fatalf("expected one TYPE_MISMATCH diagnostic, got %v", diags)
	}
}

func TestInferRecursiveFunctionCallsItself(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	// fn countdown(n) = countdown(n)
	param := ast.Param{Pattern: ast.NewVarPattern(gen, span, "n")}
	selfCall := ast.NewCallExpr(gen, span, ast.NewIdent(gen, span, "countdown"), []ast.Expr{ast.NewIdent(gen, span, "n")})
	fn := ast.NewFunctionStmt(gen, span, "countdown", []ast.Param{param}, nil, selfCall)

	_, diags := Infer([]ast.Stmt{fn})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for self-recursive function: %v", diags)
	}
}

func TestInferListElementsMustUnify(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	list := ast.NewListExpr(gen, span, []ast.Expr{
		ast.NewIntLit(gen, span, 1),
		ast.NewStringLit(gen, span, "nope", `"nope"`),
	})

	_, diags := Infer([]ast.Stmt{ast.NewExprStmt(gen, span, list)})
	if len(diags) != 1 || diags[0].Code != "TYPE_MISMATCH" {
		t.Fatalf("expected one TYPE_MISMATCH diagnostic, got %v", diags)
	}
}

func TestInferBuiltinRangeProducesListOfInt(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	call := ast.NewCallExpr(gen, span, ast.NewIdent(gen, span, "range"), []ast.Expr{ast.NewIntLit(gen, span, 10)})

	result, diags := Infer([]ast.Stmt{ast.NewExprStmt(gen, span, call)})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	list, ok := result.TypeOf(call).(List)
	if !ok || list.Element != Int {
		t.Fatalf("range(10): got %v, want List[Int]", result.TypeOf(call))
	}
}

func TestInferForLoopBindsElementType(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	iter := ast.NewListExpr(gen, span, []ast.Expr{ast.NewIntLit(gen, span, 1), ast.NewIntLit(gen, span, 2)})
	use := ast.NewIdent(gen, span, "x")
	body := []ast.Stmt{ast.NewExprStmt(gen, span, use)}
	loop := ast.NewForStmt(gen, span, "x", iter, body)

	result, diags := Infer([]ast.Stmt{loop})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if result.TypeOf(use) != Int {
		t.Errorf("loop variable x: got %v, want Int", result.TypeOf(use))
	}
}

func TestInferConcatRequiresStringOperandsAndYieldsString(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	concat := ast.NewBinaryExpr(gen, span, ast.Concat,
		ast.NewStringLit(gen, span, "a", `"a"`), ast.NewStringLit(gen, span, "b", `"b"`))

	result, diags := Infer([]ast.Stmt{ast.NewExprStmt(gen, span, concat)})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if result.TypeOf(concat) != String {
		t.Errorf("a ++ b: got %v, want String", result.TypeOf(concat))
	}
}

func TestInferConcatWithNonStringOperandIsADiagnostic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	concat := ast.NewBinaryExpr(gen, span, ast.Concat,
		ast.NewStringLit(gen, span, "a", `"a"`), ast.NewIntLit(gen, span, 1))

	_, diags := Infer([]ast.Stmt{ast.NewExprStmt(gen, span, concat)})
	if len(diags) != 1 || diags[0].Code != "TYPE_MISMATCH" {
		t.Fatalf("expected one TYPE_MISMATCH diagnostic, got %v", diags)
	}
}

func TestInferNonExhaustiveMatchStmtProducesNonFatalNote(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	scrutinee := ast.NewIntLit(gen, span, 1)
	arm := ast.MatchArmStmt{
		Pattern: ast.NewLiteralPattern(gen, span, ast.NewIntLit(gen, span, 1)),
		Body:    []ast.Stmt{ast.NewExprStmt(gen, span, ast.NewIntLit(gen, span, 0))},
	}
	m := ast.NewMatchStmt(gen, span, scrutinee, []ast.MatchArmStmt{arm})

	_, diags := Infer([]ast.Stmt{m})
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != diag.CodeNonExhaustive {
		t.Fatalf("got code %s, want %s", diags[0].Code, diag.CodeNonExhaustive)
	}
	if diags[0].Severity != diag.SeverityNote {
		t.Fatalf("got severity %s, want a non-fatal note", diags[0].Severity)
	}
}

func TestInferExhaustiveMatchStmtWithWildcardProducesNoNote(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	scrutinee := ast.NewIntLit(gen, span, 1)
	literalArm := ast.MatchArmStmt{
		Pattern: ast.NewLiteralPattern(gen, span, ast.NewIntLit(gen, span, 1)),
		Body:    []ast.Stmt{ast.NewExprStmt(gen, span, ast.NewIntLit(gen, span, 0))},
	}
	wildcardArm := ast.MatchArmStmt{
		Pattern: ast.NewWildcardPattern(gen, span),
		Body:    []ast.Stmt{ast.NewExprStmt(gen, span, ast.NewIntLit(gen, span, 1))},
	}
	m := ast.NewMatchStmt(gen, span, scrutinee, []ast.MatchArmStmt{literalArm, wildcardArm})

	_, diags := Infer([]ast.Stmt{m})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestInferNonExhaustiveMatchExprProducesNonFatalNote(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	scrutinee := ast.NewIntLit(gen, span, 1)
	arm := ast.MatchArm{
		Pattern: ast.NewLiteralPattern(gen, span, ast.NewIntLit(gen, span, 1)),
		Body:    ast.NewIntLit(gen, span, 0),
	}
	m := ast.NewMatchExpr(gen, span, scrutinee, []ast.MatchArm{arm})
	stmt := ast.NewExprStmt(gen, span, m)

	_, diags := Infer([]ast.Stmt{stmt})
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != diag.CodeNonExhaustive {
		t.Fatalf("got code %s, want %s", diags[0].Code, diag.CodeNonExhaustive)
	}
}
