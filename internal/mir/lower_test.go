package mir

import (
	"testing"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

func ident(gen *ast.IDGen, span lexer.Span, name string) *ast.Ident {
	return ast.NewIdent(gen, span, name)
}

func TestLowerFunctionFlattensBlockAndPromotesTailToReturn(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	let := ast.NewLetStmt(gen, span, false, "x", nil, ast.NewIntLit(gen, span, 1))
	body := ast.NewBlockExpr(gen, span, []ast.Stmt{let}, ident(gen, span, "x"))
	fn := ast.NewFunctionStmt(gen, span, "f", nil, nil, body)

	prog, diags := Lower([]ast.Stmt{fn})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(prog.Functions))
	}
	got := prog.Functions[0]
	if len(got.Body) != 2 {
		t.Fatalf("got %d body statements, want 2 (let, return): %#v", len(got.Body), got.Body)
	}
	if _, ok := got.Body[0].(*LetStmt); !ok {
		t.Fatalf("first statement is %T, want *LetStmt", got.Body[0])
	}
	ret, ok := got.Body[1].(*ReturnStmt)
	if !ok {
		t.Fatalf("second statement is %T, want *ReturnStmt", got.Body[1])
	}
	if id, ok := ret.Value.(*Ident); !ok || id.Name != "x" {
		t.Fatalf("return value is %#v, want Ident{x}", ret.Value)
	}
}

func TestLowerSingleExpressionFunctionBodyWrapsInReturn(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	fn := ast.NewFunctionStmt(gen, span, "one", nil, nil, ast.NewIntLit(gen, span, 1))

	prog, diags := Lower([]ast.Stmt{fn})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(prog.Functions[0].Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Functions[0].Body))
	}
	if _, ok := prog.Functions[0].Body[0].(*ReturnStmt); !ok {
		t.Fatalf("body statement is %T, want *ReturnStmt", prog.Functions[0].Body[0])
	}
}

func TestLowerIfAtTailPositionBranchesIntoReturnStatements(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	ifExpr := ast.NewIfExpr(gen, span,
		ident(gen, span, "cond"),
		ast.NewIntLit(gen, span, 1),
		ast.NewIntLit(gen, span, 2),
	)
	fn := ast.NewFunctionStmt(gen, span, "pick", nil, nil, ifExpr)

	prog, diags := Lower([]ast.Stmt{fn})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	body := prog.Functions[0].Body
	if len(body) != 1 {
		t.Fatalf("got %d statements, want 1", len(body))
	}
	ifStmt, ok := body[0].(*IfStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *IfStmt", body[0])
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("branches not flattened to one statement each: then=%d else=%d", len(ifStmt.Then), len(ifStmt.Else))
	}
	if _, ok := ifStmt.Then[0].(*ReturnStmt); !ok {
		t.Fatalf("then-branch tail is %T, want *ReturnStmt", ifStmt.Then[0])
	}
}

func TestLowerIfAsSubExpressionBecomesIfExprNode(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	ifExpr := ast.NewIfExpr(gen, span, ident(gen, span, "cond"), ast.NewIntLit(gen, span, 1), ast.NewIntLit(gen, span, 2))
	call := ast.NewCallExpr(gen, span, ident(gen, span, "print"), []ast.Expr{ifExpr})
	stmt := ast.NewExprStmt(gen, span, call)

	prog, diags := Lower([]ast.Stmt{stmt})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(prog.TopLevel) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(prog.TopLevel))
	}
	es, ok := prog.TopLevel[0].(*ExprStmt)
	if !ok {
		t.Fatalf("top-level statement is %T, want *ExprStmt", prog.TopLevel[0])
	}
	callExpr, ok := es.X.(*CallExpr)
	if !ok {
		t.Fatalf("expression is %T, want *CallExpr", es.X)
	}
	if _, ok := callExpr.Args[0].(*IfExpr); !ok {
		t.Fatalf("call argument is %T, want *IfExpr", callExpr.Args[0])
	}
}

func TestLowerPipelineDesugarsToNestedCalls(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	pipe := ast.NewPipelineExpr(gen, span, []ast.Expr{
		ident(gen, span, "x"),
		ident(gen, span, "f"),
		ident(gen, span, "g"),
	})
	stmt := ast.NewExprStmt(gen, span, pipe)

	prog, diags := Lower([]ast.Stmt{stmt})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	es := prog.TopLevel[0].(*ExprStmt)
	outer, ok := es.X.(*CallExpr)
	if !ok {
		t.Fatalf("top expression is %T, want *CallExpr", es.X)
	}
	if callee, ok := outer.Callee.(*Ident); !ok || callee.Name != "g" {
		t.Fatalf("outermost call callee is %#v, want Ident{g}", outer.Callee)
	}
	inner, ok := outer.Args[0].(*CallExpr)
	if !ok {
		t.Fatalf("inner argument is %T, want *CallExpr", outer.Args[0])
	}
	if callee, ok := inner.Callee.(*Ident); !ok || callee.Name != "f" {
		t.Fatalf("inner call callee is %#v, want Ident{f}", inner.Callee)
	}
	if x, ok := inner.Args[0].(*Ident); !ok || x.Name != "x" {
		t.Fatalf("innermost argument is %#v, want Ident{x}", inner.Args[0])
	}
}

func TestLowerMatchStatementPreservesArmsAndGuards(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	arm1 := ast.MatchArmStmt{
		Pattern: ast.NewLiteralPattern(gen, span, ast.NewIntLit(gen, span, 1)),
		Body:    []ast.Stmt{ast.NewExprStmt(gen, span, ident(gen, span, "one"))},
	}
	arm2 := ast.MatchArmStmt{
		Pattern: ast.NewWildcardPattern(gen, span),
		Guard:   ident(gen, span, "flag"),
		Body:    []ast.Stmt{ast.NewExprStmt(gen, span, ident(gen, span, "other"))},
	}
	match := ast.NewMatchStmt(gen, span, ident(gen, span, "n"), []ast.MatchArmStmt{arm1, arm2})

	prog, diags := Lower([]ast.Stmt{match})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	ms, ok := prog.TopLevel[0].(*MatchStmt)
	if !ok {
		t.Fatalf("top-level statement is %T, want *MatchStmt", prog.TopLevel[0])
	}
	if len(ms.Arms) != 2 {
		t.Fatalf("got %d arms, want 2", len(ms.Arms))
	}
	if ms.Arms[1].Guard == nil {
		t.Fatalf("second arm's guard was dropped during lowering")
	}
}

func TestLowerClassStatementProducesUnsupportedConstructDiagnostic(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	class := ast.NewClassStmt(gen, span, "Point", "", nil)

	prog, diags := Lower([]ast.Stmt{class})
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != diag.CodeUnsupportedConstruct {
		t.Fatalf("diagnostic code is %s, want %s", diags[0].Code, diag.CodeUnsupportedConstruct)
	}
	if len(prog.TopLevel) != 0 {
		t.Fatalf("class statement should not produce a MIR statement")
	}
}

func TestLowerTypeAliasAndImportAreSilentlyDropped(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}
	alias := ast.NewTypeAliasStmt(gen, span, "Pair", &ast.NamedTypeAnn{Name: "Int"})
	imp := ast.NewImportStmt(gen, span, "collections", nil)

	prog, diags := Lower([]ast.Stmt{alias, imp})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(prog.TopLevel) != 0 {
		t.Fatalf("got %d top-level statements, want 0", len(prog.TopLevel))
	}
}

func TestLowerBlockWithStatementsAsSubExpressionIsUnsupported(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	inner := ast.NewBlockExpr(gen, span,
		[]ast.Stmt{ast.NewLetStmt(gen, span, false, "y", nil, ast.NewIntLit(gen, span, 1))},
		ident(gen, span, "y"),
	)
	call := ast.NewCallExpr(gen, span, ident(gen, span, "print"), []ast.Expr{inner})
	stmt := ast.NewExprStmt(gen, span, call)

	_, diags := Lower([]ast.Stmt{stmt})
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != diag.CodeUnsupportedConstruct {
		t.Fatalf("diagnostic code is %s, want %s", diags[0].Code, diag.CodeUnsupportedConstruct)
	}
}

func TestLowerLambdaReducesBodyToASingleValue(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	lam := ast.NewLambdaExpr(gen, span,
		[]ast.Pattern{ast.NewVarPattern(gen, span, "x")},
		ast.NewBinaryExpr(gen, span, ast.Add, ident(gen, span, "x"), ast.NewIntLit(gen, span, 1)),
	)
	stmt := ast.NewExprStmt(gen, span, lam)

	prog, diags := Lower([]ast.Stmt{stmt})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	es := prog.TopLevel[0].(*ExprStmt)
	got, ok := es.X.(*LambdaExpr)
	if !ok {
		t.Fatalf("top expression is %T, want *LambdaExpr", es.X)
	}
	if _, ok := got.Body.(*BinaryExpr); !ok {
		t.Fatalf("lambda body is %T, want *BinaryExpr", got.Body)
	}
}

func TestLowerLambdaWithStatementBodyIsUnsupported(t *testing.T) {
	gen := &ast.IDGen{}
	span := lexer.Span{}

	block := ast.NewBlockExpr(gen, span,
		[]ast.Stmt{ast.NewLetStmt(gen, span, false, "y", nil, ast.NewIntLit(gen, span, 1))},
		ident(gen, span, "y"),
	)
	lam := ast.NewLambdaExpr(gen, span, []ast.Pattern{ast.NewVarPattern(gen, span, "x")}, block)
	stmt := ast.NewExprStmt(gen, span, lam)

	_, diags := Lower([]ast.Stmt{stmt})
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != diag.CodeUnsupportedConstruct {
		t.Fatalf("diagnostic code is %s, want %s", diags[0].Code, diag.CodeUnsupportedConstruct)
	}
}

func TestOperatorTablesAreOneToOneAndFullyCovered(t *testing.T) {
	if len(binOpTable) != 7 {
		t.Fatalf("binOpTable has %d entries, want 7", len(binOpTable))
	}
	if len(cmpOpTable) != 6 {
		t.Fatalf("cmpOpTable has %d entries, want 6", len(cmpOpTable))
	}
	if len(logicOpTable) != 2 {
		t.Fatalf("logicOpTable has %d entries, want 2", len(logicOpTable))
	}
	if len(bitOpTable) != 5 {
		t.Fatalf("bitOpTable has %d entries, want 5", len(bitOpTable))
	}
	if len(unOpTable) != 3 {
		t.Fatalf("unOpTable has %d entries, want 3", len(unOpTable))
	}
	seen := make(map[BinOp]bool, len(binOpTable))
	for _, v := range binOpTable {
		if seen[v] {
			t.Fatalf("BinOp value %v reused by two distinct ast.BinaryOp operators", v)
		}
		seen[v] = true
	}
}
