package ast

import (
	"testing"

	"github.com/ember-lang/emberc/internal/lexer"
)

func TestIDGenIsMonotonic(t *testing.T) {
	gen := &IDGen{}
	span := lexer.Span{}
	a := NewIdent(gen, span, "a")
	b := NewIdent(gen, span, "b")
	if b.ID() <= a.ID() {
		t.Fatalf("expected b.ID() > a.ID(), got %d <= %d", b.ID(), a.ID())
	}
}

func TestBinaryExprHoldsOperandsAndOp(t *testing.T) {
	gen := &IDGen{}
	span := lexer.Span{}
	left := NewIntLit(gen, span, 1)
	right := NewIntLit(gen, span, 2)
	bin := NewBinaryExpr(gen, span, Mul, left, right)
	if bin.Op != Mul {
		t.Fatalf("got op %v, want Mul", bin.Op)
	}
	if bin.Left != Expr(left) || bin.Right != Expr(right) {
		t.Fatalf("operands not preserved")
	}
}

func TestWalkVisitsNestedExpressions(t *testing.T) {
	gen := &IDGen{}
	span := lexer.Span{}
	inner := NewBinaryExpr(gen, span, Add, NewIntLit(gen, span, 1), NewIntLit(gen, span, 2))
	call := NewCallExpr(gen, span, NewIdent(gen, span, "f"), []Expr{inner})
	stmt := NewExprStmt(gen, span, call)

	var visited int
	WalkStmt(stmt, func(n Node) bool {
		visited++
		return true
	})
	// stmt, call, ident, binary, two int lits = 6
	if visited != 6 {
		t.Fatalf("got %d visited nodes, want 6", visited)
	}
}

func TestOperatorStringers(t *testing.T) {
	cases := []struct {
		op   interface{ String() string }
		want string
	}{
		{Add, "+"}, {Pow, "**"}, {Eq, "=="}, {Ge, ">="},
		{LogAnd, "and"}, {LogOr, "or"}, {BitXor, "^"}, {Shl, "<<"},
		{Neg, "-"}, {Not, "not"},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}
