// Package ast defines Ember's abstract syntax tree: three parallel sum
// types, Stmt, Expr, and Pattern, each node carrying a stable NodeID
// assigned during parsing and a source span (spec §3.3).
package ast

import "github.com/ember-lang/emberc/internal/lexer"

// NodeID uniquely identifies an AST node within one compilation. IDs
// are assigned monotonically by an IDGen as the parser builds nodes,
// so they also reflect construction order.
type NodeID int64

// IDGen hands out monotonically increasing NodeIDs.
type IDGen struct {
	next NodeID
}

// Next returns the next unused NodeID.
func (g *IDGen) Next() NodeID {
	g.next++
	return g.next
}

// Node is the common interface of every AST node.
type Node interface {
	ID() NodeID
	Span() lexer.Span
}

// Stmt is any statement-position node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any expression-position node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is any pattern node, used in let left-hand sides, function
// parameters, and match arms.
type Pattern interface {
	Node
	patternNode()
}

// base is embedded by every concrete node to satisfy Node without
// repeating ID/Span bookkeeping everywhere.
type base struct {
	id   NodeID
	span lexer.Span
}

func (b base) ID() NodeID      { return b.id }
func (b base) Span() lexer.Span { return b.span }

func newBase(gen *IDGen, span lexer.Span) base {
	return base{id: gen.Next(), span: span}
}

// BinaryOp enumerates arithmetic and string-concatenation operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
	// Concat is `++`, an unambiguous second spelling of the
	// String-concatenation reading `+` already carries.
	Concat
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Pow:
		return "**"
	case Concat:
		return "++"
	default:
		return "?"
	}
}

// CompareOp enumerates the comparison operators.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// LogicalOp enumerates the short-circuiting boolean operators.
type LogicalOp int

const (
	LogAnd LogicalOp = iota
	LogOr
)

func (op LogicalOp) String() string {
	if op == LogAnd {
		return "and"
	}
	return "or"
}

// BitwiseOp enumerates the bitwise operators, kept distinct from
// BinaryOp so lowering can never collapse an arithmetic and a bitwise
// operator into the same MIR variant (spec §4.5).
type BitwiseOp int

const (
	BitAnd BitwiseOp = iota
	BitOr
	BitXor
	Shl
	Shr
)

func (op BitwiseOp) String() string {
	switch op {
	case BitAnd:
		return "&"
	case BitOr:
		return "|"
	case BitXor:
		return "^"
	case Shl:
		return "<<"
	case Shr:
		return ">>"
	default:
		return "?"
	}
}

// UnaryOp enumerates prefix unary operators.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
	BitNot
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "not"
	case BitNot:
		return "~"
	default:
		return "?"
	}
}
