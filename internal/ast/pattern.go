package ast

import "github.com/ember-lang/emberc/internal/lexer"

func (*WildcardPattern) patternNode() {}
func (*VarPattern) patternNode()      {}
func (*LiteralPattern) patternNode()  {}
func (*TuplePattern) patternNode()    {}
func (*ListPattern) patternNode()     {}
func (*ListConsPattern) patternNode() {}
func (*StructPattern) patternNode()   {}
func (*OrPattern) patternNode()       {}
func (*RangePattern) patternNode()    {}

// WildcardPattern is `_`; it binds nothing.
type WildcardPattern struct{ base }

func NewWildcardPattern(gen *IDGen, span lexer.Span) *WildcardPattern {
	return &WildcardPattern{base: newBase(gen, span)}
}

// VarPattern binds the scrutinee (or sub-structure) to Name.
type VarPattern struct {
	base
	Name string
}

func NewVarPattern(gen *IDGen, span lexer.Span, name string) *VarPattern {
	return &VarPattern{base: newBase(gen, span), Name: name}
}

// LiteralPattern matches an exact literal value.
type LiteralPattern struct {
	base
	Value Expr // one of IntLit, FloatLit, StringLit, CharLit, BoolLit, NullLit
}

func NewLiteralPattern(gen *IDGen, span lexer.Span, value Expr) *LiteralPattern {
	return &LiteralPattern{base: newBase(gen, span), Value: value}
}

// TuplePattern destructures a fixed-arity tuple.
type TuplePattern struct {
	base
	Elements []Pattern
}

func NewTuplePattern(gen *IDGen, span lexer.Span, elements []Pattern) *TuplePattern {
	return &TuplePattern{base: newBase(gen, span), Elements: elements}
}

// ListPattern matches a list of exactly len(Elements) items.
type ListPattern struct {
	base
	Elements []Pattern
}

func NewListPattern(gen *IDGen, span lexer.Span, elements []Pattern) *ListPattern {
	return &ListPattern{base: newBase(gen, span), Elements: elements}
}

// ListConsPattern matches a non-empty list as `head :: tail`-style,
// Head binding the first element and Tail binding the remainder.
type ListConsPattern struct {
	base
	Head, Tail Pattern
}

func NewListConsPattern(gen *IDGen, span lexer.Span, head, tail Pattern) *ListConsPattern {
	return &ListConsPattern{base: newBase(gen, span), Head: head, Tail: tail}
}

// StructPatternField is one `name: pattern` field of a struct pattern;
// Shorthand marks `name` used as sugar for `name: name`.
type StructPatternField struct {
	Name      string
	Pattern   Pattern
	Shorthand bool
}

// StructPattern destructures a named record-like value.
type StructPattern struct {
	base
	Name   string
	Fields []StructPatternField
}

func NewStructPattern(gen *IDGen, span lexer.Span, name string, fields []StructPatternField) *StructPattern {
	return &StructPattern{base: newBase(gen, span), Name: name, Fields: fields}
}

// OrPattern matches if any Alternatives member matches; left-associative
// (spec §4.2). None of its alternatives may bind variables differently
// from the others is not enforced here — alternatives are expected to
// bind disjoint or identical names, left to the resolver to validate.
type OrPattern struct {
	base
	Alternatives []Pattern
}

func NewOrPattern(gen *IDGen, span lexer.Span, alternatives []Pattern) *OrPattern {
	return &OrPattern{base: newBase(gen, span), Alternatives: alternatives}
}

// RangePattern matches a literal endpoint pair `lo..hi`.
type RangePattern struct {
	base
	Low, High Expr
}

func NewRangePattern(gen *IDGen, span lexer.Span, low, high Expr) *RangePattern {
	return &RangePattern{base: newBase(gen, span), Low: low, High: high}
}
