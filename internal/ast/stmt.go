package ast

import "github.com/ember-lang/emberc/internal/lexer"

func (*LetStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode() {}
func (*TypeAliasStmt) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*MatchStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ExprStmt) stmtNode()     {}
func (*ImportStmt) stmtNode()   {}
func (*ClassStmt) stmtNode()    {}

// TypeAnn is a surface-syntax type annotation, e.g. `Int`,
// `List[Int]`, or `(Int, Int) -> Int`. It is consulted by the type
// inferencer when present but is otherwise just surface sugar.
type TypeAnn interface {
	typeAnnNode()
}

// NamedTypeAnn is a type name with optional generic arguments, e.g.
// `Int`, `List[Int]`, `Map[Int]`.
type NamedTypeAnn struct {
	Name string
	Args []TypeAnn
	Span lexer.Span
}

func (*NamedTypeAnn) typeAnnNode() {}

// FuncTypeAnn is a function type annotation `(P1, P2) -> R`.
type FuncTypeAnn struct {
	Params []TypeAnn
	Return TypeAnn
	Span   lexer.Span
}

func (*FuncTypeAnn) typeAnnNode() {}

// LetStmt binds Name to Value, declared mutable when introduced by
// `var` rather than `let`.
type LetStmt struct {
	base
	Mutable bool
	Name    string
	Type    TypeAnn // nil if unannotated
	Value   Expr
}

func NewLetStmt(gen *IDGen, span lexer.Span, mutable bool, name string, typ TypeAnn, value Expr) *LetStmt {
	return &LetStmt{base: newBase(gen, span), Mutable: mutable, Name: name, Type: typ, Value: value}
}

// Param is one function or lambda parameter: a binding pattern with an
// optional type annotation.
type Param struct {
	Pattern Pattern
	Type    TypeAnn // nil if unannotated
}

// FunctionStmt is a top-level or nested named function definition.
type FunctionStmt struct {
	base
	Name       string
	Params     []Param
	ReturnType TypeAnn // nil if unannotated
	Body       Expr    // always a BlockExpr or a single expression body
}

func NewFunctionStmt(gen *IDGen, span lexer.Span, name string, params []Param, ret TypeAnn, body Expr) *FunctionStmt {
	return &FunctionStmt{base: newBase(gen, span), Name: name, Params: params, ReturnType: ret, Body: body}
}

// TypeAliasStmt is `type Name = Aliased`.
type TypeAliasStmt struct {
	base
	Name    string
	Aliased TypeAnn
}

func NewTypeAliasStmt(gen *IDGen, span lexer.Span, name string, aliased TypeAnn) *TypeAliasStmt {
	return &TypeAliasStmt{base: newBase(gen, span), Name: name, Aliased: aliased}
}

// IfStmt is the statement/block form `if cond do ... end [else do ... end]`.
type IfStmt struct {
	base
	Cond       Expr
	Then       []Stmt
	Else       []Stmt // nil if no else branch
}

func NewIfStmt(gen *IDGen, span lexer.Span, cond Expr, then, els []Stmt) *IfStmt {
	return &IfStmt{base: newBase(gen, span), Cond: cond, Then: then, Else: els}
}

// WhileStmt is `while cond do ... end`.
type WhileStmt struct {
	base
	Cond Expr
	Body []Stmt
}

func NewWhileStmt(gen *IDGen, span lexer.Span, cond Expr, body []Stmt) *WhileStmt {
	return &WhileStmt{base: newBase(gen, span), Cond: cond, Body: body}
}

// ForStmt is `for name in iter do ... end`.
type ForStmt struct {
	base
	Var  string
	Iter Expr
	Body []Stmt
}

func NewForStmt(gen *IDGen, span lexer.Span, v string, iter Expr, body []Stmt) *ForStmt {
	return &ForStmt{base: newBase(gen, span), Var: v, Iter: iter, Body: body}
}

// MatchStmt is the statement form of match: every arm's Body is a
// statement sequence rather than a single expression.
type MatchArmStmt struct {
	Pattern Pattern
	Guard   Expr
	Body    []Stmt
}

type MatchStmt struct {
	base
	Scrutinee Expr
	Arms      []MatchArmStmt
}

func NewMatchStmt(gen *IDGen, span lexer.Span, scrutinee Expr, arms []MatchArmStmt) *MatchStmt {
	return &MatchStmt{base: newBase(gen, span), Scrutinee: scrutinee, Arms: arms}
}

// ReturnStmt is `return [value]`.
type ReturnStmt struct {
	base
	Value Expr // nil for bare `return`
}

func NewReturnStmt(gen *IDGen, span lexer.Span, value Expr) *ReturnStmt {
	return &ReturnStmt{base: newBase(gen, span), Value: value}
}

// BreakStmt is `break`.
type BreakStmt struct{ base }

func NewBreakStmt(gen *IDGen, span lexer.Span) *BreakStmt {
	return &BreakStmt{base: newBase(gen, span)}
}

// ContinueStmt is `continue`.
type ContinueStmt struct{ base }

func NewContinueStmt(gen *IDGen, span lexer.Span) *ContinueStmt {
	return &ContinueStmt{base: newBase(gen, span)}
}

// ExprStmt wraps an expression used for its side effect.
type ExprStmt struct {
	base
	X Expr
}

func NewExprStmt(gen *IDGen, span lexer.Span, x Expr) *ExprStmt {
	return &ExprStmt{base: newBase(gen, span), X: x}
}

// ImportStmt is `import module` / `use module` / `from module import symbols`.
type ImportStmt struct {
	base
	Module  string
	Symbols []string // empty means "import the whole module"
}

func NewImportStmt(gen *IDGen, span lexer.Span, module string, symbols []string) *ImportStmt {
	return &ImportStmt{base: newBase(gen, span), Module: module, Symbols: symbols}
}

// ClassField is a `name: Type` member of a class body.
type ClassField struct {
	Name string
	Type TypeAnn
}

// ClassMember is either a field or a method of a class body.
type ClassMember struct {
	Field  *ClassField   // non-nil for a field member
	Method *FunctionStmt // non-nil for a method member
}

// ClassStmt is `class Name [extends Base] do ... end`.
type ClassStmt struct {
	base
	Name    string
	Extends string // empty if none
	Members []ClassMember
}

func NewClassStmt(gen *IDGen, span lexer.Span, name, extends string, members []ClassMember) *ClassStmt {
	return &ClassStmt{base: newBase(gen, span), Name: name, Extends: extends, Members: members}
}
