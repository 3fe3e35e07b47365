package mir

import (
	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
)

// binOpTable maps ast.BinaryOp to mir.BinOp one-to-one. Kept as its
// own table per operator category (rather than a shared numeric cast
// across categories) so that two distinct source operators can never
// collapse onto the same MIR variant (spec §4.5's "fully explicit
// operator table" requirement).
var binOpTable = map[ast.BinaryOp]BinOp{
	ast.Add: Add, ast.Sub: Sub, ast.Mul: Mul, ast.Div: Div, ast.Mod: Mod, ast.Pow: Pow,
	ast.Concat: Concat,
}

var cmpOpTable = map[ast.CompareOp]CmpOp{
	ast.Eq: Eq, ast.Ne: Ne, ast.Lt: Lt, ast.Le: Le, ast.Gt: Gt, ast.Ge: Ge,
}

var logicOpTable = map[ast.LogicalOp]LogicOp{ast.LogAnd: And, ast.LogOr: Or}

var bitOpTable = map[ast.BitwiseOp]BitOp{
	ast.BitAnd: BitAnd, ast.BitOr: BitOr, ast.BitXor: BitXor, ast.Shl: Shl, ast.Shr: Shr,
}

var unOpTable = map[ast.UnaryOp]UnOp{ast.Neg: Neg, ast.Not: Not, ast.BitNot: BitNot}

// lowerExpr translates one AST expression into its MIR equivalent.
// `if`/`match`/a bare block reaching here are always in genuine
// sub-expression position (not tail position, which lowerTailInto
// handles by branching into statements instead) so they lower to
// value-shaped nodes via lowerPureValue.
func (l *lowerer) lowerExpr(e ast.Expr) Expr {
	switch n := e.(type) {
	case *ast.Ident:
		return &Ident{Name: n.Name}
	case *ast.IntLit:
		return &IntLit{Value: n.Value}
	case *ast.FloatLit:
		return &FloatLit{Value: n.Value}
	case *ast.StringLit:
		return &StringLit{Value: n.Value, Interpolated: hasInterpolation(n.Raw)}
	case *ast.CharLit:
		return &StringLit{Value: n.Value}
	case *ast.BoolLit:
		return &BoolLit{Value: n.Value}
	case *ast.NullLit:
		return &NullLit{}
	case *ast.BinaryExpr:
		return &BinaryExpr{Op: binOpTable[n.Op], Left: l.lowerExpr(n.Left), Right: l.lowerExpr(n.Right)}
	case *ast.CompareExpr:
		return &CompareExpr{Op: cmpOpTable[n.Op], Left: l.lowerExpr(n.Left), Right: l.lowerExpr(n.Right)}
	case *ast.LogicalExpr:
		return &LogicalExpr{Op: logicOpTable[n.Op], Left: l.lowerExpr(n.Left), Right: l.lowerExpr(n.Right)}
	case *ast.BitwiseExpr:
		return &BitwiseExpr{Op: bitOpTable[n.Op], Left: l.lowerExpr(n.Left), Right: l.lowerExpr(n.Right)}
	case *ast.UnaryExpr:
		return &UnaryExpr{Op: unOpTable[n.Op], Operand: l.lowerExpr(n.Operand)}
	case *ast.CallExpr:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = l.lowerExpr(a)
		}
		return &CallExpr{Callee: l.lowerExpr(n.Callee), Args: args}
	case *ast.IndexExpr:
		return &IndexExpr{Target: l.lowerExpr(n.Target), Index: l.lowerExpr(n.Index)}
	case *ast.MemberExpr:
		return &MemberExpr{Target: l.lowerExpr(n.Target), Name: n.Name}
	case *ast.PipelineExpr:
		return l.lowerPipeline(n)
	case *ast.ListExpr:
		elems := make([]Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = l.lowerExpr(el)
		}
		return &ListExpr{Elements: elems}
	case *ast.MapExpr:
		entries := make([]MapEntry, len(n.Entries))
		for i, en := range n.Entries {
			entries[i] = MapEntry{Key: l.lowerExpr(en.Key), Value: l.lowerExpr(en.Value)}
		}
		return &MapExpr{Entries: entries}
	case *ast.LambdaExpr:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = paramName(p)
		}
		return &LambdaExpr{Params: params, Body: l.lowerPureValue(n.Body)}
	case *ast.IfExpr:
		return l.lowerIfValue(n)
	case *ast.MatchExpr:
		return l.lowerMatchValue(n)
	case *ast.BlockExpr:
		return l.lowerPureValue(n)
	case *ast.AssignExpr:
		return &AssignExpr{Name: n.Target.Name, Value: l.lowerExpr(n.Value)}
	default:
		return &NullLit{}
	}
}

// lowerPureValue lowers e as a single value with no surrounding
// statements of its own. A BlockExpr only reaches here with no leading
// statements (the grammar admits a bare multi-statement block only in
// tail position, handled by lowerTailInto); one with statements cannot
// be rendered as a target-language expression and is reported.
func (l *lowerer) lowerPureValue(e ast.Expr) Expr {
	if block, ok := e.(*ast.BlockExpr); ok {
		if len(block.Statements) == 0 {
			if block.Tail == nil {
				return &NullLit{}
			}
			return l.lowerPureValue(block.Tail)
		}
		l.fail(spanOf(block), diag.CodeUnsupportedConstruct, "a block with statements cannot be used as a sub-expression value")
		return &NullLit{}
	}
	return l.lowerExpr(e)
}

// lowerIfValue lowers `if` used as a genuine sub-expression into an
// IfExpr (spec §4.5: "at expression position becomes a conditional
// expression in target syntax").
func (l *lowerer) lowerIfValue(n *ast.IfExpr) Expr {
	var els Expr = &NullLit{}
	if n.Else != nil {
		els = l.lowerPureValue(n.Else)
	}
	return &IfExpr{Cond: l.lowerExpr(n.Cond), Then: l.lowerPureValue(n.Then), Else: els}
}

func (l *lowerer) lowerMatchValue(n *ast.MatchExpr) Expr {
	arms := make([]MatchArmValue, len(n.Arms))
	for i, arm := range n.Arms {
		arms[i] = MatchArmValue{Pattern: arm.Pattern, Guard: l.lowerExprOrNil(arm.Guard), Body: l.lowerPureValue(arm.Body)}
	}
	return &MatchValueExpr{Scrutinee: l.lowerExpr(n.Scrutinee), Arms: arms}
}

// lowerPipeline desugars a pipeline chain into nested calls: `a |> f
// |> g` becomes `g(f(a))` (spec §4.5).
func (l *lowerer) lowerPipeline(n *ast.PipelineExpr) Expr {
	if len(n.Stages) == 0 {
		return &NullLit{}
	}
	acc := l.lowerExpr(n.Stages[0])
	for _, stage := range n.Stages[1:] {
		acc = &CallExpr{Callee: l.lowerExpr(stage), Args: []Expr{acc}}
	}
	return acc
}

// hasInterpolation reports whether a string literal's raw source text
// contains a `{...}` interpolation span, consulted by the emitter
// rather than re-parsed (ast.StringLit.Raw "preserves the undecoded
// source text so the emitter can detect interpolation braces without
// re-escaping").
func hasInterpolation(raw string) bool {
	depth := 0
	for _, r := range raw {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				return true
			}
		}
	}
	return false
}
