package emit

import (
	"fmt"
	"strings"

	"github.com/ember-lang/emberc/internal/ast"
)

// emitPattern renders a match arm's pattern as Python 3.10 structural
// pattern-matching syntax (spec §6.5's target is Python; `match`/`case`
// is the only construct in the host language shaped like Ember's own
// match).
func emitPattern(p ast.Pattern) string {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		return "_"
	case *ast.VarPattern:
		return n.Name
	case *ast.LiteralPattern:
		return literalPatternText(n.Value)
	case *ast.TuplePattern:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = emitPattern(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ast.ListPattern:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = emitPattern(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ListConsPattern:
		return fmt.Sprintf("[%s, *%s]", emitPattern(n.Head), emitPattern(n.Tail))
	case *ast.StructPattern:
		return emitStructPattern(n)
	case *ast.OrPattern:
		parts := make([]string, len(n.Alternatives))
		for i, alt := range n.Alternatives {
			parts[i] = emitPattern(alt)
		}
		return strings.Join(parts, " | ")
	case *ast.RangePattern:
		// Python's structural match has no range pattern; bind the
		// scrutinee to a capture name and let the caller fold the
		// bounds check into the case's guard (see rangeGuard).
		return rangeCaptureName
	default:
		panic(fmt.Sprintf("emit: unhandled pattern %T", p))
	}
}

const rangeCaptureName = "_ember_range_v"

// rangeGuard returns the extra bounds-check expression a RangePattern
// needs folded into its case's guard, or "" for any other pattern.
func rangeGuard(p ast.Pattern) string {
	rp, ok := p.(*ast.RangePattern)
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s <= %s <= %s)", literalPatternText(rp.Low), rangeCaptureName, literalPatternText(rp.High))
}

func emitStructPattern(n *ast.StructPattern) string {
	fields := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		if f.Shorthand {
			fields[i] = fmt.Sprintf("%s=%s", f.Name, f.Name)
			continue
		}
		fields[i] = fmt.Sprintf("%s=%s", f.Name, emitPattern(f.Pattern))
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(fields, ", "))
}

// literalPatternText renders the literal expression a LiteralPattern
// or RangePattern endpoint holds, independent of the mir layer (the
// AST node is used directly in pattern position, never lowered).
func literalPatternText(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("%d", n.Value)
	case *ast.FloatLit:
		return fmt.Sprintf("%g", n.Value)
	case *ast.StringLit:
		return "\"" + escapeString(n.Value) + "\""
	case *ast.CharLit:
		return "\"" + escapeString(n.Value) + "\""
	case *ast.BoolLit:
		if n.Value {
			return "True"
		}
		return "False"
	case *ast.NullLit:
		return "None"
	default:
		panic(fmt.Sprintf("emit: unhandled literal pattern value %T", e))
	}
}

// patternTest renders a standalone boolean test for pattern p against
// a scrutinee already bound to a Python expression text — used only
// when a `match` appears in sub-expression (value) position, where
// Python's case syntax itself isn't available (see
// bestEffortMatchValue). Binding patterns (wildcard, variable) always
// match; a bound VarPattern's name is not made available to the arm's
// body in this fallback, a known limitation of reducing a structural
// match to a ternary chain.
func patternTest(scrutinee string, p ast.Pattern) (test string, unconditional bool) {
	switch n := p.(type) {
	case *ast.WildcardPattern, *ast.VarPattern:
		return "True", true
	case *ast.LiteralPattern:
		return fmt.Sprintf("(%s == %s)", scrutinee, literalPatternText(n.Value)), false
	case *ast.RangePattern:
		return fmt.Sprintf("(%s <= %s <= %s)", literalPatternText(n.Low), scrutinee, literalPatternText(n.High)), false
	case *ast.OrPattern:
		parts := make([]string, len(n.Alternatives))
		allUnconditional := true
		for i, alt := range n.Alternatives {
			t, u := patternTest(scrutinee, alt)
			parts[i] = t
			allUnconditional = allUnconditional && u
		}
		return "(" + strings.Join(parts, " or ") + ")", allUnconditional
	case *ast.ListPattern:
		return fmt.Sprintf("(isinstance(%s, list) and len(%s) == %d)", scrutinee, scrutinee, len(n.Elements)), false
	case *ast.TuplePattern:
		return fmt.Sprintf("(isinstance(%s, tuple) and len(%s) == %d)", scrutinee, scrutinee, len(n.Elements)), false
	default:
		// ListConsPattern and StructPattern have no cheap standalone
		// equality test in value position; treat as unconditional so
		// the chain still terminates rather than reporting a lowering
		// failure this late.
		return "True", true
	}
}
