// Package emit walks a lowered mir.Program and renders it as Python
// source text (spec §4.5 "Emission", §6.5 "Emitted program format").
// Emission never fails with a diagnostic of its own: anything emission
// cannot represent was already rejected during lowering, except for
// the handful of match-as-value shapes handled by bestEffortMatchValue
// below.
package emit

import (
	"fmt"
	"strings"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/mir"
)

const defaultBanner = "# Generated by emberc. Do not edit by hand.\n"

const defaultIndentWidth = 4

// Options carries the emitter's formatting settings. Emit always
// renders with DefaultOptions; other values reach the emitter only
// through a direct EmitWithOptions call.
type Options struct {
	// IndentWidth is the number of spaces per indentation level.
	// Zero or negative falls back to defaultIndentWidth.
	IndentWidth int
	// Banner overrides the generated-file header comment. Empty
	// falls back to defaultBanner.
	Banner string
}

// DefaultOptions is what Emit renders with.
func DefaultOptions() Options {
	return Options{IndentWidth: defaultIndentWidth, Banner: defaultBanner}
}

// emitter holds the options a single Emit/EmitWithOptions call renders
// with. It carries no other state — emission is still a pure function
// of (prog, Options), matching spec §5.
type emitter struct {
	indentUnit string
	banner     string
}

// Emit renders prog as a complete Python module using DefaultOptions.
func Emit(prog *mir.Program) string {
	return EmitWithOptions(prog, DefaultOptions())
}

// EmitWithOptions renders prog as a complete Python module: the
// generator banner, every lowered function definition in order, then
// (only if the source program had top-level statements) a synthesised
// `main` that runs them, closed by an `if __name__ == "__main__"` guard.
func EmitWithOptions(prog *mir.Program, opts Options) string {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = defaultIndentWidth
	}
	if opts.Banner == "" {
		opts.Banner = defaultBanner
	}
	e := &emitter{indentUnit: strings.Repeat(" ", opts.IndentWidth), banner: opts.Banner}

	var b strings.Builder
	b.WriteString(e.banner)

	for _, fn := range prog.Functions {
		b.WriteString("\n")
		e.emitFunction(&b, fn)
	}

	if len(prog.TopLevel) > 0 {
		b.WriteString("\n")
		e.emitDef(&b, "main", nil, prog.TopLevel, 0)
		b.WriteString("\n\nif __name__ == \"__main__\":\n")
		b.WriteString(e.indentUnit + "main()\n")
	}

	return b.String()
}

func (e *emitter) emitFunction(b *strings.Builder, fn *mir.FunctionDef) {
	e.emitDef(b, fn.Name, fn.Params, fn.Body, 0)
}

func (e *emitter) emitDef(b *strings.Builder, name string, params []string, body []mir.Stmt, indent int) {
	e.writeIndent(b, indent)
	fmt.Fprintf(b, "def %s(%s):\n", name, strings.Join(params, ", "))
	e.emitBlock(b, body, indent+1)
}

func (e *emitter) writeIndent(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat(e.indentUnit, indent))
}

// emitBlock renders a statement list, falling back to `pass` when it
// is empty — Python has no empty suite.
func (e *emitter) emitBlock(b *strings.Builder, stmts []mir.Stmt, indent int) {
	if len(stmts) == 0 {
		e.writeIndent(b, indent)
		b.WriteString("pass\n")
		return
	}
	for _, s := range stmts {
		e.emitStmt(b, s, indent)
	}
}

func (e *emitter) emitStmt(b *strings.Builder, s mir.Stmt, indent int) {
	switch n := s.(type) {
	case *mir.LetStmt:
		e.writeIndent(b, indent)
		fmt.Fprintf(b, "%s = %s\n", n.Name, emitExpr(n.Value))
	case *mir.AssignStmt:
		e.writeIndent(b, indent)
		fmt.Fprintf(b, "%s = %s\n", n.Name, emitExpr(n.Value))
	case *mir.IfStmt:
		e.writeIndent(b, indent)
		fmt.Fprintf(b, "if %s:\n", emitExpr(n.Cond))
		e.emitBlock(b, n.Then, indent+1)
		if n.Else != nil {
			e.writeIndent(b, indent)
			b.WriteString("else:\n")
			e.emitBlock(b, n.Else, indent+1)
		}
	case *mir.WhileStmt:
		e.writeIndent(b, indent)
		fmt.Fprintf(b, "while %s:\n", emitExpr(n.Cond))
		e.emitBlock(b, n.Body, indent+1)
	case *mir.ForStmt:
		e.writeIndent(b, indent)
		fmt.Fprintf(b, "for %s in %s:\n", n.Var, emitExpr(n.Iter))
		e.emitBlock(b, n.Body, indent+1)
	case *mir.MatchStmt:
		e.emitMatchStmt(b, n, indent)
	case *mir.ReturnStmt:
		e.writeIndent(b, indent)
		if n.Value == nil {
			b.WriteString("return\n")
		} else {
			fmt.Fprintf(b, "return %s\n", emitExpr(n.Value))
		}
	case *mir.BreakStmt:
		e.writeIndent(b, indent)
		b.WriteString("break\n")
	case *mir.ContinueStmt:
		e.writeIndent(b, indent)
		b.WriteString("continue\n")
	case *mir.ExprStmt:
		e.writeIndent(b, indent)
		fmt.Fprintf(b, "%s\n", emitExpr(n.X))
	case *mir.FunctionDef:
		e.emitDef(b, n.Name, n.Params, n.Body, indent)
	default:
		panic(fmt.Sprintf("emit: unhandled statement %T", s))
	}
}

// emitMatchStmt renders Python 3.10 structural pattern matching. An
// unmatched scrutinee simply falls out of the statement doing nothing,
// matching `match`'s own non-exhaustive semantics (the inferencer's
// non-exhaustive-match note is advisory and does not change emission).
func (e *emitter) emitMatchStmt(b *strings.Builder, n *mir.MatchStmt, indent int) {
	e.writeIndent(b, indent)
	fmt.Fprintf(b, "match %s:\n", emitExpr(n.Scrutinee))
	for _, arm := range n.Arms {
		e.writeIndent(b, indent+1)
		guard := combinedGuard(arm.Pattern, arm.Guard)
		if guard != "" {
			fmt.Fprintf(b, "case %s if %s:\n", emitPattern(arm.Pattern), guard)
		} else {
			fmt.Fprintf(b, "case %s:\n", emitPattern(arm.Pattern))
		}
		e.emitBlock(b, arm.Body, indent+2)
	}
}

// combinedGuard folds a RangePattern's synthesised bounds check
// together with the arm's own source guard (if any), returning ""
// when the arm needs no `if` clause at all.
func combinedGuard(p ast.Pattern, guard mir.Expr) string {
	rg := rangeGuard(p)
	switch {
	case rg != "" && guard != nil:
		return fmt.Sprintf("(%s and %s)", rg, emitExpr(guard))
	case rg != "":
		return rg
	case guard != nil:
		return emitExpr(guard)
	default:
		return ""
	}
}

func emitExpr(e mir.Expr) string {
	switch n := e.(type) {
	case *mir.Ident:
		return n.Name
	case *mir.IntLit:
		return fmt.Sprintf("%d", n.Value)
	case *mir.FloatLit:
		return fmt.Sprintf("%g", n.Value)
	case *mir.StringLit:
		return emitStringLit(n)
	case *mir.BoolLit:
		if n.Value {
			return "True"
		}
		return "False"
	case *mir.NullLit:
		return "None"
	case *mir.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", emitExpr(n.Left), n.Op, emitExpr(n.Right))
	case *mir.CompareExpr:
		return fmt.Sprintf("(%s %s %s)", emitExpr(n.Left), n.Op, emitExpr(n.Right))
	case *mir.LogicalExpr:
		return fmt.Sprintf("(%s %s %s)", emitExpr(n.Left), logicOpPy(n.Op), emitExpr(n.Right))
	case *mir.BitwiseExpr:
		return fmt.Sprintf("(%s %s %s)", emitExpr(n.Left), n.Op, emitExpr(n.Right))
	case *mir.UnaryExpr:
		return fmt.Sprintf("(%s%s)", unOpPy(n.Op), emitExpr(n.Operand))
	case *mir.CallExpr:
		return emitCall(n)
	case *mir.IndexExpr:
		return fmt.Sprintf("%s[%s]", emitExpr(n.Target), emitExpr(n.Index))
	case *mir.MemberExpr:
		return fmt.Sprintf("%s.%s", emitExpr(n.Target), n.Name)
	case *mir.ListExpr:
		elems := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = emitExpr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *mir.MapExpr:
		entries := make([]string, len(n.Entries))
		for i, en := range n.Entries {
			entries[i] = fmt.Sprintf("%s: %s", emitExpr(en.Key), emitExpr(en.Value))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case *mir.LambdaExpr:
		return emitLambda(n)
	case *mir.IfExpr:
		return fmt.Sprintf("(%s if %s else %s)", emitExpr(n.Then), emitExpr(n.Cond), emitExpr(n.Else))
	case *mir.MatchValueExpr:
		return bestEffortMatchValue(n)
	case *mir.AssignExpr:
		return fmt.Sprintf("(%s := %s)", n.Name, emitExpr(n.Value))
	default:
		panic(fmt.Sprintf("emit: unhandled expression %T", e))
	}
}

// logicOpPy and unOpPy diverge from mir.LogicOp/UnOp's own String()
// (which renders the source spelling, used by mir.PrettyPrint) because
// Python's boolean keywords happen to already match the source's
// (`and`/`or`/`not`) — kept as separate functions rather than reusing
// String() so a future source-keyword change can't silently change
// emitted Python too.
func logicOpPy(op mir.LogicOp) string {
	if op == mir.And {
		return "and"
	}
	return "or"
}

func unOpPy(op mir.UnOp) string {
	switch op {
	case mir.Neg:
		return "-"
	case mir.Not:
		return "not "
	case mir.BitNot:
		return "~"
	default:
		panic("emit: unhandled unary operator")
	}
}

// builtinCallees maps Ember built-ins (spec §6.3) with a direct Python
// namesake to that name. `range`, `type`, and `println` need their own
// rewrite (a wrapping call, an attribute access, a renamed call) and
// are handled directly in emitCall instead of through this table.
var builtinCallees = map[string]string{
	"print": "print",
	"len":   "len",
	"input": "input",
	"str":   "str",
	"int":   "int",
	"float": "float",
	"bool":  "bool",
	"abs":   "abs",
	"min":   "min",
	"max":   "max",
}

func emitCall(n *mir.CallExpr) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = emitExpr(a)
	}
	joined := strings.Join(args, ", ")

	if callee, ok := n.Callee.(*mir.Ident); ok {
		switch callee.Name {
		case "range":
			return fmt.Sprintf("list(range(%s))", joined)
		case "type":
			return fmt.Sprintf("type(%s).__name__", joined)
		case "println":
			return fmt.Sprintf("print(%s)", joined)
		}
		if py, ok := builtinCallees[callee.Name]; ok {
			return fmt.Sprintf("%s(%s)", py, joined)
		}
	}
	return fmt.Sprintf("%s(%s)", emitExpr(n.Callee), joined)
}

func emitLambda(n *mir.LambdaExpr) string {
	return fmt.Sprintf("(lambda %s: %s)", strings.Join(n.Params, ", "), emitExpr(n.Body))
}

// bestEffortMatchValue renders a `match` used as a genuine sub-
// expression. Python's `match` is a statement, with no expression
// form; when every arm is a literal, wildcard, or bound-variable
// pattern with no guard, the match reduces to a left-to-right chain of
// ternaries testing equality against the scrutinee. Anything richer
// (a guard, a structural pattern) is linearised the same way the
// pattern's own structural test would be applied at statement
// position, to the extent these patterns support standalone equality
// testing.
func bestEffortMatchValue(n *mir.MatchValueExpr) string {
	scrutinee := emitExpr(n.Scrutinee)
	return chainMatchArms(scrutinee, n.Arms)
}

func chainMatchArms(scrutinee string, arms []mir.MatchArmValue) string {
	if len(arms) == 0 {
		return "None"
	}
	arm := arms[0]
	rest := chainMatchArms(scrutinee, arms[1:])
	test, unconditional := patternTest(scrutinee, arm.Pattern)
	if arm.Guard != nil {
		test = fmt.Sprintf("(%s and %s)", test, emitExpr(arm.Guard))
		unconditional = false
	}
	if unconditional && len(arms) == 1 {
		return emitExpr(arm.Body)
	}
	return fmt.Sprintf("(%s if %s else %s)", emitExpr(arm.Body), test, rest)
}

func emitStringLit(n *mir.StringLit) string {
	escaped := escapeString(n.Value)
	if n.Interpolated {
		return "f\"" + escaped + "\""
	}
	return "\"" + escaped + "\""
}

func escapeString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}
