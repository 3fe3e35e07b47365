package mir

import (
	"fmt"
	"strings"
)

// PrettyPrint renders a Program as an indented, debugging-oriented
// textual form; it has no bearing on Python emission, which lives in
// the emit package.
func (p *Program) PrettyPrint() string {
	var b strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		fn.prettyPrint(&b, 0)
	}
	if len(p.TopLevel) > 0 {
		if len(p.Functions) > 0 {
			b.WriteString("\n")
		}
		b.WriteString("main:\n")
		prettyStmts(&b, p.TopLevel, 1)
	}
	return b.String()
}

func (fn *FunctionDef) prettyPrint(b *strings.Builder, indent int) {
	fmt.Fprintf(b, "fn %s(%s):\n", fn.Name, strings.Join(fn.Params, ", "))
	prettyStmts(b, fn.Body, indent+1)
}

func pad(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
}

func prettyStmts(b *strings.Builder, stmts []Stmt, indent int) {
	for _, s := range stmts {
		prettyStmt(b, s, indent)
	}
}

func prettyStmt(b *strings.Builder, s Stmt, indent int) {
	pad(b, indent)
	switch n := s.(type) {
	case *LetStmt:
		fmt.Fprintf(b, "let %s = %s\n", n.Name, prettyExpr(n.Value))
	case *AssignStmt:
		fmt.Fprintf(b, "%s = %s\n", n.Name, prettyExpr(n.Value))
	case *IfStmt:
		fmt.Fprintf(b, "if %s:\n", prettyExpr(n.Cond))
		prettyStmts(b, n.Then, indent+1)
		if n.Else != nil {
			pad(b, indent)
			b.WriteString("else:\n")
			prettyStmts(b, n.Else, indent+1)
		}
	case *WhileStmt:
		fmt.Fprintf(b, "while %s:\n", prettyExpr(n.Cond))
		prettyStmts(b, n.Body, indent+1)
	case *ForStmt:
		fmt.Fprintf(b, "for %s in %s:\n", n.Var, prettyExpr(n.Iter))
		prettyStmts(b, n.Body, indent+1)
	case *MatchStmt:
		fmt.Fprintf(b, "match %s:\n", prettyExpr(n.Scrutinee))
		for _, arm := range n.Arms {
			pad(b, indent+1)
			b.WriteString("case =>\n")
			prettyStmts(b, arm.Body, indent+2)
		}
	case *ReturnStmt:
		if n.Value == nil {
			b.WriteString("return\n")
		} else {
			fmt.Fprintf(b, "return %s\n", prettyExpr(n.Value))
		}
	case *BreakStmt:
		b.WriteString("break\n")
	case *ContinueStmt:
		b.WriteString("continue\n")
	case *ExprStmt:
		fmt.Fprintf(b, "%s\n", prettyExpr(n.X))
	case *FunctionDef:
		n.prettyPrint(b, indent)
	default:
		fmt.Fprintf(b, "<unknown stmt %T>\n", s)
	}
}

func prettyExpr(e Expr) string {
	switch n := e.(type) {
	case *Ident:
		return n.Name
	case *IntLit:
		return fmt.Sprintf("%d", n.Value)
	case *FloatLit:
		return fmt.Sprintf("%g", n.Value)
	case *StringLit:
		return fmt.Sprintf("%q", n.Value)
	case *BoolLit:
		return fmt.Sprintf("%t", n.Value)
	case *NullLit:
		return "null"
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", prettyExpr(n.Left), n.Op, prettyExpr(n.Right))
	case *CompareExpr:
		return fmt.Sprintf("(%s %s %s)", prettyExpr(n.Left), n.Op, prettyExpr(n.Right))
	case *LogicalExpr:
		return fmt.Sprintf("(%s %s %s)", prettyExpr(n.Left), n.Op, prettyExpr(n.Right))
	case *BitwiseExpr:
		return fmt.Sprintf("(%s %s %s)", prettyExpr(n.Left), n.Op, prettyExpr(n.Right))
	case *UnaryExpr:
		return fmt.Sprintf("(%s%s)", n.Op, prettyExpr(n.Operand))
	case *CallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = prettyExpr(a)
		}
		return fmt.Sprintf("%s(%s)", prettyExpr(n.Callee), strings.Join(args, ", "))
	case *IndexExpr:
		return fmt.Sprintf("%s[%s]", prettyExpr(n.Target), prettyExpr(n.Index))
	case *MemberExpr:
		return fmt.Sprintf("%s.%s", prettyExpr(n.Target), n.Name)
	case *ListExpr:
		elems := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = prettyExpr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *MapExpr:
		entries := make([]string, len(n.Entries))
		for i, en := range n.Entries {
			entries[i] = fmt.Sprintf("%s: %s", prettyExpr(en.Key), prettyExpr(en.Value))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case *LambdaExpr:
		return fmt.Sprintf("|%s| %s", strings.Join(n.Params, ", "), prettyExpr(n.Body))
	case *IfExpr:
		return fmt.Sprintf("(%s if %s else %s)", prettyExpr(n.Then), prettyExpr(n.Cond), prettyExpr(n.Else))
	case *MatchValueExpr:
		return fmt.Sprintf("match %s { ... }", prettyExpr(n.Scrutinee))
	case *AssignExpr:
		return fmt.Sprintf("(%s = %s)", n.Name, prettyExpr(n.Value))
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}
