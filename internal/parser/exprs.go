package parser

import (
	"strconv"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

// parseExpr is the Pratt-style precedence-climbing entry point
// (spec §4.2, binding powers from §6.4 via precedence.go).
func (p *Parser) parseExpr(minPower power) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		tok := p.cur()
		pw, isInfix := infixPower[tok.Type]
		if !isInfix || pw < minPower {
			break
		}

		switch tok.Type {
		case lexer.LPAREN:
			left = p.parseCallExpr(left)
			continue
		case lexer.LBRACKET:
			left = p.parseIndexExpr(left)
			continue
		case lexer.DOT:
			left = p.parseMemberExpr(left)
			continue
		case lexer.PIPEGT:
			left = p.parsePipelineExpr(left)
			continue
		}

		p.advance()
		nextMin := pw + 1
		if rightAssoc[tok.Type] {
			nextMin = pw
		}
		right := p.parseExpr(nextMin)

		switch tok.Type {
		case lexer.ASSIGN:
			target, ok := left.(*ast.Ident)
			if !ok {
				p.errorf(diag.CodeUnexpectedToken, tok.Span, "left-hand side of '=' must be a name")
				continue
			}
			left = ast.NewAssignExpr(p.gen, tok.Span, target, right)
		case lexer.OR:
			left = ast.NewLogicalExpr(p.gen, tok.Span, ast.LogOr, left, right)
		case lexer.AND:
			left = ast.NewLogicalExpr(p.gen, tok.Span, ast.LogAnd, left, right)
		case lexer.PIPE:
			left = ast.NewBitwiseExpr(p.gen, tok.Span, ast.BitOr, left, right)
		case lexer.CARET:
			left = ast.NewBitwiseExpr(p.gen, tok.Span, ast.BitXor, left, right)
		case lexer.AMP:
			left = ast.NewBitwiseExpr(p.gen, tok.Span, ast.BitAnd, left, right)
		case lexer.SHL:
			left = ast.NewBitwiseExpr(p.gen, tok.Span, ast.Shl, left, right)
		case lexer.SHR:
			left = ast.NewBitwiseExpr(p.gen, tok.Span, ast.Shr, left, right)
		case lexer.EQ:
			left = ast.NewCompareExpr(p.gen, tok.Span, ast.Eq, left, right)
		case lexer.NOT_EQ:
			left = ast.NewCompareExpr(p.gen, tok.Span, ast.Ne, left, right)
		case lexer.LT:
			left = ast.NewCompareExpr(p.gen, tok.Span, ast.Lt, left, right)
		case lexer.LE:
			left = ast.NewCompareExpr(p.gen, tok.Span, ast.Le, left, right)
		case lexer.GT:
			left = ast.NewCompareExpr(p.gen, tok.Span, ast.Gt, left, right)
		case lexer.GE:
			left = ast.NewCompareExpr(p.gen, tok.Span, ast.Ge, left, right)
		case lexer.PLUS:
			left = ast.NewBinaryExpr(p.gen, tok.Span, ast.Add, left, right)
		case lexer.PLUSPLUS:
			left = ast.NewBinaryExpr(p.gen, tok.Span, ast.Concat, left, right)
		case lexer.MINUS:
			left = ast.NewBinaryExpr(p.gen, tok.Span, ast.Sub, left, right)
		case lexer.STAR:
			left = ast.NewBinaryExpr(p.gen, tok.Span, ast.Mul, left, right)
		case lexer.SLASH:
			left = ast.NewBinaryExpr(p.gen, tok.Span, ast.Div, left, right)
		case lexer.PERCENT:
			left = ast.NewBinaryExpr(p.gen, tok.Span, ast.Mod, left, right)
		case lexer.STARSTAR:
			left = ast.NewBinaryExpr(p.gen, tok.Span, ast.Pow, left, right)
		}
	}

	return left
}

// parsePipelineExpr folds a left-associative `|>` chain into a single
// PipelineExpr rather than nested binary nodes (spec §3.3 Pipeline).
func (p *Parser) parsePipelineExpr(first ast.Expr) ast.Expr {
	span := first.Span()
	stages := []ast.Expr{first}
	for p.accept(lexer.PIPEGT) {
		stages = append(stages, p.parseExpr(powPipeline+1))
	}
	return ast.NewPipelineExpr(p.gen, span, stages)
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	start := p.advance() // consume '('
	var args []ast.Expr
	for !p.check(lexer.RPAREN) && !p.atEOF() {
		args = append(args, p.parseExpr(powAssign))
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return ast.NewCallExpr(p.gen, callee.Span().Merge(start.Span), callee, args)
}

func (p *Parser) parseIndexExpr(target ast.Expr) ast.Expr {
	p.advance() // consume '['
	index := p.parseExpr(powAssign)
	end, _ := p.expect(lexer.RBRACKET)
	return ast.NewIndexExpr(p.gen, target.Span().Merge(end.Span), target, index)
}

func (p *Parser) parseMemberExpr(target ast.Expr) ast.Expr {
	p.advance() // consume '.'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		return target
	}
	return ast.NewMemberExpr(p.gen, target.Span().Merge(nameTok.Span), target, nameTok.Raw)
}

// parsePrefix dispatches on the current token for every prefix rule
// of spec §4.2 (literals, identifiers, grouping, list/map, lambda,
// if/do/match, unary operators).
func (p *Parser) parsePrefix() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case lexer.IDENT:
		p.advance()
		return ast.NewIdent(p.gen, tok.Span, tok.Raw)
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR, lexer.TRUE, lexer.FALSE, lexer.NULL:
		return p.parseLiteralValue()
	case lexer.SELF:
		p.advance()
		return ast.NewIdent(p.gen, tok.Span, "self")
	case lexer.MINUS:
		p.advance()
		operand := p.parseExpr(powUnary)
		return ast.NewUnaryExpr(p.gen, tok.Span, ast.Neg, operand)
	case lexer.NOT, lexer.BANG:
		p.advance()
		operand := p.parseExpr(powUnary)
		return ast.NewUnaryExpr(p.gen, tok.Span, ast.Not, operand)
	case lexer.TILDE:
		p.advance()
		operand := p.parseExpr(powUnary)
		return ast.NewUnaryExpr(p.gen, tok.Span, ast.BitNot, operand)
	case lexer.LPAREN:
		return p.parseGroupedOrTupleExpr(tok)
	case lexer.LBRACKET:
		return p.parseListExpr(tok)
	case lexer.LBRACE:
		return p.parseMapExpr(tok)
	case lexer.PIPE:
		return p.parseLambdaExpr(tok)
	case lexer.IF:
		return p.parseIfConstruct(true).(ast.Expr)
	case lexer.DO:
		return p.parseDoBlockExpr(tok)
	case lexer.MATCH:
		return p.parseMatchConstruct(true).(ast.Expr)
	default:
		p.errorf(diag.CodeUnexpectedToken, tok.Span, "unexpected token '%s' in expression", tok.Type)
		p.advance()
		return nil
	}
}

// parseLiteralValue consumes exactly one literal token and returns its
// AST node, used both by prefix expression parsing and by literal
// patterns.
func (p *Parser) parseLiteralValue() ast.Expr {
	tok := p.advance()
	switch tok.Type {
	case lexer.INT:
		v, err := strconv.ParseInt(tok.Raw, 0, 64)
		if err != nil {
			p.errorf(diag.CodeUnexpectedToken, tok.Span, "malformed integer literal '%s'", tok.Raw)
		}
		return ast.NewIntLit(p.gen, tok.Span, v)
	case lexer.FLOAT:
		v, err := strconv.ParseFloat(tok.Raw, 64)
		if err != nil {
			p.errorf(diag.CodeUnexpectedToken, tok.Span, "malformed float literal '%s'", tok.Raw)
		}
		return ast.NewFloatLit(p.gen, tok.Span, v)
	case lexer.STRING:
		return ast.NewStringLit(p.gen, tok.Span, tok.Value, tok.Raw)
	case lexer.CHAR:
		return ast.NewCharLit(p.gen, tok.Span, tok.Value)
	case lexer.TRUE:
		return ast.NewBoolLit(p.gen, tok.Span, true)
	case lexer.FALSE:
		return ast.NewBoolLit(p.gen, tok.Span, false)
	case lexer.NULL:
		return ast.NewNullLit(p.gen, tok.Span)
	default:
		p.errorf(diag.CodeUnexpectedToken, tok.Span, "expected a literal, found '%s'", tok.Type)
		return nil
	}
}

// parseGroupedOrTupleExpr parses `(expr)` grouping. A trailing comma
// before `)` is rejected (spec closes TuplePattern over patterns, not
// a general tuple-expr literal); single parenthesised expressions are
// the only form supported here.
func (p *Parser) parseGroupedOrTupleExpr(open lexer.Token) ast.Expr {
	p.advance() // consume '('
	inner := p.parseExpr(powLowest)
	p.expect(lexer.RPAREN)
	return inner
}

func (p *Parser) parseListExpr(open lexer.Token) ast.Expr {
	p.advance() // consume '['
	var elems []ast.Expr
	for !p.check(lexer.RBRACKET) && !p.atEOF() {
		elems = append(elems, p.parseExpr(powAssign))
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return ast.NewListExpr(p.gen, open.Span, elems)
}

func (p *Parser) parseMapExpr(open lexer.Token) ast.Expr {
	p.advance() // consume '{'
	var entries []ast.MapEntry
	for !p.check(lexer.RBRACE) && !p.atEOF() {
		key := p.parseExpr(powAssign)
		p.expect(lexer.COLON)
		val := p.parseExpr(powAssign)
		entries = append(entries, ast.MapEntry{Key: key, Value: val})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return ast.NewMapExpr(p.gen, open.Span, entries)
}

// parseLambdaExpr parses `|params| expr` or `|params| -> expr`.
func (p *Parser) parseLambdaExpr(open lexer.Token) ast.Expr {
	p.advance() // consume '|'
	var params []ast.Pattern
	for !p.check(lexer.PIPE) && !p.atEOF() {
		params = append(params, p.parseRangeOrPrimaryPattern())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.PIPE)
	p.accept(lexer.ARROW)
	body := p.parseExpr(powAssign)
	return ast.NewLambdaExpr(p.gen, open.Span, params, body)
}

// parseDoBlockExpr parses a block literal `do NEWLINE INDENT stmts
// DEDENT end` used in expression position, promoting a trailing bare
// expression statement to the block's tail value.
func (p *Parser) parseDoBlockExpr(open lexer.Token) ast.Expr {
	p.advance() // consume 'do'
	stmts, tail := p.parseBlockBody()
	return ast.NewBlockExpr(p.gen, open.Span, stmts, tail)
}

// parseBlockBody consumes NEWLINE INDENT stmt* DEDENT `end`, returning
// the statement list with its final bare expression (if any) split out
// as the block's tail value.
func (p *Parser) parseBlockBody() ([]ast.Stmt, ast.Expr) {
	p.skipNewlines()
	if !p.accept(lexer.INDENT) {
		p.expect(lexer.END)
		return nil, nil
	}
	var stmts []ast.Stmt
	for !p.check(lexer.DEDENT) && !p.atEOF() {
		before := p.pos
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		p.skipStmtEnd()
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(lexer.DEDENT)
	p.expect(lexer.END)

	var tail ast.Expr
	if n := len(stmts); n > 0 {
		if es, ok := stmts[n-1].(*ast.ExprStmt); ok {
			tail = es.X
			stmts = stmts[:n-1]
		}
	}
	return stmts, tail
}
