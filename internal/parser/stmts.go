package parser

import (
	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

// parseStmt dispatches on the current keyword (spec §4.2 "Statement
// dispatch"). Returns nil (with a diagnostic already recorded) when
// the statement could not be parsed; the caller resyncs.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Type {
	case lexer.LET, lexer.VAR:
		return p.parseLetStmt()
	case lexer.FN:
		fn := p.parseFunctionStmt()
		if fn == nil {
			return nil
		}
		return fn
	case lexer.TYPE:
		return p.parseTypeAliasStmt()
	case lexer.CLASS:
		return p.parseClassStmt()
	case lexer.TRAIT:
		p.errorf(diag.CodeUnexpectedToken, p.cur().Span, "trait declarations are not supported")
		p.resync()
		return nil
	case lexer.IF:
		switch n := p.parseIfConstruct(false).(type) {
		case ast.Stmt:
			return n
		case ast.Expr:
			return ast.NewExprStmt(p.gen, n.Span(), n)
		}
		return nil
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.MATCH:
		if n, ok := p.parseMatchConstruct(false).(ast.Stmt); ok {
			return n
		}
		return nil
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		tok := p.advance()
		return ast.NewBreakStmt(p.gen, tok.Span)
	case lexer.CONTINUE:
		tok := p.advance()
		return ast.NewContinueStmt(p.gen, tok.Span)
	case lexer.IMPORT, lexer.USE, lexer.FROM:
		return p.parseImportStmt()
	case lexer.NEWLINE, lexer.EOF, lexer.DEDENT:
		return nil
	default:
		expr := p.parseExpr(powLowest)
		if expr == nil {
			p.resync()
			return nil
		}
		return ast.NewExprStmt(p.gen, expr.Span(), expr)
	}
}

// parseBlockStmts consumes NEWLINE INDENT stmt* DEDENT `end` and
// returns the plain statement list, with no tail-expression splitting
// (used for while/for bodies and if-statement branches, as opposed to
// parseBlockBody which is used where the block is itself an
// expression).
func (p *Parser) parseBlockStmts() []ast.Stmt {
	p.skipNewlines()
	if !p.accept(lexer.INDENT) {
		p.expect(lexer.END)
		return nil
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
	return stmts
}

// parseIfConstruct parses the shared `if cond ...` head and then
// branches on the expression form (`then`) vs. the statement/block
// form (`do`), per spec §4.2 "Control-flow forms". asExpr selects
// which AST node is built; the result is an ast.Node the caller type
// -asserts to *ast.IfExpr or *ast.IfStmt.
func (p *Parser) parseIfConstruct(asExpr bool) ast.Node {
	start := p.advance() // consume 'if'
	cond := p.parseExpr(powLowest)

	switch p.cur().Type {
	case lexer.THEN:
		p.advance()
		then := p.parseExpr(powAssign)
		var els ast.Expr
		switch {
		case p.check(lexer.ELIF):
			els = p.parseIfConstruct(true).(ast.Expr)
			return ast.NewIfExpr(p.gen, start.Span, cond, then, els)
		case p.accept(lexer.ELSE):
			els = p.parseExpr(powAssign)
		}
		p.expect(lexer.END)
		return ast.NewIfExpr(p.gen, start.Span, cond, then, els)

	case lexer.DO:
		p.advance()
		thenStmts := p.parseBlockStmts()
		var elseStmts []ast.Stmt
		if p.check(lexer.ELIF) {
			elseStmts = []ast.Stmt{p.parseIfConstruct(false).(ast.Stmt)}
		} else if p.accept(lexer.ELSE) {
			if p.check(lexer.DO) {
				p.advance()
				elseStmts = p.parseBlockStmts()
			} else if p.check(lexer.IF) {
				elseStmts = []ast.Stmt{p.parseIfConstruct(false).(ast.Stmt)}
			}
		}
		return ast.NewIfStmt(p.gen, start.Span, cond, thenStmts, elseStmts)

	default:
		p.errorf(diag.CodeMissingToken, p.cur().Span, "expected 'then' or 'do' after if-condition, found '%s'", p.cur().Type)
		p.resync()
		if asExpr {
			return ast.NewIfExpr(p.gen, start.Span, cond, nil, nil)
		}
		return ast.NewIfStmt(p.gen, start.Span, cond, nil, nil)
	}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.advance() // consume 'while'
	cond := p.parseExpr(powLowest)
	p.expect(lexer.DO)
	body := p.parseBlockStmts()
	return ast.NewWhileStmt(p.gen, start.Span, cond, body)
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.advance() // consume 'for'
	nameTok, _ := p.expect(lexer.IDENT)
	p.expect(lexer.IN)
	iter := p.parseExpr(powLowest)
	p.expect(lexer.DO)
	body := p.parseBlockStmts()
	return ast.NewForStmt(p.gen, start.Span, nameTok.Raw, iter, body)
}

// parseMatchConstruct parses `match scrutinee do arms... end`, each
// arm `pattern [if guard] => body` separated by NEWLINE or COMMA
// (spec §4.2).
func (p *Parser) parseMatchConstruct(asExpr bool) ast.Node {
	start := p.advance() // consume 'match'
	scrutinee := p.parseExpr(powLowest)
	p.accept(lexer.DO)
	p.skipNewlines()
	p.accept(lexer.INDENT)

	var arms []ast.MatchArm
	var armStmts []ast.MatchArmStmt
	for !p.check(lexer.DEDENT) && !p.check(lexer.END) && !p.atEOF() {
		pat := p.parsePattern()
		var guard ast.Expr
		if p.accept(lexer.IF) {
			guard = p.parseExpr(powLowest)
		}
		p.expect(lexer.FATARROW)
		if asExpr {
			body := p.parseExpr(powAssign)
			arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		} else {
			body := p.parseMatchArmStmtBody()
			armStmts = append(armStmts, ast.MatchArmStmt{Pattern: pat, Guard: guard, Body: body})
		}
		if !p.accept(lexer.COMMA) {
			p.skipNewlines()
		}
	}
	p.accept(lexer.DEDENT)
	p.expect(lexer.END)

	if asExpr {
		return ast.NewMatchExpr(p.gen, start.Span, scrutinee, arms)
	}
	return ast.NewMatchStmt(p.gen, start.Span, scrutinee, armStmts)
}

// parseMatchArmStmtBody parses a statement-form match arm's body: a
// single statement on the arm's line (the common case), since the
// arm is already introduced by `=>` rather than `do`.
func (p *Parser) parseMatchArmStmtBody() []ast.Stmt {
	s := p.parseStmt()
	if s == nil {
		return nil
	}
	return []ast.Stmt{s}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.advance() // consume 'return'
	if p.check(lexer.NEWLINE) || p.check(lexer.DEDENT) || p.atEOF() {
		return ast.NewReturnStmt(p.gen, start.Span, nil)
	}
	value := p.parseExpr(powLowest)
	return ast.NewReturnStmt(p.gen, start.Span, value)
}
