package parser

import (
	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

// parseLetStmt parses `let name [: Type] = value` / `var name [: Type]
// = value`, mutability carried by the introducing keyword.
func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.advance() // 'let' or 'var'
	mutable := start.Type == lexer.VAR
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.resync()
		return nil
	}
	var typ ast.TypeAnn
	if p.accept(lexer.COLON) {
		typ = p.parseTypeAnn()
	}
	p.expect(lexer.ASSIGN)
	value := p.parseExpr(powLowest)
	return ast.NewLetStmt(p.gen, start.Span, mutable, nameTok.Raw, typ, value)
}

// parseFunctionStmt parses `fn name(params) [-> Ret] do ... end` or
// the single-expression form `fn name(params) [-> Ret] = expr`.
func (p *Parser) parseFunctionStmt() *ast.FunctionStmt {
	start := p.advance() // 'fn'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.resync()
		return nil
	}
	p.expect(lexer.LPAREN)
	var params []ast.Param
	for !p.check(lexer.RPAREN) && !p.atEOF() {
		pat := p.parsePattern()
		var typ ast.TypeAnn
		if p.accept(lexer.COLON) {
			typ = p.parseTypeAnn()
		}
		params = append(params, ast.Param{Pattern: pat, Type: typ})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)

	var ret ast.TypeAnn
	if p.accept(lexer.ARROW) {
		ret = p.parseTypeAnn()
	}

	var body ast.Expr
	switch {
	case p.accept(lexer.ASSIGN):
		body = p.parseExpr(powLowest)
	case p.accept(lexer.DO):
		stmts, tail := p.parseBlockBody()
		body = ast.NewBlockExpr(p.gen, start.Span, stmts, tail)
		// A redundant extra `end` is accepted silently (spec §4.2
		// "Statement dispatch").
		p.accept(lexer.END)
	default:
		p.errorf(diag.CodeMissingToken, p.cur().Span, "expected '=' or 'do' to start the body of '%s'", nameTok.Raw)
	}
	return ast.NewFunctionStmt(p.gen, start.Span, nameTok.Raw, params, ret, body)
}

func (p *Parser) parseTypeAliasStmt() ast.Stmt {
	start := p.advance() // 'type'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.resync()
		return nil
	}
	p.expect(lexer.ASSIGN)
	aliased := p.parseTypeAnn()
	return ast.NewTypeAliasStmt(p.gen, start.Span, nameTok.Raw, aliased)
}

// parseClassStmt parses `class Name [extends Base] do members end`,
// where each member is a method (`fn ...`) or a field (`name: Type`).
func (p *Parser) parseClassStmt() ast.Stmt {
	start := p.advance() // 'class'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.resync()
		return nil
	}
	var extends string
	if p.accept(lexer.EXTENDS) {
		if extTok, ok := p.expect(lexer.IDENT); ok {
			extends = extTok.Raw
		}
	}
	p.expect(lexer.DO)
	p.skipNewlines()
	p.accept(lexer.INDENT)

	var members []ast.ClassMember
	for !p.check(lexer.DEDENT) && !p.atEOF() {
		before := p.pos
		switch {
		case p.check(lexer.FN):
			if m := p.parseFunctionStmt(); m != nil {
				members = append(members, ast.ClassMember{Method: m})
			}
		case p.check(lexer.IDENT):
			fieldTok := p.advance()
			var typ ast.TypeAnn
			if p.accept(lexer.COLON) {
				typ = p.parseTypeAnn()
			}
			members = append(members, ast.ClassMember{Field: &ast.ClassField{Name: fieldTok.Raw, Type: typ}})
		default:
			p.errorf(diag.CodeUnexpectedToken, p.cur().Span, "expected a field or method in class body, found '%s'", p.cur().Type)
			p.advance()
		}
		p.skipStmtEnd()
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(lexer.DEDENT)
	p.expect(lexer.END)
	return ast.NewClassStmt(p.gen, start.Span, nameTok.Raw, extends, members)
}

// parseImportStmt parses `import module`, `use module`, and
// `from module import sym1, sym2`.
func (p *Parser) parseImportStmt() ast.Stmt {
	start := p.advance() // 'import' / 'use' / 'from'
	if start.Type == lexer.FROM {
		modTok, ok := p.expect(lexer.IDENT)
		if !ok {
			p.resync()
			return nil
		}
		p.expect(lexer.IMPORT)
		var symbols []string
		for {
			symTok, ok := p.expect(lexer.IDENT)
			if !ok {
				break
			}
			symbols = append(symbols, symTok.Raw)
			if !p.accept(lexer.COMMA) {
				break
			}
		}
		return ast.NewImportStmt(p.gen, start.Span, modTok.Raw, symbols)
	}

	modTok, ok := p.expect(lexer.IDENT)
	if !ok {
		p.resync()
		return nil
	}
	return ast.NewImportStmt(p.gen, start.Span, modTok.Raw, nil)
}
