package parser

import (
	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

// parseTypeAnn parses a surface type annotation: a name with optional
// `[Args]`, or a function type `(P1, P2) -> R`.
func (p *Parser) parseTypeAnn() ast.TypeAnn {
	if p.check(lexer.LPAREN) {
		return p.parseFuncTypeAnn()
	}
	if !p.check(lexer.IDENT) {
		p.errorf(diag.CodeUnexpectedToken, p.cur().Span, "expected a type, found '%s'", p.cur().Type)
		return nil
	}
	nameTok := p.advance()
	ann := &ast.NamedTypeAnn{Name: nameTok.Raw, Span: nameTok.Span}
	if p.accept(lexer.LBRACKET) {
		for !p.check(lexer.RBRACKET) && !p.atEOF() {
			arg := p.parseTypeAnn()
			if arg != nil {
				ann.Args = append(ann.Args, arg)
			}
			if !p.accept(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.RBRACKET)
	}
	return ann
}

func (p *Parser) parseFuncTypeAnn() ast.TypeAnn {
	start := p.cur().Span
	p.advance() // consume '('
	var params []ast.TypeAnn
	for !p.check(lexer.RPAREN) && !p.atEOF() {
		params = append(params, p.parseTypeAnn())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)
	var ret ast.TypeAnn
	if p.accept(lexer.ARROW) {
		ret = p.parseTypeAnn()
	}
	return &ast.FuncTypeAnn{Params: params, Return: ret, Span: start}
}
