package parser

import (
	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

// parsePattern parses a full pattern, including the or-pattern and
// range-pattern forms that sit above a single primary pattern
// (spec §4.2 "Pattern parsing").
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseRangeOrPrimaryPattern()
	if first == nil {
		return nil
	}
	if !p.check(lexer.PIPE) {
		return first
	}
	alts := []ast.Pattern{first}
	for p.accept(lexer.PIPE) {
		next := p.parseRangeOrPrimaryPattern()
		if next != nil {
			alts = append(alts, next)
		}
	}
	return ast.NewOrPattern(p.gen, first.Span(), alts)
}

func (p *Parser) parseRangeOrPrimaryPattern() ast.Pattern {
	start := p.parsePrimaryPattern()
	if start == nil {
		return nil
	}
	lit, ok := start.(*ast.LiteralPattern)
	if !ok || !p.check(lexer.DOTDOT) {
		return start
	}
	p.advance()
	high := p.parsePrimaryPattern()
	highLit, ok := high.(*ast.LiteralPattern)
	if !ok {
		p.errorf(diag.CodeInvalidPattern, p.cur().Span, "range pattern endpoints must be literals")
		return start
	}
	return ast.NewRangePattern(p.gen, lit.Span(), lit.Value, highLit.Value)
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	tok := p.cur()
	switch tok.Type {
	case lexer.IDENT:
		p.advance()
		if tok.Raw == "_" {
			return ast.NewWildcardPattern(p.gen, tok.Span)
		}
		if p.check(lexer.LBRACE) {
			return p.parseStructPattern(tok)
		}
		return ast.NewVarPattern(p.gen, tok.Span, tok.Raw)

	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR, lexer.TRUE, lexer.FALSE, lexer.NULL:
		return ast.NewLiteralPattern(p.gen, tok.Span, p.parseLiteralValue())

	case lexer.MINUS:
		p.advance()
		if !p.check(lexer.INT) && !p.check(lexer.FLOAT) {
			p.errorf(diag.CodeInvalidPattern, tok.Span, "expected a numeric literal after '-' in pattern")
			return nil
		}
		numTok := p.cur()
		val := p.parseLiteralValue()
		return ast.NewLiteralPattern(p.gen, tok.Span, ast.NewUnaryExpr(p.gen, numTok.Span, ast.Neg, val))

	case lexer.LPAREN:
		p.advance()
		var elems []ast.Pattern
		for !p.check(lexer.RPAREN) && !p.atEOF() {
			elems = append(elems, p.parsePattern())
			if !p.accept(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.RPAREN)
		return ast.NewTuplePattern(p.gen, tok.Span, elems)

	case lexer.LBRACKET:
		return p.parseListPattern(tok)

	default:
		p.errorf(diag.CodeInvalidPattern, tok.Span, "unexpected token '%s' in pattern", tok.Type)
		p.advance()
		return nil
	}
}

// parseListPattern parses `[p1, p2, ...]` or the cons form
// `[head, ..tail]`, where `..` marks the remaining-elements binder
// (an Ember-specific resolution of spec §4.2's unspecified cons
// syntax, recorded in DESIGN.md).
func (p *Parser) parseListPattern(open lexer.Token) ast.Pattern {
	p.advance() // consume '['
	var elems []ast.Pattern
	for !p.check(lexer.RBRACKET) && !p.atEOF() {
		if p.check(lexer.DOTDOT) {
			p.advance()
			tail := p.parsePattern()
			p.expect(lexer.RBRACKET)
			return p.consChain(open.Span, elems, tail)
		}
		elems = append(elems, p.parsePattern())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return ast.NewListPattern(p.gen, open.Span, elems)
}

// consChain folds [e1, e2, ..tail] into nested ListConsPatterns,
// right to left, so e1 binds the head and tail binds the remainder.
func (p *Parser) consChain(span lexer.Span, heads []ast.Pattern, tail ast.Pattern) ast.Pattern {
	result := tail
	for i := len(heads) - 1; i >= 0; i-- {
		result = ast.NewListConsPattern(p.gen, span, heads[i], result)
	}
	return result
}

func (p *Parser) parseStructPattern(nameTok lexer.Token) ast.Pattern {
	p.advance() // consume '{'
	var fields []ast.StructPatternField
	for !p.check(lexer.RBRACE) && !p.atEOF() {
		fieldTok, ok := p.expect(lexer.IDENT)
		if !ok {
			break
		}
		if p.accept(lexer.COLON) {
			fields = append(fields, ast.StructPatternField{Name: fieldTok.Raw, Pattern: p.parsePattern()})
		} else {
			fields = append(fields, ast.StructPatternField{
				Name:      fieldTok.Raw,
				Pattern:   ast.NewVarPattern(p.gen, fieldTok.Span, fieldTok.Raw),
				Shorthand: true,
			})
		}
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return ast.NewStructPattern(p.gen, nameTok.Span, nameTok.Raw, fields)
}
