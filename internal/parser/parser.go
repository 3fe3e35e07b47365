// Package parser implements Ember's recursive-descent statement parser
// and Pratt-style precedence-climbing expression parser (spec §4.2),
// consuming the token vector produced by internal/lexer and producing
// internal/ast nodes.
package parser

import (
	"fmt"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

// Parser walks a fixed token vector by index rather than the teacher's
// pull-from-lexer cur/peek pair, since the lexer already runs to
// completion up front and hands the whole token stream to the parser
// (spec §4.2 "Contract").
type Parser struct {
	tokens []lexer.Token
	pos    int
	gen    *ast.IDGen
	bag    *diag.Bag
}

// New returns a parser over tokens, which must already include the
// synthetic NEWLINE/INDENT/DEDENT/EOF tokens the lexer produces.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens, gen: &ast.IDGen{}, bag: &diag.Bag{}}
}

// ParseProgram parses every top-level statement until EOF.
func ParseProgram(tokens []lexer.Token) ([]ast.Stmt, []diag.Diagnostic) {
	p := New(tokens)
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.atEOF() {
		before := p.pos
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		p.skipStmtEnd()
		if p.pos == before {
			// Guarantee forward progress even if a rule fails to
			// consume anything (defensive; every parse* path below
			// is expected to advance on error via resync).
			p.advance()
		}
	}
	return stmts, p.bag.All()
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) atEOF() bool { return p.cur().Type == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) check(tt lexer.TokenType) bool { return p.cur().Type == tt }

// accept consumes the current token if it matches tt and reports
// whether it did.
func (p *Parser) accept(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches tt, else records a
// SYN_MISSING_TOKEN diagnostic and leaves the cursor in place so the
// caller's own resync logic decides how to recover.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorf(diag.CodeMissingToken, p.cur().Span, "expected '%s', found '%s'", tt, p.cur().Type)
	return lexer.Token{}, false
}

func (p *Parser) errorf(code diag.Code, span lexer.Span, format string, args ...any) {
	p.bag.Add(diag.New(diag.StageParser, code, toSpan(span), fmt.Sprintf(format, args...)))
}

func toSpan(s lexer.Span) diag.Span {
	return diag.Span{Filename: s.Filename, Line: s.Line, Column: s.Column, Start: s.Start, End: s.End}
}

// skipNewlines consumes zero or more NEWLINE tokens, used between
// top-level statements and at the start of a block.
func (p *Parser) skipNewlines() {
	for p.check(lexer.NEWLINE) {
		p.advance()
	}
}

// skipStmtEnd consumes the statement terminator (one or more NEWLINE)
// after a top-level or block statement; a statement ending right
// before DEDENT/EOF/end-keyword needs no explicit NEWLINE.
func (p *Parser) skipStmtEnd() {
	if p.check(lexer.NEWLINE) {
		p.skipNewlines()
		return
	}
}

// topLevelKeywords is consulted by resync (spec §4.2 "Error recovery").
var topLevelKeywords = map[lexer.TokenType]bool{
	lexer.FN: true, lexer.LET: true, lexer.VAR: true, lexer.IF: true,
	lexer.WHILE: true, lexer.FOR: true, lexer.CLASS: true,
	lexer.TRAIT: true, lexer.TYPE: true,
}

// resync advances past the failing construct to the next top-level
// keyword or statement separator, guaranteeing forward progress.
func (p *Parser) resync() {
	for !p.atEOF() {
		if p.check(lexer.NEWLINE) {
			p.advance()
			return
		}
		if topLevelKeywords[p.cur().Type] {
			return
		}
		p.advance()
	}
}
