package types

import (
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/lexer"
)

func toSpan(s lexer.Span) diag.Span {
	return diag.Span{Filename: s.Filename, Line: s.Line, Column: s.Column, Start: s.Start, End: s.End}
}
