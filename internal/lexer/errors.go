package lexer

import "github.com/ember-lang/emberc/internal/diag"

// LexerErrorKind enumerates the closed set of lexical errors (spec §4.1
// "Errors").
type LexerErrorKind int

const (
	ErrUnexpectedCharacter LexerErrorKind = iota
	ErrUnterminatedString
	ErrInvalidEscape
	ErrMalformedNumber
	ErrTabIndentation
	ErrInconsistentDedent
)

// LexerError is a single recoverable lexical error, bridged to a
// diag.Diagnostic via ToDiagnostic.
type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedCharacter:
		return diag.CodeUnexpectedCharacter
	case ErrUnterminatedString:
		return diag.CodeUnterminatedString
	case ErrInvalidEscape:
		return diag.CodeInvalidEscape
	case ErrMalformedNumber:
		return diag.CodeMalformedNumber
	case ErrTabIndentation:
		return diag.CodeTabIndentation
	case ErrInconsistentDedent:
		return diag.CodeInconsistentDedent
	default:
		return diag.Code("LEX_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.New(diag.StageLexer, e.Kind.diagnosticCode(), diag.Span{
		Filename: e.Span.Filename,
		Line:     e.Span.Line,
		Column:   e.Span.Column,
		Start:    e.Span.Start,
		End:      e.Span.End,
	}, e.Message)
}
