// Package diag defines the compiler's diagnostic data model: structured,
// accumulated error and note values shared by every pipeline stage.
// Diagnostics are collected, never thrown (spec §4.6, §7).
package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
	StageResolver  Stage = "resolver"
	StageTypeCheck Stage = "typecheck"
	StageLowering  Stage = "lowering"
	StageEmit      Stage = "emit"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic, drawn from the closed
// taxonomy in spec §7.
type Code string

const (
	// Lexical
	CodeUnexpectedCharacter Code = "LEX_UNEXPECTED_CHARACTER"
	CodeUnterminatedString  Code = "LEX_UNTERMINATED_STRING"
	CodeInvalidEscape       Code = "LEX_INVALID_ESCAPE"
	CodeMalformedNumber     Code = "LEX_MALFORMED_NUMBER"
	CodeTabIndentation      Code = "LEX_TAB_INDENTATION"
	CodeInconsistentDedent  Code = "LEX_INCONSISTENT_DEDENT"

	// Syntactic
	CodeUnexpectedToken Code = "SYN_UNEXPECTED_TOKEN"
	CodeMissingToken    Code = "SYN_MISSING_TOKEN"
	CodeUnexpectedEOF   Code = "SYN_UNEXPECTED_EOF"
	CodeInvalidPattern  Code = "SYN_INVALID_PATTERN"

	// Name resolution
	CodeUndefinedName          Code = "RES_UNDEFINED_NAME"
	CodeDuplicateDefinition    Code = "RES_DUPLICATE_DEFINITION"
	CodeInvalidReturnContext   Code = "RES_INVALID_RETURN_CONTEXT"
	CodeInvalidBreakContext    Code = "RES_INVALID_BREAK_CONTEXT"
	CodeInvalidContinueContext Code = "RES_INVALID_CONTINUE_CONTEXT"
	CodeAssignToImmutable      Code = "RES_ASSIGN_TO_IMMUTABLE"

	// Type
	CodeTypeMismatch   Code = "TYPE_MISMATCH"
	CodeArityMismatch  Code = "TYPE_ARITY_MISMATCH"
	CodeNotAFunction   Code = "TYPE_NOT_A_FUNCTION"
	CodeOccursCheck    Code = "TYPE_OCCURS_CHECK"
	CodeAmbiguousType  Code = "TYPE_AMBIGUOUS"
	CodeNonExhaustive  Code = "TYPE_NON_EXHAUSTIVE_MATCH"

	// Lowering
	CodeUnsupportedConstruct Code = "LOWER_UNSUPPORTED_CONSTRUCT"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Merge returns the smallest span containing both s and other.
func (s Span) Merge(other Span) Span {
	merged := s
	if other.Start < merged.Start {
		merged.Start = other.Start
		merged.Line = other.Line
		merged.Column = other.Column
	}
	if other.End > merged.End {
		merged.End = other.End
	}
	return merged
}

// LabeledSpan represents a span with an optional label (primary or
// secondary), used to render Rust-style multi-span diagnostics.
type LabeledSpan struct {
	Span  Span
	Label string
	Style string // "primary" or "secondary"
}

// ProofStep is one step in the reasoning chain that explains a
// diagnostic (e.g. "because the branches of `if` must unify").
type ProofStep struct {
	Message string
	Span    Span
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage        Stage
	Severity     Severity
	Code         Code
	Message      string
	Span         Span
	Suggestion   string
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
	ProofChain   []ProofStep
}

// New constructs an error-severity diagnostic.
func New(stage Stage, code Code, span Span, message string) Diagnostic {
	return Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Span:     span,
		Message:  message,
	}
}

// WithSuggestion returns a new diagnostic with the given suggestion.
func (d Diagnostic) WithSuggestion(suggestion string) Diagnostic {
	d.Suggestion = suggestion
	return d
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{Span: span, Label: label, Style: style})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithProofStep adds a step to the proof chain.
func (d Diagnostic) WithProofStep(message string, span Span) Diagnostic {
	d.ProofChain = append(d.ProofChain, ProofStep{Message: message, Span: span})
	return d
}

// Bag accumulates diagnostics across a stage. A stage's output is
// considered invalid iff its Bag has at least one error-severity entry
// (spec §4.6) — downstream stages must not run in that case.
type Bag struct {
	entries []Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.entries = append(b.entries, d)
}

// All returns every accumulated diagnostic, in insertion order.
func (b *Bag) All() []Diagnostic {
	return b.entries
}

// HasErrors reports whether any accumulated diagnostic is error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.entries {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int {
	return len(b.entries)
}
