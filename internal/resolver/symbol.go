// Package resolver implements Ember's two-phase name resolution: a
// declaration pass that admits mutually recursive top-level functions,
// followed by a body pass that attaches every identifier use to its
// declaring Symbol and validates return/break/continue context
// (spec §4.3).
package resolver

import "github.com/ember-lang/emberc/internal/lexer"

// SymbolKind classifies what a Symbol names.
type SymbolKind int

const (
	KindVariable SymbolKind = iota
	KindFunction
	KindParameter
	KindType
	KindLoopVariable
	KindBuiltin
)

func (k SymbolKind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindParameter:
		return "parameter"
	case KindType:
		return "type"
	case KindLoopVariable:
		return "loop variable"
	case KindBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Symbol is a named entity: a variable, function, parameter, type,
// loop variable, or built-in (spec §3.4).
type Symbol struct {
	Name         string
	Kind         SymbolKind
	Mutable      bool // meaningful only for KindVariable
	Arity        int  // meaningful only for KindFunction
	ParamIndex   int  // meaningful only for KindParameter
	DeclaringSpan lexer.Span
}
