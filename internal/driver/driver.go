// Package driver orchestrates the pipeline the core itself has no
// opinion about: reading source from disk, running every stage in
// order, and — for the `run` verb — handing the emitted text to an
// external interpreter. Spec §4.6's "stage boundaries are hard" rule
// is enforced here: a stage that produced even one error-severity
// diagnostic halts the pipeline before the next stage ever runs.
package driver

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/ember-lang/emberc/internal/ast"
	"github.com/ember-lang/emberc/internal/diag"
	"github.com/ember-lang/emberc/internal/emberlog"
	"github.com/ember-lang/emberc/internal/emit"
	"github.com/ember-lang/emberc/internal/lexer"
	"github.com/ember-lang/emberc/internal/mir"
	"github.com/ember-lang/emberc/internal/parser"
	"github.com/ember-lang/emberc/internal/resolver"
	"github.com/ember-lang/emberc/internal/types"
)

// Driver runs compilations. It owns nothing the core itself owns —
// only the logger, which is ambient infrastructure the core has no
// opinion about (spec §1/§5).
type Driver struct {
	Logger emberlog.Logger
}

// New builds a Driver. A nil logger is replaced with a discarding one
// so callers never need to guard against it themselves.
func New(logger emberlog.Logger) *Driver {
	if logger == nil {
		logger = emberlog.Discard()
	}
	return &Driver{Logger: logger}
}

// Result is the outcome of a frontend-through-MIR compilation.
type Result struct {
	// Source is the emitted Python text. Empty if any stage failed.
	Source string
	// Diagnostics holds every diagnostic produced, from whichever
	// stage stopped the pipeline (or none, on success).
	Diagnostics []diag.Diagnostic
	// Stage names which stage produced Diagnostics; empty on success.
	Stage emberlog.Stage
}

// OK reports whether the compilation reached emission with no errors.
func (r Result) OK() bool { return !hasErrors(r.Diagnostics) }

// Compile runs the full pipeline — lex, parse, resolve, infer, lower,
// emit — over filename/text, stopping at the first stage that
// produces an error-severity diagnostic. Non-fatal diagnostics (e.g.
// match-exhaustiveness notes) from stages that did run are preserved
// in the result even on success — spec §4.6: "the compiler never
// loses a diagnostic; counts reported to the user are exact."
func (d *Driver) Compile(ctx context.Context, filename, text string) Result {
	stmts, stage, diags := d.frontend(ctx, filename, text)
	if hasErrors(diags) {
		return Result{Diagnostics: diags, Stage: stage}
	}

	ctx = emberlog.WithStage(ctx, emberlog.StageLower)
	prog, lowerDiags := mir.Lower(stmts)
	diags = append(diags, lowerDiags...)
	if hasErrors(lowerDiags) {
		d.Logger.WarnContext(ctx, "lowering failed", "diagnostics", len(lowerDiags))
		return Result{Diagnostics: diags, Stage: emberlog.StageLower}
	}

	ctx = emberlog.WithStage(ctx, emberlog.StageEmit)
	source := emit.Emit(prog)
	d.Logger.InfoContext(ctx, "emitted program", "bytes", len(source))
	return Result{Source: source, Diagnostics: diags}
}

// Check runs the pipeline through type inference only — the `check`
// verb reports diagnostics without ever reaching lowering or emission.
func (d *Driver) Check(ctx context.Context, filename, text string) []diag.Diagnostic {
	_, _, diags := d.frontend(ctx, filename, text)
	return diags
}

// frontend runs lex → parse → resolve → infer, the stages every verb
// shares, halting at the first one that produces an error. The
// returned stage names whichever stage halted the pipeline; it is
// only meaningful when hasErrors(diagnostics) is true — on success the
// returned diagnostics may still be non-empty (non-fatal notes).
func (d *Driver) frontend(ctx context.Context, filename, text string) ([]ast.Stmt, emberlog.Stage, []diag.Diagnostic) {
	lexCtx := emberlog.WithStage(ctx, emberlog.StageLex)
	tokens, lexErrs := lexer.New(filename, text).Tokenize()
	if len(lexErrs) > 0 {
		diags := make([]diag.Diagnostic, len(lexErrs))
		for i, e := range lexErrs {
			diags[i] = e.ToDiagnostic()
		}
		d.Logger.WarnContext(lexCtx, "lexing failed", "errors", len(lexErrs))
		return nil, emberlog.StageLex, diags
	}
	d.Logger.InfoContext(lexCtx, "lexed", "tokens", len(tokens))

	parseCtx := emberlog.WithStage(ctx, emberlog.StageParse)
	stmts, diags := parser.ParseProgram(tokens)
	if hasErrors(diags) {
		d.Logger.WarnContext(parseCtx, "parsing failed", "diagnostics", len(diags))
		return nil, emberlog.StageParse, diags
	}

	resolveCtx := emberlog.WithStage(ctx, emberlog.StageResolve)
	_, resolveDiags := resolver.Resolve(stmts)
	diags = append(diags, resolveDiags...)
	if hasErrors(resolveDiags) {
		d.Logger.WarnContext(resolveCtx, "resolution failed", "diagnostics", len(resolveDiags))
		return nil, emberlog.StageResolve, diags
	}

	typesCtx := emberlog.WithStage(ctx, emberlog.StageTypes)
	_, typeDiags := types.Infer(stmts)
	diags = append(diags, typeDiags...)
	if hasErrors(typeDiags) {
		d.Logger.WarnContext(typesCtx, "type inference failed", "diagnostics", len(typeDiags))
		return nil, emberlog.StageTypes, diags
	}

	return stmts, "", diags
}

func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// HasErrors reports whether diags contains any error-severity entry —
// exported so callers (the CLI) can tell a halting diagnostic apart
// from a non-fatal note without re-implementing the check.
func HasErrors(diags []diag.Diagnostic) bool { return hasErrors(diags) }

// ReadSource loads filename from disk — the core performs no I/O of
// its own (spec §1/§5), so the driver is the one collaborator that
// touches the filesystem on the compile/check path.
func ReadSource(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", filename)
	}
	return string(data), nil
}
