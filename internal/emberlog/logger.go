// Package emberlog is the driver's structured logger. It adapts
// reusee-tai's logs package — a slog.Handler fanned out over a level
// var, wrapped to inject a context-scoped tag into every record — from
// distributed-tracing spans to compiler pipeline stages: every record
// logged while a stage is running is tagged with that stage's name,
// so a single `emberc compile` invocation's log lines can be filtered
// by which part of the pipeline produced them.
package emberlog

import (
	"context"
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

// Logger matches reusee-tai's own alias: slog.Logger is the type
// every caller actually wants, the Logger name is just for readability
// at call sites.
type Logger = *slog.Logger

var level = new(slog.LevelVar)

// SetLevel adjusts the shared level var; every Logger built by New
// observes the change immediately, the same way the teacher's -log-*
// flags flip a package-level slog.LevelVar.
func SetLevel(l slog.Level) { level.Set(l) }

// ParseLevel maps the four levels spec §7/ember.toml's [log] table
// allows ("debug", "info", "warn", "error") onto slog.Level, defaulting
// to Info for anything else rather than failing — a bad level string
// degrades a diagnostic stream, it should never abort a compile.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a Logger writing to w. format selects between a
// slog.TextHandler (the default) and a slog.JSONHandler; either way
// the handler is wrapped so every record picks up the running stage's
// tag, and handed to slogmulti.Fanout so a second destination (e.g. a
// file, in a future driver mode) can be added without touching this
// constructor's callers.
func New(w io.Writer, format string, lvl slog.Level) Logger {
	SetLevel(lvl)
	opts := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	if format == "json" {
		base = slog.NewJSONHandler(w, opts)
	} else {
		base = slog.NewTextHandler(w, opts)
	}

	return slog.New(&stageHandler{Handler: slogmulti.Fanout(base)})
}

// Discard builds a Logger whose records go nowhere, for callers (tests,
// library embedders) that want the driver's logging calls to be no-ops.
func Discard() Logger {
	return slog.New(&stageHandler{Handler: slogmulti.Fanout(slog.NewTextHandler(io.Discard, nil))})
}

// stageCtxKey is unexported so only WithStage can mint values for it.
type stageCtxKey struct{}

// Stage names one phase of the compiler pipeline (spec §4.6's stage
// taxonomy): one per diag.Stage but spelled in the driver's short form
// (`lex`, `parse`, `resolve`, `types`, `lower`, `emit`), plus `driver`
// for the driver's own work, kept as a plain string here instead of importing internal/diag so emberlog has
// no dependency on the compiler core (spec §1: the core knows nothing
// about logging).
type Stage string

const (
	StageLex      Stage = "lex"
	StageParse    Stage = "parse"
	StageResolve  Stage = "resolve"
	StageTypes    Stage = "types"
	StageLower    Stage = "lower"
	StageEmit     Stage = "emit"
	StageDriver   Stage = "driver"
)

// WithStage returns a context tagged with stage; loggers built by New
// add that tag to every record logged through the returned context.
func WithStage(ctx context.Context, stage Stage) context.Context {
	return context.WithValue(ctx, stageCtxKey{}, stage)
}

// stageOf reports the stage tagged on ctx, if any.
func stageOf(ctx context.Context) (Stage, bool) {
	v := ctx.Value(stageCtxKey{})
	if v == nil {
		return "", false
	}
	return v.(Stage), true
}
