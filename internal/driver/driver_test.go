package driver

import (
	"context"
	"strings"
	"testing"
)

func TestCompileEndToEndSimpleFunction(t *testing.T) {
	d := New(nil)
	src := "fn add(a, b) do\n  return a + b\nend\n"

	result := d.Compile(context.Background(), "add.ember", src)
	if !result.OK() {
		t.Fatalf("unexpected diagnostics at stage %s: %v", result.Stage, result.Diagnostics)
	}
	if !strings.Contains(result.Source, "def add(a, b):") {
		t.Fatalf("got %q, want a def add(a, b): line", result.Source)
	}
	if !strings.Contains(result.Source, "return (a + b)") {
		t.Fatalf("got %q, want a parenthesised return", result.Source)
	}
}

func TestCompileStopsAtLexerOnInvalidCharacter(t *testing.T) {
	d := New(nil)
	result := d.Compile(context.Background(), "bad.ember", "let x = `\n")

	if result.OK() {
		t.Fatalf("expected lexing to fail")
	}
	if result.Stage != "lex" {
		t.Fatalf("got stage %q, want lex", result.Stage)
	}
	if result.Source != "" {
		t.Fatalf("expected no emitted source on failure, got %q", result.Source)
	}
}

func TestCompileStopsAtResolverOnUndefinedName(t *testing.T) {
	d := New(nil)
	result := d.Compile(context.Background(), "undef.ember", "let x = y\n")

	if result.OK() {
		t.Fatalf("expected resolution to fail")
	}
	if result.Stage != "resolve" {
		t.Fatalf("got stage %q, want resolve", result.Stage)
	}
}

func TestCheckReturnsNoDiagnosticsForWellFormedProgram(t *testing.T) {
	d := New(nil)
	diags := d.Check(context.Background(), "ok.ember", "let x = 1\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestCheckDoesNotReachEmission(t *testing.T) {
	d := New(nil)
	// Check only runs the frontend; a program that would lower fine
	// but whose frontend already passes should produce no diagnostics
	// and Check never touches mir/emit at all (exercised implicitly:
	// there is no Source field on Check's return type).
	diags := d.Check(context.Background(), "ok.ember", "fn f() do\n  return 1\nend\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestCompileSurvivesNonExhaustiveMatchAsANonFatalNote(t *testing.T) {
	d := New(nil)
	src := "fn describe(n) do\n  match n do\n    1 => return \"one\"\n  end\nend\n"

	result := d.Compile(context.Background(), "describe.ember", src)
	if !result.OK() {
		t.Fatalf("a non-exhaustive match must not halt compilation, got: %v", result.Diagnostics)
	}
	if result.Source == "" {
		t.Fatalf("expected emission to still run")
	}
	found := false
	for _, d := range result.Diagnostics {
		if d.Code == "TYPE_NON_EXHAUSTIVE_MATCH" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a non-exhaustive-match note, got: %v", result.Diagnostics)
	}
}

func TestDefaultOutputPathReplacesSourceExtension(t *testing.T) {
	if got := DefaultOutputPath("prog.ember"); got != "prog.py" {
		t.Fatalf("got %q, want prog.py", got)
	}
}

func TestDefaultOutputPathAppendsPyWithoutRecognisedExtension(t *testing.T) {
	if got := DefaultOutputPath("prog"); got != "prog.py" {
		t.Fatalf("got %q, want prog.py", got)
	}
}
