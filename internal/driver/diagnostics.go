package driver

import "github.com/ember-lang/emberc/internal/diag"

// PrintDiagnostics renders every diagnostic in diags using a single
// shared diag.Formatter, so repeated diagnostics against the same file
// reuse that file's cached source text.
func PrintDiagnostics(diags []diag.Diagnostic) {
	f := diag.NewFormatter()
	for _, d := range diags {
		f.Format(d)
	}
}
