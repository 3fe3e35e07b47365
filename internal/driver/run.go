package driver

import (
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/ember-lang/emberc/internal/emberlog"
)

// interpreterCandidates is the short ordered list of executable names
// probed to find a target interpreter (spec §4.5 "Run mode"); the
// first one found on PATH wins. Python's own launcher convention
// ("python3" before the ambiguous "python") is honoured the same way
// a shell script would.
var interpreterCandidates = []string{"python3", "python"}

// FindInterpreter probes interpreterCandidates in order and returns
// the path to the first one found on PATH.
func FindInterpreter() (string, error) {
	for _, name := range interpreterCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.Errorf("no target interpreter found (looked for %v)", interpreterCandidates)
}

// Run compiles filename and, on success, writes the emitted text to a
// temporary file and invokes the probed interpreter against it,
// streaming the child's stdout/stderr to this process's own. The
// temporary file is removed once the child exits.
func (d *Driver) Run(ctx context.Context, filename, text string) (Result, error) {
	result := d.Compile(ctx, filename, text)
	if !result.OK() {
		return result, nil
	}

	interpreter, err := FindInterpreter()
	if err != nil {
		return result, err
	}

	out, err := os.CreateTemp("", "emberc-run-*.py")
	if err != nil {
		return result, errors.Wrap(err, "creating temporary output file")
	}
	defer os.Remove(out.Name())

	if _, err := out.WriteString(result.Source); err != nil {
		out.Close()
		return result, errors.Wrapf(err, "writing %s", out.Name())
	}
	if err := out.Close(); err != nil {
		return result, errors.Wrapf(err, "closing %s", out.Name())
	}

	runCtx := emberlog.WithStage(ctx, emberlog.StageDriver)
	d.Logger.InfoContext(runCtx, "invoking interpreter", "interpreter", interpreter, "file", out.Name())

	cmd := exec.CommandContext(ctx, interpreter, out.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return result, errors.Wrapf(err, "running %s", interpreter)
	}
	return result, nil
}
