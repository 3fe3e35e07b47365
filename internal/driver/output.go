package driver

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// sourceExt is the conventional extension for Language source files.
const sourceExt = ".ember"

// DefaultOutputPath derives the `compile` verb's default output
// location from its input path when `-o` is not given: the source
// extension is replaced with `.py`, or `.py` is appended if the input
// has no recognised extension.
func DefaultOutputPath(inputPath string) string {
	if strings.HasSuffix(inputPath, sourceExt) {
		return strings.TrimSuffix(inputPath, sourceExt) + ".py"
	}
	return inputPath + ".py"
}

// WriteOutput writes source to path. Spec §4.6: "no partial target
// file is written for failed compilations" — callers must only invoke
// this after confirming Result.OK().
func WriteOutput(path, source string) error {
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
