package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ember-lang/emberc/internal/driver"
	"github.com/ember-lang/emberc/internal/emberconfig"
	"github.com/ember-lang/emberc/internal/emberlog"
)

const configFile = "ember.toml"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: emberc <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  compile <file> [-o out]   Compile a source file to Python\n")
		fmt.Fprintf(os.Stderr, "  check <file>              Check a source file without emitting\n")
		fmt.Fprintf(os.Stderr, "  run <file>                Compile and run a source file\n")
		fmt.Fprintf(os.Stderr, "  fmt <file>                Format a source file\n")
		fmt.Fprintf(os.Stderr, "  lint <file>                Lint a source file\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "compile":
		os.Exit(runCompile(args))
	case "check":
		os.Exit(runCheck(args))
	case "run":
		os.Exit(runRun(args))
	case "fmt":
		os.Exit(runFmt(args))
	case "lint":
		os.Exit(runLint(args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

// newDriver loads ember.toml (if present) and builds a Driver logging
// to stderr at the configured level/format — every verb that touches
// the core shares this setup.
func newDriver() *driver.Driver {
	cfg, err := emberconfig.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "emberc: %v\n", err)
		cfg = emberconfig.Default()
	}
	logger := emberlog.New(os.Stderr, cfg.Log.Format, emberlog.ParseLevel(cfg.Log.Level))
	return driver.New(logger)
}

func readSourceOrExit(path string) string {
	text, err := driver.ReadSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "emberc: %v\n", err)
		os.Exit(1)
	}
	return text
}

// runCompile implements `compile <path> [-o out]` (§6.1): on success
// writes the emitted Python to -o (or DefaultOutputPath) and exits 0;
// on any diagnostic, prints them and exits non-zero without writing
// any output file (§4.6: "no partial target file is written for
// failed compilations").
func runCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	out := fs.String("o", "", "output path (default: input with a .py extension)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: emberc compile <file> [-o out]\n")
		return 1
	}
	path := fs.Arg(0)
	fs.Parse(fs.Args()[1:])
	text := readSourceOrExit(path)

	d := newDriver()
	result := d.Compile(context.Background(), path, text)
	driver.PrintDiagnostics(result.Diagnostics)
	if !result.OK() {
		return 1
	}

	outPath := *out
	if outPath == "" {
		outPath = driver.DefaultOutputPath(path)
	}
	if err := driver.WriteOutput(outPath, result.Source); err != nil {
		fmt.Fprintf(os.Stderr, "emberc: %v\n", err)
		return 1
	}
	return 0
}

// runCheck implements `check <path>` (§6.1): runs the frontend only,
// printing diagnostics (if any) and exiting non-zero on any of them.
func runCheck(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: emberc check <file>\n")
		return 1
	}
	path := args[0]
	text := readSourceOrExit(path)

	d := newDriver()
	diags := d.Check(context.Background(), path, text)
	driver.PrintDiagnostics(diags)
	if driver.HasErrors(diags) {
		return 1
	}
	return 0
}

// runRun implements `run <path>` (§6.1, §4.5 "Run mode"): compiles,
// then hands the emitted program to a probed target interpreter.
func runRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: emberc run <file>\n")
		return 1
	}
	path := args[0]
	text := readSourceOrExit(path)

	d := newDriver()
	result, err := d.Run(context.Background(), path, text)
	driver.PrintDiagnostics(result.Diagnostics)
	if !result.OK() {
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "emberc: %v\n", err)
		return 1
	}
	return 0
}

// runFmt and runLint are placeholders (§6.1: "fmt and lint are
// placeholders" — only compile, check, and run drive the core).
func runFmt(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: emberc fmt <file>\n")
		return 1
	}
	fmt.Printf("Formatting %s... (not implemented)\n", args[0])
	return 0
}

func runLint(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: emberc lint <file>\n")
		return 1
	}
	fmt.Printf("Linting %s... (not implemented)\n", args[0])
	return 0
}
