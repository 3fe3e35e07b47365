package diag

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ANSI codes for terminal diagnostic output. Five constants don't earn
// a color library a place in go.mod — this stays stdlib.
const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// Formatter renders diagnostics Rust-compiler style: a severity/code
// header, the offending line(s) with underlines beneath, then notes
// and help text. Source files are read once per filename and cached.
type Formatter struct {
	sourceCache map[string]string
	// Colorize wraps severity headers and underlines in ANSI color
	// codes when true — set by NewColorFormatter; NewFormatter leaves
	// it off.
	Colorize bool
}

// NewFormatter returns a Formatter with colorization off — the right
// default for output piped to a file or another program.
func NewFormatter() *Formatter {
	return &Formatter{sourceCache: make(map[string]string)}
}

// NewColorFormatter returns a Formatter that colors its output, for a
// terminal.
func NewColorFormatter() *Formatter {
	return &Formatter{sourceCache: make(map[string]string), Colorize: true}
}

// LoadSource reads and caches filename's contents.
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

func (f *Formatter) color(code, s string) string {
	if !f.Colorize || code == "" {
		return s
	}
	return code + s + ansiReset
}

func (f *Formatter) severityColor(sev Severity) string {
	switch sev {
	case SeverityWarning:
		return ansiYellow
	case SeverityNote:
		return ansiCyan
	default:
		return ansiRed
	}
}

// Format prints d to stderr: header, source snippet with underlines
// (when d carries a span), then notes/help.
func (f *Formatter) Format(d Diagnostic) {
	spans := f.spansOf(d)
	if len(spans) == 0 {
		f.formatSimple(d)
		return
	}

	byFile := make(map[string][]LabeledSpan)
	for _, span := range spans {
		filename := span.Span.Filename
		if filename == "" {
			filename = "<unknown>"
		}
		byFile[filename] = append(byFile[filename], span)
	}

	f.printHeader(d)
	for filename, fileSpans := range byFile {
		src, err := f.LoadSource(filename)
		if err != nil {
			f.formatSimple(d)
			return
		}
		f.printFileSpans(filename, src, fileSpans)
	}
	f.printHelp(d)
}

// spansOf returns the spans to render for d: its LabeledSpans if any
// were attached, else its single primary Span, else nothing.
func (f *Formatter) spansOf(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}
	severity = f.color(f.severityColor(d.Severity), severity)

	if d.Code != "" {
		fmt.Fprintf(os.Stderr, "%s[%s]: %s\n", severity, d.Code, f.color(ansiBold, d.Message))
	} else {
		fmt.Fprintf(os.Stderr, "%s: %s\n", severity, f.color(ansiBold, d.Message))
	}
}

// printFileSpans prints filename's relevant lines — the span lines
// plus two lines of context on either side — with underlines beneath
// each span's line.
func (f *Formatter) printFileSpans(filename, src string, spans []LabeledSpan) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Span.Line != spans[j].Span.Line {
			return spans[i].Span.Line < spans[j].Span.Line
		}
		return spans[i].Span.Column < spans[j].Span.Column
	})

	lines := strings.Split(src, "\n")
	maxLine := len(lines)

	byLine := make(map[int][]LabeledSpan)
	for _, span := range spans {
		if line := span.Span.Line; line > 0 && line <= maxLine {
			byLine[line] = append(byLine[line], span)
		}
	}

	lineNumbers := make([]int, 0, len(byLine))
	for line := range byLine {
		lineNumbers = append(lineNumbers, line)
	}
	sort.Ints(lineNumbers)
	if len(lineNumbers) == 0 {
		return
	}

	contextStart := max(1, lineNumbers[0]-2)
	contextEnd := min(maxLine, lineNumbers[len(lineNumbers)-1]+2)
	lineNumWidth := len(fmt.Sprintf("%d", contextEnd))

	fmt.Fprintf(os.Stderr, "  --> %s\n", filename)
	fmt.Fprintf(os.Stderr, "   %s |\n", strings.Repeat(" ", lineNumWidth))

	hasPrimary := make(map[int]bool)
	for _, span := range spans {
		if span.Style == "primary" {
			hasPrimary[span.Span.Line] = true
		}
	}

	for lineNum := contextStart; lineNum <= contextEnd; lineNum++ {
		lineContent := ""
		if lineNum <= len(lines) {
			lineContent = lines[lineNum-1]
		}

		lineNumStr := fmt.Sprintf("%*d", lineNumWidth, lineNum)
		fmt.Fprintf(os.Stderr, " %s | %s\n", lineNumStr, lineContent)

		if lineSpans := byLine[lineNum]; len(lineSpans) > 0 {
			f.printUnderlines(lineNumWidth, lineContent, lineSpans, hasPrimary[lineNum])
		}
	}

	fmt.Fprintf(os.Stderr, "   %s |\n", strings.Repeat(" ", lineNumWidth))
}

// printUnderlines prints a `^`-under-primary, `~`-under-secondary line
// beneath lineContent, followed by each span's inline label.
func (f *Formatter) printUnderlines(lineNumWidth int, lineContent string, spans []LabeledSpan, hasPrimary bool) {
	underline := make([]byte, len(lineContent))
	for i := range underline {
		underline[i] = ' '
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Span.Column < spans[j].Span.Column
	})

	mark := func(style string, ch byte, overwrite bool) {
		for _, span := range spans {
			if span.Style != style {
				continue
			}
			start := max(0, span.Span.Column-1)
			end := min(len(underline), span.Span.Column-1+max(1, span.Span.End-span.Span.Start))
			for i := start; i < end && i < len(underline); i++ {
				if overwrite || underline[i] == ' ' {
					underline[i] = ch
				}
			}
		}
	}
	mark("primary", '^', true)
	mark("secondary", '~', false)

	rightmost := -1
	for i := len(underline) - 1; i >= 0; i-- {
		if underline[i] != ' ' {
			rightmost = i
			break
		}
	}
	if rightmost == -1 {
		return
	}

	underlineStr := f.color(ansiRed+ansiBold, string(underline))
	fmt.Fprintf(os.Stderr, "   %s | %s", strings.Repeat(" ", lineNumWidth), underlineStr)

	var primaryLabel string
	var secondaryLabels []string
	for _, span := range spans {
		if span.Label == "" {
			continue
		}
		if span.Style == "primary" {
			primaryLabel = span.Label
		} else {
			secondaryLabels = append(secondaryLabels, span.Label)
		}
	}

	if primaryLabel != "" {
		fmt.Fprintf(os.Stderr, " %s", primaryLabel)
	}
	fmt.Fprintf(os.Stderr, "\n")

	for _, label := range secondaryLabels {
		fmt.Fprintf(os.Stderr, "   %s |", strings.Repeat(" ", lineNumWidth))
		labelPos := len(lineContent) + 1
		if labelPos < rightmost+2 {
			labelPos = rightmost + 2
		}
		if labelPos > len(lineContent) {
			fmt.Fprintf(os.Stderr, "%s", strings.Repeat(" ", labelPos-len(lineContent)))
		}
		fmt.Fprintf(os.Stderr, " %s\n", label)
	}
}

func (f *Formatter) printHelp(d Diagnostic) {
	for _, step := range d.ProofChain {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  = note: %s\n", step.Message)
		if step.Span.IsValid() {
			fmt.Fprintf(os.Stderr, "           at %s\n", step.Span.String())
		}
	}

	for _, note := range d.Notes {
		fmt.Fprintf(os.Stderr, "\n  = note: %s\n", note)
	}

	if d.Help != "" {
		fmt.Fprintf(os.Stderr, "\nhelp: %s\n", d.Help)
	} else if d.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "\nhelp: %s\n", d.Suggestion)
	}
}

// formatSimple renders a diagnostic with no source snippet — used
// when d carries no span, or its file can't be read.
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(os.Stderr, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
