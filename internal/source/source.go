// Package source tracks file identity and byte-offset-to-line/column
// mapping for diagnostics (spec §3.1).
package source

import "strings"

// File holds one source file's text and its line-start offsets, used to
// translate a byte offset into a 1-based line/column pair.
type File struct {
	Name        string
	Text        string
	lineOffsets []int // byte offset of the first rune of each line
}

// NewFile indexes the line starts of text once, up front, so later
// Position lookups are O(log n) rather than O(n).
func NewFile(name, text string) *File {
	f := &File{Name: name, Text: text}
	f.lineOffsets = append(f.lineOffsets, 0)
	for i, r := range text {
		if r == '\n' {
			f.lineOffsets = append(f.lineOffsets, i+1)
		}
	}
	return f
}

// Position returns the 1-based line and column for a byte offset.
func (f *File) Position(offset int) (line, column int) {
	lo, hi := 0, len(f.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineOffsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line = lo + 1
	column = offset - f.lineOffsets[lo] + 1
	return line, column
}

// Line returns the text of the given 1-based line number, without its
// trailing newline.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineOffsets) {
		return ""
	}
	start := f.lineOffsets[n-1]
	end := len(f.Text)
	if n < len(f.lineOffsets) {
		end = f.lineOffsets[n] - 1
	}
	if end < start {
		end = start
	}
	return strings.TrimSuffix(f.Text[start:end], "\r")
}

// Map registers source files by name for diagnostic rendering. A
// compilation owns exactly one Map; it is discarded once emission
// completes (spec §3.7).
type Map struct {
	files map[string]*File
}

// NewMap creates an empty source map.
func NewMap() *Map {
	return &Map{files: make(map[string]*File)}
}

// Add registers a file's text under name and returns its File.
func (m *Map) Add(name, text string) *File {
	f := NewFile(name, text)
	m.files[name] = f
	return f
}

// Get returns the registered file by name, or nil if unregistered.
func (m *Map) Get(name string) *File {
	return m.files[name]
}
