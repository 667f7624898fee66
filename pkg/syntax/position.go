package syntax

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range represents a half-open span of source code.
type Range struct {
	Start Position
	End   Position
}

// Contains returns true if the range contains the given offset.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start.Offset && offset < r.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (r Range) IsValid() bool {
	return r.Start.IsValid() && r.End.IsValid()
}

// String returns "line:column-line:column".
func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// LineIndex maps byte offsets to line/column positions.
type LineIndex struct {
	src   []byte
	lines []int // byte offset of the first byte of each line
}

// NewLineIndex builds a line index over src.
func NewLineIndex(src []byte) *LineIndex {
	lines := []int{0}
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &LineIndex{src: src, lines: lines}
}

// LineCount returns the number of lines in the source.
func (li *LineIndex) LineCount() int {
	return len(li.lines)
}

// Position converts a byte offset into a Position.
// Offsets past the end of the source clamp to the end.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.src) {
		offset = len(li.src)
	}
	line := sort.Search(len(li.lines), func(i int) bool { return li.lines[i] > offset }) - 1
	start := li.lines[line]
	return Position{
		Line:   line + 1,
		Column: utf8.RuneCount(li.src[start:offset]) + 1,
		Offset: offset,
	}
}

// Range converts a pair of byte offsets into a Range.
func (li *LineIndex) Range(start, end int) Range {
	return Range{Start: li.Position(start), End: li.Position(end)}
}

// LineText returns the text of the 1-based line without its terminator.
func (li *LineIndex) LineText(line int) string {
	if line < 1 || line > len(li.lines) {
		return ""
	}
	start := li.lines[line-1]
	end := len(li.src)
	if line < len(li.lines) {
		end = li.lines[line] - 1
	}
	if end > start && li.src[end-1] == '\r' {
		end--
	}
	return string(li.src[start:end])
}
