package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/mattn/go-runewidth"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

const tabWidth = 4

// FrameOptions controls CodeFrame.
type FrameOptions struct {
	// Filename picks the highlighting lexer.
	Filename string
	// Context is the number of lines shown around the start line.
	Context int
	// Highlight enables terminal syntax highlighting.
	Highlight bool
}

// CodeFrame renders the source lines around rng with a caret underline
// below the start line. It returns "" when rng is outside source.
func CodeFrame(source string, rng syntax.Range, opts FrameOptions) string {
	lines := strings.Split(source, "\n")
	line := rng.Start.Line
	if line < 1 || line > len(lines) {
		return ""
	}
	first := max(1, line-opts.Context)
	last := min(len(lines), line+opts.Context)
	gutter := len(strconv.Itoa(last))

	var lexer chroma.Lexer
	if opts.Highlight {
		lexer = frameLexer(opts.Filename)
	}

	var b strings.Builder
	for n := first; n <= last; n++ {
		text := expandTabs(strings.TrimSuffix(lines[n-1], "\r"))
		shown := text
		if lexer != nil {
			shown = highlight(lexer, text)
		}
		marker := " "
		if n == line {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %*d | %s\n", marker, gutter, n, shown)
		if n == line {
			fmt.Fprintf(&b, "  %s | %s\n", strings.Repeat(" ", gutter), underline(lines[n-1], rng))
		}
	}
	return b.String()
}

// underline returns spaces up to the range start followed by carets under
// the range, measured in terminal cells.
func underline(raw string, rng syntax.Range) string {
	runes := []rune(strings.TrimSuffix(raw, "\r"))
	start := clamp(rng.Start.Column-1, 0, len(runes))
	end := len(runes)
	if rng.End.Line == rng.Start.Line {
		end = clamp(rng.End.Column-1, start, len(runes))
	}
	pad := runewidth.StringWidth(expandTabs(string(runes[:start])))
	width := runewidth.StringWidth(expandTabs(string(runes[start:end])))
	return strings.Repeat(" ", pad) + strings.Repeat("^", max(1, width))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func frameLexer(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Get("typescript")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// highlight colors a single line, falling back to the plain text.
func highlight(lexer chroma.Lexer, text string) string {
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	var buf bytes.Buffer
	if err := formatters.TTY256.Format(&buf, style, it); err != nil {
		return text
	}
	return strings.ReplaceAll(buf.String(), "\n", "")
}
