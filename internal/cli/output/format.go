package output

import (
	"fmt"
	"strings"
)

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatCodeBlock returns a fenced markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimSuffix(code, "\n") + "\n```"
}
