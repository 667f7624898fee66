package syntax

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // // comment
	BlockComment                    // /* comment */
)

// Comment represents a source comment with position.
type Comment struct {
	Kind  CommentKind
	Text  string // includes delimiters (// or /* */)
	Range Range
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment
}

// Body returns the comment text with delimiters removed and surrounding
// whitespace trimmed. The extra opening asterisk of a JSDoc comment is
// dropped; continuation-line asterisks are left alone.
func (c *Comment) Body() string {
	text := c.Text
	switch c.Kind {
	case LineComment:
		text = strings.TrimPrefix(text, "//")
	case BlockComment:
		text = strings.TrimSuffix(text, "*/")
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimPrefix(text, "*")
	}
	return strings.TrimSpace(text)
}

func newComment(text string, rng Range) Comment {
	kind := LineComment
	if strings.HasPrefix(text, "/*") {
		kind = BlockComment
	}
	return Comment{Kind: kind, Text: text, Range: rng}
}
