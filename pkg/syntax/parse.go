package syntax

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parse parses source text into a scope-resolved Tree.
//
// Syntax errors are returned as *ParseError. A tree is only returned when the
// whole file parsed cleanly.
func Parse(filename string, media MediaType, src []byte) (*Tree, error) {
	return ParseContext(context.Background(), filename, media, src)
}

// ParseContext is like Parse but allows the parse to be cancelled.
func ParseContext(ctx context.Context, filename string, media MediaType, src []byte) (*Tree, error) {
	lang := language(media)
	if lang == nil {
		return nil, fmt.Errorf("%s: %w: %s", filename, ErrUnsupportedMediaType, media)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	st, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer st.Close()

	tree := &Tree{
		Filename:  filename,
		MediaType: media,
		Source:    src,
		lines:     NewLineIndex(src),
	}

	cursor := sitter.NewTreeCursor(st.RootNode())
	defer cursor.Close()
	tree.Root = tree.convert(cursor, nil)

	if st.RootNode().HasError() {
		if perr := tree.firstError(); perr != nil {
			return nil, perr
		}
	}

	tree.scopes = analyzeScopes(tree)
	return tree, nil
}

func language(media MediaType) *sitter.Language {
	switch media {
	case MediaTypeJavaScript, MediaTypeJSX, MediaTypeMjs, MediaTypeCjs:
		return javascript.GetLanguage()
	case MediaTypeTypeScript, MediaTypeMts, MediaTypeCts, MediaTypeDts:
		return typescript.GetLanguage()
	case MediaTypeTSX:
		return tsx.GetLanguage()
	default:
		return nil
	}
}

// convert copies the subtree under the cursor into Go-owned nodes.
func (t *Tree) convert(c *sitter.TreeCursor, parent *Node) *Node {
	sn := c.CurrentNode()
	n := &Node{
		Kind:    sn.Type(),
		Field:   c.CurrentFieldName(),
		Named:   sn.IsNamed(),
		Missing: sn.IsMissing(),
		Range:   t.lines.Range(int(sn.StartByte()), int(sn.EndByte())),
		Parent:  parent,
		tree:    t,
	}
	if n.Kind == "comment" {
		t.Comments = append(t.Comments, newComment(n.Text(), n.Range))
	}

	if c.GoToFirstChild() {
		for {
			n.Children = append(n.Children, t.convert(c, n))
			if !c.GoToNextSibling() {
				break
			}
		}
		c.GoToParent()
	}
	return n
}

// firstError returns the first error or missing node in document order.
func (t *Tree) firstError() *ParseError {
	var found *Node
	t.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == "ERROR" || n.Missing {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}

	var msg string
	if found.Missing {
		msg = fmt.Sprintf("Expected %q", found.Kind)
	} else {
		msg = fmt.Sprintf("Unexpected token %q", snippet(found.Text()))
	}
	return &ParseError{Filename: t.Filename, Message: msg, Range: found.Range}
}

// snippet returns the first word of text, capped at 20 runes.
func snippet(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, " \t\r\n"); i > 0 {
		text = text[:i]
	}
	if utf8.RuneCountInString(text) > 20 {
		r := []rune(text)
		text = string(r[:20]) + "…"
	}
	return text
}
