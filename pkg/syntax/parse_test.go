package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findNode returns the first node of the given kind whose text equals text.
func findNode(t *testing.T, tree *Tree, kind, text string) *Node {
	t.Helper()
	var found *Node
	tree.Walk(func(n *Node) bool {
		if found == nil && n.Kind == kind && n.Text() == text {
			found = n
		}
		return found == nil
	})
	require.NotNil(t, found, "node %s %q not found", kind, text)
	return found
}

func TestParse_ExportDeclaration(t *testing.T) {
	tree, err := Parse("routes/index.tsx", MediaTypeTSX, []byte("export const handlers = {}"))
	require.NoError(t, err)

	assert.Equal(t, "program", tree.Root.Kind)
	exports := tree.Root.NamedChildren()
	require.Len(t, exports, 1)
	assert.Equal(t, "export_statement", exports[0].Kind)

	decl := exports[0].ChildByField("declaration")
	require.NotNil(t, decl)
	assert.Equal(t, "lexical_declaration", decl.Kind)
	assert.True(t, decl.HasToken("const"))

	declarator := decl.FirstNamedChild("variable_declarator")
	require.NotNil(t, declarator)
	name := declarator.ChildByField("name")
	require.NotNil(t, name)
	assert.Equal(t, "handlers", name.Text())
	assert.Equal(t, Position{Line: 1, Column: 14, Offset: 13}, name.Range.Start)
	assert.Equal(t, Position{Line: 1, Column: 22, Offset: 21}, name.Range.End)
	assert.Same(t, declarator, name.Parent)
	assert.Same(t, tree, name.Tree())
}

func TestParse_Comments(t *testing.T) {
	src := "// first\nlet a = 1; /* second */\nfunction f() {\n  // third\n}\n"
	tree, err := Parse("a.js", MediaTypeJavaScript, []byte(src))
	require.NoError(t, err)

	require.Len(t, tree.Comments, 3)

	assert.True(t, tree.Comments[0].IsLineComment())
	assert.Equal(t, "// first", tree.Comments[0].Text)
	assert.Equal(t, "first", tree.Comments[0].Body())
	assert.Equal(t, 1, tree.Comments[0].Range.Start.Line)

	assert.True(t, tree.Comments[1].IsBlockComment())
	assert.Equal(t, "second", tree.Comments[1].Body())
	assert.Equal(t, 2, tree.Comments[1].Range.Start.Line)

	assert.Equal(t, "third", tree.Comments[2].Body())
	assert.Equal(t, 4, tree.Comments[2].Range.Start.Line)
}

func TestComment_Body(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"// a b", "a b"},
		{"/* a */", "a"},
		{"/** a */", "a"},
		{"/**/", ""},
		{"/**\n * a\n */", "* a"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			c := newComment(tt.text, Range{})
			assert.Equal(t, tt.want, c.Body())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		media MediaType
		src   string
	}{
		{"dangling operator", MediaTypeJavaScript, "let x = ;"},
		{"unclosed block", MediaTypeJavaScript, "function f() {"},
		{"type annotation in javascript", MediaTypeJavaScript, "let x: any = 1;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse("bad.js", tt.media, []byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, tree)
			assert.True(t, errors.Is(err, ErrParse))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "bad.js", perr.Filename)
			assert.NotEmpty(t, perr.Message)
			assert.True(t, perr.Range.Start.IsValid())
		})
	}
}

func TestParse_TypeScript(t *testing.T) {
	tree, err := Parse("a.ts", MediaTypeTypeScript, []byte("let x: any = 1;\ninterface Foo { a: string }\n"))
	require.NoError(t, err)

	anyType := findNode(t, tree, "predefined_type", "any")
	assert.Equal(t, 1, anyType.Range.Start.Line)
	assert.NotNil(t, anyType.Ancestor("type_annotation"))
}

func TestParse_UnsupportedMediaType(t *testing.T) {
	_, err := Parse("a.css", MediaTypeUnknown, []byte("body {}"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedMediaType))
	assert.False(t, errors.Is(err, ErrParse))
}

func TestParse_EmptySource(t *testing.T) {
	tree, err := Parse("empty.js", MediaTypeJavaScript, []byte(""))
	require.NoError(t, err)
	assert.Equal(t, "program", tree.Root.Kind)
	assert.Empty(t, tree.Root.NamedChildren())
	assert.Empty(t, tree.Comments)
}

func TestTree_WalkDocumentOrder(t *testing.T) {
	tree, err := Parse("a.js", MediaTypeJavaScript, []byte("a(b, c);"))
	require.NoError(t, err)

	var idents []string
	tree.Walk(func(n *Node) bool {
		if n.Kind == "identifier" {
			idents = append(idents, n.Text())
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, idents)
}
