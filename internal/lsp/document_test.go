package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///test/main.ts"
	content := "let a = 1;"

	store.Open(uri, "typescript", content, 1)

	doc := store.Get(uri)
	if doc == nil {
		t.Fatal("expected document to exist")
	}
	if doc.URI != uri {
		t.Errorf("expected URI %s, got %s", uri, doc.URI)
	}
	if doc.Content != content {
		t.Errorf("expected content %q, got %q", content, doc.Content)
	}
	if doc.Version != 1 {
		t.Errorf("expected version 1, got %d", doc.Version)
	}

	store.Close(uri)
	if store.Get(uri) != nil {
		t.Error("expected document to be nil after close")
	}
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///test/main.ts"
	first := store.Open(uri, "typescript", "let a = 1;", 1)

	updated := store.Update(uri, "const a = 1;", 2)
	require.NotNil(t, updated)
	assert.Equal(t, "const a = 1;", store.Get(uri).Content)
	assert.Equal(t, 2, store.Get(uri).Version)
	assert.Equal(t, syntax.MediaTypeTypeScript, updated.MediaType)

	// The previously returned document is untouched.
	assert.Equal(t, "let a = 1;", first.Content)

	assert.Nil(t, store.Update("file:///test/other.ts", "x", 1), "updating an unopened document")
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()
	store.Open("file:///b.ts", "", "", 1)
	store.Open("file:///a.ts", "", "", 1)

	assert.Equal(t, []string{"file:///a.ts", "file:///b.ts"}, store.List())
}

func TestDocumentMediaType(t *testing.T) {
	tests := []struct {
		uri        string
		languageID string
		want       syntax.MediaType
	}{
		{"file:///src/app.tsx", "", syntax.MediaTypeTSX},
		{"file:///src/app.js", "typescript", syntax.MediaTypeJavaScript},
		{"untitled:Untitled-1", "typescriptreact", syntax.MediaTypeTSX},
		{"untitled:Untitled-2", "markdown", syntax.MediaTypeUnknown},
	}

	store := NewDocumentStore()
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			doc := store.Open(tt.uri, tt.languageID, "", 1)
			assert.Equal(t, tt.want, doc.MediaType)
		})
	}
}

func TestPositionOffsetConversion(t *testing.T) {
	// "é" is two bytes and one UTF-16 unit; "😀" is four bytes and two units.
	doc := &Document{Content: "let é = 1;\nconst s = \"😀\"; x\r\nend"}
	doc.Lines = computeLineOffsets(doc.Content)

	tests := []struct {
		name   string
		pos    Position
		offset int
	}{
		{"start", Position{0, 0}, 0},
		{"after two byte rune", Position{0, 5}, 6},
		{"second line start", Position{1, 0}, 12},
		{"after surrogate pair", Position{1, 13}, 12 + len("const s = \"😀")},
		{"past end of line clamps before CR", Position{1, 100}, 12 + len("const s = \"😀\"; x")},
		{"last line", Position{2, 3}, len(doc.Content)},
		{"past last line", Position{9, 0}, len(doc.Content)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos))
		})
	}

	t.Run("round trip", func(t *testing.T) {
		for _, pos := range []Position{{0, 0}, {0, 5}, {1, 13}, {2, 3}} {
			assert.Equal(t, pos, doc.OffsetToPosition(doc.PositionToOffset(pos)))
		}
	})

	t.Run("offset out of range clamps", func(t *testing.T) {
		assert.Equal(t, Position{0, 0}, doc.OffsetToPosition(-4))
		assert.Equal(t, Position{2, 3}, doc.OffsetToPosition(len(doc.Content)+10))
	})
}

func TestToRange(t *testing.T) {
	doc := &Document{Content: "// ü\nlet a;"}
	doc.Lines = computeLineOffsets(doc.Content)

	rng := doc.ToRange(syntax.Range{
		Start: syntax.Position{Line: 2, Column: 1, Offset: 6},
		End:   syntax.Position{Line: 2, Column: 4, Offset: 9},
	})
	assert.Equal(t, Range{Start: Position{1, 0}, End: Position{1, 3}}, rng)
}

func TestDocumentLines(t *testing.T) {
	doc := &Document{Content: "  // leaplint-ignore no-var\r\nvar a = 1;"}
	doc.Lines = computeLineOffsets(doc.Content)

	assert.Equal(t, "  // leaplint-ignore no-var", doc.GetLine(0))
	assert.Equal(t, "var a = 1;", doc.GetLine(1))
	assert.Empty(t, doc.GetLine(5))
	assert.Equal(t, "  // leaplint", doc.GetTextBefore(Position{0, 13}))

	word, rng := doc.GetWordAtPosition(Position{0, 24})
	assert.Equal(t, "no-var", word)
	assert.Equal(t, Range{Start: Position{0, 21}, End: Position{0, 27}}, rng)

	word, _ = doc.GetWordAtPosition(Position{1, 7})
	assert.Empty(t, word)
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/tmp/my project/a.ts", URIToPath("file:///tmp/my%20project/a.ts"))
	assert.Equal(t, "untitled:1", URIToPath("untitled:1"))
	assert.Equal(t, "file:///tmp/a.ts", PathToURI("/tmp/a.ts"))
	assert.Equal(t, "file:///tmp/a.ts", PathToURI("file:///tmp/a.ts"))
}
