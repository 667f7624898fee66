package lsp

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/leapstack-labs/leaplint/pkg/syntax"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/file.ts)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups

	// MediaType comes from the URI's extension, or from the client's
	// language id when the extension says nothing.
	MediaType syntax.MediaType
}

// languageMediaTypes maps LSP language ids to media types.
var languageMediaTypes = map[string]syntax.MediaType{
	"javascript":      syntax.MediaTypeJavaScript,
	"javascriptreact": syntax.MediaTypeJSX,
	"typescript":      syntax.MediaTypeTypeScript,
	"typescriptreact": syntax.MediaTypeTSX,
}

func mediaTypeFor(uri, languageID string) syntax.MediaType {
	if m := syntax.MediaTypeFromPath(URIToPath(uri)); m != syntax.MediaTypeUnknown {
		return m
	}
	return languageMediaTypes[languageID]
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document in the store.
func (s *DocumentStore) Open(uri, languageID, content string, version int) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &Document{
		URI:       uri,
		Content:   content,
		Version:   version,
		Lines:     computeLineOffsets(content),
		MediaType: mediaTypeFor(uri, languageID),
	}
	s.documents[uri] = doc
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces an open document's content. Documents are immutable once
// stored, so readers holding the previous version are unaffected.
func (s *DocumentStore) Update(uri string, content string, version int) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.documents[uri]
	if !ok {
		return nil
	}
	doc := &Document{
		URI:       uri,
		Content:   content,
		Version:   version,
		Lines:     computeLineOffsets(content),
		MediaType: prev.MediaType,
	}
	s.documents[uri] = doc
	return doc
}

// List returns all open document URIs, sorted.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0} // First line starts at offset 0

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// lineBounds returns the byte range of a zero-based line, without the
// line terminator.
func (d *Document) lineBounds(line int) (int, int) {
	start := d.Lines[line]
	end := len(d.Content)
	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1
	}
	if end > start && d.Content[end-1] == '\r' {
		end--
	}
	return start, end
}

// PositionToOffset converts a Position to a byte offset in the document.
// Characters past the end of a line clamp to the line end.
func (d *Document) PositionToOffset(pos Position) int {
	if d == nil || len(d.Lines) == 0 {
		return 0
	}

	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.Content)
	}

	start, end := d.lineBounds(line)
	units := int(pos.Character)
	offset := start
	for offset < end && units > 0 {
		r, size := utf8.DecodeRuneInString(d.Content[offset:end])
		units -= utf16.RuneLen(r)
		if units < 0 {
			break
		}
		offset += size
	}
	return offset
}

// OffsetToPosition converts a byte offset to a Position.
func (d *Document) OffsetToPosition(offset int) Position {
	if d == nil || len(d.Lines) == 0 {
		return Position{}
	}

	offset = max(0, min(offset, len(d.Content)))
	line := sort.Search(len(d.Lines), func(i int) bool { return d.Lines[i] > offset }) - 1

	units := 0
	for _, r := range d.Content[d.Lines[line]:offset] {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
	}
	return Position{
		Line:      uint32(line),  //nolint:gosec // G115: line is always non-negative
		Character: uint32(units), //nolint:gosec // G115: units is always non-negative
	}
}

// ToRange converts a source range into an LSP range.
func (d *Document) ToRange(r syntax.Range) Range {
	return Range{
		Start: d.OffsetToPosition(r.Start.Offset),
		End:   d.OffsetToPosition(r.End.Offset),
	}
}

// GetLine returns the content of a zero-based line.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}
	start, end := d.lineBounds(line)
	return d.Content[start:end]
}

// GetTextBefore returns the text of the position's line up to the position.
func (d *Document) GetTextBefore(pos Position) string {
	if d == nil || int(pos.Line) >= len(d.Lines) {
		return ""
	}
	start := d.Lines[pos.Line]
	return d.Content[start:d.PositionToOffset(pos)]
}

// GetWordAtPosition returns the word at the given position and its range.
// Words may contain dashes so rule codes read as one word.
func (d *Document) GetWordAtPosition(pos Position) (string, Range) {
	offset := d.PositionToOffset(pos)
	if offset > len(d.Content) {
		return "", Range{Start: pos, End: pos}
	}

	start := offset
	for start > 0 && isWordChar(d.Content[start-1]) {
		start--
	}

	end := offset
	for end < len(d.Content) && isWordChar(d.Content[end]) {
		end++
	}

	if start == end {
		return "", Range{Start: pos, End: pos}
	}

	return d.Content[start:end], Range{
		Start: d.OffsetToPosition(start),
		End:   d.OffsetToPosition(end),
	}
}

// isWordChar returns true if the character is part of a word.
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' || c == '-'
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if !strings.HasPrefix(uri, prefix) {
		return uri
	}
	path := uri[len(prefix):]
	if unescaped, err := url.PathUnescape(path); err == nil {
		return unescaped
	}
	return path
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + path
}
