package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// Document represents an open text document in the editor.
type Document struct {
	URI        string // Document URI (file:///path/to/blink.ino)
	LanguageID string // Client language identifier (c, cpp, arduino)
	Content    string // Full document content
	Version    int    // Version number, incremented on each change
	Lines      []int  // Byte offsets of line starts for fast position lookups
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
func (s *DocumentStore) Open(uri, languageID, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = &Document{
		URI:        uri,
		LanguageID: languageID,
		Content:    content,
		Version:    version,
		Lines:      computeLineOffsets(content),
	}
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get returns a snapshot of the document, or nil if it is not open.
// The snapshot is not affected by later updates.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]
	if !ok {
		return nil
	}
	snapshot := *doc
	return &snapshot
}

// Update replaces an open document's content.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.documents[uri]; ok {
		s.documents[uri] = &Document{
			URI:        uri,
			LanguageID: doc.LanguageID,
			Content:    content,
			Version:    version,
			Lines:      computeLineOffsets(content),
		}
	}
}

// List returns all open document URIs.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
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

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// GetLine returns the content of a specific line without its line ending.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}

	start := d.Lines[line]
	end := len(d.Content)

	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1 // Exclude newline
		if end < start {
			end = start
		}
	}

	return strings.TrimSuffix(d.Content[start:end], "\r")
}

// LineLength returns the length of a line in UTF-16 code units, the unit
// LSP positions are measured in.
func (d *Document) LineLength(line int) int {
	return len(utf16.Encode([]rune(d.GetLine(line))))
}

// Language returns the language to lint the document as: the client's
// language identifier when it names one, else the file extension.
func (d *Document) Language() linter.Language {
	if lang := linter.ParseSyntax(d.LanguageID); lang != linter.LanguageUnknown {
		return lang
	}
	return linter.LanguageForPath(URIToPath(d.URI))
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if !strings.HasPrefix(uri, prefix) {
		return uri
	}
	path := uri[len(prefix):]
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return filepath.FromSlash(path)
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
