// Package content resolves semantic keys to markdown documents.
package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gotetra/pkg/schema"
)

// ErrNotFound is returned when no document exists for a key
var ErrNotFound = errors.New("content not found")

// Document is the markdown behind one key
type Document struct {
	Key      string
	Title    string
	Path     string // empty for documents that came from schema notes
	Markdown string
}

// Source looks up documents by key
type Source interface {
	Open(ctx context.Context, key string) (Document, error)
}

// DirSource serves markdown files from a directory.
//
// A key resolves, in order, to the table of contents entry with that id, to <key>.md
// (case-insensitive), and finally to the schema's default note for the key.
type DirSource struct {
	Dir   string
	TOC   []schema.TOCEntry
	Notes map[string]string
}

// NewDirSource creates a source for dir using the schema's table of contents and notes
func NewDirSource(dir string, sc *schema.Schema) *DirSource {
	return &DirSource{Dir: dir, TOC: sc.TOC, Notes: sc.Notes}
}

// Open reads the document for key
func (s *DirSource) Open(ctx context.Context, key string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	title := key
	if entry, ok := s.entry(key); ok {
		if entry.Title != "" {
			title = entry.Title
		}
		if entry.Src != "" && s.Dir != "" {
			return s.read(key, title, filepath.Join(s.Dir, filepath.FromSlash(entry.Src)))
		}
	}

	if s.Dir != "" {
		path, err := s.find(key + ".md")
		if err != nil {
			return Document{}, err
		}
		if path != "" {
			return s.read(key, title, path)
		}
	}

	if note, ok := s.note(key); ok {
		return Document{Key: key, Title: title, Markdown: note}, nil
	}
	return Document{}, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Entries returns the table of contents
func (s *DirSource) Entries() []schema.TOCEntry {
	return s.TOC
}

func (s *DirSource) entry(key string) (schema.TOCEntry, bool) {
	for _, e := range s.TOC {
		if strings.EqualFold(e.ID, key) {
			return e, true
		}
	}
	return schema.TOCEntry{}, false
}

func (s *DirSource) note(key string) (string, bool) {
	if n, ok := s.Notes[key]; ok {
		return n, true
	}
	for k, n := range s.Notes {
		if strings.EqualFold(k, key) {
			return n, true
		}
	}
	return "", false
}

// find returns the path of the file called name, ignoring case, or "" if there is none
func (s *DirSource) find(name string) (string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to read content directory: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), name) {
			return filepath.Join(s.Dir, e.Name()), nil
		}
	}
	return "", nil
}

func (s *DirSource) read(key, title, path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, fmt.Errorf("%w: %q (%s)", ErrNotFound, key, path)
		}
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Document{Key: key, Title: title, Path: path, Markdown: string(data)}, nil
}
