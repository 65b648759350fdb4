// Package vocabulary extracts custom dictionary terms used for
// word-boost / keyword biasing. Extraction is always best-effort: a
// missing, empty, or corrupt dictionary yields no terms, never an error,
// so vocabulary injection can never fail a transcription.
package vocabulary

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/tmm22/speechkit/logger"
)

// Entry is one persisted dictionary item. Unknown fields are tolerated;
// only the word matters to this layer.
type Entry struct {
	Word string `json:"word"`
}

// Source supplies the user's dictionary terms. Terms are re-read on every
// request since the dictionary may change between recordings.
type Source interface {
	Terms() []string
}

// Extract trims, drops empties, and deduplicates terms case-insensitively
// while preserving first-seen order and original casing.
func Extract(entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	terms := make([]string, 0, len(entries))
	for _, entry := range entries {
		word := strings.TrimSpace(entry.Word)
		if word == "" {
			continue
		}
		key := strings.ToLower(word)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, word)
	}
	return terms
}

// FileSource reads dictionary entries from a JSON file holding an array
// of {"word": ...} objects.
type FileSource struct {
	path string
	log  *logger.Logger
}

// NewFileSource creates a Source backed by a JSON dictionary file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, log: logger.Get("vocabulary")}
}

// Terms implements Source.
func (f *FileSource) Terms() []string {
	if f.path == "" {
		return nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Debug("dictionary unreadable", logger.ErrorFields("read", err))
		}
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		f.log.Debug("dictionary unparsable", logger.ErrorFields("decode", err))
		return nil
	}
	return Extract(entries)
}

// StaticSource returns a fixed term list, already extracted. Used in
// tests and programmatic wiring.
type StaticSource []string

// Terms implements Source.
func (s StaticSource) Terms() []string { return s }
