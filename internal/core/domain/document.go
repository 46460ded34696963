package domain

import "time"

// Document is a corpus file as read during a reload.
// It is not retained after loading except as the Source of its chunks.
type Document struct {
	// Name is the file name, used as the stable identifier.
	Name string

	// Path is the full path the content was read from.
	Path string

	// Content is the raw file text.
	Content string

	// ModTime is the file's last-modified time.
	ModTime time.Time
}

// Chunk is the atomic retrievable unit: one paragraph of a document.
type Chunk struct {
	// ID is derived from Source and Position, so it is stable
	// across reloads of an unchanged file.
	ID string

	// Source is the name of the document the chunk came from.
	Source string

	// Content is the original-case paragraph, trimmed. Never empty.
	Content string

	// Normalized is the lowercased Content, computed once at load time.
	Normalized string

	// Position is the ordinal of the paragraph within its document.
	Position int
}

// Snapshot is one fully built corpus cache.
// A published snapshot is never mutated; reloads replace it.
type Snapshot struct {
	// Chunks are in segmentation order: files in directory order,
	// paragraphs in document order.
	Chunks []Chunk

	// BuiltAt is the wall-clock time the reload that produced this
	// snapshot started, less a margin for mtime clock granularity.
	// Files modified at or after it make the snapshot stale.
	BuiltAt time.Time

	// Files is the number of eligible files seen by that reload.
	Files int
}

// IsEmpty reports whether the snapshot holds no chunks.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.Chunks) == 0
}

// CorpusStats describes the current state of the corpus cache.
type CorpusStats struct {
	Dir     string    `json:"dir"`
	Files   int       `json:"files"`
	Chunks  int       `json:"chunks"`
	BuiltAt time.Time `json:"built_at"`
	Reloads int64     `json:"reloads"`
}
