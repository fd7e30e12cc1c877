// Package storage defines the content-directory abstraction. The pipeline
// only ever reads source files; builds never mutate the corpus on disk.
package storage

import "time"

// FileInfo describes one markdown source file.
type FileInfo struct {
	// Path is relative to the content root, with forward slashes.
	Path    string
	ModTime time.Time
}

// Provider is the interface for content file access.
type Provider interface {
	// List returns every .md file under the content root, sorted by path.
	List() ([]FileInfo, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
}
