// Package storage defines the site source-directory abstraction.
package storage

import "time"

// SourceInfo is lightweight metadata for one file in the site source tree.
type SourceInfo struct {
	// Path is relative to the site root, with forward slashes.
	Path     string
	Checksum string
	Size     int64
	ModTime  time.Time
}

// Provider is the interface for site source file operations. All paths are
// relative to the site root.
type Provider interface {
	// List returns metadata for every file under dir.
	List(dir string) ([]SourceInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
}
