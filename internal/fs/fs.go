// Package fs provides the filesystem abstraction the stores write through.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the stores need
//   - [Real]: production implementation using [os] and atomic replace writes
//   - [Faulty]: testing implementation that injects failures per operation
//
// Example usage:
//
//	fsys := fs.NewReal()
//	if err := fsys.WriteFileAtomic("tasks.md", data, 0o644); err != nil {
//	    return err
//	}
package fs

import "os"

// FS defines the filesystem operations used for loading and saving record
// files.
//
// All methods mirror their [os] package equivalents but can be intercepted
// for testing with fault injection.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so readers never observe a truncated file,
	// even if the process dies mid-write.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	// Returns [os.ErrNotExist] if file doesn't exist.
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Touch creates an empty file if path does not exist.
	// Existing files are left untouched (no truncation, no mtime change).
	Touch(path string, perm os.FileMode) error
}
