// Package fsops provides filesystem operations with safety guarantees.
//
// All filesystem access of the fontgarden storage engine goes through the FS
// interface, which wraps the handful of operations a directory rewrite needs
// and adds name validation so that an encoded glyph or layer name can never
// escape its parent directory.
//
// Key features:
//   - Staged directory rewrites (write to a sibling temp dir, then swap)
//   - File name validation for encoded names
//   - Testable via the FS interface
package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FS provides an abstraction for filesystem operations.
type FS interface {
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// RemoveAll removes a path and all its contents.
	RemoveAll(path string) error

	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]os.DirEntry, error)

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, truncating it first.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// StagingDir creates an empty sibling directory of target to build a
	// replacement in.
	StagingDir(target string) (string, error)

	// ReplaceDir moves staged into place at target, removing any previous
	// content at target.
	ReplaceDir(staged, target string) error

	// ValidateFileName validates a single path element for safety.
	ValidateFileName(name string) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// IsDir reports whether path exists and is a directory.
func (fs *RealFS) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// Exists checks if a path exists.
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// MkdirAll creates a directory and all parent directories.
func (fs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll removes a path and all its contents.
func (fs *RealFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// ReadDir lists the entries of a directory.
func (fs *RealFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file, truncating it first.
func (fs *RealFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// StagingDir creates an empty sibling directory of target.
// The sibling lives in the same parent so that ReplaceDir is a rename on the
// same filesystem.
func (fs *RealFS) StagingDir(target string) (string, error) {
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", fmt.Errorf("failed to create parent directory: %w", err)
	}

	staged, err := os.MkdirTemp(parent, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	if err := os.Chmod(staged, 0755); err != nil {
		_ = os.RemoveAll(staged)
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	return staged, nil
}

// ReplaceDir moves staged into place at target.
// Only the window between removing the old target and the rename is not
// atomic; a failure before that leaves the old target untouched.
func (fs *RealFS) ReplaceDir(staged, target string) error {
	exists, err := fs.Exists(target)
	if err != nil {
		return fmt.Errorf("failed to check target: %w", err)
	}
	if exists {
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to remove target directory before overwriting: %w", err)
		}
	}

	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("failed to move staging directory into place: %w", err)
	}
	return nil
}

// ValidateFileName validates a single path element (an encoded glyph, layer
// or set name) for safety.
func (fs *RealFS) ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("invalid file name: empty")
	}

	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("invalid file name %q: must not contain path separators", name)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("invalid file name %q: path traversal not allowed", name)
	}

	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("invalid file name %q: must not contain NUL", name)
	}

	return nil
}
