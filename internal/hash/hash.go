// Package hash fingerprints source files and directories.
//
// The watch command compares fingerprints of the UFO sources before and after
// a batch of file events and skips the re-import when the content is the
// same, which happens when an editor rewrites files without changing them.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Hasher provides an abstraction for file hashing operations.
type Hasher interface {
	// HashFile computes the hash of the file at the given path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile computes the SHA-256 hash of the file at the given path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Tree hashes every regular file below root together with its relative path.
// Hidden files and directories are skipped. Two trees with the same files
// and contents have the same hash.
func Tree(h Hasher, root string) (string, error) {
	digest := sha256.New()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sum, err := h.HashFile(path)
		if err != nil {
			return fmt.Errorf("failed to hash %s: %w", path, err)
		}
		// WalkDir visits entries in lexical order.
		fmt.Fprintf(digest, "%s\x00%s\n", filepath.ToSlash(rel), sum)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// Trees combines the tree hashes of roots in the given order.
func Trees(h Hasher, roots []string) (string, error) {
	digest := sha256.New()
	for _, root := range roots {
		sum, err := Tree(h, root)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(digest, "%s\x00%s\n", root, sum)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
