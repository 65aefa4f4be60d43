// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the file name of path with every extension stripped.
// "seqs.fasta.gz" becomes "seqs".
func Stem(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}

// EnsureDir creates dir and any missing parents. An already-existing
// directory is success; any other failure is returned as-is.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}
