// Package artifact handles reading and hashing the raw report files that
// build tools leave behind.
package artifact

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File holds a loaded report file with its content and metadata.
type File struct {
	Path  string
	Data  []byte
	Lines []string
	Hash  string
}

// Load reads a file and computes its SHA-256 hash.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artifact.Load: %w", err)
	}
	return &File{
		Path:  path,
		Data:  data,
		Lines: SplitLines(string(data)),
		Hash:  Hash(data),
	}, nil
}

// LoadOptional is Load for files that may legitimately be absent: a
// missing file yields (nil, nil).
func LoadOptional(path string) (*File, error) {
	f, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return f, err
}

// Glob loads every file matching pattern, sorted by path. No match is not
// an error.
func Glob(pattern string) ([]*File, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("artifact.Glob: %w", err)
	}
	sort.Strings(paths)
	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := Load(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Hash returns the "sha256:<hex>" digest of data.
func Hash(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// SplitLines splits text on newlines, dropping carriage returns. An empty
// string has no lines.
func SplitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// LineNumbered returns the file text with each line prefixed by L-padded numbers.
func LineNumbered(f *File) string {
	width := lineNumberWidth(len(f.Lines))
	format := fmt.Sprintf("L%%0%dd: %%s\n", width)
	var b strings.Builder
	for i, line := range f.Lines {
		fmt.Fprintf(&b, format, i+1, line)
	}
	return b.String()
}

func lineNumberWidth(totalLines int) int {
	switch {
	case totalLines >= 10000:
		return 5
	case totalLines >= 1000:
		return 4
	default:
		return 3
	}
}
