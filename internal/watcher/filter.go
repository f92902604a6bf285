package watcher

import (
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns returns the default patterns for temporary
// files that should never be collected.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.part",
		"*.partial",
		"*.download",
		"*.crdownload",
		".~*",
	}
}

// FileFilter filters paths against a set of ignore patterns.
type FileFilter struct {
	patterns []string
}

// NewFileFilter creates a FileFilter. Empty patterns fall back to the
// defaults.
func NewFileFilter(patterns []string) *FileFilter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &FileFilter{patterns: patterns}
}

// ShouldIgnore reports whether the path's base name matches any
// ignore pattern. Patterns use glob syntax; bare ".ext" patterns also
// match as case-insensitive suffixes.
func (f *FileFilter) ShouldIgnore(path string) bool {
	filename := filepath.Base(path)

	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, filename); err == nil && matched {
			return true
		}
		if strings.HasPrefix(pattern, ".") && !strings.Contains(pattern, "*") {
			if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}
