// Package scanner handles source tree enumeration for Gather.
package scanner

import (
	"errors"
	"os"
	"path/filepath"

	"gather/internal/category"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the source root does not exist or is not a directory.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions to read the source root.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
)

// ScanError represents a fatal error while enumerating the source root.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Candidate represents a regular file selected for collection.
type Candidate struct {
	Path     string // Absolute source path
	Name     string // Filename only
	Category string // Classified category label
	DateKey  string // Optional precomputed date key; empty means "derive it"
}

// Result carries the candidate set plus non-fatal diagnostics for
// entries that had to be skipped (unreadable subdirectories, entries
// that vanished mid-walk).
type Result struct {
	Candidates []Candidate
	Notes      []string
}

// Scan recursively enumerates every regular file under root and
// returns those whose category is in the selection. Symlinks are
// skipped, so link cycles cannot occur. Unreadable subdirectories are
// skipped and noted, never fatal. A missing, unreadable, or
// non-directory root is fatal and reported as *ScanError before any
// candidates are produced. Each call re-walks the filesystem; no state
// is carried between calls.
func Scan(root string, selection category.Selection) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{Type: DirectoryNotFound, Path: root, Err: err}
		}
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: root, Err: err}
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, &ScanError{
			Type: DirectoryNotFound,
			Path: root,
			Err:  errors.New("path is not a directory"),
		}
	}

	// Probe readability up front so a fully unreadable root is fatal
	// rather than an empty result.
	if _, err := os.ReadDir(root); err != nil {
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: root, Err: err}
		}
		return nil, err
	}

	result := &Result{}
	scanDirectory(root, selection, result)
	return result, nil
}

// scanDirectory walks one directory level, recursing into
// subdirectories and collecting matching files.
func scanDirectory(dir string, selection category.Selection, result *Result) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Notes = append(result.Notes, "skipped unreadable directory: "+dir)
		return
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		info, err := os.Lstat(fullPath)
		if err != nil {
			result.Notes = append(result.Notes, "skipped unreadable entry: "+fullPath)
			continue
		}

		// Skipping symlinks keeps the walk cycle-free.
		if info.Mode()&os.ModeSymlink != 0 {
			continue
		}

		if info.IsDir() {
			scanDirectory(fullPath, selection, result)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		cat := category.Classify(entry.Name())
		if !selection.Includes(cat) {
			continue
		}

		absPath, err := filepath.Abs(fullPath)
		if err != nil {
			absPath = fullPath
		}
		result.Candidates = append(result.Candidates, Candidate{
			Path:     absPath,
			Name:     entry.Name(),
			Category: cat,
		})
	}
}
