// Package preview stages candidate files for inspection before a run commits.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gather/internal/scanner"
)

// Build populates dir with one entry per candidate so the caller can
// inspect the selection before collecting. Each entry is a symlink
// when possible, then a hardlink, then a plain copy; the chain is
// best effort and a file that fails all three is reported in the
// returned notes rather than failing the build. The engine never sees
// the preview area; it only consumes the already-resolved candidates.
func Build(candidates []scanner.Candidate, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}

	var notes []string
	for _, c := range candidates {
		dst := filepath.Join(dir, c.Name)
		if err := stage(c.Path, dst); err != nil {
			notes = append(notes, fmt.Sprintf("preview failed for %s: %v", c.Path, err))
		}
	}
	return notes, nil
}

// stage links or copies src to dst, degrading down the chain.
func stage(src, dst string) error {
	if err := os.Symlink(src, dst); err == nil {
		return nil
	}
	if err := os.Link(src, dst); err == nil {
		return nil
	}
	return copyPlain(src, dst)
}

func copyPlain(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
	}
	return err
}

// Remove deletes a preview area created by Build. Missing directories
// are not an error.
func Remove(dir string) error {
	return os.RemoveAll(dir)
}
