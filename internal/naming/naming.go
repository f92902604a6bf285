// Package naming allocates collision-free destination filenames for Gather.
package naming

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Exists checks if a file exists at the given path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Allocate returns a path inside destDir for desiredName that does not
// exist at the moment of the check. The suffix, if any, is inserted
// between the name stem and the extension; when the suffixed name is
// taken, a numeric counter is appended after the suffix:
//
//	Allocate(dir, "file.pdf", "")     -> dir/file.pdf, dir/file_1.pdf, ...
//	Allocate(dir, "file.pdf", "_dup") -> dir/file_dup.pdf, dir/file_dup_1.pdf, ...
//
// Allocate performs existence checks only; it never creates the file.
// Re-invoking it without creating the returned path yields the same
// answer.
func Allocate(destDir, desiredName, suffix string) string {
	ext := filepath.Ext(desiredName)
	stem := strings.TrimSuffix(desiredName, ext)

	candidate := filepath.Join(destDir, stem+suffix+ext)
	for i := 1; Exists(candidate); i++ {
		candidate = filepath.Join(destDir, stem+suffix+"_"+strconv.Itoa(i)+ext)
	}
	return candidate
}
