package engine

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"gather/internal/naming"
)

// maxAllocateRetries bounds the retry loop when a concurrent writer
// races the existence check in the name allocator.
const maxAllocateRetries = 10

// copyFile copies src to dst, creating dst exclusively so a racing
// writer surfaces as fs.ErrExist instead of silent overwrite. Mode
// and modification time are carried over from the source. Returns the
// number of bytes written. A partially written destination is removed
// on failure.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return n, err
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		// Timestamps are best effort; the copy itself succeeded.
		return n, nil
	}
	return n, nil
}

// allocateAndCopy picks a collision-free name and performs the copy.
// When another writer claims the allocated name between the existence
// check and the exclusive create, the allocation is retried with the
// next candidate name. In dry-run mode only the allocation happens.
func allocateAndCopy(src, destDir, desiredName, suffix string, dryRun bool) (string, int64, error) {
	if dryRun {
		return naming.Allocate(destDir, desiredName, suffix), 0, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxAllocateRetries; attempt++ {
		dst := naming.Allocate(destDir, desiredName, suffix)
		n, err := copyFile(src, dst)
		if err == nil {
			return dst, n, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", 0, err
		}
		lastErr = err
	}
	return "", 0, lastErr
}
