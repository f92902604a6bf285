// Package hasher computes content digests for duplicate detection in Gather.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize bounds memory use while hashing regardless of file size.
const chunkSize = 8 * 1024

// UnreadableError indicates a file could not be hashed: it is missing,
// permission was denied, or an I/O error occurred mid-read. Callers
// treat it as "skip this file", never as a fatal condition.
type UnreadableError struct {
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("unreadable file: %s (%v)", e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// Hash computes the SHA-256 digest of the file's full byte stream and
// returns it hex-encoded. Two files with equal digests are considered
// content-identical regardless of name or location. Any read failure
// is reported as *UnreadableError.
func Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &UnreadableError{Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", &UnreadableError{Path: path, Err: err}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
