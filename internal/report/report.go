// Package report accumulates and serializes the run log for Gather.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// LogFilename is the name of the run log artifact inside the
// destination root.
const LogFilename = "log.txt"

// timestampFormat renders the generation timestamp in the log header.
const timestampFormat = "2006-01-02 15:04:05"

// RunReport accumulates counters and per-file log lines for a single
// run. It is owned by one engine instance and flushed exactly once
// after processing completes.
type RunReport struct {
	SourceRoot      string
	DestinationRoot string
	DryRun          bool

	Copied     int
	Duplicates int

	generatedAt time.Time
	lines       []string
	flushed     bool
}

// New creates a RunReport for a run over the given roots.
func New(sourceRoot, destinationRoot string, dryRun bool) *RunReport {
	return &RunReport{
		SourceRoot:      sourceRoot,
		DestinationRoot: destinationRoot,
		DryRun:          dryRun,
		generatedAt:     time.Now(),
	}
}

// AddCopy records a file copied under its original name.
func (r *RunReport) AddCopy(name, relDest string) {
	r.lines = append(r.lines, fmt.Sprintf("COPY: %s -> %s", name, relDest))
	r.Copied++
}

// AddRename records a file copied under an allocated, renamed destination.
func (r *RunReport) AddRename(originalName, relDest string) {
	r.lines = append(r.lines, fmt.Sprintf("RENAME: %s -> %s", originalName, relDest))
	r.Copied++
}

// AddDuplicate records a content duplicate of an earlier candidate.
func (r *RunReport) AddDuplicate(sourcePath, relDest string) {
	r.lines = append(r.lines, fmt.Sprintf("DUPLICATE: %s -> %s", sourcePath, relDest))
	r.Duplicates++
}

// AddSkipUnreadable records a file excluded because it could not be read.
func (r *RunReport) AddSkipUnreadable(sourcePath string) {
	r.lines = append(r.lines, "SKIP (unreadable): "+sourcePath)
}

// AddSkipCopyFailed records a file excluded because the destination
// write failed.
func (r *RunReport) AddSkipCopyFailed(sourcePath string) {
	r.lines = append(r.lines, "SKIP (copy failed): "+sourcePath)
}

// Lines returns the ordered log lines recorded so far.
func (r *RunReport) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Flush writes the run log artifact into destRoot. It must be called
// exactly once, after processing completes; a second call is an error.
func (r *RunReport) Flush(destRoot string) error {
	if r.flushed {
		return errors.New("run report already flushed")
	}

	path := filepath.Join(destRoot, LogFilename)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create run log: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "Run log at: %s\n", r.generatedAt.Format(timestampFormat))
	fmt.Fprintf(w, "Source folder: %s\n", r.SourceRoot)
	fmt.Fprintf(w, "Destination folder: %s\n", r.DestinationRoot)
	fmt.Fprintf(w, "Dry run: %s\n\n", strconv.FormatBool(r.DryRun))

	for _, line := range r.lines {
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "\nFiles processed: %d\n", r.Copied)
	fmt.Fprintf(w, "Duplicates renamed: %d\n", r.Duplicates)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write run log: %w", err)
	}
	r.flushed = true
	return nil
}
