// Package engine orchestrates hashing, deduplication, and copying for Gather.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"gather/internal/datekey"
	"gather/internal/hasher"
	"gather/internal/report"
	"gather/internal/scanner"
)

// DefaultDuplicateSuffix is inserted before the counter when naming
// content duplicates.
const DefaultDuplicateSuffix = "_dup"

// Options configures a collection run.
type Options struct {
	// DryRun computes and logs the full plan without copying files or
	// creating category subdirectories. The log artifact is still
	// written.
	DryRun bool
	// DateOnly buckets destinations by date key alone ({date}/)
	// instead of the category-aware {category}_{date}/ layout.
	DateOnly bool
	// DuplicateSuffix overrides DefaultDuplicateSuffix when non-empty.
	DuplicateSuffix string
	// DateKeys tunes the date-key strategy chains.
	DateKeys datekey.Options
	// Observer receives progress/status updates. Nil means no
	// notifications.
	Observer Observer
}

// Engine executes a single scan-then-collect run. It owns the seen-hash
// index and the run report exclusively; an Engine must not be shared
// across concurrent runs.
type Engine struct {
	opts       Options
	observer   Observer
	extractors map[string]*datekey.Extractor
}

// New creates an Engine with the given options.
func New(opts Options) *Engine {
	if opts.DuplicateSuffix == "" {
		opts.DuplicateSuffix = DefaultDuplicateSuffix
	}
	obs := opts.Observer
	if obs == nil {
		obs = NopObserver{}
	}
	return &Engine{
		opts:       opts,
		observer:   obs,
		extractors: datekey.ByCategory(opts.DateKeys),
	}
}

// Collect processes candidates in input order: hash, date-key,
// duplicate detection, name allocation, copy, and log accumulation.
// Input order is significant; it determines which occurrence of a
// duplicate is canonical. Per-file failures degrade to skip log lines.
// The run log is flushed into destRoot before returning, in dry-run
// mode included. The returned error is non-nil only for run-fatal
// conditions: an unwritable destination root, a failed log write, or
// cancellation (in which case the partial report is still flushed and
// returned).
func (e *Engine) Collect(ctx context.Context, candidates []scanner.Candidate, sourceRoot, destRoot string) (*report.RunReport, error) {
	rep := report.New(sourceRoot, destRoot, e.opts.DryRun)

	// The destination root is the one piece of state every mode needs:
	// the run log lives inside it. Nothing else is created in dry-run.
	if err := os.MkdirAll(destRoot, 0755); err != nil {
		return nil, fmt.Errorf("destination root is unwritable: %w", err)
	}

	seen := make(map[string]string) // digest -> canonical destination filename
	var bytesWritten int64
	total := len(candidates)
	progressTotal := total
	if progressTotal == 0 {
		progressTotal = 1
	}
	start := time.Now()
	cancelled := false

	for i, c := range candidates {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}

		e.notifyProgress((i + 1) * 100 / progressTotal)
		e.notifyStatus(fmt.Sprintf("Copying %s (%d/%d) - ETA: %s",
			c.Name, i+1, total, estimateETA(start, i, total)))

		digest, err := hasher.Hash(c.Path)
		if err != nil {
			rep.AddSkipUnreadable(c.Path)
			continue
		}

		key := c.DateKey
		if key == "" {
			key = e.extractorFor(c.Category).Key(c.Path)
		}
		subdir := filepath.Join(destRoot, e.bucketName(c.Category, key))

		if !e.opts.DryRun {
			if err := os.MkdirAll(subdir, 0755); err != nil {
				rep.AddSkipCopyFailed(c.Path)
				continue
			}
		}

		if _, dup := seen[digest]; dup {
			dst, n, err := allocateAndCopy(c.Path, subdir, c.Name, e.opts.DuplicateSuffix, e.opts.DryRun)
			if err != nil {
				rep.AddSkipCopyFailed(c.Path)
				continue
			}
			bytesWritten += n
			rep.AddDuplicate(c.Path, relToRoot(destRoot, dst))
			continue
		}

		dst, n, err := allocateAndCopy(c.Path, subdir, c.Name, "", e.opts.DryRun)
		if err != nil {
			rep.AddSkipCopyFailed(c.Path)
			continue
		}
		bytesWritten += n

		allocated := filepath.Base(dst)
		if allocated != c.Name {
			rep.AddRename(c.Name, relToRoot(destRoot, dst))
		} else {
			rep.AddCopy(c.Name, relToRoot(destRoot, dst))
		}
		seen[digest] = allocated
	}

	if err := rep.Flush(destRoot); err != nil {
		return rep, err
	}

	if cancelled {
		e.notifyStatus("Cancelled")
		return rep, ctx.Err()
	}

	verb := "written"
	if e.opts.DryRun {
		verb = "planned"
	}
	e.notifyStatus(fmt.Sprintf("Done. %d files, %d duplicates, %s %s",
		rep.Copied, rep.Duplicates, humanize.IBytes(uint64(bytesWritten)), verb))
	return rep, nil
}

// bucketName builds the destination subdirectory name for a candidate.
func (e *Engine) bucketName(cat, dateKey string) string {
	if e.opts.DateOnly {
		return dateKey
	}
	return cat + "_" + dateKey
}

func (e *Engine) extractorFor(cat string) *datekey.Extractor {
	if ex, ok := e.extractors[cat]; ok {
		return ex
	}
	return datekey.New(datekey.ModTime())
}

// estimateETA projects the remaining duration from the average time
// per processed file. i is the zero-based index of the current file.
func estimateETA(start time.Time, i, total int) string {
	elapsed := time.Since(start)
	avg := elapsed / time.Duration(i+1)
	remaining := avg * time.Duration(total-i-1)

	secs := int(remaining.Round(time.Second).Seconds())
	return fmt.Sprintf("%dm %02ds", secs/60, secs%60)
}

// relToRoot renders a destination path relative to the destination
// root for log lines. Falls back to the absolute path if the two do
// not share a base.
func relToRoot(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// notifyProgress forwards a progress update, isolating the run from a
// misbehaving observer.
func (e *Engine) notifyProgress(percent int) {
	defer func() { recover() }()
	e.observer.Progress(percent)
}

func (e *Engine) notifyStatus(message string) {
	defer func() { recover() }()
	e.observer.Status(message)
}
