// Package orchestrator coordinates the scan-then-collect pipeline for Gather.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"gather/internal/config"
	"gather/internal/datekey"
	"gather/internal/engine"
	"gather/internal/scanner"
)

// CollectionRootFormat names the timestamped collection root created
// under the destination directory when the configuration asks for one.
// It is a time layout string; format the run's start time with it.
const CollectionRootFormat = "COLLECTED_FILES_2006-01-02_15-04-05"

// Summary represents the overall results of a Gather run.
type Summary struct {
	Found       int
	Copied      int
	Duplicates  int
	Skipped     int
	Destination string
	DryRun      bool
	Duration    time.Duration
	ScanNotes   []string
}

// String returns a one-line human summary of the run.
func (s *Summary) String() string {
	mode := ""
	if s.DryRun {
		mode = " (dry run)"
	}
	return fmt.Sprintf("Processed %d files%s: %d unique, %d duplicates, %d skipped in %s",
		s.Found, mode, s.Copied, s.Duplicates, s.Skipped, s.Duration.Round(time.Millisecond))
}

// RunOptions carries per-invocation settings that are not part of the
// stored configuration.
type RunOptions struct {
	DryRun   bool
	Observer engine.Observer
}

// Run executes one full collection: scan the configured source tree,
// then hash, deduplicate, and copy the selection into the destination.
// Scan diagnostics and per-file skips are reported in the summary; the
// returned error is non-nil only for run-fatal conditions.
func Run(ctx context.Context, cfg *config.Configuration, opts RunOptions) (*Summary, error) {
	result, err := scanner.Scan(cfg.SourceDirectory, cfg.Selection())
	if err != nil {
		return nil, fmt.Errorf("failed to scan source: %w", err)
	}

	destRoot := cfg.DestinationDirectory
	if cfg.TimestampedRoot {
		destRoot = filepath.Join(destRoot, time.Now().Format(CollectionRootFormat))
	}

	start := time.Now()
	eng := engine.New(engine.Options{
		DryRun:          opts.DryRun,
		DateOnly:        cfg.DateOnly,
		DuplicateSuffix: cfg.DuplicateSuffix,
		DateKeys:        datekey.Options{UseFilename: cfg.DateFromFilename},
		Observer:        opts.Observer,
	})

	rep, err := eng.Collect(ctx, result.Candidates, cfg.SourceDirectory, destRoot)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Found:       len(result.Candidates),
		Copied:      rep.Copied,
		Duplicates:  rep.Duplicates,
		Skipped:     len(result.Candidates) - rep.Copied - rep.Duplicates,
		Destination: destRoot,
		DryRun:      opts.DryRun,
		Duration:    time.Since(start),
		ScanNotes:   result.Notes,
	}, nil
}

// RunFromPath loads a configuration file and executes Run.
func RunFromPath(ctx context.Context, configPath string, opts RunOptions) (*Summary, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return Run(ctx, cfg, opts)
}
