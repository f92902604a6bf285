// Package main provides the CLI entry point for Gather.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gather/internal/category"
	"gather/internal/config"
	"gather/internal/datekey"
	"gather/internal/engine"
	"gather/internal/orchestrator"
	"gather/internal/output"
	"gather/internal/preview"
	"gather/internal/scanner"
	"gather/internal/watcher"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gather", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a JSON configuration file")
	source := fs.String("source", "", "source directory to scan")
	dest := fs.String("dest", "", "destination directory for collected files")
	categories := fs.String("categories", "", "comma-separated categories to collect (default All)")
	dryRun := fs.Bool("dry-run", false, "compute and log the plan without copying")
	dateOnly := fs.Bool("date-only", false, "bucket by date alone instead of category_date")
	timestampRoot := fs.Bool("timestamp-root", false, "collect into a timestamped folder under the destination")
	filenameDates := fs.Bool("filename-dates", false, "extract YYYY-MM-DD date keys from filenames when present")
	previewDir := fs.String("preview", "", "stage candidates in this directory and confirm before collecting")
	watch := fs.Bool("watch", false, "keep running and collect files as they arrive")
	verbose := fs.Bool("verbose", false, "print every status line instead of a progress bar")
	fs.Parse(args)

	// Watch mode copies files as they arrive; a plan-only session has
	// nothing to watch for.
	if *watch && *dryRun {
		fmt.Fprintln(os.Stderr, "Error: -dry-run cannot be combined with -watch")
		return 1
	}

	cfg, err := buildConfig(*configPath, *source, *dest, *categories)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	cfg.DateOnly = cfg.DateOnly || *dateOnly
	cfg.TimestampedRoot = cfg.TimestampedRoot || *timestampRoot
	cfg.DateFromFilename = cfg.DateFromFilename || *filenameDates

	outCfg := output.DefaultConfig()
	outCfg.Verbose = *verbose
	out := output.New(outCfg)

	if *watch {
		return runWatch(cfg, out)
	}

	if *previewDir != "" {
		if code := runPreview(cfg, *previewDir, out); code != 0 {
			return code
		}
		defer preview.Remove(*previewDir)
	}

	summary, err := orchestrator.Run(context.Background(), cfg, orchestrator.RunOptions{
		DryRun:   *dryRun,
		Observer: out,
	})
	if err != nil {
		out.Error("Error: %v", err)
		return 1
	}
	out.Done()

	for _, note := range summary.ScanNotes {
		out.Error("Warning: %s", note)
	}
	out.Info("%s", summary.String())
	out.Info("Destination: %s", summary.Destination)

	if summary.Skipped > 0 {
		out.Error("Warning: %d files were skipped; see %s for details",
			summary.Skipped, filepath.Join(summary.Destination, "log.txt"))
	}
	return 0
}

// buildConfig merges the optional config file with command-line
// overrides and validates the result.
func buildConfig(configPath, source, dest, categories string) (*config.Configuration, error) {
	var cfg *config.Configuration
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &config.Configuration{}
	}

	if source != "" {
		cfg.SourceDirectory = source
	}
	if dest != "" {
		cfg.DestinationDirectory = dest
	}
	if categories != "" {
		cfg.Categories = strings.Split(categories, ",")
		for i := range cfg.Categories {
			cfg.Categories[i] = strings.TrimSpace(cfg.Categories[i])
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runPreview stages the current selection and waits for confirmation.
func runPreview(cfg *config.Configuration, dir string, out *output.Output) int {
	result, err := scanner.Scan(cfg.SourceDirectory, cfg.Selection())
	if err != nil {
		out.Error("Error: %v", err)
		return 1
	}
	if len(result.Candidates) == 0 {
		out.Info("No files matched the selected categories.")
		return 1
	}

	notes, err := preview.Build(result.Candidates, dir)
	if err != nil {
		out.Error("Error: %v", err)
		return 1
	}
	for _, note := range notes {
		out.Error("Warning: %s", note)
	}

	out.Info("%d files staged for preview in %s", len(result.Candidates), dir)
	out.Info("Press Enter to collect them, Ctrl-C to abort.")
	bufio.NewReader(os.Stdin).ReadString('\n')
	return 0
}

// runWatch collects files as they arrive in the source directory until
// interrupted.
func runWatch(cfg *config.Configuration, out *output.Output) int {
	destRoot := cfg.DestinationDirectory
	if cfg.TimestampedRoot {
		destRoot = filepath.Join(destRoot, time.Now().Format(orchestrator.CollectionRootFormat))
	}
	selection := cfg.Selection()

	handler := func(path string) error {
		cat := category.Classify(path)
		if !selection.Includes(cat) {
			return fmt.Errorf("category %s not selected", cat)
		}
		eng := engine.New(engine.Options{
			DateOnly:        cfg.DateOnly,
			DuplicateSuffix: cfg.DuplicateSuffix,
			DateKeys:        datekey.Options{UseFilename: cfg.DateFromFilename},
			Observer:        out,
		})
		candidate := scanner.Candidate{
			Path:     path,
			Name:     filepath.Base(path),
			Category: cat,
		}
		_, err := eng.Collect(context.Background(), []scanner.Candidate{candidate}, cfg.SourceDirectory, destRoot)
		return err
	}

	opts := watcher.DefaultOptions()
	if cfg.Watch != nil {
		if cfg.Watch.DebounceSeconds > 0 {
			opts.Debounce = time.Duration(cfg.Watch.DebounceSeconds) * time.Second
		}
		if len(cfg.Watch.IgnorePatterns) > 0 {
			opts.IgnorePatterns = cfg.Watch.IgnorePatterns
		}
	}

	w := watcher.New(opts, handler)
	if err := w.Start(cfg.SourceDirectory); err != nil {
		out.Error("Error: failed to start watching %s: %v", cfg.SourceDirectory, err)
		return 1
	}
	out.Info("Watching %s; collecting into %s (Ctrl-C to stop)", cfg.SourceDirectory, destRoot)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	summary := w.Stop()
	out.Info("Watch session: %d collected, %d skipped in %s",
		summary.FilesCollected, summary.FilesSkipped, summary.Duration.Round(time.Second))
	return 0
}
