// Package datekey derives date grouping keys for Gather destination folders.
package datekey

import (
	"os"
	"time"

	"gather/internal/category"
)

// NoDates is the sentinel key used when no date can be determined.
const NoDates = "no_dates"

// keyFormat is the YYYY-MM-DD layout every key is rendered in.
const keyFormat = "2006-01-02"

// Strategy attempts to derive a date key for a file. A false return
// means "no date available here, try the next strategy". Strategies
// never fail; internal errors are swallowed.
type Strategy func(path string) (string, bool)

// Extractor runs a chain of strategies and falls back to the NoDates
// sentinel when none of them yields a key.
type Extractor struct {
	strategies []Strategy
}

// New builds an Extractor from the given strategy chain.
func New(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// Key returns the YYYY-MM-DD grouping key for the file at path.
// It never fails; the last resort is the NoDates sentinel.
func (e *Extractor) Key(path string) string {
	for _, s := range e.strategies {
		if key, ok := s(path); ok {
			return key
		}
	}
	return NoDates
}

// Options tunes which optional strategies participate in a chain.
type Options struct {
	// UseFilename enables extracting a leading YYYY-MM-DD date from
	// the filename ahead of the modification-time fallback.
	UseFilename bool
}

// ForCategory builds the strategy chain for a file category.
// Images get an EXIF capture-date attempt first; every chain ends with
// the filesystem modification time.
func ForCategory(cat string, opts Options) *Extractor {
	var chain []Strategy
	if cat == "Images" {
		chain = append(chain, ExifDate())
	}
	if opts.UseFilename {
		chain = append(chain, FilenameDate())
	}
	chain = append(chain, ModTime())
	return New(chain...)
}

// ByCategory prebuilds extractors for every category so the per-file
// lookup is a map access.
func ByCategory(opts Options) map[string]*Extractor {
	m := make(map[string]*Extractor)
	for _, cat := range category.Names() {
		m[cat] = ForCategory(cat, opts)
	}
	m[category.Other] = ForCategory(category.Other, opts)
	return m
}

// ModTime derives the key from the file's modification time.
func ModTime() Strategy {
	return func(path string) (string, bool) {
		info, err := os.Stat(path)
		if err != nil {
			return "", false
		}
		return info.ModTime().Format(keyFormat), true
	}
}

// FixedClock is a strategy returning a constant key. Test seam for
// deterministic destination layouts.
func FixedClock(t time.Time) Strategy {
	return func(string) (string, bool) {
		return t.Format(keyFormat), true
	}
}
