// Package category handles file classification by extension for Gather.
package category

import (
	"path/filepath"
	"sort"
	"strings"
)

// Other is the fallback category for extensions not in the table.
const Other = "OTHER"

// All is the sentinel selector meaning "every category, including OTHER".
const All = "All"

// table maps category names to their lowercase extension sets
// (including the dot).
var table = map[string]map[string]bool{
	"Images":    setOf(".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp"),
	"Documents": setOf(".pdf", ".docx", ".txt", ".xlsx", ".csv", ".pptx"),
	"Videos":    setOf(".mp4", ".mov", ".avi", ".mkv", ".3gp", ".wmv", ".m4v"),
	"Audio":     setOf(".mp3", ".wav", ".m4a", ".ogg", ".flac", ".aac"),
	"Archives":  setOf(".zip", ".rar", ".7z", ".tar", ".gz", ".iso"),
}

func setOf(exts ...string) map[string]bool {
	s := make(map[string]bool, len(exts))
	for _, e := range exts {
		s[e] = true
	}
	return s
}

// Classify returns the category for a file path based on its extension.
// The comparison is case-insensitive. Unknown extensions map to Other.
func Classify(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for name, exts := range table {
		if exts[ext] {
			return name
		}
	}
	return Other
}

// Names returns the configured category names in sorted order,
// excluding the All sentinel and the Other fallback.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKnown reports whether name is a valid selection value: a table
// category, the All sentinel, or the Other fallback.
func IsKnown(name string) bool {
	if name == All || name == Other {
		return true
	}
	_, ok := table[name]
	return ok
}

// Selection is a set of category names chosen by the caller.
// A selection containing the All sentinel includes every file.
type Selection map[string]bool

// NewSelection builds a Selection from the given category names.
func NewSelection(names []string) Selection {
	s := make(Selection, len(names))
	for _, name := range names {
		s[name] = true
	}
	return s
}

// Includes reports whether files of the given category are selected.
func (s Selection) Includes(cat string) bool {
	return s[All] || s[cat]
}

// Validate returns the first unknown name in the selection, if any.
func (s Selection) Validate() (string, bool) {
	for name := range s {
		if !IsKnown(name) {
			return name, false
		}
	}
	return "", true
}
