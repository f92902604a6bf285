package datekey

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestModTimeKeyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	key := New(ModTime()).Key(path)
	if _, err := time.Parse("2006-01-02", key); err != nil {
		t.Errorf("key %q is not in YYYY-MM-DD format: %v", key, err)
	}
}

func TestModTimeUsesModificationTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	stamp := time.Date(2021, 6, 15, 12, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	if key := New(ModTime()).Key(path); key != "2021-06-15" {
		t.Errorf("key = %q, want 2021-06-15", key)
	}
}

func TestMissingFileFallsToSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")

	if key := New(ModTime()).Key(path); key != NoDates {
		t.Errorf("key for missing file = %q, want %q", key, NoDates)
	}
}

func TestChainFallsThrough(t *testing.T) {
	never := func(string) (string, bool) { return "", false }
	always := func(string) (string, bool) { return "1999-12-31", true }

	if key := New(never, always).Key("whatever"); key != "1999-12-31" {
		t.Errorf("chain did not fall through, key = %q", key)
	}
	if key := New(never, never).Key("whatever"); key != NoDates {
		t.Errorf("exhausted chain should yield sentinel, got %q", key)
	}
}

func TestExifDateNonImageFallsThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.jpg")
	if err := os.WriteFile(path, []byte("plainly not a JPEG"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, ok := ExifDate()(path); ok {
		t.Error("EXIF strategy should fall through on non-image content")
	}
}

func TestExifDateMissingFileFallsThrough(t *testing.T) {
	if _, ok := ExifDate()(filepath.Join(t.TempDir(), "gone.jpg")); ok {
		t.Error("EXIF strategy should fall through on missing files")
	}
}

func TestFilenameDate(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"Invoice 2024-03-15 Final.pdf", "2024-03-15", true},
		{"2020-02-29-leap.txt", "2020-02-29", true},
		{"2023-02-29-not-leap.txt", "", false},
		{"report 2024-13-01.pdf", "", false},
		{"report 2024-04-31.pdf", "", false},
		{"no date here.pdf", "", false},
	}

	strategy := FilenameDate()
	for _, tt := range tests {
		got, ok := strategy(filepath.Join("/some/dir", tt.name))
		if ok != tt.ok || got != tt.want {
			t.Errorf("FilenameDate(%q) = (%q, %v), want (%q, %v)",
				tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestForCategoryImagesTriesExifFirst(t *testing.T) {
	// A plain text file named like an image: the EXIF attempt fails,
	// the chain must still resolve via modification time.
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	stamp := time.Date(2022, 1, 2, 3, 4, 5, 0, time.Local)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	if key := ForCategory("Images", Options{}).Key(path); key != "2022-01-02" {
		t.Errorf("key = %q, want 2022-01-02", key)
	}
}

func TestForCategoryFilenameOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes 2019-08-01.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	with := ForCategory("Documents", Options{UseFilename: true}).Key(path)
	if with != "2019-08-01" {
		t.Errorf("filename strategy enabled: key = %q, want 2019-08-01", with)
	}

	without := ForCategory("Documents", Options{}).Key(path)
	if without == "2019-08-01" {
		t.Error("filename strategy should be off by default")
	}
}

func TestByCategoryCoversEverything(t *testing.T) {
	m := ByCategory(Options{})
	for _, cat := range []string{"Images", "Documents", "Videos", "Audio", "Archives", "OTHER"} {
		if m[cat] == nil {
			t.Errorf("no extractor for category %q", cat)
		}
	}
}
