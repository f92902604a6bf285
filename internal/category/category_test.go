package category

import "testing"

func TestClassifyKnownExtensions(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"photo.jpg", "Images"},
		{"photo.JPEG", "Images"},
		{"scan.webp", "Images"},
		{"report.pdf", "Documents"},
		{"notes.TXT", "Documents"},
		{"sheet.xlsx", "Documents"},
		{"clip.mp4", "Videos"},
		{"movie.MKV", "Videos"},
		{"song.mp3", "Audio"},
		{"track.FLAC", "Audio"},
		{"backup.zip", "Archives"},
		{"image.iso", "Archives"},
		{"/some/dir/nested.png", "Images"},
	}

	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestClassifyUnknownExtension(t *testing.T) {
	tests := []string{"data.zzz", "binary", "archive.tar.gz.bak", ".hidden"}
	for _, path := range tests {
		if got := Classify(path); got != Other {
			t.Errorf("Classify(%q) = %q, want %q", path, got, Other)
		}
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	if Classify("a.JpG") != Classify("a.jpg") {
		t.Error("classification should not depend on extension case")
	}
}

func TestNamesAreStable(t *testing.T) {
	want := []string{"Archives", "Audio", "Documents", "Images", "Videos"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() returned %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSelectionIncludesAll(t *testing.T) {
	sel := NewSelection([]string{All})
	for _, cat := range append(Names(), Other) {
		if !sel.Includes(cat) {
			t.Errorf("selection [All] should include %q", cat)
		}
	}
}

func TestSelectionIncludesSpecific(t *testing.T) {
	sel := NewSelection([]string{"Images", "Audio"})

	if !sel.Includes("Images") || !sel.Includes("Audio") {
		t.Error("selection should include its own categories")
	}
	if sel.Includes("Documents") || sel.Includes(Other) {
		t.Error("selection should exclude categories not chosen")
	}
}

func TestSelectionValidate(t *testing.T) {
	if name, ok := NewSelection([]string{"Images", All, Other}).Validate(); !ok {
		t.Errorf("valid selection rejected, offending name %q", name)
	}

	name, ok := NewSelection([]string{"Images", "Pictures"}).Validate()
	if ok {
		t.Fatal("selection with unknown category should not validate")
	}
	if name != "Pictures" {
		t.Errorf("Validate() reported %q, want %q", name, "Pictures")
	}
}
