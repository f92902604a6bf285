package datekey

import (
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// ExifDate derives the key from the image's EXIF capture date
// (DateTimeOriginal, falling back to DateTime inside the decoder).
// Non-image files and images without EXIF data simply fall through.
func ExifDate() Strategy {
	return func(path string) (key string, ok bool) {
		// goexif can panic on malformed TIFF structures; a corrupt
		// image must fall through to the next strategy, not crash.
		defer func() {
			if recover() != nil {
				key, ok = "", false
			}
		}()

		f, err := os.Open(path)
		if err != nil {
			return "", false
		}
		defer f.Close()

		x, err := exif.Decode(f)
		if err != nil {
			return "", false
		}
		t, err := x.DateTime()
		if err != nil {
			return "", false
		}
		return t.Format(keyFormat), true
	}
}
