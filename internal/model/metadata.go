package model

import (
	"fmt"
	"time"
)

// FileReport is the metadata report for one local image file, produced by
// the scorpion tool.
type FileReport struct {
	// Path is the file path as given on the command line.
	Path string `json:"path"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// ModTime is the file modification time.
	ModTime time.Time `json:"mod_time"`

	// Format is the decoded image format ("jpeg", "png", ...), empty when
	// the file could not be decoded as an image.
	Format string `json:"format,omitempty"`

	// Width and Height are the pixel dimensions, zero when unknown.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Mode is the color model name ("RGBA", "Gray", ...), empty when the
	// file could not be decoded as an image.
	Mode string `json:"mode,omitempty"`

	// ExifDate is the preferred EXIF creation date, taken from
	// DateTimeOriginal, DateTimeDigitized, or DateTime in that order.
	// Kept verbatim in EXIF's "YYYY:MM:DD HH:MM:SS" form.
	ExifDate string `json:"exif_date,omitempty"`

	// Tags are the flat EXIF entries found in the file, in tag order, with
	// GPS tags grouped at the end.
	Tags []ExifTag `json:"tags,omitempty"`

	// Error holds a per-file failure (missing file, unsupported extension).
	// A report with a non-empty Error has no other fields populated.
	Error string `json:"error,omitempty"`
}

// ExifTag is a single decoded EXIF entry.
type ExifTag struct {
	// Name is the EXIF tag name, e.g. "Make" or "GPSLatitude".
	Name string `json:"name"`

	// Value is the formatted tag value.
	Value string `json:"value"`

	// GPS reports whether the tag came from the GPS IFD.
	GPS bool `json:"gps,omitempty"`
}

// HasExif reports whether any EXIF entries were found.
func (f *FileReport) HasExif() bool {
	return len(f.Tags) > 0
}

// HumanSize renders a byte count in a short human-readable form.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	for _, suffix := range []string{"KB", "MB", "GB"} {
		v /= unit
		if v < unit {
			return fmt.Sprintf("%.1f %s", v, suffix)
		}
	}
	return fmt.Sprintf("%.1f TB", v/unit)
}
