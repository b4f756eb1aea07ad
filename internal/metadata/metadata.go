package metadata

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/nao1215/arachnida/internal/model"
)

// supportedExtensions lists the file types accepted for inspection.
// It is the same set the crawler downloads.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// dateTagPreference orders the EXIF date tags from most to least
// authoritative for the capture time.
var dateTagPreference = []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"}

// Inspect reads one image file and returns its metadata report. Failures are
// per-file: a missing file or unsupported extension yields a report whose
// Error field is set, never a panic or a process-level error.
func Inspect(path string) model.FileReport {
	report := model.FileReport{Path: path}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		report.Error = fmt.Sprintf("%s: %v", path, ErrUnsupportedFile)
		return report
	}

	info, err := os.Stat(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Size = info.Size()
	report.ModTime = info.ModTime()

	data, err := os.ReadFile(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	// A file that fails image decoding still gets its EXIF scanned; the
	// extension already passed the gate and EXIF search is byte-oriented.
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		report.Format = format
		report.Width = cfg.Width
		report.Height = cfg.Height
		report.Mode = colorModelName(cfg.ColorModel)
	}

	report.Tags = extractExifTags(data)
	report.ExifDate = preferredDate(report.Tags)
	return report
}

// extractExifTags returns the file's flat EXIF entries with GPS tags grouped
// after all others. A file without EXIF yields nil.
func extractExifTags(data []byte) []model.ExifTag {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return nil
	}
	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	tags := make([]model.ExifTag, 0, len(entries))
	gps := make([]model.ExifTag, 0)
	for _, entry := range entries {
		tag := model.ExifTag{Name: entry.TagName, Value: entry.Formatted}
		if strings.Contains(entry.IfdPath, "GPS") {
			tag.GPS = true
			gps = append(gps, tag)
			continue
		}
		tags = append(tags, tag)
	}
	return append(tags, gps...)
}

// preferredDate picks the capture date from the report's tags, most
// authoritative tag first.
func preferredDate(tags []model.ExifTag) string {
	for _, want := range dateTagPreference {
		for _, tag := range tags {
			if tag.Name == want && tag.Value != "" {
				return tag.Value
			}
		}
	}
	return ""
}

// colorModelName names the stdlib color models that DecodeConfig reports.
func colorModelName(cm color.Model) string {
	switch cm {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	}
	if _, ok := cm.(color.Palette); ok {
		return "Paletted"
	}
	return ""
}
