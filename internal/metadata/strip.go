package metadata

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JPEG segment markers relevant to stripping.
const (
	markerSOI  = 0xd8 // start of image, no payload
	markerSOS  = 0xda // start of scan, entropy-coded data follows
	markerAPP1 = 0xe1 // EXIF and XMP live here
	markerCOM  = 0xfe // free-form comment
)

// StripExif rewrites a JPEG file without its APP1 and COM segments and
// returns the path of the cleaned copy, named <base>_clean<ext> next to the
// original (or inside outDir when non-empty). The original file is never
// modified. Non-JPEG files are rejected.
func StripExif(path, outDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".jpg" && ext != ".jpeg" {
		return "", fmt.Errorf("%s: %w", path, ErrNotJPEG)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	cleaned, err := stripSegments(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if outDir != "" {
		dir = outDir
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dest := filepath.Join(dir, base+"_clean"+filepath.Ext(path))

	if err := os.WriteFile(dest, cleaned, 0o644); err != nil {
		return "", err
	}
	return dest, nil
}

// stripSegments walks the JPEG segment stream up to the start-of-scan marker,
// dropping APP1 and COM segments and copying everything else verbatim. The
// entropy-coded data from SOS onward is not parsed.
func stripSegments(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0xff || data[1] != markerSOI {
		return nil, ErrMalformedJPEG
	}

	out := bytes.NewBuffer(make([]byte, 0, len(data)))
	out.Write(data[:2])

	i := 2
	for i < len(data) {
		if data[i] != 0xff {
			return nil, ErrMalformedJPEG
		}
		// Fill bytes before a marker are legal padding.
		for i < len(data) && data[i] == 0xff && i+1 < len(data) && data[i+1] == 0xff {
			i++
		}
		if i+1 >= len(data) {
			return nil, ErrMalformedJPEG
		}

		marker := data[i+1]
		if marker == markerSOS {
			// Everything from here is scan data; copy it untouched.
			out.Write(data[i:])
			return out.Bytes(), nil
		}

		// Standalone markers carry no length field.
		if marker == 0x01 || (marker >= 0xd0 && marker <= 0xd9) {
			out.Write(data[i : i+2])
			i += 2
			continue
		}

		if i+4 > len(data) {
			return nil, ErrMalformedJPEG
		}
		length := int(data[i+2])<<8 | int(data[i+3])
		if length < 2 || i+2+length > len(data) {
			return nil, ErrMalformedJPEG
		}

		if marker != markerAPP1 && marker != markerCOM {
			out.Write(data[i : i+2+length])
		}
		i += 2 + length
	}
	return nil, ErrMalformedJPEG
}
