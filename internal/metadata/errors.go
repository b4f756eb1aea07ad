package metadata

import "errors"

var (
	// ErrUnsupportedFile is returned when a file's extension is not one of
	// the supported image types.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrNotJPEG is returned when EXIF stripping is requested for a file
	// that is not a JPEG.
	ErrNotJPEG = errors.New("EXIF stripping is only supported for JPEG files")

	// ErrMalformedJPEG is returned when a JPEG's segment structure cannot
	// be parsed.
	ErrMalformedJPEG = errors.New("malformed JPEG structure")
)
