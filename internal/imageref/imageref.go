// Package imageref decides whether a resolved URL points at downloadable
// image content and derives a filesystem-safe local filename for it.
package imageref

import (
	"strings"

	"github.com/nao1215/arachnida/internal/urlkit"
)

// FallbackFilename is used when a URL has no usable final path segment.
const FallbackFilename = "image.bin"

// imageExtensions is the fixed set of filename extensions treated as images.
// Matching is by extension only; content sniffing is out of scope.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}

// IsImage reports whether the URL's path, with query and fragment stripped
// and lower-cased, ends in a known image extension.
func IsImage(u urlkit.URL) bool {
	path := strings.ToLower(stripQueryFragment(u.Path))
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Filename derives a safe local filename from the URL: the final "/"-delimited
// path segment after stripping query and fragment, with every character that
// is not alphanumeric, ".", "_", or "-" replaced by "_". Falls back to
// FallbackFilename when the segment is empty.
//
// Distinct URLs can derive the same filename; the caller's dedup set prevents
// re-downloading a URL, but colliding filenames overwrite each other on disk.
func Filename(u urlkit.URL) string {
	path := stripQueryFragment(u.Path)

	name := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		name = path[i+1:]
	}
	if name == "" {
		return FallbackFilename
	}

	return sanitize(name)
}

// sanitize replaces unsafe filename bytes with underscores. The check is
// byte-wise, so each byte of a multi-byte character becomes its own "_".
func sanitize(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// stripQueryFragment drops everything from the first "?" or "#" onward.
func stripQueryFragment(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}
