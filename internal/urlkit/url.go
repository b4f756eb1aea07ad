package urlkit

import (
	"fmt"
	"strings"
	"unicode"
)

// URL is a fully-qualified absolute http(s) URL broken into its three
// components. A URL is only ever constructed by successful parsing; it is
// never partially valid.
//
// Invariants:
//   - Scheme is "http" or "https", always lower-cased.
//   - Host is non-empty, preserves the original case, and may include a port.
//   - Path always begins with "/". Query and fragment, when present, are
//     carried inside Path; callers that care strip them explicitly.
type URL struct {
	// Scheme is the lower-cased URL scheme, "http" or "https".
	Scheme string

	// Host is the authority component up to the first "/", "?", or end of
	// input. Case is preserved because hosts are compared case-insensitively
	// at the policy layer, not normalized here.
	Host string

	// Path is the remainder of the URL starting at "/".
	Path string
}

// String re-serializes the URL. Parsing a valid URL and serializing it again
// yields an equivalent URL with the scheme lower-cased and host and path
// preserved.
func (u URL) String() string {
	return u.Scheme + "://" + u.Host + u.Path
}

// Parse parses a raw string into a URL. Only http and https schemes are
// accepted, case-insensitively. Leading and trailing whitespace is tolerated
// and stripped; embedded whitespace is a parse failure. The path defaults to
// "/" when absent or empty.
func Parse(raw string) (URL, error) {
	s := strings.TrimSpace(raw)

	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return URL{}, fmt.Errorf("parse %q: %w", raw, ErrMalformedURL)
	}

	i := strings.Index(s, "://")
	if i < 0 {
		return URL{}, fmt.Errorf("parse %q: %w", raw, ErrUnsupportedScheme)
	}

	scheme := strings.ToLower(s[:i])
	if scheme != "http" && scheme != "https" {
		return URL{}, fmt.Errorf("parse %q: %w", raw, ErrUnsupportedScheme)
	}

	rest := s[i+3:]

	// The host runs up to the first "/", "?", or the end of the string.
	host := rest
	path := "/"
	if j := strings.IndexAny(rest, "/?"); j >= 0 {
		host = rest[:j]
		if rest[j] == '/' {
			path = rest[j:]
		}
		// A query with no path ("http://a.com?x=1") has nothing to attach
		// the query to; the path stays "/".
	}

	if host == "" {
		return URL{}, fmt.Errorf("parse %q: %w", raw, ErrEmptyHost)
	}

	return URL{Scheme: scheme, Host: host, Path: path}, nil
}

// Resolve resolves an href extracted from markup against a base URL.
// The second return value reports whether the href resolved to a usable
// absolute URL; empty hrefs, fragment anchors, javascript: and mailto:
// pseudo-URLs, and unparseable absolute forms are rejected.
//
// Resolve is total: it never panics or errors for any input string.
func Resolve(base URL, href string) (URL, bool) {
	h := strings.TrimSpace(href)

	if h == "" || strings.HasPrefix(h, "#") {
		return URL{}, false
	}
	if hasPrefixFold(h, "javascript:") || hasPrefixFold(h, "mailto:") {
		return URL{}, false
	}

	// Already absolute: accept as-is after validation.
	if hasPrefixFold(h, "http://") || hasPrefixFold(h, "https://") {
		u, err := Parse(h)
		if err != nil {
			return URL{}, false
		}
		return u, true
	}

	// Scheme-relative: inherit the base scheme.
	if strings.HasPrefix(h, "//") {
		u, err := Parse(base.Scheme + ":" + h)
		if err != nil {
			return URL{}, false
		}
		return u, true
	}

	// Absolute path on the base host.
	if strings.HasPrefix(h, "/") {
		return URL{Scheme: base.Scheme, Host: base.Host, Path: h}, true
	}

	// Relative path: join against the base directory and normalize.
	return URL{
		Scheme: base.Scheme,
		Host:   base.Host,
		Path:   NormalizePath(baseDir(base.Path) + h),
	}, true
}

// baseDir returns the directory portion of a path: the longest prefix ending
// in "/". The final segment after the last "/" is dropped, and any query or
// fragment suffix is stripped first.
func baseDir(path string) string {
	p := path
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if strings.HasSuffix(p, "/") {
		return p
	}
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "/"
	}
	return p[:i+1]
}

// NormalizePath collapses "." and ".." segments in a path. A ".." removes the
// previously kept segment when one exists and is otherwise dropped, so the
// result never climbs above the root. Empty segments are discarded. The
// result always begins with "/"; an empty result normalizes to "/".
//
// This is a deliberately lenient policy, not strict RFC 3986 dot-segment
// removal.
func NormalizePath(path string) string {
	segments := strings.Split(path, "/")
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, seg)
		}
	}
	if len(kept) == 0 {
		return "/"
	}
	return "/" + strings.Join(kept, "/")
}

// hasPrefixFold reports whether s begins with prefix, ASCII case-insensitively.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
