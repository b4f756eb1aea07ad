// Package urlkit provides URL parsing and reference resolution for the
// crawler.
//
// The crawler deliberately does not use net/url for resolution: the
// resolution policy mirrors what browsers do for the common cases (absolute,
// scheme-relative, absolute-path, and relative hrefs) with a lenient dot
// segment normalization that never escapes the root. Strict RFC 3986
// compliance is not a goal; predictable, total resolution is.
package urlkit
