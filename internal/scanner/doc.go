// Package scanner extracts raw attribute values from HTML markup.
//
// Two implementations are provided behind the AttributeScanner interface:
//
//   - PatternScanner: regex-based, tolerant, best-effort scanning. It does not
//     attempt full markup validation; false negatives on exotic markup are an
//     accepted tradeoff for simplicity. This is the default.
//   - DOMScanner: a stricter scanner built on golang.org/x/net/html that walks
//     a parsed node tree and copes better with malformed markup.
//
// The crawl engine depends only on the interface, so either scanner can be
// substituted without touching it.
package scanner
