// Package database provides optional SQLite-backed storage for crawl run
// history. Recording is opt-in; a default crawl writes nothing to disk
// besides the downloaded images. The stored records are an archive of past
// runs only and are never consulted by the crawl engine itself.
package database
