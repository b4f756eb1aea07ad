// Package crawler implements the depth-bounded, single-origin crawl engine.
//
// # Architecture
//
// The Engine owns the crawl policy: which URLs get fetched, which images get
// downloaded, and when traversal stops. Each crawl task runs as its own
// goroutine; a weighted semaphore bounds how many of them touch the network
// at once, so the call graph never recurses on the native stack and dispatch
// parallelizes naturally.
//
// Two dedup sets guarantee the termination and no-duplicate-work invariants:
//
//   - visited: page URLs, inserted atomically before the fetch, so no URL is
//     fetched twice even when many paths reach it concurrently.
//   - downloaded: image URLs, same atomic check-and-insert, so an image shared
//     by many pages transfers once.
//
// Both sets live for exactly one run and hold exact serialized URL strings;
// two URLs differing only by a trailing slash are distinct on purpose.
//
// # Scope policy
//
// Link traversal never leaves the seed host (compared case-insensitively,
// port included). Image downloads are not host-restricted: a same-host page
// may pull its images from anywhere. That asymmetry is intentional and
// covered by tests.
//
// # Failure model
//
// A failed page fetch abandons that page's subtree; a failed image download
// affects only that image. Nothing is retried. Failures are recorded in the
// CrawlResult and logged, never propagated across task boundaries.
package crawler
