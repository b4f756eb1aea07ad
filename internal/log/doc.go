// Package log provides logging with automatic sanitization of sensitive
// values, built on top of the standard slog package.
//
// Per-host configuration may carry cookies and custom headers for
// authenticated crawling, and those values flow through the same code paths
// the logger observes. The SecureHandler masks them before they reach any
// output, so verbose crawl logs stay safe to share.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Info("request sent",
//	    "cookie", "session=abc123",  // masked
//	    "url", "http://example.com", // passed through
//	)
package log
