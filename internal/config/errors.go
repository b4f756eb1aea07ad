package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoSeed is returned when no seed URL is given to crawl from.
	ErrNoSeed = errors.New("no seed URL specified")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("output directory must not be empty")

	// ErrInvalidDepth is returned when the recursion depth is not positive
	// while recursion is enabled.
	ErrInvalidDepth = errors.New("invalid depth: must be positive when recursion is enabled")

	// ErrDepthWithoutRecursion is returned when a depth limit is given but
	// recursion is disabled. The limit would silently do nothing.
	ErrDepthWithoutRecursion = errors.New("depth limit requires recursion to be enabled")

	// ErrInvalidConcurrency is returned when the worker bound is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidDelay is returned when the crawl delay is negative.
	// A negative delay is invalid; use 0 for no delay between requests.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate connection failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
