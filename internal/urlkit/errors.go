package urlkit

import "errors"

// Parsing errors returned by Parse.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrUnsupportedScheme is returned when the URL scheme is not http or https.
	// The crawler only speaks plain HTTP(S); anything else is out of scope.
	ErrUnsupportedScheme = errors.New("unsupported scheme: only http and https are accepted")

	// ErrEmptyHost is returned when the URL has no host component.
	ErrEmptyHost = errors.New("empty host")

	// ErrMalformedURL is returned when the URL structure cannot be parsed,
	// for example when it contains embedded whitespace.
	ErrMalformedURL = errors.New("malformed URL")
)
