package scanner

import (
	"regexp"
	"strings"
	"sync"
)

// AttributeScanner extracts attribute values for a given tag/attribute pair
// from raw markup, in document order. Tags that lack the attribute contribute
// nothing.
type AttributeScanner interface {
	// FindAttributeValues returns the ordered sequence of raw attribute
	// values found in markup for occurrences of <tag ...> carrying attr.
	// Values are trimmed of surrounding whitespace; empty values are dropped.
	FindAttributeValues(markup, tag, attr string) []string
}

// PatternScanner is a regex-based AttributeScanner.
//
// Design decision: We scan with patterns rather than a DOM parser because the
// crawler only needs attribute values, not document structure, and a pattern
// scan never fails on broken markup. It does not handle nested quotes, HTML
// entities, or exotic self-closing syntax; that is accepted behavior, not a
// defect.
type PatternScanner struct {
	// mu guards the regex caches. The engine reuses one scanner across
	// pages, possibly from multiple workers.
	mu      sync.Mutex
	tagRes  map[string]*regexp.Regexp
	attrRes map[string]*regexp.Regexp
}

// NewPatternScanner creates a PatternScanner.
func NewPatternScanner() *PatternScanner {
	return &PatternScanner{
		tagRes:  make(map[string]*regexp.Regexp),
		attrRes: make(map[string]*regexp.Regexp),
	}
}

// FindAttributeValues implements AttributeScanner.
//
// It first locates tag fragments matching `<tag ...>` case-insensitively,
// non-greedy up to the first ">", then searches each fragment for
// `attr = value` where the value is double-quoted, single-quoted, or a bare
// token running to the next whitespace or ">".
func (s *PatternScanner) FindAttributeValues(markup, tag, attr string) []string {
	tagRe := s.tagRegexp(tag)
	attrRe := s.attrRegexp(attr)

	var values []string
	for _, fragment := range tagRe.FindAllString(markup, -1) {
		m := attrRe.FindStringSubmatch(fragment)
		if m == nil {
			continue
		}

		// m[1] is the full value token; which capture group holds the
		// unquoted value depends on the quoting style.
		var value string
		switch {
		case strings.HasPrefix(m[1], `"`):
			value = m[2]
		case strings.HasPrefix(m[1], "'"):
			value = m[3]
		default:
			value = m[4]
		}

		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}
	return values
}

func (s *PatternScanner) tagRegexp(tag string) *regexp.Regexp {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(tag)
	if re, ok := s.tagRes[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)<\s*` + regexp.QuoteMeta(key) + `\b[^>]*>`)
	s.tagRes[key] = re
	return re
}

func (s *PatternScanner) attrRegexp(attr string) *regexp.Regexp {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(attr)
	if re, ok := s.attrRes[key]; ok {
		return re
	}
	re := regexp.MustCompile(
		`(?i)` + regexp.QuoteMeta(key) + `\s*=\s*("([^"]*)"|'([^']*)'|([^\s>]+))`)
	s.attrRes[key] = re
	return re
}

// Ensure PatternScanner implements AttributeScanner.
var _ AttributeScanner = (*PatternScanner)(nil)
