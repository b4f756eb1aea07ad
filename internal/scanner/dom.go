package scanner

import (
	"strings"

	"golang.org/x/net/html"
)

// DOMScanner extracts attribute values by parsing the markup into a node tree
// with golang.org/x/net/html and walking it.
//
// Compared to PatternScanner it correctly handles entities, nested quotes,
// and most malformed markup the HTML5 parsing algorithm repairs. It is the
// opt-in stricter alternative.
type DOMScanner struct{}

// NewDOMScanner creates a DOMScanner.
func NewDOMScanner() *DOMScanner {
	return &DOMScanner{}
}

// FindAttributeValues implements AttributeScanner.
func (s *DOMScanner) FindAttributeValues(markup, tag, attr string) []string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		// html.Parse repairs rather than rejects; an error here means the
		// reader failed, which cannot happen for a string. Return nothing.
		return nil
	}

	tag = strings.ToLower(tag)
	attr = strings.ToLower(attr)

	var values []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			for _, a := range n.Attr {
				if a.Key != attr {
					continue
				}
				if v := strings.TrimSpace(a.Val); v != "" {
					values = append(values, v)
				}
				break
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return values
}

// Ensure DOMScanner implements AttributeScanner.
var _ AttributeScanner = (*DOMScanner)(nil)
