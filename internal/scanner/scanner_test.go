package scanner

import (
	"reflect"
	"testing"
)

// TestPatternScanner tests regex-based attribute extraction.
func TestPatternScanner(t *testing.T) {
	t.Parallel()

	s := NewPatternScanner()

	t.Run("extracts values in document order", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<img src="a.png">
			<p>text</p>
			<img alt="no source here">
			<IMG SRC='b.jpg' width="10">
			<img
				src = c.gif >
		</body></html>`

		got := s.FindAttributeValues(markup, "img", "src")
		want := []string{"a.png", "b.jpg", "c.gif"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FindAttributeValues = %v, want %v", got, want)
		}
	})

	t.Run("quoting styles", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			markup string
			want   []string
		}{
			{
				name:   "double quoted",
				markup: `<a href="/next.html">x</a>`,
				want:   []string{"/next.html"},
			},
			{
				name:   "single quoted",
				markup: `<a href='/next.html'>x</a>`,
				want:   []string{"/next.html"},
			},
			{
				name:   "bare token stops at whitespace",
				markup: `<a href=/next.html target=_blank>x</a>`,
				want:   []string{"/next.html"},
			},
			{
				name:   "bare token stops at closing bracket",
				markup: `<a href=/next.html>x</a>`,
				want:   []string{"/next.html"},
			},
			{
				name:   "value whitespace trimmed",
				markup: `<a href=" /next.html ">x</a>`,
				want:   []string{"/next.html"},
			},
			{
				name:   "empty value dropped",
				markup: `<a href="">x</a><a href="/ok">y</a>`,
				want:   []string{"/ok"},
			},
			{
				name:   "tag without attribute contributes nothing",
				markup: `<a name="anchor">x</a>`,
				want:   nil,
			},
			{
				name:   "case-insensitive tag and attribute",
				markup: `<A HREF="/up.html">x</A>`,
				want:   []string{"/up.html"},
			},
			{
				name:   "attribute in other tags ignored",
				markup: `<link href="style.css"><a href="/page">x</a>`,
				want:   []string{"/page"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				got := s.FindAttributeValues(tt.markup, "a", "href")
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("FindAttributeValues = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("no matches on empty markup", func(t *testing.T) {
		t.Parallel()

		if got := s.FindAttributeValues("", "img", "src"); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

// TestDOMScanner tests the x/net/html based scanner.
func TestDOMScanner(t *testing.T) {
	t.Parallel()

	s := NewDOMScanner()

	t.Run("extracts values in document order", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<img src="a.png">
			<img src='b.jpg'>
			<img alt="none">
		</body></html>`

		got := s.FindAttributeValues(markup, "img", "src")
		want := []string{"a.png", "b.jpg"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FindAttributeValues = %v, want %v", got, want)
		}
	})

	t.Run("decodes entities that defeat the pattern scanner", func(t *testing.T) {
		t.Parallel()

		markup := `<a href="/p?a=1&amp;b=2">x</a>`
		got := s.FindAttributeValues(markup, "a", "href")
		want := []string{"/p?a=1&b=2"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FindAttributeValues = %v, want %v", got, want)
		}
	})

	t.Run("repairs malformed markup", func(t *testing.T) {
		t.Parallel()

		markup := `<body><a href="/one"><a href="/two">`
		got := s.FindAttributeValues(markup, "a", "href")
		want := []string{"/one", "/two"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FindAttributeValues = %v, want %v", got, want)
		}
	})
}
