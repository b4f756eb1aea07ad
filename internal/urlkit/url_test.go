package urlkit

import (
	"errors"
	"testing"
)

// TestParse tests absolute URL parsing.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("valid URLs round-trip", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			raw  string
			want URL
		}{
			{
				name: "simple",
				raw:  "http://example.com/index.html",
				want: URL{Scheme: "http", Host: "example.com", Path: "/index.html"},
			},
			{
				name: "https with port",
				raw:  "https://example.com:8443/a/b",
				want: URL{Scheme: "https", Host: "example.com:8443", Path: "/a/b"},
			},
			{
				name: "missing path defaults to slash",
				raw:  "http://example.com",
				want: URL{Scheme: "http", Host: "example.com", Path: "/"},
			},
			{
				name: "scheme is lower-cased",
				raw:  "HTTPS://Example.COM/x",
				want: URL{Scheme: "https", Host: "Example.COM", Path: "/x"},
			},
			{
				name: "surrounding whitespace is stripped",
				raw:  "  http://example.com/a \n",
				want: URL{Scheme: "http", Host: "example.com", Path: "/a"},
			},
			{
				name: "query without path",
				raw:  "http://example.com?x=1",
				want: URL{Scheme: "http", Host: "example.com", Path: "/"},
			},
			{
				name: "query inside path is kept",
				raw:  "http://example.com/p?x=1",
				want: URL{Scheme: "http", Host: "example.com", Path: "/p?x=1"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				got, err := Parse(tt.raw)
				if err != nil {
					t.Fatalf("Parse(%q) failed: %v", tt.raw, err)
				}
				if got != tt.want {
					t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
				}
			})
		}
	})

	t.Run("invalid URLs are rejected", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			raw     string
			wantErr error
		}{
			{name: "ftp scheme", raw: "ftp://example.com/f", wantErr: ErrUnsupportedScheme},
			{name: "no scheme", raw: "example.com/f", wantErr: ErrUnsupportedScheme},
			{name: "mailto", raw: "mailto:x@y.com", wantErr: ErrUnsupportedScheme},
			{name: "empty host", raw: "http:///path", wantErr: ErrEmptyHost},
			{name: "only scheme", raw: "http://", wantErr: ErrEmptyHost},
			{name: "embedded whitespace", raw: "http://exa mple.com/", wantErr: ErrMalformedURL},
			{name: "empty string", raw: "", wantErr: ErrUnsupportedScheme},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				if _, err := Parse(tt.raw); !errors.Is(err, tt.wantErr) {
					t.Errorf("Parse(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
			})
		}
	})

	t.Run("serialization reproduces the URL", func(t *testing.T) {
		t.Parallel()

		raws := []string{
			"http://example.com/index.html",
			"https://Example.com:8080/A/B?q=1",
			"http://example.com/",
		}
		for _, raw := range raws {
			u, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", raw, err)
			}
			again, err := Parse(u.String())
			if err != nil {
				t.Fatalf("re-Parse(%q) failed: %v", u.String(), err)
			}
			if u != again {
				t.Errorf("round trip changed URL: %+v vs %+v", u, again)
			}
		}
	})
}

// TestResolve tests href resolution against a base URL.
func TestResolve(t *testing.T) {
	t.Parallel()

	base := URL{Scheme: "http", Host: "a.com", Path: "/x/y/p.html"}

	t.Run("rejected hrefs", func(t *testing.T) {
		t.Parallel()

		rejected := []string{
			"",
			"   ",
			"#",
			"#top",
			"javascript:void(0)",
			"JavaScript:alert(1)",
			"mailto:x@y.com",
			"MAILTO:x@y.com",
			"http://", // absolute but unparseable
		}
		for _, href := range rejected {
			if got, ok := Resolve(base, href); ok {
				t.Errorf("Resolve(%q) = %v, want rejection", href, got)
			}
		}
	})

	t.Run("resolution policy", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			base URL
			href string
			want string
		}{
			{
				name: "absolute href used directly",
				base: base,
				href: "http://other.com/z.html",
				want: "http://other.com/z.html",
			},
			{
				name: "absolute href idempotent against any base",
				base: URL{Scheme: "https", Host: "unrelated.org", Path: "/q/"},
				href: "http://a.com/x/y/p.html",
				want: "http://a.com/x/y/p.html",
			},
			{
				name: "scheme-relative inherits base scheme",
				base: URL{Scheme: "https", Host: "a.com", Path: "/"},
				href: "//cdn.a.com/i.png",
				want: "https://cdn.a.com/i.png",
			},
			{
				name: "absolute path replaces base path",
				base: URL{Scheme: "http", Host: "a.com", Path: "/p.html"},
				href: "/img/a.png",
				want: "http://a.com/img/a.png",
			},
			{
				name: "relative sibling",
				base: base,
				href: "q.html",
				want: "http://a.com/x/y/q.html",
			},
			{
				name: "relative with parent traversal",
				base: base,
				href: "../q.html",
				want: "http://a.com/x/q.html",
			},
			{
				name: "relative with dot segment",
				base: base,
				href: "./q.html",
				want: "http://a.com/x/y/q.html",
			},
			{
				name: "parent traversal above root is clamped",
				base: URL{Scheme: "http", Host: "a.com", Path: "/p.html"},
				href: "../../../q.html",
				want: "http://a.com/q.html",
			},
			{
				name: "trailing-slash base is its own directory",
				base: URL{Scheme: "http", Host: "a.com", Path: "/dir/"},
				href: "q.html",
				want: "http://a.com/dir/q.html",
			},
			{
				name: "query on base path is stripped before joining",
				base: URL{Scheme: "http", Host: "a.com", Path: "/x/p.html?v=2"},
				href: "q.html",
				want: "http://a.com/x/q.html",
			},
			{
				name: "root base",
				base: URL{Scheme: "http", Host: "a.com", Path: "/"},
				href: "pics/a.png",
				want: "http://a.com/pics/a.png",
			},
			{
				// Unlisted schemes are not special-cased: they join as
				// ordinary relative text, mirroring the lenient policy.
				name: "unknown scheme joins as relative text",
				base: base,
				href: "ftp://a.com/file",
				want: "http://a.com/x/y/ftp:/a.com/file",
			},
			{
				name: "whitespace around href is trimmed",
				base: base,
				href: "  q.html  ",
				want: "http://a.com/x/y/q.html",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				got, ok := Resolve(tt.base, tt.href)
				if !ok {
					t.Fatalf("Resolve(%q) unexpectedly rejected", tt.href)
				}
				if got.String() != tt.want {
					t.Errorf("Resolve(%q) = %q, want %q", tt.href, got.String(), tt.want)
				}
			})
		}
	})

	t.Run("total for arbitrary input", func(t *testing.T) {
		t.Parallel()

		// None of these may panic; acceptance does not matter for some.
		inputs := []string{
			"////", "..", "a//b/../../..", "http://%%%", "//", "//?", "data:x",
			"\t\n", "a b c", "http://ok.com/fine.html",
		}
		for _, href := range inputs {
			_, _ = Resolve(base, href)
		}
	})
}

// TestNormalizePath tests dot segment normalization.
func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "/a/b/c", want: "/a/b/c"},
		{in: "/a/./b", want: "/a/b"},
		{in: "/a/../b", want: "/b"},
		{in: "/../../a", want: "/a"},
		{in: "/a//b///c", want: "/a/b/c"},
		{in: "", want: "/"},
		{in: "/", want: "/"},
		{in: "/a/b/..", want: "/a"},
		{in: "/..", want: "/"},
		{in: "a/b", want: "/a/b"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
