package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/arachnida/internal/config"
)

// parseSpiderConfig runs flag parsing and config construction the way the
// command would, without executing a crawl.
func parseSpiderConfig(t *testing.T, flags []string, seed string) (*config.Config, error) {
	t.Helper()
	cmd := NewSpiderCmd()
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	return buildSpiderConfig(cmd, []string{seed})
}

// TestBuildSpiderConfig tests flag-to-config mapping.
func TestBuildSpiderConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := parseSpiderConfig(t, nil, "http://example.com/")
		if err != nil {
			t.Fatalf("buildSpiderConfig failed: %v", err)
		}

		if cfg.Seed != "http://example.com/" {
			t.Errorf("Seed = %q", cfg.Seed)
		}
		if cfg.Recursive {
			t.Error("Recursive should default to false")
		}
		if cfg.MaxDepth != config.DefaultMaxDepth {
			t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, config.DefaultMaxDepth)
		}
		if cfg.OutputDir != config.DefaultOutputDir {
			t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, config.DefaultOutputDir)
		}
		if cfg.DepthExplicit {
			t.Error("DepthExplicit should be false without -l")
		}
	})

	t.Run("all crawl flags", func(t *testing.T) {
		t.Parallel()

		cfg, err := parseSpiderConfig(t, []string{
			"-r", "-l", "8", "-p", "./pics",
			"--concurrency", "4", "--delay", "250ms", "--dom",
		}, "http://example.com/")
		if err != nil {
			t.Fatalf("buildSpiderConfig failed: %v", err)
		}

		if !cfg.Recursive || cfg.MaxDepth != 8 || !cfg.DepthExplicit {
			t.Errorf("recursion = %v depth=%d explicit=%v", cfg.Recursive, cfg.MaxDepth, cfg.DepthExplicit)
		}
		if cfg.OutputDir != "./pics" {
			t.Errorf("OutputDir = %q", cfg.OutputDir)
		}
		if cfg.Concurrency != 4 {
			t.Errorf("Concurrency = %d", cfg.Concurrency)
		}
		if cfg.Delay != 250*time.Millisecond {
			t.Errorf("Delay = %v", cfg.Delay)
		}
		if !cfg.UseDOMParser {
			t.Error("UseDOMParser not set by --dom")
		}
	})

	t.Run("depth without recursion fails validation", func(t *testing.T) {
		t.Parallel()

		cfg, err := parseSpiderConfig(t, []string{"-l", "3"}, "http://example.com/")
		if err != nil {
			t.Fatalf("buildSpiderConfig failed: %v", err)
		}
		if err := cfg.Validate(); !errors.Is(err, config.ErrDepthWithoutRecursion) {
			t.Errorf("Validate() = %v, want ErrDepthWithoutRecursion", err)
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := parseSpiderConfig(t, []string{"-c", "/does/not/exist"}, "http://example.com/")
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("site config applies when flags are silent", func(t *testing.T) {
		t.Parallel()

		content := `
sites:
  example.com:
    userAgent: "site-agent"
    depth: 9
    delay: 2s
    headers:
      X-Token: "abc"
`
		path := filepath.Join(t.TempDir(), ".arachnida")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := parseSpiderConfig(t, []string{"-c", path, "-r"}, "http://example.com/index.html")
		if err != nil {
			t.Fatalf("buildSpiderConfig failed: %v", err)
		}

		if cfg.UserAgent != "site-agent" {
			t.Errorf("UserAgent = %q, want site override", cfg.UserAgent)
		}
		if cfg.MaxDepth != 9 {
			t.Errorf("MaxDepth = %d, want site override 9", cfg.MaxDepth)
		}
		if cfg.Delay != 2*time.Second {
			t.Errorf("Delay = %v, want site override 2s", cfg.Delay)
		}
		if cfg.ExtraHeaders["X-Token"] != "abc" {
			t.Errorf("ExtraHeaders = %v", cfg.ExtraHeaders)
		}
	})

	t.Run("explicit flags beat site config", func(t *testing.T) {
		t.Parallel()

		content := `
sites:
  example.com:
    depth: 9
`
		path := filepath.Join(t.TempDir(), ".arachnida")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := parseSpiderConfig(t, []string{"-c", path, "-r", "-l", "2"}, "http://example.com/")
		if err != nil {
			t.Fatalf("buildSpiderConfig failed: %v", err)
		}
		if cfg.MaxDepth != 2 {
			t.Errorf("MaxDepth = %d, want explicit 2", cfg.MaxDepth)
		}
	})
}

// TestSpiderEndToEnd tests a full command run against a local server.
func TestSpiderEndToEnd(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/index.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><img src="pics/a.png"><a href="/next.html">next</a></html>`))
	})
	mux.HandleFunc("/next.html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<img src="/pics/b.jpg">`))
	})
	mux.HandleFunc("/pics/a.png", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})
	mux.HandleFunc("/pics/b.jpg", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	outDir := filepath.Join(t.TempDir(), "images")
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"spider", "-r", "-l", "1", "-p", outDir, srv.URL + "/index.html"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for _, name := range []string{"a.png", "b.jpg"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s to be downloaded: %v", name, err)
		}
	}
}

// TestSpiderInvalidSeed tests that a bad seed aborts the run.
func TestSpiderInvalidSeed(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"spider", "-p", t.TempDir(), "ftp://example.com/"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for non-http seed")
	}
}
