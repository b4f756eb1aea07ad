package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/arachnida/internal/model"
)

// sampleCrawl returns a crawl result with one failure of each kind.
func sampleCrawl() *model.CrawlResult {
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &model.CrawlResult{
		Seed:       "http://site.test/index.html",
		Host:       "site.test",
		OutputDir:  "./data",
		Recursive:  true,
		MaxDepth:   2,
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		Pages: []model.PageVisit{
			{URL: "http://site.test/index.html", Depth: 2, OK: true, ImageRefs: 2, LinkRefs: 1},
			{URL: "http://site.test/gone.html", Depth: 1, Error: "status 404"},
		},
		Images: []model.ImageDownload{
			{URL: "http://site.test/a.png", PageURL: "http://site.test/index.html", Filename: "a.png", OK: true},
			{URL: "http://site.test/b.jpg", PageURL: "http://site.test/index.html", Filename: "b.jpg", Error: "connection reset"},
		},
	}
}

// sampleReports returns one successful and one failed file report.
func sampleReports() []model.FileReport {
	return []model.FileReport{
		{
			Path:    "photos/cat.jpg",
			Size:    2048,
			ModTime: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
			Format:  "jpeg",
			Width:   640,
			Height:  480,
			Mode:    "YCbCr",
			Tags: []model.ExifTag{
				{Name: "Make", Value: "ACME"},
				{Name: "GPSLatitude", Value: "35/1", GPS: true},
			},
			ExifDate: "2025:03:01 09:29:00",
		},
		{Path: "notes.txt", Error: "notes.txt: unsupported file type"},
	}
}

// TestSimpleWriterCrawl tests the text crawl summary.
func TestSimpleWriterCrawl(t *testing.T) {
	t.Parallel()

	t.Run("summary with failures listed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		if _, err := w.WriteCrawl(sampleCrawl()); err != nil {
			t.Fatalf("WriteCrawl failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"Pages fetched:     1",
			"Pages failed:      1",
			"Images downloaded: 1",
			"Images failed:     1",
			"enabled (depth 2)",
			"http://site.test/gone.html: status 404",
			"http://site.test/b.jpg: connection reset",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		// Successful URLs stay out of the non-verbose output.
		if strings.Contains(out, "a.png") {
			t.Errorf("non-verbose output should not list successes:\n%s", out)
		}
	})

	t.Run("verbose lists every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))
		if _, err := w.WriteCrawl(sampleCrawl()); err != nil {
			t.Fatalf("WriteCrawl failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"[ok]   http://site.test/index.html",
			"[ok]   http://site.test/a.png -> a.png",
			"[fail] http://site.test/gone.html",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("verbose output missing %q:\n%s", want, out)
			}
		}
	})
}

// TestSimpleWriterFiles tests the text metadata report.
func TestSimpleWriterFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewSimpleWriter(&buf)
	if _, err := w.WriteFiles(sampleReports()); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"photos/cat.jpg",
		"2.0 KB",
		"format:   jpeg",
		"size px:  640x480",
		"taken:    2025:03:01 09:29:00",
		"Make",
		"GPSLatitude",
		"error: notes.txt: unsupported file type",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestJSONWriter tests JSON output shape.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("crawl result round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())
		if _, err := w.WriteCrawl(sampleCrawl()); err != nil {
			t.Fatalf("WriteCrawl failed: %v", err)
		}

		var got model.CrawlResult
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if got.Seed != "http://site.test/index.html" {
			t.Errorf("Seed = %q", got.Seed)
		}
		if len(got.Pages) != 2 || len(got.Images) != 2 {
			t.Errorf("records = %d pages, %d images", len(got.Pages), len(got.Images))
		}
	})

	t.Run("file reports are a JSON array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		if _, err := w.WriteFiles(sampleReports()); err != nil {
			t.Fatalf("WriteFiles failed: %v", err)
		}

		var got []model.FileReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if !got[0].HasExif() {
			t.Error("EXIF tags lost in JSON round-trip")
		}
	})
}

// TestMarkdownWriter tests Markdown output structure.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("crawl report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		if _, err := w.WriteCrawl(sampleCrawl()); err != nil {
			t.Fatalf("WriteCrawl failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Crawl Report",
			"## Summary",
			"## Pages",
			"## Images",
			"`http://site.test/index.html`",
			"failed: status 404",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("markdown missing %q", want)
			}
		}
	})

	t.Run("file report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		if _, err := w.WriteFiles(sampleReports()); err != nil {
			t.Fatalf("WriteFiles failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Image Metadata Report",
			"## photos/cat.jpg",
			"EXIF Tag",
			"GPSLatitude",
			"Error: notes.txt: unsupported file type",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("markdown missing %q", want)
			}
		}
	})
}

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))
	if _, err := mw.WriteCrawl(sampleCrawl()); err != nil {
		t.Fatalf("WriteCrawl failed: %v", err)
	}

	if a.Len() == 0 || b.Len() == 0 {
		t.Errorf("expected both writers to receive output: %d, %d bytes", a.Len(), b.Len())
	}
}
