package model

import (
	"testing"
	"time"
)

// TestCrawlResultCounters tests the derived counters on CrawlResult.
func TestCrawlResultCounters(t *testing.T) {
	t.Parallel()

	r := &CrawlResult{
		StartedAt:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 1, 1, 12, 0, 5, 0, time.UTC),
		Pages: []PageVisit{
			{URL: "http://a.com/", OK: true},
			{URL: "http://a.com/broken", OK: false, Error: "status 404"},
			{URL: "http://a.com/next", OK: true},
		},
		Images: []ImageDownload{
			{URL: "http://a.com/x.png", OK: true},
			{URL: "http://a.com/y.png", OK: false, Error: "timeout"},
		},
	}

	if got := r.PagesFetched(); got != 2 {
		t.Errorf("PagesFetched = %d, want 2", got)
	}
	if got := r.PagesFailed(); got != 1 {
		t.Errorf("PagesFailed = %d, want 1", got)
	}
	if got := r.ImagesDownloaded(); got != 1 {
		t.Errorf("ImagesDownloaded = %d, want 1", got)
	}
	if got := r.ImagesFailed(); got != 1 {
		t.Errorf("ImagesFailed = %d, want 1", got)
	}
	if got := r.Duration(); got != 5*time.Second {
		t.Errorf("Duration = %v, want 5s", got)
	}
}

// TestHumanSize tests human-readable byte formatting.
func TestHumanSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "0 B"},
		{n: 512, want: "512 B"},
		{n: 2048, want: "2.0 KB"},
		{n: 5 * 1024 * 1024, want: "5.0 MB"},
		{n: 3 * 1024 * 1024 * 1024, want: "3.0 GB"},
	}

	for _, tt := range tests {
		if got := HumanSize(tt.n); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
