package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nao1215/arachnida/internal/imageref"
	"github.com/nao1215/arachnida/internal/model"
	"github.com/nao1215/arachnida/internal/scanner"
	"github.com/nao1215/arachnida/internal/urlkit"
)

// Transport is the network capability the engine consumes. Implementations
// own connection handling, redirects, and timeouts; the engine treats every
// failure the same way and never retries.
type Transport interface {
	// FetchText fetches a page body as text.
	FetchText(ctx context.Context, url string) (string, error)

	// Download streams a URL to dest, removing partial output on failure.
	Download(ctx context.Context, url, dest string) error
}

// task is the unit of crawl work: a page URL plus its remaining link budget.
type task struct {
	url   urlkit.URL
	depth int
}

// Engine orchestrates fetch, scan, resolve, classify, and download/recurse
// for one crawl run. Create one Engine per run; the dedup sets are not
// reusable across runs.
type Engine struct {
	// transport performs fetches and downloads.
	transport Transport

	// scan extracts raw attribute values from page markup.
	scan scanner.AttributeScanner

	// outDir is the directory downloaded images are written to.
	// The caller must have created it.
	outDir string

	// recursive enables link following.
	recursive bool

	// maxDepth is the link budget of the seed task when recursive.
	maxDepth int

	// concurrency bounds how many tasks touch the network at once.
	// 1 reproduces the strictly sequential reference behavior.
	concurrency int64

	// delay is an optional politeness pause after each page fetch.
	delay time.Duration

	// logger receives per-URL progress and failure records.
	logger *slog.Logger

	// sem bounds network concurrency across all task goroutines.
	sem *semaphore.Weighted

	// host is the seed host; every followed link must match it.
	host string

	// visited and downloaded are the two dedup sets.
	visited    *dedupSet
	downloaded *dedupSet

	// mu guards result while task goroutines append records.
	mu     sync.Mutex
	result *model.CrawlResult
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecursion enables link following with the given maximum depth.
func WithRecursion(maxDepth int) Option {
	return func(e *Engine) {
		e.recursive = true
		e.maxDepth = maxDepth
	}
}

// WithOutputDir sets the directory downloaded images are written to.
func WithOutputDir(dir string) Option {
	return func(e *Engine) {
		e.outDir = dir
	}
}

// WithConcurrency sets how many tasks may perform network work at once.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.concurrency = int64(n)
	}
}

// WithDelay sets a politeness delay applied after each page fetch.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.delay = d
	}
}

// WithLogger sets the structured logger for progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithScanner replaces the default pattern scanner, e.g. with the stricter
// DOM-based one.
func WithScanner(s scanner.AttributeScanner) Option {
	return func(e *Engine) {
		e.scan = s
	}
}

// New creates an Engine. By default it crawls only the seed page, writes
// images to "./data", and runs strictly sequentially.
func New(transport Transport, opts ...Option) *Engine {
	e := &Engine{
		transport:   transport,
		scan:        scanner.NewPatternScanner(),
		outDir:      "./data",
		concurrency: 1,
		logger:      slog.Default(),
		visited:     newDedupSet(),
		downloaded:  newDedupSet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sem = semaphore.NewWeighted(e.concurrency)
	return e
}

// Run crawls from the seed URL and returns the run's records. A seed that
// does not parse as an http(s) URL is the only fatal error; every later
// failure is URL-granular and lands in the result instead.
func (e *Engine) Run(ctx context.Context, seed string) (*model.CrawlResult, error) {
	seedURL, err := urlkit.Parse(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}

	e.host = seedURL.Host
	e.result = &model.CrawlResult{
		Seed:      seedURL.String(),
		Host:      seedURL.Host,
		OutputDir: e.outDir,
		Recursive: e.recursive,
		MaxDepth:  e.maxDepth,
		StartedAt: time.Now(),
	}

	depth := 0
	if e.recursive {
		depth = e.maxDepth
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go e.process(ctx, &wg, task{url: seedURL, depth: depth})
	wg.Wait()

	e.result.FinishedAt = time.Now()
	return e.result, nil
}

// process handles one crawl task: fetch the page, download its images, and
// spawn child tasks for accepted links. Every child runs in its own
// goroutine; the semaphore, not the goroutine count, bounds network fan-out.
func (e *Engine) process(ctx context.Context, wg *sync.WaitGroup, t task) {
	defer wg.Done()

	pageURL := t.url.String()

	// Claim the URL before fetching. This single atomic step is what makes
	// cycles terminate and keeps a URL from being fetched twice while an
	// earlier fetch of it is still outstanding.
	if !e.visited.TryAdd(pageURL) {
		return
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer e.sem.Release(1)

	e.logger.Debug("fetching page", "url", pageURL, "depthRemaining", t.depth)

	body, err := e.transport.FetchText(ctx, pageURL)
	if err != nil {
		e.logger.Warn("page fetch failed", "url", pageURL, "error", err)
		e.recordPage(model.PageVisit{URL: pageURL, Depth: t.depth, Error: err.Error()})
		return
	}

	imgRefs := e.scan.FindAttributeValues(body, "img", "src")
	e.downloadImages(ctx, t.url, imgRefs)

	var linkRefs []string
	if e.recursive && t.depth > 0 {
		linkRefs = e.scan.FindAttributeValues(body, "a", "href")
	}

	e.recordPage(model.PageVisit{
		URL:       pageURL,
		Depth:     t.depth,
		OK:        true,
		ImageRefs: len(imgRefs),
		LinkRefs:  len(linkRefs),
	})

	if e.delay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(e.delay):
		}
	}

	for _, href := range linkRefs {
		next, ok := urlkit.Resolve(t.url, href)
		if !ok {
			// Routine rejection (mailto:, anchors, bad schemes); not an error.
			continue
		}
		// Same-origin containment: traversal never leaves the seed host.
		if !strings.EqualFold(next.Host, e.host) {
			continue
		}
		wg.Add(1)
		go e.process(ctx, wg, task{url: next, depth: t.depth - 1})
	}
}

// downloadImages resolves raw img references against the page URL and
// downloads each previously-unseen image. One failed image never aborts the
// page or its siblings. Image fetches are deliberately not host-restricted;
// only link traversal is.
func (e *Engine) downloadImages(ctx context.Context, page urlkit.URL, refs []string) {
	for _, ref := range refs {
		imgURL, ok := urlkit.Resolve(page, ref)
		if !ok {
			continue
		}
		if !imageref.IsImage(imgURL) {
			continue
		}

		rawURL := imgURL.String()
		if !e.downloaded.TryAdd(rawURL) {
			continue
		}

		name := imageref.Filename(imgURL)
		dest := filepath.Join(e.outDir, name)

		record := model.ImageDownload{
			URL:      rawURL,
			PageURL:  page.String(),
			Filename: name,
		}
		if err := e.transport.Download(ctx, rawURL, dest); err != nil {
			e.logger.Warn("image download failed", "url", rawURL, "error", err)
			record.Error = err.Error()
		} else {
			e.logger.Info("image downloaded", "url", rawURL, "dest", dest)
			record.OK = true
		}
		e.recordImage(record)
	}
}

// recordPage appends a page record to the result.
func (e *Engine) recordPage(v model.PageVisit) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.result.Pages = append(e.result.Pages, v)
}

// recordImage appends an image record to the result.
func (e *Engine) recordImage(d model.ImageDownload) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.result.Images = append(e.result.Images, d)
}
