package model

import "time"

// CrawlResult is the complete outcome of one spider run. It is assembled by
// the crawl engine and consumed by the report writers and the history
// database. The dedup state behind it is discarded when the run ends; only
// these records persist.
type CrawlResult struct {
	// Seed is the normalized seed URL the crawl started from.
	Seed string `json:"seed"`

	// Host is the seed host every followed link was restricted to.
	Host string `json:"host"`

	// OutputDir is the directory downloaded images were written to.
	OutputDir string `json:"output_dir"`

	// Recursive reports whether link following was enabled.
	Recursive bool `json:"recursive"`

	// MaxDepth is the depth bound used for the run. Zero when recursion
	// was disabled.
	MaxDepth int `json:"max_depth"`

	// StartedAt and FinishedAt bracket the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Pages are the page fetch records, one per unique URL attempted.
	Pages []PageVisit `json:"pages"`

	// Images are the image download records, one per unique image URL
	// attempted.
	Images []ImageDownload `json:"images"`
}

// PageVisit records a single page fetch attempt.
type PageVisit struct {
	// URL is the fully-qualified page URL.
	URL string `json:"url"`

	// Depth is the remaining link budget when the page was fetched.
	Depth int `json:"depth"`

	// OK reports whether the fetch succeeded (2xx within the timeout).
	OK bool `json:"ok"`

	// Error holds the fetch failure, empty on success.
	Error string `json:"error,omitempty"`

	// ImageRefs is the number of image references extracted from the page.
	ImageRefs int `json:"image_refs"`

	// LinkRefs is the number of anchor references extracted from the page.
	LinkRefs int `json:"link_refs"`
}

// ImageDownload records a single image download attempt.
type ImageDownload struct {
	// URL is the resolved image URL.
	URL string `json:"url"`

	// PageURL is the page the reference was found on.
	PageURL string `json:"page_url"`

	// Filename is the derived local filename inside the output directory.
	Filename string `json:"filename"`

	// OK reports whether the download completed.
	OK bool `json:"ok"`

	// Error holds the download failure, empty on success.
	Error string `json:"error,omitempty"`
}

// PagesFetched returns the number of successfully fetched pages.
func (r *CrawlResult) PagesFetched() int {
	n := 0
	for _, p := range r.Pages {
		if p.OK {
			n++
		}
	}
	return n
}

// PagesFailed returns the number of failed page fetches.
func (r *CrawlResult) PagesFailed() int {
	return len(r.Pages) - r.PagesFetched()
}

// ImagesDownloaded returns the number of successfully downloaded images.
func (r *CrawlResult) ImagesDownloaded() int {
	n := 0
	for _, img := range r.Images {
		if img.OK {
			n++
		}
	}
	return n
}

// ImagesFailed returns the number of failed image downloads.
func (r *CrawlResult) ImagesFailed() int {
	return len(r.Images) - r.ImagesDownloaded()
}

// Duration returns the wall-clock duration of the run.
func (r *CrawlResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
