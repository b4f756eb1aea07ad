package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/arachnida/internal/model"
)

// timePrecision is the rounding applied to durations in text output.
const timePrecision = time.Millisecond

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-URL detail instead of just the summary.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-URL detail in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteCrawl outputs the crawl run summary in human-readable format.
func (w *SimpleWriter) WriteCrawl(result *model.CrawlResult) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\nCRAWL SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Seed:              %s\n", result.Seed)
	fmt.Fprintf(&sb, "Output directory:  %s\n", result.OutputDir)
	if result.Recursive {
		fmt.Fprintf(&sb, "Recursion:         enabled (depth %d)\n", result.MaxDepth)
	} else {
		sb.WriteString("Recursion:         disabled\n")
	}
	fmt.Fprintf(&sb, "Duration:          %s\n\n", result.Duration().Round(timePrecision))

	fmt.Fprintf(&sb, "Pages fetched:     %d\n", result.PagesFetched())
	fmt.Fprintf(&sb, "Pages failed:      %d\n", result.PagesFailed())
	fmt.Fprintf(&sb, "Images downloaded: %d\n", result.ImagesDownloaded())
	fmt.Fprintf(&sb, "Images failed:     %d\n", result.ImagesFailed())

	if w.verbose {
		w.writeCrawlDetail(&sb, result)
	} else {
		w.writeFailures(&sb, result)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeCrawlDetail lists every page and image record.
func (w *SimpleWriter) writeCrawlDetail(sb *strings.Builder, result *model.CrawlResult) {
	sb.WriteString("\nPages:\n")
	for _, p := range result.Pages {
		if p.OK {
			fmt.Fprintf(sb, "  [ok]   %s (images: %d, links: %d)\n", p.URL, p.ImageRefs, p.LinkRefs)
		} else {
			fmt.Fprintf(sb, "  [fail] %s: %s\n", p.URL, p.Error)
		}
	}

	if len(result.Images) > 0 {
		sb.WriteString("\nImages:\n")
		for _, img := range result.Images {
			if img.OK {
				fmt.Fprintf(sb, "  [ok]   %s -> %s\n", img.URL, img.Filename)
			} else {
				fmt.Fprintf(sb, "  [fail] %s: %s\n", img.URL, img.Error)
			}
		}
	}
}

// writeFailures lists only the failed records, so a clean run stays short.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, result *model.CrawlResult) {
	wroteHeader := false
	header := func() {
		if !wroteHeader {
			sb.WriteString("\nFailures:\n")
			wroteHeader = true
		}
	}
	for _, p := range result.Pages {
		if !p.OK {
			header()
			fmt.Fprintf(sb, "  page  %s: %s\n", p.URL, p.Error)
		}
	}
	for _, img := range result.Images {
		if !img.OK {
			header()
			fmt.Fprintf(sb, "  image %s: %s\n", img.URL, img.Error)
		}
	}
}

// WriteFiles outputs the file metadata reports in human-readable format.
func (w *SimpleWriter) WriteFiles(reports []model.FileReport) (int, error) {
	var sb strings.Builder

	for i, r := range reports {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s\n", r.Path)
		sb.WriteString(strings.Repeat("-", len(r.Path)))
		sb.WriteString("\n")

		if r.Error != "" {
			fmt.Fprintf(&sb, "  error: %s\n", r.Error)
			continue
		}

		fmt.Fprintf(&sb, "  size:     %s\n", model.HumanSize(r.Size))
		fmt.Fprintf(&sb, "  modified: %s\n", r.ModTime.Format("2006-01-02 15:04:05"))
		if r.Format != "" {
			fmt.Fprintf(&sb, "  format:   %s\n", r.Format)
			fmt.Fprintf(&sb, "  size px:  %dx%d\n", r.Width, r.Height)
			if r.Mode != "" {
				fmt.Fprintf(&sb, "  mode:     %s\n", r.Mode)
			}
		}
		if r.ExifDate != "" {
			fmt.Fprintf(&sb, "  taken:    %s\n", r.ExifDate)
		}

		if !r.HasExif() {
			sb.WriteString("  no EXIF data\n")
			continue
		}
		sb.WriteString("  EXIF:\n")
		for _, tag := range r.Tags {
			fmt.Fprintf(&sb, "    %-28s %s\n", tag.Name, tag.Value)
		}
	}

	return w.output.Write([]byte(sb.String()))
}
