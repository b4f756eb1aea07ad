package report

import (
	"io"

	"github.com/nao1215/arachnida/internal/model"
)

// Writer defines the interface for report output.
// Implementations write crawl and file reports in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteCrawl outputs one crawl run's report.
	// Returns the number of bytes written and any error encountered.
	WriteCrawl(result *model.CrawlResult) (int, error)

	// WriteFiles outputs the metadata reports for a set of image files.
	WriteFiles(reports []model.FileReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteCrawl outputs the crawl report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteCrawl(result *model.CrawlResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteCrawl(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteFiles outputs the file reports to all configured Writers.
func (m *MultiWriter) WriteFiles(reports []model.FileReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteFiles(reports)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
