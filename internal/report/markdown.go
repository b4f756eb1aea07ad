package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/arachnida/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteCrawl outputs the crawl report in Markdown format.
func (w *MarkdownWriter) WriteCrawl(result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")

	recursion := "disabled"
	if result.Recursive {
		recursion = "enabled (depth " + strconv.Itoa(result.MaxDepth) + ")"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", "`" + result.Seed + "`"},
			{"Host", "`" + result.Host + "`"},
			{"Output directory", "`" + result.OutputDir + "`"},
			{"Recursion", recursion},
			{"Started", result.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", result.Duration().Round(timePrecision).String()},
		},
	})
	md.PlainText("")

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Pages fetched", strconv.Itoa(result.PagesFetched())},
			{"Pages failed", strconv.Itoa(result.PagesFailed())},
			{"Images downloaded", strconv.Itoa(result.ImagesDownloaded())},
			{"Images failed", strconv.Itoa(result.ImagesFailed())},
		},
	})
	md.PlainText("")

	if len(result.Pages) > 0 {
		md.H2("Pages")
		md.PlainText("")
		rows := make([][]string, 0, len(result.Pages))
		for _, p := range result.Pages {
			rows = append(rows, []string{
				"`" + p.URL + "`",
				statusText(p.OK, p.Error),
				strconv.Itoa(p.ImageRefs),
				strconv.Itoa(p.LinkRefs),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"URL", "Status", "Images", "Links"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(result.Images) > 0 {
		md.H2("Images")
		md.PlainText("")
		rows := make([][]string, 0, len(result.Images))
		for _, img := range result.Images {
			rows = append(rows, []string{
				"`" + img.URL + "`",
				"`" + img.Filename + "`",
				statusText(img.OK, img.Error),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"URL", "File", "Status"},
			Rows:   rows,
		})
	}

	return len(md.String()), md.Build()
}

// WriteFiles outputs the file metadata reports in Markdown format.
func (w *MarkdownWriter) WriteFiles(reports []model.FileReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Image Metadata Report")
	md.PlainText("")

	for _, r := range reports {
		md.H2(r.Path)
		md.PlainText("")

		if r.Error != "" {
			md.PlainText("Error: " + r.Error)
			md.PlainText("")
			continue
		}

		rows := [][]string{
			{"Size", model.HumanSize(r.Size)},
			{"Modified", r.ModTime.Format("2006-01-02 15:04:05")},
		}
		if r.Format != "" {
			rows = append(rows,
				[]string{"Format", r.Format},
				[]string{"Dimensions", strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)})
			if r.Mode != "" {
				rows = append(rows, []string{"Color mode", r.Mode})
			}
		}
		if r.ExifDate != "" {
			rows = append(rows, []string{"Taken", r.ExifDate})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value"},
			Rows:   rows,
		})
		md.PlainText("")

		if !r.HasExif() {
			md.PlainText("No EXIF data.")
			md.PlainText("")
			continue
		}

		tagRows := make([][]string, 0, len(r.Tags))
		for _, tag := range r.Tags {
			tagRows = append(tagRows, []string{tag.Name, tag.Value})
		}
		md.Table(markdown.TableSet{
			Header: []string{"EXIF Tag", "Value"},
			Rows:   tagRows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// statusText renders an ok/error pair for table cells.
func statusText(ok bool, errText string) string {
	if ok {
		return "ok"
	}
	return "failed: " + errText
}
