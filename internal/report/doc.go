// Package report renders crawl results and image metadata reports in
// several output formats: human-readable text for the terminal, JSON for
// tool integration, and Markdown for documentation.
package report
