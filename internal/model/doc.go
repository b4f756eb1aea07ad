// Package model defines the core data structures shared across arachnida.
//
// This package contains the following main types:
//   - CrawlResult: the outcome of one spider run
//   - PageVisit / ImageDownload: per-URL records inside a CrawlResult
//   - FileReport: the metadata report for one local image file
//
// Design decision: We separate models into their own package to avoid
// circular dependencies. Multiple packages (crawler, report, database) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
