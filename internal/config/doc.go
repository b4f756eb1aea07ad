// Package config provides configuration structures and utilities for
// arachnida. It defines the crawl options for the spider subcommand,
// report generation preferences, and the optional per-host YAML overrides.
package config
