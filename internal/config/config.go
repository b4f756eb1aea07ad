package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The crawl defaults match the classic
// behavior of depth-bounded image spiders: a shallow default depth and a
// local ./data output directory.
const (
	// DefaultMaxDepth is the recursion depth used when -r is given without
	// an explicit -l flag. Five levels covers most small sites without
	// runaway crawling.
	DefaultMaxDepth = 5

	// DefaultOutputDir is where downloaded images land when -p is omitted.
	DefaultOutputDir = "./data"

	// DefaultConcurrency of 1 keeps the crawl strictly sequential, which
	// is the most polite mode and the easiest to reason about. Users can
	// raise it via --concurrency for faster runs.
	DefaultConcurrency = 1

	// DefaultTimeout is the per-request timeout for page fetches.
	DefaultTimeout = 15 * time.Second

	// DefaultDelay is the pause between page fetches. Zero by default so a
	// plain run is as fast as a sequential crawler can be; raise it when
	// scraping sites that rate-limit.
	DefaultDelay = 0 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "arachnida"
)

// Config holds all options for a spider run.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Seed is the URL the crawl starts from.
	Seed string

	// OutputDir is the directory downloaded images are written to.
	// Created if it does not exist.
	OutputDir string

	// Recursive enables link following up to MaxDepth.
	Recursive bool

	// MaxDepth is the maximum recursion depth when Recursive is true.
	// The seed page is at full budget; each followed link decrements it.
	MaxDepth int

	// DepthExplicit reports whether the user set the depth flag. A depth
	// flag without -r is rejected rather than silently ignored.
	DepthExplicit bool

	// Concurrency bounds how many fetches run at once.
	Concurrency int

	// Delay is the politeness pause between page fetches.
	Delay time.Duration

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// UserAgent overrides the User-Agent header when non-empty.
	UserAgent string

	// ExtraHeaders are additional headers sent with every request, merged
	// from the per-host configuration for the seed's host.
	ExtraHeaders map[string]string

	// UseDOMParser selects the HTML-tree scanner instead of the default
	// pattern scanner.
	UseDOMParser bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the plain summary.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the plain
	// summary. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// SaveToDB records the run in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory when SaveToDB is set.
	DBDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .arachnida in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-host overrides loaded from the config file.
	SiteConfigs *File
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., depth, timeout).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir,
		MaxDepth:    DefaultMaxDepth,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		Delay:       DefaultDelay,
	}
}

// XDGDataDir returns the XDG data directory for arachnida.
// On Linux: ~/.local/share/arachnida
// On macOS: ~/Library/Application Support/arachnida
// On Windows: %LOCALAPPDATA%\arachnida
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for arachnida.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any fetching begins.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Seed == "" {
		return ErrNoSeed
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.DepthExplicit && !c.Recursive {
		return ErrDepthWithoutRecursion
	}
	if c.Recursive && c.MaxDepth <= 0 {
		return ErrInvalidDepth
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
