package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/arachnida/internal/config"
	"github.com/nao1215/arachnida/internal/crawler"
	"github.com/nao1215/arachnida/internal/database"
	"github.com/nao1215/arachnida/internal/log"
	"github.com/nao1215/arachnida/internal/model"
	"github.com/nao1215/arachnida/internal/report"
	"github.com/nao1215/arachnida/internal/scanner"
	"github.com/nao1215/arachnida/internal/transport"
	"github.com/nao1215/arachnida/internal/urlkit"
)

// NewSpiderCmd creates the spider command.
func NewSpiderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spider <url>",
		Short: "Download images from a website",
		Long: `Spider fetches a page, extracts its image references, and downloads every
previously-unseen image to a local directory. With -r it also follows links,
never leaving the host of the starting URL, down to a configurable depth.

A failed page or image is logged and skipped; only a starting URL that does
not parse as http(s) aborts the run.

Examples:
  # Download the images referenced by one page
  arachnida spider http://example.com/gallery.html

  # Crawl the whole site up to 5 links deep
  arachnida spider -r http://example.com/

  # Deeper crawl into a custom directory, politely
  arachnida spider -r -l 8 -p ./images --delay 500ms http://example.com/

  # Parallel crawl with a JSON report and history recording
  arachnida spider -r --concurrency 8 --json -o report.json --db http://example.com/

Configuration file (.arachnida) example:
  defaults:
    userAgent: "MyCrawler/1.0"
  sites:
    example.com:
      delay: 2s
      headers:
        Authorization: "Bearer token"`,
		Args: cobra.ExactArgs(1),
		RunE: runSpiderCmd,
	}

	// Crawl behavior flags
	cmd.Flags().BoolP("recursive", "r", false,
		"Follow same-host links recursively")
	cmd.Flags().IntP("depth", "l", config.DefaultMaxDepth,
		"Maximum recursion depth (requires -r)")
	cmd.Flags().StringP("path", "p", config.DefaultOutputDir,
		"Directory to save downloaded images into")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of concurrent fetches")
	cmd.Flags().Duration("delay", config.DefaultDelay,
		"Pause after each page fetch")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().String("user-agent", "",
		"Override the User-Agent header")
	cmd.Flags().Bool("dom", false,
		"Parse pages with a real HTML tree instead of pattern matching")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .arachnida in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON crawl report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown crawl report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("db", false,
		"Record the run in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runSpiderCmd executes the spider command.
func runSpiderCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildSpiderConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the crawl on interrupt; whatever was downloaded stays.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runSpider(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildSpiderConfig creates a Config from cobra command flags and the
// optional per-host configuration file. CLI flags beat the config file,
// which beats the built-in defaults.
func buildSpiderConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Seed = args[0]

	var err error

	cfg.Recursive, err = cmd.Flags().GetBool("recursive")
	if err != nil {
		return nil, err
	}
	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}
	cfg.DepthExplicit = cmd.Flags().Changed("depth")

	cfg.OutputDir, err = cmd.Flags().GetString("path")
	if err != nil {
		return nil, err
	}
	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}
	cfg.Delay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}
	cfg.UseDOMParser, err = cmd.Flags().GetBool("dom")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("db")
	if err != nil {
		return nil, err
	}
	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-host configurations from the config file.
	// If the user explicitly specified a path, a missing file is an error.
	// Otherwise a missing file just means no overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	applySiteConfig(cmd, cfg)
	return cfg, nil
}

// applySiteConfig merges the seed host's configuration into cfg. Values set
// explicitly on the command line are left alone.
func applySiteConfig(cmd *cobra.Command, cfg *config.Config) {
	seedURL, err := urlkit.Parse(cfg.Seed)
	if err != nil {
		// A bad seed fails later with a proper message; nothing to merge.
		return
	}

	sc := cfg.SiteConfigs.GetSiteConfig(seedURL.Host)
	if sc.UserAgent != "" && cfg.UserAgent == "" {
		cfg.UserAgent = sc.UserAgent
	}
	if sc.Depth > 0 && !cfg.DepthExplicit {
		cfg.MaxDepth = sc.Depth
	}
	if sc.Delay != 0 && !cmd.Flags().Changed("delay") {
		cfg.Delay = sc.Delay.Std()
	}
	cfg.ExtraHeaders = sc.Headers
}

// runSpider executes the crawl and emits the report.
func runSpider(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	transportOpts := []transport.Option{
		transport.WithTimeout(cfg.Timeout),
	}
	if cfg.UserAgent != "" {
		transportOpts = append(transportOpts, transport.WithUserAgent(cfg.UserAgent))
	}
	if len(cfg.ExtraHeaders) > 0 {
		transportOpts = append(transportOpts, transport.WithHeaders(cfg.ExtraHeaders))
	}
	client := transport.NewClient(transportOpts...)

	engineOpts := []crawler.Option{
		crawler.WithOutputDir(cfg.OutputDir),
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithDelay(cfg.Delay),
		crawler.WithLogger(logger),
	}
	if cfg.Recursive {
		engineOpts = append(engineOpts, crawler.WithRecursion(cfg.MaxDepth))
	}
	if cfg.UseDOMParser {
		engineOpts = append(engineOpts, crawler.WithScanner(scanner.NewDOMScanner()))
	}

	engine := crawler.New(client, engineOpts...)
	result, err := engine.Run(ctx, cfg.Seed)
	if err != nil {
		return err
	}

	if err := outputCrawlReport(cfg, result); err != nil {
		logger.Error("report failed", "error", err)
	}

	if cfg.SaveToDB {
		if err := saveCrawlResult(ctx, cfg, result, logger); err != nil {
			logger.Error("failed to save crawl history", "error", err)
		}
	}

	return nil
}

// outputCrawlReport writes the crawl report in the requested format.
func outputCrawlReport(cfg *config.Config, result *model.CrawlResult) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	_, err := writer.WriteCrawl(result)
	return err
}

// saveCrawlResult records the run in the history database.
func saveCrawlResult(ctx context.Context, cfg *config.Config, result *model.CrawlResult, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveCrawlResult(ctx, result)
	if err != nil {
		return err
	}
	logger.Info("crawl recorded", "runID", id, "dbDir", cfg.DBDir)
	return nil
}
