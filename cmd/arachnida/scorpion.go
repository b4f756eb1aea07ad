package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/arachnida/internal/metadata"
	"github.com/nao1215/arachnida/internal/model"
	"github.com/nao1215/arachnida/internal/report"
)

// NewScorpionCmd creates the scorpion command.
func NewScorpionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scorpion <file> [file...]",
		Short: "Show image metadata",
		Long: `Scorpion reads local image files and reports their metadata: file size
and modification time, image format and dimensions, and EXIF tags such as
camera model, capture date, and GPS coordinates.

Supported file types: .jpg, .jpeg, .png, .gif, .bmp

A file that cannot be read is reported and skipped; the exit code is
non-zero when any file failed.

Examples:
  # Inspect downloaded images
  arachnida scorpion data/*.jpg

  # JSON output for scripting
  arachnida scorpion --json photo.jpg

  # Remove EXIF from JPEGs, writing <name>_clean.jpg copies
  arachnida scorpion --strip photo.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScorpionCmd,
	}

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Strip flags
	cmd.Flags().Bool("strip", false,
		"Write EXIF-free copies of the given JPEG files")
	cmd.Flags().String("strip-dir", "",
		"Directory for stripped copies (default: next to the originals)")

	return cmd
}

// runScorpionCmd executes the scorpion command.
func runScorpionCmd(cmd *cobra.Command, args []string) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return fmt.Errorf("conflicting report formats: --json and --markdown cannot be used together")
	}
	reportFile, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	strip, err := cmd.Flags().GetBool("strip")
	if err != nil {
		return err
	}
	stripDir, err := cmd.Flags().GetString("strip-dir")
	if err != nil {
		return err
	}

	if strip {
		return runStrip(cmd, args, stripDir)
	}

	reports := make([]model.FileReport, 0, len(args))
	failed := 0
	for _, path := range args {
		r := metadata.Inspect(path)
		if r.Error != "" {
			failed++
		}
		reports = append(reports, r)
	}

	if err := outputFileReports(reports, jsonOut, markdownOut, reportFile); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be inspected", failed, len(args))
	}
	return nil
}

// runStrip writes EXIF-free copies of the given JPEG files.
func runStrip(cmd *cobra.Command, args []string, stripDir string) error {
	if stripDir != "" {
		if err := os.MkdirAll(stripDir, 0750); err != nil {
			return fmt.Errorf("failed to create strip directory: %w", err)
		}
	}

	failed := 0
	for _, path := range args {
		dest, err := metadata.StripExif(path, stripDir)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "strip %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, dest)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be stripped", failed, len(args))
	}
	return nil
}

// outputFileReports writes the metadata reports in the requested format.
func outputFileReports(reports []model.FileReport, jsonOut, markdownOut bool, reportFile string) error {
	var output *os.File
	if reportFile != "" {
		dir := filepath.Dir(reportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(reportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
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
	case jsonOut:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case markdownOut:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}
	_, err := writer.WriteFiles(reports)
	return err
}
