// Package main provides the entry point for the arachnida CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for arachnida.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arachnida",
		Short: "Web image spider and image metadata tool",
		Long: `arachnida downloads images from websites and inspects image metadata.

The spider subcommand crawls a site starting from a seed URL, downloads the
images it references, and optionally follows same-host links up to a depth
limit. The scorpion subcommand reads local image files and reports their
metadata, including EXIF tags.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewSpiderCmd())
	cmd.AddCommand(NewScorpionCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
