// Package cli provides the Cobra command structure for quill.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root quill command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "quill",
		Short: "Reflow text into fixed-width book pages",
		Long: `quill reflows text into fixed-capacity pages for in-game books and
other fixed-width surfaces.

Every character has a configurable visual width; CJK ideographs and CJK
punctuation are wider than Latin text. quill wraps the text greedily within a
per-line width budget, groups lines into pages, and either previews the pages
or hands them one at a time to stdout, a directory, or an external command
such as a clipboard tool.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetDefault(logging.NewWithWriter(cmd.ErrOrStderr(), "info"))
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: groupLayout, Title: "Layout Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(groupSetup)
	rootCmd.SetCompletionCommandGroupID(groupSetup)

	for _, sub := range []*cobra.Command{
		newFormatCommand(),
		newPasteCommand(),
		newBatchCommand(),
		newWidthsCommand(),
	} {
		sub.GroupID = groupLayout
		rootCmd.AddCommand(sub)
	}
	for _, sub := range []*cobra.Command{
		newInitCommand(),
		newVersionCommand(info),
	} {
		sub.GroupID = groupSetup
		rootCmd.AddCommand(sub)
	}

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
