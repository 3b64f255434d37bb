// Package cli provides the Cobra command structure for lydoc.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/lydoc/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root lydoc command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "lydoc",
		Short: "Tokenize, indent and rewrite LilyPond source",
		Long: `lydoc is a command line tool for LilyPond source documents.

It lexes LilyPond, embedded Scheme, and LilyPond islands inside HTML or
Texinfo documents, and uses the token stream to indent, reformat and
transform music without touching its meaning. Edits are applied through
transactions, so a file is either rewritten completely or left alone.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
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

	// Add subcommands.
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newModeCommand())
	rootCmd.AddCommand(newIndentCommand())
	rootCmd.AddCommand(newReformatCommand())
	rootCmd.AddCommand(newRhythmCommand())
	rootCmd.AddCommand(newBarcheckCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
