package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/lydoc/pkg/config"
	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/reformat"
)

func newReformatCommand() *cobra.Command {
	flags := &indentFlags{}

	cmd := &cobra.Command{
		Use:   "reformat [paths...]",
		Short: "Reformat LilyPond source files",
		Long: `Reformat the given files: put music structure braces on their
own lines, re-indent everything, move full-line comments to the
start of the line and strip trailing whitespace.

Without --write the reformatted text is printed to stdout. Reads
from stdin when no paths are given.

Examples:
  lydoc reformat music.ly          # Print reformatted file
  lydoc reformat --write src/      # Reformat a tree in place`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, func(cfg *config.Config) {
				applyIndentFlags(cmd, cfg)
				if flags.mode != "" {
					cfg.Mode = flags.mode
				}
			})
			if err != nil {
				return err
			}

			in := indenterFromConfig(cfg)
			op := func(c *document.Cursor) error {
				return reformat.Reformat(c, in)
			}

			if len(args) == 0 {
				return runStdin(cmd, cfg, op)
			}
			return runBatch(cmd, args, cfg, flags.backup, op)
		},
	}

	addIndentFlags(cmd, flags)

	return cmd
}
