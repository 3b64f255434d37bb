package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/lydoc/pkg/config"
	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/indent"
)

type indentFlags struct {
	mode   string
	backup bool
}

func newIndentCommand() *cobra.Command {
	flags := &indentFlags{}

	cmd := &cobra.Command{
		Use:   "indent [paths...]",
		Short: "Re-indent LilyPond source files",
		Long: `Re-indent all lines of the given files following the bracket
structure of the music. Directories are searched recursively for
LilyPond and Scheme files.

Without --write the indented text is printed to stdout. Reads from
stdin when no paths are given.

Examples:
  lydoc indent music.ly            # Print indented file
  lydoc indent --write src/        # Re-indent a tree in place
  lydoc indent --tabs --write .    # Indent with tabs`,
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
				return in.Indent(c, cfg.Indent.BlankLines)
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

// addIndentFlags registers the flags shared by indent and reformat.
func addIndentFlags(cmd *cobra.Command, flags *indentFlags) {
	cmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a sidecar backup of rewritten files")
	cmd.Flags().Int("width", 0, "spaces per indent level")
	cmd.Flags().Bool("tabs", false, "indent with tabs")
	cmd.Flags().Bool("blank-lines", false, "re-indent blank lines too")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "force document mode")
}

// applyIndentFlags overlays explicitly set indent flags onto the config.
func applyIndentFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("write") {
		cfg.Write, _ = cmd.Flags().GetBool("write")
	}
	if cmd.Flags().Changed("width") {
		cfg.Indent.Width, _ = cmd.Flags().GetInt("width")
	}
	if cmd.Flags().Changed("tabs") {
		cfg.Indent.Tabs, _ = cmd.Flags().GetBool("tabs")
	}
	if cmd.Flags().Changed("blank-lines") {
		cfg.Indent.BlankLines, _ = cmd.Flags().GetBool("blank-lines")
	}
}

func indenterFromConfig(cfg *config.Config) *indent.Indenter {
	return &indent.Indenter{
		Width: cfg.Indent.Width,
		Tabs:  cfg.Indent.Tabs,
	}
}

// runStdin applies op to a document read from stdin and prints it.
func runStdin(cmd *cobra.Command, cfg *config.Config, op func(*document.Cursor) error) error {
	d, err := readDocument(cmd, "", cfg.Mode)
	if err != nil {
		return err
	}
	if err := op(fullCursor(d)); err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write([]byte(d.Text()))
	return err
}
