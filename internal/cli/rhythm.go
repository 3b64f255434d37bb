package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lydoc/pkg/config"
	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/rhythm"
)

func newRhythmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rhythm",
		Short: "Edit durations of notes, rests and skips",
		Long: `Edit the durations in LilyPond music. Each subcommand rewrites
the durations in the given files, or in text read from stdin when
no paths are given.`,
	}

	cmd.AddCommand(
		newRhythmOpCommand("double", "Double all durations", rhythm.Double),
		newRhythmOpCommand("halve", "Halve all durations", rhythm.Halve),
		newRhythmOpCommand("dot", "Add a dot to all durations", rhythm.Dot),
		newRhythmOpCommand("undot", "Remove one dot from all durations", rhythm.Undot),
		newRhythmOpCommand("remove", "Remove all durations", rhythm.Remove),
		newRhythmOpCommand("remove-scaling", "Remove scaling factors like *1/3", rhythm.RemoveScaling),
		newRhythmOpCommand("remove-fraction-scaling", "Remove fractional scaling factors, keeping integers", rhythm.RemoveFractionScaling),
		newRhythmOpCommand("explicit", "Write a duration after every note, rest and skip", rhythm.Explicit),
		newRhythmImplicitCommand(),
		newRhythmOverwriteCommand(),
		newRhythmExtractCommand(),
		newRhythmListCommand(),
	)

	return cmd
}

// newRhythmOpCommand builds a subcommand for an edit that takes no
// further arguments.
func newRhythmOpCommand(name, short string, edit func(*document.Cursor) error) *cobra.Command {
	flags := &indentFlags{}

	cmd := &cobra.Command{
		Use:   name + " [paths...]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRhythm(cmd, args, flags, edit)
		},
	}

	addRhythmFlags(cmd, flags)

	return cmd
}

func newRhythmImplicitCommand() *cobra.Command {
	flags := &indentFlags{}
	var perLine bool

	cmd := &cobra.Command{
		Use:   "implicit [paths...]",
		Short: "Remove durations that repeat the preceding one",
		Long: `Remove durations that repeat the preceding duration. With
--per-line the first duration of every line is kept, so lines stay
readable on their own.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			edit := rhythm.Implicit
			if perLine {
				edit = rhythm.ImplicitPerLine
			}
			return runRhythm(cmd, args, flags, edit)
		},
	}

	addRhythmFlags(cmd, flags)
	cmd.Flags().BoolVar(&perLine, "per-line", false, "keep the first duration of every line")

	return cmd
}

func newRhythmOverwriteCommand() *cobra.Command {
	flags := &indentFlags{}
	var durations string

	cmd := &cobra.Command{
		Use:   "overwrite [paths...]",
		Short: "Overwrite durations with a given list",
		Long: `Set the durations of all notes, rests and skips to the given
space-separated list, repeating the list when the music is longer.

Example:
  lydoc rhythm overwrite --durations "4. 8" music.ly`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			durs := strings.Fields(durations)
			if len(durs) == 0 {
				return fmt.Errorf("no durations given")
			}
			return runRhythm(cmd, args, flags, func(c *document.Cursor) error {
				return rhythm.Overwrite(c, durs)
			})
		},
	}

	addRhythmFlags(cmd, flags)
	cmd.Flags().StringVar(&durations, "durations", "", "space-separated durations to apply")
	_ = cmd.MarkFlagRequired("durations")

	return cmd
}

func newRhythmExtractCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the durations found in the music",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, func(cfg *config.Config) {
				if mode != "" {
					cfg.Mode = mode
				}
			})
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			d, err := readDocument(cmd, name, cfg.Mode)
			if err != nil {
				return err
			}

			durs := rhythm.Extract(fullCursor(d))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(durs, " "))
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "force document mode")

	return cmd
}

func newRhythmListCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List the music items that carry or could carry a duration",
		Long: `List every note, rest and skip with its position and duration.
The partial setting from the configuration controls how items
straddling the selected range are treated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, func(cfg *config.Config) {
				if mode != "" {
					cfg.Mode = mode
				}
			})
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			d, err := readDocument(cmd, name, cfg.Mode)
			if err != nil {
				return err
			}

			opts := rhythm.Options{Partial: partiality(cfg.Rhythm.Partial)}
			out := cmd.OutOrStdout()
			for item := range rhythm.Items(fullCursor(d), opts) {
				text := itemText(item)
				dur := durText(item)
				if dur == "" {
					dur = "-"
				}
				if _, err := fmt.Fprintf(out, "%d\t%s\t%s\n", item.Pos, text, dur); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "force document mode")

	return cmd
}

// addRhythmFlags registers the flags shared by all rhythm edits.
func addRhythmFlags(cmd *cobra.Command, flags *indentFlags) {
	cmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a sidecar backup of rewritten files")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "force document mode")
}

func runRhythm(cmd *cobra.Command, args []string, flags *indentFlags, edit func(*document.Cursor) error) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		if cmd.Flags().Changed("write") {
			cfg.Write, _ = cmd.Flags().GetBool("write")
		}
		if flags.mode != "" {
			cfg.Mode = flags.mode
		}
	})
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return runStdin(cmd, cfg, edit)
	}
	return runBatch(cmd, args, cfg, flags.backup, edit)
}

func partiality(name string) document.Partiality {
	switch name {
	case "outside":
		return document.Outside
	case "partial":
		return document.Partial
	default:
		return document.Inside
	}
}

func itemText(item rhythm.Item) string {
	var sb strings.Builder
	for _, t := range item.Tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func durText(item rhythm.Item) string {
	var sb strings.Builder
	for _, t := range item.DurTokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}
