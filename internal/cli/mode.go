package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lydoc/pkg/lex"
	"github.com/yaklabco/lydoc/pkg/modeguess"
)

func newModeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode [file]",
		Short: "Guess the mode of a document",
		Long: `Guess whether a document is LilyPond, Scheme, HTML or Texinfo and
print the mode name. Reads from stdin when no file is given.

The supported modes are: ` + strings.Join(lex.Modes(), ", ") + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			d, err := readDocument(cmd, name, "")
			if err != nil {
				return err
			}

			mode := d.EffectiveMode()
			if mode == "" {
				mode = modeguess.ModeLilyPond
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), mode)
			return err
		},
	}

	return cmd
}
