package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/lydoc/pkg/barcheck"
)

func newBarcheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "barcheck",
		Short: "Work with bar checks",
	}

	cmd.AddCommand(newRhythmOpCommand("remove",
		"Remove bar checks, tidying surrounding whitespace", barcheck.Remove))

	return cmd
}
