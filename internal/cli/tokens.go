package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lydoc/internal/ui/pretty"
	"github.com/yaklabco/lydoc/pkg/config"
	"github.com/yaklabco/lydoc/pkg/document"
)

type tokensFlags struct {
	mode      string
	format    string
	highlight bool
}

const formatJSON = "json"

// tokenInfo represents a token in JSON output.
type tokenInfo struct {
	Line int    `json:"line"`
	Col  int    `json:"col"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Dump the token stream of a document",
		Long: `Lex a document and print one line per token with its position,
kind and text. With --highlight the source itself is printed with
syntax colors instead.

Reads from stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, func(cfg *config.Config) {
				if flags.mode != "" {
					cfg.Mode = flags.mode
				}
			})
			if err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			d, err := readDocument(cmd, name, cfg.Mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.format == formatJSON {
				return outputTokensJSON(cmd, d)
			}
			printer := pretty.NewPrinter(out, colorEnabled(cmd, out))
			if flags.highlight {
				return printer.Highlight(d)
			}
			return printer.Tokens(d)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", "", "force document mode: lilypond, scheme, html, texinfo")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&flags.highlight, "highlight", false, "print the source with syntax colors")

	return cmd
}

// outputTokensJSON writes the token stream as a JSON array.
func outputTokensJSON(cmd *cobra.Command, d *document.Document) error {
	infos := []tokenInfo{}
	for b := range d.BlocksForward(d.Block(0)) {
		for _, t := range d.Tokens(b) {
			infos = append(infos, tokenInfo{
				Line: b.Index() + 1,
				Col:  t.Pos + 1,
				Kind: t.Kind.String(),
				Text: t.Text,
			})
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tokens to JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
