package pretty

import (
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/lydoc/pkg/document"
)

const defaultTermWidth = 120

// Printer renders lexed documents to a writer.
type Printer struct {
	w      io.Writer
	styles *Styles
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, colorEnabled bool) *Printer {
	return &Printer{w: w, styles: NewStyles(colorEnabled)}
}

// Styles exposes the printer's style set.
func (p *Printer) Styles() *Styles { return p.styles }

// Highlight writes the document text with per-token syntax colors.
func (p *Printer) Highlight(d *document.Document) error {
	for b := range d.BlocksForward(d.Block(0)) {
		text := b.Text()
		pos := 0
		for _, t := range d.Tokens(b) {
			// Preserve any text the lexer did not claim.
			if t.Pos > pos {
				if _, err := io.WriteString(p.w, text[pos:t.Pos]); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(p.w, p.styles.ForToken(t).Render(t.Text)); err != nil {
				return err
			}
			pos = t.End()
		}
		if pos < len(text) {
			if _, err := io.WriteString(p.w, text[pos:]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(p.w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Tokens writes one line per token: location, kind and text. Long
// token texts are shortened to the terminal width.
func (p *Printer) Tokens(d *document.Document) error {
	width := terminalWidth(p.w)
	for b := range d.BlocksForward(d.Block(0)) {
		for _, t := range d.Tokens(b) {
			location := fmt.Sprintf("%d:%d", b.Index()+1, t.Pos+1)
			kind := t.Kind.String()
			quoted := fmt.Sprintf("%q", t.Text)
			if max := width - len(location) - len(kind) - 2; max >= 16 && len(quoted) > max {
				quoted = quoted[:max-4] + `..."`
			}
			_, err := fmt.Fprintf(p.w, "%s %s %s\n",
				p.styles.Location.Render(location),
				p.styles.KindName.Render(kind),
				p.styles.ForToken(t).Render(quoted),
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// terminalWidth returns the width of the terminal behind w, if any.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
