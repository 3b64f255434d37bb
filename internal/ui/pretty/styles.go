// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/lydoc/pkg/lex"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token styles
	Comment   lipgloss.Style
	String    lipgloss.Style
	Number    lipgloss.Style
	Duration  lipgloss.Style
	Keyword   lipgloss.Style
	Command   lipgloss.Style
	Pitch     lipgloss.Style
	Dynamic   lipgloss.Style
	Delimiter lipgloss.Style
	Lexing    lipgloss.Style

	// Listing components
	FilePath lipgloss.Style
	Location lipgloss.Style
	KindName lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Comment:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		String:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Number:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Duration:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Keyword:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Command:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Pitch:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Dynamic:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Delimiter: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Lexing:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		KindName: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Comment:      plain,
		String:       plain,
		Number:       plain,
		Duration:     plain,
		Keyword:      plain,
		Command:      plain,
		Pitch:        plain,
		Dynamic:      plain,
		Delimiter:    plain,
		Lexing:       plain,
		FilePath:     plain,
		Location:     plain,
		KindName:     plain,
		SummaryTitle: plain,
		Success:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// ForToken picks the style for a token, branching on token classes
// first and falling back to a handful of kinds.
func (s *Styles) ForToken(t lex.Token) lipgloss.Style {
	switch {
	case t.Is(lex.ClassError):
		return s.Lexing
	case t.Is(lex.ClassComment):
		return s.Comment
	case t.Is(lex.ClassString):
		return s.String
	case t.Is(lex.ClassDuration):
		return s.Duration
	case t.Is(lex.ClassNumeric):
		return s.Number
	case t.Is(lex.ClassDirection):
		return s.Dynamic
	}

	switch t.Kind {
	case lex.Keyword:
		return s.Keyword
	case lex.Note, lex.Rest, lex.Skip, lex.Octave, lex.OctaveCheck:
		return s.Pitch
	case lex.Dynamic, lex.Articulation, lex.Fingering, lex.StringNumber:
		return s.Dynamic
	}

	if t.IsAny(lex.ClassMatchStart | lex.ClassMatchEnd | lex.ClassIndent | lex.ClassDedent) {
		return s.Delimiter
	}
	if strings.HasPrefix(t.Text, `\`) || strings.HasPrefix(t.Text, "@") {
		return s.Command
	}
	return lipgloss.NewStyle()
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
