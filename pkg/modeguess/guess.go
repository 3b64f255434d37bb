// Package modeguess guesses the lexer mode of a piece of source text.
// It checks for highly indicative patterns first and falls back to
// go-enry's classifier for text that does not give itself away.
package modeguess

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Mode names as used by the lexer.
const (
	ModeLilyPond = "lilypond"
	ModeScheme   = "scheme"
	ModeHTML     = "html"
	ModeTexinfo  = "texinfo"
)

// Guess returns the most likely lexer mode for the given text. It
// always returns a valid mode; text that cannot be classified is
// treated as LilyPond.
func Guess(text string) string {
	trimmed := strings.TrimLeft(text, " \t\n\r\f\v")
	if trimmed == "" {
		return ModeLilyPond
	}

	if mode := guessByPattern(trimmed); mode != "" {
		return mode
	}

	candidates := []string{"LilyPond", "Scheme", "HTML", "Texinfo"}
	if lang, safe := enry.GetLanguageByClassifier([]byte(text), candidates); safe && lang != "" {
		return normalize(lang)
	}

	return ModeLilyPond
}

// guessByPattern checks leading characters and trademark constructs
// of each mode.
func guessByPattern(trimmed string) string {
	switch trimmed[0] {
	case '\\', '%', '{', '<':
		if strings.HasPrefix(trimmed, "<<") {
			return ModeLilyPond
		}
		if trimmed[0] == '<' {
			return ModeHTML
		}
		return ModeLilyPond
	case ';', '(':
		return ModeScheme
	case '@':
		return ModeTexinfo
	}
	if strings.HasPrefix(trimmed, "#!") {
		return ModeScheme
	}

	// constructs that identify a mode regardless of how the text starts
	switch {
	case strings.Contains(trimmed, "\\version") ||
		strings.Contains(trimmed, "\\relative") ||
		strings.Contains(trimmed, "\\score"):
		return ModeLilyPond
	case strings.Contains(trimmed, "<lilypond") ||
		strings.Contains(strings.ToLower(trimmed), "<html") ||
		strings.Contains(strings.ToLower(trimmed), "<!doctype html"):
		return ModeHTML
	case strings.Contains(trimmed, "@node") ||
		strings.Contains(trimmed, "@lilypond") ||
		strings.Contains(trimmed, "@c "):
		return ModeTexinfo
	case strings.HasPrefix(trimmed, "(define") ||
		strings.Contains(trimmed, "#("):
		return ModeScheme
	}
	return ""
}

// Known reports whether mode names a guessable mode.
func Known(mode string) bool {
	switch mode {
	case ModeLilyPond, ModeScheme, ModeHTML, ModeTexinfo:
		return true
	}
	return false
}

// normalize converts go-enry language names to lexer mode names.
func normalize(lang string) string {
	switch lang {
	case "LilyPond":
		return ModeLilyPond
	case "Scheme":
		return ModeScheme
	case "HTML":
		return ModeHTML
	case "Texinfo":
		return ModeTexinfo
	}
	return ModeLilyPond
}
