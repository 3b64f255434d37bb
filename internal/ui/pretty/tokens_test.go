package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/internal/ui/pretty"
	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/lex"
	"github.com/yaklabco/lydoc/pkg/runner"
)

func TestHighlightWithoutColorIsIdentity(t *testing.T) {
	t.Parallel()

	text := "\\relative c' {\n  c4 d e\n}\n"
	d := document.New(text, "")

	var buf strings.Builder
	p := pretty.NewPrinter(&buf, false)
	require.NoError(t, p.Highlight(d))
	assert.Equal(t, text+"\n", buf.String())
}

func TestTokensListing(t *testing.T) {
	t.Parallel()

	d := document.New("{ c4\nd }", "lilypond")

	var buf strings.Builder
	p := pretty.NewPrinter(&buf, false)
	require.NoError(t, p.Tokens(d))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, `1:1 SequentialStart "{"`, lines[0])
	assert.Equal(t, `1:3 Note "c"`, lines[2])
	assert.Equal(t, `1:4 Length "4"`, lines[3])
	assert.Equal(t, `2:1 Note "d"`, lines[4])
	assert.Equal(t, `2:3 SequentialEnd "}"`, lines[6])
}

func TestForTokenClasses(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)

	comment := lex.Token{Kind: lex.LineComment, Text: "% hi"}
	assert.Equal(t, styles.Comment, styles.ForToken(comment))

	duration := lex.Token{Kind: lex.Length, Text: "4"}
	assert.Equal(t, styles.Duration, styles.ForToken(duration))

	note := lex.Token{Kind: lex.Note, Text: "c"}
	assert.Equal(t, styles.Pitch, styles.ForToken(note))
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	result := &runner.Result{}
	result.Stats.FilesDiscovered = 3
	result.Stats.FilesChanged = 2
	result.Stats.FilesWritten = 1

	var buf strings.Builder
	require.NoError(t, pretty.WriteSummary(&buf, pretty.NewStyles(false), result))
	assert.Equal(t, "summary: 3 files, 2 changed, 1 written (ok)\n", buf.String())
}
