package reformat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/indent"
	"github.com/yaklabco/lydoc/pkg/reformat"
)

func apply(t *testing.T, text string, f func(*document.Cursor) error) string {
	t.Helper()
	d := document.New(text, "lilypond")
	c := document.NewCursor(d, 0, document.NoEnd)
	require.NoError(t, f(c))
	return d.Text()
}

func TestBreakIndenters(t *testing.T) {
	t.Parallel()

	t.Run("breaks around unclosed braces", func(t *testing.T) {
		t.Parallel()
		got := apply(t, "{ c d\ne }", reformat.BreakIndenters)
		assert.Equal(t, "{\n c d\ne \n}", got)
	})

	t.Run("keeps braces closed on the same line", func(t *testing.T) {
		t.Parallel()
		got := apply(t, "{ c4 d4 }\n<< { c } d >>", reformat.BreakIndenters)
		assert.Equal(t, "{ c4 d4 }\n<< { c } d >>", got)
	})

	t.Run("lone brace stays put", func(t *testing.T) {
		t.Parallel()
		got := apply(t, "{\nc d\n}", reformat.BreakIndenters)
		assert.Equal(t, "{\nc d\n}", got)
	})
}

func TestMoveLongComments(t *testing.T) {
	t.Parallel()
	got := apply(t, "c d %% foo\n  %%% bar\n", reformat.MoveLongComments)
	assert.Equal(t, "c d %% foo\n%%% bar\n", got)
}

func TestRemoveTrailingWhitespace(t *testing.T) {
	t.Parallel()

	got := apply(t, "a = \"x \"  \nb  ", reformat.RemoveTrailingWhitespace)
	assert.Equal(t, "a = \"x \"\nb", got)

	t.Run("inside strings is kept", func(t *testing.T) {
		t.Parallel()
		got := apply(t, "\"a \nb\"", reformat.RemoveTrailingWhitespace)
		assert.Equal(t, "\"a \nb\"", got)
	})
}

func TestReformat(t *testing.T) {
	t.Parallel()
	d := document.New("\\new Staff { c d\ne }\n", "lilypond")
	c := document.NewCursor(d, 0, document.NoEnd)
	require.NoError(t, reformat.Reformat(c, indent.New()))
	assert.Equal(t, "\\new Staff {\n  c d\n  e\n}\n", d.Text())
}
