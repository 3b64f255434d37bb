package rhythm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/rhythm"
)

// edit applies op to the whole of text and returns the result.
func edit(t *testing.T, text string, op func(*document.Cursor) error) string {
	t.Helper()
	d := document.New(text, "lilypond")
	c := document.NewCursor(d, 0, document.NoEnd)
	require.NoError(t, op(c))
	return d.Text()
}

func TestItems(t *testing.T) {
	t.Parallel()

	d := document.New("{ c4~ d }", "lilypond")
	c := document.NewCursor(d, 0, document.NoEnd)

	var items []rhythm.Item
	for it := range rhythm.Items(c, rhythm.Options{Partial: document.Inside}) {
		items = append(items, it)
	}
	require.Len(t, items, 2)

	first := items[0]
	require.Len(t, first.Tokens, 2)
	assert.Equal(t, "c", first.Tokens[0].Text)
	assert.Equal(t, "~", first.Tokens[1].Text)
	require.Len(t, first.DurTokens, 1)
	assert.Equal(t, "4", first.DurTokens[0].Text)
	assert.Equal(t, 3, first.InsertPos)
	assert.Equal(t, 2, first.Pos)
	assert.Equal(t, 5, first.End)
	assert.True(t, first.MayRemove)

	second := items[1]
	assert.Equal(t, "d", second.Tokens[0].Text)
	assert.Empty(t, second.DurTokens)
	assert.Equal(t, 7, second.InsertPos)
}

func TestDoubleHalve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{ c2 d4 e4 f g }",
		edit(t, "{ c4 d8 e8 f g }", rhythm.Double))
	assert.Equal(t, `{ c\breve d1024 }`,
		edit(t, "{ c1 d2048 }", rhythm.Double))
	assert.Equal(t, "{ c8 d16 }",
		edit(t, "{ c4 d8 }", rhythm.Halve))
	// the shortest length cannot be halved further
	assert.Equal(t, "{ c2048 }",
		edit(t, "{ c2048 }", rhythm.Halve))
}

func TestDotUndot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{ c4. d8.. }", edit(t, "{ c4 d8. }", rhythm.Dot))
	assert.Equal(t, "{ c4 d8. }", edit(t, "{ c4. d8.. }", rhythm.Undot))
}

func TestRemoveScaling(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{ c4 d8 }",
		edit(t, "{ c4*2/3 d8*2 }", rhythm.RemoveScaling))
	assert.Equal(t, "{ c4 d8*2 }",
		edit(t, "{ c4*2/3 d8*2 }", rhythm.RemoveFractionScaling))
}

func TestRemove(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{ c d }", edit(t, "{ c4 d8. }", rhythm.Remove))
	// \skip needs its duration
	assert.Equal(t, `{ c \skip 4 d }`,
		edit(t, `{ c4 \skip 4 d8 }`, rhythm.Remove))
}

func TestImplicit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{ c4 d8 e f g4 }",
		edit(t, "{ c4 d8 e8 f8 g4 }", rhythm.Implicit))
}

func TestImplicitPerLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{ c4 d\ne4 f }",
		edit(t, "{ c4 d4\ne4 f4 }", rhythm.ImplicitPerLine))
}

func TestExplicit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{ c4 d4 e4 }", edit(t, "{ c4 d e }", rhythm.Explicit))
}

func TestOverwrite(t *testing.T) {
	t.Parallel()

	out := edit(t, "{ c d e f }", func(c *document.Cursor) error {
		return rhythm.Overwrite(c, []string{"4", "8", "8", "16"})
	})
	assert.Equal(t, "{ c4 d8 e f16 }", out)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("durations and ties", func(t *testing.T) {
		t.Parallel()
		d := document.New("{ c4~ d8. e }", "lilypond")
		c := document.NewCursor(d, 0, document.NoEnd)
		assert.Equal(t, []string{"4~", "8.", ""}, rhythm.Extract(c))
	})

	t.Run("first duration found before the range", func(t *testing.T) {
		t.Parallel()
		d := document.New("{ c4 d e }", "lilypond")
		c := document.NewCursor(d, 5, document.NoEnd)
		assert.Equal(t, []string{"4", ""}, rhythm.Extract(c))
	})

	t.Run("fallback quarter note", func(t *testing.T) {
		t.Parallel()
		d := document.New("{ c d }", "lilypond")
		c := document.NewCursor(d, 0, document.NoEnd)
		assert.Equal(t, []string{"4", ""}, rhythm.Extract(c))
	})
}

func TestPrecedingDuration(t *testing.T) {
	t.Parallel()

	d := document.New("{ c4 d }", "lilypond")
	c := document.NewCursor(d, 5, document.NoEnd)

	prev := rhythm.PrecedingDuration(c)
	require.Len(t, prev, 1)
	assert.Equal(t, "4", prev[0].Text)
}

func TestPitchesInsideChordsAndCommands(t *testing.T) {
	t.Parallel()

	// the chord notes carry no duration of their own
	assert.Equal(t, "{ <c e g>2 d4 }",
		edit(t, "{ <c e g>4 d8 }", rhythm.Double))

	// the pitch argument of \relative is not music
	assert.Equal(t, `\relative c' { c2 }`,
		edit(t, `\relative c' { c4 }`, rhythm.Double))
}

func TestTupletFractionIsPreserved(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `\tuplet 3/2 { c d }`,
		edit(t, `\tuplet 3/2 { c8 d8 }`, rhythm.Remove))
}
