package document_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/lex"
)

func TestNewDocument(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		d := document.New("", "lilypond")
		assert.Equal(t, 1, d.Len())
		assert.Equal(t, 0, d.Size())
		assert.Empty(t, d.Tokens(d.Block(0)))
		assert.False(t, d.Modified)
	})

	t.Run("lines and positions", func(t *testing.T) {
		t.Parallel()
		d := document.New("c d\ne f\ng", "lilypond")
		require.Equal(t, 3, d.Len())
		assert.Equal(t, "c d", d.Block(0).Text())
		assert.Equal(t, "e f", d.Block(1).Text())
		assert.Equal(t, 0, d.Block(0).Position())
		assert.Equal(t, 4, d.Block(1).Position())
		assert.Equal(t, 8, d.Block(2).Position())
		assert.Equal(t, 9, d.Size())
		assert.Equal(t, "c d\ne f\ng", d.Text())
	})

	t.Run("carriage returns are stripped", func(t *testing.T) {
		t.Parallel()
		d := document.New("c d\r\ne f\r\n", "lilypond")
		assert.Equal(t, "c d\ne f\n", d.Text())
	})

	t.Run("unknown mode means automatic", func(t *testing.T) {
		t.Parallel()
		d := document.New(`\relative { c }`, "nosuchmode")
		assert.Equal(t, "", d.Mode())
		assert.Equal(t, "lilypond", d.EffectiveMode())
	})
}

func TestBlockAt(t *testing.T) {
	t.Parallel()

	d := document.New("c d\ne f\ng", "lilypond")

	tests := []struct {
		pos   int
		index int
	}{
		{0, 0},
		{3, 0},  // the newline belongs to the line it ends
		{4, 1},
		{7, 1},
		{8, 2},
		{9, 2}, // end of document
	}
	for _, tt := range tests {
		b := d.BlockAt(tt.pos)
		require.NotNil(t, b, "position %d", tt.pos)
		assert.Equal(t, tt.index, b.Index(), "position %d", tt.pos)
	}

	assert.Nil(t, d.BlockAt(-1))
	assert.Nil(t, d.BlockAt(10))
}

func TestDocumentEdits(t *testing.T) {
	t.Parallel()

	t.Run("replace within a line", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello world", "lilypond")
		require.NoError(t, d.Replace(0, 5, "goodbye"))
		assert.Equal(t, "goodbye world", d.Text())
		assert.True(t, d.Modified)
	})

	t.Run("multi line insert", func(t *testing.T) {
		t.Parallel()
		d := document.New("ab", "lilypond")
		require.NoError(t, d.Insert(1, "x\ny"))
		assert.Equal(t, "ax\nyb", d.Text())
		require.Equal(t, 2, d.Len())
		assert.Equal(t, "ax", d.Block(0).Text())
		assert.Equal(t, "yb", d.Block(1).Text())
		assert.Equal(t, 3, d.Block(1).Position())
	})

	t.Run("delete across lines", func(t *testing.T) {
		t.Parallel()
		d := document.New("c d\ne f\ng", "lilypond")
		require.NoError(t, d.Delete(2, 6))
		assert.Equal(t, "c f\ng", d.Text())
		assert.Equal(t, 2, d.Len())
	})

	t.Run("delete to end of document", func(t *testing.T) {
		t.Parallel()
		d := document.New("c d\ne f\ng", "lilypond")
		require.NoError(t, d.Replace(3, document.NoEnd, ""))
		assert.Equal(t, "c d", d.Text())
		assert.Equal(t, 1, d.Len())
	})

	t.Run("swapped offsets", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello world", "lilypond")
		require.NoError(t, d.Replace(11, 6, "earth"))
		assert.Equal(t, "hello earth", d.Text())
	})

	t.Run("multiple edits in one transaction", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello world", "lilypond")
		tx := d.Begin()
		tx.Replace(0, 5, "goodbye")
		tx.Replace(6, 11, "earth")
		require.NoError(t, tx.Commit())
		assert.Equal(t, "goodbye earth", d.Text())
	})

	t.Run("out of range edits fail", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello", "lilypond")

		err := d.Replace(10, document.NoEnd, "x")
		require.ErrorIs(t, err, document.ErrEditOutOfRange)

		err = d.Replace(-3, 2, "x")
		require.ErrorIs(t, err, document.ErrEditOutOfRange)

		err = d.Delete(2, 99)
		require.ErrorIs(t, err, document.ErrEditOutOfRange)

		assert.Equal(t, "hello", d.Text())
	})

	t.Run("overlapping edits fail", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello world", "lilypond")
		tx := d.Begin()
		tx.Replace(0, 5, "x")
		tx.Replace(3, 8, "y")
		err := tx.Commit()
		require.ErrorIs(t, err, document.ErrOverlappingEdits)
		assert.Equal(t, "hello world", d.Text())
	})

	t.Run("nested transactions apply once", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello", "lilypond")
		outer := d.Begin()
		outer.Insert(0, "say ")
		inner := d.Begin()
		inner.Insert(5, " there")
		require.NoError(t, inner.Commit())
		assert.Equal(t, "hello", d.Text())
		require.NoError(t, outer.Commit())
		assert.Equal(t, "say hello there", d.Text())
	})

	t.Run("rollback discards edits", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello", "lilypond")
		tx := d.Begin()
		tx.Insert(0, "x")
		tx.Rollback()
		assert.Equal(t, "hello", d.Text())
		require.NoError(t, d.Insert(5, "!"))
		assert.Equal(t, "hello!", d.Text())
	})
}

func TestEditsUpdateTokens(t *testing.T) {
	t.Parallel()

	d := document.New("c d\ne f", "lilypond")
	require.NoError(t, d.Replace(0, 1, `\markup`))

	tokens := d.Tokens(d.Block(0))
	require.NotEmpty(t, tokens)
	assert.Equal(t, lex.Markup, tokens[0].Kind)
}

// Incremental re-lexing must produce exactly what lexing the changed
// text from scratch produces.
func TestIncrementalRelexMatchesFullRelex(t *testing.T) {
	t.Parallel()

	edits := []struct {
		name       string
		start, end int
		text       string
	}{
		{"neutral edit", 0, 1, "e"},
		{"open comment", 0, 0, "%{ "},
		{"insert in block comment", 10, 10, `"`},
		{"join lines", 4, 5, ""},
		{"split line", 2, 2, "\n"},
	}

	const text = "c \"d\ne\" %{ f\ng %} a"

	for _, tt := range edits {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := document.New(text, "lilypond")
			require.NoError(t, d.Replace(tt.start, tt.end, tt.text))

			fresh := document.New(d.Text(), "lilypond")
			require.Equal(t, fresh.Len(), d.Len())
			for i := 0; i < d.Len(); i++ {
				assert.Equal(t, fresh.Tokens(fresh.Block(i)), d.Tokens(d.Block(i)),
					"tokens of line %d", i)
				assert.Equal(t, fresh.StateEnd(fresh.Block(i)).Freeze(),
					d.StateEnd(d.Block(i)).Freeze(), "state after line %d", i)
			}
		})
	}
}

func TestEditRetriggersModeGuess(t *testing.T) {
	t.Parallel()

	d := document.New(`\relative { c }`, "")
	require.Equal(t, "lilypond", d.EffectiveMode())

	require.NoError(t, d.Replace(0, d.Size(), "<html>\n<body>"))
	assert.Equal(t, "html", d.EffectiveMode())

	tokens := d.Tokens(d.Block(0))
	require.NotEmpty(t, tokens)
	assert.Equal(t, lex.HTMLTagStart, tokens[0].Kind)
}

func TestSetMode(t *testing.T) {
	t.Parallel()

	d := document.New("(define x 1)", "")
	require.Equal(t, "scheme", d.EffectiveMode())

	d.SetMode("lilypond")
	assert.Equal(t, "lilypond", d.EffectiveMode())
	tokens := d.Tokens(d.Block(0))
	require.NotEmpty(t, tokens)
	assert.NotEqual(t, lex.SchemeOpenParen, tokens[0].Kind)

	d.SetMode("")
	assert.Equal(t, "scheme", d.EffectiveMode())
}

func TestCursorAdjustment(t *testing.T) {
	t.Parallel()

	t.Run("insert at cursor end moves end", func(t *testing.T) {
		t.Parallel()
		d := document.New("hi there, folks!", "lilypond")
		c := document.NewCursor(d, 8, 8)
		require.NoError(t, d.Insert(8, "new text"))
		assert.Equal(t, 8, c.Start)
		assert.Equal(t, 16, c.End)
	})

	t.Run("insert before cursor shifts it", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello world", "lilypond")
		c := document.NewCursor(d, 6, 11)
		require.NoError(t, d.Insert(0, "ab"))
		assert.Equal(t, 8, c.Start)
		assert.Equal(t, 13, c.End)
	})

	t.Run("deletion spanning cursor start", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello world!", "lilypond")
		c := document.NewCursor(d, 8, 12)
		require.NoError(t, d.Delete(6, 10))
		assert.Equal(t, 6, c.Start)
		assert.Equal(t, 8, c.End)
	})

	t.Run("released cursor is left alone", func(t *testing.T) {
		t.Parallel()
		d := document.New("hello world", "lilypond")
		c := document.NewCursor(d, 6, 11)
		c.Release()
		require.NoError(t, d.Insert(0, "ab"))
		assert.Equal(t, 6, c.Start)
		assert.Equal(t, 11, c.End)
	})
}

func TestCursorRanges(t *testing.T) {
	t.Parallel()

	d := document.New("c d\ne f\ng", "lilypond")

	t.Run("text and blocks", func(t *testing.T) {
		t.Parallel()
		c := document.NewCursor(d, 2, 6)
		assert.Equal(t, "d\ne ", c.Text())
		assert.Equal(t, "c ", c.TextBefore())
		assert.Equal(t, "f", c.TextAfter())
		assert.True(t, c.HasSelection())

		var indices []int
		for b := range c.Blocks() {
			indices = append(indices, b.Index())
		}
		assert.Equal(t, []int{0, 1}, indices)
	})

	t.Run("selection to end of document", func(t *testing.T) {
		t.Parallel()
		c := document.NewCursor(d, 4, document.NoEnd)
		assert.Equal(t, "e f\ng", c.Text())
		assert.Equal(t, 2, c.EndBlock().Index())
	})

	t.Run("strip", func(t *testing.T) {
		t.Parallel()
		c := document.NewCursor(d, 1, 4)
		assert.Equal(t, " d\n", c.Text())
		c.Strip("")
		assert.Equal(t, "d", c.Text())
		assert.Equal(t, 2, c.Start)
		assert.Equal(t, 3, c.End)
	})
}

// Cursors must keep spanning the same text across arbitrary edits that
// do not touch their range. Random documents, cursors and edits.
func TestCursorAdjustmentRandomized(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	letters := []rune("abcdefg {}\n")

	randText := func(n int) string {
		buf := make([]rune, n)
		for i := range buf {
			buf[i] = letters[rng.Intn(len(letters))]
		}
		return string(buf)
	}

	for range 500 {
		n := 5 + rng.Intn(60)
		text := randText(n)
		d := document.New(text, "lilypond")

		start := rng.Intn(n + 1)
		end := start + rng.Intn(n+1-start)
		c := document.NewCursor(d, start, end)
		marked := text[start:end]

		// an edit strictly before the cursor, strictly after it, or
		// none when the cursor leaves no room on either side
		var es, ee, delta int
		var repl string
		before := start >= 1 && (end >= n || rng.Intn(2) == 0)
		switch {
		case before:
			es = rng.Intn(start)
			ee = es + rng.Intn(start-es)
			repl = randText(rng.Intn(5))
			delta = len(repl) - (ee - es)
		case end < n:
			es = end + 1 + rng.Intn(n-end)
			ee = es + rng.Intn(n-es+1)
			repl = randText(rng.Intn(5))
		default:
			continue
		}
		require.NoError(t, d.Replace(es, ee, repl))

		assert.Equal(t, start+delta, c.Start)
		assert.Equal(t, end+delta, c.End)
		assert.Equal(t, marked, d.Text()[c.Start:c.End],
			"text %q cursor %d-%d edit %d-%d %q", text, start, end, es, ee, repl)
	}
}
