package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An edit that does not change the lexer state at the end of its line
// must not re-lex any of the following lines.
func TestRelexStopsWhenStateSettles(t *testing.T) {
	t.Parallel()

	d := New("c d e\nf g a\nb c d\ne f g", "lilypond")
	d.relexed = 0

	require.NoError(t, d.Replace(6, 7, "g"))
	assert.Equal(t, 1, d.relexed)
}

// Opening a block comment changes the state at the end of the edited
// line, so everything after it is re-lexed.
func TestRelexCascadesOnStateChange(t *testing.T) {
	t.Parallel()

	d := New("c d e\nf g a\nb c d\ne f g", "lilypond")
	d.relexed = 0

	require.NoError(t, d.Insert(0, "%{ "))
	assert.Equal(t, 4, d.relexed)
}

// Re-lexing resumes past untouched lines but continues as long as the
// state at the end of a line keeps changing.
func TestRelexResumesMidDocument(t *testing.T) {
	t.Parallel()

	d := New("c d e\nf g a\nb c d\ne f g", "lilypond")
	d.relexed = 0

	// open a comment on the third line: lines 2 and 3 change state
	require.NoError(t, d.Insert(12, "%{ "))
	assert.Equal(t, 2, d.relexed)

	d.relexed = 0

	// closing it restores the old end state of line 2, but line 3 was
	// lexed inside the comment and must be re-lexed once more
	require.NoError(t, d.Insert(15, " %}"))
	assert.Equal(t, 2, d.relexed)
}

// Text inserted across a line boundary creates new blocks; those must
// be lexed even when the end state of the edited line is unchanged.
func TestRelexInsertedLines(t *testing.T) {
	t.Parallel()

	d := New("{ c d\ne f }", "lilypond")
	require.NoError(t, d.Insert(1, "\ng a"))
	assert.Equal(t, "{\ng a c d\ne f }", d.Text())

	fresh := New(d.Text(), "lilypond")
	require.Equal(t, fresh.Len(), d.Len())
	for i := range d.Len() {
		assert.Equal(t, fresh.Tokens(fresh.Block(i)), d.Tokens(d.Block(i)), "line %d", i)
		assert.Equal(t, fresh.StateEnd(fresh.Block(i)).Parser(), d.StateEnd(d.Block(i)).Parser(), "line %d", i)
	}
}
