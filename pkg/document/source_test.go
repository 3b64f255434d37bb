package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/lex"
)

func sourceTexts(s *document.Source) []string {
	var texts []string
	for t := range s.Tokens() {
		texts = append(texts, t.Text)
	}
	return texts
}

func TestSourceFullRange(t *testing.T) {
	t.Parallel()

	d := document.New("c d\ne f", "lilypond")
	c := document.NewCursor(d, 0, document.NoEnd)

	s := document.NewSource(c, document.Inside, false)
	assert.Equal(t, []string{"c", " ", "d", "\n", "e", " ", "f"}, sourceTexts(s))
}

func TestSourcePartiality(t *testing.T) {
	t.Parallel()

	// the range starts at the boundary between "hello" and the space,
	// and ends inside "world"
	d := document.New("hello world", "lilypond")
	c := document.NewCursor(d, 5, 8)

	tests := []struct {
		name    string
		partial document.Partiality
		want    []string
	}{
		{"inside", document.Inside, []string{" "}},
		{"partial", document.Partial, []string{" ", "world"}},
		{"outside", document.Outside, []string{"hello", " ", "world"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := document.NewSource(c, tt.partial, false)
			assert.Equal(t, tt.want, sourceTexts(s))
		})
	}
}

func TestSourceStopsAtRangeEnd(t *testing.T) {
	t.Parallel()

	d := document.New("c d\ne f", "lilypond")
	c := document.NewCursor(d, 0, 3)

	s := document.NewSource(c, document.Inside, false)
	assert.Equal(t, []string{"c", " ", "d"}, sourceTexts(s))

	// a finished source stays finished
	_, ok := s.Next()
	assert.False(t, ok)
}

func TestSourcePositions(t *testing.T) {
	t.Parallel()

	d := document.New("c d\ne f", "lilypond")
	c := document.NewCursor(d, 4, document.NoEnd)

	t.Run("block positions", func(t *testing.T) {
		t.Parallel()
		s := document.NewSource(c, document.Inside, false)
		tok, ok := s.Next()
		require.True(t, ok)
		assert.Equal(t, 0, tok.Pos)
		assert.Equal(t, 4, s.Position(tok))
		assert.Equal(t, 1, s.Block().Index())
	})

	t.Run("document positions", func(t *testing.T) {
		t.Parallel()
		s := document.NewSource(c, document.Inside, true)
		tok, ok := s.Next()
		require.True(t, ok)
		assert.Equal(t, 4, tok.Pos)
		assert.Equal(t, 4, s.Position(tok))
	})
}

func TestSourcePushback(t *testing.T) {
	t.Parallel()

	d := document.New("c d", "lilypond")
	c := document.NewCursor(d, 0, document.NoEnd)
	s := document.NewSource(c, document.Inside, false)

	tok, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, "c", tok.Text)

	s.Pushback(true)
	tok, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, "c", tok.Text)
	assert.Equal(t, "c", s.Token().Text)

	tok, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, " ", tok.Text)
}

func TestStateSourceFollowsState(t *testing.T) {
	t.Parallel()

	d := document.New("{ c\nd } e", "lilypond")
	c := document.NewCursor(d, 0, document.NoEnd)
	s := document.NewStateSource(c, document.Inside, false)

	require.Equal(t, 1, s.State().Depth())

	tok, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, lex.SequentialStart, tok.Kind)
	assert.Equal(t, 2, s.State().Depth())

	var texts []string
	for t2 := range s.UntilParserEnd() {
		texts = append(texts, t2.Text)
	}
	assert.Equal(t, []string{" ", "c", "\n", "d", " ", "}"}, texts)
	assert.Equal(t, 1, s.State().Depth())

	// the source continues past the closed expression
	assert.Equal(t, []string{" ", "e"}, sourceTexts(s))
}

// The state follows tokens that the range boundaries filter out, so it
// is correct for the first token actually yielded.
func TestStateSourceFollowsSkippedTokens(t *testing.T) {
	t.Parallel()

	d := document.New(`{ c } d`, "lilypond")
	c := document.NewCursor(d, 5, document.NoEnd)
	s := document.NewStateSource(c, document.Inside, false)

	tok, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, " ", tok.Text)
	// the skipped "{ c }" opened and closed a music expression
	assert.Equal(t, 1, s.State().Depth())
	assert.Equal(t, "lilypond", s.State().Mode())
}

func TestSourceConsume(t *testing.T) {
	t.Parallel()

	d := document.New("ab cd", "lilypond")

	t.Run("token straddles position", func(t *testing.T) {
		t.Parallel()
		c := document.NewCursor(d, 0, document.NoEnd)
		s := document.NewSource(c, document.Inside, false)
		tok, ok := s.Consume(s.Tokens(), 4)
		require.True(t, ok)
		assert.Equal(t, "cd", tok.Text)
	})

	t.Run("token ends exactly at position", func(t *testing.T) {
		t.Parallel()
		c := document.NewCursor(d, 0, document.NoEnd)
		s := document.NewSource(c, document.Inside, false)
		_, ok := s.Consume(s.Tokens(), 3)
		assert.False(t, ok)

		// consumption stopped just past the space
		tok, ok := s.Next()
		require.True(t, ok)
		assert.Equal(t, "cd", tok.Text)
	})
}
