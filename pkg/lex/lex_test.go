package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/pkg/lex"
)

// lexLines feeds the lines through one state and returns the tokens
// per line.
func lexLines(mode string, lines ...string) [][]lex.Token {
	st := lex.NewState(mode)
	out := make([][]lex.Token, len(lines))
	for i, l := range lines {
		out[i] = st.Tokens(l)
	}
	return out
}

func kinds(tokens []lex.Token) []lex.Kind {
	ks := make([]lex.Kind, len(tokens))
	for i, t := range tokens {
		ks[i] = t.Kind
	}
	return ks
}

func texts(tokens []lex.Token) []string {
	ts := make([]string, len(tokens))
	for i, t := range tokens {
		ts[i] = t.Text
	}
	return ts
}

func TestTokensMusicExpression(t *testing.T) {
	t.Parallel()

	tokens := lexLines("lilypond", `\relative c' { c d e }`)[0]

	assert.Equal(t, []lex.Kind{
		lex.PitchCommand, lex.Space, lex.Note, lex.Octave, lex.Space,
		lex.SequentialStart, lex.Space,
		lex.Note, lex.Space, lex.Note, lex.Space, lex.Note, lex.Space,
		lex.SequentialEnd,
	}, kinds(tokens))
	assert.Equal(t, []string{
		`\relative`, " ", "c", "'", " ", "{", " ",
		"c", " ", "d", " ", "e", " ", "}",
	}, texts(tokens))

	// positions are contiguous within the line
	pos := 0
	for _, tok := range tokens {
		assert.Equal(t, pos, tok.Pos)
		pos = tok.End()
	}
}

func TestTokensDurations(t *testing.T) {
	t.Parallel()

	tokens := lexLines("lilypond", `{ c4. d8*2/3 }`)[0]

	assert.Equal(t, []lex.Kind{
		lex.SequentialStart, lex.Space, lex.Note, lex.Length, lex.Dot,
		lex.Space, lex.Note, lex.Length, lex.Scaling, lex.Space,
		lex.SequentialEnd,
	}, kinds(tokens))
	assert.Equal(t, "*2/3", tokens[8].Text)
}

func TestTokensBlockCommentAcrossLines(t *testing.T) {
	t.Parallel()

	lines := lexLines("lilypond",
		"music %{ comment",
		"still %} done",
	)

	assert.Equal(t, []lex.Kind{
		lex.Name, lex.Space, lex.BlockCommentStart,
		lex.BlockCommentSpace, lex.BlockCommentText,
	}, kinds(lines[0]))
	assert.Equal(t, []lex.Kind{
		lex.BlockCommentText, lex.BlockCommentSpace, lex.BlockCommentEnd,
		lex.Space, lex.Name,
	}, kinds(lines[1]))
	assert.Equal(t, "still", lines[1][0].Text)
}

func TestTokensStringAcrossLines(t *testing.T) {
	t.Parallel()

	st := lex.NewState("lilypond")
	line1 := st.Tokens(`"hello`)
	require.Equal(t, 2, st.Depth())

	line2 := st.Tokens(`world"`)
	assert.Equal(t, 1, st.Depth())

	assert.Equal(t, []lex.Kind{lex.StringQuotedStart, lex.StringText}, kinds(line1))
	assert.Equal(t, []lex.Kind{lex.StringText, lex.StringQuotedEnd}, kinds(line2))
	assert.Equal(t, "hello", line1[1].Text)
	assert.Equal(t, "world", line2[0].Text)
}

func TestTokensSchemeIsland(t *testing.T) {
	t.Parallel()

	st := lex.NewState("lilypond")
	tokens := st.Tokens(`#(display "hi")`)

	assert.Equal(t, []lex.Kind{
		lex.SchemeStart, lex.SchemeOpenParen, lex.SchemeWord, lex.Space,
		lex.SchemeStringStart, lex.SchemeStringText, lex.SchemeStringEnd,
		lex.SchemeCloseParen,
	}, kinds(tokens))

	// the closing paren also closes the scheme expression
	assert.Equal(t, 1, st.Depth())
	assert.Equal(t, "lilypond", st.Mode())
}

func TestTokensSchemeMode(t *testing.T) {
	t.Parallel()

	tokens := lexLines("scheme", "(define (f) 1)")[0]

	assert.Equal(t, []lex.Kind{
		lex.SchemeOpenParen, lex.SchemeKeyword, lex.Space,
		lex.SchemeOpenParen, lex.SchemeWord, lex.SchemeCloseParen,
		lex.Space, lex.SchemeNumber, lex.SchemeCloseParen,
	}, kinds(tokens))
	assert.Equal(t, "define", tokens[1].Text)
}

func TestTokensMarkup(t *testing.T) {
	t.Parallel()

	tokens := lexLines("lilypond", `\markup { hello }`)[0]

	assert.Equal(t, []lex.Kind{
		lex.Markup, lex.Space, lex.OpenBracketMarkup, lex.Space,
		lex.MarkupWord, lex.Space, lex.CloseBracketMarkup,
	}, kinds(tokens))
}

func TestTokensHTML(t *testing.T) {
	t.Parallel()

	t.Run("tag with attribute", func(t *testing.T) {
		t.Parallel()
		tokens := lexLines("html", `<p class="a">`)[0]
		assert.Equal(t, []lex.Kind{
			lex.HTMLTagStart, lex.Space, lex.HTMLAttrName, lex.HTMLEqualSign,
			lex.HTMLStringDQStart, lex.HTMLStringText, lex.HTMLStringDQEnd,
			lex.HTMLTagEnd,
		}, kinds(tokens))
	})

	t.Run("inline lilypond island", func(t *testing.T) {
		t.Parallel()
		tokens := lexLines("html", `<lilypond: c4 />`)[0]
		assert.Equal(t, []lex.Kind{
			lex.HTMLLilyPondInlineTag, lex.HTMLSemicolon, lex.Space,
			lex.Note, lex.Length, lex.Space, lex.HTMLLilyPondInlineTagEnd,
		}, kinds(tokens))
	})
}

func TestTokensTexinfo(t *testing.T) {
	t.Parallel()

	t.Run("keyword and text", func(t *testing.T) {
		t.Parallel()
		tokens := lexLines("texinfo", "@node Top")[0]
		assert.Equal(t, []lex.Kind{lex.TexinfoKeyword, lex.Unparsed}, kinds(tokens))
		assert.Equal(t, []string{"@node", " Top"}, texts(tokens))
	})

	t.Run("lilypond environment", func(t *testing.T) {
		t.Parallel()
		lines := lexLines("texinfo",
			"@lilypond[fragment]",
			"c d",
			"@end lilypond",
		)
		assert.Equal(t, []lex.Kind{
			lex.TexinfoLilyPondEnvStart, lex.TexinfoLilyPondAttrStart,
			lex.TexinfoAttrText, lex.TexinfoLilyPondAttrEnd,
		}, kinds(lines[0]))
		assert.Equal(t, []lex.Kind{lex.Name, lex.Space, lex.Name}, kinds(lines[1]))
		assert.Equal(t, []lex.Kind{lex.TexinfoLilyPondEnvEnd}, kinds(lines[2]))
	})
}

func TestFreezeThaw(t *testing.T) {
	t.Parallel()

	st := lex.NewState("lilypond")
	st.Tokens("music %{ comment")

	frozen := st.Freeze()
	thawed := frozen.Thaw()

	assert.Equal(t, st.Depth(), thawed.Depth())
	assert.Equal(t, frozen, thawed.Freeze())
	assert.Equal(t, "lilypond", frozen.Mode())
	assert.Equal(t, 2, frozen.Depth())

	// the thawed state continues exactly like the original
	assert.Equal(t, st.Tokens("still %} done"), thawed.Tokens("still %} done"))
}

func TestFrozenEquality(t *testing.T) {
	t.Parallel()

	a := lex.NewState("lilypond")
	b := lex.NewState("lilypond")
	for _, line := range []string{`\score {`, `  \new Staff {`} {
		a.Tokens(line)
		b.Tokens(line)
	}
	assert.Equal(t, a.Freeze(), b.Freeze())

	b.Tokens("}")
	assert.NotEqual(t, a.Freeze(), b.Freeze())
}

func TestFollowReplaysStateTransitions(t *testing.T) {
	t.Parallel()

	lines := []string{
		`\relative c' {`,
		`  c4. d8 "tied`,
		`  string" e2 #(foo) }`,
	}

	lexed := lex.NewState("lilypond")
	followed := lex.NewState("lilypond")
	for _, line := range lines {
		for _, tok := range lexed.Tokens(line) {
			followed.Follow(tok)
		}
		assert.Equal(t, lexed.Freeze(), followed.Freeze(), "after %q", line)
	}
}

func TestModeTracksEmbeddedLanguage(t *testing.T) {
	t.Parallel()

	st := lex.NewState("html")
	assert.Equal(t, "html", st.Mode())

	st.Tokens("<lilypond>")
	assert.Equal(t, "lilypond", st.Mode())

	st.Tokens("c d e")
	st.Tokens("</lilypond>")
	assert.Equal(t, "html", st.Mode())
}

func TestKnownMode(t *testing.T) {
	t.Parallel()

	for _, mode := range lex.Modes() {
		assert.True(t, lex.KnownMode(mode), mode)
	}
	assert.False(t, lex.KnownMode(""))
	assert.False(t, lex.KnownMode("markdown"))
}

func TestTokenHelpers(t *testing.T) {
	t.Parallel()

	tokens := lexLines("lilypond", "{ c ( d ) }")[0]
	require.Len(t, tokens, 11)

	open := tokens[4]
	assert.Equal(t, lex.SlurStart, open.Kind)
	assert.True(t, open.Is(lex.ClassMatchStart))
	assert.Equal(t, "slur", open.MatchName())

	closing := tokens[8]
	assert.Equal(t, lex.SlurEnd, closing.Kind)
	assert.True(t, closing.Is(lex.ClassMatchEnd))
	assert.Equal(t, "slur", closing.MatchName())

	assert.Equal(t, 4, open.Pos)
	assert.Equal(t, 5, open.End())
}

// A line ending while a fallthrough context is active, like the
// duration context after "c4", must lex cleanly and leave the state
// usable for the next line.
func TestTokensLineEndsInDuration(t *testing.T) {
	t.Parallel()

	lines := lexLines("lilypond", "{ c4", "d4 }")

	assert.Equal(t, []lex.Kind{
		lex.SequentialStart, lex.Space, lex.Note, lex.Length,
	}, kinds(lines[0]))
	assert.Equal(t, []lex.Kind{
		lex.Note, lex.Length, lex.Space, lex.SequentialEnd,
	}, kinds(lines[1]))
}

func TestTokensRepeat(t *testing.T) {
	t.Parallel()

	tokens := lexLines("lilypond", `{ \repeat volta 2 c4 }`)[0]
	assert.Equal(t, []lex.Kind{
		lex.SequentialStart, lex.Space, lex.Repeat, lex.Space,
		lex.RepeatSpecifier, lex.Space, lex.RepeatCount, lex.Space,
		lex.Note, lex.Length, lex.Space, lex.SequentialEnd,
	}, kinds(tokens))

	tokens = lexLines("lilypond", `{ \repeat "unfold" 2 c }`)[0]
	require.Equal(t, lex.RepeatStringSpecifier, tokens[4].Kind)
	assert.Equal(t, `"unfold"`, tokens[4].Text)
	assert.True(t, tokens[4].Is(lex.ClassString))

	// the count closes the repeat context
	st := lex.NewState("lilypond")
	st.Tokens(`{ \repeat volta 2`)
	assert.Equal(t, "music", st.Parser())
}
