package lex

import "strings"

// LilyPond mode: matchers, rule tables and parser contexts. The rule
// order inside each table is significant; the first rule that matches
// at a position wins.

func matchPercentComment(text string, pos int) int {
	if text[pos] != '%' {
		return -1
	}
	return len(text)
}

func matchNote(text string, pos int) int {
	p := pos
	for p < len(text) && 'a' <= text[p] && text[p] <= 'x' {
		p++
	}
	if p == pos || (p < len(text) && isASCIILetter(text[p])) {
		return -1
	}
	return p
}

func matchRest(text string, pos int) int {
	if text[pos] != 'r' && text[pos] != 'R' {
		return -1
	}
	if pos+1 < len(text) && isASCIILetter(text[pos+1]) {
		return -1
	}
	return pos + 1
}

func matchSkip(text string, pos int) int {
	if text[pos] != 's' {
		return -1
	}
	if pos+1 < len(text) && isASCIILetter(text[pos+1]) {
		return -1
	}
	return pos + 1
}

func matchOctave(text string, pos int) int {
	c := text[pos]
	if c != ',' && c != '\'' {
		return -1
	}
	p := pos
	for p < len(text) && text[p] == c {
		p++
	}
	return p
}

func matchOctaveCheck(text string, pos int) int {
	if text[pos] != '=' {
		return -1
	}
	if end := matchOctave(text, pos+1); end > 0 {
		return end
	}
	return pos + 1
}

var durationNumbers = wordSet(
	"1", "2", "4", "8", "16", "32", "64", "128", "256", "512", "1024", "2048",
)

var durationNames = []string{"maxima", "longa", "breve"}

func matchLength(text string, pos int) int {
	if text[pos] == '\\' {
		for _, w := range durationNames {
			if end := litWordEnd("\\" + w)(text, pos); end > 0 {
				return end
			}
		}
		return -1
	}
	end := matchDigits(text, pos)
	if end < 0 || !durationNumbers[text[pos:end]] {
		return -1
	}
	return end
}

// matchScaling matches *N or *N/M, with optional blanks after the *.
func matchScaling(text string, pos int) int {
	if text[pos] != '*' {
		return -1
	}
	p := pos + 1
	for p < len(text) && (text[p] == ' ' || text[p] == '\t') {
		p++
	}
	end := matchDigits(text, p)
	if end < 0 {
		return -1
	}
	if end < len(text) && text[end] == '/' {
		if e2 := matchDigits(text, end+1); e2 > 0 {
			return e2
		}
	}
	return end
}

func matchFraction(text string, pos int) int {
	end := matchDigits(text, pos)
	if end < 0 || end >= len(text) || text[end] != '/' {
		return -1
	}
	return matchDigits(text, end+1)
}

// matchTremoloDuration matches a duration number of 8 or shorter.
func matchTremoloDuration(text string, pos int) int {
	if pos > 0 && isWordByte(text[pos-1]) {
		return -1
	}
	end := matchDigits(text, pos)
	if end < 0 || !durationNumbers[text[pos:end]] || end-pos < 2 && text[pos] != '8' {
		return -1
	}
	return end
}

func matchDynamic(text string, pos int) int {
	if text[pos] != '\\' {
		return -1
	}
	if pos+1 < len(text) {
		switch text[pos+1] {
		case '<', '!', '>':
			return pos + 2
		}
	}
	return backslashWord(dynamicWords)(text, pos)
}

func matchDirection(text string, pos int) int {
	switch text[pos] {
	case '-', '_', '^':
		return pos + 1
	}
	return -1
}

func matchScriptAbbreviation(text string, pos int) int {
	switch text[pos] {
	case '+', '|', '>', '.', '_', '^', '-':
		return pos + 1
	}
	return -1
}

func matchFingering(text string, pos int) int {
	if isDigit(text[pos]) {
		return pos + 1
	}
	return -1
}

func matchStringNumber(text string, pos int) int {
	if text[pos] != '\\' {
		return -1
	}
	return matchDigits(text, pos+1)
}

func matchIntegerValue(text string, pos int) int {
	return matchDigits(text, pos)
}

func matchDecimalValue(text string, pos int) int {
	p := pos
	if text[p] == '-' {
		p++
	}
	end := matchDigits(text, p)
	if end < 0 {
		return -1
	}
	if end < len(text) && text[end] == '.' {
		if e2 := matchDigits(text, end+1); e2 > 0 {
			return e2
		}
	}
	return end
}

// matchSchemeStart matches # or $ unless a brace follows; #{ is the
// Scheme-embedded-LilyPond opener and must not start Scheme mode.
func matchSchemeStart(text string, pos int) int {
	if text[pos] != '#' && text[pos] != '$' {
		return -1
	}
	if pos+1 < len(text) && (text[pos+1] == '{' || text[pos+1] == '}') {
		return -1
	}
	return pos + 1
}

func matchBackslashLetters(text string, pos int) int {
	if text[pos] != '\\' {
		return -1
	}
	p := pos + 1
	for p < len(text) && isASCIILetter(text[p]) {
		p++
	}
	if p == pos+1 {
		return -1
	}
	return p
}

// matchMarkupCommand matches a backslashed name with optional
// hyphenated parts, e.g. \center-column.
func matchMarkupCommand(text string, pos int) int {
	end := matchBackslashLetters(text, pos)
	if end < 0 {
		return -1
	}
	for end+1 < len(text) && text[end] == '-' && isASCIILetter(text[end+1]) {
		p := end + 1
		for p < len(text) && isASCIILetter(text[p]) {
			p++
		}
		end = p
	}
	return end
}

func matchName(text string, pos int) int {
	return run(isASCIILetter)(text, pos)
}

var chordModifiers = []string{"aug", "dim", "sus", "min", "maj", "m"}

func matchChordModifier(text string, pos int) int {
	if pos > 0 && 'a' <= text[pos-1] && text[pos-1] <= 'z' {
		return -1
	}
	for _, w := range chordModifiers {
		if strings.HasPrefix(text[pos:], w) {
			end := pos + len(w)
			if end < len(text) && 'a' <= text[end] && text[end] <= 'z' {
				continue
			}
			return end
		}
	}
	return -1
}

func matchChordSeparator(text string, pos int) int {
	switch text[pos] {
	case ':', '^':
		return pos + 1
	case '/':
		if pos+1 < len(text) && text[pos+1] == '+' {
			return pos + 2
		}
		return pos + 1
	}
	return -1
}

func matchChordStepNumber(text string, pos int) int {
	end := matchDigits(text, pos)
	if end < 0 {
		return -1
	}
	if end < len(text) && (text[end] == '-' || text[end] == '+') {
		return end + 1
	}
	return end
}

func matchStringQuoteEscape(text string, pos int) int {
	if text[pos] == '\\' && pos+1 < len(text) &&
		(text[pos+1] == '\\' || text[pos+1] == '"') {
		return pos + 2
	}
	return -1
}

func matchLyricText(text string, pos int) int {
	p := pos
	for p < len(text) {
		c := text[p]
		if c == '\\' || c == '~' || c == '"' || isDigit(c) || isSpaceByte(c) {
			break
		}
		p++
	}
	if p == pos {
		return -1
	}
	return p
}

func matchMarkupWord(text string, pos int) int {
	p := pos
loop:
	for p < len(text) {
		switch c := text[p]; {
		case c == '{', c == '}', c == '"', c == '\\', c == '#', c == '%', isSpaceByte(c):
			break loop
		default:
			p++
		}
	}
	if p == pos {
		return -1
	}
	return p
}

// matchErrorInChord matches constructs that are invalid inside < >:
// articulation shorthands, double angles, slur and beam commands,
// durations and scalings.
func matchErrorInChord(text string, pos int) int {
	c := text[pos]
	if (c == '-' || c == '_' || c == '^') && pos+1 < len(text) {
		switch text[pos+1] {
		case '_', '.', '>', '|', '+', '^', '-':
			return pos + 2
		}
	}
	if strings.HasPrefix(text[pos:], "<<") || strings.HasPrefix(text[pos:], ">>") {
		return pos + 2
	}
	if c == '\\' && pos+1 < len(text) {
		switch text[pos+1] {
		case '\\', ']', '[', '(', ')':
			return pos + 2
		}
	}
	if end := matchLength(text, pos); end > 0 {
		return end
	}
	return matchScaling(text, pos)
}

func backslashWords(words ...string) matchFn {
	ws := make([]string, len(words))
	for i, w := range words {
		ws[i] = "\\" + w
	}
	return func(text string, pos int) int {
		for _, w := range ws {
			if end := litWordEnd(w)(text, pos); end > 0 {
				return end
			}
		}
		return -1
	}
}

func matchBackslashedContextName(text string, pos int) int {
	if text[pos] != '\\' {
		return -1
	}
	end := wordInSet(contextNames)(text, pos+1)
	if end < 0 {
		return -1
	}
	return end
}

func matchRepeatSpecifier(text string, pos int) int {
	if pos > 0 && isWordByte(text[pos-1]) {
		return -1
	}
	p := pos
	for p < len(text) && isASCIILetter(text[p]) {
		p++
	}
	if p == pos || !repeatTypes[text[pos:p]] {
		return -1
	}
	return p
}

func matchRepeatStringSpecifier(text string, pos int) int {
	if text[pos] != '"' {
		return -1
	}
	for w := range repeatTypes {
		if end := lit(`"` + w + `"`)(text, pos); end > 0 {
			return end
		}
	}
	return -1
}

// Rule tables, composed the way the parser contexts share them.

func concat(lists ...[]rule) []rule {
	var out []rule
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

var lilySpaceRules = []rule{
	{kind: Space, match: matchSpace},
	{kind: BlockCommentStart, match: lit("%{")},
	{kind: LineComment, match: matchPercentComment},
}

var lilyBaseRules = concat(lilySpaceRules, []rule{
	{kind: SchemeStart, match: matchSchemeStart},
	{kind: StringQuotedStart, match: lit(`"`)},
})

var lilyCommandRules = []rule{
	{kind: Repeat, match: litNoLetter(`\repeat`)},
	{kind: PitchCommand, match: backslashWords("relative", "transpose", "transposition", "key", "octaveCheck")},
	{kind: Override, match: litWordEnd(`\override`)},
	{kind: Revert, match: litWordEnd(`\revert`)},
	{kind: Set, match: litWordEnd(`\set`)},
	{kind: Unset, match: litWordEnd(`\unset`)},
	{kind: New, match: litWordEnd(`\new`)},
	{kind: Context, match: litWordEnd(`\context`)},
	{kind: Change, match: litWordEnd(`\change`)},
	{kind: With, match: litWordEnd(`\with`)},
	{kind: Clef, match: litWordEnd(`\clef`)},
	{kind: ChordMode, match: backslashWords("chords", "chordmode")},
	{kind: DrumMode, match: backslashWords("drums", "drummode")},
	{kind: FigureMode, match: backslashWords("figures", "figuremode")},
	{kind: LyricMode, match: backslashWords("lyricmode", "lyrics", "addlyrics", "oldaddlyrics", "lyricsto")},
	{kind: NoteMode, match: backslashWords("notes", "notemode")},
	{kind: Markup, match: litNoLetter(`\markup`)},
	{kind: MarkupLines, match: litNoLetter(`\markuplines`)},
	{kind: MarkupList, match: litNoLetter(`\markuplist`)},
	{kind: Keyword, match: backslashWord(lilypondKeywords)},
	{kind: Command, match: backslashWord(lilypondMusicCommands)},
	{kind: UserCommand, match: matchBackslashLetters},
}

var lilyToplevelBaseRules = concat(lilyBaseRules, []rule{
	{kind: Fraction, match: matchFraction},
	{kind: SequentialStart, match: lit("{")},
	{kind: SimultaneousStart, match: lit("<<")},
}, lilyCommandRules)

var lilyMusicRules = concat(lilyBaseRules, []rule{
	{kind: Dynamic, match: matchDynamic},
	{kind: Skip, match: matchSkip},
	{kind: Rest, match: matchRest},
	{kind: Note, match: matchNote},
	{kind: Fraction, match: matchFraction},
	{kind: Length, match: matchLength},
	{kind: Octave, match: matchOctave},
	{kind: OctaveCheck, match: matchOctaveCheck},
	{kind: AccidentalCautionary, match: lit("?")},
	{kind: AccidentalReminder, match: lit("!")},
	{kind: PipeSymbol, match: lit("|")},
	{kind: VoiceSeparator, match: lit(`\\`)},
	{kind: SequentialStart, match: lit("{")},
	{kind: SequentialEnd, match: lit("}")},
	{kind: SimultaneousStart, match: lit("<<")},
	{kind: SimultaneousEnd, match: lit(">>")},
	{kind: ChordStart, match: lit("<")},
	{kind: ContextName, match: wordInSet(contextNames)},
	{kind: SlurStart, match: lit("(")},
	{kind: SlurEnd, match: lit(")")},
	{kind: PhrasingSlurStart, match: lit(`\(`)},
	{kind: PhrasingSlurEnd, match: lit(`\)`)},
	{kind: Tie, match: lit("~")},
	{kind: BeamStart, match: lit("[")},
	{kind: BeamEnd, match: lit("]")},
	{kind: LigatureStart, match: lit(`\[`)},
	{kind: LigatureEnd, match: lit(`\]`)},
	{kind: Direction, match: matchDirection},
	{kind: Articulation, match: backslashWord(articulationWords)},
	{kind: StringNumber, match: matchStringNumber},
	{kind: IntegerValue, match: matchIntegerValue},
}, lilyCommandRules)

var lilyMarkupCommandRules = []rule{
	{kind: Markup, match: litNoLetter(`\markup`)},
	{kind: MarkupLines, match: litNoLetter(`\markuplines`)},
	{kind: MarkupList, match: litNoLetter(`\markuplist`)},
}

// lilyMusicParserRules is what ParseMusic uses: the shared music rules
// plus the tremolo colon. Shared with the embedded-LilyPond parsers of
// the other modes.
var lilyMusicParserRules = concat(lilyMusicRules, []rule{
	{kind: TremoloColon, match: lit(":")},
})

// lilyGlobalRules lexes the toplevel of a LilyPond file. Shared with
// the embedded-LilyPond parsers of the other modes.
var lilyGlobalRules = concat([]rule{
	{kind: Book, match: litWordEnd(`\book`)},
	{kind: BookPart, match: litWordEnd(`\bookpart`)},
	{kind: Score, match: litWordEnd(`\score`)},
	{kind: Markup, match: litNoLetter(`\markup`)},
	{kind: MarkupLines, match: litNoLetter(`\markuplines`)},
	{kind: MarkupList, match: litNoLetter(`\markuplist`)},
	{kind: Paper, match: litWordEnd(`\paper`)},
	{kind: Header, match: litWordEnd(`\header`)},
	{kind: Layout, match: litWordEnd(`\layout`)},
}, lilyToplevelBaseRules, []rule{
	{kind: Name, match: matchName},
	{kind: EqualSign, match: lit("=")},
})

func init() {
	register(pLilyGlobal, &parserSpec{
		name: "lilypond", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules:       lilyGlobalRules,
	})

	register(pLilyScore, &parserSpec{
		name: "score", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: CloseBracket, match: lit("}")},
			{kind: Header, match: litWordEnd(`\header`)},
			{kind: Layout, match: litWordEnd(`\layout`)},
			{kind: Midi, match: litWordEnd(`\midi`)},
			{kind: With, match: litWordEnd(`\with`)},
		}, lilyToplevelBaseRules),
	})

	register(pLilyBook, &parserSpec{
		name: "book", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: CloseBracket, match: lit("}")},
		}, lilyMarkupCommandRules, []rule{
			{kind: BookPart, match: litWordEnd(`\bookpart`)},
			{kind: Score, match: litWordEnd(`\score`)},
			{kind: Paper, match: litWordEnd(`\paper`)},
			{kind: Header, match: litWordEnd(`\header`)},
			{kind: Layout, match: litWordEnd(`\layout`)},
		}, lilyToplevelBaseRules),
	})

	register(pLilyBookPart, &parserSpec{
		name: "bookpart", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: CloseBracket, match: lit("}")},
		}, lilyMarkupCommandRules, []rule{
			{kind: Score, match: litWordEnd(`\score`)},
			{kind: Paper, match: litWordEnd(`\paper`)},
			{kind: Header, match: litWordEnd(`\header`)},
			{kind: Layout, match: litWordEnd(`\layout`)},
		}, lilyToplevelBaseRules),
	})

	register(pLilyPaper, &parserSpec{
		name: "paper", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat(lilyBaseRules, []rule{
			{kind: CloseBracket, match: lit("}")},
		}, lilyMarkupCommandRules, []rule{
			{kind: PaperVariable, match: literals(paperVariables)},
			{kind: EqualSign, match: lit("=")},
			{kind: DecimalValue, match: matchDecimalValue},
			{kind: Unit, match: backslashWords("mm", "cm", "in", "pt")},
		}),
	})

	register(pLilyHeader, &parserSpec{
		name: "header", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: CloseBracket, match: lit("}")},
		}, lilyMarkupCommandRules, []rule{
			{kind: HeaderVariable, match: wordInSet(headerVariables)},
			{kind: EqualSign, match: lit("=")},
		}, lilyToplevelBaseRules),
	})

	layoutRules := concat(lilyBaseRules, []rule{
		{kind: CloseBracket, match: lit("}")},
		{kind: LayoutContext, match: litWordEnd(`\context`)},
		{kind: LayoutVariable, match: literals(layoutVariables)},
		{kind: EqualSign, match: lit("=")},
		{kind: DecimalValue, match: matchDecimalValue},
		{kind: Unit, match: backslashWords("mm", "cm", "in", "pt")},
	})
	register(pLilyLayout, &parserSpec{
		name: "layout", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules:       layoutRules,
	})
	register(pLilyMidi, &parserSpec{
		name: "midi", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules:       layoutRules,
	})

	register(pLilyWith, &parserSpec{
		name: "with", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: CloseBracket, match: lit("}")},
			{kind: EqualSign, match: lit("=")},
		}, lilyToplevelBaseRules),
	})

	register(pLilyContext, &parserSpec{
		name: "layoutcontext", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: CloseBracket, match: lit("}")},
			{kind: ContextName, match: matchBackslashedContextName},
			{kind: EqualSign, match: lit("=")},
		}, lilyToplevelBaseRules),
	})

	register(pLilyMusic, &parserSpec{
		name: "music", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules:       lilyMusicParserRules,
	})

	register(pLilyChord, &parserSpec{
		name: "chord", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: ErrorInChord, match: matchErrorInChord},
			{kind: ChordEnd, match: lit(">")},
		}, lilyMusicRules),
	})

	register(pLilyString, &parserSpec{
		name:        "string",
		defaultKind: StringText, hasDefault: true,
		rules: []rule{
			{kind: StringQuotedEnd, match: lit(`"`)},
			{kind: StringQuoteEscape, match: matchStringQuoteEscape},
		},
	})

	register(pLilyBlockComment, &parserSpec{
		name:        "blockcomment",
		defaultKind: BlockCommentText, hasDefault: true,
		rules: []rule{
			{kind: BlockCommentSpace, match: matchSpace},
			{kind: BlockCommentEnd, match: lit("%}")},
		},
	})

	register(pLilyMarkup, &parserSpec{
		name: "markup", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: MarkupScore, match: litWordEnd(`\score`)},
			{kind: MarkupCommand, match: matchMarkupCommand},
			{kind: OpenBracketMarkup, match: lit("{")},
			{kind: CloseBracketMarkup, match: lit("}")},
			{kind: MarkupWord, match: matchMarkupWord},
		}, lilyBaseRules),
	})

	register(pLilyRepeat, &parserSpec{
		name:     "repeat",
		fallthru: true,
		rules: concat(lilySpaceRules, []rule{
			{kind: RepeatSpecifier, match: matchRepeatSpecifier},
			{kind: RepeatStringSpecifier, match: matchRepeatStringSpecifier},
			{kind: RepeatCount, match: matchDigits},
		}),
	})

	register(pLilyDuration, &parserSpec{
		name:     "duration",
		fallthru: true,
		onFallthru: func(st *State) {
			st.replace(pLilyDurationScaling, 0)
		},
		rules: concat(lilySpaceRules, []rule{
			{kind: Dot, match: lit(".")},
		}),
	})
	register(pLilyDurationScaling, &parserSpec{
		name:     "durationscaling",
		fallthru: true,
		rules: concat(lilySpaceRules, []rule{
			{kind: Scaling, match: matchScaling},
		}),
	})

	register(pLilyOverride, &parserSpec{
		name: "override", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: ContextName, match: wordInSet(contextNames)},
			{kind: DotSetOverride, match: lit(".")},
			{kind: EqualSignSetOverride, match: lit("=")},
			{kind: Name, match: matchName},
		}, lilyBaseRules),
	})
	register(pLilySet, &parserSpec{
		name: "set", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: ContextName, match: wordInSet(contextNames)},
			{kind: DotSetOverride, match: lit(".")},
			{kind: EqualSignSetOverride, match: lit("=")},
			{kind: Name, match: matchName},
		}, lilyBaseRules),
	})

	register(pLilyRevert, &parserSpec{
		name:     "revert",
		fallthru: true,
		rules: concat(lilySpaceRules, []rule{
			{kind: ContextName, match: wordInSet(contextNames)},
			{kind: DotSetOverride, match: lit(".")},
			{kind: Name, match: matchName},
			{kind: SchemeStart, match: matchSchemeStart},
		}),
	})

	register(pLilyUnset, &parserSpec{
		name:     "unset",
		fallthru: true,
		onToken: func(st *State, t Token) {
			if t.Kind == Name && t.Text != "" && t.Text[0] >= 'a' && t.Text[0] <= 'z' {
				st.Leave()
			}
		},
		rules: concat(lilySpaceRules, []rule{
			{kind: ContextName, match: wordInSet(contextNames)},
			{kind: DotSetOverride, match: lit(".")},
			{kind: Name, match: matchName},
		}),
	})

	register(pLilyTranslator, &parserSpec{
		name:     "translator",
		fallthru: true,
		onToken: func(st *State, t Token) {
			if t.Kind == Name || t.Kind == ContextName {
				st.replace(pLilyExpectTranslatorID, 0)
			}
		},
		rules: concat(lilySpaceRules, []rule{
			{kind: ContextName, match: wordInSet(contextNames)},
			{kind: Name, match: matchName},
		}),
	})
	register(pLilyExpectTranslatorID, &parserSpec{
		name:     "expecttranslatorid",
		fallthru: true,
		onToken: func(st *State, t Token) {
			if t.Text == "=" {
				st.replace(pLilyTranslatorID, 1)
			}
		},
		rules: concat(lilySpaceRules, []rule{
			{kind: EqualSign, match: lit("=")},
		}),
	})
	register(pLilyTranslatorID, &parserSpec{
		name:     "translatorid",
		argcount: 1,
		fallthru: true,
		onToken: func(st *State, t Token) {
			if t.Kind == Name {
				st.Leave()
			}
		},
		rules: concat(lilySpaceRules, []rule{
			{kind: Name, match: matchName},
			{kind: StringQuotedStart, match: lit(`"`)},
		}),
	})

	register(pLilyClef, &parserSpec{
		name:     "clef",
		argcount: 1,
		fallthru: true,
		rules: concat(lilySpaceRules, []rule{
			{kind: ClefSpecifier, match: literals(plainClefs)},
			{kind: StringQuotedStart, match: lit(`"`)},
		}),
	})

	register(pLilyScriptOrFingering, &parserSpec{
		name:     "script",
		argcount: 1,
		fallthru: true,
		rules: concat(lilySpaceRules, []rule{
			{kind: ScriptAbbreviation, match: matchScriptAbbreviation},
			{kind: Fingering, match: matchFingering},
		}),
	})

	register(pLilyTremolo, &parserSpec{
		name:     "tremolo",
		fallthru: true,
		rules: []rule{
			{kind: TremoloDuration, match: matchTremoloDuration},
		},
	})

	register(pLilyPitchCommand, &parserSpec{
		name:     "pitchcommand",
		argcount: 1,
		fallthru: true,
		onToken: func(st *State, t Token) {
			if t.Kind == Note {
				st.top().argcount--
			} else if t.Is(ClassSpace) && st.top().argcount <= 0 {
				st.Leave()
			}
		},
		rules: concat(lilySpaceRules, []rule{
			{kind: Note, match: matchNote},
			{kind: Octave, match: matchOctave},
		}),
	})

	register(pLilyChordItems, &parserSpec{
		name:     "chorditems",
		fallthru: true,
		rules: []rule{
			{kind: ChordSeparator, match: matchChordSeparator},
			{kind: ChordModifier, match: matchChordModifier},
			{kind: ChordStepNumber, match: matchChordStepNumber},
			{kind: ChordDot, match: lit(".")},
			{kind: Note, match: matchNote},
		},
	})

	expectBracket := func(id parserID, name string, target parserID) {
		register(id, &parserSpec{
			name: name, mode: "lilypond",
			defaultKind: Error, hasDefault: true,
			fallthru: true,
			onToken: func(st *State, t Token) {
				if t.Kind == OpenBracket {
					st.replace(target, parserTable[target].argcount)
				}
			},
			rules: concat(lilySpaceRules, []rule{
				{kind: OpenBracket, match: lit("{")},
			}),
		})
	}
	expectBracket(pLilyExpectScore, "expectscore", pLilyScore)
	expectBracket(pLilyExpectBook, "expectbook", pLilyBook)
	expectBracket(pLilyExpectBookPart, "expectbookpart", pLilyBookPart)
	expectBracket(pLilyExpectPaper, "expectpaper", pLilyPaper)
	expectBracket(pLilyExpectHeader, "expectheader", pLilyHeader)
	expectBracket(pLilyExpectLayout, "expectlayout", pLilyLayout)
	expectBracket(pLilyExpectMidi, "expectmidi", pLilyMidi)
	expectBracket(pLilyExpectWith, "expectwith", pLilyWith)
	expectBracket(pLilyExpectContext, "expectcontext", pLilyContext)

	expectMode := func(id parserID, name string, target parserID, extra ...rule) {
		register(id, &parserSpec{
			name:     name,
			fallthru: true,
			onToken: func(st *State, t Token) {
				if t.Kind == OpenBracket || t.Kind == OpenSimultaneous {
					st.replace(target, 0)
				}
			},
			rules: concat(lilySpaceRules, []rule{
				{kind: OpenBracket, match: lit("{")},
				{kind: OpenSimultaneous, match: lit("<<")},
			}, extra),
		})
	}
	expectMode(pLilyExpectLyricMode, "expectlyricmode", pLilyLyricMode,
		rule{kind: SchemeStart, match: matchSchemeStart},
		rule{kind: StringQuotedStart, match: lit(`"`)},
		rule{kind: Name, match: matchName},
	)
	expectMode(pLilyExpectChordMode, "expectchordmode", pLilyChordMode)
	expectMode(pLilyExpectNoteMode, "expectnotemode", pLilyNoteMode)
	expectMode(pLilyExpectDrumMode, "expectdrummode", pLilyDrumMode)
	expectMode(pLilyExpectFigureMode, "expectfiguremode", pLilyFigureMode)

	register(pLilyLyricMode, &parserSpec{
		name: "lyricmode", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		onToken: func(st *State, t Token) {
			if t.Kind == OpenBracket || t.Kind == OpenSimultaneous {
				st.enter(pLilyLyricMode, 0)
			}
		},
		rules: concat(lilyBaseRules, []rule{
			{kind: CloseBracket, match: lit("}")},
			{kind: CloseSimultaneous, match: lit(">>")},
			{kind: OpenBracket, match: lit("{")},
			{kind: OpenSimultaneous, match: lit("<<")},
			{kind: PipeSymbol, match: lit("|")},
			{kind: LyricHyphen, match: lit("--")},
			{kind: LyricExtender, match: lit("__")},
			{kind: LyricSkip, match: lit("_")},
			{kind: LyricTie, match: lit("~")},
			{kind: LyricText, match: matchLyricText},
			{kind: Dynamic, match: matchDynamic},
			{kind: Skip, match: matchSkip},
			{kind: Length, match: matchLength},
		}, lilyMarkupCommandRules, lilyCommandRules),
	})

	register(pLilyChordMode, &parserSpec{
		name: "chordmode", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		onToken: func(st *State, t Token) {
			switch t.Kind {
			case ChordSeparator:
				st.enter(pLilyChordItems, 0)
			case OpenBracket, OpenSimultaneous:
				st.enter(pLilyChordMode, 0)
			}
		},
		rules: concat([]rule{
			{kind: OpenBracket, match: lit("{")},
			{kind: OpenSimultaneous, match: lit("<<")},
		}, lilyMusicRules, []rule{
			{kind: ChordSeparator, match: matchChordSeparator},
		}),
	})

	register(pLilyNoteMode, &parserSpec{
		name: "notemode", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules:       lilyMusicParserRules,
	})

	enterSelf := func(self parserID) action {
		return func(st *State, t Token) {
			if t.Kind == OpenBracket || t.Kind == OpenSimultaneous {
				st.enter(self, 0)
			}
		}
	}
	register(pLilyDrumMode, &parserSpec{
		name: "drummode", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		onToken:     enterSelf(pLilyDrumMode),
		rules:       lilyMusicParserRules,
	})
	register(pLilyFigureMode, &parserSpec{
		name: "figuremode", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		onToken:     enterSelf(pLilyFigureMode),
		rules:       lilyMusicParserRules,
	})

	registerLilyPondActions()
}

func registerLilyPondActions() {
	onKind(BlockCommentStart, enterAction(pLilyBlockComment, 0))
	onKind(BlockCommentEnd, leaveAction)
	onKind(StringQuotedStart, enterAction(pLilyString, 0))
	onKind(StringQuotedEnd, leaveEndArgAction)

	onKind(Length, enterAction(pLilyDuration, 0))
	onKind(TremoloColon, enterAction(pLilyTremolo, 0))
	onKind(TremoloDuration, leaveAction)
	onKind(Direction, enterAction(pLilyScriptOrFingering, 1))
	onKind(ScriptAbbreviation, leaveAction)
	onKind(Fingering, leaveAction)

	onKind(SequentialStart, enterAction(pLilyMusic, 0))
	onKind(SimultaneousStart, enterAction(pLilyMusic, 0))
	onKind(CloseBracket, leaveEndArgAction)
	onKind(CloseSimultaneous, leaveEndArgAction)
	onKind(SequentialEnd, leaveEndArgAction)
	onKind(SimultaneousEnd, leaveEndArgAction)
	onKind(ChordStart, enterAction(pLilyChord, 0))
	onKind(ChordEnd, leaveAction)

	onKind(Keyword, endArgAction)
	onKind(Command, endArgAction)
	onKind(Unit, endArgAction)
	onKind(IntegerValue, endArgAction)
	onKind(DecimalValue, endArgAction)
	onKind(Fraction, endArgAction)
	onKind(RepeatCount, leaveAction)
	onKind(LyricText, endArgAction)
	onKind(LyricHyphen, endArgAction)
	onKind(LyricExtender, endArgAction)
	onKind(LyricSkip, endArgAction)
	onKind(LyricTie, endArgAction)

	onKind(Score, enterAction(pLilyExpectScore, 0))
	onKind(Book, enterAction(pLilyExpectBook, 0))
	onKind(BookPart, enterAction(pLilyExpectBookPart, 0))
	onKind(Paper, enterAction(pLilyExpectPaper, 0))
	onKind(Header, enterAction(pLilyExpectHeader, 0))
	onKind(Layout, enterAction(pLilyExpectLayout, 0))
	onKind(Midi, enterAction(pLilyExpectMidi, 0))
	onKind(With, enterAction(pLilyExpectWith, 0))
	onKind(LayoutContext, enterAction(pLilyExpectContext, 0))

	onKind(Markup, enterAction(pLilyMarkup, 1))
	onKind(MarkupLines, enterAction(pLilyMarkup, 1))
	onKind(MarkupList, enterAction(pLilyMarkup, 1))
	onKind(MarkupScore, enterAction(pLilyExpectScore, 0))
	onKind(MarkupWord, endArgAction)
	onKind(OpenBracketMarkup, enterAction(pLilyMarkup, 0))
	onKind(CloseBracketMarkup, func(st *State, _ Token) {
		// pop until the parser entered at the opening bracket
		for st.Depth() > 1 && st.top().argcount > 0 {
			st.Leave()
		}
		st.Leave()
		st.EndArgument()
	})
	onKind(MarkupCommand, func(st *State, t Token) {
		name := strings.TrimPrefix(t.Text, "\\")
		if markupCommandsNoArgs[name] {
			st.EndArgument()
			return
		}
		argcount := 1
		if n, ok := markupCommandArgCount[name]; ok {
			argcount = n
		}
		st.enter(pLilyMarkup, argcount)
	})

	onKind(Repeat, enterAction(pLilyRepeat, 0))
	onKind(Override, enterAction(pLilyOverride, 0))
	onKind(Set, enterAction(pLilySet, 0))
	onKind(Revert, enterAction(pLilyRevert, 0))
	onKind(Unset, enterAction(pLilyUnset, 0))
	onKind(New, enterAction(pLilyTranslator, 0))
	onKind(Context, enterAction(pLilyTranslator, 0))
	onKind(Change, enterAction(pLilyTranslator, 0))
	onKind(Clef, enterAction(pLilyClef, 1))
	onKind(ClefSpecifier, leaveAction)
	onKind(EqualSignSetOverride, leaveAction)
	onKind(PitchCommand, func(st *State, t Token) {
		argcount := 1
		if t.Text == `\transpose` {
			argcount = 2
		}
		st.enter(pLilyPitchCommand, argcount)
	})

	onKind(LyricMode, enterAction(pLilyExpectLyricMode, 0))
	onKind(ChordMode, enterAction(pLilyExpectChordMode, 0))
	onKind(NoteMode, enterAction(pLilyExpectNoteMode, 0))
	onKind(DrumMode, enterAction(pLilyExpectDrumMode, 0))
	onKind(FigureMode, enterAction(pLilyExpectFigureMode, 0))

	onKind(SchemeStart, enterAction(pScheme, 1))
}
