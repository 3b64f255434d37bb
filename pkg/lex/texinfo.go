package lex

// Texinfo mode. @lilypond{...}, @lilypond...@end lilypond and
// @lilypondfile{...} switch to the LilyPond lexer; everything else is
// reduced to keywords, braced blocks, comments and verbatim sections.

func matchTexinfoLineComment(text string, pos int) int {
	if end := litWordEnd("@c")(text, pos); end > 0 {
		return len(text)
	}
	return -1
}

func matchTexinfoKeyword(text string, pos int) int {
	if text[pos] != '@' {
		return -1
	}
	end := run(isASCIILetter)(text, pos+1)
	if end < 0 {
		return -1
	}
	return end
}

func matchTexinfoBlockStart(text string, pos int) int {
	end := matchTexinfoKeyword(text, pos)
	if end < 0 || end >= len(text) || text[end] != '{' {
		return -1
	}
	return end + 1
}

func matchTexinfoEscapeChar(text string, pos int) int {
	if text[pos] != '@' || pos+1 >= len(text) {
		return -1
	}
	switch text[pos+1] {
	case '@', '{', '}':
		return pos + 2
	}
	return -1
}

// matchTexinfoAccent matches @'e style accents, with or without braces
// around the letter.
func matchTexinfoAccent(text string, pos int) int {
	if text[pos] != '@' || pos+1 >= len(text) {
		return -1
	}
	switch text[pos+1] {
	case '\'', '"', ',', '=', '^', '`', '~':
	default:
		return -1
	}
	p := pos + 2
	if p < len(text) && text[p] == '{' {
		if p+2 < len(text) && isASCIILetter(text[p+1]) && text[p+2] == '}' {
			return p + 3
		}
		return -1
	}
	if p < len(text) && isASCIILetter(text[p]) {
		if p+1 < len(text) && isWordByte(text[p+1]) {
			return -1
		}
		return p + 1
	}
	return -1
}

// matchEndKeyword matches "@end word" with flexible spacing.
func matchEndKeyword(word string) matchFn {
	return func(text string, pos int) int {
		end := lit("@end")(text, pos)
		if end < 0 {
			return -1
		}
		sp := matchSpace(text, end)
		if sp < 0 {
			return -1
		}
		return litWordEnd(word)(text, sp)
	}
}

// matchLilyPondBlockStart matches @lilypond only when the brace form
// follows: an optional [options] part and then {.
func matchLilyPondBlockStart(text string, pos int) int {
	end := lit("@lilypond")(text, pos)
	if end < 0 {
		return -1
	}
	p := end
	if p < len(text) && text[p] == '[' {
		p++
		for p < len(text) {
			c := text[p]
			if c == ']' {
				p++
				break
			}
			if isWordByte(c) || c == ',' || c == '=' || c == '\\' || isSpaceByte(c) {
				p++
				continue
			}
			return -1
		}
	}
	if p < len(text) && text[p] == '{' {
		return end
	}
	return -1
}

func init() {
	register(pTexinfo, &parserSpec{
		name: "texinfo", mode: "texinfo",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: TexinfoLineComment, match: matchTexinfoLineComment},
			{kind: TexinfoBlockCommentStart, match: litWordEnd("@ignore")},
			{kind: TexinfoAccent, match: matchTexinfoAccent},
			{kind: TexinfoEscapeChar, match: matchTexinfoEscapeChar},
			{kind: TexinfoLilyPondBlockStart, match: matchLilyPondBlockStart},
			{kind: TexinfoLilyPondEnvStart, match: litWordEnd("@lilypond")},
			{kind: TexinfoLilyPondFileStart, match: litWordEnd("@lilypondfile")},
			{kind: TexinfoBlockStart, match: matchTexinfoBlockStart},
			{kind: TexinfoVerbatimStart, match: litWordEnd("@verbatim")},
			{kind: TexinfoKeyword, match: matchTexinfoKeyword},
		},
	})

	register(pTexinfoComment, &parserSpec{
		name:        "texinfocomment",
		defaultKind: TexinfoBlockCommentText, hasDefault: true,
		rules: []rule{
			{kind: TexinfoBlockCommentEnd, match: matchEndKeyword("ignore")},
		},
	})

	register(pTexinfoBlock, &parserSpec{
		name:        "texinfoblock",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: TexinfoBlockEnd, match: lit("}")},
			{kind: TexinfoAccent, match: matchTexinfoAccent},
			{kind: TexinfoEscapeChar, match: matchTexinfoEscapeChar},
			{kind: TexinfoBlockStart, match: matchTexinfoBlockStart},
			{kind: TexinfoKeyword, match: matchTexinfoKeyword},
		},
	})

	register(pTexinfoVerbatim, &parserSpec{
		name:        "texinfoverbatim",
		defaultKind: TexinfoVerbatimText, hasDefault: true,
		rules: []rule{
			{kind: TexinfoVerbatimEnd, match: matchEndKeyword("verbatim")},
		},
	})

	register(pTexinfoLilyPondBlockAttr, &parserSpec{
		name:        "texinfolilypondblockattr",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: TexinfoLilyPondAttrStart, match: lit("[")},
			{kind: TexinfoLilyPondBlockStartBrace, match: lit("{")},
		},
	})

	register(pTexinfoLilyPondEnvAttr, &parserSpec{
		name:     "texinfolilypondenvattr",
		fallthru: true,
		onFallthru: func(st *State) {
			st.replace(pTexinfoLilyPondEnv, 0)
		},
		rules: []rule{
			{kind: TexinfoLilyPondAttrStart, match: lit("[")},
		},
	})

	register(pTexinfoLilyPondAttr, &parserSpec{
		name:        "texinfolilypondattr",
		defaultKind: TexinfoAttrText, hasDefault: true,
		rules: []rule{
			{kind: TexinfoLilyPondAttrEnd, match: lit("]")},
		},
	})

	register(pTexinfoLilyPondFile, &parserSpec{
		name:        "texinfolilypondfile",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: TexinfoLilyPondAttrStart, match: lit("[")},
			{kind: TexinfoLilyPondFileStartBrace, match: lit("{")},
		},
	})

	register(pTexinfoLilyPondBlock, &parserSpec{
		name: "texinfolilypondblock", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: TexinfoLilyPondBlockEnd, match: lit("}")},
		}, lilyGlobalRules),
	})

	register(pTexinfoLilyPondEnv, &parserSpec{
		name: "texinfolilypondenv", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: TexinfoLilyPondEnvEnd, match: matchEndKeyword("lilypond")},
		}, lilyGlobalRules),
	})

	onKind(TexinfoBlockCommentStart, enterAction(pTexinfoComment, 0))
	onKind(TexinfoBlockCommentEnd, leaveAction)
	onKind(TexinfoBlockStart, enterAction(pTexinfoBlock, 0))
	onKind(TexinfoBlockEnd, leaveAction)
	onKind(TexinfoVerbatimStart, enterAction(pTexinfoVerbatim, 0))
	onKind(TexinfoVerbatimEnd, leaveAction)
	onKind(TexinfoLilyPondBlockStart, enterAction(pTexinfoLilyPondBlockAttr, 0))
	onKind(TexinfoLilyPondBlockStartBrace, replaceAction(pTexinfoLilyPondBlock))
	onKind(TexinfoLilyPondBlockEnd, leaveAction)
	onKind(TexinfoLilyPondEnvStart, enterAction(pTexinfoLilyPondEnvAttr, 0))
	onKind(TexinfoLilyPondEnvEnd, leaveAction)
	onKind(TexinfoLilyPondFileStart, enterAction(pTexinfoLilyPondFile, 0))
	onKind(TexinfoLilyPondFileStartBrace, replaceAction(pTexinfoBlock))
	onKind(TexinfoLilyPondAttrStart, enterAction(pTexinfoLilyPondAttr, 0))
	onKind(TexinfoLilyPondAttrEnd, leaveAction)
}
