package lex

import "unicode/utf8"

// Scheme mode, entered from LilyPond after # or $ and standalone for
// .scm documents. A `#{` inside Scheme opens an embedded LilyPond
// music expression again.

func matchSchemeLineComment(text string, pos int) int {
	if text[pos] != ';' {
		return -1
	}
	return len(text)
}

func matchSchemeQuote(text string, pos int) int {
	switch text[pos] {
	case '\'', '`', ',':
		return pos + 1
	}
	return -1
}

// matchSchemeDot matches a dot followed by whitespace or end of line.
func matchSchemeDot(text string, pos int) int {
	if text[pos] != '.' {
		return -1
	}
	if pos+1 < len(text) && !isSpaceByte(text[pos+1]) {
		return -1
	}
	return pos + 1
}

func matchSchemeBool(text string, pos int) int {
	if text[pos] != '#' || pos+1 >= len(text) {
		return -1
	}
	if c := text[pos+1]; c != 't' && c != 'f' {
		return -1
	}
	if pos+2 < len(text) && isWordByte(text[pos+2]) {
		return -1
	}
	return pos + 2
}

// matchSchemeChar matches #\x or #\name character syntax.
func matchSchemeChar(text string, pos int) int {
	if text[pos] != '#' || pos+1 >= len(text) || text[pos+1] != '\\' || pos+2 >= len(text) {
		return -1
	}
	p := pos + 2
	for p < len(text) && 'a' <= text[p] && text[p] <= 'z' {
		p++
	}
	if p == pos+2 {
		_, n := utf8.DecodeRuneInString(text[p:])
		p += n
	}
	return p
}

func matchSchemeWord(text string, pos int) int {
	p := pos
	for p < len(text) {
		switch c := text[p]; {
		case c == '(' || c == ')' || c == '"' || c == '{' || c == '}' || isSpaceByte(c):
			if p == pos {
				return -1
			}
			return p
		default:
			p++
		}
	}
	if p == pos {
		return -1
	}
	return p
}

// schemeNumberEnd checks the delimiter a Scheme number must end on:
// end of line, closing paren or whitespace.
func schemeNumberEnd(text string, end int) int {
	if end < len(text) && text[end] != ')' && !isSpaceByte(text[end]) {
		return -1
	}
	return end
}

func matchSchemeNumber(text string, pos int) int {
	p := pos
	if text[p] == '-' {
		p++
	}
	if end := matchDigits(text, p); end > 0 {
		return schemeNumberEnd(text, end)
	}
	if text[pos] == '#' && pos+1 < len(text) {
		var ok func(byte) bool
		switch text[pos+1] {
		case 'b':
			ok = func(c byte) bool { return c == '0' || c == '1' }
		case 'o':
			ok = func(c byte) bool { return '0' <= c && c <= '7' }
		case 'x':
			ok = func(c byte) bool {
				return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
			}
		default:
			return -1
		}
		if end := run(ok)(text, pos+2); end > 0 {
			return schemeNumberEnd(text, end)
		}
		return -1
	}
	p = pos
	if text[p] == '-' || text[p] == '+' {
		p++
	}
	if end := lit("inf.0")(text, p); end > 0 && p > pos {
		return schemeNumberEnd(text, end)
	}
	if end := lit("nan.0")(text, p); end > 0 {
		return schemeNumberEnd(text, end)
	}
	return -1
}

func matchSchemeFraction(text string, pos int) int {
	p := pos
	if text[p] == '-' {
		p++
	}
	end := matchFraction(text, p)
	if end < 0 {
		return -1
	}
	return schemeNumberEnd(text, end)
}

func matchSchemeFloat(text string, pos int) int {
	p := pos
	if text[p] == '-' {
		p++
	}
	start := p
	end := matchDigits(text, p)
	if end > 0 {
		if end >= len(text) || text[end] != '.' {
			return -1
		}
		end++
		if e2 := matchDigits(text, end); e2 > 0 {
			end = e2
		}
	} else {
		if text[start] != '.' {
			return -1
		}
		end = matchDigits(text, start+1)
		if end < 0 {
			return -1
		}
	}
	if end < len(text) && text[end] == 'E' {
		if e2 := matchDigits(text, end+1); e2 > 0 {
			end = e2
		}
	}
	return schemeNumberEnd(text, end)
}

func classifySchemeWord(text string) Kind {
	if schemeKeywords[text] {
		return SchemeKeyword
	}
	return SchemeWord
}

func init() {
	register(pScheme, &parserSpec{
		name: "scheme", mode: "scheme",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: Space, match: matchSpace},
			{kind: SchemeOpenParen, match: lit("(")},
			{kind: SchemeCloseParen, match: lit(")")},
			{kind: SchemeLineComment, match: matchSchemeLineComment},
			{kind: SchemeBlockCommentStart, match: lit("#!")},
			{kind: SchemeLilyPondStart, match: lit("#{")},
			{kind: SchemeVectorStart, match: lit("#(")},
			{kind: SchemeDot, match: matchSchemeDot},
			{kind: SchemeBool, match: matchSchemeBool},
			{kind: SchemeChar, match: matchSchemeChar},
			{kind: SchemeQuote, match: matchSchemeQuote},
			{kind: SchemeFraction, match: matchSchemeFraction},
			{kind: SchemeFloat, match: matchSchemeFloat},
			{kind: SchemeNumber, match: matchSchemeNumber},
			{kind: SchemeWord, match: matchSchemeWord, classify: classifySchemeWord},
			{kind: SchemeStringStart, match: lit(`"`)},
		},
	})

	register(pSchemeString, &parserSpec{
		name:        "schemestring",
		defaultKind: SchemeStringText, hasDefault: true,
		rules: []rule{
			{kind: SchemeStringEnd, match: lit(`"`)},
			{kind: SchemeStringEscape, match: matchStringQuoteEscape},
		},
	})

	register(pSchemeBlockComment, &parserSpec{
		name:        "schemeblockcomment",
		defaultKind: SchemeBlockCommentText, hasDefault: true,
		rules: []rule{
			{kind: SchemeBlockCommentEnd, match: lit("!#")},
		},
	})

	register(pSchemeLilyPond, &parserSpec{
		name: "schemelilypond", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: SchemeLilyPondEnd, match: lit("#}")},
		}, lilyMusicParserRules),
	})

	onKind(SchemeOpenParen, enterAction(pScheme, 0))
	onKind(SchemeCloseParen, leaveEndArgAction)
	onKind(SchemeBlockCommentStart, enterAction(pSchemeBlockComment, 0))
	onKind(SchemeBlockCommentEnd, leaveAction)
	onKind(SchemeLilyPondStart, enterAction(pSchemeLilyPond, 0))
	onKind(SchemeLilyPondEnd, leaveAction)
	onKind(SchemeVectorStart, enterAction(pScheme, 0))
	onKind(SchemeStringStart, enterAction(pSchemeString, 0))
	onKind(SchemeStringEnd, leaveEndArgAction)
	onKind(SchemeBool, endArgAction)
	onKind(SchemeChar, endArgAction)
	onKind(SchemeWord, endArgAction)
	onKind(SchemeKeyword, endArgAction)
	onKind(SchemeNumber, endArgAction)
	onKind(SchemeFraction, endArgAction)
	onKind(SchemeFloat, endArgAction)
}
