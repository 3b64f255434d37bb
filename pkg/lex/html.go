package lex

// HTML mode. Only the LilyPond islands are lexed in depth; regular
// markup is reduced to tags, attributes, strings, comments and entity
// references, enough to find and track the embedded music.

func matchHTMLTagStart(text string, pos int) int {
	if text[pos] != '<' {
		return -1
	}
	p := pos + 1
	if p < len(text) && text[p] == '/' {
		p++
	}
	if p >= len(text) || !(isASCIILetter(text[p]) || text[p] == '_') {
		return -1
	}
	p++
	for p < len(text) && (isWordByte(text[p]) || text[p] == '-' || text[p] == ':') {
		p++
	}
	return p
}

func matchHTMLTagEnd(text string, pos int) int {
	p := pos
	if text[p] == '/' {
		p++
	}
	if p < len(text) && text[p] == '>' {
		return p + 1
	}
	return -1
}

func matchHTMLAttrName(text string, pos int) int {
	end := run(isWordByte)(text, pos)
	if end < 0 {
		return -1
	}
	if end < len(text) && (text[end] == '-' || text[end] == '_' || text[end] == ':') {
		if e2 := run(isWordByte)(text, end+1); e2 > 0 {
			return e2
		}
	}
	return end
}

func matchHTMLEntityRef(text string, pos int) int {
	if text[pos] != '&' {
		return -1
	}
	p := pos + 1
	if p < len(text) && text[p] == '#' {
		p++
		if p < len(text) && (text[p] == 'x' || text[p] == 'X') {
			hex := func(c byte) bool {
				return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
			}
			p = run(hex)(text, p+1)
		} else {
			p = matchDigits(text, p)
		}
		if p < 0 {
			return -1
		}
	} else {
		if p >= len(text) || !(isASCIILetter(text[p]) || text[p] == '_' || text[p] == ':') {
			return -1
		}
		p++
		for p < len(text) && (isWordByte(text[p]) || text[p] == '.' || text[p] == ':' || text[p] == '-') {
			p++
		}
	}
	if p < len(text) && text[p] == ';' {
		return p + 1
	}
	return -1
}

func init() {
	register(pHTML, &parserSpec{
		name: "html", mode: "html",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: Space, match: matchSpace},
			{kind: HTMLLilyPondVersionTag, match: matchLilyPondVersionTag},
			{kind: HTMLLilyPondFileTag, match: matchLilyPondFileTag},
			{kind: HTMLLilyPondInlineTag, match: litWordEnd("<lilypond")},
			{kind: HTMLCommentStart, match: lit("<!--")},
			{kind: HTMLTagStart, match: matchHTMLTagStart},
			{kind: HTMLEntityRef, match: matchHTMLEntityRef},
		},
	})

	register(pHTMLAttr, &parserSpec{
		name:        "htmlattr",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: Space, match: matchSpace},
			{kind: HTMLTagEnd, match: matchHTMLTagEnd},
			{kind: HTMLAttrName, match: matchHTMLAttrName},
			{kind: HTMLEqualSign, match: lit("=")},
			{kind: HTMLStringDQStart, match: lit(`"`)},
			{kind: HTMLStringSQStart, match: lit("'")},
		},
	})

	register(pHTMLStringDQ, &parserSpec{
		name:        "htmlstringdq",
		defaultKind: HTMLStringText, hasDefault: true,
		rules: []rule{
			{kind: HTMLStringDQEnd, match: lit(`"`)},
			{kind: HTMLEntityRef, match: matchHTMLEntityRef},
		},
	})
	register(pHTMLStringSQ, &parserSpec{
		name:        "htmlstringsq",
		defaultKind: HTMLStringText, hasDefault: true,
		rules: []rule{
			{kind: HTMLStringSQEnd, match: lit("'")},
			{kind: HTMLEntityRef, match: matchHTMLEntityRef},
		},
	})

	register(pHTMLComment, &parserSpec{
		name:        "htmlcomment",
		defaultKind: HTMLCommentText, hasDefault: true,
		rules: []rule{
			{kind: HTMLCommentEnd, match: lit("-->")},
		},
	})

	register(pHTMLValue, &parserSpec{
		name:     "htmlvalue",
		fallthru: true,
		rules: []rule{
			{kind: Space, match: matchSpace},
			{kind: HTMLValue, match: run(isWordByte)},
		},
	})

	register(pHTMLLilyPondAttr, &parserSpec{
		name:        "htmllilypondattr",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: Space, match: matchSpace},
			{kind: HTMLAttrName, match: matchHTMLAttrName},
			{kind: HTMLEqualSign, match: lit("=")},
			{kind: HTMLStringDQStart, match: lit(`"`)},
			{kind: HTMLStringSQStart, match: lit("'")},
			{kind: HTMLLilyPondTagEnd, match: lit(">")},
			{kind: HTMLSemicolon, match: lit(":")},
		},
	})

	register(pHTMLLilyPondFileOptions, &parserSpec{
		name:        "htmllilypondfileoptions",
		defaultKind: Unparsed, hasDefault: true,
		rules: []rule{
			{kind: Space, match: matchSpace},
			{kind: HTMLAttrName, match: matchHTMLAttrName},
			{kind: HTMLEqualSign, match: lit("=")},
			{kind: HTMLStringDQStart, match: lit(`"`)},
			{kind: HTMLStringSQStart, match: lit("'")},
			{kind: HTMLLilyPondFileTagEnd, match: matchHTMLTagEnd},
		},
	})

	register(pHTMLLilyPond, &parserSpec{
		name: "htmllilypond", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: HTMLLilyPondCloseTag, match: lit("</lilypond>")},
		}, lilyGlobalRules),
	})

	register(pHTMLLilyPondInline, &parserSpec{
		name: "htmllilypondinline", mode: "lilypond",
		defaultKind: Unparsed, hasDefault: true,
		rules: concat([]rule{
			{kind: HTMLLilyPondInlineTagEnd, match: matchHTMLTagEnd},
		}, lilyMusicParserRules),
	})

	onKind(HTMLCommentStart, enterAction(pHTMLComment, 0))
	onKind(HTMLCommentEnd, leaveAction)
	onKind(HTMLTagStart, enterAction(pHTMLAttr, 0))
	onKind(HTMLTagEnd, leaveAction)
	onKind(HTMLEqualSign, enterAction(pHTMLValue, 0))
	onKind(HTMLValue, leaveAction)
	onKind(HTMLStringDQStart, enterAction(pHTMLStringDQ, 0))
	onKind(HTMLStringSQStart, enterAction(pHTMLStringSQ, 0))
	onKind(HTMLStringDQEnd, leaveAction)
	onKind(HTMLStringSQEnd, leaveAction)
	onKind(HTMLLilyPondFileTag, enterAction(pHTMLLilyPondFileOptions, 0))
	onKind(HTMLLilyPondFileTagEnd, leaveAction)
	onKind(HTMLLilyPondInlineTag, enterAction(pHTMLLilyPondAttr, 0))
	onKind(HTMLLilyPondCloseTag, leaveAction)
	onKind(HTMLLilyPondTagEnd, replaceAction(pHTMLLilyPond))
	onKind(HTMLLilyPondInlineTagEnd, leaveAction)
	onKind(HTMLSemicolon, replaceAction(pHTMLLilyPondInline))
}

func matchLilyPondVersionTag(text string, pos int) int {
	if end := lit("<lilypondversion/>")(text, pos); end > 0 {
		return end
	}
	return lit("<lilypondversion>")(text, pos)
}

func matchLilyPondFileTag(text string, pos int) int {
	if end := litWordEnd("</lilypondfile")(text, pos); end > 0 {
		return end
	}
	return litWordEnd("<lilypondfile")(text, pos)
}