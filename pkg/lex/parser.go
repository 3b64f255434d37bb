package lex

// parserID identifies a parser context. A State is a stack of frames,
// each holding a parserID plus an argument count; the definition for an ID
// is static and shared, so a frame is two small integers and the whole
// stack can be frozen into a comparable value.
type parserID uint8

const (
	// LilyPond.
	pLilyGlobal parserID = iota
	pLilyScore
	pLilyBook
	pLilyBookPart
	pLilyPaper
	pLilyHeader
	pLilyLayout
	pLilyMidi
	pLilyWith
	pLilyContext
	pLilyMusic
	pLilyChord
	pLilyString
	pLilyBlockComment
	pLilyMarkup
	pLilyRepeat
	pLilyDuration
	pLilyDurationScaling
	pLilyOverride
	pLilyRevert
	pLilySet
	pLilyUnset
	pLilyTranslator
	pLilyExpectTranslatorID
	pLilyTranslatorID
	pLilyClef
	pLilyScriptOrFingering
	pLilyTremolo
	pLilyPitchCommand
	pLilyChordItems
	pLilyExpectScore
	pLilyExpectBook
	pLilyExpectBookPart
	pLilyExpectPaper
	pLilyExpectHeader
	pLilyExpectLayout
	pLilyExpectMidi
	pLilyExpectWith
	pLilyExpectContext
	pLilyExpectLyricMode
	pLilyLyricMode
	pLilyExpectChordMode
	pLilyChordMode
	pLilyExpectNoteMode
	pLilyNoteMode
	pLilyExpectDrumMode
	pLilyDrumMode
	pLilyExpectFigureMode
	pLilyFigureMode

	// Scheme.
	pScheme
	pSchemeString
	pSchemeBlockComment
	pSchemeLilyPond

	// HTML.
	pHTML
	pHTMLAttr
	pHTMLStringDQ
	pHTMLStringSQ
	pHTMLComment
	pHTMLValue
	pHTMLLilyPondAttr
	pHTMLLilyPondFileOptions
	pHTMLLilyPond
	pHTMLLilyPondInline

	// Texinfo.
	pTexinfo
	pTexinfoComment
	pTexinfoBlock
	pTexinfoVerbatim
	pTexinfoLilyPondBlockAttr
	pTexinfoLilyPondEnvAttr
	pTexinfoLilyPondAttr
	pTexinfoLilyPondFile
	pTexinfoLilyPondBlock
	pTexinfoLilyPondEnv

	numParsers
)

// matchFn attempts a match at pos and returns the end offset of the
// matched text, or -1. Matchers never match empty text.
type matchFn func(text string, pos int) int

// rule couples a matcher to the token kind it produces. classify, when
// set, refines the kind from the matched text (e.g. a Scheme word that
// turns out to be a keyword).
type rule struct {
	kind     Kind
	match    matchFn
	classify func(text string) Kind
}

// action mutates the state in response to a token. Kind-level actions
// live in kindActions; parser-level fallbacks in parserSpec.onToken.
type action func(st *State, t Token)

// parserSpec is the static description of one parser context.
type parserSpec struct {
	name        string
	mode        string // non-empty on mode base parsers only
	defaultKind Kind   // kind for text no rule matched; Unparsed for most
	hasDefault  bool
	argcount    int // initial argument count when entered without an explicit one
	fallthru    bool
	onFallthru  func(st *State) // fallthru parsers only; nil means leave
	onToken     action // called for tokens whose kind has no kindActions entry
	rules       []rule
	emits       map[Kind]bool // kinds the rules can produce, for Follow
}

var parserTable [numParsers]*parserSpec

// kindActions maps a token kind to the state transition it performs.
// Kinds are globally unique, so the table can be flat even though each
// lexer mode contributes its own entries.
var kindActions [numKinds]action

func register(id parserID, spec *parserSpec) {
	spec.emits = make(map[Kind]bool, len(spec.rules))
	for _, r := range spec.rules {
		spec.emits[r.kind] = true
	}
	parserTable[id] = spec
}

func onKind(k Kind, a action) {
	kindActions[k] = a
}

// find locates the next token at or after pos. Ordinary parsers scan
// forward and return the earliest match of any rule, trying rules in
// order at each offset. Fallthrough parsers only try at pos itself.
func (s *parserSpec) find(text string, pos int) (Token, bool) {
	if s.fallthru {
		return s.ruleAt(text, pos)
	}
	for p := pos; p < len(text); p++ {
		if t, ok := s.ruleAt(text, p); ok {
			return t, true
		}
	}
	return Token{}, false
}

func (s *parserSpec) ruleAt(text string, pos int) (Token, bool) {
	for _, r := range s.rules {
		end := r.match(text, pos)
		if end <= pos {
			continue
		}
		k := r.kind
		if r.classify != nil {
			k = r.classify(text[pos:end])
		}
		return Token{Text: text[pos:end], Pos: pos, Kind: k}, true
	}
	return Token{}, false
}

func (s *parserSpec) doFallthrough(st *State) {
	if s.onFallthru != nil {
		s.onFallthru(st)
		return
	}
	st.Leave()
}

// Action helpers used by the mode tables.

func enterAction(p parserID, argcount int) action {
	return func(st *State, _ Token) { st.enter(p, argcount) }
}

func replaceAction(p parserID) action {
	return func(st *State, _ Token) { st.replace(p, parserTable[p].argcount) }
}

func leaveAction(st *State, _ Token) { st.Leave() }

func endArgAction(st *State, _ Token) { st.EndArgument() }

func leaveEndArgAction(st *State, _ Token) {
	st.Leave()
	st.EndArgument()
}

// Matcher building blocks. Matching is byte oriented; every pattern
// the lexers use is ASCII, and multibyte runes simply fail the class
// tests and end up in default-kind text.

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isWordByte(c byte) bool {
	return isASCIILetter(c) || isDigit(c) || c == '_'
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// lit matches a literal string.
func lit(s string) matchFn {
	return func(text string, pos int) int {
		if len(text)-pos >= len(s) && text[pos:pos+len(s)] == s {
			return pos + len(s)
		}
		return -1
	}
}

// litNoLetter matches a literal not followed by an ASCII letter.
func litNoLetter(s string) matchFn {
	l := lit(s)
	return func(text string, pos int) int {
		end := l(text, pos)
		if end < 0 || (end < len(text) && isASCIILetter(text[end])) {
			return -1
		}
		return end
	}
}

// litWordEnd matches a literal followed by a word boundary.
func litWordEnd(s string) matchFn {
	l := lit(s)
	return func(text string, pos int) int {
		end := l(text, pos)
		if end < 0 || (end < len(text) && isWordByte(text[end])) {
			return -1
		}
		return end
	}
}

// matchSpace matches a run of whitespace.
func matchSpace(text string, pos int) int {
	p := pos
	for p < len(text) && isSpaceByte(text[p]) {
		p++
	}
	if p == pos {
		return -1
	}
	return p
}

// run matches a maximal non-empty run of bytes satisfying f.
func run(f func(byte) bool) matchFn {
	return func(text string, pos int) int {
		p := pos
		for p < len(text) && f(text[p]) {
			p++
		}
		if p == pos {
			return -1
		}
		return p
	}
}

// backslashWord matches a backslash followed by a letter run contained
// in words, with no letter directly after.
func backslashWord(words map[string]bool) matchFn {
	return func(text string, pos int) int {
		if pos >= len(text) || text[pos] != '\\' {
			return -1
		}
		p := pos + 1
		for p < len(text) && isASCIILetter(text[p]) {
			p++
		}
		if p == pos+1 {
			return -1
		}
		// Some tables carry hyphenated words; prefer the longer form.
		q := p
		for q < len(text) && (isASCIILetter(text[q]) || text[q] == '-') {
			q++
		}
		for q > p && text[q-1] == '-' {
			q--
		}
		if q > p && words[text[pos+1:q]] {
			return q
		}
		if !words[text[pos+1:p]] {
			return -1
		}
		return p
	}
}

// literals matches, in order, any of the given literal words delimited
// by word boundaries. Words may contain digits and hyphens, so plain
// run scanning does not apply.
func literals(words []string) matchFn {
	return func(text string, pos int) int {
		if pos > 0 && isWordByte(text[pos-1]) {
			return -1
		}
		for _, w := range words {
			if len(text)-pos < len(w) || text[pos:pos+len(w)] != w {
				continue
			}
			end := pos + len(w)
			if end < len(text) && isWordByte(text[end]) {
				continue
			}
			return end
		}
		return -1
	}
}

// wordInSet matches a letter run contained in words, delimited by word
// boundaries on both sides.
func wordInSet(words map[string]bool) matchFn {
	return func(text string, pos int) int {
		if pos > 0 && isWordByte(text[pos-1]) {
			return -1
		}
		p := pos
		for p < len(text) && isASCIILetter(text[p]) {
			p++
		}
		if p == pos || (p < len(text) && isWordByte(text[p])) {
			return -1
		}
		if !words[text[pos:p]] {
			return -1
		}
		return p
	}
}

// matchDigits matches a digit run not followed by another digit
// (always true for a maximal run).
func matchDigits(text string, pos int) int {
	return run(isDigit)(text, pos)
}
