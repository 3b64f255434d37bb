package lex

// frame is one entry of the parser stack: which parser context is
// active and how many arguments it still expects.
type frame struct {
	parser   parserID
	argcount int
}

// State is the complete lexer state between two lines. Feeding a line
// through Tokens mutates the state; Freeze captures it cheaply so a
// document can cache the state at every line boundary.
type State struct {
	stack []frame
}

// NewState returns a fresh State for the given mode ("lilypond",
// "scheme", "html" or "texinfo"). An unknown mode gets the LilyPond
// lexer.
func NewState(mode string) *State {
	p := pLilyGlobal
	switch mode {
	case "scheme":
		p = pScheme
	case "html":
		p = pHTML
	case "texinfo":
		p = pTexinfo
	}
	return &State{stack: []frame{{parser: p}}}
}

// KnownMode reports whether mode names a lexer mode.
func KnownMode(mode string) bool {
	switch mode {
	case "lilypond", "scheme", "html", "texinfo":
		return true
	}
	return false
}

// Modes lists the supported lexer modes.
func Modes() []string {
	return []string{"lilypond", "scheme", "html", "texinfo"}
}

func (st *State) top() *frame { return &st.stack[len(st.stack)-1] }

func (st *State) spec() *parserSpec { return parserTable[st.top().parser] }

// Depth returns the number of stacked parsers. It is never below 1.
func (st *State) Depth() int { return len(st.stack) }

// Parser names the current parser context, e.g. "music", "chord",
// "markup" or "blockcomment".
func (st *State) Parser() string { return st.spec().name }

// Mode returns the lexer mode governing the current position: the mode
// of the topmost parser that carries one. Inside `#{ ... #}` in Scheme,
// for example, the mode is "lilypond" again.
func (st *State) Mode() string {
	for i := len(st.stack) - 1; i >= 0; i-- {
		if m := parserTable[st.stack[i].parser].mode; m != "" {
			return m
		}
	}
	return ""
}

func (st *State) enter(p parserID, argcount int) {
	st.stack = append(st.stack, frame{parser: p, argcount: argcount})
}

// Leave pops the current parser. The initial parser is never left;
// an unmatched closer simply saturates at the initial frame.
func (st *State) Leave() {
	if len(st.stack) > 1 {
		st.stack = st.stack[:len(st.stack)-1]
	}
}

func (st *State) replace(p parserID, argcount int) {
	st.Leave()
	st.enter(p, argcount)
}

// EndArgument pops parsers that were waiting for their last argument
// and decrements the argument count of the first parser that still
// expects more. Parsers with no argument expectation are untouched.
func (st *State) EndArgument() {
	for len(st.stack) > 1 {
		f := st.top()
		if f.argcount == 1 {
			st.stack = st.stack[:len(st.stack)-1]
			continue
		}
		if f.argcount > 0 {
			f.argcount--
		}
		return
	}
}

// Tokens lexes one line of text (without its newline) and returns its
// tokens, advancing the state. Empty input yields no tokens but is
// still a valid call.
func (st *State) Tokens(text string) []Token {
	var out []Token
	var spec *parserSpec
	pos := 0
	for {
		spec = st.spec()
		if pos == len(text) {
			break
		}
		t, ok := spec.find(text, pos)
		if ok {
			if spec.hasDefault && pos < t.Pos {
				d := Token{Text: text[pos:t.Pos], Pos: pos, Kind: spec.defaultKind}
				st.apply(d)
				out = append(out, d)
			}
			st.apply(t)
			out = append(out, t)
			pos = t.End()
			continue
		}
		if spec.fallthru {
			spec.doFallthrough(st)
			continue
		}
		break
	}
	if spec.hasDefault && pos < len(text) {
		d := Token{Text: text[pos:], Pos: pos, Kind: spec.defaultKind}
		st.apply(d)
		out = append(out, d)
	}
	return out
}

// apply runs the state transition for a token: a kind-level action if
// the kind has one, the current parser's token hook otherwise.
func (st *State) apply(t Token) {
	if a := kindActions[t.Kind]; a != nil {
		a(st, t)
		return
	}
	if spec := st.spec(); spec.onToken != nil {
		spec.onToken(st, t)
	}
}

// Follow performs the state transition a token would cause when lexed,
// without lexing. A fallthrough parser that could not have produced
// the token falls through first, exactly as it would have during
// lexing. Used when replaying cached tokens.
func (st *State) Follow(t Token) {
	for {
		spec := st.spec()
		if spec.fallthru && !spec.emits[t.Kind] {
			spec.doFallthrough(st)
			continue
		}
		st.apply(t)
		return
	}
}

// Frozen is an immutable, comparable snapshot of a State. Equal states
// freeze to equal values, so cached line states can be compared with
// == to decide whether re-lexing must continue.
type Frozen string

// Freeze captures the state.
func (st *State) Freeze() Frozen {
	b := make([]byte, 0, len(st.stack)*2)
	for _, f := range st.stack {
		b = append(b, byte(f.parser), byte(int8(f.argcount)))
	}
	return Frozen(b)
}

// Thaw reconstructs a State from a frozen snapshot.
func (f Frozen) Thaw() *State {
	st := &State{stack: make([]frame, 0, len(f)/2)}
	for i := 0; i+1 < len(f); i += 2 {
		st.stack = append(st.stack, frame{
			parser:   parserID(f[i]),
			argcount: int(int8(f[i+1])),
		})
	}
	if len(st.stack) == 0 {
		st.stack = []frame{{parser: pLilyGlobal}}
	}
	return st
}

// Mode returns the lexer mode of a frozen state without thawing it.
func (f Frozen) Mode() string {
	for i := len(f) - 2; i >= 0; i -= 2 {
		if m := parserTable[parserID(f[i])].mode; m != "" {
			return m
		}
	}
	return ""
}

// Depth returns the parser stack depth of a frozen state.
func (f Frozen) Depth() int { return len(f) / 2 }
