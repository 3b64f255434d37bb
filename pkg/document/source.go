package document

import (
	"iter"

	"github.com/yaklabco/lydoc/pkg/lex"
)

// Partiality selects how tokens straddling the boundary of a selected
// range are treated by a Source.
type Partiality int

const (
	// Outside also yields tokens that merely touch the selected range.
	Outside Partiality = iota - 1
	// Partial yields tokens that overlap the start or end of the range.
	Partial
	// Inside yields only tokens fully contained in the range.
	Inside
)

// Source iterates over the tokens in (a part of) a document. Between
// blocks a synthesized Newline token is yielded. When created with a
// lexer state, the state follows every real token that is read, so it
// always describes the context just past the last token, even for
// tokens that were filtered out at the range boundaries.
type Source struct {
	d       *Document
	state   *lex.State
	wp      bool
	partial Partiality

	block  *Block
	tokens []lex.Token
	idx    int

	startBlock *Block
	startPos   int
	started    bool

	endBlock *Block
	endPos   int
	hasEnd   bool

	exhausted bool

	last     lex.Token
	pushback bool
}

// NewSource returns a Source over the cursor's range that does not
// track lexer state.
func NewSource(c *Cursor, partial Partiality, withPositions bool) *Source {
	return newSource(c, nil, partial, withPositions)
}

// NewStateSource returns a Source over the cursor's range whose state
// is initialized from the document at the start of the range.
func NewStateSource(c *Cursor, partial Partiality, withPositions bool) *Source {
	d := c.Document()
	return newSource(c, d.State(d.BlockAt(c.Start)), partial, withPositions)
}

func newSource(c *Cursor, state *lex.State, partial Partiality, wp bool) *Source {
	d := c.Document()
	s := &Source{
		d:       d,
		state:   state,
		wp:      wp,
		partial: partial,
	}
	s.startBlock = d.BlockAt(c.Start)
	s.block = s.startBlock
	s.tokens = s.blockTokens(s.block)
	s.startPos = c.Start
	if !wp {
		s.startPos -= s.startBlock.position
	}
	s.started = c.Start == 0
	if c.End != NoEnd {
		s.hasEnd = true
		s.endBlock = c.EndBlock()
		s.endPos = c.End
		if !wp {
			s.endPos -= s.endBlock.position
		}
	}
	return s
}

func (s *Source) blockTokens(b *Block) []lex.Token {
	if s.wp {
		return s.d.TokensWithPosition(b)
	}
	return s.d.Tokens(b)
}

// Document returns the document the source reads from.
func (s *Source) Document() *Document { return s.d }

// State returns the lexer state following the source, or nil when the
// source was created without one.
func (s *Source) State() *lex.State { return s.state }

// Block returns the block the last yielded token came from.
func (s *Source) Block() *Block { return s.block }

// Token re-returns the last yielded token.
func (s *Source) Token() lex.Token { return s.last }

// Pushback makes the source yield the last yielded token once more on
// the next read. Calling it multiple times still repeats only the last
// token; Pushback(false) undoes it.
func (s *Source) Pushback(pushback bool) {
	s.pushback = pushback
}

// Position returns the document offset of a token yielded by this
// source. When the source was created with document positions, this is
// simply the token's own position.
func (s *Source) Position(t lex.Token) int {
	pos := t.Pos
	if !s.wp {
		pos += s.block.position
	}
	return pos
}

// Next returns the next token in the range. The second return value is
// false when the range is exhausted.
func (s *Source) Next() (lex.Token, bool) {
	if s.pushback {
		s.pushback = false
		return s.last, true
	}
	t, ok := s.advance()
	if !ok {
		return lex.Token{}, false
	}
	s.last = t
	return t, true
}

func (s *Source) advance() (lex.Token, bool) {
	for {
		if s.exhausted {
			return lex.Token{}, false
		}
		for s.idx < len(s.tokens) {
			t := s.tokens[s.idx]
			s.idx++
			if s.state != nil {
				s.state.Follow(t)
			}
			if !s.started {
				if s.startSkip(t) {
					continue
				}
				s.started = true
			}
			if s.hasEnd && s.block == s.endBlock && s.endReached(t) {
				s.exhausted = true
				return lex.Token{}, false
			}
			return t, true
		}
		if s.hasEnd && s.block == s.endBlock {
			s.exhausted = true
			return lex.Token{}, false
		}
		next := s.d.NextBlock(s.block)
		if next == nil {
			s.exhausted = true
			return lex.Token{}, false
		}
		s.block = next
		s.tokens = s.blockTokens(next)
		s.idx = 0
		s.started = true
		return s.newline(), true
	}
}

func (s *Source) startSkip(t lex.Token) bool {
	switch s.partial {
	case Outside:
		return t.End() < s.startPos
	case Partial:
		return t.End() <= s.startPos
	default:
		return t.Pos < s.startPos
	}
}

func (s *Source) endReached(t lex.Token) bool {
	switch s.partial {
	case Outside:
		return t.Pos > s.endPos
	case Partial:
		return t.Pos >= s.endPos
	default:
		return t.End() > s.endPos
	}
}

// newline creates the synthesized Newline token yielded between two
// blocks. Its position is that of the newline character separating
// them.
func (s *Source) newline() lex.Token {
	pos := s.block.position - 1
	if !s.wp {
		pos = len(s.d.PreviousBlock(s.block).text)
	}
	return lex.Token{Text: "\n", Pos: pos, Kind: lex.Newline}
}

// Tokens yields the remaining tokens of the range. The source can be
// iterated multiple times; each iteration continues where the previous
// one stopped.
func (s *Source) Tokens() iter.Seq[lex.Token] {
	return func(yield func(lex.Token) bool) {
		for {
			t, ok := s.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

// UntilParserEnd yields tokens until the parser that is current at the
// call leaves the stack. The source must have been created with a
// lexer state.
func (s *Source) UntilParserEnd() iter.Seq[lex.Token] {
	depth := s.state.Depth()
	return func(yield func(lex.Token) bool) {
		for {
			t, ok := s.Next()
			if !ok || !yield(t) {
				return
			}
			if s.state.Depth() < depth && !s.pushback {
				return
			}
		}
	}
}

// Consume reads tokens from seq, which must be reading from this
// source, until the given document position is reached. It returns the
// last read token when that token straddles the position.
func (s *Source) Consume(seq iter.Seq[lex.Token], position int) (lex.Token, bool) {
	if s.block.position >= position {
		return lex.Token{}, false
	}
	for t := range seq {
		end := s.Position(t) + len(t.Text)
		if end == position {
			return lex.Token{}, false
		}
		if end > position {
			return t, true
		}
	}
	return lex.Token{}, false
}
