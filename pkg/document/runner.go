package document

import (
	"iter"

	"github.com/yaklabco/lydoc/pkg/lex"
)

// Runner iterates back and forth over the tokens of a document. It can
// stop anywhere and remembers its current token.
type Runner struct {
	d      *Document
	wp     bool
	block  *Block
	tokens []lex.Token
	index  int
}

// NewRunner returns a Runner at the start of the document. When
// withPositions is true, token positions are document offsets instead
// of offsets within their block.
func NewRunner(d *Document, withPositions bool) *Runner {
	r := &Runner{d: d, wp: withPositions}
	r.MoveToBlock(d.Block(0), false)
	return r
}

// RunnerAt returns a Runner positioned so that iterating forward
// starts with the first complete token after the cursor's start
// position. Set afterToken to position the runner past that token, so
// that it is yielded when iterating backward.
func RunnerAt(c *Cursor, afterToken, withPositions bool) *Runner {
	r := NewRunner(c.Document(), withPositions)
	r.SetPosition(c.Start, afterToken)
	return r
}

// Document returns the document the runner iterates over.
func (r *Runner) Document() *Document { return r.d }

// CurrentBlock returns the block the runner is in.
func (r *Runner) CurrentBlock() *Block { return r.block }

// SetPosition positions the runner at the given document offset. Set
// afterToken to position the runner past the token at that offset.
func (r *Runner) SetPosition(position int, afterToken bool) {
	r.MoveToBlock(r.d.BlockAt(position), false)
	if afterToken {
		for t := range r.ForwardLine() {
			if r.Position()+len(t.Text) >= position {
				r.index++
				break
			}
		}
	} else {
		for t := range r.ForwardLine() {
			if r.Position()+len(t.Text) > position {
				r.index--
				break
			}
		}
	}
}

// MoveToBlock positions the runner at the start of the given block, or
// past its end when atEnd is set. It reports whether the block was
// valid.
func (r *Runner) MoveToBlock(b *Block, atEnd bool) bool {
	if b == nil {
		return false
	}
	r.block = b
	if r.wp {
		r.tokens = r.d.TokensWithPosition(b)
	} else {
		r.tokens = r.d.Tokens(b)
	}
	if atEnd {
		r.index = len(r.tokens)
	} else {
		r.index = -1
	}
	return true
}

// newline creates a synthesized Newline token at the end of the
// current block.
func (r *Runner) newline() lex.Token {
	pos := len(r.block.text)
	if r.wp {
		pos += r.block.position
	}
	return lex.Token{Text: "\n", Pos: pos, Kind: lex.Newline}
}

// Next returns the next token, crossing block boundaries. A
// synthesized Newline token is returned between blocks. The second
// return value is false when the document is exhausted.
func (r *Runner) Next() (lex.Token, bool) {
	if r.index < len(r.tokens)-1 {
		r.index++
		return r.tokens[r.index], true
	}
	if !r.NextBlock(false) {
		return lex.Token{}, false
	}
	return r.newline(), true
}

// NextInBlock returns the next token, stopping at the end of the
// current block.
func (r *Runner) NextInBlock() (lex.Token, bool) {
	if r.index < len(r.tokens)-1 {
		r.index++
		return r.tokens[r.index], true
	}
	return lex.Token{}, false
}

// Previous returns the previous token, crossing block boundaries. A
// synthesized Newline token is returned between blocks. The second
// return value is false when the start of the document is reached.
func (r *Runner) Previous() (lex.Token, bool) {
	if r.index > 0 {
		r.index--
		return r.tokens[r.index], true
	}
	if !r.PreviousBlock(true) {
		return lex.Token{}, false
	}
	return r.newline(), true
}

// PreviousInBlock returns the previous token, stopping at the start of
// the current block.
func (r *Runner) PreviousInBlock() (lex.Token, bool) {
	if r.index > 0 {
		r.index--
		return r.tokens[r.index], true
	}
	return lex.Token{}, false
}

// Forward yields tokens in forward direction across blocks.
func (r *Runner) Forward() iter.Seq[lex.Token] {
	return func(yield func(lex.Token) bool) {
		for {
			t, ok := r.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

// ForwardLine yields tokens in forward direction in the current block.
func (r *Runner) ForwardLine() iter.Seq[lex.Token] {
	return func(yield func(lex.Token) bool) {
		for {
			t, ok := r.NextInBlock()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

// Backward yields tokens in backward direction across blocks.
func (r *Runner) Backward() iter.Seq[lex.Token] {
	return func(yield func(lex.Token) bool) {
		for {
			t, ok := r.Previous()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

// BackwardLine yields tokens in backward direction in the current block.
func (r *Runner) BackwardLine() iter.Seq[lex.Token] {
	return func(yield func(lex.Token) bool) {
		for {
			t, ok := r.PreviousInBlock()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

// PreviousBlock moves to the previous block, positioned past its end
// when atEnd is set. It reports whether there was a previous block.
func (r *Runner) PreviousBlock(atEnd bool) bool {
	return r.MoveToBlock(r.d.PreviousBlock(r.block), atEnd)
}

// NextBlock moves to the next block, positioned at its start when
// atEnd is unset. It reports whether there was a next block.
func (r *Runner) NextBlock(atEnd bool) bool {
	return r.MoveToBlock(r.d.NextBlock(r.block), atEnd)
}

// Token re-returns the last yielded token. At the edges of a block it
// returns the nearest token.
func (r *Runner) Token() lex.Token {
	if len(r.tokens) == 0 {
		return lex.Token{}
	}
	i := r.index
	if i < 0 {
		i = 0
	} else if i >= len(r.tokens) {
		i = len(r.tokens) - 1
	}
	return r.tokens[i]
}

// Position returns the document offset of the current token.
func (r *Runner) Position() int {
	if len(r.tokens) == 0 {
		return r.block.position
	}
	pos := r.Token().Pos
	if !r.wp {
		pos += r.block.position
	}
	return pos
}

// Copy returns a new Runner at the current position.
func (r *Runner) Copy() *Runner {
	c := *r
	return &c
}

// FindMatchingEnd scans forward for the token that closes the current
// token, honoring nesting of the same delimiter family. It reports
// whether a match was found; on success the runner is positioned at
// the matching token.
func (r *Runner) FindMatchingEnd() bool {
	t := r.Token()
	if !t.Is(lex.ClassMatchStart) {
		return false
	}
	nest := 0
	for t2, ok := r.Next(); ok; t2, ok = r.Next() {
		if t2.MatchName() != t.MatchName() {
			continue
		}
		if t2.Is(lex.ClassMatchEnd) {
			if nest == 0 {
				return true
			}
			nest--
		} else if t2.Is(lex.ClassMatchStart) {
			nest++
		}
	}
	return false
}

// FindMatchingStart scans backward for the token that opens the
// current token, honoring nesting of the same delimiter family. It
// reports whether a match was found; on success the runner is
// positioned at the matching token.
func (r *Runner) FindMatchingStart() bool {
	t := r.Token()
	if !t.Is(lex.ClassMatchEnd) {
		return false
	}
	nest := 0
	for t2, ok := r.Previous(); ok; t2, ok = r.Previous() {
		if t2.MatchName() != t.MatchName() {
			continue
		}
		if t2.Is(lex.ClassMatchStart) {
			if nest == 0 {
				return true
			}
			nest--
		} else if t2.Is(lex.ClassMatchEnd) {
			nest++
		}
	}
	return false
}
