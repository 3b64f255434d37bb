// Package document holds LilyPond source text as a sequence of lines
// with cached tokens and lexer state, and keeps that cache correct
// across edits.
//
// Each line ("block") stores its tokens and the frozen lexer state at
// its end. After an edit only the changed lines and the lines whose
// start state actually shifted are re-lexed; re-lexing stops as soon
// as a line's freshly computed start state equals its cached one.
//
// Edits are preferably grouped in a transaction:
//
//	d := document.New("some string", "")
//	tx := d.Begin()
//	tx.Insert(5, "different ")
//	err := tx.Commit()
//
// Cursors registered on the document are adjusted when edits are
// applied, so they keep pointing at the same text.
package document

import (
	"fmt"
	"iter"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/lydoc/pkg/lex"
	"github.com/yaklabco/lydoc/pkg/modeguess"
)

// ErrInvalidUTF8 is returned by Load for files that do not decode as UTF-8.
var ErrInvalidUTF8 = fmt.Errorf("text is not valid UTF-8")

// Block is a single line of text with its cached tokens and the frozen
// lexer state at the end of the line. Blocks are owned by a Document;
// a block that has been edited out of its document keeps its last
// known contents but is no longer reachable from the document.
type Block struct {
	text     string
	index    int
	position int
	tokens   []lex.Token
	state    lex.Frozen
	dirty    bool
}

// Text returns the text of the block, without the trailing newline.
func (b *Block) Text() string { return b.text }

// Index returns the line number of the block, starting at 0.
func (b *Block) Index() int { return b.index }

// Position returns the document offset of the start of the block.
func (b *Block) Position() int { return b.position }

// Document is a plain text LilyPond source document that keeps its
// tokens up to date across edits.
type Document struct {
	blocks  []*Block
	mode    string // explicit mode, or "" for automatic
	guessed string // last guessed mode, used when mode is ""

	cursors map[*Cursor]struct{}
	edits   []edit // buffered by open transactions
	writing int    // transaction nesting depth

	// Filename can hold the name of the file the document was read
	// from. It is not interpreted by this package.
	Filename string

	// Modified is set when the document is changed and cleared by
	// SetText.
	Modified bool

	// relexed counts how many lines were lexed by the last edit.
	relexed int
}

// New creates a Document with the given text. An empty mode means the
// mode is guessed from the content, now and again after every edit.
func New(text, mode string) *Document {
	if !lex.KnownMode(mode) {
		mode = ""
	}
	d := &Document{
		mode:    mode,
		cursors: make(map[*Cursor]struct{}),
	}
	d.SetText(text)
	return d
}

// Load reads a document from a UTF-8 encoded file.
func Load(filename, mode string) (*Document, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("load document %s: %w", filename, ErrInvalidUTF8)
	}
	d := New(string(b), mode)
	d.Filename = filename
	return d, nil
}

// Copy returns an independent copy of the document. Cursors are not
// copied.
func (d *Document) Copy() *Document {
	c := New(d.Text(), d.mode)
	c.Filename = d.Filename
	c.Modified = d.Modified
	return c
}

// SetText replaces the whole document contents and clears Modified.
// Carriage returns are stripped; the document always uses bare
// newlines internally.
func (d *Document) SetText(text string) {
	text = strings.ReplaceAll(text, "\r", "")
	lines := strings.Split(text, "\n")
	d.blocks = make([]*Block, len(lines))
	pos := 0
	for i, t := range lines {
		d.blocks[i] = &Block{text: t, index: i, position: pos}
		pos += len(t) + 1
	}
	if d.mode == "" {
		d.guessed = modeguess.Guess(text)
	}
	d.lexAll()
	d.Modified = false
}

// Text returns the document contents as a single string.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.text)
	}
	return sb.String()
}

// SetMode sets the lexer mode. An unknown or empty mode means the mode
// is determined automatically from the content. The document is
// re-lexed if the effective mode changes.
func (d *Document) SetMode(mode string) {
	if !lex.KnownMode(mode) {
		mode = ""
	}
	if mode == d.mode {
		return
	}
	old := d.mode
	d.mode = mode
	if mode == "" {
		d.guessed = modeguess.Guess(d.Text())
		if d.guessed == old {
			return
		}
	} else if old == "" && mode == d.guessed {
		return
	}
	d.lexAll()
}

// Mode returns the explicitly set mode, or the empty string when the
// mode is determined automatically.
func (d *Document) Mode() string { return d.mode }

// EffectiveMode returns the mode the document is currently lexed in.
func (d *Document) EffectiveMode() string {
	if d.mode != "" {
		return d.mode
	}
	return d.guessed
}

// Len returns the number of blocks. A document has at least one block,
// even when empty.
func (d *Document) Len() int { return len(d.blocks) }

// Block returns the block at the given line index, or nil when the
// index is out of range.
func (d *Document) Block(index int) *Block {
	if index < 0 || index >= len(d.blocks) {
		return nil
	}
	return d.blocks[index]
}

// Size returns the number of bytes in the document.
func (d *Document) Size() int {
	last := d.blocks[len(d.blocks)-1]
	return last.position + len(last.text)
}

// BlockAt returns the block containing the given document offset, or
// nil when the offset is out of range. An offset at the very end of
// the document returns the last block.
func (d *Document) BlockAt(position int) *Block {
	if position < 0 || position > d.Size() {
		return nil
	}
	return d.blockAt(position)
}

// blockAt is BlockAt without the range check. During applyEdits the
// positions of freshly inserted blocks are parked at math.MaxInt so
// the binary search keeps working before the renumbering pass.
func (d *Document) blockAt(position int) *Block {
	lo, hi := 0, len(d.blocks)
	for lo < hi {
		mid := (lo + hi) / 2
		if position < d.blocks[mid].position {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return d.blocks[lo-1]
}

// NextBlock returns the block after b, or nil at the end of the document.
func (d *Document) NextBlock(b *Block) *Block {
	if b == nil || b.index+1 >= len(d.blocks) {
		return nil
	}
	return d.blocks[b.index+1]
}

// PreviousBlock returns the block before b, or nil at the start of
// the document.
func (d *Document) PreviousBlock(b *Block) *Block {
	if b == nil || b.index == 0 {
		return nil
	}
	return d.blocks[b.index-1]
}

// BlocksForward iterates over the blocks from b to the end of the
// document.
func (d *Document) BlocksForward(b *Block) iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for ; b != nil; b = d.NextBlock(b) {
			if !yield(b) {
				return
			}
		}
	}
}

// BlocksBackward iterates over the blocks from b back to the start of
// the document.
func (d *Document) BlocksBackward(b *Block) iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for ; b != nil; b = d.PreviousBlock(b) {
			if !yield(b) {
				return
			}
		}
	}
}

// IsBlank reports whether the block is empty or contains only whitespace.
func (d *Document) IsBlank(b *Block) bool {
	return strings.TrimSpace(b.text) == ""
}

// Tokens returns the cached tokens of the block. Token positions are
// byte offsets within the block. The returned slice is shared; do not
// modify it.
func (d *Document) Tokens(b *Block) []lex.Token {
	return b.tokens
}

// TokensWithPosition returns a copy of the block's tokens with their
// positions translated to document offsets.
func (d *Document) TokensWithPosition(b *Block) []lex.Token {
	ts := make([]lex.Token, len(b.tokens))
	for i, t := range b.tokens {
		t.Pos += b.position
		ts[i] = t
	}
	return ts
}

// InitialState returns the lexer state at the start of the document.
func (d *Document) InitialState() *lex.State {
	return lex.NewState(d.EffectiveMode())
}

// State returns the lexer state at the start of the block.
func (d *Document) State(b *Block) *lex.State {
	if prev := d.PreviousBlock(b); prev != nil {
		return d.StateEnd(prev)
	}
	return d.InitialState()
}

// StateEnd returns the lexer state at the end of the block.
func (d *Document) StateEnd(b *Block) *lex.State {
	return b.state.Thaw()
}

// lexAll lexes the whole document from scratch.
func (d *Document) lexAll() {
	state := d.InitialState()
	for _, b := range d.blocks {
		b.tokens = state.Tokens(b.text)
		b.state = state.Freeze()
		b.dirty = false
	}
	d.relexed += len(d.blocks)
}

// applyEdits applies a sorted, non-overlapping list of edits to the
// block list and re-lexes the affected lines. The edits must be
// sorted by start offset, descending.
func (d *Document) applyEdits(edits []edit) {
	var first *Block
	for _, e := range edits {
		s := d.blockAt(e.start)
		if e.end == NoEnd {
			s.text = s.text[:e.start-s.position]
			d.blocks = d.blocks[:s.index+1]
		} else {
			eb := d.blockAt(e.end)
			s.text = s.text[:e.start-s.position] + eb.text[e.end-eb.position:]
			d.blocks = append(d.blocks[:s.index+1], d.blocks[eb.index+1:]...)
		}
		if e.text != "" {
			lines := strings.Split(e.text, "\n")
			lines[len(lines)-1] += s.text[e.start-s.position:]
			s.text = s.text[:e.start-s.position] + lines[0]
			if len(lines) > 1 {
				nb := make([]*Block, 0, len(d.blocks)+len(lines)-1)
				nb = append(nb, d.blocks[:s.index+1]...)
				for _, t := range lines[1:] {
					nb = append(nb, &Block{text: t, index: -1, position: math.MaxInt, dirty: true})
				}
				d.blocks = append(nb, d.blocks[s.index+1:]...)
			}
		}
		s.dirty = true
		first = s
	}
	if first == nil {
		return
	}

	// renumber and reposition from the first changed block on
	pos := first.position
	for i := first.index; i < len(d.blocks); i++ {
		b := d.blocks[i]
		b.index = i
		b.position = pos
		pos += len(b.text) + 1
	}

	d.Modified = true

	// an edit can flip the guessed mode, which invalidates everything
	if d.mode == "" {
		if mode := modeguess.Guess(d.Text()); mode != d.guessed {
			d.guessed = mode
			d.lexAll()
			return
		}
	}

	// re-lex from the first changed block until the state settles
	state := d.State(first)
	reparse := false
	for i := first.index; i < len(d.blocks); i++ {
		b := d.blocks[i]
		if reparse || b.dirty {
			b.tokens = state.Tokens(b.text)
			frozen := state.Freeze()
			reparse = b.state != frozen
			b.state = frozen
			b.dirty = false
			d.relexed++
		} else {
			state = b.state.Thaw()
		}
	}
}
