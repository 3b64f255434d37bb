package document

import (
	"iter"
	"strings"
)

// Cursor defines a range (selection) in a Document.
//
// Start and End may be changed at will; End may be NoEnd, denoting the
// end of the document. A registered cursor is adjusted when the
// document changes: text inserted at the start position leaves Start
// in place, while text inserted at the end position moves End along
// with it.
//
//	d := document.New("hi there, folks!", "")
//	c := document.NewCursor(d, 8, 8)
//	d.Insert(8, "new text")
//	// c.Start, c.End == 8, 16
//
// Release the cursor when it is no longer needed, so the document
// stops tracking it.
type Cursor struct {
	d     *Document
	Start int
	End   int
}

// NewCursor creates a cursor on the given range and registers it with
// the document. Pass NoEnd to let the cursor extend to the end of the
// document.
func NewCursor(d *Document, start, end int) *Cursor {
	c := &Cursor{d: d, Start: start, End: end}
	d.cursors[c] = struct{}{}
	return c
}

// Release unregisters the cursor; it is no longer adjusted on edits.
func (c *Cursor) Release() {
	delete(c.d.cursors, c)
}

// Document returns the document the cursor points into.
func (c *Cursor) Document() *Document { return c.d }

// StartBlock returns the block containing Start.
func (c *Cursor) StartBlock() *Block {
	return c.d.BlockAt(c.Start)
}

// EndBlock returns the block containing End, or the last block when
// End is NoEnd.
func (c *Cursor) EndBlock() *Block {
	if c.End == NoEnd {
		return c.d.Block(c.d.Len() - 1)
	}
	return c.d.BlockAt(c.End)
}

// Blocks iterates over the selected blocks. When the selection spans
// multiple blocks and ends exactly at the start of a block, that last
// block is not included.
func (c *Cursor) Blocks() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		if c.End == c.Start {
			yield(c.StartBlock())
			return
		}
		for b := c.StartBlock(); b != nil; b = c.d.NextBlock(b) {
			if c.End != NoEnd && b.position >= c.End {
				return
			}
			if !yield(b) {
				return
			}
		}
	}
}

// Text returns the selected text.
func (c *Cursor) Text() string {
	if c.End == NoEnd {
		return c.d.Text()[c.Start:]
	}
	return c.d.Text()[c.Start:c.End]
}

// TextBefore returns the text before the cursor in its start block.
func (c *Cursor) TextBefore() string {
	b := c.StartBlock()
	return b.text[:c.Start-b.position]
}

// TextAfter returns the text after the cursor in its end block.
func (c *Cursor) TextAfter() string {
	if c.End == NoEnd {
		return ""
	}
	b := c.EndBlock()
	return b.text[c.End-b.position:]
}

// HasSelection reports whether the cursor selects any text.
func (c *Cursor) HasSelection() bool {
	end := c.End
	if end == NoEnd {
		end = c.d.Size()
	}
	return c.Start != end
}

// SelectAll selects the whole document.
func (c *Cursor) SelectAll() {
	c.Start, c.End = 0, NoEnd
}

// SelectEndOfBlock moves End to the end of its block.
func (c *Cursor) SelectEndOfBlock() {
	if c.End != NoEnd {
		b := c.EndBlock()
		c.End = b.position + len(b.text)
	}
}

// SelectStartOfBlock moves Start to the start of its block.
func (c *Cursor) SelectStartOfBlock() {
	c.Start = c.StartBlock().position
}

// LStrip moves Start to the right past any of the given characters,
// like strings.TrimLeft. An empty cutset strips whitespace.
func (c *Cursor) LStrip(cutset string) {
	if c.HasSelection() {
		text := c.Text()
		c.Start += len(text) - len(trimLeft(text, cutset))
	}
}

// RStrip moves End to the left past any of the given characters, like
// strings.TrimRight. An empty cutset strips whitespace.
func (c *Cursor) RStrip(cutset string) {
	if c.HasSelection() {
		text := c.Text()
		end := c.End
		if end == NoEnd {
			end = c.d.Size()
		}
		end -= len(text) - len(trimRight(text, cutset))
		if end < c.d.Size() {
			c.End = end
		}
	}
}

// Strip shrinks the selection on both sides, like strings.Trim.
func (c *Cursor) Strip(cutset string) {
	c.RStrip(cutset)
	c.LStrip(cutset)
}

func trimLeft(s, cutset string) string {
	if cutset == "" {
		return strings.TrimLeftFunc(s, isSpaceRune)
	}
	return strings.TrimLeft(s, cutset)
}

func trimRight(s, cutset string) string {
	if cutset == "" {
		return strings.TrimRightFunc(s, isSpaceRune)
	}
	return strings.TrimRight(s, cutset)
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\v' || r == '\r'
}
