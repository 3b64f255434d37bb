package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NoEnd marks an edit or cursor range as extending to the end of the
// document.
const NoEnd = -1

// ErrOverlappingEdits is returned by Commit when two edits in the same
// transaction overlap.
var ErrOverlappingEdits = errors.New("overlapping edits")

// ErrEditOutOfRange is returned by Commit when an edit's offsets fall
// outside the document.
var ErrEditOutOfRange = errors.New("edit out of range")

// edit is a single buffered replacement. An end of NoEnd removes
// everything up to the end of the document.
type edit struct {
	start int
	end   int
	text  string
}

// Transaction collects edits so that a group of replacements can be
// prepared against the current text and applied in one go. Offsets of
// all edits refer to the document as it was when the transaction
// began; the edits may not overlap. Transactions nest: the edits are
// applied when the outermost transaction is committed.
type Transaction struct {
	d    *Document
	done bool
}

// Begin starts a transaction.
func (d *Document) Begin() *Transaction {
	d.writing++
	return &Transaction{d: d}
}

// Replace replaces the text between start and end. Use NoEnd to
// replace to the end of the document. When start > end the two are
// swapped. Carriage returns in the replacement text are dropped.
func (t *Transaction) Replace(start, end int, text string) {
	if end != NoEnd && start > end {
		start, end = end, start
	}
	text = strings.ReplaceAll(text, "\r", "")
	if text == "" && start == end {
		return
	}
	t.d.edits = append(t.d.edits, edit{start: start, end: end, text: text})
}

// Insert inserts text at the given position.
func (t *Transaction) Insert(pos int, text string) {
	t.Replace(pos, pos, text)
}

// Delete removes the text between start and end.
func (t *Transaction) Delete(start, end int) {
	t.Replace(start, end, "")
}

// Commit applies the buffered edits when this is the outermost
// transaction. Cursors registered on the document are adjusted and the
// affected lines are re-lexed. When the edits overlap, nothing is
// applied and ErrOverlappingEdits is returned.
func (t *Transaction) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	d := t.d
	if d.writing > 1 {
		d.writing--
		return nil
	}
	d.writing = 0
	if len(d.edits) == 0 {
		return nil
	}
	edits := d.edits
	d.edits = nil
	sortEdits(edits)
	if err := checkEdits(d, edits); err != nil {
		return err
	}
	d.updateCursors(edits)
	d.applyEdits(edits)
	return nil
}

// Rollback discards the buffered edits of the whole transaction group.
func (t *Transaction) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.d.writing = 0
	t.d.edits = nil
}

// Replace performs a single replacement outside a transaction. It is
// applied immediately.
func (d *Document) Replace(start, end int, text string) error {
	tx := d.Begin()
	tx.Replace(start, end, text)
	return tx.Commit()
}

// Insert inserts text at the given position, outside a transaction.
func (d *Document) Insert(pos int, text string) error {
	return d.Replace(pos, pos, text)
}

// Delete removes the text between start and end, outside a transaction.
func (d *Document) Delete(start, end int) error {
	return d.Replace(start, end, "")
}

// sortEdits orders edits by start descending, so they can be applied
// without invalidating the offsets of the edits still to come. Edits
// with the same start are ordered unbounded first, then by end
// descending.
func sortEdits(edits []edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i], edits[j]
		if a.start != b.start {
			return a.start > b.start
		}
		if (a.end == NoEnd) != (b.end == NoEnd) {
			return a.end == NoEnd
		}
		return a.end > b.end
	})
}

// checkEdits verifies that the sorted edits stay inside the document
// and do not overlap.
func checkEdits(d *Document, edits []edit) error {
	pos := d.Size()
	for _, e := range edits {
		end := e.end
		if end == NoEnd {
			end = d.Size()
		}
		if e.start < 0 || e.start > d.Size() || end > d.Size() {
			return fmt.Errorf("%w: %d-%d in document of size %d", ErrEditOutOfRange, e.start, e.end, d.Size())
		}
		if end > pos {
			text := e.text
			if len(text) > 12 {
				text = text[:10] + "..."
			}
			return fmt.Errorf("%w: %d-%d: %q", ErrOverlappingEdits, e.start, e.end, text)
		}
		pos = e.start
	}
	return nil
}

// updateCursors shifts the registered cursors so they keep pointing at
// the same text across the sorted edits.
func (d *Document) updateCursors(edits []edit) {
	for _, e := range edits {
		for c := range d.cursors {
			if c.Start > e.start {
				if e.end == NoEnd || e.end >= c.Start {
					c.Start = e.start
				} else {
					c.Start += e.start + len(e.text) - e.end
				}
			}
			if c.End != NoEnd && c.End >= e.start {
				if e.end == NoEnd || e.end >= c.End {
					c.End = e.start + len(e.text)
				} else {
					c.End += e.start + len(e.text) - e.end
				}
			}
		}
	}
}
