// Package rhythm edits the durations of the music in a selected range:
// doubling, halving, dotting, making them implicit or explicit, or
// applying a given list of durations.
//
// All functions take a document.Cursor with the selected range and
// apply their edits in a single transaction.
package rhythm

import (
	"iter"
	"slices"
	"strings"

	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/lex"
)

// durations is the note length ladder used by Double and Halve.
var durations = []string{
	`\maxima`, `\longa`, `\breve`,
	"1", "2", "4", "8", "16", "32", "64", "128", "256", "512", "1024", "2048",
}

// Item describes a rest, skip or pitch that carries, or could carry, a
// duration. All positions are document offsets.
type Item struct {
	Tokens    []lex.Token // the tokens of the item, without the durations
	DurTokens []lex.Token // the duration tokens of the item
	MayRemove bool        // whether the duration may be removed
	InsertPos int         // where a duration could be inserted
	Pos       int         // position of the first token
	End       int         // end of the last token
}

// Options controls which music items Items yields.
type Options struct {
	// Command also yields pitches in \relative, \transpose and the like.
	Command bool
	// Chord also yields pitches inside chords.
	Chord bool
	// Partial selects how items straddling the range boundaries are
	// treated.
	Partial document.Partiality
}

var defaultOptions = Options{Partial: document.Inside}

// Items yields the music items in the cursor's range.
func Items(c *document.Cursor, o Options) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		s := document.NewStateSource(c, o.Partial, true)
		t, ok := s.Next()
		for ok {
			if skipParser(s.State().Parser(), o) {
				t, ok = s.Next()
				continue
			}
			if t.Kind == lex.Command && t.Text == `\tuplet` {
				// the fraction and an optional duration belong to the
				// \tuplet command, not to the following music
				l := []lex.Token{t}
				for t, ok = s.Next(); ok; t, ok = s.Next() {
					if t.Is(lex.ClassDuration) {
						l = append(l, t)
						for t, ok = s.Next(); ok; t, ok = s.Next() {
							if !t.Is(lex.ClassDuration) {
								break
							}
							l = append(l, t)
						}
						break
					} else if t.Is(lex.ClassNumeric) {
						l = append(l, t)
					} else if !t.Is(lex.ClassSpace) {
						break
					}
				}
				if !yield(mkItem(l)) {
					return
				}
			}
			lengthSeen := false
			for ok && isStart(t) {
				l := []lex.Token{t}
				if t.Kind == lex.Length {
					lengthSeen = true
				}
				exhausted := false
				for {
					t, ok = s.Next()
					if !ok {
						if !yield(mkItem(l)) {
							return
						}
						exhausted = true
						break
					}
					if t.Kind == lex.Length {
						if lengthSeen {
							if !yield(mkItem(l)) {
								return
							}
							lengthSeen = false
							break
						}
						lengthSeen = true
					} else if t.Is(lex.ClassSpace) {
						continue
					} else if t.Kind == lex.ChordSeparator {
						// hide the bass note in chordmode, e.g. the g in c/g
						for t, ok = s.Next(); ok; t, ok = s.Next() {
							if !t.Is(lex.ClassSpace) && t.Kind != lex.Note {
								break
							}
						}
						continue
					} else if !isStay(t) {
						if !yield(mkItem(l)) {
							return
						}
						lengthSeen = false
						break
					}
					l = append(l, t)
				}
				if exhausted {
					return
				}
			}
			if !ok {
				return
			}
			t, ok = s.Next()
		}
	}
}

func skipParser(parser string, o Options) bool {
	if !o.Command && parser == "pitchcommand" {
		return true
	}
	if !o.Chord && parser == "chord" {
		return true
	}
	return false
}

func isStart(t lex.Token) bool {
	switch t.Kind {
	case lex.Rest, lex.Skip, lex.Note, lex.ChordEnd, lex.Octave,
		lex.OctaveCheck, lex.AccidentalReminder, lex.AccidentalCautionary:
		return true
	case lex.Command:
		return t.Text == `\tempo` || t.Text == `\partial`
	}
	return t.Is(lex.ClassDuration)
}

func isStay(t lex.Token) bool {
	switch t.Kind {
	case lex.Octave, lex.OctaveCheck, lex.AccidentalReminder,
		lex.AccidentalCautionary, lex.Tie:
		return true
	}
	return t.Is(lex.ClassDuration)
}

func mkItem(l []lex.Token) Item {
	it := Item{
		Pos:       l[0].Pos,
		End:       l[len(l)-1].End(),
		MayRemove: true,
	}
	for _, t := range l {
		if t.Is(lex.ClassDuration) {
			it.DurTokens = append(it.DurTokens, t)
		} else {
			it.Tokens = append(it.Tokens, t)
			switch t.Text {
			case `\skip`, `\tempo`, `\tuplet`, `\partial`:
				it.MayRemove = false
			}
		}
	}
	if len(it.DurTokens) > 0 {
		it.InsertPos = it.DurTokens[0].Pos
	} else {
		// insert before any ties
		last := it.Tokens[0]
		for i := len(it.Tokens) - 1; i >= 0; i-- {
			if it.Tokens[i].Kind != lex.Tie {
				last = it.Tokens[i]
				break
			}
		}
		it.InsertPos = last.End()
	}
	return it
}

func collect(c *document.Cursor) []Item {
	var its []Item
	for it := range Items(c, defaultOptions) {
		its = append(its, it)
	}
	return its
}

// hasCommand reports whether the item belongs to a command whose
// duration is not a note length, like \tempo 4 = 60.
func hasCommand(it Item) bool {
	for _, t := range it.Tokens {
		switch t.Text {
		case `\tempo`, `\tuplet`, `\partial`:
			return true
		}
	}
	return false
}

func joinTexts(ts []lex.Token) string {
	var sb strings.Builder
	for _, t := range ts {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func sameTexts(a, b []lex.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}

// PrecedingDuration returns the duration directly preceding the
// cursor, or nil.
func PrecedingDuration(c *document.Cursor) []lex.Token {
	r := document.RunnerAt(c, false, true)
	for t, ok := r.Previous(); ok; t, ok = r.Previous() {
		if !t.Is(lex.ClassDuration) {
			continue
		}
		l := []lex.Token{t}
		for t, ok = r.Previous(); ok; t, ok = r.Previous() {
			if t.Is(lex.ClassDuration) {
				l = append(l, t)
			} else if !t.Is(lex.ClassSpace) {
				break
			}
		}
		slices.Reverse(l)
		return l
	}
	return nil
}

// Double doubles all durations in the cursor's range.
func Double(c *document.Cursor) error {
	return shiftLengths(c, -1)
}

// Halve halves all durations in the cursor's range.
func Halve(c *document.Cursor) error {
	return shiftLengths(c, 1)
}

func shiftLengths(c *document.Cursor, by int) error {
	tx := c.Document().Begin()
	for it := range Items(c, defaultOptions) {
		for _, t := range it.DurTokens {
			if t.Kind != lex.Length {
				continue
			}
			if i := slices.Index(durations, t.Text); i >= 0 {
				if j := i + by; j >= 0 && j < len(durations) {
					tx.Replace(t.Pos, t.End(), durations[j])
				}
			}
			break
		}
	}
	return tx.Commit()
}

// Dot adds a dot to all durations in the cursor's range.
func Dot(c *document.Cursor) error {
	tx := c.Document().Begin()
	for it := range Items(c, defaultOptions) {
		for _, t := range it.DurTokens {
			if t.Kind == lex.Length {
				tx.Insert(t.End(), ".")
				break
			}
		}
	}
	return tx.Commit()
}

// Undot removes one dot from all durations in the cursor's range.
func Undot(c *document.Cursor) error {
	tx := c.Document().Begin()
	for it := range Items(c, defaultOptions) {
		for _, t := range it.DurTokens {
			if t.Kind == lex.Dot {
				tx.Delete(t.Pos, t.End())
				break
			}
		}
	}
	return tx.Commit()
}

// RemoveScaling removes the scaling (like *3, *1/3) from all durations
// in the cursor's range.
func RemoveScaling(c *document.Cursor) error {
	return removeScaling(c, func(lex.Token) bool { return true })
}

// RemoveFractionScaling removes the scalings containing a fraction
// (like *1/3) from all durations in the cursor's range.
func RemoveFractionScaling(c *document.Cursor) error {
	return removeScaling(c, func(t lex.Token) bool {
		return strings.Contains(t.Text, "/")
	})
}

func removeScaling(c *document.Cursor, want func(lex.Token) bool) error {
	tx := c.Document().Begin()
	for it := range Items(c, defaultOptions) {
		for _, t := range it.DurTokens {
			if t.Kind == lex.Scaling && want(t) {
				tx.Delete(t.Pos, t.End())
			}
		}
	}
	return tx.Commit()
}

// Remove removes all durations in the cursor's range.
func Remove(c *document.Cursor) error {
	tx := c.Document().Begin()
	for it := range Items(c, defaultOptions) {
		if len(it.DurTokens) > 0 && it.MayRemove {
			tx.Delete(it.DurTokens[0].Pos, it.DurTokens[len(it.DurTokens)-1].End())
		}
	}
	return tx.Commit()
}

// Implicit removes reoccurring durations.
func Implicit(c *document.Cursor) error {
	its := collect(c)
	if len(its) == 0 {
		return nil
	}
	var prev []lex.Token
	if !hasCommand(its[0]) {
		prev = its[0].DurTokens
		if len(prev) == 0 {
			prev = PrecedingDuration(c)
		}
	}
	tx := c.Document().Begin()
	for _, it := range its[1:] {
		if hasCommand(it) {
			continue
		}
		if len(it.DurTokens) > 0 {
			if sameTexts(it.DurTokens, prev) && it.MayRemove {
				tx.Delete(it.DurTokens[0].Pos, it.DurTokens[len(it.DurTokens)-1].End())
			}
			prev = it.DurTokens
		}
	}
	return tx.Commit()
}

// ImplicitPerLine removes reoccurring durations, but the first music
// item on every line always gets one.
func ImplicitPerLine(c *document.Cursor) error {
	its := collect(c)
	if len(its) == 0 {
		return nil
	}
	d := c.Document()
	var prev []lex.Token
	if !hasCommand(its[0]) {
		prev = its[0].DurTokens
		if len(prev) == 0 {
			prev = PrecedingDuration(c)
		}
	}
	var prevBlock *document.Block
	if len(prev) > 0 {
		prevBlock = d.BlockAt(prev[0].Pos)
	}
	tx := d.Begin()
	for _, it := range its[1:] {
		if hasCommand(it) {
			continue
		}
		pos := it.Tokens[0].Pos
		if len(it.DurTokens) > 0 {
			pos = it.DurTokens[0].Pos
		}
		block := d.BlockAt(pos)
		if block != prevBlock {
			if len(it.DurTokens) == 0 {
				tx.Insert(it.InsertPos, joinTexts(prev))
			} else {
				prev = it.DurTokens
			}
			prevBlock = block
		} else if len(it.DurTokens) > 0 {
			if sameTexts(it.DurTokens, prev) && it.MayRemove {
				tx.Delete(it.DurTokens[0].Pos, it.DurTokens[len(it.DurTokens)-1].End())
			}
			prev = it.DurTokens
		}
	}
	return tx.Commit()
}

// Explicit writes out all implied durations.
func Explicit(c *document.Cursor) error {
	its := collect(c)
	if len(its) == 0 {
		return nil
	}
	prev := its[0].DurTokens
	if len(prev) == 0 {
		prev = PrecedingDuration(c)
	}
	tx := c.Document().Begin()
	for _, it := range its[1:] {
		if hasCommand(it) {
			continue
		}
		if len(it.DurTokens) > 0 {
			prev = it.DurTokens
		} else {
			tx.Insert(it.InsertPos, joinTexts(prev))
		}
	}
	return tx.Commit()
}

// Overwrite applies a list of durations like ["4", "8", "", "16."] to
// the music in the cursor's range, cycling through the list. A
// duration equal to the previous one is written as an empty string.
func Overwrite(c *document.Cursor, durs []string) error {
	if len(durs) == 0 {
		return nil
	}
	tx := c.Document().Begin()
	i := 0
	old := ""
	started := false
	for it := range Items(c, defaultOptions) {
		cur := durs[i%len(durs)]
		i++
		text := cur
		if started && cur == old {
			text = ""
		}
		started = true
		old = cur
		end := it.InsertPos
		if len(it.DurTokens) > 0 {
			end = it.DurTokens[len(it.DurTokens)-1].End()
		}
		tx.Replace(it.InsertPos, end, text)
	}
	return tx.Commit()
}

// Extract returns the durations from the cursor's range as strings,
// including ties. When the first item has no duration, the preceding
// duration is used, or "4" as a last resort.
func Extract(c *document.Cursor) []string {
	var durs [][]lex.Token
	for it := range Items(c, defaultOptions) {
		tokens := slices.Clone(it.DurTokens)
		for _, t := range it.Tokens {
			if t.Kind == lex.Tie {
				tokens = append(tokens, t)
			}
		}
		durs = append(durs, tokens)
	}
	if len(durs) > 0 && len(durs[0]) == 0 {
		if p := PrecedingDuration(c); len(p) > 0 {
			durs[0] = p
		} else {
			durs[0] = []lex.Token{{Text: "4"}}
		}
	}
	out := make([]string, len(durs))
	for i, ts := range durs {
		out[i] = joinTexts(ts)
	}
	return out
}
