// Package indent computes and applies the indentation of LilyPond
// source, following the bracket structure of the music and the Scheme
// indentation conventions of GNU Emacs.
package indent

import (
	"strings"

	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/lex"
)

// Indenter indents the lines of a document.
type Indenter struct {
	// Width is the number of spaces per indent level.
	Width int
	// Tabs indents with tabs instead of spaces.
	Tabs bool
}

// New returns an Indenter with the default width of two spaces.
func New() *Indenter {
	return &Indenter{Width: 2}
}

func (in *Indenter) width() int {
	if in.Width > 0 {
		return in.Width
	}
	return 2
}

func (in *Indenter) indentString() string {
	if in.Tabs {
		return "\t"
	}
	return strings.Repeat(" ", in.width())
}

// Indent re-indents all lines in the cursor's range. When
// indentBlankLines is set, the indent of blank lines is enlarged when
// necessary; otherwise a blank line keeps an indent that is shorter
// than the computed one.
func (in *Indenter) Indent(c *document.Cursor, indentBlankLines bool) error {
	d := c.Document()
	indents := []string{""}
	startBlock, endBlock := c.StartBlock(), c.EndBlock()
	inRange := false
	var pline *line
	prevIndent := ""
	tx := d.Begin()
	for b := range d.BlocksForward(d.Block(0)) {
		if b == startBlock {
			inRange = true
		}
		ln := newLine(d, b)

		// open indents of the previous line
		if pline != nil {
			if pline.indentable {
				prevIndent = pline.indent
			}
			if len(pline.indenters) > 0 {
				current := indents[len(indents)-1]
				for _, it := range pline.indenters {
					ni := current
					if it.align > 0 {
						if pad := it.align - len(prevIndent); pad > 0 {
							ni += strings.Repeat(" ", pad)
						}
					}
					if it.indent {
						ni += in.indentString()
					}
					indents = append(indents, ni)
				}
			}
		}
		indents = shrink(indents, ln.dedentersStart)

		if ln.indentable {
			cur := indents[len(indents)-1]
			switch {
			case !inRange:
				// just track the indent the document already has
				indents[len(indents)-1] = ln.indent
			case !indentBlankLines && ln.isblank && strings.HasPrefix(cur, ln.indent):
				// don't make shorter indents longer on blank lines
			case ln.indent != cur:
				tx.Replace(b.Position(), b.Position()+len(ln.indent), cur)
			}
		}
		indents = shrink(indents, ln.dedentersEnd)

		if b == endBlock {
			break
		}
		pline = ln
	}
	return tx.Commit()
}

// shrink drops n indent levels, always keeping the base level.
func shrink(indents []string, n int) []string {
	keep := len(indents) - n
	if keep < 1 {
		keep = 1
	}
	return indents[:keep]
}

// Increase adds one level of indent to all lines in the cursor's range.
func (in *Indenter) Increase(c *document.Cursor) error {
	d := c.Document()
	indent := in.indentString()
	tx := d.Begin()
	for b := range c.Blocks() {
		ins := b.Position()
		tokens := d.Tokens(b)
		if len(tokens) > 0 && tokens[0].Is(lex.ClassSpace) {
			// insert after an existing tab indent, else after the space
			if tab := strings.LastIndexByte(tokens[0].Text, '\t'); tab != -1 {
				ins += tokens[0].Pos + tab + 1
			} else {
				ins += tokens[0].End()
			}
		}
		tx.Insert(ins, indent)
	}
	return tx.Commit()
}

// Decrease removes one level of indent from all lines in the cursor's
// range.
func (in *Indenter) Decrease(c *document.Cursor) error {
	d := c.Document()
	tx := d.Begin()
	for b := range c.Blocks() {
		tokens := d.Tokens(b)
		if len(tokens) == 0 {
			continue
		}
		var space string
		if t := tokens[0]; t.Is(lex.ClassSpace) {
			space = t.Text
		} else {
			space = t.Text[:len(t.Text)-len(strings.TrimLeft(t.Text, " \t"))]
		}
		pos := b.Position()
		end := pos + len(space)
		switch {
		case strings.ContainsRune(space, '\t') && strings.HasSuffix(space, " "):
			// strip alignment
			tx.Delete(pos+strings.LastIndexByte(space, '\t')+1, end)
		case strings.HasSuffix(space, "\t"):
			tx.Delete(end-1, end)
		case strings.HasSuffix(space, strings.Repeat(" ", in.width())):
			tx.Delete(end-in.width(), end)
		default:
			tx.Delete(pos, end)
		}
	}
	return tx.Commit()
}

// GetIndent returns the indent the block currently has. The second
// return value is false when the block is not indentable, e.g. when it
// is part of a multiline string.
func (in *Indenter) GetIndent(d *document.Document, b *document.Block) (string, bool) {
	ln := newLine(d, b)
	return ln.indent, ln.indentable
}

// ComputeIndent returns the indent the block should have, looking only
// at the lines above it: the indent of the line where the current
// level starts, plus alignment or one more level where applicable. The
// second return value is false when the block is not indentable.
func (in *Indenter) ComputeIndent(d *document.Document, b *document.Block) (string, bool) {
	ln := newLine(d, b)
	if !ln.indentable {
		return "", false
	}
	depth := ln.dedentersStart
	var it indenter
	var fb *document.Block
	var fline *line
	for pb := range d.BlocksBackward(d.PreviousBlock(b)) {
		l := newLine(d, pb)
		n := len(l.indenters)
		if depth >= 0 && depth < n {
			// the indent opening our level starts here
			it = l.indenters[n-depth-1]
			fb, fline = pb, l
			break
		}
		depth -= n
		depth += l.dedentersEnd
		if depth == 0 {
			// same level as this line
			fb, fline = pb, l
			break
		}
		depth += l.dedentersStart
	}
	if fline == nil {
		return "", true
	}

	i := fline.indent
	if !fline.indentable {
		i = ""
		for pb := range d.BlocksBackward(d.PreviousBlock(fb)) {
			if l := newLine(d, pb); l.indentable {
				i = l.indent
				break
			}
		}
	}
	if it.align > 0 {
		if pad := it.align - len(i); pad > 0 {
			i += strings.Repeat(" ", pad)
		}
	}
	if it.indent {
		i += in.indentString()
	}
	return i, true
}

// indenter describes one indent level opened on a line: the column the
// next line should be aligned to (0 for none) and whether a full
// indent level is added.
type indenter struct {
	align  int
	indent bool
}

// line gathers the indent-relevant facts about one block.
type line struct {
	indent         string
	indentable     bool
	isblank        bool
	dedentersStart int
	dedentersEnd   int
	indenters      []indenter
}

func newLine(d *document.Document, b *document.Block) *line {
	state := d.State(b)
	tokens := d.Tokens(b)
	l := &line{indentable: true}

	switch state.Parser() {
	case "string", "schemestring":
		l.indentable = false
	case "blockcomment", "schemeblockcomment":
		// only the closing line of a block comment may be indented,
		// and only when nothing but space precedes the end token
		switch {
		case len(tokens) > 0 && isBlockCommentEnd(tokens[0]):
			l.indent = ""
		case len(tokens) > 1 && isBlockCommentSpace(tokens[0]) && isBlockCommentEnd(tokens[1]):
			l.indent = tokens[0].Text
		default:
			l.indentable = false
		}
	default:
		if len(tokens) > 0 && tokens[0].Is(lex.ClassSpace) {
			l.indent = tokens[0].Text
			l.isblank = len(tokens) == 1
		} else {
			l.isblank = len(tokens) == 0
		}
	}

	// collect the indents opened on this line and anything following
	// them that the next line could align to
	findDedenters := true
	var open [][]lex.Token
	for _, t := range tokens {
		switch {
		case t.Is(lex.ClassIndent):
			findDedenters = false
			if len(open) > 0 {
				open[len(open)-1] = append(open[len(open)-1], t)
			}
			open = append(open, []lex.Token{t})
		case t.Is(lex.ClassDedent):
			if findDedenters && t.Kind != lex.SchemeCloseParen {
				l.dedentersStart++
			} else {
				findDedenters = false
				if len(open) > 0 {
					open = open[:len(open)-1]
				} else {
					l.dedentersEnd++
				}
			}
		case !t.Is(lex.ClassSpace):
			findDedenters = false
			if len(open) > 0 {
				open[len(open)-1] = append(open[len(open)-1], t)
			}
		}
	}

	for _, grp := range open {
		token, rest := grp[0], grp[1:]
		var it indenter
		if token.Kind == lex.SchemeOpenParen {
			switch {
			case len(rest) > 1 && !isSpecialSchemeWord(rest[0]):
				it.align = rest[1].Pos
			case len(rest) == 1 && !rest[0].Is(lex.ClassComment):
				it.align = rest[0].Pos
			default:
				it.align = token.Pos
				it.indent = true
			}
		} else if len(rest) > 0 && !rest[0].Is(lex.ClassComment) {
			it.align = rest[0].Pos
		} else {
			it.indent = true
		}
		l.indenters = append(l.indenters, it)
	}
	return l
}

func isBlockCommentEnd(t lex.Token) bool {
	return t.Kind == lex.BlockCommentEnd || t.Kind == lex.SchemeBlockCommentEnd
}

func isBlockCommentSpace(t lex.Token) bool {
	return t.Is(lex.ClassBlockComment) && t.Text != "" && strings.TrimSpace(t.Text) == ""
}

// Special Scheme words that take a body instead of aligned arguments.
// The list and the "def" prefix rule follow scheme.el from GNU Emacs,
// which sets the standard for Guile Scheme indentation.
var specialSchemeWords = map[string]struct{}{
	"begin": {}, "case": {}, "delay": {}, "do": {}, "lambda": {},
	"let": {}, "let*": {}, "letrec": {}, "let-values": {},
	"let*-values": {}, "sequence": {}, "let-syntax": {},
	"letrec-syntax": {}, "syntax-rules": {}, "syntax-case": {},
	"library": {}, "call-with-input-file": {}, "with-input-from-file": {},
	"with-input-from-port": {}, "call-with-output-file": {},
	"with-output-to-file": {}, "with-output-to-port": {},
	"call-with-values": {}, "dynamic-wind": {}, "when": {}, "unless": {},
	"letrec*": {}, "parameterize": {}, "define-values": {},
	"define-record-type": {}, "define-library": {}, "receive": {},
}

func isSpecialSchemeWord(t lex.Token) bool {
	if t.Kind != lex.SchemeWord && t.Kind != lex.SchemeKeyword {
		return false
	}
	if strings.HasPrefix(t.Text, "def") {
		return true
	}
	_, ok := specialSchemeWords[t.Text]
	return ok
}
