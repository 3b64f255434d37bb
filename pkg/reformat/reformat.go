// Package reformat improves the readability of LilyPond source without
// changing its musical meaning. Only whitespace is touched.
package reformat

import (
	"strings"

	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/indent"
	"github.com/yaklabco/lydoc/pkg/lex"
)

// BreakIndenters adds newlines around braces where needed. Stuff after
// a { or << that is not closed on the same line is put on a new line,
// and a } or >> with stuff before it is put on a new line. The result
// needs a pass of the indenter to look right again.
func BreakIndenters(c *document.Cursor) error {
	d := c.Document()
	tx := d.Begin()
	for b := range c.Blocks() {
		var denters []int
		tokens := d.Tokens(b)
		nonspace := -1
		for i, t := range tokens {
			if t.Is(lex.ClassIndent) && (t.Text == "{" || t.Text == "<<") {
				denters = append(denters, i)
			} else if t.Is(lex.ClassDedent) && (t.Text == "}" || t.Text == ">>") {
				if len(denters) > 0 {
					denters = denters[:len(denters)-1]
				} else if nonspace != -1 {
					tx.Insert(b.Position()+t.Pos, "\n")
				}
			}
			if !t.Is(lex.ClassSpace) {
				nonspace = i
			}
		}
		for _, i := range denters {
			if i < nonspace {
				tx.Insert(b.Position()+tokens[i].End(), "\n")
			}
		}
	}
	return tx.Commit()
}

// MoveLongComments moves line comments starting with three or more
// comment characters to column 0.
func MoveLongComments(c *document.Cursor) error {
	d := c.Document()
	tx := d.Begin()
	for b := range c.Blocks() {
		tokens := d.Tokens(b)
		if len(tokens) == 2 &&
			tokens[0].Is(lex.ClassSpace) &&
			(tokens[1].Kind == lex.LineComment || tokens[1].Kind == lex.SchemeLineComment) &&
			(strings.HasPrefix(tokens[1].Text, "%%%") || strings.HasPrefix(tokens[1].Text, ";;;")) {
			tx.Delete(b.Position(), b.Position()+tokens[1].Pos)
		}
	}
	return tx.Commit()
}

// RemoveTrailingWhitespace removes whitespace at the end of all lines
// in the cursor's range. Trailing whitespace inside strings is kept.
func RemoveTrailingWhitespace(c *document.Cursor) error {
	d := c.Document()
	tx := d.Begin()
	for b := range c.Blocks() {
		tokens := d.Tokens(b)
		if len(tokens) == 0 {
			continue
		}
		t := tokens[len(tokens)-1]
		end := b.Position() + t.End()
		if t.Is(lex.ClassSpace) {
			tx.Delete(end-len(t.Text), end)
		} else if !t.Is(lex.ClassString) {
			offset := len(t.Text) - len(strings.TrimRight(t.Text, " \t"))
			if offset > 0 {
				tx.Delete(end-offset, end)
			}
		}
	}
	return tx.Commit()
}

// Reformat is a do-it-all function improving the LilyPond source
// formatting: braces are broken onto their own lines, everything is
// re-indented and long comments and trailing whitespace are cleaned up.
func Reformat(c *document.Cursor, in *indent.Indenter) error {
	if err := BreakIndenters(c); err != nil {
		return err
	}
	if err := in.Indent(c, false); err != nil {
		return err
	}
	if err := MoveLongComments(c); err != nil {
		return err
	}
	return RemoveTrailingWhitespace(c)
}
