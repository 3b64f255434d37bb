// Package barcheck removes bar checks from selected music.
package barcheck

import (
	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/lex"
)

// Remove deletes the bar checks in the cursor's range. A pipe symbol
// and one adjacent space are removed together; a pipe symbol between
// two words is replaced with a space to keep them apart.
func Remove(c *document.Cursor) error {
	s := document.NewSource(c, document.Inside, true)
	tx := c.Document().Begin()
	var prv, cur lex.Token
	var hasPrv, hasCur bool
	for {
		nxt, ok := s.Next()
		if hasCur && cur.Kind == lex.PipeSymbol {
			switch {
			case hasPrv && prv.Is(lex.ClassSpace):
				if ok && nxt.Text == "\n" {
					tx.Delete(prv.Pos, cur.End())
				} else if ok && nxt.Is(lex.ClassSpace) {
					tx.Delete(cur.Pos, nxt.End())
				} else {
					tx.Delete(cur.Pos, cur.End())
				}
			case ok && nxt.Is(lex.ClassSpace):
				tx.Delete(cur.Pos, cur.End())
			default:
				tx.Replace(cur.Pos, cur.End(), " ")
			}
		}
		prv, hasPrv = cur, hasCur
		cur, hasCur = nxt, ok
		if !ok {
			break
		}
	}
	return tx.Commit()
}
