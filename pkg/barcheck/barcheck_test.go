package barcheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/pkg/barcheck"
	"github.com/yaklabco/lydoc/pkg/document"
)

func removed(t *testing.T, text string, start, end int) string {
	t.Helper()
	d := document.New(text, "lilypond")
	c := document.NewCursor(d, start, end)
	require.NoError(t, barcheck.Remove(c))
	return d.Text()
}

func TestRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"between spaces", "{ c4 | d4 }", "{ c4 d4 }"},
		{"before line end", "{ c4 d4 |\ne4 }", "{ c4 d4\ne4 }"},
		{"no surrounding space", "{ c|d }", "{ c d }"},
		{"space only after", "{ c| d }", "{ c d }"},
		{"at end of text", "{ c4 |", "{ c4 "},
		{"several in a row", "{ c | d | e |\nf }", "{ c d e\nf }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, removed(t, tt.text, 0, document.NoEnd))
		})
	}
}

func TestRemoveOnlyInRange(t *testing.T) {
	t.Parallel()
	got := removed(t, "{ c | d | e }", 0, 7)
	assert.Equal(t, "{ c d | e }", got)
}
