package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/internal/cli"
	"github.com/yaklabco/lydoc/pkg/runner"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandStructure(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	assert.Equal(t, "lydoc", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[strings.Fields(sub.Use)[0]] = true
	}
	for _, want := range []string{"tokens", "mode", "indent", "reformat", "rhythm", "barcheck", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestIndentStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "{\nc\n}\n", "indent", "--mode", "lilypond")
	require.NoError(t, err)
	assert.Equal(t, "{\n  c\n}\n", out)
}

func TestReformatStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "\\new Staff { c d\ne }\n", "reformat", "--mode", "lilypond")
	require.NoError(t, err)
	assert.Equal(t, "\\new Staff {\n  c d\n  e\n}\n", out)
}

func TestRhythmDoubleStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "{ c4 d8 e }\n", "rhythm", "double", "--mode", "lilypond")
	require.NoError(t, err)
	assert.Equal(t, "{ c2 d4 e }\n", out)
}

func TestRhythmOverwriteRequiresDurations(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "{ c d }\n", "rhythm", "overwrite")
	assert.Error(t, err)
}

func TestBarcheckRemoveStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "{ c4 | d4 |\ne4 }\n", "barcheck", "remove", "--mode", "lilypond")
	require.NoError(t, err)
	assert.Equal(t, "{ c4 d4\ne4 }\n", out)
}

func TestTokensStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "{ c4 }\n", "tokens", "--mode", "lilypond", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, `1:1 SequentialStart "{"`)
	assert.Contains(t, out, `1:3 Note "c"`)
	assert.Contains(t, out, `1:4 Length "4"`)
}

func TestTokensJSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "{ c4 }\n", "tokens", "--mode", "lilypond", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "Note"`)
	assert.Contains(t, out, `"text": "c"`)
}

func TestModeStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "\\relative c' { c d e }\n", "mode")
	require.NoError(t, err)
	assert.Equal(t, "lilypond\n", out)
}

func TestIndentWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "music.ly")
	require.NoError(t, os.WriteFile(path, []byte("{\nc\n}\n"), 0o644))

	out, err := execute(t, "", "indent", "--write", "--mode", "lilypond", path)
	require.NoError(t, err)
	assert.Contains(t, out, "summary:")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  c\n}\n", string(data))
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	ok := &runner.Result{}
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(ok))

	failed := &runner.Result{Stats: runner.Stats{FilesErrored: 1}}
	assert.Equal(t, cli.ExitFileErrors, cli.ExitCodeFromResult(failed))
}
