package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/internal/configloader"
	"github.com/yaklabco/lydoc/pkg/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, 2, result.Config.Indent.Width)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".lydoc.yml", "mode: scheme\nindent:\n  width: 4\n")

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir: dir,
	})
	require.NoError(t, err)
	require.Len(t, result.LoadedFrom, 1)
	assert.Equal(t, "scheme", result.Config.Mode)
	assert.Equal(t, 4, result.Config.Indent.Width)
	assert.Equal(t, "inside", result.Config.Rhythm.Partial)
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".lydoc.yml", "mode: scheme\n")
	explicit := writeConfig(t, dir, "other.yaml", "mode: html\n")

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
	assert.Equal(t, "html", result.Config.Mode)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:   t.TempDir(),
		ExplicitPath: "/nonexistent/lydoc.yaml",
	})
	assert.Error(t, err)
}

func TestLoadApplyOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".lydoc.yml", "indent:\n  width: 4\n")

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir: dir,
		Apply: func(cfg *config.Config) {
			cfg.Indent.Width = 8
			cfg.Write = true
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, result.Config.Indent.Width)
	assert.True(t, result.Config.Write)
}

func TestLoadWarnsOnUnknownValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".lydoc.yml", "mode: fortran\nrhythm:\n  partial: sideways\n")

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 2)
	assert.Empty(t, result.Config.Mode)
	assert.Equal(t, "inside", result.Config.Rhythm.Partial)
}

func TestFindProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	expected := writeConfig(t, root, ".lydoc.yaml", "")

	found, err := configloader.FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, expected, found)
}

func TestFindProjectConfigStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, ".lydoc.yaml", "")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	found, err := configloader.FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, found)
}
