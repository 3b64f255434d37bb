package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/path/to/music.ly.lydoc.bak", fsutil.BackupPath("/path/to/music.ly"))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "music.ly")
	require.NoError(t, os.WriteFile(path, []byte("c d e\n"), 0o644))

	created, err := fsutil.CreateBackup(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, created)

	content, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "c d e\n", string(content))
}

func TestCreateBackupIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "music.ly")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o644))

	created, err := fsutil.CreateBackup(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, created)

	// Change the original; a second run must not clobber the backup.
	require.NoError(t, os.WriteFile(path, []byte("changed\n"), 0o644))

	created, err = fsutil.CreateBackup(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, created)

	content, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(content))
}

func TestCreateBackupMissingOriginal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.ly")
	created, err := fsutil.CreateBackup(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "music.ly")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o644))

	_, err := fsutil.CreateBackup(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("mangled\n"), 0o644))

	restored, err := fsutil.RestoreBackup(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, restored)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(content))
}

func TestRestoreBackupMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "music.ly")
	restored, err := fsutil.RestoreBackup(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, restored)
}
