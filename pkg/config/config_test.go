package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lydoc/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Empty(t, cfg.Mode)
	assert.Equal(t, 2, cfg.Indent.Width)
	assert.False(t, cfg.Indent.Tabs)
	assert.Equal(t, "inside", cfg.Rhythm.Partial)
}

func TestClone(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Mode = "lilypond"
	cfg.Ignore = []string{"vendor/**"}

	clone := cfg.Clone()
	clone.Ignore[0] = "changed"
	clone.Mode = "scheme"

	assert.Equal(t, "lilypond", cfg.Mode)
	assert.Equal(t, "vendor/**", cfg.Ignore[0])
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Mode = "lilypond"
	cfg.Indent.Width = 4
	cfg.Indent.Tabs = true
	cfg.Ignore = []string{"build/**", "*.bak"}

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Mode, parsed.Mode)
	assert.Equal(t, cfg.Indent, parsed.Indent)
	assert.Equal(t, cfg.Ignore, parsed.Ignore)
}

func TestFromYAMLKeepsDefaults(t *testing.T) {
	t.Parallel()

	parsed, err := config.FromYAML([]byte("mode: scheme\n"))
	require.NoError(t, err)
	assert.Equal(t, "scheme", parsed.Mode)
	assert.Equal(t, 2, parsed.Indent.Width)
	assert.Equal(t, "inside", parsed.Rhythm.Partial)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("mode: [unterminated"))
	assert.Error(t, err)
}
