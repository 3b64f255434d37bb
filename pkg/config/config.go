// Package config defines core configuration types for lydoc.
// These types are pure data structures with no dependency on where the
// configuration was loaded from.
package config

// IndentConfig controls how lines are indented.
type IndentConfig struct {
	// Width is the number of spaces per indent level.
	Width int `yaml:"width"`

	// Tabs indents with tab characters instead of spaces.
	Tabs bool `yaml:"tabs"`

	// BlankLines re-indents blank lines as well.
	BlankLines bool `yaml:"blank_lines"`
}

// RhythmConfig controls how rhythm operations interpret selections.
type RhythmConfig struct {
	// Partial selects how tokens overlapping the selection boundary are
	// treated: "inside", "partial" or "outside".
	Partial string `yaml:"partial"`
}

// Config is the root configuration structure for lydoc.
type Config struct {
	// Mode forces the document mode ("lilypond", "scheme", "html",
	// "texinfo"). Empty means guess per file.
	Mode string `yaml:"mode"`

	// Indent configures the indenter.
	Indent IndentConfig `yaml:"indent"`

	// Rhythm configures rhythm operations.
	Rhythm RhythmConfig `yaml:"rhythm"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Write applies changes in place instead of printing to stdout.
	Write bool `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Indent: IndentConfig{Width: 2},
		Rhythm: RhythmConfig{Partial: "inside"},
		Jobs:   0, // 0 means use all CPUs
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}
	return &clone
}
