package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/lydoc/pkg/config"
)

// envVarPrefix is the prefix for all lydoc environment variables.
const envVarPrefix = "LYDOC_"

// LoadFromEnv applies environment variable overrides to the
// configuration. Variables are prefixed with LYDOC_ (e.g. LYDOC_MODE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv(envVarPrefix + "INDENT_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sINDENT_WIDTH: %q", envVarPrefix, v)
		}
		cfg.Indent.Width = width
	}
	if v := os.Getenv(envVarPrefix + "INDENT_TABS"); v != "" {
		tabs, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sINDENT_TABS: %q (expected true/false/1/0)", envVarPrefix, v)
		}
		cfg.Indent.Tabs = tabs
	}
	if v := os.Getenv(envVarPrefix + "RHYTHM_PARTIAL"); v != "" {
		cfg.Rhythm.Partial = v
	}
	if v := os.Getenv(envVarPrefix + "JOBS"); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, v)
		}
		cfg.Jobs = jobs
	}
	if v := os.Getenv(envVarPrefix + "IGNORE"); v != "" {
		cfg.Ignore = parseSliceValue(v)
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"LYDOC_MODE":           "Force document mode: lilypond, scheme, html or texinfo",
		"LYDOC_INDENT_WIDTH":   "Spaces per indent level",
		"LYDOC_INDENT_TABS":    "Indent with tabs: true or false",
		"LYDOC_RHYTHM_PARTIAL": "Boundary handling for rhythm selections: inside, partial or outside",
		"LYDOC_JOBS":           "Number of parallel workers (0 = auto)",
		"LYDOC_IGNORE":         "Comma-separated list of ignore patterns",
	}
}
