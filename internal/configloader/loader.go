package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/lydoc/pkg/config"
	"github.com/yaklabco/lydoc/pkg/lex"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is the directory to search project configs from.
	WorkingDir string

	// ExplicitPath is a config file given via --config. When set, it
	// replaces the discovered system, user and project configs.
	ExplicitPath string

	// Apply is called on the merged config as the final step, letting
	// the CLI overlay flag values. May be nil.
	Apply func(*config.Config)
}

// LoadResult holds the merged configuration and provenance information.
type LoadResult struct {
	// Config is the fully merged configuration.
	Config *config.Config

	// LoadedFrom lists the config files that were read, in merge order.
	LoadedFrom []string

	// Warnings contains non-fatal issues found while loading.
	Warnings []string
}

// Load builds the effective configuration. Precedence, lowest first:
// defaults, system config, user config, project config (or the explicit
// path), environment variables, CLI flags via opts.Apply.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Config: config.NewConfig()}

	var files []string
	if opts.ExplicitPath != "" {
		if !fileExists(opts.ExplicitPath) {
			return nil, fmt.Errorf("config file not found: %s", opts.ExplicitPath)
		}
		files = []string{opts.ExplicitPath}
	} else {
		paths, err := DiscoverPaths(ctx, opts.WorkingDir)
		if err != nil {
			return nil, err
		}
		for _, p := range []string{paths.System, paths.User, paths.Project} {
			if p != "" {
				files = append(files, p)
			}
		}
	}

	for _, path := range files {
		cfg, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		merge(result.Config, cfg)
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if err := LoadFromEnv(result.Config); err != nil {
		return nil, err
	}

	if opts.Apply != nil {
		opts.Apply(result.Config)
	}

	if w := validate(result.Config); len(w) > 0 {
		result.Warnings = append(result.Warnings, w...)
	}

	return result, nil
}

func loadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.FromYAML(data)
}

// merge overlays src onto dst. Only fields that differ from the
// defaults in src are applied, so an absent key never clobbers a value
// from a broader config file.
func merge(dst, src *config.Config) {
	def := config.NewConfig()

	if src.Mode != def.Mode {
		dst.Mode = src.Mode
	}
	if src.Indent.Width != def.Indent.Width {
		dst.Indent.Width = src.Indent.Width
	}
	if src.Indent.Tabs != def.Indent.Tabs {
		dst.Indent.Tabs = src.Indent.Tabs
	}
	if src.Indent.BlankLines != def.Indent.BlankLines {
		dst.Indent.BlankLines = src.Indent.BlankLines
	}
	if src.Rhythm.Partial != def.Rhythm.Partial {
		dst.Rhythm.Partial = src.Rhythm.Partial
	}
	if len(src.Ignore) > 0 {
		dst.Ignore = append(dst.Ignore, src.Ignore...)
	}
}

// validate reports non-fatal configuration problems.
func validate(cfg *config.Config) []string {
	var warnings []string

	if cfg.Mode != "" && !lex.KnownMode(cfg.Mode) {
		warnings = append(warnings, fmt.Sprintf("unknown mode %q, it will be ignored", cfg.Mode))
		cfg.Mode = ""
	}

	switch cfg.Rhythm.Partial {
	case "inside", "partial", "outside":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown rhythm.partial %q, using \"inside\"", cfg.Rhythm.Partial))
		cfg.Rhythm.Partial = "inside"
	}

	if cfg.Indent.Width < 0 {
		warnings = append(warnings, fmt.Sprintf("negative indent.width %d, using 2", cfg.Indent.Width))
		cfg.Indent.Width = 2
	}

	return warnings
}
