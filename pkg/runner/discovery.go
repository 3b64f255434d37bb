package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds source files matching opts under the working
// directory. It returns a deterministically sorted list of absolute
// file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discovery{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
		} else if d.matchesFile(absPath) {
			d.add(absPath)
		}
	}

	sort.Strings(d.files)
	return d.files, nil
}

type discovery struct {
	workDir    string
	extensions []string
	excludes   []glob.Glob
	follow     bool
	seen       map[string]struct{}
	files      []string
}

func (d *discovery) add(path string) {
	if _, ok := d.seen[path]; !ok {
		d.seen[path] = struct{}{}
		d.files = append(d.files, path)
	}
}

func (d *discovery) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			// Skip hidden directories (except root).
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if d.excluded(d.relPath(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				// Broken symlink, skip silently.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !d.follow {
					return nil
				}
				// Walk the symlink target to avoid infinite recursion,
				// since WalkDir uses Lstat on the root.
				return d.walk(ctx, realPath)
			}
			// File symlink: continue to check as regular file.
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if d.matchesFile(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discovery) relPath(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

func (d *discovery) matchesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	ok := false
	for _, e := range d.extensions {
		if strings.ToLower(e) == ext {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}
	return !d.excluded(d.relPath(path))
}

func (d *discovery) excluded(relPath string) bool {
	slashed := filepath.ToSlash(relPath)
	base := filepath.Base(relPath)
	for _, g := range d.excludes {
		if g.Match(slashed) || g.Match(base) {
			return true
		}
	}
	return false
}

// compileGlobs compiles exclude patterns, with '/' as the separator so
// that "*" does not cross directory boundaries but "**" does.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}
