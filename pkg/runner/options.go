// Package runner provides multi-file document processing orchestration.
package runner

// Options controls multi-file processing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to
	// process. If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading
	// dot) considered source files. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Mode forces the document mode for every file. Empty means guess
	// per file.
	Mode string

	// Write applies changes to the files in place. When false the
	// transformed text is kept on the outcome only.
	Write bool

	// Backup creates a sidecar backup before a file is written.
	Backup bool
}

// DefaultExtensions returns the default set of LilyPond and Scheme file
// extensions.
func DefaultExtensions() []string {
	return []string{".ly", ".ily", ".lyi", ".scm"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
