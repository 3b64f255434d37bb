package runner

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Text is the transformed document text. Set also when the file was
	// not written in place.
	Text string

	// Mode is the effective document mode that was used.
	Mode string

	// Changed reports whether the operation altered the text.
	Changed bool

	// Written reports whether the file was updated on disk.
	Written bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesChanged is the number of files whose text was altered.
	FilesChanged int

	// FilesWritten is the number of files updated on disk.
	FilesWritten int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int
}

// Result is the overall runner result. Files are ordered
// deterministically (by path).
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any file failed to process.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
