package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/lydoc/internal/logging"
	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/fsutil"
)

// Op transforms a document through a cursor spanning the whole text.
type Op func(c *document.Cursor) error

// Runner applies an Op to many files concurrently.
type Runner struct {
	Op Op
}

// New creates a new Runner with the given operation.
func New(op Op) *Runner {
	return &Runner{Op: op}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and
// aggregate stats. Files are only written back when opts.Write is set
// and the operation changed the text; writes are atomic and refused
// when the file was modified on disk while it was being processed.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order, collect into a map first.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile runs the operation against a single file.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	original := string(content)
	d := document.New(original, opts.Mode)
	outcome.Mode = d.EffectiveMode()

	c := document.NewCursor(d, 0, document.NoEnd)
	if err := r.Op(c); err != nil {
		outcome.Error = fmt.Errorf("process %s: %w", path, err)
		return outcome
	}

	outcome.Text = d.Text()
	outcome.Changed = outcome.Text != original
	if !outcome.Changed || !opts.Write {
		return outcome
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	if modified {
		outcome.Error = fmt.Errorf("skipping %s: file changed while processing", path)
		return outcome
	}

	if opts.Backup {
		if _, err := fsutil.CreateBackup(ctx, path); err != nil {
			outcome.Error = err
			return outcome
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(outcome.Text), info.Mode); err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Written = true
	logging.FromContext(ctx).Debug("rewrote file", logging.FieldPath, path)
	return outcome
}
