package pretty

import (
	"fmt"
	"io"

	"github.com/yaklabco/lydoc/pkg/runner"
)

// WriteSummary writes a one-line run summary for a batch operation.
func WriteSummary(w io.Writer, styles *Styles, result *runner.Result) error {
	if result == nil {
		return nil
	}
	stats := result.Stats

	line := fmt.Sprintf("%d files, %d changed, %d written",
		stats.FilesDiscovered, stats.FilesChanged, stats.FilesWritten)

	status := styles.Success.Render("ok")
	if stats.FilesErrored > 0 {
		status = styles.Failure.Render(fmt.Sprintf("%d errors", stats.FilesErrored))
	}

	_, err := fmt.Fprintf(w, "%s %s (%s)\n", styles.SummaryTitle.Render("summary:"), line, status)
	return err
}
