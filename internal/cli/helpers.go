package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lydoc/internal/configloader"
	"github.com/yaklabco/lydoc/internal/logging"
	"github.com/yaklabco/lydoc/internal/ui/pretty"
	"github.com/yaklabco/lydoc/pkg/config"
	"github.com/yaklabco/lydoc/pkg/document"
	"github.com/yaklabco/lydoc/pkg/runner"
)

// ErrFilesFailed is returned when some files could not be processed.
// It only signals the exit code; the failures were already reported.
var ErrFilesFailed = errors.New("some files failed")

// loadConfig builds the effective configuration for a command, merging
// config files, environment variables and the given flag overlay.
func loadConfig(cmd *cobra.Command, apply func(*config.Config)) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Apply:        apply,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, result.LoadedFrom)
	}

	return result.Config, nil
}

// readDocument loads a document from the named file, or from stdin when
// the name is empty or "-".
func readDocument(cmd *cobra.Command, name, mode string) (*document.Document, error) {
	if name == "" || name == "-" {
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return document.New(string(text), mode), nil
	}
	return document.Load(name, mode)
}

// runBatch applies op to the given paths concurrently. Without
// cfg.Write the transformed text of every file goes to stdout, like
// gofmt; with it the files are rewritten in place and a summary is
// printed instead.
func runBatch(cmd *cobra.Command, args []string, cfg *config.Config, backup bool, op runner.Op) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	opts := runner.Options{
		Paths:        args,
		Mode:         cfg.Mode,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Write:        cfg.Write,
		Backup:       backup,
	}

	logger.Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldJobs, opts.Jobs,
		logging.FieldWrite, opts.Write,
	)

	result, err := runner.New(op).Run(ctx, opts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("processing failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			continue
		}
		if !cfg.Write {
			if _, err := io.WriteString(cmd.OutOrStdout(), outcome.Text); err != nil {
				return err
			}
		}
	}

	if cfg.Write {
		styles := pretty.NewStyles(colorEnabled(cmd, cmd.ErrOrStderr()))
		if err := pretty.WriteSummary(cmd.ErrOrStderr(), styles, result); err != nil {
			return err
		}
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}

// colorEnabled resolves the --color persistent flag against a writer.
func colorEnabled(cmd *cobra.Command, w io.Writer) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return pretty.IsColorEnabled(mode, w)
}

// fullCursor returns a cursor spanning the whole document.
func fullCursor(d *document.Document) *document.Cursor {
	return document.NewCursor(d, 0, document.NoEnd)
}
