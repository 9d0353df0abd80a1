package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/icesee-project/spackreqs/internal/config"
	"github.com/icesee-project/spackreqs/internal/diff"
	"github.com/icesee-project/spackreqs/internal/logging"
)

type diffOptions struct {
	manifestOptions

	// Existing requirements file to compare against.
	existing string
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Check whether a requirements file matches pyproject.toml",
		Long: `Diff generates the requirements in memory and compares them with an
existing requirements file, printing a unified diff. Nothing is written.

A missing --existing file is compared as empty.

Exit codes:
  0  Requirements file is up to date
  1  Error
  2  Invalid arguments
  3  Manifest could not be parsed
  5  Requirements file is out of date`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiff(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.existing, "existing", "", "requirements file to compare against")

	registerManifestFlags(cmd, &opts.manifestOptions)
	registerExclusionFlags(cmd)

	return cmd
}

func runDiff(ctx context.Context, cmd *cobra.Command, opts *diffOptions) error {
	if opts.existing == "" {
		return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("--existing flag is required: specify the requirements file to check")}
	}

	logger := logging.FromContext(ctx)
	cfg := config.FromContext(ctx)

	existing, err := os.ReadFile(opts.existing)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return &ExitError{Code: ExitCodeFailure, Err: fmt.Errorf("reading %s: %w", opts.existing, err)}
		}

		logger.Warn("requirements file does not exist, comparing against empty", slog.String("path", opts.existing))
	}

	res, err := runPipeline(ctx, &opts.manifestOptions)
	if err != nil {
		return err
	}

	dopts := diff.DefaultOptions()
	dopts.OldLabel = opts.existing
	dopts.NewLabel = opts.pyproject

	result, err := diff.Compute(existing, res.Rendered, dopts)
	if err != nil {
		return &ExitError{Code: ExitCodeFailure, Err: err}
	}

	diff.Write(cmd.OutOrStdout(), result, !cfg.NoColor)

	if result.HasDifferences() {
		return &ExitError{
			Code: ExitCodeOutOfDate,
			Err:  fmt.Errorf("%s is out of date: %s", opts.existing, result.Summary()),
		}
	}

	return nil
}
