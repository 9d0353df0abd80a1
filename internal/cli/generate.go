package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/icesee-project/spackreqs/internal/diff"
	"github.com/icesee-project/spackreqs/internal/logging"
	"github.com/icesee-project/spackreqs/internal/output"
	"github.com/icesee-project/spackreqs/internal/watch"
)

type generateOptions struct {
	manifestOptions

	out      string
	stdout   bool
	watch    bool
	debounce time.Duration
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a pip requirements file from pyproject.toml",
		Long: `Generate reads project.dependencies and the requested
project.optional-dependencies groups from a pyproject.toml, removes the
packages Spack provides, drops repeated package names (the first
occurrence wins), and writes one requirement per line.

Requested groups that the manifest does not declare are treated as empty.

Exit codes:
  0  Success
  1  Error
  2  Invalid arguments or configuration
  3  Manifest could not be parsed
  4  Output could not be written`,
		Example: `  spackreqs generate --pyproject pyproject.toml --out build/requirements.txt --extras mpi,viz
  spackreqs generate --stdout --extra-exclude petsc4py
  spackreqs generate --out requirements.txt --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "", "output requirements file")
	f.BoolVar(&opts.stdout, "stdout", false, "write requirements to stdout instead of a file")
	f.BoolVarP(&opts.watch, "watch", "w", false, "regenerate whenever the manifest changes")
	f.DurationVar(&opts.debounce, "debounce", watch.DefaultOptions().Debounce, "quiet period before regenerating in watch mode")

	registerManifestFlags(cmd, &opts.manifestOptions)
	registerExclusionFlags(cmd)

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts *generateOptions) error {
	switch {
	case opts.stdout && opts.out != "":
		return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("--out and --stdout are mutually exclusive")}
	case !opts.stdout && opts.out == "":
		return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("--out is required (or use --stdout)")}
	case opts.watch && opts.stdout:
		return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("--watch requires --out")}
	}

	if opts.watch {
		return runGenerateWatch(ctx, cmd, opts)
	}

	_, err := generateOnce(ctx, cmd, opts)

	return err
}

// generateOnce runs the pipeline and writes its output. The destination is
// only touched after the manifest parsed successfully.
func generateOnce(ctx context.Context, cmd *cobra.Command, opts *generateOptions) (*pipelineResult, error) {
	logger := logging.FromContext(ctx)

	res, err := runPipeline(ctx, &opts.manifestOptions)
	if err != nil {
		return nil, err
	}

	var w output.Writer
	if opts.stdout {
		w = output.NewStdoutWriter(cmd.OutOrStdout())
	} else {
		w = output.NewFileWriter(opts.out, output.WithLogger(logger))
	}

	if err := writeResult(w, res.Rendered); err != nil {
		return nil, err
	}

	dest := opts.out
	if opts.stdout {
		dest = "<stdout>"
	}

	logger.Info("wrote requirements",
		slog.Int("count", len(res.Filter.Requirements)),
		slog.String("path", dest),
		slog.Int("excluded", len(res.Filter.Excluded())),
		slog.Int("duplicates", len(res.Filter.Duplicates())),
	)

	if len(res.Groups) > 0 {
		logger.Info("included extras", slog.Any("groups", res.Groups))
	}

	return res, nil
}

func runGenerateWatch(ctx context.Context, cmd *cobra.Command, opts *generateOptions) error {
	wopts := watch.DefaultOptions()
	wopts.Files = []string{opts.pyproject}
	wopts.Debounce = opts.debounce
	wopts.Logger = logging.FromContext(ctx)
	wopts.Out = cmd.ErrOrStderr()

	err := watch.Run(ctx, wopts, func(ctx context.Context) (*watch.RunResult, error) {
		previous, readErr := os.ReadFile(opts.out)
		if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading previous output: %w", readErr)
		}

		res, genErr := generateOnce(ctx, cmd, opts)
		if genErr != nil {
			return nil, genErr
		}

		changes, diffErr := diff.Compute(previous, res.Rendered, diff.DefaultOptions())
		if diffErr != nil {
			return nil, diffErr
		}

		return &watch.RunResult{
			Requirements: len(res.Filter.Requirements),
			Changes:      changes.Summary(),
			OutputPath:   opts.out,
		}, nil
	})
	if err != nil {
		return &ExitError{Code: ExitCodeFailure, Err: err}
	}

	return nil
}
