// Package cli implements the cobra command tree for spackreqs.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/icesee-project/spackreqs/internal/config"
	"github.com/icesee-project/spackreqs/internal/logging"
)

// Process exit codes.
const (
	ExitCodeOK         = 0
	ExitCodeFailure    = 1
	ExitCodeUsage      = 2
	ExitCodeParseError = 3
	ExitCodeWriteError = 4
	ExitCodeOutOfDate  = 5
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return ExitCodeFailure
	}

	return ExitCodeOK
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "spackreqs",
		Short: "Generate pip requirements for a Spack-managed Python stack",
		Long: `spackreqs turns the dependency tables of a pyproject.toml into a pip
requirements file for environments where Spack already provides part of
the stack.

Packages Spack builds (h5py, jax, the Python toolchain itself) are left
out of the output so pip never replaces them. The base dependencies and
any requested optional-dependency groups are merged, deduplicated by
package name, and written in declaration order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: ExitCodeUsage, Err: err}
			}

			logger := logging.SetupWithWriter(cfg, cmd.ErrOrStderr())

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.String("configFile", cfg.ConfigFile),
				slog.Any("exclude", cfg.ExclusionSet().Keys()),
			)

			return nil
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .spackreqs.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitCodeUsage, Err: err}
	})

	cmd.AddCommand(
		newGenerateCommand(),
		newGroupsCommand(),
		newDiffCommand(),
		newVersionCommand(),
		newCompletionCommand(),
	)

	return cmd
}
