package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/icesee-project/spackreqs/internal/config"
	"github.com/icesee-project/spackreqs/internal/filter"
	"github.com/icesee-project/spackreqs/internal/logging"
	"github.com/icesee-project/spackreqs/internal/manifest"
	"github.com/icesee-project/spackreqs/internal/output"
)

// pipelineResult holds everything a command needs after the manifest has
// been read and filtered.
type pipelineResult struct {
	Manifest *manifest.Manifest
	Groups   []string
	Filter   *filter.Result
	Rendered []byte
}

// runPipeline loads the manifest, applies the configured exclusions and the
// requested groups, and renders the requirements text. Nothing is written.
func runPipeline(ctx context.Context, opts *manifestOptions) (*pipelineResult, error) {
	logger := logging.FromContext(ctx)
	cfg := config.FromContext(ctx)

	m, err := manifest.Load(opts.pyproject)
	if err != nil {
		if isParseError(err) {
			return nil, &ExitError{Code: ExitCodeParseError, Err: err}
		}

		return nil, &ExitError{Code: ExitCodeFailure, Err: err}
	}

	groups := filter.ParseGroups(opts.extras)
	res := filter.Apply(m, groups, cfg.ExclusionSet())

	for _, g := range res.MissingGroups {
		logger.Warn("optional-dependency group not declared, treating as empty",
			slog.String("group", g),
			slog.String("manifest", m.Path),
		)
	}

	for _, d := range res.Dropped {
		logger.Debug("dropped requirement",
			slog.String("spec", d.Spec),
			slog.String("key", d.Key),
			slog.String("source", d.Source),
			slog.String("reason", d.Reason),
		)
	}

	return &pipelineResult{
		Manifest: m,
		Groups:   groups,
		Filter:   res,
		Rendered: output.Format(res.Requirements),
	}, nil
}

func isParseError(err error) bool {
	var perr *manifest.ParseError

	return errors.As(err, &perr)
}

// writeResult sends rendered requirements to w, mapping write failures to
// the filesystem exit code.
func writeResult(w output.Writer, data []byte) error {
	if err := w.Write(data); err != nil {
		return &ExitError{Code: ExitCodeWriteError, Err: err}
	}

	return nil
}
