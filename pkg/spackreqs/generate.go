// Package spackreqs provides a public Go API for turning a pyproject.toml
// into a pip requirements list for a Spack-managed environment.
//
// Basic usage:
//
//	result, err := spackreqs.GenerateFile("pyproject.toml",
//	    spackreqs.WithGroups("mpi", "viz"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Text))
//
// Write the result with [Result.WriteFile].
package spackreqs

import (
	"errors"
	"log/slog"

	"github.com/icesee-project/spackreqs/internal/filter"
	"github.com/icesee-project/spackreqs/internal/logging"
	"github.com/icesee-project/spackreqs/internal/manifest"
	"github.com/icesee-project/spackreqs/internal/output"
)

// DefaultExclusions are the packages excluded when no exclusion option is
// given.
var DefaultExclusions = filter.DefaultExclusions

// ErrParse is matched by errors.Is for every manifest syntax error.
var ErrParse = errors.New("invalid manifest")

// Option configures generation. Use the With* functions to create Options.
type Option func(*options)

type options struct {
	groups       []string
	exclude      []string
	extraExclude []string
	logger       *slog.Logger
}

// WithGroups selects optional-dependency groups, appended in the given order.
func WithGroups(groups ...string) Option {
	return func(o *options) { o.groups = append(o.groups, groups...) }
}

// WithExclusions replaces the default exclusion list.
func WithExclusions(names ...string) Option {
	return func(o *options) { o.exclude = names }
}

// WithExtraExclusions adds packages to the exclusion list.
func WithExtraExclusions(names ...string) Option {
	return func(o *options) { o.extraExclude = append(o.extraExclude, names...) }
}

// WithLogger sets the logger used for missing-group warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Dropped describes a specifier left out of the result.
type Dropped struct {
	Spec   string
	Source string
	Reason string
}

// Result is a generated requirements list.
type Result struct {
	// Requirements are the kept specifiers in output order.
	Requirements []string
	// Text is the rendered requirements file content.
	Text []byte
	// Dropped lists excluded and duplicate specifiers.
	Dropped []Dropped
	// MissingGroups are requested groups the manifest does not declare.
	MissingGroups []string
}

// WriteFile writes the rendered requirements to path, creating parent
// directories as needed.
func (r *Result) WriteFile(path string) error {
	return output.NewFileWriter(path, output.WithLogger(logging.Discard())).Write(r.Text)
}

// Generate builds the requirements list from pyproject.toml content.
func Generate(data []byte, opts ...Option) (*Result, error) {
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, parseError(err)
	}

	return generate(m, opts), nil
}

// GenerateFile builds the requirements list from the manifest at path.
func GenerateFile(path string, opts ...Option) (*Result, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, parseError(err)
	}

	return generate(m, opts), nil
}

func generate(m *manifest.Manifest, opts []Option) *Result {
	o := &options{exclude: DefaultExclusions, logger: logging.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	exclude := filter.NewExclusionSet(o.exclude...).With(o.extraExclude...)
	res := filter.Apply(m, o.groups, exclude)

	for _, g := range res.MissingGroups {
		o.logger.Warn("optional-dependency group not declared", slog.String("group", g))
	}

	dropped := make([]Dropped, 0, len(res.Dropped))
	for _, d := range res.Dropped {
		dropped = append(dropped, Dropped{Spec: d.Spec, Source: d.Source, Reason: d.Reason})
	}

	return &Result{
		Requirements:  res.Requirements,
		Text:          output.Format(res.Requirements),
		Dropped:       dropped,
		MissingGroups: res.MissingGroups,
	}
}

// parseError tags manifest syntax errors with ErrParse while keeping the
// underlying error in the chain.
func parseError(err error) error {
	var perr *manifest.ParseError
	if errors.As(err, &perr) {
		return errors.Join(ErrParse, err)
	}

	return err
}
