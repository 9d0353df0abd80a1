// Package manifest reads the dependency tables of a pyproject.toml file.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Manifest holds the parts of a pyproject.toml the requirements generator
// needs. It is read-only after Parse.
type Manifest struct {
	// Path is the file the manifest was loaded from, empty for in-memory input.
	Path string

	// Name is the value of project.name, if set.
	Name string

	// Dependencies is project.dependencies in declaration order.
	Dependencies []string

	// OptionalDependencies maps each project.optional-dependencies group to
	// its specifiers in declaration order.
	OptionalDependencies map[string][]string
}

// ParseError reports a manifest that is not a valid pyproject.toml document.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	src := e.Path
	if src == "" {
		src = "<input>"
	}

	if e.Line > 0 {
		return fmt.Sprintf("parsing manifest %s:%d:%d: %v", src, e.Line, e.Column, e.Err)
	}

	return fmt.Sprintf("parsing manifest %s: %v", src, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type document struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied manifest path
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}

		return nil, err
	}

	m.Path = path

	return m, nil
}

// Parse decodes a pyproject.toml document. A document without a [project]
// table is valid and yields an empty manifest.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		perr := &ParseError{Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}

		return nil, perr
	}

	opt := doc.Project.OptionalDependencies
	if opt == nil {
		opt = map[string][]string{}
	}

	return &Manifest{
		Name:                 doc.Project.Name,
		Dependencies:         doc.Project.Dependencies,
		OptionalDependencies: opt,
	}, nil
}

// Group returns the specifiers of the named optional-dependency group and
// whether the group is declared.
func (m *Manifest) Group(name string) ([]string, bool) {
	deps, ok := m.OptionalDependencies[name]

	return deps, ok
}

// GroupNames returns the declared optional-dependency groups, sorted.
func (m *Manifest) GroupNames() []string {
	names := make([]string, 0, len(m.OptionalDependencies))
	for name := range m.OptionalDependencies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
