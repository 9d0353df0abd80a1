package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/icesee-project/spackreqs/internal/manifest"
)

type groupsOptions struct {
	pyproject string
	format    string
}

type groupsReport struct {
	Project      string       `json:"project,omitempty" yaml:"project,omitempty"`
	Dependencies []string     `json:"dependencies" yaml:"dependencies"`
	Groups       []groupEntry `json:"groups" yaml:"groups"`
}

type groupEntry struct {
	Name         string   `json:"name" yaml:"name"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

func newGroupsCommand() *cobra.Command {
	opts := &groupsOptions{}

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List the optional-dependency groups of a manifest",
		Long: `Groups prints the base dependency count and every
project.optional-dependencies group declared in a pyproject.toml, so the
names accepted by "generate --extras" can be looked up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGroups(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.pyproject, "pyproject", "pyproject.toml", "path to the pyproject.toml manifest")
	f.StringVar(&opts.format, "format", "table", "output format: table, json, yaml")

	return cmd
}

func runGroups(_ context.Context, w io.Writer, opts *groupsOptions) error {
	switch opts.format {
	case "table", "json", "yaml":
	default:
		return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("unsupported format %q: must be one of table, json, yaml", opts.format)}
	}

	m, err := manifest.Load(opts.pyproject)
	if err != nil {
		code := ExitCodeFailure
		if isParseError(err) {
			code = ExitCodeParseError
		}

		return &ExitError{Code: code, Err: err}
	}

	report := buildGroupsReport(m)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}

		return enc.Close()
	default:
		return writeGroupsTable(w, report)
	}
}

func buildGroupsReport(m *manifest.Manifest) groupsReport {
	report := groupsReport{
		Project:      m.Name,
		Dependencies: nonNil(m.Dependencies),
		Groups:       make([]groupEntry, 0, len(m.OptionalDependencies)),
	}

	for _, name := range m.GroupNames() {
		deps, _ := m.Group(name)
		report.Groups = append(report.Groups, groupEntry{Name: name, Dependencies: nonNil(deps)})
	}

	return report
}

func writeGroupsTable(w io.Writer, report groupsReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "GROUP\tCOUNT\tPACKAGES")
	_, _ = fmt.Fprintf(tw, "(base)\t%d\t%s\n", len(report.Dependencies), joinPreview(report.Dependencies))

	for _, g := range report.Groups {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", g.Name, len(g.Dependencies), joinPreview(g.Dependencies))
	}

	return tw.Flush()
}

// joinPreview joins at most four specifiers for table display.
func joinPreview(specs []string) string {
	const maxShown = 4

	if len(specs) <= maxShown {
		return strings.Join(specs, ", ")
	}

	return fmt.Sprintf("%s, … (+%d)", strings.Join(specs[:maxShown], ", "), len(specs)-maxShown)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
