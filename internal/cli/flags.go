package cli

import (
	"github.com/spf13/cobra"
)

// manifestOptions are the flags shared by every command that reads a
// manifest and builds a requirements list from it.
type manifestOptions struct {
	pyproject string
	extras    string
}

// registerManifestFlags adds the manifest and group selection flags to a cobra command.
func registerManifestFlags(cmd *cobra.Command, opts *manifestOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.pyproject, "pyproject", "pyproject.toml", "path to the pyproject.toml manifest")
	f.StringVar(&opts.extras, "extras", "", "comma-separated optional-dependency groups, e.g. mpi,viz,dev")
	f.StringVar(&opts.extras, "groups", "", "alias for --extras")
}

// registerExclusionFlags adds the exclusion flags. Their values reach the
// command through config.Load, which binds them alongside the config file
// and SPACKREQS_EXCLUDE / SPACKREQS_EXTRA_EXCLUDE.
func registerExclusionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("exclude", nil, "packages provided by Spack (replaces the built-in list)")
	f.StringSlice("extra-exclude", nil, "packages to exclude in addition to --exclude")
}
