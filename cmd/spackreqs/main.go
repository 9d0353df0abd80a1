// spackreqs generates pip requirements files for Spack-managed Python stacks.
package main

import (
	"os"

	"github.com/icesee-project/spackreqs/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
