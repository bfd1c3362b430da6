// Package cli provides the Cobra command tree for the sprout CLI.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "sprout",
	Short: "sprout: interactive Express backend scaffolder",
	Long: `sprout scaffolds an Express backend project from a short questionnaire:
project name, JavaScript or TypeScript, and a handful of feature toggles
(CORS, error handling, .env, request logging, Docker).

It generates the directory layout and boilerplate source, pins current
package versions from the npm registry, and runs the install for you.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("sprout %s\n", version.GetVersion()))
}
