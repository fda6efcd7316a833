package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chaff configuration",
	Long: `Provides commands for creating and inspecting the generation settings.

Settings live in config.toml under the user config directory. Any value can
be overridden for a single run with a CHAFF_* environment variable, for
example CHAFF_MIN_FILE_COUNT=10.

Examples:
  # Write a config file with the default settings
  chaff config init

  # Show the settings generate would use
  chaff config show

  # Convert a .env file from an older install
  chaff config migrate .env`,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configMigrateCmd)
}

// resetCobraFlagState clears the Changed marker on every flag below root
// so one test's flags do not leak into the next.
func resetCobraFlagState(root *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	root.Flags().VisitAll(reset)
	root.PersistentFlags().VisitAll(reset)
	for _, child := range root.Commands() {
		resetCobraFlagState(child)
	}
}
