package cmd

import (
	logger "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger
)

// Register attaches the shared flags and every chaff sub-command to root.
func Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.toml (defaults to the user config directory)")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	root.AddCommand(generateCmd)
	root.AddCommand(planCmd)
	root.AddCommand(decodeCmd)
	root.AddCommand(cleanCmd)
	root.AddCommand(ConfigCmd)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState(root *cobra.Command) {
	verbose = false
	debug = false
	configPath = ""
	resetGenerateState()
	resetPlanState()
	resetDecodeState()
	resetCleanState()
	resetConfigInitState()
	resetConfigShowState()
	resetConfigMigrateState()
	if root != nil {
		resetCobraFlagState(root)
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
