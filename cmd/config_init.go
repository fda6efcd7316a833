package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
)

var (
	configInitForce  bool
	configInitTarget string
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configInitCmd.Flags().StringVarP(&configInitTarget, "target", "t", "", "target directory to record in the new config")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
	configInitTarget = ""
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Creates config.toml with every setting at its default value so it can be
edited by hand. An existing file is left alone unless --force is given.

Examples:
  chaff config init
  chaff config init --target /srv/share/decoys
  chaff config init --config ./chaff.toml --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		path := resolveConfigPath()

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Println(ui.Warning.Sprint("⚠") + " Config file already exists at " + ui.Path.Sprint(path))
			fmt.Println(ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it")
			return nil
		}

		cfg := configs.DefaultConfig()
		if configInitTarget != "" {
			cfg.TargetDirectory = configInitTarget
		}
		Logger.Debugf("Writing default config to %s", path)
		if err := configs.SaveConfig(path, cfg); err != nil {
			return Logger.ErrorfAndReturn("Failed to write config: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Config written to " + ui.Path.Sprint(path))
		if configs.IsLegacyEnvFile(".env") {
			fmt.Println(ui.Info.Sprint("→") + " Found settings in " + ui.Path.Sprint(".env") + ". Run " +
				ui.Code.Sprint("chaff config migrate .env") + " to import them")
		}
		return nil
	},
}
