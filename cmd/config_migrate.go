package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
)

var configMigrateDryRun bool

func init() {
	configMigrateCmd.Flags().BoolVar(&configMigrateDryRun, "dry-run", false, "only report whether the file can be migrated")
}

func resetConfigMigrateState() {
	configMigrateDryRun = false
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate [env-file]",
	Short: "Convert a legacy .env settings file into config.toml",
	Long: `Reads settings such as MIN_FILE_SIZE and CHAFF_FILE_TYPES from a .env file
written for an older install and saves them as config.toml. An existing
config file is backed up first.

Examples:
  chaff config migrate
  chaff config migrate ./old/.env --config ./chaff.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config migrate command")
		envPath := ".env"
		if len(args) == 1 {
			envPath = args[0]
		}

		if _, err := os.Stat(envPath); err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " " + ui.Path.Sprint(envPath) + " does not exist")
			return nil
		}
		if !configs.IsLegacyEnvFile(envPath) {
			fmt.Println(ui.Success.Sprint("✓") + " " + ui.Path.Sprint(envPath) + " holds no chaff settings. Nothing to migrate.")
			return nil
		}
		if configMigrateDryRun {
			fmt.Println(ui.Warning.Sprint("[dry-run]") + " " + ui.Path.Sprint(envPath) + " can be migrated")
			fmt.Println("\nNo changes made.")
			return nil
		}

		path := resolveConfigPath()
		Logger.Debugf("Migrating %s to %s", envPath, path)
		result, err := configs.MigrateEnvFile(envPath, path)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to migrate %s: %v", envPath, err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Migrated " + ui.Path.Sprint(envPath) + " to " + ui.Path.Sprint(result.ConfigPath))
		fmt.Printf("  %-10s %s\n", "Settings:", strings.Join(result.MigratedKeys, ", "))
		if len(result.IgnoredKeys) > 0 {
			fmt.Printf("  %-10s %s\n", "Ignored:", ui.Muted.Sprint(strings.Join(result.IgnoredKeys, ", ")))
		}
		if result.BackupPath != "" {
			fmt.Println(ui.Info.Sprint("→") + " Previous config backed up to " + ui.Path.Sprint(result.BackupPath))
		}
		return nil
	},
}
