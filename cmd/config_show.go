package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the active configuration",
	Long: `Displays the settings generate would use: the config file merged over the
defaults, with CHAFF_* environment overrides applied.

Examples:
  chaff config show
  chaff config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		path := resolveConfigPath()

		cfg, err := loadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if configShowJSON {
			Logger.Debugf("Outputting config as JSON")
			output, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		outputConfigText(path, cfg)
		return nil
	},
}

// outputConfigText outputs the config in human-readable format.
func outputConfigText(path string, cfg *configs.Config) {
	source := ui.Muted.Sprint("defaults, no file found")
	if _, err := os.Stat(path); err == nil {
		source = ui.Path.Sprint(path)
	}
	fmt.Println(ui.Info.Sprint("Configuration") + " " + source)
	fmt.Println()

	row := func(label, value string) {
		fmt.Printf("  %-30s %s\n", label+":", value)
	}
	row("Target directory", ui.Path.Sprint(cfg.TargetDirectory))
	row("File size", cfg.MinFileSize+" - "+cfg.MaxFileSize)
	row("File count", fmt.Sprintf("%d - %d", cfg.MinFileCount, cfg.MaxFileCount))
	row("Minimum remaining disk space", cfg.MinimumRemainingDiskSpace)
	row("Fill drive", fmt.Sprintf("%t", cfg.FillDrive))
	row("Delete after completion", fmt.Sprintf("%t (after %s)", cfg.DeleteAfterCompletion, cfg.CleanupDelay))
	row("File types", strings.Join(cfg.FileTypes, ", "))
	row("Languages", strings.Join(cfg.Languages, ", "))
	row("Suffix policy", cfg.SuffixPolicy)
	row("Randomize timestamps", fmt.Sprintf("%t", cfg.RandomizeTimestamps))
	if cfg.Seed != 0 {
		row("Seed", fmt.Sprintf("%d", cfg.Seed))
	} else {
		row("Seed", ui.Muted.Sprint("random"))
	}

	if len(cfg.Encoding.Weights) > 0 {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Encoding weight overrides:"))
		kinds := make([]string, 0, len(cfg.Encoding.Weights))
		for kind := range cfg.Encoding.Weights {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Printf("  %s %v\n", ui.Method.Sprint(kind), cfg.Encoding.Weights[kind])
		}
	}

	fmt.Println()
	fmt.Println(ui.Info.Sprint("Storage:"))
	row("Manifests", ui.Path.Sprint(configs.UserChaffSettings.ManifestsPath))
	row("Audit log", ui.Path.Sprint(configs.UserChaffSettings.AuditLogPath))

	warnings, err := cfg.Validate()
	if err != nil {
		fmt.Println()
		fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
		return
	}
	if space, err := configs.UsableDiskSpace(cfg.TargetDirectory, 0); err == nil {
		row("Free space at target", utils.FormatSize(space.Free))
	}
	if len(warnings) > 0 {
		fmt.Println()
		printWarnings(warnings)
	}
}
