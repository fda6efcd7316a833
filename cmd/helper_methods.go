package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/samber/lo"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Printed to stdout so tests can capture it.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// resolveConfigPath returns the --config value or the user config file.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return configs.UserChaffSettings.ConfigPath
}

// loadConfig reads the active config file with environment overrides applied.
func loadConfig() (*configs.Config, error) {
	path := resolveConfigPath()
	Logger.Debugf("Loading config from %s", path)
	return configs.LoadConfig(path)
}

// kindCounts converts per-kind counts for ui.CountList.
func kindCounts(counts map[plan.Kind]int) map[string]int {
	return lo.MapKeys(counts, func(_ int, k plan.Kind) string {
		return string(k)
	})
}

// printPlanSummary writes the plan statistics shared by generate and plan.
func printPlanSummary(summary plan.Summary, space configs.DiskSpace) {
	fmt.Printf("  %-16s %d\n", "Files:", summary.TotalFiles)
	fmt.Printf("  %-16s %s\n", "Total size:", utils.FormatSize(summary.TotalSize))
	fmt.Printf("  %-16s %s\n", "Average size:", utils.FormatSize(summary.AverageSize))
	fmt.Printf("  %-16s %s %s\n", "Usable space:", utils.FormatSize(space.Usable),
		ui.Muted.Sprintf("%s reserved", utils.FormatSize(space.Reserve)))
	fmt.Println()
	fmt.Println(ui.Info.Sprint("File types:"))
	fmt.Print(ui.CountList(kindCounts(summary.Kinds), "  "))
	fmt.Println(ui.Info.Sprint("Languages:"))
	fmt.Print(ui.CountList(summary.Languages, "  "))
}

// printWarnings lists non-fatal configuration problems.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Println(ui.Warning.Sprint("⚠") + " " + w)
	}
}
