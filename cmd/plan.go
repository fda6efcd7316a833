package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/workflows"
)

var (
	planSeed   uint64
	planTarget string
	planList   bool
)

func init() {
	planCmd.Flags().Uint64Var(&planSeed, "seed", 0, "seed to plan with (0 picks one at random)")
	planCmd.Flags().StringVarP(&planTarget, "target", "t", "", "directory to plan for (overrides target_directory)")
	planCmd.Flags().BoolVarP(&planList, "list", "l", false, "list every planned file")
}

func resetPlanState() {
	planSeed = 0
	planTarget = ""
	planList = false
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a generate run would produce",
	Long: `Plans a run with the active configuration and prints its statistics.
Nothing is written. Pass the printed seed to 'chaff generate --seed' to
produce exactly this plan.

Examples:
  chaff plan
  chaff plan --seed 42 --list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting plan command")

		cfg, err := loadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load config: %v", err)
		}
		if planTarget != "" {
			cfg.TargetDirectory = utils.ExpandHome(planTarget)
		}

		result, err := workflows.Generate(cmd.Context(), workflows.GenerateOptions{
			Config: cfg,
			Seed:   planSeed,
			DryRun: true,
			Log:    Logger,
		})
		if err != nil {
			if errors.Is(err, cerrors.ErrEmptyPlan) || errors.Is(err, cerrors.ErrInvalidConfig) {
				fmt.Println(formatGenerateError(err))
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to plan run: %v", err)
		}

		fmt.Println(ui.Info.Sprint("Plan for ") + ui.Path.Sprint(result.TargetDir) + " " + ui.Muted.Sprintf("seed %d", result.Seed))
		fmt.Println()
		printPlanSummary(result.PlanSummary, result.Space)

		if planList {
			fmt.Println(ui.Info.Sprint("Files:"))
			for _, d := range result.Plan.All() {
				fmt.Printf("  %-40s %-5s %-3s %s\n", d.Name, d.Kind, d.Language, utils.FormatSize(d.SizeBytes))
			}
		}

		if len(result.Warnings) > 0 {
			fmt.Println()
			printWarnings(result.Warnings)
		}
		return nil
	},
}
