package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/output"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/workflows"
)

var (
	generateDryRun bool
	generateYes    bool
	generateSeed   uint64
	generateTarget string
)

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "plan the run and check disk space without writing files")
	generateCmd.Flags().BoolVarP(&generateYes, "yes", "y", false, "skip the confirmation prompt")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "seed for a reproducible run (0 picks one at random)")
	generateCmd.Flags().StringVarP(&generateTarget, "target", "t", "", "directory to write files into (overrides target_directory)")
}

func resetGenerateState() {
	generateDryRun = false
	generateYes = false
	generateSeed = 0
	generateTarget = ""
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a set of linked, encoded chaff files",
	Long: `Plans, renders, encodes and writes decoy files into the target directory.

Files reference each other by name, some are password protected, and the
passwords are hinted at inside other files. Every run is recorded in a
manifest so it can be decoded or cleaned up later.

Examples:
  # Generate using the user configuration
  chaff generate

  # Reproduce an earlier run without prompting
  chaff generate --seed 42 --yes

  # Show what would be generated
  chaff generate --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting generate command")
		Logger.Debugf("Flags: dry-run=%t, yes=%t, seed=%d, target=%q", generateDryRun, generateYes, generateSeed, generateTarget)

		cfg, err := loadConfig()
		if err != nil {
			if errors.Is(err, cerrors.ErrInvalidConfig) {
				fmt.Println(ui.Error.Sprint("✗") + " Configuration is invalid\n" +
					ui.Error.Sprint("Error: ") + err.Error())
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to load config: %v", err)
		}
		if generateTarget != "" {
			cfg.TargetDirectory = utils.ExpandHome(generateTarget)
		}

		if !generateDryRun && !generateYes {
			prompt := fmt.Sprintf("Generate chaff files in %s? [y/N]: ", ui.Path.Sprint(cfg.TargetDirectory))
			if !utils.Confirm(os.Stdin, os.Stdout, prompt) {
				fmt.Println("Aborted.")
				return nil
			}
		}

		message := "Generating chaff files..."
		if generateDryRun {
			message = "Planning chaff files..."
		}
		spinner, cleanup := startSpinner(message, verbose)
		defer cleanup()

		result, err := workflows.Generate(cmd.Context(), workflows.GenerateOptions{
			Config: cfg,
			Seed:   generateSeed,
			DryRun: generateDryRun,
			Log:    Logger,
		})
		if err != nil {
			Logger.Errorf("Generate failed: %v", err)
			spinner.FinalMSG = formatGenerateError(err)
			if result != nil && result.ManifestPath != "" {
				spinner.FinalMSG += "\n" + ui.Info.Sprint("→") + " Run " +
					ui.Code.Sprint("chaff clean --manifest "+result.ManifestPath) + " to remove what was written"
			}
			return nil
		}

		if result.DryRun {
			spinner.FinalMSG = formatDryRun(result)
			return nil
		}

		Logger.Infof("Generate command completed successfully. Wrote %d files", len(result.Written))
		spinner.FinalMSG = formatGenerateResult(result)
		return nil
	},
}

// formatGenerateError maps workflow errors to user-facing messages.
func formatGenerateError(err error) string {
	switch {
	case errors.Is(err, cerrors.ErrInsufficientSpace):
		return ui.Error.Sprint("✗") + " Not enough disk space for the smallest allowed run\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Lower " + ui.Code.Sprint("min_file_count") + " or " +
			ui.Code.Sprint("minimum_remaining_disk_space") + " in your config"
	case errors.Is(err, cerrors.ErrEmptyPlan):
		return ui.Error.Sprint("✗") + " Nothing to generate with the current settings"
	case errors.Is(err, cerrors.ErrInvalidConfig), errors.Is(err, cerrors.ErrInvalidSize),
		errors.Is(err, cerrors.ErrInvalidWeights), errors.Is(err, cerrors.ErrUnknownKind):
		return ui.Error.Sprint("✗") + " Configuration is invalid\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("chaff config show") + " to inspect the active settings"
	default:
		return ui.Error.Sprint("✗") + " Failed to generate chaff files\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}

func formatDryRun(result *workflows.GenerateResult) string {
	var b strings.Builder
	b.WriteString(ui.Warning.Sprint("[dry-run]") + " Would generate " +
		fmt.Sprintf("%d files in %s", result.PlanSummary.TotalFiles, ui.Path.Sprint(result.TargetDir)) + "\n")
	fmt.Fprintf(&b, "  %-16s %d\n", "Seed:", result.Seed)
	fmt.Fprintf(&b, "  %-16s %s\n", "Total size:", utils.FormatSize(result.PlanSummary.TotalSize))
	fmt.Fprintf(&b, "  %-16s %s\n", "Usable space:", utils.FormatSize(result.Space.Usable))
	for _, w := range result.Warnings {
		b.WriteString(ui.Warning.Sprint("⚠") + " " + w + "\n")
	}
	b.WriteString("\nNo changes made.")
	return b.String()
}

func formatGenerateResult(result *workflows.GenerateResult) string {
	var b strings.Builder
	summary := result.Summary

	b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" Generated %d files in ", len(result.Written)) +
		ui.Path.Sprint(result.TargetDir) + "\n")
	fmt.Fprintf(&b, "  %-16s %d\n", "Seed:", result.Seed)
	fmt.Fprintf(&b, "  %-16s %s\n", "Total size:", utils.FormatSize(lo.SumBy(result.Written, func(w *output.WrittenFile) uint64 {
		return uint64(w.Size)
	})))
	fmt.Fprintf(&b, "  %-16s %d\n", "Protected:", summary.ProtectedFiles)
	fmt.Fprintf(&b, "  %-16s %d %s\n", "References:", summary.TotalReferences,
		ui.Muted.Sprintf("%d attachment, %d password, %d other",
			summary.AttachmentReferences, summary.PasswordReferences, summary.OtherReferences))
	fmt.Fprintf(&b, "  %-16s %d\n", "Hints:", summary.Hints)

	b.WriteString(ui.Info.Sprint("Encodings:") + "\n")
	methods := lo.MapKeys(summary.Methods, func(_ int, m encoding.Method) string { return m.String() })
	b.WriteString(ui.CountList(methods, "  "))

	if result.Cleaned != nil {
		fmt.Fprintf(&b, "%s Removed %d files after completion\n", ui.Success.Sprint("✓"), len(result.Cleaned.Removed))
		if len(result.Cleaned.Modified) > 0 {
			b.WriteString(ui.Warning.Sprint("⚠") + " Kept modified files:" + utils.FormatPaths(result.Cleaned.Modified, 5))
		}
		return b.String()
	}

	b.WriteString(ui.Info.Sprint("→") + " Manifest saved to " + ui.Path.Sprint(result.ManifestPath) + "\n")
	b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("chaff clean") + " to remove these files")
	return b.String()
}
