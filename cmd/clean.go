package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/output"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/workflows"
)

var (
	cleanManifest string
	cleanDryRun   bool
	cleanForce    bool
)

func init() {
	cleanCmd.Flags().StringVarP(&cleanManifest, "manifest", "m", "", "manifest of the run to clean (defaults to the newest run)")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "preview what would be removed without making changes")
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "skip the confirmation prompt")
}

func resetCleanState() {
	cleanManifest = ""
	cleanDryRun = false
	cleanForce = false
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the files written by a generate run",
	Long: `Deletes the files recorded in a run manifest.

Files that were modified after they were written are kept. The manifest
is removed once nothing of the run remains on disk.

Use --dry-run to preview what would be removed.
Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting clean command")
		Logger.Debugf("Flags: manifest=%q, dry-run=%t, force=%t", cleanManifest, cleanDryRun, cleanForce)

		preview, err := workflows.Clean(cmd.Context(), workflows.CleanOptions{
			ManifestPath: cleanManifest,
			DryRun:       true,
		})
		if err != nil {
			if errors.Is(err, cerrors.ErrManifestNotFound) {
				fmt.Println(ui.Success.Sprint("✓") + " No recorded runs found. Nothing to clean.")
				return nil
			}
			return Logger.ErrorfAndReturn("Failed to load manifest: %v", err)
		}

		manifest := preview.Manifest
		paths := lo.Map(manifest.Files, func(e output.ManifestEntry, _ int) string { return e.Path })
		Logger.Debugf("Run %s lists %d files", manifest.RunID, len(paths))

		if cleanDryRun {
			fmt.Printf("%s Would remove %d file(s) from run %s:", ui.Warning.Sprint("[dry-run]"), len(paths), ui.Highlight.Sprint(manifest.RunID))
			fmt.Print(utils.FormatPaths(paths, 20))
			fmt.Println("\nNo changes made.")
			return nil
		}

		if !cleanForce {
			fmt.Printf("This will delete %d file(s) generated in %s.\n", len(paths), ui.Path.Sprint(manifest.TargetDir))
			if !utils.Confirm(os.Stdin, os.Stdout, "Do you want to continue? [y/N]: ") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		spinner, cleanup := startSpinner("Removing chaff files...", verbose)
		defer cleanup()

		result, err := workflows.Clean(cmd.Context(), workflows.CleanOptions{ManifestPath: preview.ManifestPath})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to clean run %s: %v", manifest.RunID, err)
		}

		spinner.FinalMSG = formatCleanResult(result)
		return nil
	},
}

func formatCleanResult(result *workflows.CleanResult) string {
	files := result.Files
	msg := fmt.Sprintf("%s Removed %d file(s)", ui.Success.Sprint("✓"), len(files.Removed))
	if len(files.Missing) > 0 {
		msg += " " + ui.Muted.Sprintf("%d already gone", len(files.Missing))
	}
	if len(files.Modified) > 0 {
		msg += "\n" + ui.Warning.Sprint("⚠") + " Kept files modified since generation:" + utils.FormatPaths(files.Modified, 10)
	}
	if len(files.Failed) > 0 {
		failed := lo.Keys(files.Failed)
		sort.Strings(failed)
		msg += "\n" + ui.Error.Sprint("✗") + " Could not remove:" + utils.FormatPaths(failed, 10)
	}
	if result.ManifestRemoved {
		msg += "\n" + ui.Info.Sprint("→") + " Run " + ui.Highlight.Sprint(result.Manifest.RunID) + " is fully cleaned"
	} else {
		msg += "\n" + ui.Info.Sprint("→") + " Manifest kept at " + ui.Path.Sprint(result.ManifestPath)
	}
	return msg
}
