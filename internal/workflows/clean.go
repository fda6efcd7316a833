package workflows

import (
	"context"
	"errors"
	"os"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/audit"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/output"
)

// CleanOptions configures the clean workflow.
type CleanOptions struct {
	// ManifestPath names the run to clean. Empty picks the newest run in
	// ManifestDir.
	ManifestPath string

	// ManifestDir holds run manifests. Empty uses the user data directory.
	ManifestDir string

	// DryRun previews what would be removed without making changes.
	DryRun bool
}

// CleanResult contains the outcome of a clean operation.
type CleanResult struct {
	// Manifest is the run that was cleaned.
	Manifest *output.Manifest

	// ManifestPath is where the manifest was read from.
	ManifestPath string

	// Files is the per-file outcome. Nil on a dry run.
	Files *output.CleanResult

	// ManifestRemoved is true when nothing of the run remains on disk.
	ManifestRemoved bool

	// DryRun indicates whether this was a dry-run.
	DryRun bool
}

// Clean deletes the files written by one generate run. Files modified since
// they were written are kept.
//
// Returns ErrManifestNotFound if no run is recorded.
func Clean(ctx context.Context, opts CleanOptions) (*CleanResult, error) {
	dir := opts.ManifestDir
	if dir == "" {
		dir = configs.UserChaffSettings.ManifestsPath
	}

	var (
		manifest *output.Manifest
		err      error
	)
	path := opts.ManifestPath
	if path != "" {
		manifest, err = output.LoadManifest(path)
	} else {
		manifest, err = output.LatestManifest(dir)
		if err == nil {
			path = output.ManifestPath(dir, manifest.RunID)
		}
	}
	if err != nil {
		return nil, err
	}

	result := &CleanResult{Manifest: manifest, ManifestPath: path, DryRun: opts.DryRun}
	if opts.DryRun {
		return result, nil
	}

	files, err := output.Clean(ctx, manifest)
	result.Files = files
	if err != nil {
		return result, err
	}
	result.ManifestRemoved = removeManifestIfDone(path, files)

	entry := audit.NewEntry("clean")
	entry.RunID = manifest.RunID
	entry.TargetDir = manifest.TargetDir
	entry.Manifest = path
	entry.RemovedCount = len(files.Removed)
	entry.SkippedCount = len(files.Modified) + len(files.Failed)
	audit.Log(entry)

	return result, nil
}

// removeManifestIfDone deletes the manifest once every file it lists is
// gone. Modified or undeletable files keep it around for another attempt.
func removeManifestIfDone(path string, files *output.CleanResult) bool {
	if files == nil || len(files.Modified) > 0 || len(files.Failed) > 0 {
		return false
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false
	}
	return true
}
