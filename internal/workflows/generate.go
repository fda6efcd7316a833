package workflows

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/audit"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/linking"
	logger "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/logging"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/output"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/render"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// GenerateOptions configures the generate workflow.
type GenerateOptions struct {
	// Config holds the resolved settings. Nil loads the default config file.
	Config *configs.Config

	// Seed overrides Config.Seed when non-zero.
	Seed uint64

	// DryRun plans the run and checks disk space without writing anything.
	DryRun bool

	// ManifestDir is where the run manifest is saved. Empty uses the user
	// data directory.
	ManifestDir string

	// Log reports progress between phases.
	Log logger.Logger
}

// GenerateResult contains the outcome of a generate operation.
type GenerateResult struct {
	// RunID identifies the run in the audit log and names its manifest.
	RunID string

	// Seed reproduces the run's plan, content and links.
	Seed uint64

	// TargetDir is where files were written.
	TargetDir string

	// Warnings are non-fatal configuration problems.
	Warnings []string

	// Space is the disk space measured before planning.
	Space configs.DiskSpace

	// Plan is the set of files that was (or would be) generated.
	Plan        *plan.PlanSet
	PlanSummary plan.Summary

	// Network and Summary describe encoding and linking. Nil on a dry run.
	Network *linking.Network
	Summary linking.Summary

	// Written lists files on disk, in plan order.
	Written []*output.WrittenFile

	// ManifestPath is where the run manifest was saved.
	ManifestPath string

	// Cleaned is set when delete_after_completion removed the files again.
	Cleaned *output.CleanResult

	// DryRun indicates whether this was a dry-run.
	DryRun bool
}

// Generate plans, renders, encodes, links and writes a set of chaff files.
//
// Returns ErrInvalidConfig (or a more specific config error) when settings
// cannot be used, ErrInsufficientSpace when the target volume cannot hold
// the smallest allowed plan, and ErrEmptyPlan when nothing would be written.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = configs.LoadConfig(configs.UserChaffSettings.ConfigPath); err != nil {
			return nil, err
		}
	}
	log := opts.Log

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	settings, err := resolveSettings(cfg)
	if err != nil {
		return nil, err
	}
	limits, kinds, weights, policy := settings.limits, settings.kinds, settings.weights, settings.policy

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = utils.RandomSeed()
	}

	result := &GenerateResult{
		RunID:     audit.NewRunID(),
		Seed:      seed,
		TargetDir: cfg.TargetDirectory,
		Warnings:  warnings,
		DryRun:    opts.DryRun,
	}
	for _, w := range warnings {
		log.Warnf("%s", w)
	}

	space, err := configs.UsableDiskSpace(cfg.TargetDirectory, limits.ReserveSpace)
	if err != nil {
		return nil, fmt.Errorf("measuring disk space: %w", err)
	}
	result.Space = space
	if err := space.CheckSpace(limits.MinFileCount, limits.MinFileSize); err != nil {
		if !opts.DryRun {
			return nil, err
		}
		result.Warnings = append(result.Warnings, err.Error())
	}

	// Child generators are derived in a fixed order from the run seed.
	root := utils.NewRand(seed)
	planRng := utils.DeriveRand(root)
	renderRng := utils.DeriveRand(root)
	timeRng := utils.DeriveRand(root)
	linkSeed := root.Uint64()

	plans, err := plan.NewPlanner(plan.Options{
		MinFileSize:  limits.MinFileSize,
		MaxFileSize:  limits.MaxFileSize,
		MinFileCount: limits.MinFileCount,
		MaxFileCount: limits.MaxFileCount,
		FileTypes:    kinds,
		Languages:    cfg.Languages,
		FillDrive:    cfg.FillDrive,
		UsableSpace:  space.Usable,
	}, planRng).Plan()
	if err != nil {
		return nil, err
	}
	result.Plan = plans
	result.PlanSummary = plan.Summarize(plans)
	log.Infof("Planned %d files (%s)", result.PlanSummary.TotalFiles, utils.FormatSize(result.PlanSummary.TotalSize))

	if opts.DryRun {
		logGenerate(result, true)
		return result, nil
	}

	contents, err := renderAll(ctx, plans, renderRng, log)
	if err != nil {
		return nil, err
	}

	manager, err := linking.NewManager(linking.Options{
		Seed:          linkSeed,
		Weights:       weights,
		Probabilities: &cfg.Linking,
		Workers:       cfg.Workers,
	})
	if err != nil {
		return nil, err
	}
	network, err := manager.Run(ctx, plans, contents)
	if err != nil {
		return nil, err
	}
	result.Network = network
	result.Summary = network.Summary()
	log.Infof("Linked %d files with %d references, %d protected",
		result.Summary.TotalFiles, result.Summary.TotalReferences, result.Summary.ProtectedFiles)

	// A partial write still gets a manifest so clean can remove it.
	written, writeErr := writeAll(ctx, network.Files, cfg, policy, timeRng, log)
	result.Written = written
	if len(written) == 0 && writeErr != nil {
		return result, writeErr
	}

	manifestDir := opts.ManifestDir
	if manifestDir == "" {
		manifestDir = configs.UserChaffSettings.ManifestsPath
	}
	manifest := output.NewManifest(result.RunID, seed, cfg.TargetDirectory, written)
	result.ManifestPath = output.ManifestPath(manifestDir, result.RunID)
	if err := output.SaveManifest(result.ManifestPath, manifest); err != nil {
		return result, err
	}
	log.Debugf("Saved manifest to %s", result.ManifestPath)
	if writeErr != nil {
		return result, writeErr
	}

	logGenerate(result, false)

	if cfg.DeleteAfterCompletion {
		log.Infof("Deleting generated files in %s", limits.CleanupDelay)
		cleaned, err := output.CleanAfter(ctx, manifest, limits.CleanupDelay)
		if err != nil {
			return result, err
		}
		result.Cleaned = cleaned
		removeManifestIfDone(result.ManifestPath, cleaned)
	}

	return result, nil
}

// runSettings are the parsed forms of the config values a run needs.
type runSettings struct {
	limits  configs.Limits
	kinds   []plan.Kind
	weights encoding.WeightTable
	policy  output.SuffixPolicy
}

func resolveSettings(cfg *configs.Config) (runSettings, error) {
	var rs runSettings
	var err error
	if rs.limits, err = cfg.Limits(); err != nil {
		return rs, err
	}
	if rs.kinds, err = cfg.Kinds(); err != nil {
		return rs, err
	}
	if rs.weights, err = cfg.Weights(); err != nil {
		return rs, err
	}
	if rs.policy, err = output.ParseSuffixPolicy(cfg.SuffixPolicy); err != nil {
		return rs, err
	}
	return rs, nil
}

// renderAll produces raw content for every planned file. Each file gets its
// own generator derived in plan order.
func renderAll(ctx context.Context, plans *plan.PlanSet, rng *rand.Rand, log logger.Logger) (map[string][]byte, error) {
	descriptors := plans.All()
	rngs := make([]*rand.Rand, len(descriptors))
	for i := range descriptors {
		rngs[i] = utils.DeriveRand(rng)
	}

	contents := make(map[string][]byte, len(descriptors))
	for i, d := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := render.New(d.Kind, rngs[i])
		if err != nil {
			return nil, err
		}
		render.AssignReferences(r, d, plans, rngs[i])
		content, err := r.Render(d)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", d.Name, err)
		}
		contents[d.Name] = content
		log.Debugf("Rendered %s (%d bytes)", d.Name, len(content))
	}
	return contents, nil
}

func writeAll(ctx context.Context, files []*linking.EncodedFile, cfg *configs.Config, policy output.SuffixPolicy, rng *rand.Rand, log logger.Logger) ([]*output.WrittenFile, error) {
	writer := output.NewWriter(cfg.TargetDirectory, policy)
	stamps := output.NewTimestampRandomizer(rng)

	written := make([]*output.WrittenFile, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		w, err := writer.Write(f)
		if err != nil {
			return written, err
		}
		written = append(written, w)

		if cfg.RandomizeTimestamps {
			if _, err := stamps.Apply(w.Path, f.Kind()); err != nil {
				log.Warnf("Could not set timestamps on %s: %v", w.Path, err)
			}
		}
	}
	return written, nil
}

func logGenerate(result *GenerateResult, dryRun bool) {
	entry := audit.NewEntry("generate")
	entry.RunID = result.RunID
	entry.TargetDir = result.TargetDir
	entry.Seed = strconv.FormatUint(result.Seed, 10)
	entry.DryRun = dryRun
	entry.Manifest = result.ManifestPath
	if dryRun {
		entry.FilesCount = result.PlanSummary.TotalFiles
	} else {
		entry.FilesCount = len(result.Written)
		entry.ProtectedCount = result.Summary.ProtectedFiles
		entry.ReferenceCount = result.Summary.TotalReferences
	}
	audit.Log(entry)
}
