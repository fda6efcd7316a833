package plan

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// Options bounds what the planner may produce.
type Options struct {
	MinFileSize  uint64
	MaxFileSize  uint64
	MinFileCount int
	MaxFileCount int
	FileTypes    []Kind
	Languages    []string

	// FillDrive sizes the plan to consume UsableSpace instead of drawing a
	// random count.
	FillDrive   bool
	UsableSpace uint64
}

// Summary holds aggregate statistics for a plan.
type Summary struct {
	TotalFiles  int
	TotalSize   uint64
	AverageSize uint64
	Kinds       map[Kind]int
	Languages   map[string]int
}

var baseNames = map[string][]string{
	"en": {"document", "report", "data", "file", "backup", "archive", "temp"},
	"es": {"documento", "informe", "datos", "archivo", "respaldo", "temporal"},
	"fr": {"document", "rapport", "donnees", "fichier", "sauvegarde", "temporaire"},
	"de": {"dokument", "bericht", "daten", "datei", "sicherung", "temporaer"},
	"cn": {"wenjian", "baogao", "shuju", "beifen", "linshi"},
	"jp": {"bunso", "hokoku", "deeta", "bakkuappu", "ichiji"},
	"ru": {"dokument", "otchet", "dannye", "fajl", "rezerv", "vremennyj"},
}

var nameSuffixes = []string{"", "_copy", "_backup", "_final", "_draft", "_v2", "_old"}

// Planner turns Options into a PlanSet.
type Planner struct {
	opts Options
	rng  *rand.Rand
}

// NewPlanner returns a planner drawing from rng.
func NewPlanner(opts Options, rng *rand.Rand) *Planner {
	if len(opts.FileTypes) == 0 {
		opts.FileTypes = AllKinds()
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{"en"}
	}
	return &Planner{opts: opts, rng: rng}
}

// Plan generates descriptors. Returns ErrEmptyPlan when nothing fits.
func (p *Planner) Plan() (*PlanSet, error) {
	var (
		count   int
		avgSize uint64
	)
	if p.opts.FillDrive {
		count, avgSize = p.fillDriveParameters()
	} else {
		count = utils.IntBetween(p.rng, p.opts.MinFileCount, p.opts.MaxFileCount)
		avgSize = (p.opts.MinFileSize + p.opts.MaxFileSize) / 2
	}
	if count <= 0 {
		return nil, cerrors.ErrEmptyPlan
	}

	descriptors := make([]FileDescriptor, 0, count)
	used := make(map[string]bool, count)
	targetTotal := uint64(count) * avgSize
	var allocated uint64

	for i := 0; i < count; i++ {
		kind := utils.Choice(p.rng, p.opts.FileTypes)
		language := utils.Choice(p.rng, p.opts.Languages)

		var size uint64
		if p.opts.FillDrive {
			size = p.fillDriveSize(count-i, targetTotal, allocated)
		} else {
			size = p.randomSize(p.opts.MinFileSize, p.opts.MaxFileSize)
		}

		name := p.uniqueName(p.fileName(kind, language), used)
		used[name] = true

		descriptors = append(descriptors, FileDescriptor{
			Kind:      kind,
			SizeBytes: size,
			Language:  language,
			Name:      name,
		})
		allocated += size
	}

	return NewPlanSet(descriptors)
}

func (p *Planner) fillDriveParameters() (int, uint64) {
	usable := p.opts.UsableSpace
	if usable == 0 {
		return 0, 0
	}

	avgTarget := (p.opts.MinFileSize + p.opts.MaxFileSize) / 2
	if avgTarget == 0 {
		avgTarget = 1
	}
	estimated := int(usable / avgTarget)
	count := max(p.opts.MinFileCount, min(estimated, p.opts.MaxFileCount))
	if count <= 0 {
		return 0, 0
	}

	avg := usable / uint64(count)
	avg = max(p.opts.MinFileSize, min(avg, p.opts.MaxFileSize))
	return count, avg
}

// fillDriveSize keeps enough room for the remaining files to stay within bounds.
func (p *Planner) fillDriveSize(remainingFiles int, targetTotal, allocated uint64) uint64 {
	minSize, maxSize := p.opts.MinFileSize, p.opts.MaxFileSize
	if allocated >= targetTotal {
		return minSize
	}
	remainingSpace := targetTotal - allocated

	if remainingFiles <= 1 {
		return max(minSize, min(remainingSpace, maxSize))
	}

	others := uint64(remainingFiles - 1)
	upper := maxSize
	if reserve := others * minSize; remainingSpace > reserve {
		upper = min(maxSize, remainingSpace-reserve)
	} else {
		return minSize
	}
	lower := minSize
	if reserve := others * maxSize; remainingSpace > reserve {
		lower = max(minSize, remainingSpace-reserve)
	}
	if upper < lower {
		return minSize
	}
	return p.randomSize(lower, upper)
}

func (p *Planner) randomSize(lower, upper uint64) uint64 {
	if upper <= lower {
		return lower
	}
	return lower + p.rng.Uint64N(upper-lower+1)
}

func (p *Planner) fileName(kind Kind, language string) string {
	names, ok := baseNames[language]
	if !ok {
		names = baseNames["en"]
	}
	base := utils.Choice(p.rng, names)
	suffix := utils.Choice(p.rng, nameSuffixes)

	if utils.Chance(p.rng, 0.3) {
		base += fmt.Sprintf("_%d", utils.IntBetween(p.rng, 20200101, 20241231))
	}
	return base + suffix + kind.Extension()
}

func (p *Planner) uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	stem, ext := name, ""
	if dot := strings.LastIndex(name, "."); dot > 0 {
		stem, ext = name[:dot], name[dot:]
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if !used[candidate] {
			return candidate
		}
	}
}

// Summarize computes aggregate statistics for a plan.
func Summarize(ps *PlanSet) Summary {
	all := ps.All()
	summary := Summary{
		TotalFiles: len(all),
		Kinds:      lo.CountValuesBy(all, func(d FileDescriptor) Kind { return d.Kind }),
		Languages:  lo.CountValuesBy(all, func(d FileDescriptor) string { return d.Language }),
	}
	summary.TotalSize = lo.SumBy(all, func(d FileDescriptor) uint64 { return d.SizeBytes })
	if summary.TotalFiles > 0 {
		summary.AverageSize = summary.TotalSize / uint64(summary.TotalFiles)
	}
	return summary
}
