package output

import (
	"math/rand/v2"
	"os"
	"time"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

const day = 24 * time.Hour

// ageRange is a window of file ages, measured back from now.
type ageRange struct {
	newest, oldest time.Duration
}

// Recent, medium, old and archive ages.
var ageRanges = [4]ageRange{
	{newest: day, oldest: 30 * day},
	{newest: 30 * day, oldest: 365 * day},
	{newest: 365 * day, oldest: 3 * 365 * day},
	{newest: 3 * 365 * day, oldest: 10 * 365 * day},
}

// ageWeights are per-kind weights over ageRanges. Emails skew recent,
// spreadsheets and images skew older.
var ageWeights = map[plan.Kind][]float64{
	plan.KindEmail: {0.4, 0.3, 0.2, 0.1},
	plan.KindPDF:   {0.2, 0.4, 0.3, 0.1},
	plan.KindDOCX:  {0.2, 0.4, 0.3, 0.1},
	plan.KindXLSX:  {0.1, 0.3, 0.4, 0.2},
	plan.KindCSV:   {0.1, 0.3, 0.4, 0.2},
	plan.KindJPG:   {0.15, 0.25, 0.35, 0.25},
	plan.KindPNG:   {0.15, 0.25, 0.35, 0.25},
}

var defaultAgeWeights = []float64{0.25, 0.35, 0.25, 0.15}

// FileTimes are the timestamps given to one file.
type FileTimes struct {
	Created  time.Time
	Modified time.Time
	Accessed time.Time
}

// TimestampRandomizer backdates written files so they look lived-in.
type TimestampRandomizer struct {
	rng *rand.Rand
	now func() time.Time
}

// NewTimestampRandomizer returns a randomizer drawing from rng.
func NewTimestampRandomizer(rng *rand.Rand) *TimestampRandomizer {
	return &TimestampRandomizer{rng: rng, now: time.Now}
}

// Times draws creation, modification and access times for kind. Creation
// falls in the first 80% of a weighted age range, modification after it,
// and access usually within the last 90 days.
func (t *TimestampRandomizer) Times(kind plan.Kind) FileTimes {
	now := t.now()
	weights, ok := ageWeights[kind]
	if !ok {
		weights = defaultAgeWeights
	}
	r := ageRanges[utils.WeightedIndex(t.rng, weights)]
	start := now.Add(-r.oldest)
	end := now.Add(-r.newest)
	span := end.Sub(start)

	created := start.Add(t.between(0, span*8/10))
	modified := created.Add(t.between(0, end.Sub(created)))

	var accessed time.Time
	if utils.Chance(t.rng, 0.7) {
		recent := now.Add(-90 * day)
		if modified.After(recent) {
			recent = modified
		}
		accessed = recent.Add(t.between(0, now.Sub(recent)))
	} else {
		accessed = modified.Add(t.between(0, 7*day))
		if accessed.After(now) {
			accessed = now
		}
	}
	return FileTimes{Created: created, Modified: modified, Accessed: accessed}
}

// Apply sets access and modification times on path. Creation time cannot be
// set portably and is left to the filesystem.
func (t *TimestampRandomizer) Apply(path string, kind plan.Kind) (FileTimes, error) {
	times := t.Times(kind)
	if err := os.Chtimes(path, times.Accessed, times.Modified); err != nil {
		return FileTimes{}, err
	}
	return times, nil
}

func (t *TimestampRandomizer) between(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(t.rng.Int64N(int64(hi-lo)))
}
