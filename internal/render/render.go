package render

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// Renderer produces the raw bytes of one planned file.
type Renderer interface {
	Render(d plan.FileDescriptor) ([]byte, error)
}

// ImageReferencer is implemented by renderers that can mention image files
// inside the content they produce.
type ImageReferencer interface {
	SetImageReferences(names []string)
}

// AttachmentReferencer is implemented by renderers that can list attached
// files inside the content they produce.
type AttachmentReferencer interface {
	SetAttachmentReferences(names []string)
}

// New returns the built-in renderer for kind.
func New(kind plan.Kind, rng *rand.Rand) (Renderer, error) {
	b := newBase(rng)
	switch kind {
	case plan.KindTXT:
		return &TextRenderer{base: b}, nil
	case plan.KindCSV:
		return &CSVRenderer{base: b}, nil
	case plan.KindEmail:
		return &EmailRenderer{base: b}, nil
	case plan.KindPDF:
		return &PDFRenderer{base: b}, nil
	case plan.KindDOCX:
		return &DOCXRenderer{base: b}, nil
	case plan.KindXLSX:
		return &XLSXRenderer{base: b}, nil
	case plan.KindJPG, plan.KindPNG:
		return &ImageRenderer{base: b}, nil
	default:
		return nil, fmt.Errorf("%w: no renderer for %q", cerrors.ErrUnknownKind, kind)
	}
}

// base carries the random sources shared by every renderer.
type base struct {
	rng     *rand.Rand
	faker   *gofakeit.Faker
	docDate time.Time
}

func newBase(rng *rand.Rand) base {
	b := base{rng: rng, faker: gofakeit.New(rng.Uint64())}
	b.docDate = documentDate(rng, time.Now())
	return b
}

// ageBuckets are the spans a document's own date may fall into, relative
// to now, with the weight of each.
var ageBuckets = []struct {
	from, to time.Duration
	weight   float64
}{
	{from: 90 * day, to: day, weight: 0.3},
	{from: 730 * day, to: 90 * day, weight: 0.4},
	{from: 1825 * day, to: 730 * day, weight: 0.2},
	{from: 3650 * day, to: 1825 * day, weight: 0.1},
}

const day = 24 * time.Hour

// documentDate picks a plausible date for a document's content.
func documentDate(rng *rand.Rand, now time.Time) time.Time {
	weights := make([]float64, len(ageBuckets))
	for i, b := range ageBuckets {
		weights[i] = b.weight
	}
	bucket := ageBuckets[utils.WeightedIndex(rng, weights)]
	span := bucket.from - bucket.to
	return now.Add(-bucket.from + time.Duration(rng.Int64N(int64(span))))
}

// dateAround returns a date within [before, after] of the document date.
func (b *base) dateAround(before, after time.Duration) time.Time {
	start := b.docDate.Add(-before)
	span := before + after
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(b.rng.Int64N(int64(span))))
}

func (b *base) randomSeconds(lo, hi int) time.Duration {
	return time.Duration(utils.IntBetween(b.rng, lo, hi)) * time.Second
}
