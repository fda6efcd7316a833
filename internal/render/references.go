package render

import (
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// AssignReferences hands image and attachment names from the plan to
// renderers that can mention them. Documents get 1-3 images; emails get
// 1-4 images and 1-5 documents or spreadsheets. Files never reference
// themselves.
func AssignReferences(r Renderer, d plan.FileDescriptor, plans *plan.PlanSet, rng *rand.Rand) {
	parts := plans.Partition()

	if ir, ok := r.(ImageReferencer); ok {
		images := lo.Without(plan.Names(parts.Images), d.Name)
		upper := 3
		if d.Kind == plan.KindEmail {
			upper = 4
		}
		if len(images) > 0 {
			ir.SetImageReferences(utils.Sample(rng, images, utils.IntBetween(rng, 1, upper)))
		}
	}

	if ar, ok := r.(AttachmentReferencer); ok {
		pool := lo.Without(plan.Names(append(parts.Documents, parts.Spreadsheets...)), d.Name)
		if len(pool) > 0 {
			ar.SetAttachmentReferences(utils.Sample(rng, pool, utils.IntBetween(rng, 1, 5)))
		}
	}
}
