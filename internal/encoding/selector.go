package encoding

import (
	"fmt"
	"math/rand/v2"
	"slices"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// WeightTable maps a kind to one weight per method, in AllMethods order.
type WeightTable map[plan.Kind][]float64

// fallbackWeights applies to soft-rule kinds missing from the table.
var fallbackWeights = []float64{0.5, 0.2, 0.1, 0.1, 0.1, 0, 0}

// DefaultWeights returns the built-in table.
func DefaultWeights() WeightTable {
	return WeightTable{
		plan.KindDOCX: {0.3, 0.2, 0.1, 0.1, 0.2, 0.05, 0.05},
		plan.KindXLSX: {0.2, 0.2, 0.1, 0.1, 0.1, 0.2, 0.1},
		plan.KindCSV:  {0.2, 0.2, 0.1, 0.1, 0.1, 0.2, 0.1},
		plan.KindTXT:  {0.3, 0.3, 0.2, 0.1, 0.05, 0.03, 0.02},
	}
}

// WeightTableFromConfig overlays configured rows, keyed by kind name, onto
// the defaults.
func WeightTableFromConfig(rows map[string][]float64) (WeightTable, error) {
	table := DefaultWeights()
	for name, row := range rows {
		kind, err := plan.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cerrors.ErrInvalidWeights, err)
		}
		table[kind] = slices.Clone(row)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate rejects rows of the wrong length, negative weights and rows
// that sum to zero.
func (wt WeightTable) Validate() error {
	for kind, row := range wt {
		if len(row) != len(methodNames) {
			return fmt.Errorf("%w: %s has %d weights, want %d", cerrors.ErrInvalidWeights, kind, len(row), len(methodNames))
		}
		total := 0.0
		for _, w := range row {
			if w < 0 {
				return fmt.Errorf("%w: %s has negative weight %v", cerrors.ErrInvalidWeights, kind, w)
			}
			total += w
		}
		if total == 0 && !HardRule(kind) {
			return fmt.Errorf("%w: %s weights are all zero", cerrors.ErrInvalidWeights, kind)
		}
	}
	return nil
}

// HardRule reports whether kind is always left unencoded. Native binary
// formats stay openable and emails stay readable.
func HardRule(kind plan.Kind) bool {
	switch kind {
	case plan.KindPDF, plan.KindJPG, plan.KindPNG, plan.KindEmail:
		return true
	}
	return false
}

// Selector picks an encoding method per file kind.
type Selector struct {
	weights WeightTable
}

// NewSelector returns a selector over weights. A nil table uses the defaults.
func NewSelector(weights WeightTable) (*Selector, error) {
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Selector{weights: weights}, nil
}

// Select draws a method for kind from rng.
func (s *Selector) Select(kind plan.Kind, rng *rand.Rand) Method {
	if HardRule(kind) {
		return None
	}
	row, ok := s.weights[kind]
	if !ok {
		row = fallbackWeights
	}
	idx := utils.WeightedIndex(rng, row)
	if idx < 0 {
		return None
	}
	return Method(idx)
}

// Weights returns the row used for kind, or nil for hard-rule kinds.
func (s *Selector) Weights(kind plan.Kind) []float64 {
	if HardRule(kind) {
		return nil
	}
	if row, ok := s.weights[kind]; ok {
		return slices.Clone(row)
	}
	return slices.Clone(fallbackWeights)
}
