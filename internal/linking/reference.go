package linking

import (
	"fmt"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
)

// RelationKind names why one file mentions another.
type RelationKind string

const (
	RelationAttachment        RelationKind = "attachment"
	RelationEmailSource       RelationKind = "email-source"
	RelationEmbeddedImage     RelationKind = "embedded-image"
	RelationDocumentReference RelationKind = "document-reference"
	RelationDataSource        RelationKind = "data-source"
	RelationProjectReference  RelationKind = "project-reference"
	RelationVersionReference  RelationKind = "version-reference"
	RelationPassword          RelationKind = "password"
	RelationBackup            RelationKind = "backup"
	RelationData              RelationKind = "data"
)

// FileReference is a directed, typed edge between two planned files.
// Two edges between the same pair with different kinds are legal.
type FileReference struct {
	Source  string       `toml:"source"`
	Target  string       `toml:"target"`
	Kind    RelationKind `toml:"kind"`
	Context string       `toml:"context"`
}

// Validate checks that every edge joins two distinct members of plans.
func Validate(edges []FileReference, plans *plan.PlanSet) error {
	for i, e := range edges {
		if e.Source == e.Target {
			return fmt.Errorf("%w: edge %d (%s) points %s at itself", cerrors.ErrInvalidReference, i, e.Kind, e.Source)
		}
		if !plans.Contains(e.Source) {
			return fmt.Errorf("%w: edge %d source %s is not planned", cerrors.ErrInvalidReference, i, e.Source)
		}
		if !plans.Contains(e.Target) {
			return fmt.Errorf("%w: edge %d target %s is not planned", cerrors.ErrInvalidReference, i, e.Target)
		}
	}
	return nil
}

// outgoing returns the edges whose source is name, in edge order.
func outgoing(edges []FileReference, name string) []FileReference {
	var out []FileReference
	for _, e := range edges {
		if e.Source == name {
			out = append(out, e)
		}
	}
	return out
}
