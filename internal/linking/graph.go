package linking

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/samber/lo"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// Probabilities tunes the random relation passes.
type Probabilities struct {
	// ReverseAttachment is the chance an attachment also points back at its email.
	ReverseAttachment float64 `toml:"reverse_attachment" json:"reverse_attachment"`
	// EmbedImages is the chance a document embeds images.
	EmbedImages float64 `toml:"embed_images" json:"embed_images"`
	// ProjectMembership is the chance a file joins a project.
	ProjectMembership float64 `toml:"project_membership" json:"project_membership"`
	// PasswordReference is the chance a protected file's password is planted.
	PasswordReference float64 `toml:"password_reference" json:"password_reference"`
}

// DefaultProbabilities returns the stock tuning.
func DefaultProbabilities() Probabilities {
	return Probabilities{
		ReverseAttachment: 0.3,
		EmbedImages:       0.6,
		ProjectMembership: 0.7,
		PasswordReference: 0.7,
	}
}

// Validate checks every probability lies in [0, 1].
func (p Probabilities) Validate() error {
	fields := map[string]float64{
		"reverse_attachment": p.ReverseAttachment,
		"embed_images":       p.EmbedImages,
		"project_membership": p.ProjectMembership,
		"password_reference": p.PasswordReference,
	}
	for name, v := range fields {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: linking.%s = %v, want 0..1", cerrors.ErrInvalidConfig, name, v)
		}
	}
	return nil
}

var projectNames = []string{"Alpha", "Beta", "Gamma", "Delta", "Phoenix", "Titan", "Nova", "Apex"}

var versionIndicators = []string{"_v2", "_v3", "_final", "_draft", "_copy", "_backup", "_old"}

var passwordCarrierKinds = []plan.Kind{plan.KindEmail, plan.KindTXT, plan.KindDOCX}

var attachmentPhrases = []string{
	"Please see the attached %[2]s file: %[1]s",
	"Attachment: %[1]s contains the requested data",
	"See attached document %[1]s for details",
	"Please review the enclosed file: %[1]s",
	"The file %[1]s is attached for your reference",
	"Attached: %[1]s (contains confidential information)",
	"Please find %[1]s attached to this email",
	"Document attached: %[1]s - requires immediate attention",
}

var documentPhrases = []string{
	"See related document: %s",
	"Additional information in: %s",
	"Cross-reference: %s",
	"Supporting documentation: %s",
	"Referenced in document: %s",
	"See also: %s for complete details",
}

var dataSourcePhrases = []string{
	"Data source: %s",
	"Supporting file: %s",
	"Referenced document: %s",
	"Source material: %s",
	"Analysis based on: %s",
	"Data extracted from: %s",
}

var versionPhrases = []string{
	"Previous version: %s",
	"Updated version of: %s",
	"See also version: %s",
	"Replaces: %s",
	"Related version: %s",
}

// pass generates one family of edges from its own random source.
type pass func(r *rand.Rand, in *graphInput) []FileReference

type graphInput struct {
	all       []plan.FileDescriptor
	parts     plan.Partition
	passwords []PasswordEntry
}

// GraphBuilder generates the reference graph for a plan.
type GraphBuilder struct {
	rng   *rand.Rand
	probs Probabilities
}

// NewGraphBuilder returns a builder drawing from rng.
func NewGraphBuilder(rng *rand.Rand, probs Probabilities) *GraphBuilder {
	return &GraphBuilder{rng: rng, probs: probs}
}

// Build runs every relation pass concurrently and concatenates the results
// in a fixed pass order. Passes that lack candidates emit fewer edges.
func (b *GraphBuilder) Build(plans *plan.PlanSet, registry *PasswordRegistry) []FileReference {
	in := &graphInput{
		all:       plans.All(),
		parts:     plans.Partition(),
		passwords: registry.Entries(),
	}

	passes := []pass{
		b.emailAttachments,
		b.imageEmbeddings,
		b.documentReferences,
		b.spreadsheetReferences,
		b.projectReferences,
		b.versionReferences,
		b.passwordReferences,
		b.backupReferences,
		b.dataReferences,
	}

	// Child generators are derived before any goroutine starts so the
	// output depends only on the builder's seed.
	rngs := make([]*rand.Rand, len(passes))
	for i := range passes {
		rngs[i] = utils.DeriveRand(b.rng)
	}

	results := make([][]FileReference, len(passes))
	var wg sync.WaitGroup
	for i, p := range passes {
		wg.Add(1)
		go func(i int, p pass) {
			defer wg.Done()
			results[i] = p(rngs[i], in)
		}(i, p)
	}
	wg.Wait()

	return lo.Flatten(results)
}

func (b *GraphBuilder) emailAttachments(r *rand.Rand, in *graphInput) []FileReference {
	pool := make([]plan.FileDescriptor, 0, len(in.all))
	pool = append(pool, in.parts.Documents...)
	pool = append(pool, in.parts.Spreadsheets...)
	pool = append(pool, in.parts.Images...)
	if len(pool) == 0 {
		return nil
	}

	var edges []FileReference
	for _, email := range in.parts.Emails {
		n := utils.IntBetween(r, 1, min(6, len(pool)))
		for _, att := range utils.Sample(r, pool, n) {
			phrase := utils.Choice(r, attachmentPhrases)
			edges = append(edges, FileReference{
				Source:  email.Name,
				Target:  att.Name,
				Kind:    RelationAttachment,
				Context: fmt.Sprintf(phrase, att.Name, strings.ToUpper(string(att.Kind))),
			})
			if utils.Chance(r, b.probs.ReverseAttachment) {
				edges = append(edges, FileReference{
					Source:  att.Name,
					Target:  email.Name,
					Kind:    RelationEmailSource,
					Context: fmt.Sprintf("This file was sent via email: %s", email.Name),
				})
			}
		}
	}
	return edges
}

func (b *GraphBuilder) imageEmbeddings(r *rand.Rand, in *graphInput) []FileReference {
	images := in.parts.Images
	var edges []FileReference
	for _, doc := range in.parts.Documents {
		if !utils.Chance(r, b.probs.EmbedImages) || len(images) == 0 {
			continue
		}
		n := utils.IntBetween(r, 1, min(3, len(images)))
		for _, img := range utils.Sample(r, images, n) {
			edges = append(edges, FileReference{
				Source:  doc.Name,
				Target:  img.Name,
				Kind:    RelationEmbeddedImage,
				Context: fmt.Sprintf("Document contains embedded image: %s", img.Name),
			})
		}
	}
	return edges
}

func (b *GraphBuilder) documentReferences(r *rand.Rand, in *graphInput) []FileReference {
	docs := in.parts.Documents
	var edges []FileReference
	for _, doc := range docs {
		others := lo.Reject(docs, func(d plan.FileDescriptor, _ int) bool { return d.Name == doc.Name })
		if len(others) == 0 {
			continue
		}
		n := utils.IntBetween(r, 1, min(3, len(others)))
		for _, ref := range utils.Sample(r, others, n) {
			edges = append(edges, FileReference{
				Source:  doc.Name,
				Target:  ref.Name,
				Kind:    RelationDocumentReference,
				Context: fmt.Sprintf(utils.Choice(r, documentPhrases), ref.Name),
			})
		}
	}
	return edges
}

func (b *GraphBuilder) spreadsheetReferences(r *rand.Rand, in *graphInput) []FileReference {
	pool := make([]plan.FileDescriptor, 0, len(in.parts.Documents)+len(in.parts.Images))
	pool = append(pool, in.parts.Documents...)
	pool = append(pool, in.parts.Images...)
	if len(pool) < 2 {
		return nil
	}

	var edges []FileReference
	for _, sheet := range in.parts.Spreadsheets {
		n := utils.IntBetween(r, 2, min(4, len(pool)))
		for _, ref := range utils.Sample(r, pool, n) {
			edges = append(edges, FileReference{
				Source:  sheet.Name,
				Target:  ref.Name,
				Kind:    RelationDataSource,
				Context: fmt.Sprintf(utils.Choice(r, dataSourcePhrases), ref.Name),
			})
		}
	}
	return edges
}

func (b *GraphBuilder) projectReferences(r *rand.Rand, in *graphInput) []FileReference {
	members := make(map[string][]plan.FileDescriptor, len(projectNames))
	for _, f := range in.all {
		if utils.Chance(r, b.probs.ProjectMembership) {
			project := utils.Choice(r, projectNames)
			members[project] = append(members[project], f)
		}
	}

	var edges []FileReference
	for _, project := range projectNames {
		files := members[project]
		if len(files) < 2 {
			continue
		}
		for _, f := range files {
			others := lo.Reject(files, func(o plan.FileDescriptor, _ int) bool { return o.Name == f.Name })
			n := utils.IntBetween(r, 1, min(2, len(others)))
			for _, ref := range utils.Sample(r, others, n) {
				edges = append(edges, FileReference{
					Source:  f.Name,
					Target:  ref.Name,
					Kind:    RelationProjectReference,
					Context: fmt.Sprintf("Project %s file: %s", project, ref.Name),
				})
			}
		}
	}
	return edges
}

func (b *GraphBuilder) versionReferences(r *rand.Rand, in *graphInput) []FileReference {
	var order []string
	groups := make(map[string][]plan.FileDescriptor)
	for _, f := range in.all {
		base := VersionBase(f.Name)
		if _, seen := groups[base]; !seen {
			order = append(order, base)
		}
		groups[base] = append(groups[base], f)
	}

	var edges []FileReference
	for _, base := range order {
		files := groups[base]
		if len(files) < 2 {
			continue
		}
		for _, f := range files {
			for _, other := range files {
				if other.Name == f.Name {
					continue
				}
				edges = append(edges, FileReference{
					Source:  f.Name,
					Target:  other.Name,
					Kind:    RelationVersionReference,
					Context: fmt.Sprintf(utils.Choice(r, versionPhrases), other.Name),
				})
			}
		}
	}
	return edges
}

func (b *GraphBuilder) passwordReferences(r *rand.Rand, in *graphInput) []FileReference {
	var edges []FileReference
	for _, entry := range in.passwords {
		if !utils.Chance(r, b.probs.PasswordReference) {
			continue
		}
		carriers := lo.Filter(in.all, func(f plan.FileDescriptor, _ int) bool {
			return f.Name != entry.Name && lo.Contains(passwordCarrierKinds, f.Kind)
		})
		if len(carriers) == 0 {
			continue
		}
		carrier := utils.Choice(r, carriers)
		edges = append(edges, FileReference{
			Source:  carrier.Name,
			Target:  entry.Name,
			Kind:    RelationPassword,
			Context: fmt.Sprintf("Password for %s: %s", entry.Name, entry.Password),
		})
	}
	return edges
}

func (b *GraphBuilder) backupReferences(r *rand.Rand, in *graphInput) []FileReference {
	sheets := in.parts.Spreadsheets
	if len(sheets) == 0 {
		return nil
	}
	docs := in.parts.Documents
	var edges []FileReference
	for _, doc := range docs[:len(docs)/3] {
		backup := utils.Choice(r, sheets)
		edges = append(edges, FileReference{
			Source:  doc.Name,
			Target:  backup.Name,
			Kind:    RelationBackup,
			Context: fmt.Sprintf("Backup data stored in: %s", backup.Name),
		})
	}
	return edges
}

func (b *GraphBuilder) dataReferences(r *rand.Rand, in *graphInput) []FileReference {
	docs := in.parts.Documents
	if len(docs) == 0 {
		return nil
	}
	sheets := in.parts.Spreadsheets
	var edges []FileReference
	for _, sheet := range sheets[:len(sheets)/2] {
		source := utils.Choice(r, docs)
		edges = append(edges, FileReference{
			Source:  sheet.Name,
			Target:  source.Name,
			Kind:    RelationData,
			Context: fmt.Sprintf("Data source: %s", source.Name),
		})
	}
	return edges
}

// VersionBase strips version markers and everything from the first dot,
// so report_v2.txt and report_final.pdf share the base "report".
func VersionBase(name string) string {
	base := name
	for _, indicator := range versionIndicators {
		base = strings.ReplaceAll(base, indicator, "")
	}
	if dot := strings.Index(base, "."); dot >= 0 {
		base = base[:dot]
	}
	return base
}
