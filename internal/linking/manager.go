package linking

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/samber/lo"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/secrets"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// Options configures a Manager.
type Options struct {
	// Seed makes a run reproducible. Zero draws a random seed, which is
	// reported back in Network.Seed.
	Seed uint64

	// Weights overrides the encoding weight table. Nil uses the defaults.
	Weights encoding.WeightTable

	// Probabilities tunes the relation passes. Nil uses the defaults.
	Probabilities *Probabilities

	// Workers bounds concurrent encoding. Zero uses runtime.NumCPU.
	Workers int
}

// Manager runs the encode, link, rewrite and hint pipeline over a plan.
type Manager struct {
	selector *encoding.Selector
	probs    Probabilities
	seed     uint64
	workers  int
}

// NewManager validates opts and returns a manager.
func NewManager(opts Options) (*Manager, error) {
	selector, err := encoding.NewSelector(opts.Weights)
	if err != nil {
		return nil, err
	}

	probs := DefaultProbabilities()
	if opts.Probabilities != nil {
		probs = *opts.Probabilities
	}
	if err := probs.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = utils.RandomSeed()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Manager{selector: selector, probs: probs, seed: seed, workers: workers}, nil
}

// Seed returns the seed the manager runs with.
func (m *Manager) Seed() uint64 {
	return m.seed
}

// Run encodes every planned file, builds the reference graph, rewrites the
// text-inspectable files and distributes password hints. contents must hold
// the rendered bytes of every planned file. Any encoding failure aborts the
// run.
func (m *Manager) Run(ctx context.Context, plans *plan.PlanSet, contents map[string][]byte) (*Network, error) {
	descriptors := plans.All()
	for _, d := range descriptors {
		if _, ok := contents[d.Name]; !ok {
			return nil, fmt.Errorf("%w: %s", cerrors.ErrMissingContent, d.Name)
		}
	}

	// Every child generator is derived up front in plan order so results
	// do not depend on goroutine scheduling.
	root := utils.NewRand(m.seed)
	fileRngs := make([]*rand.Rand, len(descriptors))
	for i := range descriptors {
		fileRngs[i] = utils.DeriveRand(root)
	}
	graphRng := utils.DeriveRand(root)
	rewriteRng := utils.DeriveRand(root)
	hintRng := utils.DeriveRand(root)

	registry := NewPasswordRegistry()
	files, err := m.encodeAll(ctx, descriptors, contents, fileRngs, registry)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	edges := NewGraphBuilder(graphRng, m.probs).Build(plans, registry)
	if err := Validate(edges, plans); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rewriter := NewRewriter(rewriteRng)
	rewritten := 0
	for _, f := range files {
		if rewriter.Rewrite(f, edges) {
			rewritten++
		}
	}

	hints := NewDistributor(hintRng).Distribute(files, registry)

	return newNetwork(m.seed, files, registry, edges, hints, rewritten), nil
}

func (m *Manager) encodeAll(ctx context.Context, descriptors []plan.FileDescriptor, contents map[string][]byte, rngs []*rand.Rand, registry *PasswordRegistry) ([]*EncodedFile, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	files := make([]*EncodedFile, len(descriptors))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < min(m.workers, max(len(descriptors), 1)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f, err := m.encodeOne(descriptors[i], contents[descriptors[i].Name], rngs[i])
				if err != nil {
					fail(fmt.Errorf("encoding %s: %w", descriptors[i].Name, err))
					continue
				}
				if f.Protected() {
					registry.Set(f.Name(), f.Password)
				}
				files[i] = f
			}
		}()
	}

feed:
	for i := range descriptors {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

func (m *Manager) encodeOne(d plan.FileDescriptor, raw []byte, r *rand.Rand) (*EncodedFile, error) {
	method := m.selector.Select(d.Kind, r)
	encoder := encoding.NewEncoder(secrets.NewPasswordGenerator(r), d.Language)
	res, err := encoder.Encode(raw, method, "")
	if err != nil {
		return nil, err
	}
	return &EncodedFile{
		Descriptor: d,
		Content:    res.Content,
		Method:     method,
		Password:   res.Password,
		Salt:       res.Salt,
	}, nil
}

// Network is the outcome of a run.
type Network struct {
	Seed       uint64
	Files      []*EncodedFile
	Registry   *PasswordRegistry
	References []FileReference
	Hints      []Hint

	rewritten int
	bySource  map[string][]FileReference
	byName    map[string]*EncodedFile
}

func newNetwork(seed uint64, files []*EncodedFile, registry *PasswordRegistry, edges []FileReference, hints []Hint, rewritten int) *Network {
	return &Network{
		Seed:       seed,
		Files:      files,
		Registry:   registry,
		References: edges,
		Hints:      hints,
		rewritten:  rewritten,
		bySource:   lo.GroupBy(edges, func(e FileReference) string { return e.Source }),
		byName:     lo.KeyBy(files, func(f *EncodedFile) string { return f.Name() }),
	}
}

// ReferencesFrom returns the edges originating at name.
func (n *Network) ReferencesFrom(name string) []FileReference {
	return n.bySource[name]
}

// File looks up an encoded file by name.
func (n *Network) File(name string) (*EncodedFile, bool) {
	f, ok := n.byName[name]
	return f, ok
}

// Summary aggregates a network for reporting.
type Summary struct {
	TotalFiles           int
	ProtectedFiles       int
	RewrittenFiles       int
	Methods              map[encoding.Method]int
	Relations            map[RelationKind]int
	TotalReferences      int
	AttachmentReferences int
	PasswordReferences   int
	OtherReferences      int
	Hints                int
}

// Summary counts files by method and references by kind.
func (n *Network) Summary() Summary {
	relations := lo.CountValuesBy(n.References, func(e FileReference) RelationKind { return e.Kind })
	s := Summary{
		TotalFiles:           len(n.Files),
		ProtectedFiles:       n.Registry.Len(),
		RewrittenFiles:       n.rewritten,
		Methods:              lo.CountValuesBy(n.Files, func(f *EncodedFile) encoding.Method { return f.Method }),
		Relations:            relations,
		TotalReferences:      len(n.References),
		AttachmentReferences: relations[RelationAttachment],
		PasswordReferences:   relations[RelationPassword],
		Hints:                len(n.Hints),
	}
	s.OtherReferences = s.TotalReferences - s.AttachmentReferences - s.PasswordReferences
	return s
}
