package linking

import (
	"bytes"
	"math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
)

// Rewriter surfaces a file's outgoing edges inside its own text.
type Rewriter struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// NewRewriter returns a rewriter drawing from rng.
func NewRewriter(rng *rand.Rand) *Rewriter {
	return &Rewriter{rng: rng, faker: gofakeit.New(rng.Uint64())}
}

// Rewritable reports whether file can be rewritten without corrupting it:
// it must be unencoded and one of eml, txt or csv.
func Rewritable(file *EncodedFile) bool {
	if file.Method != encoding.None {
		return false
	}
	switch file.Kind() {
	case plan.KindEmail, plan.KindTXT, plan.KindCSV:
		return true
	}
	return false
}

// Rewrite mutates file.Content to mention the edges originating from it.
// It reports false when the file is not rewritable or has no outgoing edges.
func (rw *Rewriter) Rewrite(file *EncodedFile, edges []FileReference) bool {
	if !Rewritable(file) {
		return false
	}
	own := outgoing(edges, file.Name())
	if len(own) == 0 {
		return false
	}

	switch file.Kind() {
	case plan.KindEmail:
		file.Content = rw.rewriteEmail(file.Content, own)
	case plan.KindTXT:
		file.Content = appendReferences(file.Content, own)
	case plan.KindCSV:
		file.Content = prependReferences(file.Content, own)
	}
	return true
}

func appendReferences(content []byte, edges []FileReference) []byte {
	var b bytes.Buffer
	b.Write(content)
	b.WriteString("\n\nREFERENCED FILES:\n")
	for _, e := range edges {
		b.WriteString("- ")
		b.WriteString(e.Context)
		b.WriteString("\n")
	}
	return b.Bytes()
}

// prependReferences adds # comment lines above the CSV rows, which are
// left untouched.
func prependReferences(content []byte, edges []FileReference) []byte {
	lines := make([]string, 0, len(edges)+2)
	lines = append(lines, "# REFERENCED FILES:")
	for _, e := range edges {
		lines = append(lines, "# "+e.Context)
	}
	lines = append(lines, "")

	var b bytes.Buffer
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.Write(content)
	return b.Bytes()
}
