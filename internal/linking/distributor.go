package linking

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// Hint records that a carrier file received a protected file's password.
type Hint struct {
	Carrier   string
	Protected string
}

var hintTemplates = []func(name, password string) string{
	func(name, pw string) string { return fmt.Sprintf("Note: Archive password for %s: %s", name, pw) },
	func(name, pw string) string { return fmt.Sprintf("Backup access code: %s (for %s)", pw, name) },
	func(name, pw string) string { return fmt.Sprintf("Decryption key for %s: %s", name, pw) },
	func(name, pw string) string { return fmt.Sprintf("Access credentials - File: %s, Pass: %s", name, pw) },
	func(name, pw string) string { return fmt.Sprintf("Security memo: %s requires password '%s'", name, pw) },
}

// Distributor plants password hints in unencoded text files.
type Distributor struct {
	rng *rand.Rand
}

// NewDistributor returns a distributor drawing from rng.
func NewDistributor(rng *rand.Rand) *Distributor {
	return &Distributor{rng: rng}
}

// Carriers returns the files eligible to hold hints: unencoded txt files.
// Documents in other formats are not eligible since appending text would
// corrupt them.
func Carriers(files []*EncodedFile) []*EncodedFile {
	return lo.Filter(files, func(f *EncodedFile, _ int) bool {
		return f.Kind() == plan.KindTXT && f.Method == encoding.None
	})
}

// Distribute appends one hint per chosen carrier. At most half the carriers
// receive a hint, and every chosen slot is filled.
func (d *Distributor) Distribute(files []*EncodedFile, registry *PasswordRegistry) []Hint {
	carriers := slices.Clone(Carriers(files))
	entries := registry.Entries()
	if len(carriers) == 0 || len(entries) == 0 {
		return nil
	}

	utils.Shuffle(d.rng, entries)
	utils.Shuffle(d.rng, carriers)
	entries = entries[:min(len(entries), len(carriers)/2)]

	hints := make([]Hint, 0, len(entries))
	for i, entry := range entries {
		carrier := carriers[i]
		hint := utils.Choice(d.rng, hintTemplates)(entry.Name, entry.Password)
		carrier.Content = append(carrier.Content, []byte("\n\n"+hint+"\n")...)
		hints = append(hints, Hint{Carrier: carrier.Name(), Protected: entry.Name})
	}
	return hints
}
