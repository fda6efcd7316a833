package render

import (
	"fmt"
	"strings"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

var logLevels = []string{"INFO", "DEBUG", "WARN", "ERROR"}

// TextRenderer writes notes, application logs, documentation or
// configuration files.
type TextRenderer struct {
	base
}

func (r *TextRenderer) Render(d plan.FileDescriptor) ([]byte, error) {
	var content string
	switch utils.IntBetween(r.rng, 0, 3) {
	case 0:
		content = r.notes()
	case 1:
		content = r.log()
	case 2:
		content = r.documentation()
	default:
		content = r.configuration()
	}
	return fitText(content, d.SizeBytes), nil
}

func (r *TextRenderer) notes() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meeting Notes - %s\n\n", r.docDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Attendees: %s, %s, %s\n\n", r.faker.Name(), r.faker.Name(), r.faker.Name())
	b.WriteString("Discussion Points:\n")
	for i := 1; i <= utils.IntBetween(r.rng, 3, 6); i++ {
		fmt.Fprintf(&b, "%d. %s\n", i, r.sentence())
	}
	b.WriteString("\nAction Items:\n")
	for i := 0; i < utils.IntBetween(r.rng, 2, 4); i++ {
		fmt.Fprintf(&b, "- %s (%s)\n", r.sentence(), r.faker.FirstName())
	}
	return b.String()
}

func (r *TextRenderer) log() string {
	var b strings.Builder
	ts := r.docDate
	for i := 0; i < utils.IntBetween(r.rng, 20, 60); i++ {
		ts = ts.Add(r.randomSeconds(1, 600))
		fmt.Fprintf(&b, "%s [%s] %s: %s\n",
			ts.Format("2006-01-02 15:04:05"), utils.Choice(r.rng, logLevels),
			r.faker.Noun(), r.sentence())
	}
	return b.String()
}

func (r *TextRenderer) documentation() string {
	title := strings.ToUpper(r.faker.BuzzWord())
	return fmt.Sprintf("%s SYSTEM DOCUMENTATION\n\nOverview\n--------\n%s\n\nInstallation\n------------\n%s\n\nUsage\n-----\n%s\n\nTroubleshooting\n---------------\n%s\n",
		title, r.paragraph(300), r.paragraph(200), r.paragraph(300), r.paragraph(200))
}

func (r *TextRenderer) configuration() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s configuration\n", r.faker.Company())
	fmt.Fprintf(&b, "# generated %s\n\n", r.docDate.Format("2006-01-02"))
	for _, section := range []string{"server", "database", "logging"} {
		fmt.Fprintf(&b, "[%s]\n", section)
		for i := 0; i < utils.IntBetween(r.rng, 3, 6); i++ {
			key := strings.ToLower(utils.CompactWord(r.faker.Noun()))
			fmt.Fprintf(&b, "%s_%s = %d\n", section, key, utils.IntBetween(r.rng, 1, 65535))
		}
		b.WriteString("\n")
	}
	return b.String()
}
