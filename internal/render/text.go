package render

import (
	"fmt"
	"strings"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// documentKinds are the business document shapes shared by text-heavy
// renderers.
var documentKinds = []string{"Business Letter", "Report", "Invoice", "Memo"}

// sentence builds a short business-sounding sentence.
func (b *base) sentence() string {
	s := b.faker.HackerPhrase()
	if s == "" {
		s = fmt.Sprintf("The %s %s needs review", b.faker.Adjective(), b.faker.Noun())
	}
	s = strings.TrimRight(s, ".!?")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// paragraph joins sentences until it holds at least n characters.
func (b *base) paragraph(n int) string {
	var parts []string
	total := 0
	for total < n {
		s := b.sentence()
		parts = append(parts, s)
		total += len(s) + 1
	}
	return strings.Join(parts, " ")
}

// businessDocument renders one of documentKinds as plain text with blank
// lines between paragraphs.
func (b *base) businessDocument(kind string) string {
	date := b.docDate.Format("January 02, 2006")
	switch kind {
	case "Business Letter":
		company := b.faker.Company()
		return fmt.Sprintf("%s\n%s, %s\n\n%s\n\nDear %s,\n\n%s\n\nWe appreciate your continued business and look forward to working with you.\n\nSincerely,\n\n%s\n%s\n%s",
			company, b.faker.Street(), b.faker.City(), date, b.faker.Name(),
			b.paragraph(500), b.faker.Name(), b.faker.JobTitle(), company)

	case "Report":
		return fmt.Sprintf("QUARTERLY BUSINESS REPORT\n%s\n\nEXECUTIVE SUMMARY\n%s\n\nKEY METRICS\n- Revenue: $%d\n- Growth: %d%%\n- Customer Satisfaction: %d%%\n\nANALYSIS\n%s\n\nRECOMMENDATIONS\n%s",
			date, b.paragraph(300),
			utils.IntBetween(b.rng, 100_000, 5_000_000), utils.IntBetween(b.rng, -10, 50), utils.IntBetween(b.rng, 70, 98),
			b.paragraph(800), b.paragraph(400))

	case "Invoice":
		due := b.dateAround(0, 30*day).Format("January 02, 2006")
		return fmt.Sprintf("INVOICE #%d\n\nBill To:\n%s\n%s\n%s, %s\n\nDate: %s\nDue Date: %s\n\nItems:\n- %s: $%d\n- %s: $%d\n\nSubtotal: $%d\nTax: $%d\nTotal: $%d",
			utils.IntBetween(b.rng, 1000, 9999),
			b.faker.Name(), b.faker.Company(), b.faker.Street(), b.faker.City(),
			date, due,
			b.faker.BuzzWord(), utils.IntBetween(b.rng, 100, 5000),
			b.faker.BuzzWord(), utils.IntBetween(b.rng, 50, 2000),
			utils.IntBetween(b.rng, 500, 10_000), utils.IntBetween(b.rng, 50, 1000), utils.IntBetween(b.rng, 600, 11_000))

	default:
		return fmt.Sprintf("MEMORANDUM\n\nTO: All Staff\nFROM: %s, %s\nDATE: %s\nRE: %s\n\n%s\n\nPlease contact me if you have any questions.\n\n%s",
			b.faker.Name(), b.faker.JobTitle(), date, b.sentence(), b.paragraph(600), b.faker.Name())
	}
}

// fitText repeats content up to size bytes and cuts it there, keeping the
// result valid UTF-8.
func fitText(content string, size uint64) []byte {
	if content == "" || size == 0 {
		return []byte(content)
	}
	if uint64(len(content)) < size {
		content = strings.Repeat(content, int(size/uint64(len(content)))+1)
	}
	return []byte(strings.ToValidUTF8(content[:size], ""))
}
