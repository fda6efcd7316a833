package render

import (
	"fmt"
	"strings"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

var mailers = []string{"Microsoft Outlook 16.0", "Apple Mail (2.3654)", "Mozilla Thunderbird", "Roundcube Webmail"}

// EmailRenderer writes an RFC 5322 message with plain text body.
type EmailRenderer struct {
	base
	images      []string
	attachments []string
}

func (r *EmailRenderer) SetImageReferences(names []string) {
	r.images = append([]string(nil), names...)
}

func (r *EmailRenderer) SetAttachmentReferences(names []string) {
	r.attachments = append([]string(nil), names...)
}

func (r *EmailRenderer) Render(d plan.FileDescriptor) ([]byte, error) {
	sender := r.faker.Name()
	domain := strings.ToLower(utils.CompactWord(r.faker.Company())) + ".com"
	sent := r.dateAround(0, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n", sender, address(sender, domain))
	recipient := r.faker.Name()
	fmt.Fprintf(&b, "To: %s <%s>\n", recipient, address(recipient, domain))
	fmt.Fprintf(&b, "Subject: %s\n", r.subject())
	fmt.Fprintf(&b, "Date: %s\n", sent.Format("Mon, 02 Jan 2006 15:04:05 -0700"))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\n", r.faker.UUID(), domain)
	fmt.Fprintf(&b, "X-Mailer: %s\n", utils.Choice(r.rng, mailers))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Hi %s,\n\n", strings.Fields(recipient)[0])
	b.WriteString(r.paragraph(200))
	b.WriteString("\n\n")

	if len(r.images) > 0 {
		b.WriteString("REFERENCED IMAGES:\n")
		for _, name := range r.images {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}
	if len(r.attachments) > 0 {
		b.WriteString("ATTACHED DOCUMENTS:\n")
		for _, name := range r.attachments {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Thanks,\n%s\n", sender)
	return []byte(b.String()), nil
}

func (r *EmailRenderer) subject() string {
	subjects := []string{
		"Quarterly review materials",
		"Follow up from today's meeting",
		"Updated figures for " + r.faker.Company(),
		"Re: " + r.faker.BuzzWord() + " rollout",
		"Documents for your review",
	}
	return utils.Choice(r.rng, subjects)
}

func address(name, domain string) string {
	parts := strings.Fields(strings.ToLower(name))
	for i := range parts {
		parts[i] = utils.CompactWord(parts[i])
	}
	return strings.Join(parts, ".") + "@" + domain
}
