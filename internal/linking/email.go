package linking

import (
	"bytes"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

var emailSubjects = []string{
	"Quarterly Report", "Project Update", "Meeting Notes", "Budget Review",
	"Contract Draft", "Action Items", "Status Report", "Follow-up",
}

var documentNotes = []string{
	"contains detailed analysis",
	"confidential - handle with care",
	"requires immediate review",
	"supporting documentation",
	"latest version - please review",
}

var imageNotes = []string{
	"charts and diagrams",
	"screenshot for reference",
	"visual documentation",
	"supporting graphics",
	"embedded in related documents",
}

var dataNotes = []string{
	"raw data for analysis",
	"spreadsheet with calculations",
	"database export",
	"financial data - confidential",
}

var crossReferenceLines = []string{
	"Additional related files may be found in the shared directory.",
	"See previous email thread for context on these attachments.",
	"Some images are embedded within the attached documents.",
	"Please ensure all files are reviewed together for complete understanding.",
	"Cross-reference these files with our project documentation.",
}

var actionLines = []string{
	"Please confirm receipt and review by end of week.",
	"Your feedback on the attached materials is requested.",
	"These files require your approval before proceeding.",
	"Please coordinate with the team on the attached documentation.",
}

// emailHeaders are the headers carried over from the rendered message.
type emailHeaders struct {
	From      string
	To        string
	Subject   string
	Date      string
	MessageID string
}

// rewriteEmail regenerates the message body around its attachment and
// password edges, keeping the original sender, recipient, subject, date and
// message id where present.
func (rw *Rewriter) rewriteEmail(original []byte, edges []FileReference) []byte {
	h := rw.parseHeaders(original)

	var attachments, passwords []FileReference
	for _, e := range edges {
		switch e.Kind {
		case RelationAttachment:
			attachments = append(attachments, e)
		case RelationPassword:
			passwords = append(passwords, e)
		}
	}

	var docs, images, data []FileReference
	for _, a := range attachments {
		switch categoryOf(a.Target) {
		case plan.CategoryImage:
			images = append(images, a)
		case plan.CategorySpreadsheet:
			data = append(data, a)
		default:
			docs = append(docs, a)
		}
	}

	var body []string
	body = append(body, fmt.Sprintf("Dear %s,", rw.faker.FirstName()), "")

	switch {
	case len(images) > 0 && len(docs) > 0:
		body = append(body, "I've attached the requested documents along with supporting visual materials.")
	case len(images) > 0:
		body = append(body, "Please review the attached images and visual documentation.")
	case len(docs) > 0:
		body = append(body, "The attached documents contain the information we discussed.")
	default:
		body = append(body, rw.faker.HackerPhrase())
	}
	body = append(body, "")

	if len(attachments) > 0 {
		body = append(body, "Attachments included:")
		body = rw.attachmentGroup(body, "Documents", docs, documentNotes)
		body = rw.attachmentGroup(body, "Visual Materials", images, imageNotes)
		body = rw.attachmentGroup(body, "Data Files", data, dataNotes)
		body = append(body, "")
	}

	if len(passwords) > 0 {
		body = append(body, "Security Notes:")
		for _, p := range passwords {
			body = append(body, "  - "+p.Context)
		}
		body = append(body, "")
	}

	if utils.Chance(rw.rng, 0.6) {
		body = append(body, utils.Choice(rw.rng, crossReferenceLines), "")
	}
	if utils.Chance(rw.rng, 0.4) {
		body = append(body, utils.Choice(rw.rng, actionLines), "")
	}
	body = append(body, "Best regards,", rw.faker.Name())

	contentType := "text/plain"
	if len(attachments) > 0 {
		contentType = "multipart/mixed"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\n", h.From)
	fmt.Fprintf(&b, "To: %s\n", h.To)
	fmt.Fprintf(&b, "Subject: %s\n", h.Subject)
	fmt.Fprintf(&b, "Date: %s\n", h.Date)
	fmt.Fprintf(&b, "Message-ID: %s\n", h.MessageID)
	b.WriteString("MIME-Version: 1.0\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=utf-8\n", contentType)
	b.WriteString("Content-Transfer-Encoding: 8bit\n")
	b.WriteString("X-Priority: Normal\n")
	fmt.Fprintf(&b, "X-Attachments: %d file(s)\n", len(attachments))
	b.WriteString("\n")
	b.WriteString(strings.Join(body, "\n"))
	b.WriteString("\n\n--\n")
	fmt.Fprintf(&b, "%s\n%s\n%s\n%s\n", rw.faker.Name(), rw.faker.JobTitle(), rw.faker.Company(), rw.faker.Phone())
	return b.Bytes()
}

func (rw *Rewriter) attachmentGroup(body []string, title string, group []FileReference, notes []string) []string {
	if len(group) == 0 {
		return body
	}
	body = append(body, "  "+title+":")
	for _, a := range group {
		body = append(body, fmt.Sprintf("    - %s (%s)", a.Target, utils.Choice(rw.rng, notes)))
	}
	return body
}

// parseHeaders reads the rendered message's headers, generating any that
// are missing or unparseable.
func (rw *Rewriter) parseHeaders(original []byte) emailHeaders {
	var h emailHeaders
	if msg, err := mail.ReadMessage(bytes.NewReader(original)); err == nil {
		h = emailHeaders{
			From:      msg.Header.Get("From"),
			To:        msg.Header.Get("To"),
			Subject:   msg.Header.Get("Subject"),
			Date:      msg.Header.Get("Date"),
			MessageID: msg.Header.Get("Message-ID"),
		}
	}

	sender := rw.faker.Email()
	if h.From == "" {
		h.From = fmt.Sprintf("%s <%s>", rw.faker.Name(), sender)
	} else if addr, err := mail.ParseAddress(h.From); err == nil {
		sender = addr.Address
	}
	if h.To == "" {
		h.To = fmt.Sprintf("%s <%s>", rw.faker.Name(), rw.faker.Email())
	}
	if h.Subject == "" {
		h.Subject = utils.Choice(rw.rng, emailSubjects)
	}
	if h.Date == "" {
		now := time.Now()
		h.Date = rw.faker.DateRange(now.AddDate(-1, 0, 0), now).Format(time.RFC1123Z)
	}
	if h.MessageID == "" {
		domain := "example.com"
		if at := strings.LastIndex(sender, "@"); at >= 0 {
			domain = sender[at+1:]
		}
		h.MessageID = fmt.Sprintf("<%s@%s>", rw.faker.UUID(), domain)
	}
	return h
}

func categoryOf(name string) plan.Category {
	kind, err := plan.ParseKind(filepath.Ext(name))
	if err != nil {
		return plan.CategoryDocument
	}
	return kind.Category()
}
