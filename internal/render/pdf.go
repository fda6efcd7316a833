package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

const (
	pdfLineWidth    = 90
	pdfLinesPerPage = 58
	pdfFontSize     = 11
	pdfLeading      = 13
)

// PDFRenderer writes a text-only PDF 1.4 document using the Helvetica base
// font, one or more US Letter pages.
type PDFRenderer struct {
	base
	images []string
}

func (r *PDFRenderer) SetImageReferences(names []string) {
	r.images = append([]string(nil), names...)
}

func (r *PDFRenderer) Render(d plan.FileDescriptor) ([]byte, error) {
	kind := utils.Choice(r.rng, documentKinds)
	text := withImages(r.businessDocument(kind), r.images, "Visual References")
	return buildPDF(kind, r.faker.Name(), r.docDate.Format("20060102150405"), wrapText(text, pdfLineWidth)), nil
}

// withImages inlines an image placeholder after the first paragraph and
// lists every image under heading.
func withImages(text string, images []string, heading string) string {
	if len(images) == 0 {
		return text
	}
	paragraphs := strings.Split(text, "\n\n")
	placeholder := fmt.Sprintf("[IMAGE: %s]", images[0])
	paragraphs = slices.Insert(paragraphs, min(1, len(paragraphs)), placeholder)

	var b strings.Builder
	b.WriteString(strings.Join(paragraphs, "\n\n"))
	fmt.Fprintf(&b, "\n\n%s:\n", heading)
	for _, name := range images {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	return b.String()
}

func wrapText(text string, width int) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

// pdfString escapes s for a literal string. Runes outside printable ASCII
// are replaced since the base font is not embedded.
func pdfString(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c == '(' || c == ')' || c == '\\':
			b.WriteByte('\\')
			b.WriteRune(c)
		case c < 0x20 || c > 0x7e:
			b.WriteByte('?')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func buildPDF(title, author, created string, lines []string) []byte {
	var pages [][]string
	for len(lines) > pdfLinesPerPage {
		pages = append(pages, lines[:pdfLinesPerPage])
		lines = lines[pdfLinesPerPage:]
	}
	pages = append(pages, lines)

	// Objects: 1 catalog, 2 pages, 3 font, 4 info, then a page and its
	// content stream for every page.
	objects := make([]string, 4+2*len(pages))
	kids := make([]string, len(pages))
	for i, page := range pages {
		pageID := 5 + 2*i
		contentID := pageID + 1
		kids[i] = fmt.Sprintf("%d 0 R", pageID)

		var stream strings.Builder
		fmt.Fprintf(&stream, "BT\n/F1 %d Tf\n%d TL\n72 740 Td\n", pdfFontSize, pdfLeading)
		for _, line := range page {
			fmt.Fprintf(&stream, "(%s) Tj T*\n", pdfString(line))
		}
		stream.WriteString("ET")

		objects[pageID-1] = fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentID)
		objects[contentID-1] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String())
	}
	objects[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))
	objects[2] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"
	objects[3] = fmt.Sprintf("<< /Title (%s) /Author (%s) /Producer (Microsoft Word) /CreationDate (D:%s) >>",
		pdfString(title), pdfString(author), created)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
