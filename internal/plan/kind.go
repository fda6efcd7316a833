package plan

import (
	"fmt"
	"strings"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
)

// Kind is the file format of a planned chaff file. Its value doubles as the
// file name extension.
type Kind string

const (
	KindEmail Kind = "eml"
	KindPDF   Kind = "pdf"
	KindDOCX  Kind = "docx"
	KindTXT   Kind = "txt"
	KindXLSX  Kind = "xlsx"
	KindCSV   Kind = "csv"
	KindJPG   Kind = "jpg"
	KindPNG   Kind = "png"
)

// Category groups kinds the way the reference graph partitions a plan.
type Category string

const (
	CategoryEmail       Category = "email"
	CategoryDocument    Category = "document"
	CategorySpreadsheet Category = "spreadsheet"
	CategoryImage       Category = "image"
)

// AllKinds lists every supported kind in a stable order.
func AllKinds() []Kind {
	return []Kind{KindTXT, KindJPG, KindEmail, KindPDF, KindDOCX, KindXLSX, KindCSV, KindPNG}
}

// ParseKind accepts a kind name with or without a leading dot.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	if k == "jpeg" {
		k = KindJPG
	}
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", cerrors.ErrUnknownKind, s)
	}
	return k, nil
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindEmail, KindPDF, KindDOCX, KindTXT, KindXLSX, KindCSV, KindJPG, KindPNG:
		return true
	}
	return false
}

// Category returns the partition the kind belongs to.
func (k Kind) Category() Category {
	switch k {
	case KindEmail:
		return CategoryEmail
	case KindXLSX, KindCSV:
		return CategorySpreadsheet
	case KindJPG, KindPNG:
		return CategoryImage
	default:
		return CategoryDocument
	}
}

// Extension returns the file name extension including the dot.
func (k Kind) Extension() string {
	return "." + string(k)
}
