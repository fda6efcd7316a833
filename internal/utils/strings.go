package utils

import (
	"strings"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
// At most limit paths are listed; the rest are summarised. limit <= 0 lists all.
func FormatPaths(paths []string, limit int) string {
	var b strings.Builder
	b.WriteString("\n")
	for i, path := range paths {
		if limit > 0 && i == limit {
			b.WriteString("    ")
			b.WriteString(ui.Muted.Sprintf("and %d more", len(paths)-limit))
			b.WriteString("\n")
			break
		}
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// CompactWord strips spaces, commas and periods, as used in generated credentials.
func CompactWord(s string) string {
	return strings.NewReplacer(" ", "", ",", "", ".", "", "'", "").Replace(s)
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
