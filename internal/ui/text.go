package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Formatter styles one kind of value in chaff's terminal output. With
// colour disabled it falls back to plain prefix and suffix marks.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint styles the arguments as fmt.Sprint would join them.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf styles a formatted string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline terminates spinner final messages so the next prompt
// starts on its own line.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// CountList renders per-kind, per-language or per-method counts as
// indented "name: count" lines sorted by name.
func CountList(counts map[string]int, indent string) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(indent)
		b.WriteString(Method.Sprint(name))
		b.WriteString(": ")
		fmt.Fprintf(&b, "%d\n", counts[name])
	}
	return b.String()
}

// noColor honours NO_COLOR and non-terminal output.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Formatters used by the chaff commands.
var (
	// Code formats suggested commands such as `chaff clean`.
	// Yellow with color, `backticks` without.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats target directories, generated files and manifests.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --seed or --dry-run.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Success formats the ✓ mark of a finished generate, decode or clean.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats the ✗ mark of a failed command.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats config warnings and modified files kept by clean.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats section headings and → follow-up hints.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats emphasized values like file names and seeds.
	// Cyan with color, 'single quotes' without.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Method formats encoding method and relation names.
	// Magenta with color, [brackets] without.
	Method = Formatter{color.New(color.FgMagenta), "[", "]"}

	// Muted formats de-emphasized or secondary text.
	// Gray with color, (parentheses) without.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
