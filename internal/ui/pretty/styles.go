// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Page preview
	PageHeader lipgloss.Style
	LineNumber lipgloss.Style
	Gutter     lipgloss.Style
	LineText   lipgloss.Style
	Width      lipgloss.Style
	Overflow   lipgloss.Style
	BarFilled  lipgloss.Style
	BarEmpty   lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableBorder lipgloss.Style
	TableCJK    lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		PageHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		LineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Gutter:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		LineText:   lipgloss.NewStyle(),
		Width:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Overflow:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		BarFilled:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		BarEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableCJK:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		PageHeader:   plain,
		LineNumber:   plain,
		Gutter:       plain,
		LineText:     plain,
		Width:        plain,
		Overflow:     plain,
		BarFilled:    plain,
		BarEmpty:     plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Warning:      plain,
		TableHeader:  plain,
		TableBorder:  plain,
		TableCJK:     plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
