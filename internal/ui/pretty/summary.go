package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/quill/pkg/layout"
)

const (
	summaryDividerWidth = 40
	wordPage            = "page"
	wordPages           = "pages"
)

// BookSummary is the input of the summary formatters.
type BookSummary struct {
	Source       string
	Stats        layout.Stats
	LinesPerPage int
	MaxLineWidth float64
}

// FormatSummaryOneLine formats book statistics as a single line.
// Example: "4 pages, 4 lines (17 characters), widest line 20.0/20.0".
func (s *Styles) FormatSummaryOneLine(summary BookSummary) string {
	stats := summary.Stats
	if stats.Pages == 0 {
		return s.Warning.Render("No pages") + s.Dim.Render(" (input is empty)") + "\n"
	}

	pageWord := wordPages
	if stats.Pages == 1 {
		pageWord = wordPage
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s", stats.Pages, pageWord)),
		fmt.Sprintf("%d lines", stats.Lines) + s.Dim.Render(fmt.Sprintf(" (%d characters)", stats.Runes)),
		"widest line " + s.widthRatio(stats.WidestLine, summary.MaxLineWidth),
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats book statistics as a summary block.
func (s *Styles) FormatSummary(summary BookSummary) string {
	stats := summary.Stats
	var builder strings.Builder

	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	if summary.Source != "" {
		builder.WriteString("  Source:          " + s.SummaryValue.Render(summary.Source) + "\n")
	}
	builder.WriteString("  Lines per page:  " + s.SummaryValue.Render(strconv.Itoa(summary.LinesPerPage)) + "\n")
	builder.WriteString("  Max line width:  " + s.SummaryValue.Render(formatWidth(summary.MaxLineWidth)) + "\n")
	builder.WriteString("\n")

	builder.WriteString("  Pages:           " + s.SummaryValue.Render(strconv.Itoa(stats.Pages)) + "\n")
	builder.WriteString("  Lines:           " + s.SummaryValue.Render(strconv.Itoa(stats.Lines)) + "\n")
	if stats.BlankLines > 0 {
		builder.WriteString("    Blank:         " + s.Dim.Render(strconv.Itoa(stats.BlankLines)) + "\n")
	}
	builder.WriteString("  Characters:      " + s.SummaryValue.Render(strconv.Itoa(stats.Runes)) + "\n")
	builder.WriteString("  Widest line:     " + s.widthRatio(stats.WidestLine, summary.MaxLineWidth) + "\n")
	if stats.Pages > 0 {
		builder.WriteString("  Last page lines: " + s.SummaryValue.Render(strconv.Itoa(stats.LastPageLines)) + "\n")
	}

	return builder.String()
}

func (s *Styles) widthRatio(width, budget float64) string {
	text := formatWidth(width) + "/" + formatWidth(budget)
	if width > budget {
		return s.Overflow.Render(text)
	}
	return s.SummaryValue.Render(text)
}

func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', 1, 64)
}
