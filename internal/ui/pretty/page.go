package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// PreviewLine is one line of a page preview.
type PreviewLine struct {
	// Number is the 1-based line number within the book.
	Number int

	// Text is the laid-out line.
	Text string

	// Width is the line's layout width.
	Width float64
}

// PreviewOptions controls FormatPageLine.
type PreviewOptions struct {
	// Budget is the layout's maximum line width.
	Budget float64

	// ShowWidths appends the measured width and a fill bar to each line.
	ShowWidths bool

	// TextCells is the terminal column count the text is padded to when
	// widths are shown. CJK runes occupy two cells.
	TextCells int

	// NumberDigits is the width of the line-number gutter.
	NumberDigits int

	// BarCells is the length of the fill bar. Zero disables the bar.
	BarCells int
}

// FormatPageHeader formats the header printed above each page.
func (s *Styles) FormatPageHeader(number, total int) string {
	return s.PageHeader.Render(fmt.Sprintf("=== Page %d/%d ===", number, total))
}

// FormatPageLine formats one preview line with its gutter.
func (s *Styles) FormatPageLine(line PreviewLine, opts PreviewOptions) string {
	var builder strings.Builder

	builder.WriteString(s.LineNumber.Render(fmt.Sprintf("%*d", opts.NumberDigits, line.Number)))
	builder.WriteString(s.Gutter.Render(" │ "))

	if !opts.ShowWidths {
		builder.WriteString(s.LineText.Render(line.Text))
		return builder.String()
	}

	builder.WriteString(s.LineText.Render(runewidth.FillRight(line.Text, opts.TextCells)))
	builder.WriteString("  ")

	widthStyle := s.Width
	if line.Width > opts.Budget {
		widthStyle = s.Overflow
	}
	builder.WriteString(widthStyle.Render(fmt.Sprintf("%6.1f", line.Width)))

	if opts.BarCells > 0 {
		builder.WriteString(" ")
		builder.WriteString(s.FormatWidthBar(line.Width, opts.Budget, opts.BarCells))
	}

	return builder.String()
}

// FormatWidthBar renders width/budget as a bar of cells cells.
func (s *Styles) FormatWidthBar(width, budget float64, cells int) string {
	if cells <= 0 || budget <= 0 {
		return ""
	}

	filled := int(width / budget * float64(cells))
	filled = max(0, min(filled, cells))

	return s.BarFilled.Render(strings.Repeat(barFilled, filled)) +
		s.BarEmpty.Render(strings.Repeat(barEmpty, cells-filled))
}

// TextCells returns the widest terminal rendering of lines, in cells.
func TextCells(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, runewidth.StringWidth(line))
	}
	return widest
}
