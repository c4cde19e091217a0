package layout

import "strings"

// Paginator wraps text into lines and groups lines into pages.
type Paginator struct {
	model        *WidthModel
	maxLineWidth float64
	linesPerPage int
}

// NewPaginator builds a Paginator, validating cfg.
func NewPaginator(cfg Config) (*Paginator, error) {
	model, err := NewWidthModel(cfg)
	if err != nil {
		return nil, err
	}

	return &Paginator{
		model:        model,
		maxLineWidth: cfg.MaxLineWidth,
		linesPerPage: cfg.LinesPerPage,
	}, nil
}

// Model returns the WidthModel used for measuring.
func (p *Paginator) Model() *WidthModel {
	return p.model
}

// MaxLineWidth returns the line width budget.
func (p *Paginator) MaxLineWidth() float64 {
	return p.maxLineWidth
}

// LinesPerPage returns the page size in lines.
func (p *Paginator) LinesPerPage() int {
	return p.linesPerPage
}

// LayoutLines splits text into lines that fit the width budget.
//
// Wrapping is a hard cut: a rune that would overflow the current line starts
// the next one, with no regard for word boundaries. The first rune of a line
// is always accepted, so a rune wider than the budget sits alone on its own
// line. Every '\n' ends a line, including empty ones. When text ends with a
// newline, trailing empty lines are dropped.
func (p *Paginator) LayoutLines(text string) []string {
	var (
		lines   []string
		current strings.Builder
		width   float64
	)

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		width = 0
	}

	for _, r := range text {
		if r == '\n' {
			flush()
			continue
		}

		w := p.model.Width(r)
		if current.Len() > 0 && width+w > p.maxLineWidth {
			flush()
		}
		current.WriteRune(r)
		width += w
	}

	if current.Len() > 0 {
		flush()
	}

	return trimTrailingNewlines(text, lines)
}

// trimTrailingNewlines removes the empty lines produced solely by newlines at
// the very end of text. Blank lines in the middle are left alone.
func trimTrailingNewlines(text string, lines []string) []string {
	if !strings.HasSuffix(text, "\n") {
		return lines
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}

	last := len(lines) - 1
	lines[last] = strings.TrimRight(lines[last], "\n")
	return lines
}

// Paginate groups lines into pages of LinesPerPage lines joined by '\n'.
// The last page holds the remainder and is never padded.
func (p *Paginator) Paginate(lines []string) []string {
	var pages []string
	for _, chunk := range p.chunk(lines) {
		pages = append(pages, strings.Join(chunk, "\n"))
	}
	return pages
}

func (p *Paginator) chunk(lines []string) [][]string {
	var (
		chunks  [][]string
		current []string
	)

	for _, line := range lines {
		current = append(current, line)
		if len(current) >= p.linesPerPage {
			chunks = append(chunks, current)
			current = nil
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

// Format lays out text and paginates the result.
func (p *Paginator) Format(text string) []string {
	return p.Paginate(p.LayoutLines(text))
}

// LayoutLines lays out text with a one-off Paginator built from cfg.
func LayoutLines(text string, cfg Config) ([]string, error) {
	p, err := NewPaginator(cfg)
	if err != nil {
		return nil, err
	}
	return p.LayoutLines(text), nil
}

// Paginate chunks lines with a one-off Paginator built from cfg.
func Paginate(lines []string, cfg Config) ([]string, error) {
	p, err := NewPaginator(cfg)
	if err != nil {
		return nil, err
	}
	return p.Paginate(lines), nil
}

// Format lays out and paginates text with a one-off Paginator built from cfg.
func Format(text string, cfg Config) ([]string, error) {
	p, err := NewPaginator(cfg)
	if err != nil {
		return nil, err
	}
	return p.Format(text), nil
}
