package layout

import "unicode/utf8"

// Stats summarizes a Book.
type Stats struct {
	Pages         int     `json:"pages"`
	Lines         int     `json:"lines"`
	BlankLines    int     `json:"blank_lines"`
	Runes         int     `json:"runes"`
	WidestLine    float64 `json:"widest_line"`
	LastPageLines int     `json:"last_page_lines"`
}

// Stats measures book with the paginator's width model.
func (p *Paginator) Stats(book Book) Stats {
	stats := Stats{
		Pages: len(book.Pages),
		Lines: len(book.Lines),
	}

	for _, line := range book.Lines {
		if line == "" {
			stats.BlankLines++
			continue
		}
		stats.Runes += utf8.RuneCountInString(line)
		if w := p.model.StringWidth(line); w > stats.WidestLine {
			stats.WidestLine = w
		}
	}

	if n := len(book.Pages); n > 0 {
		stats.LastPageLines = len(book.Pages[n-1].Lines)
	}
	return stats
}
