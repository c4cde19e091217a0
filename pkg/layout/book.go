package layout

import "strings"

// Page is one page of a Book.
type Page struct {
	// Number is the 1-based page number.
	Number int `json:"number"`

	// Lines are the page's lines in order.
	Lines []string `json:"lines"`

	// Text is the page as delivered: Lines joined by '\n'.
	Text string `json:"text"`
}

// Book is the full layout of one text.
type Book struct {
	Lines []string `json:"lines"`
	Pages []Page   `json:"pages"`
}

// Book lays out text and returns lines together with structured pages.
// Page texts are identical to the strings returned by Format.
func (p *Paginator) Book(text string) Book {
	lines := p.LayoutLines(text)
	chunks := p.chunk(lines)

	pages := make([]Page, 0, len(chunks))
	for i, chunk := range chunks {
		pages = append(pages, Page{
			Number: i + 1,
			Lines:  chunk,
			Text:   strings.Join(chunk, "\n"),
		})
	}

	return Book{Lines: lines, Pages: pages}
}

// Texts returns the page strings in order.
func (b Book) Texts() []string {
	texts := make([]string, len(b.Pages))
	for i, page := range b.Pages {
		texts[i] = page.Text
	}
	return texts
}
