package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/quill/internal/ui/pretty"
)

// TextReporter prints a page-by-page preview.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, doc *Document) (err error) {
	if err := checkDocument(doc); err != nil {
		return err
	}

	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	book := doc.Book
	model := doc.Paginator.Model()
	previewOpts := pretty.PreviewOptions{
		Budget:       doc.Paginator.MaxLineWidth(),
		ShowWidths:   r.opts.ShowWidths,
		TextCells:    pretty.TextCells(book.Lines),
		NumberDigits: len(strconv.Itoa(len(book.Lines))),
		BarCells:     r.opts.BarCells,
	}

	lineNo := 0
	for i, page := range book.Pages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("report cancelled: %w", err)
		}

		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintln(r.bw, r.styles.FormatPageHeader(page.Number, len(book.Pages)))

		for _, text := range page.Lines {
			lineNo++
			line := pretty.PreviewLine{Number: lineNo, Text: text, Width: model.StringWidth(text)}
			fmt.Fprintln(r.bw, r.styles.FormatPageLine(line, previewOpts))
		}
	}

	if r.opts.ShowSummary {
		if len(book.Pages) > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(doc.summary()))
	}

	return nil
}
