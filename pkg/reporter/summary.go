package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/quill/internal/ui/pretty"
)

// SummaryReporter prints layout statistics without the pages.
type SummaryReporter struct {
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, doc *Document) (err error) {
	if err := checkDocument(doc); err != nil {
		return err
	}

	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if _, err := fmt.Fprint(r.bw, r.styles.FormatSummary(doc.summary())); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
