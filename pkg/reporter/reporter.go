// Package reporter renders laid-out books for humans and tools.
package reporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/layout"
)

// ErrNoPaginator is returned when a Document has no paginator to measure with.
var ErrNoPaginator = errors.New("document has no paginator")

// Document is a laid-out text ready for reporting.
type Document struct {
	// Source names the input, such as a file path or "-" for stdin.
	Source string

	// Book is the layout result.
	Book layout.Book

	// Paginator produced Book and measures its lines.
	Paginator *layout.Paginator
}

// Stats measures the document's book.
func (d *Document) Stats() layout.Stats {
	return d.Paginator.Stats(d.Book)
}

func (d *Document) summary() pretty.BookSummary {
	return pretty.BookSummary{
		Source:       d.Source,
		Stats:        d.Stats(),
		LinesPerPage: d.Paginator.LinesPerPage(),
		MaxLineWidth: d.Paginator.MaxLineWidth(),
	}
}

// Reporter writes a Document in one output format.
type Reporter interface {
	Report(ctx context.Context, doc *Document) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.BarCells == 0 {
		opts.BarCells = DefaultBarCells
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

func checkDocument(doc *Document) error {
	if doc == nil || doc.Paginator == nil {
		return ErrNoPaginator
	}
	return nil
}
