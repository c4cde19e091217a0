package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/quill/pkg/layout"
)

// JSONSchemaVersion is the version of the JSON output structure.
const JSONSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version  string       `json:"version"`
	Source   string       `json:"source,omitempty"`
	Settings JSONSettings `json:"settings"`
	Pages    []JSONPage   `json:"pages"`
	Summary  layout.Stats `json:"summary"`
}

// JSONSettings records the layout parameters used.
type JSONSettings struct {
	LinesPerPage int     `json:"linesPerPage"`
	MaxLineWidth float64 `json:"maxLineWidth"`
}

// JSONPage is one page. Text is exactly what a sink receives.
type JSONPage struct {
	Number int        `json:"number"`
	Text   string     `json:"text"`
	Lines  []JSONLine `json:"lines"`
}

// JSONLine is one laid-out line. Width is omitted unless widths are shown.
type JSONLine struct {
	Text  string   `json:"text"`
	Width *float64 `json:"width,omitempty"`
}

// JSONReporter formats books as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, doc *Document) (err error) {
	if err := checkDocument(doc); err != nil {
		return err
	}

	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(doc)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(doc *Document) *JSONOutput {
	model := doc.Paginator.Model()

	output := &JSONOutput{
		Version: JSONSchemaVersion,
		Source:  doc.Source,
		Settings: JSONSettings{
			LinesPerPage: doc.Paginator.LinesPerPage(),
			MaxLineWidth: doc.Paginator.MaxLineWidth(),
		},
		Pages:   make([]JSONPage, 0, len(doc.Book.Pages)),
		Summary: doc.Stats(),
	}

	for _, page := range doc.Book.Pages {
		jsonPage := JSONPage{
			Number: page.Number,
			Text:   page.Text,
			Lines:  make([]JSONLine, 0, len(page.Lines)),
		}
		for _, text := range page.Lines {
			line := JSONLine{Text: text}
			if r.opts.ShowWidths {
				width := model.StringWidth(text)
				line.Width = &width
			}
			jsonPage.Lines = append(jsonPage.Lines, line)
		}
		output.Pages = append(output.Pages, jsonPage)
	}

	return output
}
