package runner

import "github.com/yaklabco/quill/pkg/layout"

// FileOutcome is the layout of one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Book is the laid-out file. Empty when Error is set.
	Book layout.Book

	// Stats summarizes Book.
	Stats layout.Stats

	// Error is set if the file could not be read or decoded.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	Pages           int
	Lines           int
	WidestLine      float64
}

// Result is the outcome of a batch run. Files are sorted by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Pages += outcome.Stats.Pages
	r.Stats.Lines += outcome.Stats.Lines
	r.Stats.WidestLine = max(r.Stats.WidestLine, outcome.Stats.WidestLine)
}
