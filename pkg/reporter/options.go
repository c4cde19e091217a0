package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// DefaultBarCells is the fill bar length of the text preview.
const DefaultBarCells = 10

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowWidths adds each line's layout width and a fill bar to the text
	// preview, and per-line widths to JSON.
	ShowWidths bool

	// ShowSummary prints a one-line summary after the text preview.
	ShowSummary bool

	// BarCells is the fill bar length. Zero means DefaultBarCells.
	BarCells int

	// Compact uses minified JSON.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		BarCells:    DefaultBarCells,
	}
}
