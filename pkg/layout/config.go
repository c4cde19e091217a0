// Package layout implements the proportional-width page layout model.
//
// A WidthModel assigns every rune a visual width from a small lookup table,
// with a wider default for CJK ideographs and CJK punctuation. A Paginator
// greedily wraps text into lines that fit a width budget and then chunks the
// lines into pages of a fixed line count. Both are pure: they perform no I/O
// and keep no state between calls, so a single value may be shared freely
// across goroutines.
package layout

import (
	"errors"
	"fmt"
	"maps"
)

// Default layout values.
const (
	// DefaultMaxLineWidth is the width budget of a single line.
	DefaultMaxLineWidth = 57.0

	// DefaultLinesPerPage is the number of lines on a full page.
	DefaultLinesPerPage = 14

	// ChineseWidth is the width of a rune in the CJK width class.
	ChineseWidth = 4.5

	// LatinWidth is the width of any other rune without an override.
	LatinWidth = 3.0

	// NewlineSentinel is the table entry for '\n'. Newlines are handled
	// structurally by the line wrapper and never measured.
	NewlineSentinel = -1.0
)

// CJK Unified Ideographs (basic block).
const (
	cjkFirst rune = 0x4E00
	cjkLast  rune = 0x9FFF
)

// ErrInvalidConfiguration is returned when a Config violates its invariants.
var ErrInvalidConfiguration = errors.New("invalid layout configuration")

// Config holds the width table and page geometry.
type Config struct {
	// MaxLineWidth is the total width permitted on one line. Must be > 0.
	MaxLineWidth float64

	// LinesPerPage is the number of lines per page. Must be >= 1.
	LinesPerPage int

	// CharWidths overrides the width of individual runes.
	CharWidths map[rune]float64

	// ChineseMarks lists punctuation measured as CJK even though it lies
	// outside the CJK Unified Ideographs block.
	ChineseMarks map[rune]struct{}
}

// DefaultConfig returns the default layout with freshly allocated tables.
func DefaultConfig() Config {
	return Config{
		MaxLineWidth: DefaultMaxLineWidth,
		LinesPerPage: DefaultLinesPerPage,
		CharWidths:   DefaultCharWidths(),
		ChineseMarks: DefaultChineseMarks(),
	}
}

// DefaultCharWidths returns the default per-rune width overrides.
func DefaultCharWidths() map[rune]float64 {
	return map[rune]float64{
		'`': 1.5,
		'[': 2, ']': 2, '(': 2, ')': 2, '"': 2, '{': 2, '}': 2, '*': 2, ' ': 2,
		'.': 1, ',': 1, ';': 1, ':': 1, '\'': 1, '!': 1, '|': 1,
		'<': 2.5, '>': 2.5,
		'→': 4, '~': 4,
		'—': 4.5,
		'\n': NewlineSentinel,
	}
}

// DefaultChineseMarks returns the default set of CJK-class punctuation.
func DefaultChineseMarks() map[rune]struct{} {
	marks := []rune{
		'，', '。', '、', '？', '！', '】', '【', '（', '）',
		'·', '；', '：', '“', '‘', '《', '》', '…',
	}

	set := make(map[rune]struct{}, len(marks))
	for _, r := range marks {
		set[r] = struct{}{}
	}
	return set
}

// Validate reports whether the configuration satisfies its invariants.
// The returned error wraps ErrInvalidConfiguration.
func (c Config) Validate() error {
	if !(c.MaxLineWidth > 0) {
		return fmt.Errorf("%w: max line width must be > 0, got %v", ErrInvalidConfiguration, c.MaxLineWidth)
	}
	if c.LinesPerPage < 1 {
		return fmt.Errorf("%w: lines per page must be >= 1, got %d", ErrInvalidConfiguration, c.LinesPerPage)
	}
	return nil
}

// clone returns a deep copy so later changes to the caller's maps cannot
// leak into a constructed model.
func (c Config) clone() Config {
	out := c
	out.CharWidths = maps.Clone(c.CharWidths)
	out.ChineseMarks = maps.Clone(c.ChineseMarks)
	if out.CharWidths == nil {
		out.CharWidths = map[rune]float64{}
	}
	if out.ChineseMarks == nil {
		out.ChineseMarks = map[rune]struct{}{}
	}
	return out
}
