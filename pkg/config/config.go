// Package config defines the configuration types for quill.
// These types are pure data structures; loading and merging lives in
// internal/configloader.
package config

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/yaklabco/quill/pkg/layout"
	"github.com/yaklabco/quill/pkg/source"
)

// OutputFormat specifies how a laid-out book is reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// SinkKind selects the delivery sink used by the paste command.
type SinkKind string

const (
	SinkStdout  SinkKind = "stdout"
	SinkDir     SinkKind = "dir"
	SinkCommand SinkKind = "command"
)

// Default delivery settings.
const (
	DefaultDelay = 100 * time.Millisecond
	DefaultDir   = "pages"
)

// LayoutConfig is the serializable form of layout.Config.
// Map and slice keys are strings that must hold exactly one character.
type LayoutConfig struct {
	// LinesPerPage is the number of lines per page.
	LinesPerPage *int `yaml:"lines_per_page,omitempty" json:"lines_per_page,omitempty"`

	// MaxLineWidth is the width budget per line.
	MaxLineWidth *float64 `yaml:"max_line_width,omitempty" json:"max_line_width,omitempty"`

	// CharWidths are merged over the built-in width table.
	CharWidths map[string]float64 `yaml:"char_widths,omitempty" json:"char_widths,omitempty"`

	// ChineseMarks replaces the built-in CJK punctuation set when non-nil.
	ChineseMarks []string `yaml:"chinese_marks,omitempty" json:"chinese_marks,omitempty"`
}

// InputConfig controls how source text is read and cleaned up.
type InputConfig struct {
	// Encoding of the input file. "auto" honours BOMs, accepts valid UTF-8
	// and falls back to GB18030.
	Encoding string `yaml:"encoding" json:"encoding"`

	// Markdown strips Markdown markup before layout. Defaults to false.
	Markdown *bool `yaml:"markdown,omitempty" json:"markdown,omitempty"`

	// Trim removes leading and trailing whitespace. Defaults to true.
	Trim *bool `yaml:"trim,omitempty" json:"trim,omitempty"`

	// CollapseBlankLines squeezes runs of blank lines into one. Defaults to true.
	CollapseBlankLines *bool `yaml:"collapse_blank_lines,omitempty" json:"collapse_blank_lines,omitempty"`
}

// DeliveryConfig controls how pages are handed to a sink.
type DeliveryConfig struct {
	// Sink is one of stdout, dir, command.
	Sink SinkKind `yaml:"sink" json:"sink"`

	// Dir is the target directory of the dir sink.
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`

	// Command receives each page on stdin (command sink).
	Command string `yaml:"command,omitempty" json:"command,omitempty"`

	// AdvanceCommand runs between pages (command sink), e.g. to turn the page.
	AdvanceCommand string `yaml:"advance_command,omitempty" json:"advance_command,omitempty"`

	// Delay is the pause between pages.
	Delay *time.Duration `yaml:"delay,omitempty" json:"delay,omitempty"`

	// PageLimit pauses for the continue signal every N pages. 0 disables.
	PageLimit *int `yaml:"page_limit,omitempty" json:"page_limit,omitempty"`

	// Wait waits for the continue signal before the first page. Defaults to true.
	Wait *bool `yaml:"wait,omitempty" json:"wait,omitempty"`
}

// Config is the root configuration structure for quill.
type Config struct {
	Layout   LayoutConfig   `yaml:"layout" json:"layout"`
	Input    InputConfig    `yaml:"input" json:"input"`
	Delivery DeliveryConfig `yaml:"delivery" json:"delivery"`

	// CLI-level options (not persisted to config files).

	// Format specifies the report format of the format command.
	Format OutputFormat `yaml:"-" json:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			LinesPerPage: Int(layout.DefaultLinesPerPage),
			MaxLineWidth: Float64(layout.DefaultMaxLineWidth),
		},
		Input: InputConfig{
			Encoding:           source.EncodingAuto,
			Markdown:           Bool(false),
			Trim:               Bool(true),
			CollapseBlankLines: Bool(true),
		},
		Delivery: DeliveryConfig{
			Sink:      SinkStdout,
			Dir:       DefaultDir,
			Delay:     Duration(DefaultDelay),
			PageLimit: Int(0),
			Wait:      Bool(true),
		},
		Format: FormatText,
	}
}

// ToLayout converts the serializable layout settings into a layout.Config.
// CharWidths are applied over the default table; ChineseMarks replace the
// default set when present.
func (l LayoutConfig) ToLayout() (layout.Config, error) {
	cfg := layout.DefaultConfig()
	cfg.LinesPerPage = l.Lines()
	cfg.MaxLineWidth = l.Width()

	for key, width := range l.CharWidths {
		r, err := SingleRune(key)
		if err != nil {
			return layout.Config{}, fmt.Errorf("char_widths: %w", err)
		}
		cfg.CharWidths[r] = width
	}

	if l.ChineseMarks != nil {
		cfg.ChineseMarks = make(map[rune]struct{}, len(l.ChineseMarks))
		for _, mark := range l.ChineseMarks {
			r, err := SingleRune(mark)
			if err != nil {
				return layout.Config{}, fmt.Errorf("chinese_marks: %w", err)
			}
			cfg.ChineseMarks[r] = struct{}{}
		}
	}

	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// Lines returns LinesPerPage, or the layout default when unset.
func (l LayoutConfig) Lines() int {
	return IntValue(l.LinesPerPage, layout.DefaultLinesPerPage)
}

// Width returns MaxLineWidth, or the layout default when unset.
func (l LayoutConfig) Width() float64 {
	return Float64Value(l.MaxLineWidth, layout.DefaultMaxLineWidth)
}

// SingleRune returns the only rune of s, or an error when s is not exactly
// one character.
func SingleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || (r == utf8.RuneError && size == 1) {
		return 0, fmt.Errorf("key %q must be exactly one character", s)
	}
	return r, nil
}

// BoolValue dereferences b, returning def when b is nil.
func BoolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// IntValue dereferences i, returning def when i is nil.
func IntValue(i *int, def int) int {
	if i == nil {
		return def
	}
	return *i
}

// Float64Value dereferences f, returning def when f is nil.
func Float64Value(f *float64, def float64) float64 {
	if f == nil {
		return def
	}
	return *f
}

// DurationValue dereferences d, returning def when d is nil.
func DurationValue(d *time.Duration, def time.Duration) time.Duration {
	if d == nil {
		return def
	}
	return *d
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Float64 returns a pointer to f.
func Float64(f float64) *float64 { return &f }

// Duration returns a pointer to d.
func Duration(d time.Duration) *time.Duration { return &d }

// SourceOptions returns the input settings as source.Options.
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		Encoding:           c.Input.Encoding,
		Markdown:           BoolValue(c.Input.Markdown, false),
		Trim:               BoolValue(c.Input.Trim, true),
		CollapseBlankLines: BoolValue(c.Input.CollapseBlankLines, true),
	}
}
