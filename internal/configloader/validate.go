package configloader

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/source"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "layout.lines_per_page").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatSummary: true,
}

// knownSinks lists valid sink values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownSinks = map[config.SinkKind]bool{
	config.SinkStdout:  true,
	config.SinkDir:     true,
	config.SinkCommand: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateLayout(&cfg.Layout, result)
	validateInput(&cfg.Input, result)
	validateDelivery(&cfg.Delivery, result)

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: text, json, summary", cfg.Format)
	}

	return result
}

func validateLayout(l *config.LayoutConfig, result *ValidationResult) {
	if lines := l.Lines(); lines < 1 {
		result.addError("layout.lines_per_page", lines, "must be >= 1")
	}
	budget := l.Width()
	if !(budget > 0) || math.IsInf(budget, 1) {
		result.addError("layout.max_line_width", budget, "must be a finite number > 0")
	}

	keys := make([]string, 0, len(l.CharWidths))
	for key := range l.CharWidths {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		width := l.CharWidths[key]
		field := fmt.Sprintf("layout.char_widths[%q]", key)

		r, err := config.SingleRune(key)
		if err != nil {
			result.addError(field, key, "%v", err)
			continue
		}
		if math.IsNaN(width) || math.IsInf(width, 0) {
			result.addError(field, width, "width must be a finite number")
			continue
		}
		if width < 0 && r != '\n' {
			result.addWarning(field, width, "negative width %v lets the line exceed its budget", width)
		}
		if budget > 0 && width > budget {
			result.addWarning(field, width, "width %v is larger than max_line_width %v; the character always sits on its own line", width, budget)
		}
	}

	for i, mark := range l.ChineseMarks {
		if _, err := config.SingleRune(mark); err != nil {
			result.addError(fmt.Sprintf("layout.chinese_marks[%d]", i), mark, "%v", err)
		}
	}
}

func validateInput(in *config.InputConfig, result *ValidationResult) {
	if in.Encoding == "" {
		return
	}
	if _, err := source.CanonicalEncoding(in.Encoding); err != nil {
		result.addError("input.encoding", in.Encoding,
			"unknown encoding %q; must be one of: %s", in.Encoding, strings.Join(source.Encodings(), ", "))
	}
}

func validateDelivery(d *config.DeliveryConfig, result *ValidationResult) {
	if d.Sink != "" && !knownSinks[d.Sink] {
		result.addError("delivery.sink", d.Sink,
			"invalid sink %q; must be one of: stdout, dir, command", d.Sink)
	}
	if d.Sink == config.SinkDir && strings.TrimSpace(d.Dir) == "" {
		result.addError("delivery.dir", d.Dir, "required when sink is dir")
	}
	if d.Sink == config.SinkCommand && strings.TrimSpace(d.Command) == "" {
		result.addError("delivery.command", d.Command, "required when sink is command")
	}
	if d.Delay != nil && *d.Delay < 0 {
		result.addError("delivery.delay", *d.Delay, "must be >= 0")
	}
	if d.PageLimit != nil && *d.PageLimit < 0 {
		result.addError("delivery.page_limit", *d.PageLimit, "must be >= 0 (0 disables pausing)")
	}
}
