package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/yaklabco/quill/pkg/layout"
	"github.com/yaklabco/quill/pkg/source"
)

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateJSON = "json"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full spells out the whole default width table and CJK mark set.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(opts), nil
	case TemplateJSON:
		return generateJSONTemplate(opts)
	default:
		return nil, fmt.Errorf("unknown template format %q; must be yaml or json", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	fmt.Fprintf(&buf, `layout:
  # Lines on a full page.
  lines_per_page: %d

  # Width budget of one line. Latin runes are %v wide, CJK runes %v.
  max_line_width: %v
`, layout.DefaultLinesPerPage, layout.LatinWidth, layout.ChineseWidth, layout.DefaultMaxLineWidth)

	if opts.Full {
		buf.WriteString("\n  # Per-character widths, merged over the built-in table.\n  char_widths:\n")
		for _, key := range sortedWidthKeys() {
			fmt.Fprintf(&buf, "    %s: %v\n", strconv.Quote(string(key)), layout.DefaultCharWidths()[key])
		}
		buf.WriteString("\n  # Punctuation measured as CJK. Replaces the built-in set.\n  chinese_marks:\n")
		for _, mark := range sortedMarks() {
			fmt.Fprintf(&buf, "    - %s\n", strconv.Quote(string(mark)))
		}
	} else {
		buf.WriteString(`
  # Per-character widths, merged over the built-in table.
  # char_widths:
  #   "@": 4

  # Punctuation measured as CJK. Replaces the built-in set when set.
  # chinese_marks: ["，", "。"]
`)
	}

	fmt.Fprintf(&buf, `
input:
  # auto, utf-8, utf-16le, utf-16be, gb18030, gbk, big5
  encoding: %s

  # Strip Markdown markup before layout.
  markdown: false

  # Trim surrounding whitespace and squeeze runs of blank lines.
  trim: true
  collapse_blank_lines: true

delivery:
  # stdout, dir, or command
  sink: %s

  # Directory for the dir sink.
  dir: %s

  # Command receiving each page on stdin, e.g. "wl-copy" or "xclip -selection clipboard".
  # command: ""

  # Command run between pages.
  # advance_command: ""

  # Pause between pages.
  delay: %s

  # Wait for the continue key every N pages (0 disables).
  page_limit: 0

  # Wait for the continue key before the first page.
  wait: true
`, source.EncodingAuto, SinkStdout, DefaultDir, DefaultDelay)

	return buf.Bytes()
}

func generateJSONTemplate(opts TemplateOptions) ([]byte, error) {
	layoutSection := map[string]any{
		"lines_per_page": layout.DefaultLinesPerPage,
		"max_line_width": layout.DefaultMaxLineWidth,
	}

	if opts.Full {
		widths := make(map[string]float64)
		for r, w := range layout.DefaultCharWidths() {
			widths[string(r)] = w
		}
		marks := make([]string, 0)
		for _, mark := range sortedMarks() {
			marks = append(marks, string(mark))
		}
		layoutSection["char_widths"] = widths
		layoutSection["chinese_marks"] = marks
	}

	cfg := map[string]any{
		"layout": layoutSection,
		"input": map[string]any{
			"encoding":             source.EncodingAuto,
			"markdown":             false,
			"trim":                 true,
			"collapse_blank_lines": true,
		},
		"delivery": map[string]any{
			"sink":       SinkStdout,
			"dir":        DefaultDir,
			"delay":      DefaultDelay.String(),
			"page_limit": 0,
			"wait":       true,
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

func sortedWidthKeys() []rune {
	widths := layout.DefaultCharWidths()
	keys := make([]rune, 0, len(widths))
	for r := range widths {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedMarks() []rune {
	marks := layout.DefaultChineseMarks()
	keys := make([]rune, 0, len(marks))
	for r := range marks {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# quill configuration
# See: https://github.com/yaklabco/quill`
}
