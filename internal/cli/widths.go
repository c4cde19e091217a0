package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/layout"
)

type widthsFlags struct {
	format string
}

func newWidthsCommand() *cobra.Command {
	flags := &widthsFlags{}

	cmd := &cobra.Command{
		Use:   "widths [text...]",
		Short: "Show the effective character width table",
		Long: `Show the width table after configuration is applied.

Without arguments, lists every width override and every CJK punctuation mark.
With arguments, measures each character of the joined text and prints the
total width.

Examples:
  quill widths
  quill widths "你好, world"
  quill widths --format json "Hello"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidths(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json")

	return cmd
}

// widthsOutput is the JSON form of the widths command.
type widthsOutput struct {
	Text  string     `json:"text,omitempty"`
	Chars []widthRow `json:"chars"`
	Total *float64   `json:"total,omitempty"`
}

type widthRow struct {
	Char  string  `json:"char"`
	Width float64 `json:"width"`
	Class string  `json:"class"`
}

func runWidths(cmd *cobra.Command, args []string, flags *widthsFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrInvalidUsage, flags.format)
	}

	cfg, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}
	layoutCfg, err := cfg.Layout.ToLayout()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	model, err := layout.NewWidthModel(layoutCfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	text := strings.Join(args, " ")
	var rows []pretty.WidthRow
	if len(args) == 0 {
		rows = tableRows(layoutCfg, model)
	} else {
		rows = measureRows(text, layoutCfg, model)
	}

	out := cmd.OutOrStdout()
	if flags.format == "json" {
		return writeWidthsJSON(out, text, rows, len(args) > 0, model)
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	if _, err := io.WriteString(out, styles.FormatWidthTable(rows)); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if len(args) > 0 {
		total := strconv.FormatFloat(model.StringWidth(text), 'g', -1, 64)
		if _, err := fmt.Fprintf(out, "Total width: %s\n", total); err != nil {
			return fmt.Errorf("write total: %w", err)
		}
	}
	return nil
}

// tableRows lists overrides then marks without an override, each sorted.
func tableRows(cfg layout.Config, model *layout.WidthModel) []pretty.WidthRow {
	overrides := make([]rune, 0, len(cfg.CharWidths))
	for r := range cfg.CharWidths {
		overrides = append(overrides, r)
	}
	slices.Sort(overrides)

	marks := make([]rune, 0, len(cfg.ChineseMarks))
	for r := range cfg.ChineseMarks {
		if _, ok := cfg.CharWidths[r]; !ok {
			marks = append(marks, r)
		}
	}
	slices.Sort(marks)

	rows := make([]pretty.WidthRow, 0, len(overrides)+len(marks))
	for _, r := range overrides {
		rows = append(rows, pretty.WidthRow{Char: r, Width: model.Width(r), Class: pretty.ClassOverride})
	}
	for _, r := range marks {
		rows = append(rows, pretty.WidthRow{Char: r, Width: model.Width(r), Class: pretty.ClassMark})
	}
	return rows
}

func measureRows(text string, cfg layout.Config, model *layout.WidthModel) []pretty.WidthRow {
	rows := make([]pretty.WidthRow, 0, len(text))
	for _, r := range text {
		rows = append(rows, pretty.WidthRow{Char: r, Width: model.Width(r), Class: classify(r, cfg, model)})
	}
	return rows
}

func classify(r rune, cfg layout.Config, model *layout.WidthModel) string {
	if _, ok := cfg.CharWidths[r]; ok {
		return pretty.ClassOverride
	}
	if _, ok := cfg.ChineseMarks[r]; ok {
		return pretty.ClassMark
	}
	if model.IsChinese(r) {
		return pretty.ClassCJK
	}
	return pretty.ClassDefault
}

func writeWidthsJSON(w io.Writer, text string, rows []pretty.WidthRow, measured bool, model *layout.WidthModel) error {
	output := widthsOutput{Chars: make([]widthRow, 0, len(rows))}
	for _, row := range rows {
		output.Chars = append(output.Chars, widthRow{Char: string(row.Char), Width: row.Width, Class: row.Class})
	}
	if measured {
		total := model.StringWidth(text)
		output.Text = text
		output.Total = &total
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode widths: %w", err)
	}
	return nil
}
