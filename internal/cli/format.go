package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/fsutil"
	"github.com/yaklabco/quill/pkg/reporter"
)

type formatFlags struct {
	layout  layoutFlags
	format  string
	widths  bool
	compact bool
	output  string
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Lay out text and preview the pages",
		Long:  formatLongDescription,
		Args:  maxOneArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	addLayoutFlags(cmd, &flags.layout)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json, summary")
	cmd.Flags().BoolVar(&flags.widths, "widths", false, "show the layout width of every line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")

	return cmd
}

const formatLongDescription = `Lay out a text file into pages and print the result.

The file defaults to input.txt; use "-" to read standard input.

Examples:
  quill format                        # Preview input.txt
  quill format story.txt --widths     # Show line widths and fill bars
  quill format notes.md --markdown    # Strip Markdown markup first
  quill format - --format json        # Read stdin, print JSON
  quill format --lines 10 --max-width 40 --format summary`

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cliCfg := &config.Config{}
	flags.layout.apply(cmd, cliCfg)
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	doc, err := buildDocument(cmd, cfg, inputPath(args))
	if err != nil {
		return err
	}

	opts := reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowWidths:  flags.widths,
		ShowSummary: true,
		Compact:     flags.compact,
	}

	var buf bytes.Buffer
	if flags.output != "" {
		opts.Writer = &buf
		opts.Color = "never"
	}

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if err := rep.Report(ctx, doc); err != nil {
		return fmt.Errorf("report pages: %w", err)
	}

	if flags.output != "" {
		if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), 0); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("wrote report", logging.FieldOutput, flags.output, logging.FieldPages, len(doc.Book.Pages))
	}

	return nil
}
