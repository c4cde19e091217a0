package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/layout"
	"github.com/yaklabco/quill/pkg/reporter"
	"github.com/yaklabco/quill/pkg/source"
)

// DefaultInputFile is read when no file argument is given.
const DefaultInputFile = "input.txt"

// layoutFlags are the layout and input flags shared by format and paste.
type layoutFlags struct {
	lines      int
	maxWidth   float64
	encoding   string
	markdown   bool
	noTrim     bool
	noCollapse bool
}

func addLayoutFlags(cmd *cobra.Command, flags *layoutFlags) {
	cmd.Flags().IntVarP(&flags.lines, "lines", "l", layout.DefaultLinesPerPage, "lines per page")
	cmd.Flags().Float64VarP(&flags.maxWidth, "max-width", "w", layout.DefaultMaxLineWidth, "width budget per line")
	cmd.Flags().StringVarP(&flags.encoding, "encoding", "e", source.EncodingAuto,
		"input encoding: auto, utf-8, utf-16le, utf-16be, gb18030, gbk, big5")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "strip Markdown markup before layout")
	cmd.Flags().BoolVar(&flags.noTrim, "no-trim", false, "keep leading and trailing whitespace")
	cmd.Flags().BoolVar(&flags.noCollapse, "no-collapse", false, "keep runs of blank lines")
}

// apply copies the explicitly set flags into cfg.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("lines") {
		cfg.Layout.LinesPerPage = config.Int(f.lines)
	}
	if cmd.Flags().Changed("max-width") {
		cfg.Layout.MaxLineWidth = config.Float64(f.maxWidth)
	}
	if cmd.Flags().Changed("encoding") {
		cfg.Input.Encoding = f.encoding
	}
	if cmd.Flags().Changed("markdown") {
		cfg.Input.Markdown = config.Bool(f.markdown)
	}
	if cmd.Flags().Changed("no-trim") {
		cfg.Input.Trim = config.Bool(!f.noTrim)
	}
	if cmd.Flags().Changed("no-collapse") {
		cfg.Input.CollapseBlankLines = config.Bool(!f.noCollapse)
	}
}

// loadConfig resolves the layered configuration with cliCfg on top.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// buildDocument reads the input and lays it out.
func buildDocument(cmd *cobra.Command, cfg *config.Config, path string) (*reporter.Document, error) {
	logger := logging.Default()

	layoutCfg, err := cfg.Layout.ToLayout()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	paginator, err := layout.NewPaginator(layoutCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	opts := cfg.SourceOptions()
	text, err := source.LoadFile(commandContext(cmd), path, cmd.InOrStdin(), opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	book := paginator.Book(text)
	logger.Debug("laid out input",
		logging.FieldPath, path,
		logging.FieldEncoding, opts.Encoding,
		logging.FieldMarkdown, opts.Markdown,
		logging.FieldLines, len(book.Lines),
		logging.FieldPages, len(book.Pages),
		logging.FieldLinesPerPage, paginator.LinesPerPage(),
		logging.FieldMaxLineWidth, paginator.MaxLineWidth(),
	)

	return &reporter.Document{Source: path, Book: book, Paginator: paginator}, nil
}

// inputPath returns the file argument or DefaultInputFile.
func inputPath(args []string) string {
	if len(args) == 0 {
		return DefaultInputFile
	}
	return args[0]
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// maxOneArg accepts an optional input file.
func maxOneArg(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	return nil
}
