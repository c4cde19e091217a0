package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/internal/ui/pretty"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/deliver"
	"github.com/yaklabco/quill/pkg/layout"
	"github.com/yaklabco/quill/pkg/runner"
)

type batchFlags struct {
	layout         layoutFlags
	jobs           int
	exclude        []string
	extensions     []string
	followSymlinks bool
	markdownExt    bool
	format         string
	outDir         string
}

func newBatchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [path...]",
		Short: "Lay out many files at once",
		Long: `Lay out every matching file under the given paths concurrently and print
one row per file. Directories are searched recursively for .txt, .md and
.markdown files; hidden files and directories are skipped.

With --out-dir, the pages of each file are written to
<out-dir>/<file>/page-0001.txt, page-0002.txt, ...

Examples:
  quill batch chapters/
  quill batch . --exclude "drafts/**" --jobs 4
  quill batch book/ --out-dir pages --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags)
		},
	}

	addLayoutFlags(cmd, &flags.layout)
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "concurrent workers (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to pick up in directories (default .txt,.md,.markdown)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse directory symlinks")
	cmd.Flags().BoolVar(&flags.markdownExt, "markdown-ext", true, "strip Markdown from .md and .markdown files")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "write the pages of every file below this directory")

	return cmd
}

// batchFile is the JSON form of one file outcome.
type batchFile struct {
	Path  string        `json:"path"`
	Stats *layout.Stats `json:"stats,omitempty"`
	Error string        `json:"error,omitempty"`
}

type batchOutput struct {
	Files []batchFile `json:"files"`
	Total struct {
		Files  int `json:"files"`
		Failed int `json:"failed"`
		Pages  int `json:"pages"`
		Lines  int `json:"lines"`
	} `json:"total"`
}

func runBatch(cmd *cobra.Command, args []string, flags *batchFlags) error {
	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrInvalidUsage, flags.format)
	}

	cliCfg := &config.Config{}
	flags.layout.apply(cmd, cliCfg)

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	layoutCfg, err := cfg.Layout.ToLayout()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	paginator, err := layout.NewPaginator(layoutCfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	result, err := runner.New(paginator).Run(ctx, runner.Options{
		Paths:               args,
		WorkingDir:          workDir,
		Extensions:          flags.extensions,
		ExcludeGlobs:        flags.exclude,
		FollowSymlinks:      flags.followSymlinks,
		Jobs:                flags.jobs,
		Source:              cfg.SourceOptions(),
		MarkdownByExtension: flags.markdownExt,
	})
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	if flags.outDir != "" {
		if err := writeBatchPages(cmd, result, workDir, flags.outDir); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if flags.format == "json" {
		err = writeBatchJSON(out, result, workDir)
	} else {
		err = writeBatchText(out, result, workDir, colorMode(cmd))
	}
	if err != nil {
		return err
	}

	logger.Debug("batch complete",
		"files", result.Stats.FilesProcessed,
		"failed", result.Stats.FilesErrored,
		logging.FieldPages, result.Stats.Pages,
	)

	if result.HasErrors() {
		return fmt.Errorf("%d of %d files failed", result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	return nil
}

// displayPath shows path relative to workDir when it lies below it.
func displayPath(path, workDir string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func writeBatchPages(cmd *cobra.Command, result *runner.Result, workDir, outDir string) error {
	ctx := commandContext(cmd)

	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}

		rel := displayPath(file.Path, workDir)
		if filepath.IsAbs(rel) {
			rel = filepath.Base(rel)
		}

		sink, err := deliver.NewDirSink(filepath.Join(outDir, rel))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if _, err := deliver.New(sink, nil, deliver.Options{}).Run(ctx, file.Book.Texts()); err != nil {
			return fmt.Errorf("write pages of %s: %w", rel, err)
		}
	}
	return nil
}

func writeBatchText(w io.Writer, result *runner.Result, workDir, color string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, w))

	rows := make([]pretty.BatchRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, pretty.BatchRow{
			File:       displayPath(file.Path, workDir),
			Pages:      file.Stats.Pages,
			Lines:      file.Stats.Lines,
			WidestLine: file.Stats.WidestLine,
			Err:        file.Error,
		})
	}

	var b strings.Builder
	if len(rows) > 0 {
		b.WriteString(styles.FormatBatchTable(rows))
	}
	b.WriteString(styles.FormatBatchSummary(len(result.Files), result.Stats.Pages, result.Stats.FilesErrored))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write batch report: %w", err)
	}
	return nil
}

func writeBatchJSON(w io.Writer, result *runner.Result, workDir string) error {
	var output batchOutput
	output.Files = make([]batchFile, 0, len(result.Files))
	for _, file := range result.Files {
		entry := batchFile{Path: displayPath(file.Path, workDir)}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		} else {
			stats := file.Stats
			entry.Stats = &stats
		}
		output.Files = append(output.Files, entry)
	}
	output.Total.Files = len(result.Files)
	output.Total.Failed = result.Stats.FilesErrored
	output.Total.Pages = result.Stats.Pages
	output.Total.Lines = result.Stats.Lines

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode batch report: %w", err)
	}
	return nil
}
