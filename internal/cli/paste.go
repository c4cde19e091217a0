package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/deliver"
	"github.com/yaklabco/quill/pkg/reporter"
)

type pasteFlags struct {
	layout         layoutFlags
	sink           string
	dir            string
	command        string
	advanceCommand string
	separator      string
	delay          time.Duration
	pageLimit      int
	noWait         bool
	preview        bool
}

func newPasteCommand() *cobra.Command {
	flags := &pasteFlags{}

	cmd := &cobra.Command{
		Use:   "paste [file]",
		Short: "Lay out text and deliver the pages one by one",
		Long:  pasteLongDescription,
		Args:  maxOneArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaste(cmd, args, flags)
		},
	}

	addLayoutFlags(cmd, &flags.layout)
	cmd.Flags().StringVarP(&flags.sink, "sink", "s", string(config.SinkStdout), "page sink: stdout, dir, command")
	cmd.Flags().StringVar(&flags.dir, "dir", config.DefaultDir, "target directory of the dir sink")
	cmd.Flags().StringVar(&flags.command, "command", "", "command receiving each page on stdin (command sink)")
	cmd.Flags().StringVar(&flags.advanceCommand, "advance-command", "", "command run between pages (command sink)")
	cmd.Flags().StringVar(&flags.separator, "separator", deliver.DefaultSeparator, "text written between pages (stdout sink)")
	cmd.Flags().DurationVar(&flags.delay, "delay", config.DefaultDelay, "pause between pages")
	cmd.Flags().IntVar(&flags.pageLimit, "page-limit", 0, "wait for the continue key every N pages (0 disables)")
	cmd.Flags().BoolVar(&flags.noWait, "no-wait", false, "start without waiting for the continue key")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "print the page preview instead of delivering")

	return cmd
}

const pasteLongDescription = `Lay out a text file and hand the pages, in order, to a sink.

Sinks:
  stdout    write pages to standard output, separated by --separator
  dir       write page-0001.txt, page-0002.txt, ... into --dir
  command   pipe each page into --command, e.g. "wl-copy" or
            "xclip -selection clipboard"; --advance-command runs between pages

On a terminal, quill waits for Enter before the first page (unless --no-wait)
and, with --page-limit N, after every N pages. Esc or q aborts cleanly.

Examples:
  quill paste story.txt --sink dir --dir pages
  quill paste story.txt --sink command --command wl-copy --page-limit 5
  quill paste - --no-wait < story.txt`

func (f *pasteFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	f.layout.apply(cmd, cfg)

	if cmd.Flags().Changed("sink") {
		cfg.Delivery.Sink = config.SinkKind(f.sink)
	}
	if cmd.Flags().Changed("dir") {
		cfg.Delivery.Dir = f.dir
	}
	if cmd.Flags().Changed("command") {
		cfg.Delivery.Command = f.command
	}
	if cmd.Flags().Changed("advance-command") {
		cfg.Delivery.AdvanceCommand = f.advanceCommand
	}
	if cmd.Flags().Changed("delay") {
		cfg.Delivery.Delay = config.Duration(f.delay)
	}
	if cmd.Flags().Changed("page-limit") {
		cfg.Delivery.PageLimit = config.Int(f.pageLimit)
	}
	if cmd.Flags().Changed("no-wait") {
		cfg.Delivery.Wait = config.Bool(!f.noWait)
	}
}

func runPaste(cmd *cobra.Command, args []string, flags *pasteFlags) error {
	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	doc, err := buildDocument(cmd, cfg, inputPath(args))
	if err != nil {
		return err
	}

	if flags.preview {
		rep, err := reporter.New(reporter.Options{
			Writer:      cmd.OutOrStdout(),
			Format:      reporter.FormatText,
			Color:       colorMode(cmd),
			ShowSummary: true,
		})
		if err != nil {
			return fmt.Errorf("create reporter: %w", err)
		}
		return rep.Report(ctx, doc)
	}

	sink, err := newSink(cmd, &cfg.Delivery, flags.separator)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	opts := deliver.Options{
		Delay:     config.DurationValue(cfg.Delivery.Delay, config.DefaultDelay),
		PageLimit: config.IntValue(cfg.Delivery.PageLimit, 0),
		WaitFirst: config.BoolValue(cfg.Delivery.Wait, true),
	}

	trigger := newTrigger(cmd)
	if trigger == nil {
		if opts.WaitFirst || opts.PageLimit > 0 {
			logger.Debug("stdin is not a terminal; delivering without waiting")
		}
		opts.WaitFirst = false
		opts.PageLimit = 0
	}

	logger.Debug("delivering pages",
		logging.FieldSink, cfg.Delivery.Sink,
		logging.FieldTotal, len(doc.Book.Pages),
		logging.FieldDelay, opts.Delay,
		logging.FieldPageLimit, opts.PageLimit,
	)

	stats, err := deliver.New(sink, trigger, opts).Run(ctx, doc.Book.Texts())
	if errors.Is(err, deliver.ErrAborted) {
		logger.Warn("delivery aborted",
			logging.FieldDelivered, stats.Delivered,
			logging.FieldTotal, stats.Total,
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("deliver pages: %w", err)
	}

	logger.Info("delivered pages",
		logging.FieldDelivered, stats.Delivered,
		logging.FieldTotal, stats.Total,
		logging.FieldPauses, stats.Pauses,
	)
	return nil
}

// newSink builds the configured sink.
func newSink(cmd *cobra.Command, d *config.DeliveryConfig, separator string) (deliver.Sink, error) {
	switch d.Sink {
	case config.SinkDir:
		return deliver.NewDirSink(d.Dir)
	case config.SinkCommand:
		return deliver.NewCommandSink(d.Command, d.AdvanceCommand)
	case config.SinkStdout, "":
		return deliver.NewWriterSink(cmd.OutOrStdout(), separator), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", d.Sink)
	}
}

// newTrigger returns a key trigger when stdin is a terminal, else nil.
func newTrigger(cmd *cobra.Command) deliver.Trigger {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return nil
	}

	trigger := deliver.NewKeyTrigger(in, cmd.ErrOrStderr())
	if !trigger.IsTerminal() {
		return nil
	}
	return trigger
}
