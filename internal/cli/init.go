package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	user   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new quill configuration file",
		Long: `Create a new .quill.yml configuration file in the current directory
with the default page geometry. The file can be customized to change the
width table, input handling and delivery settings.

Examples:
  quill init                      Create minimal .quill.yml
  quill init --full               Spell out the whole width table
  quill init --format json        Create .quill.json instead
  quill init --user               Write the user config instead
  quill init --output custom.yml  Write to a custom file path`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every width documented")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the per-user configuration file")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .quill.yml or .quill.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != config.TemplateYAML && flags.format != config.TemplateJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath, err := initPath(flags)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	exists := fsutil.Exists(absPath)
	if exists && !flags.force {
		return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.EnsureDir(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	written, err := fsutil.WriteAtomicIfChanged(commandContext(cmd), absPath, content, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	switch {
	case !written:
		logger.Info("configuration file already up to date", logging.FieldPath, outputPath)
		return nil
	case exists:
		logger.Warn("overwrote existing file", logging.FieldPath, outputPath)
	default:
		logger.Info("created configuration file", logging.FieldPath, outputPath)
	}
	logger.Info("run 'quill widths' to see the effective width table")

	return nil
}

func initPath(flags *initFlags) (string, error) {
	if flags.output != "" {
		return flags.output, nil
	}

	name := ".quill.yml"
	if flags.format == config.TemplateJSON {
		name = ".quill.json"
	}

	if !flags.user {
		return name, nil
	}

	dir, err := configloader.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	if flags.format == config.TemplateJSON {
		return filepath.Join(dir, "config.json"), nil
	}
	return filepath.Join(dir, "config.yml"), nil
}
