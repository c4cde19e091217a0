package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/ui/pretty"
)

// Command groups of the root help.
const (
	groupLayout = "layout"
	groupSetup  = "setup"
)

const helpHeaderTemplate = `{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}
{{with (or .Long .Short)}}
{{ trimTrailingWhitespaces . }}
{{end}}
`

const usageTemplate = `{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}{{if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}{{end}}{{if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}{{end}}{{if .HasAvailableSubCommands}}{{ commandGroups . }}{{end}}{{if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagUsages .LocalFlags }}{{end}}{{if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}{{end}}{{if not .HasParent}}

{{ heading "Configuration:" }}
{{ configFiles }}

{{ heading "Environment:" }}
{{ envVars }}{{end}}{{if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

// HelpFormatter renders cobra help with the same palette as the reports.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"command":                 h.styles.PageHeader.Render,
		"heading":                 h.styles.SummaryTitle.Render,
		"dim":                     h.styles.Dim.Render,
		"join":                    strings.Join,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
		"commandGroups":           h.commandGroups,
		"flagUsages":              h.flagUsages,
		"configFiles":             h.configFiles,
		"envVars":                 h.envVars,
	}
}

// ApplyToCommand installs the help and usage functions on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpHeaderTemplate + usageTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// commandGroups lists the available subcommands under their group titles.
func (h *HelpFormatter) commandGroups(cmd *cobra.Command) string {
	var b strings.Builder

	section := func(title string, member func(*cobra.Command) bool) {
		var rows []string
		for _, sub := range cmd.Commands() {
			if !(sub.IsAvailableCommand() || sub.Name() == "help") || !member(sub) {
				continue
			}
			name := h.styles.Success.Render(rpad(sub.Name(), sub.NamePadding()))
			rows = append(rows, "  "+name+" "+sub.Short)
		}
		if len(rows) == 0 {
			return
		}
		b.WriteString("\n\n" + h.styles.SummaryTitle.Render(title) + "\n" + strings.Join(rows, "\n"))
	}

	for _, group := range cmd.Groups() {
		id := group.ID
		section(group.Title, func(c *cobra.Command) bool { return c.GroupID == id })
	}

	ungrouped := "Commands:"
	if len(cmd.Groups()) > 0 {
		ungrouped = "Additional Commands:"
	}
	section(ungrouped, func(c *cobra.Command) bool { return c.GroupID == "" })

	return b.String()
}

// flagUsages renders flags as aligned "-l, --lines int   usage" rows.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	type row struct {
		names, kind, usage string
	}

	var rows []row
	width := 0
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		r := row{names: "    --" + f.Name}
		if f.Shorthand != "" {
			r.names = "-" + f.Shorthand + ", --" + f.Name
		}
		r.kind, r.usage = pflag.UnquoteUsage(f)
		if def := flagDefault(f); def != "" {
			r.usage += " (default " + def + ")"
		}

		rows = append(rows, r)
		width = max(width, plainFlagWidth(r.names, r.kind))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := "  " + h.styles.Width.Render(r.names)
		if r.kind != "" {
			line += " " + h.styles.Dim.Render(r.kind)
		}
		line += strings.Repeat(" ", width-plainFlagWidth(r.names, r.kind)+3) + r.usage
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func plainFlagWidth(names, kind string) int {
	if kind == "" {
		return len(names)
	}
	return len(names) + 1 + len(kind)
}

// flagDefault returns the default worth showing, or "" for zero values.
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]", "0s":
		return ""
	}
	if f.Value.Type() == "string" {
		return strconv.Quote(f.DefValue)
	}
	return f.DefValue
}

// configFiles lists where configuration is looked up, lowest precedence last.
func (h *HelpFormatter) configFiles() string {
	userDir, err := configloader.UserConfigDir()
	if err != nil {
		userDir = filepath.Join("~", ".config", "quill")
	}

	rows := [][2]string{
		{"--config", "explicit file, applied over the files below"},
		{"project", strings.Join(configloader.ProjectConfigFiles, ", ") + " (searched upward)"},
		{"user", filepath.Join(userDir, "config.{yaml,yml,json}")},
		{"system", filepath.Join(configloader.SystemConfigDir(), "config.{yaml,yml,json}")},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+h.styles.Width.Render(rpad(r[0], 8))+"   "+r[1])
	}
	return strings.Join(lines, "\n")
}

// envVars lists the QUILL_* overrides, one per line.
func (h *HelpFormatter) envVars() string {
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, "  "+h.styles.Width.Render(rpad(v.Name, width))+"   "+v.Description)
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
