package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/yaklabco/quill/pkg/config"
)

// envVarPrefix is the prefix for all quill environment variables.
const envVarPrefix = "QUILL_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeFloat
	envTypeDuration
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LINES_PER_PAGE":  {"layout.lines_per_page", envTypeInt, "Lines per page"},
	"MAX_LINE_WIDTH":  {"layout.max_line_width", envTypeFloat, "Width budget per line"},
	"ENCODING":        {"input.encoding", envTypeString, "Input encoding: auto, utf-8, utf-16le, utf-16be, gb18030, gbk, big5"},
	"MARKDOWN":        {"input.markdown", envTypeBool, "Strip Markdown markup: true or false"},
	"SINK":            {"delivery.sink", envTypeString, "Delivery sink: stdout, dir, or command"},
	"DIR":             {"delivery.dir", envTypeString, "Target directory of the dir sink"},
	"COMMAND":         {"delivery.command", envTypeString, "Command receiving each page on stdin"},
	"ADVANCE_COMMAND": {"delivery.advance_command", envTypeString, "Command run between pages"},
	"DELAY":           {"delivery.delay", envTypeDuration, "Pause between pages, e.g. 250ms"},
	"PAGE_LIMIT":      {"delivery.page_limit", envTypeInt, "Pause every N pages (0 disables)"},
	"WAIT":            {"delivery.wait", envTypeBool, "Wait before the first page: true or false"},
	"FORMAT":          {"format", envTypeString, "Report format: text, json, or summary"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with QUILL_ (e.g., QUILL_LINES_PER_PAGE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", envVar, value)
		}
		return setFloatField(cfg, mapping.field, f)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q (expected e.g. 100ms, 1s)", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "input.encoding":
		cfg.Input.Encoding = value
	case "delivery.sink":
		cfg.Delivery.Sink = config.SinkKind(value)
	case "delivery.dir":
		cfg.Delivery.Dir = value
	case "delivery.command":
		cfg.Delivery.Command = value
	case "delivery.advance_command":
		cfg.Delivery.AdvanceCommand = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "input.markdown":
		cfg.Input.Markdown = config.Bool(value)
	case "delivery.wait":
		cfg.Delivery.Wait = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "layout.lines_per_page":
		cfg.Layout.LinesPerPage = config.Int(value)
	case "delivery.page_limit":
		cfg.Delivery.PageLimit = config.Int(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setFloatField sets a float field on the config by field path.
func setFloatField(cfg *config.Config, field string, value float64) error {
	switch field {
	case "layout.max_line_width":
		cfg.Layout.MaxLineWidth = config.Float64(value)
	default:
		return fmt.Errorf("unknown number field: %s", field)
	}
	return nil
}

// setDurationField sets a duration field on the config by field path.
func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "delivery.delay":
		cfg.Delivery.Delay = config.Duration(value)
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
