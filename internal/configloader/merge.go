package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/quill/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if non-nil, so an explicit
//     false or 0 in a config file wins
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	// Layout
	mergePtr(&result.Layout.LinesPerPage, override.Layout.LinesPerPage)
	mergePtr(&result.Layout.MaxLineWidth, override.Layout.MaxLineWidth)
	result.Layout.CharWidths = mergeWidths(base.Layout.CharWidths, override.Layout.CharWidths)
	if override.Layout.ChineseMarks != nil {
		result.Layout.ChineseMarks = slices.Clone(override.Layout.ChineseMarks)
	}

	// Input
	if override.Input.Encoding != "" {
		result.Input.Encoding = override.Input.Encoding
	}
	mergePtr(&result.Input.Markdown, override.Input.Markdown)
	mergePtr(&result.Input.Trim, override.Input.Trim)
	mergePtr(&result.Input.CollapseBlankLines, override.Input.CollapseBlankLines)

	// Delivery
	if override.Delivery.Sink != "" {
		result.Delivery.Sink = override.Delivery.Sink
	}
	if override.Delivery.Dir != "" {
		result.Delivery.Dir = override.Delivery.Dir
	}
	if override.Delivery.Command != "" {
		result.Delivery.Command = override.Delivery.Command
	}
	if override.Delivery.AdvanceCommand != "" {
		result.Delivery.AdvanceCommand = override.Delivery.AdvanceCommand
	}
	mergePtr(&result.Delivery.Delay, override.Delivery.Delay)
	mergePtr(&result.Delivery.PageLimit, override.Delivery.PageLimit)
	mergePtr(&result.Delivery.Wait, override.Delivery.Wait)

	// CLI-only
	if override.Format != "" {
		result.Format = override.Format
	}

	return result
}

// mergePtr copies override into *dst when override is set.
func mergePtr[T any](dst **T, override *T) {
	if override == nil {
		return
	}
	v := *override
	*dst = &v
}

// mergeWidths performs a deep merge of width tables.
func mergeWidths(base, override map[string]float64) map[string]float64 {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]float64, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
