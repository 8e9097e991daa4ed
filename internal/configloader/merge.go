package configloader

import (
	"slices"

	"github.com/yaklabco/gdocmark/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil, so 0 and false can be set
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.UnicodeNormalization != "" {
		result.UnicodeNormalization = override.UnicodeNormalization
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Compact is a CLI switch; a config file cannot unset it.
	if override.Compact {
		result.Compact = true
	}

	if override.StartIndex != nil {
		result.StartIndex = config.IntPtr(*override.StartIndex)
	}
	if override.Inspect != nil {
		result.Inspect = config.BoolPtr(*override.Inspect)
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

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
