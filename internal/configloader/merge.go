package configloader

import "github.com/yaklabco/semoutline/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Boolean switches: override overwrites base if set (non-nil)
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Encoding != "" {
		result.Encoding = override.Encoding
	}
	if override.Suffix != "" {
		result.Suffix = override.Suffix
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	result.FollowSymlinks = mergeBool(base.FollowSymlinks, override.FollowSymlinks)
	result.RespectGitignore = mergeBool(base.RespectGitignore, override.RespectGitignore)
	result.IncludeHidden = mergeBool(base.IncludeHidden, override.IncludeHidden)
	result.SkipVendored = mergeBool(base.SkipVendored, override.SkipVendored)
	result.SkipGenerated = mergeBool(base.SkipGenerated, override.SkipGenerated)
	result.Verify = mergeBool(base.Verify, override.Verify)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Include != nil {
		result.Include = override.Include
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	return &result
}

func mergeBool(base, override *bool) *bool {
	if override != nil {
		return override
	}
	return base
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
