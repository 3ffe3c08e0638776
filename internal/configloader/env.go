package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/semoutline/pkg/config"
)

// envVarPrefix is the prefix for all semoutline environment variables.
const envVarPrefix = "SEMOUTLINE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"ENCODING":          {field: "encoding", typ: envTypeString, description: "Default source encoding"},
	"SUFFIX":            {field: "suffix", typ: envTypeString, description: "Outline document suffix"},
	"LOG_LEVEL":         {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn or error"},
	"COLOR":             {field: "color", typ: envTypeString, description: "Color mode: auto, always or never"},
	"JOBS":              {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"MAX_FILE_SIZE":     {field: "max_file_size", typ: envTypeInt, description: "Largest source file read, in bytes"},
	"EXTENSIONS":        {field: "extensions", typ: envTypeSlice, description: "Comma-separated source extensions"},
	"INCLUDE":           {field: "include", typ: envTypeSlice, description: "Comma-separated include globs"},
	"EXCLUDE":           {field: "exclude", typ: envTypeSlice, description: "Comma-separated exclude globs"},
	"FOLLOW_SYMLINKS":   {field: "follow_symlinks", typ: envTypeBool, description: "Traverse directory symlinks"},
	"RESPECT_GITIGNORE": {field: "respect_gitignore", typ: envTypeBool, description: "Skip paths matched by .gitignore"},
	"INCLUDE_HIDDEN":    {field: "include_hidden", typ: envTypeBool, description: "Walk dot files and directories"},
	"SKIP_VENDORED":     {field: "skip_vendored", typ: envTypeBool, description: "Skip third-party directories"},
	"SKIP_GENERATED":    {field: "skip_generated", typ: envTypeBool, description: "Skip generated sources"},
	"VERIFY":            {field: "verify", typ: envTypeBool, description: "Check outlines against tree invariants"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SEMOUTLINE_ (e.g., SEMOUTLINE_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
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
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "encoding":
		cfg.Encoding = value
	case "suffix":
		cfg.Suffix = value
	case "log_level":
		cfg.LogLevel = value
	case "color":
		cfg.Color = config.ColorMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "follow_symlinks":
		cfg.FollowSymlinks = config.Bool(value)
	case "respect_gitignore":
		cfg.RespectGitignore = config.Bool(value)
	case "include_hidden":
		cfg.IncludeHidden = config.Bool(value)
	case "skip_vendored":
		cfg.SkipVendored = config.Bool(value)
	case "skip_generated":
		cfg.SkipGenerated = config.Bool(value)
	case "verify":
		cfg.Verify = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "jobs":
		cfg.Jobs = int(value)
	case "max_file_size":
		cfg.MaxFileSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "include":
		cfg.Include = value
	case "exclude":
		cfg.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
