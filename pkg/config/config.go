// Package config defines core configuration types for semoutline.
// These types are pure data structures with no dependency on how they are loaded.
package config

// Defaults applied by NewConfig.
const (
	DefaultEncoding    = "utf-8"
	DefaultSuffix      = ".outline.yml"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 64 << 20
)

// ColorMode controls coloured terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for semoutline.
//
// Booleans are pointers so that a layer can switch off a setting that a
// lower-precedence layer switched on; nil means "not set in this layer".
type Config struct {
	// Encoding is the default source encoding for batch runs.
	Encoding string `yaml:"encoding,omitempty"`

	// Suffix is appended to each source path to name its outline document.
	Suffix string `yaml:"suffix,omitempty"`

	// Extensions lists the file extensions treated as C# sources.
	Extensions []string `yaml:"extensions,omitempty"`

	// Include restricts batch discovery to matching glob patterns.
	Include []string `yaml:"include,omitempty"`

	// Exclude contains glob patterns for files and directories to skip.
	Exclude []string `yaml:"exclude,omitempty"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`

	// MaxFileSize is the largest source file read, in bytes.
	MaxFileSize int64 `yaml:"max_file_size,omitempty"`

	// FollowSymlinks traverses directory symlinks during discovery.
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty"`

	// RespectGitignore skips paths matched by .gitignore files.
	RespectGitignore *bool `yaml:"respect_gitignore,omitempty"`

	// IncludeHidden walks dot files and directories.
	IncludeHidden *bool `yaml:"include_hidden,omitempty"`

	// SkipVendored skips third-party directories.
	SkipVendored *bool `yaml:"skip_vendored,omitempty"`

	// SkipGenerated skips tool-generated sources.
	SkipGenerated *bool `yaml:"skip_generated,omitempty"`

	// Verify checks every outline against the tree invariants.
	Verify *bool `yaml:"verify,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Color controls coloured output: auto, always or never.
	Color ColorMode `yaml:"color,omitempty"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Encoding:         DefaultEncoding,
		Suffix:           DefaultSuffix,
		Extensions:       []string{".cs"},
		Jobs:             0, // 0 means use GOMAXPROCS
		MaxFileSize:      DefaultMaxFileSize,
		FollowSymlinks:   Bool(false),
		RespectGitignore: Bool(true),
		IncludeHidden:    Bool(false),
		SkipVendored:     Bool(true),
		SkipGenerated:    Bool(true),
		Verify:           Bool(false),
		LogLevel:         DefaultLogLevel,
		Color:            ColorAuto,
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// Enabled reports whether a boolean setting is set and true.
func Enabled(v *bool) bool {
	return v != nil && *v
}
