// Package runner provides multi-file outline orchestration.
package runner

// DefaultSuffix is appended to a source path to name its outline document.
const DefaultSuffix = ".outline.yml"

// Options controls multi-file outline behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered C# sources. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// RespectGitignore skips paths matched by .gitignore files found while walking.
	RespectGitignore bool

	// IncludeHidden walks dot directories and dot files.
	IncludeHidden bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// SkipVendored skips third-party code such as vendor/ and packages/.
	SkipVendored bool

	// SkipGenerated skips tool-generated sources.
	SkipGenerated bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Encoding is the source encoding name passed to the decoder.
	Encoding string

	// Suffix names each outline document as <source><Suffix>.
	// Defaults to DefaultSuffix.
	Suffix string

	// DryRun outlines files without writing documents.
	DryRun bool
}

// DefaultExtensions returns the default set of C# file extensions.
func DefaultExtensions() []string {
	return []string{".cs"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveSuffix() string {
	if o.Suffix == "" {
		return DefaultSuffix
	}
	return o.Suffix
}
