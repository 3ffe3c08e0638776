// Package langdetect decides which files the batch outliner should process.
// It uses go-enry (the Go port of GitHub linguist) to identify C# sources and
// to recognise vendored and generated code.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// CSharp is the linguist name of the only language the outliner handles.
const CSharp = "C#"

// headerWindow is how much of a file is searched for generator markers.
const headerWindow = 2048

// generatedSuffixes are file name suffixes used by .NET source generators
// and designers.
//
//nolint:gochecknoglobals // Read-only lookup table
var generatedSuffixes = []string{".g.cs", ".g.i.cs", ".designer.cs", ".assemblyinfo.cs"}

// Result describes a candidate file.
type Result struct {
	// Language is the linguist language name, or "" if unknown.
	Language string

	// Vendored is true for third-party paths such as vendor/ or packages/.
	Vendored bool

	// Generated is true for tool-generated sources.
	Generated bool
}

// Outlinable reports whether the file is hand-written C#.
func (r Result) Outlinable() bool {
	return r.Language == CSharp && !r.Vendored && !r.Generated
}

// Detect classifies the file at path. content may be nil, in which case only
// the path is used.
func Detect(path string, content []byte) Result {
	slashed := filepath.ToSlash(path)
	return Result{
		Language:  language(slashed, content),
		Vendored:  enry.IsVendor(slashed),
		Generated: IsGenerated(slashed, content),
	}
}

// IsCSharp reports whether the file is C# by extension, falling back to the
// content classifier for extensions shared with other languages.
func IsCSharp(path string, content []byte) bool {
	return language(filepath.ToSlash(path), content) == CSharp
}

func language(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return lang
	}

	candidates := enry.GetLanguagesByExtension(path, content, nil)
	if len(candidates) == 0 {
		return ""
	}
	if !slices.Contains(candidates, CSharp) || len(content) == 0 {
		return candidates[0]
	}

	// .cs is shared with Smalltalk.
	if lang, _ := enry.GetLanguageByClassifier(content, candidates); lang != "" {
		return lang
	}
	return CSharp
}

// IsGenerated reports whether the file was produced by a tool: linguist's
// generated-file rules, .NET generator suffixes, or an <auto-generated>
// marker near the top of the file.
func IsGenerated(path string, content []byte) bool {
	lower := strings.ToLower(path)
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	if len(content) == 0 {
		return false
	}
	head := content[:min(len(content), headerWindow)]
	if bytes.Contains(head, []byte("<auto-generated")) {
		return true
	}
	return enry.IsGenerated(path, content)
}
