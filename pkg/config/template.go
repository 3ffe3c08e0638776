package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of a
	// commented starter file.
	Full bool
}

const templateHeader = `# semoutline configuration
# Settings apply to the batch command. Command-line flags and SEMOUTLINE_*
# environment variables take precedence over this file.`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		content, err := NewConfig().ToYAMLWithHeader(templateHeader)
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return content, nil
	}

	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	buf.WriteString(`

# Source encoding when none is given: utf-8, utf-16le, latin1, ...
encoding: utf-8

# Outline documents are written next to each source as <file><suffix>
suffix: .outline.yml

# File extensions treated as C# sources
# extensions:
#   - .cs

# Glob patterns; "*" stays within a directory and "**" crosses directories
# include:
#   - "src/**"
# exclude:
#   - "**/bin/**"
#   - "**/obj/**"

# Number of parallel workers (0 = auto)
# jobs: 0

# Discovery switches
# respect_gitignore: true
# skip_vendored: true
# skip_generated: true
# include_hidden: false
# follow_symlinks: false

# Check every outline against the tree invariants
# verify: false
`)

	return buf.Bytes(), nil
}
