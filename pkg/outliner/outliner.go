// Package outliner runs the full outline pipeline for a single source file:
// decode, parse, build, reconcile and serialize.
package outliner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yaklabco/semoutline/internal/logging"
	"github.com/yaklabco/semoutline/pkg/builder"
	"github.com/yaklabco/semoutline/pkg/fsutil"
	"github.com/yaklabco/semoutline/pkg/lineindex"
	"github.com/yaklabco/semoutline/pkg/outline"
	"github.com/yaklabco/semoutline/pkg/parser/treesitter"
	"github.com/yaklabco/semoutline/pkg/reconcile"
	"github.com/yaklabco/semoutline/pkg/textenc"
	"github.com/yaklabco/semoutline/pkg/yamlout"
)

// DefaultMaxFileSize is the largest source file OutlineFile reads.
const DefaultMaxFileSize = 64 << 20

// Pipeline error types for categorization.
var (
	// ErrParseFailure indicates the parser could not produce a tree.
	ErrParseFailure = errors.New("parse failure")

	// ErrBuildFailure indicates the syntax tree could not be outlined.
	ErrBuildFailure = errors.New("build failure")

	// ErrVerifyFailure indicates the outline broke a tree invariant.
	ErrVerifyFailure = errors.New("verify failure")

	// ErrWriteFailure indicates the outline document could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// Parser produces a syntax tree for source text.
type Parser interface {
	Parse(ctx context.Context, text string) (builder.SyntaxTree, error)
}

// Option configures an Outliner.
type Option func(*Outliner)

// WithVerify makes every outline pass outline.Validate before it is returned.
func WithVerify(verify bool) Option {
	return func(o *Outliner) {
		o.verify = verify
	}
}

// WithMaxFileSize limits the size of files read by OutlineFile.
// Zero or negative disables the limit.
func WithMaxFileSize(size int64) Option {
	return func(o *Outliner) {
		o.maxFileSize = size
	}
}

// WithBuilderOptions passes options through to the outline builder.
func WithBuilderOptions(opts ...builder.Option) Option {
	return func(o *Outliner) {
		o.builderOpts = append(o.builderOpts, opts...)
	}
}

// Outliner turns source files into outline trees. It is safe for concurrent
// use when its Parser is.
type Outliner struct {
	parser      Parser
	builder     *builder.Builder
	builderOpts []builder.Option
	verify      bool
	maxFileSize int64
}

// New creates an Outliner from a parser and the vocabulary for its syntax kinds.
func New(parser Parser, vocab builder.Vocabulary, opts ...Option) *Outliner {
	o := &Outliner{
		parser:      parser,
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.builder = builder.New(vocab, o.builderOpts...)
	return o
}

// NewCSharp creates an Outliner backed by the tree-sitter C# grammar.
// Node types and names are interned within each file.
func NewCSharp(opts ...Option) *Outliner {
	opts = append([]Option{WithBuilderOptions(builder.WithInterning())}, opts...)
	return New(treesitter.New(), treesitter.CSharpVocabulary(), opts...)
}

// Outline builds the outline of text. name is recorded as the file name.
//
// Syntax errors in text are not a failure: they are reported through
// File.ParsingErrors and the rest of the file is still outlined.
func (o *Outliner) Outline(ctx context.Context, name, text string) (*outline.File, error) {
	idx, err := lineindex.New(text)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", name, err)
	}

	tree, err := o.parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, name, err)
	}

	file, err := o.builder.Build(name, tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBuildFailure, name, err)
	}

	if err := reconcile.Fill(file, idx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBuildFailure, name, err)
	}

	if o.verify {
		if err := outline.Validate(file); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrVerifyFailure, name, err)
		}
	}

	return file, nil
}

// OutlineFile reads inputPath, decodes it with the named encoding and
// outlines the result. The file is named after inputPath.
func (o *Outliner) OutlineFile(ctx context.Context, inputPath, encoding string) (*outline.File, error) {
	data, _, err := fsutil.ReadFile(ctx, inputPath, o.maxFileSize)
	if err != nil {
		return nil, err
	}
	return o.OutlineBytes(ctx, inputPath, data, encoding)
}

// OutlineBytes decodes data with the named encoding and outlines it.
func (o *Outliner) OutlineBytes(ctx context.Context, name string, data []byte, encoding string) (*outline.File, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	text, err := textenc.Decode(data, encoding)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	file, err := o.Outline(ctx, name, text)
	if err != nil {
		return nil, err
	}

	logger.Debug("outlined file",
		logging.FieldPath, name,
		logging.FieldEncoding, encoding,
		logging.FieldNodes, len(outline.Descendants(file)),
		logging.FieldParseErrors, len(file.ParsingErrors),
		logging.FieldDuration, time.Since(start),
	)

	return file, nil
}

// MaxFileSize returns the read limit applied to source files.
func (o *Outliner) MaxFileSize() int64 {
	return o.maxFileSize
}

// WriteFile serializes file as YAML to outputPath. The write is atomic:
// readers see either the previous document or the complete new one.
func (o *Outliner) WriteFile(ctx context.Context, file *outline.File, outputPath string) error {
	content, err := yamlout.Marshal(file)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, outputPath, err)
	}

	if err := fsutil.WriteAtomic(ctx, outputPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	return nil
}

// OutlineTo outlines inputPath and writes the result to outputPath.
func (o *Outliner) OutlineTo(ctx context.Context, inputPath, encoding, outputPath string) (*outline.File, error) {
	file, err := o.OutlineFile(ctx, inputPath, encoding)
	if err != nil {
		return nil, err
	}
	if err := o.WriteFile(ctx, file, outputPath); err != nil {
		return nil, err
	}
	return file, nil
}
