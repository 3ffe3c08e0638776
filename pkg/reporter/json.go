package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/semoutline/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path          string             `json:"path"`
	Output        string             `json:"output,omitempty"`
	Nodes         int                `json:"nodes"`
	ParsingErrors []JSONParsingError `json:"parsingErrors"`
	Skipped       bool               `json:"skipped,omitempty"`
	SkipReason    string             `json:"skipReason,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// JSONParsingError represents a single parsing error.
type JSONParsingError struct {
	Offset  int    `json:"offset"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesWithErrors int `json:"filesWithErrors"`
	FilesFailed     int `json:"filesFailed"`
	ParsingErrors   int `json:"parsingErrors"`
	Nodes           int `json:"nodes"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.ParsingErrors, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: r.opts.Version,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesProcessed:  stats.FilesProcessed,
		FilesSkipped:    stats.FilesSkipped,
		FilesWithErrors: stats.FilesWithErrors,
		FilesFailed:     stats.FilesFailed,
		ParsingErrors:   stats.ParsingErrors,
		Nodes:           stats.Nodes,
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:          r.opts.displayPath(file.Path),
			Nodes:         file.Nodes,
			ParsingErrors: make([]JSONParsingError, 0, len(file.Diagnostics)),
			Skipped:       file.Skipped,
			SkipReason:    file.SkipReason,
		}
		if file.Output != "" {
			fileResult.Output = r.opts.displayPath(file.Output)
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		for _, diag := range file.Diagnostics {
			fileResult.ParsingErrors = append(fileResult.ParsingErrors, JSONParsingError{
				Offset:  diag.Offset,
				Line:    diag.Location.Line,
				Column:  diag.Location.Column,
				Message: diag.Message,
			})
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
