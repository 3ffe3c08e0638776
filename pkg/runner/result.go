package runner

import "github.com/yaklabco/semoutline/pkg/outline"

// FileOutcome is the result of outlining one file.
type FileOutcome struct {
	// Path is the source file that was processed.
	Path string

	// Output is the outline document path. Empty when nothing was written.
	Output string

	// Nodes is the number of outline nodes below the file.
	Nodes int

	// ParsingErrors is the number of parsing errors recorded for the file.
	ParsingErrors int

	// Diagnostics lists the parsing errors recorded for the file, in source order.
	Diagnostics []outline.ParsingError

	// Skipped is true if the file was left out after reading it.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files outlined.
	FilesProcessed int

	// FilesSkipped is the number of vendored or generated files left out.
	FilesSkipped int

	// FilesWithErrors is the number of outlined files with parsing errors.
	FilesWithErrors int

	// FilesFailed is the number of files that could not be outlined.
	FilesFailed int

	// ParsingErrors is the total number of parsing errors.
	ParsingErrors int

	// Nodes is the total number of outline nodes.
	Nodes int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file could not be outlined.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// HasParsingErrors reports whether any outlined file had parsing errors.
func (r *Result) HasParsingErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesWithErrors > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesFailed++
	case outcome.Skipped:
		r.Stats.FilesSkipped++
	default:
		r.Stats.FilesProcessed++
		r.Stats.Nodes += outcome.Nodes
		r.Stats.ParsingErrors += outcome.ParsingErrors
		if outcome.ParsingErrors > 0 {
			r.Stats.FilesWithErrors++
		}
	}
}
