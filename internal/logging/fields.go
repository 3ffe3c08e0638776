// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Source fields.
	FieldEncoding    = "encoding"
	FieldNodes       = "nodes"
	FieldParseErrors = "parse_errors"
	FieldOffset      = "offset"
	FieldLine        = "line"
	FieldColumn      = "column"

	// Configuration fields.
	FieldConfig = "config"
	FieldJobs   = "jobs"
	FieldSuffix = "suffix"

	// Session fields.
	FieldFlagFile = "flag_file"
	FieldShell    = "shell"
	FieldRequests = "requests"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithErrors = "files_with_errors"
	FieldFilesFailed     = "files_failed"
	FieldFilesSkipped    = "files_skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
