package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/semoutline/internal/ui/pretty"
	"github.com/yaklabco/semoutline/pkg/runner"
)

// TextReporter lists failed files and parsing errors, then a summary line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	var total int
	for _, file := range result.Files {
		if file.Error == nil && len(file.Diagnostics) == 0 {
			continue
		}

		file.Path = r.opts.displayPath(file.Path)
		fmt.Fprint(r.bw, r.styles.FormatOutcome(file))
		for _, diag := range file.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatParsingError(file.Path, diag))
			total++
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
