package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/semoutline/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func files(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats batch statistics as a single line.
// Example: "12 files outlined, 2 with parsing errors, 1 failed, 3 skipped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No C# files found") + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s outlined", stats.FilesProcessed, files(stats.FilesProcessed))),
	}
	if stats.FilesWithErrors > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d with parsing errors", stats.FilesWithErrors)))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats batch statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files outlined:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Dim.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesWithErrors > 0 {
		builder.WriteString("  With parse errors: " +
			s.Warning.Render(strconv.Itoa(stats.FilesWithErrors)) + "\n")
	}
	if stats.FilesFailed > 0 {
		builder.WriteString("  Failed:            " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Outline nodes:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.Nodes)) + "\n")
	builder.WriteString("  Parsing errors:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.ParsingErrors)) + "\n")
	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Outline failed for some files"))
	case stats.FilesWithErrors > 0:
		builder.WriteString(s.Warning.Render("Outline completed with parsing errors"))
	default:
		builder.WriteString(s.Success.Render("Outline completed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
