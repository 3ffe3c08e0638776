package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/semoutline/pkg/outline"
	"github.com/yaklabco/semoutline/pkg/runner"
)

// treeIndent is the indentation per depth level in tree output.
const treeIndent = "  "

// FormatOutline renders an outline as an indented tree, one node per line:
//
//	class Socket  1:0-6:0  header [0, 14] footer [56, 56]
//	  method Connect  3:0-5:4  span [15, 55]
func (s *Styles) FormatOutline(file *outline.File) string {
	var builder strings.Builder

	builder.WriteString(s.FilePath.Render(file.Name))
	builder.WriteString("  " + s.Location.Render(formatLocation(file.LocationSpan)))
	if !file.FooterSpan.IsNone() {
		builder.WriteString("  " + s.Span.Render("footer "+file.FooterSpan.String()))
	}
	builder.WriteString("\n")

	_ = outline.Walk(file, func(node outline.Node, depth int) error {
		info := node.Info()
		builder.WriteString(strings.Repeat(treeIndent, depth+1))
		builder.WriteString(s.NodeType.Render(info.Type))
		if info.Name != "" {
			builder.WriteString(" " + s.NodeName.Render(info.Name))
		}
		builder.WriteString("  " + s.Location.Render(formatLocation(info.LocationSpan)))

		switch n := node.(type) {
		case *outline.Container:
			builder.WriteString("  " + s.Span.Render("header "+n.HeaderSpan.String()))
			if !n.FooterSpan.IsNone() {
				builder.WriteString(" " + s.Span.Render("footer "+n.FooterSpan.String()))
			}
		case *outline.TerminalNode:
			builder.WriteString("  " + s.Span.Render("span "+n.Span.String()))
		}
		builder.WriteString("\n")
		return nil
	})

	for _, parsingError := range file.ParsingErrors {
		builder.WriteString(s.FormatParsingError(file.Name, parsingError))
	}

	return builder.String()
}

// FormatParsingError formats a parsing error as "path:line:col  error  message".
func (s *Styles) FormatParsingError(path string, parsingError outline.ParsingError) string {
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		parsingError.Location.Line,
		parsingError.Location.Column,
	)
	return fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(parsingError.Message),
	)
}

// FormatOutcome formats one batch outcome as a single status line.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome) string {
	return fmt.Sprintf("  %s  %s\n", s.FilePath.Render(outcome.Path), s.outcomeStatus(outcome))
}

// FormatOutcomes formats batch outcomes as a two-column table with the
// path column padded to the longest path. Paths wider than half of width
// are shortened from the left.
func (s *Styles) FormatOutcomes(outcomes []runner.FileOutcome, width int) string {
	if len(outcomes) == 0 {
		return ""
	}

	maxPath := width / 2
	if maxPath < minPathColumn {
		maxPath = minPathColumn
	}

	column := 0
	paths := make([]string, len(outcomes))
	for i, outcome := range outcomes {
		paths[i] = shortenPath(outcome.Path, maxPath)
		column = max(column, len([]rune(paths[i])))
	}

	var builder strings.Builder
	builder.WriteString("  " + s.TableHeader.Render(padRight("File", column)) + "  " +
		s.TableHeader.Render("Status") + "\n")
	builder.WriteString("  " + s.TableSeparator.Render(strings.Repeat("-", column+2+len("Status"))) + "\n")
	for i, outcome := range outcomes {
		builder.WriteString("  " + s.FilePath.Render(padRight(paths[i], column)) + "  " +
			s.outcomeStatus(outcome) + "\n")
	}
	return builder.String()
}

func (s *Styles) outcomeStatus(outcome runner.FileOutcome) string {
	switch {
	case outcome.Error != nil:
		return s.Failure.Render("failed") + "  " + s.Message.Render(outcome.Error.Error())
	case outcome.Skipped:
		return s.Dim.Render("skipped (" + outcome.SkipReason + ")")
	case outcome.ParsingErrors > 0:
		return s.Warning.Render(fmt.Sprintf("%d parsing errors", outcome.ParsingErrors))
	default:
		return s.Success.Render("ok")
	}
}

const (
	minPathColumn = 20
	ellipsis      = "..."
)

func shortenPath(path string, limit int) string {
	runes := []rune(path)
	if len(runes) <= limit {
		return path
	}
	return ellipsis + string(runes[len(runes)-limit+len(ellipsis):])
}

func padRight(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return text + strings.Repeat(" ", width-n)
}

func formatLocation(span outline.LocationSpan) string {
	if !span.IsDefined() {
		return "-"
	}
	return fmt.Sprintf("%d:%d-%d:%d", span.Start.Line, span.Start.Column, span.End.Line, span.End.Column)
}
