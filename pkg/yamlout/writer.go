// Package yamlout serializes outline trees as YAML documents with a fixed
// field order.
package yamlout

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/semoutline/pkg/outline"
)

// documentStart opens every document.
const documentStart = "---\n"

// Marshal returns the YAML document for file.
func Marshal(file *outline.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, file); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes file to w.
//
// Character spans are written as [start, end] and the None span as [0, -1];
// location spans as {start: [line, column], end: [line, column]}.
func Write(w io.Writer, file *outline.File) error {
	if _, err := io.WriteString(w, documentStart); err != nil {
		return fmt.Errorf("write document start: %w", err)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(fileNode(file)); err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}
	return nil
}

func fileNode(file *outline.File) *yaml.Node {
	errs := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, parsingError := range file.ParsingErrors {
		errs.Content = append(errs.Content, mapping(
			"location", lineInfo(parsingError.Location),
			"message", str(parsingError.Message),
		))
	}
	if len(errs.Content) == 0 {
		errs.Style = yaml.FlowStyle
	}

	return mapping(
		"type", str(outline.TypeFile),
		"name", str(file.Name),
		"locationSpan", locationSpan(file.LocationSpan),
		"footerSpan", characterSpan(file.FooterSpan),
		"parsingErrorsDetected", boolean(file.ParsingErrorsDetected()),
		"parsingError", errs,
		"children", children(file.Children),
	)
}

func node(n outline.Node) *yaml.Node {
	switch n := n.(type) {
	case *outline.Container:
		return mapping(
			"type", str(n.Type),
			"name", str(n.Name),
			"locationSpan", locationSpan(n.LocationSpan),
			"headerSpan", characterSpan(n.HeaderSpan),
			"footerSpan", characterSpan(n.FooterSpan),
			"children", children(n.Children),
		)
	case *outline.TerminalNode:
		return mapping(
			"type", str(n.Type),
			"name", str(n.Name),
			"locationSpan", locationSpan(n.LocationSpan),
			"span", characterSpan(n.Span),
		)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func children(nodes []outline.Node) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(nodes) == 0 {
		seq.Style = yaml.FlowStyle
	}
	for _, child := range nodes {
		seq.Content = append(seq.Content, node(child))
	}
	return seq
}

func characterSpan(span outline.CharacterSpan) *yaml.Node {
	seq := flowSeq()
	seq.Content = []*yaml.Node{integer(span.Start), integer(span.End)}
	return seq
}

func lineInfo(info outline.LineInfo) *yaml.Node {
	seq := flowSeq()
	seq.Content = []*yaml.Node{integer(info.Line), integer(info.Column)}
	return seq
}

func locationSpan(span outline.LocationSpan) *yaml.Node {
	m := mapping("start", lineInfo(span.Start), "end", lineInfo(span.End))
	m.Style = yaml.FlowStyle
	return m
}

// mapping builds a mapping node from alternating keys and values.
func mapping(pairs ...any) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		value, _ := pairs[i+1].(*yaml.Node)
		m.Content = append(m.Content, str(key), value)
	}
	return m
}

func flowSeq() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
}

func str(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func integer(value int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(value)}
}

func boolean(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)}
}
