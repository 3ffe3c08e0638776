package outline

// ParsingError records a malformed construct found by the parser.
type ParsingError struct {
	// Offset is the character offset where the construct starts.
	Offset int

	// Location is the line/column of Offset.
	Location LineInfo

	// Message is a fixed diagnostic text.
	Message string
}

// File is the root of an outline tree.
type File struct {
	// Name is the path of the outlined file.
	Name string

	// LocationSpan spans the whole file.
	LocationSpan LocationSpan

	// FooterSpan covers trailing trivia after the last construct, or None.
	FooterSpan CharacterSpan

	// Children are the top-level nodes in source order.
	Children []Node

	// ParsingErrors lists malformed constructs, in source order.
	ParsingErrors []ParsingError
}

// NewFile creates an empty file outline.
func NewFile(name string) *File {
	return &File{
		Name:         name,
		LocationSpan: NoLocation,
		FooterSpan:   None,
	}
}

// ParsingErrorsDetected reports whether any parsing error was recorded.
func (f *File) ParsingErrorsDetected() bool {
	return len(f.ParsingErrors) > 0
}

// AppendChild adds a top-level node.
func (f *File) AppendChild(child Node) {
	f.Children = append(f.Children, child)
}

// AddParsingError records a parsing error at offset.
func (f *File) AddParsingError(offset int, message string) {
	f.ParsingErrors = append(f.ParsingErrors, ParsingError{
		Offset:   offset,
		Location: UndefinedLine,
		Message:  message,
	})
}

// TotalSpan returns the union of every child's total span and the footer.
func (f *File) TotalSpan() CharacterSpan {
	spans := make([]CharacterSpan, 0, len(f.Children)+1)
	for _, child := range f.Children {
		spans = append(spans, TotalSpan(child))
	}
	spans = append(spans, f.FooterSpan)
	return Union(spans...)
}
