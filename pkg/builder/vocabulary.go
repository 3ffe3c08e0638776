package builder

// Category is the role a syntax kind plays in the outline.
type Category int

// Categories. The zero value ignores the node and its whole subtree.
const (
	Ignored Category = iota
	ContainerNode
	TerminalNode
)

func (c Category) String() string {
	switch c {
	case ContainerNode:
		return "container"
	case TerminalNode:
		return "terminal"
	default:
		return "ignored"
	}
}

// Classification tells the builder how to emit a syntax kind.
type Classification struct {
	Category Category

	// Type is the outline type tag. Empty means the raw kind name.
	Type string
}

// Vocabulary maps syntax kinds to classifications. It is built once and only
// read afterwards, so one value can be shared by concurrent builders.
type Vocabulary struct {
	entries map[string]Classification
}

// NewVocabulary creates a vocabulary from kind -> classification entries.
func NewVocabulary(entries map[string]Classification) Vocabulary {
	copied := make(map[string]Classification, len(entries))
	for kind, class := range entries {
		copied[kind] = class
	}
	return Vocabulary{entries: copied}
}

// Classify returns the classification of kind and the resolved type tag.
// Unknown kinds are Ignored.
func (v Vocabulary) Classify(kind string) (Category, string) {
	class, ok := v.entries[kind]
	if !ok {
		return Ignored, ""
	}
	if class.Type == "" {
		return class.Category, kind
	}
	return class.Category, class.Type
}

// Kinds returns the number of kinds in the vocabulary.
func (v Vocabulary) Kinds() int {
	return len(v.entries)
}
