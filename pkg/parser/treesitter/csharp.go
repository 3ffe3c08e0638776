package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/semoutline/pkg/builder"
	"github.com/yaklabco/semoutline/pkg/outline"
)

// CSharpVocabulary returns the classification of the C# grammar's
// declaration kinds. Delegates, operators, destructors and extern aliases are
// terminals tagged with their raw kind name.
func CSharpVocabulary() builder.Vocabulary {
	container := func(typ string) builder.Classification {
		return builder.Classification{Category: builder.ContainerNode, Type: typ}
	}
	terminal := func(typ string) builder.Classification {
		return builder.Classification{Category: builder.TerminalNode, Type: typ}
	}

	return builder.NewVocabulary(map[string]builder.Classification{
		"namespace_declaration":             container(outline.TypeNamespace),
		"file_scoped_namespace_declaration": container(outline.TypeNamespace),
		"class_declaration":                 container(outline.TypeClass),
		"struct_declaration":                container(outline.TypeStruct),
		"interface_declaration":             container(outline.TypeInterface),
		"enum_declaration":                  container(outline.TypeEnum),
		"record_declaration":                container(outline.TypeRecord),
		"record_struct_declaration":         container(outline.TypeRecord),

		"using_directive":                 terminal(outline.TypeUsing),
		"method_declaration":              terminal(outline.TypeMethod),
		"constructor_declaration":         terminal(outline.TypeConstructor),
		"property_declaration":            terminal(outline.TypeProperty),
		"indexer_declaration":             terminal(outline.TypeIndexer),
		"event_declaration":               terminal(outline.TypeEvent),
		"event_field_declaration":         terminal(outline.TypeEvent),
		"field_declaration":               terminal(outline.TypeField),
		"enum_member_declaration":         terminal(outline.TypeEnumMember),
		"attribute_list":                  terminal(outline.TypeAttribute),
		"global_attribute_list":           terminal(outline.TypeAttribute),
		"global_statement":                terminal(outline.TypeGlobalStatement),
		kindError:                         terminal(outline.TypeIncompleteMember),
		"delegate_declaration":            terminal(""),
		"operator_declaration":            terminal(""),
		"conversion_operator_declaration": terminal(""),
		"destructor_declaration":          terminal(""),
		"extern_alias_directive":          terminal(""),
	})
}

// identifier returns the declared name of a C# construct, or "" when the
// construct has none.
func (m *materializer) identifier(sn *sitter.Node, kind string) string {
	switch kind {
	case "indexer_declaration":
		return "this"

	case kindUsingDirective:
		// using [static] [Alias =] Target;
		for i := int(sn.NamedChildCount()) - 1; i >= 0; i-- {
			child := sn.NamedChild(i)
			if child == nil || isTrivia(child.Type()) || child.Type() == kindNameEquals {
				continue
			}
			return child.Content(m.src)
		}
		return ""

	case "field_declaration", "event_field_declaration":
		return m.nameOf(findDescendant(sn, kindVariableDecl))

	case "attribute_list", "global_attribute_list":
		return m.nameOf(findDescendant(sn, kindAttribute))
	}

	if kind == kindError {
		return ""
	}
	return m.nameOf(sn)
}

// nameOf returns the "name" field of sn, or its first identifier child.
func (m *materializer) nameOf(sn *sitter.Node) string {
	if sn == nil {
		return ""
	}
	if name := sn.ChildByFieldName("name"); name != nil && !name.IsNull() {
		return name.Content(m.src)
	}
	for i := range int(sn.NamedChildCount()) {
		child := sn.NamedChild(i)
		if child != nil && child.Type() == kindIdentifier {
			return child.Content(m.src)
		}
	}
	return ""
}

// findDescendant returns the first node of the given kind below sn in
// pre-order, or nil.
func findDescendant(sn *sitter.Node, kind string) *sitter.Node {
	stack := []*sitter.Node{sn}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top != sn && top.Type() == kind {
			return top
		}
		for i := int(top.NamedChildCount()) - 1; i >= 0; i-- {
			if child := top.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return nil
}
