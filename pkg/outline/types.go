package outline

// Node type tags. Unmapped parser kinds are tagged with their raw kind name
// instead, so this set is not exhaustive.
const (
	TypeFile             = "file"
	TypeNamespace        = "namespace"
	TypeClass            = "class"
	TypeStruct           = "struct"
	TypeInterface        = "interface"
	TypeEnum             = "enum"
	TypeRecord           = "record"
	TypeEnumMember       = "enum member"
	TypeMethod           = "method"
	TypeConstructor      = "constructor"
	TypeProperty         = "property"
	TypeIndexer          = "indexer"
	TypeEvent            = "event"
	TypeField            = "field"
	TypeAttribute        = "attribute"
	TypeUsing            = "using"
	TypeGlobalStatement  = "global statement"
	TypeIncompleteMember = "incomplete member"
)
