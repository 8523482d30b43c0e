package model

// Kind tags a reflection with the sort of program entity it documents.
type Kind int

const (
	KindProject Kind = iota
	KindModule
	KindFunction
	KindMethod
	KindStruct
	KindInterface
	KindAlias
	KindVariable
	KindConstant
	KindProperty
	KindSignature
	KindParameter
	KindTypeParameter
)

var kindNames = map[Kind]string{
	KindProject:       "project",
	KindModule:        "module",
	KindFunction:      "function",
	KindMethod:        "method",
	KindStruct:        "struct",
	KindInterface:     "interface",
	KindAlias:         "alias",
	KindVariable:      "variable",
	KindConstant:      "constant",
	KindProperty:      "property",
	KindSignature:     "signature",
	KindParameter:     "parameter",
	KindTypeParameter: "type parameter",
}

// String returns the lowercase display name for the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsContainer reports whether reflections of this kind may own children
func (k Kind) IsContainer() bool {
	switch k {
	case KindProject, KindModule, KindStruct, KindInterface:
		return true
	}
	return false
}
