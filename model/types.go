package model

import (
	"fmt"
	"strings"
)

// Type is a structural description of a Go type, produced by type converter
// strategies. Type-model nodes are immutable after construction. They may
// embed other type-model nodes (composition) and may reference a reflection
// they describe, but only by ID: resolving the reference requires the
// project, and a dangling ID simply resolves to nil.
type Type interface {
	fmt.Stringer
	isType()
}

// IntrinsicType describes a predeclared type such as int, string, or bool.
type IntrinsicType struct {
	Name string `json:"name"`
}

func (t *IntrinsicType) isType()        {}
func (t *IntrinsicType) String() string { return t.Name }

// ReferenceType points at a named type. When the named type was itself
// converted to a reflection, ReflectionID carries its identity; zero means
// the target lives outside the converted input set.
type ReferenceType struct {
	Name         string `json:"name"`
	ReflectionID int    `json:"reflection_id,omitempty"`
}

func (t *ReferenceType) isType()        {}
func (t *ReferenceType) String() string { return t.Name }

// Resolve looks up the referenced reflection in the project graph.
// Returns nil when the reference does not target an in-graph reflection.
func (t *ReferenceType) Resolve(p *Project) *Reflection {
	if t.ReflectionID == 0 {
		return nil
	}
	return p.Reflection(t.ReflectionID)
}

// ArrayType describes arrays and slices. Length is -1 for slices.
type ArrayType struct {
	Element Type `json:"element"`
	Length  int  `json:"length"`
}

func (t *ArrayType) isType() {}
func (t *ArrayType) String() string {
	if t.Length >= 0 {
		return fmt.Sprintf("[%d]%s", t.Length, t.Element)
	}
	return "[]" + t.Element.String()
}

// MapType describes a map type.
type MapType struct {
	Key   Type `json:"key"`
	Value Type `json:"value"`
}

func (t *MapType) isType()        {}
func (t *MapType) String() string { return fmt.Sprintf("map[%s]%s", t.Key, t.Value) }

// PointerType describes a pointer type.
type PointerType struct {
	Element Type `json:"element"`
}

func (t *PointerType) isType()        {}
func (t *PointerType) String() string { return "*" + t.Element.String() }

// SignatureType describes a function type by its parameter and result types.
type SignatureType struct {
	Parameters []Type `json:"parameters,omitempty"`
	Results    []Type `json:"results,omitempty"`
}

func (t *SignatureType) isType() {}
func (t *SignatureType) String() string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range t.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	switch len(t.Results) {
	case 0:
	case 1:
		b.WriteString(" " + t.Results[0].String())
	default:
		parts := make([]string, len(t.Results))
		for i, r := range t.Results {
			parts[i] = r.String()
		}
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}
	return b.String()
}

// UnknownType is the terminal fallback when no converter could produce a
// structured description. Repr preserves whatever textual form was available.
type UnknownType struct {
	Repr string `json:"repr,omitempty"`
}

func (t *UnknownType) isType() {}
func (t *UnknownType) String() string {
	if t.Repr == "" {
		return "unknown"
	}
	return t.Repr
}
