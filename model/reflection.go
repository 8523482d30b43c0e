// Package model defines the documentation reflection graph: reflections,
// their kinds, the project root that owns them, and the type-model nodes
// that describe Go types structurally.
//
// Reflections are created exactly once during the build phase and owned
// exclusively by the Project. Type-model nodes are immutable after
// construction and reference reflections only by numeric ID, never by
// pointer, so they cannot extend a reflection's lifetime.
package model

import "fmt"

// Flags carries visibility metadata read by converter strategies.
type Flags struct {
	Exported bool `json:"exported"`
	External bool `json:"external,omitempty"`
}

// Reflection is one node in the documentation graph.
type Reflection struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Kind    Kind    `json:"kind"`
	Comment string  `json:"comment,omitempty"`
	Flags   Flags   `json:"flags"`
	Type    Type    `json:"type,omitempty"`
	Source  *Source `json:"source,omitempty"`

	// Parent is the owning scope, nil only for the children of the project root.
	Parent   *Reflection   `json:"-"`
	Children []*Reflection `json:"children,omitempty"`

	// Groups is populated during resolve by the group listener.
	Groups []Group `json:"groups,omitempty"`
}

// Source records where a reflection was declared.
type Source struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// Group collects sibling reflections of one kind, by ID.
type Group struct {
	Title    string `json:"title"`
	Kind     Kind   `json:"kind"`
	Children []int  `json:"children"`
}

// AddChild appends child to r and sets its parent pointer.
func (r *Reflection) AddChild(child *Reflection) {
	child.Parent = r
	r.Children = append(r.Children, child)
}

// ChildByName returns the first direct child with the given name, or nil.
func (r *Reflection) ChildByName(name string) *Reflection {
	for _, c := range r.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FullName returns the dotted path from the outermost scope to this reflection.
func (r *Reflection) FullName() string {
	if r.Parent == nil || r.Parent.Kind == KindProject {
		return r.Name
	}
	return r.Parent.FullName() + "." + r.Name
}

// String implements fmt.Stringer for log output.
func (r *Reflection) String() string {
	return fmt.Sprintf("%s %s (#%d)", r.Kind, r.Name, r.ID)
}
