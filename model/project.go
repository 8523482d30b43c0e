package model

import "sort"

// Project is the root of the reflection graph. It owns every reflection
// created during a conversion run and indexes them by numeric ID.
type Project struct {
	Root *Reflection

	reflections map[int]*Reflection
	nextID      int
}

// NewProject creates an empty project graph with the given display name.
func NewProject(name string) *Project {
	p := &Project{
		reflections: make(map[int]*Reflection),
		nextID:      1,
	}
	p.Root = p.NewReflection(name, KindProject, nil)
	return p
}

// NewReflection creates, indexes, and parents a reflection. IDs are assigned
// sequentially so graph output stays deterministic across runs.
func (p *Project) NewReflection(name string, kind Kind, parent *Reflection) *Reflection {
	r := &Reflection{
		ID:   p.nextID,
		Name: name,
		Kind: kind,
	}
	p.nextID++
	p.reflections[r.ID] = r
	if parent != nil {
		parent.AddChild(r)
	}
	return r
}

// Reflection returns the reflection with the given ID, or nil.
func (p *Project) Reflection(id int) *Reflection {
	return p.reflections[id]
}

// Reflections returns every reflection in the graph ordered by ID.
func (p *Project) Reflections() []*Reflection {
	ids := make([]int, 0, len(p.reflections))
	for id := range p.reflections {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]*Reflection, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.reflections[id])
	}
	return out
}

// Count returns the number of reflections in the graph, including the root.
func (p *Project) Count() int {
	return len(p.reflections)
}
