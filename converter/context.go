package converter

import (
	"go/ast"
	"go/types"

	"github.com/google/uuid"

	"github.com/specular-eng/specular/config"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// Context is the mutable state of one conversion run: the project graph
// under construction, the symbol index, the current lexical scope, and the
// cycle-guard path of nodes on the active call chain.
//
// A Context belongs to exactly one run and must never be shared between
// converter instances or concurrent runs.
type Context struct {
	// RunID correlates log lines for one run.
	RunID string

	// Project is the reflection graph under construction.
	Project *model.Project

	// Program is the frontend session scoped to this run's input files.
	Program frontend.Program

	// Config is the converter option surface. The core passes it through,
	// individual strategies read it.
	Config *config.Config

	converter *Converter
	scope     *model.Reflection

	// symbols maps checked objects to the reflection already created for
	// them, so an entity reached through two syntax paths converts once.
	symbols map[types.Object]*model.Reflection

	// visiting is the cycle-guard path. Entries are pushed for the duration
	// of one ConvertNode frame and popped on return, so the slice always
	// mirrors the active call chain and nothing else.
	visiting []ast.Node
}

func newContext(conv *Converter, prog frontend.Program, cfg *config.Config) *Context {
	project := model.NewProject(cfg.ProjectName)
	ctx := &Context{
		RunID:     uuid.NewString(),
		Project:   project,
		Program:   prog,
		Config:    cfg,
		converter: conv,
		symbols:   make(map[types.Object]*model.Reflection),
	}
	ctx.scope = project.Root
	return ctx
}

// Scope returns the reflection new children default to.
func (c *Context) Scope() *model.Reflection {
	return c.scope
}

// EnterScope makes r the current scope and returns a restore function.
// Callers must invoke the restore function when leaving the scope:
//
//	defer ctx.EnterScope(r)()
func (c *Context) EnterScope(r *model.Reflection) func() {
	previous := c.scope
	c.scope = r
	return func() { c.scope = previous }
}

// CreateReflection creates a reflection parented at the current scope and
// indexes it under obj when obj is non-nil.
func (c *Context) CreateReflection(name string, kind model.Kind, obj types.Object) *model.Reflection {
	r := c.Project.NewReflection(name, kind, c.scope)
	if obj != nil {
		c.symbols[obj] = r
	}
	return r
}

// ReflectionForSymbol returns the reflection previously created for obj.
func (c *Context) ReflectionForSymbol(obj types.Object) (*model.Reflection, bool) {
	if obj == nil {
		return nil, false
	}
	r, ok := c.symbols[obj]
	return r, ok
}

// Emit fires a lifecycle event on the owning converter's bus.
func (c *Context) Emit(event Event, r *model.Reflection, node ast.Node) {
	c.converter.bus.Emit(event, Payload{Context: c, Reflection: r, Node: node})
}

// beginVisit pushes node onto the cycle-guard path. The second return is
// false when node is already on the path: the caller must short-circuit
// without converting. Otherwise the returned function pops the entry and
// must run when the frame returns, so sibling call chains never observe it.
func (c *Context) beginVisit(node ast.Node) (func(), bool) {
	for _, n := range c.visiting {
		if n == node {
			return nil, false
		}
	}
	c.visiting = append(c.visiting, node)
	return func() {
		c.visiting = c.visiting[:len(c.visiting)-1]
	}, true
}

// pathLen reports the current cycle-guard path depth.
func (c *Context) pathLen() int {
	return len(c.visiting)
}

// ConvertNode dispatches node to the registered converter for its kind.
// See Converter.convertNode for the dispatch contract.
func (c *Context) ConvertNode(node ast.Node) *model.Reflection {
	return c.converter.convertNode(c, node)
}

// ConvertType dispatches a type expression and/or checked type to the
// registered type converters. See Converter.convertType.
func (c *Context) ConvertType(node ast.Expr, typ types.Type) model.Type {
	return c.converter.convertType(c, node, typ)
}
