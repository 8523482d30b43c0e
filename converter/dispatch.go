package converter

import (
	"go/ast"
	"go/types"

	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/logger"
	"github.com/specular-eng/specular/model"
)

// convertNode dispatches a syntax node to the converter registered for its
// kind. Nil is a valid, silent outcome in two expected cases: the node is
// already on the cycle-guard path, or no converter claims its kind.
//
// The cycle-guard extension is strictly frame-local: however this function
// returns, the path the caller observes is exactly what it was before the
// call. A cycle detected down one branch therefore never suppresses
// conversion of the same node reached later through an unrelated branch.
func (c *Converter) convertNode(ctx *Context, node ast.Node) *model.Reflection {
	if node == nil {
		return nil
	}

	endVisit, ok := ctx.beginVisit(node)
	if !ok {
		// Node is on the active call path: recursing would never terminate.
		logger.Debugw("Cycle detected, skipping node",
			"run_id", ctx.RunID,
			"kind", frontend.KindOf(node).String(),
		)
		return nil
	}
	defer endVisit()

	nc, found := c.registry.NodeConverter(frontend.KindOf(node))
	if !found {
		return nil
	}

	return nc.ConvertNode(ctx, node)
}

// convertType selects a type converter for an optional type expression
// and/or checked type. The node-based list is scanned first, in priority
// order, and the first eligible converter wins outright. Only when the
// node-based pass produced nothing is the value-based list consulted.
// When only a node is given, its type is derived through the frontend
// before the value-based pass.
func (c *Converter) convertType(ctx *Context, node ast.Expr, typ types.Type) model.Type {
	if node != nil {
		if typ == nil {
			typ = ctx.Program.TypeOf(node)
		}
		for _, ntc := range c.registry.NodeTypeConverters() {
			if ntc.SupportsNode(ctx, node, typ) {
				return ntc.ConvertNodeType(ctx, node, typ)
			}
		}
	}

	if typ != nil {
		for _, tc := range c.registry.TypeConverters() {
			if tc.SupportsType(ctx, typ) {
				return tc.ConvertType(ctx, typ)
			}
		}
	}

	return nil
}
