package converter

import (
	"go/ast"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

func TestConvertNodeUnregisteredKindIsSilent(t *testing.T) {
	prog := newMockProgram()
	file := prog.addUnit(t, "demo.go", "package demo\n\nfunc f() {}\n")

	conv := newTestConverter(prog)
	ctx := newTestContext(t, conv, prog)
	before := ctx.Project.Count()

	r := ctx.ConvertNode(file)
	assert.Nil(t, r)
	assert.Equal(t, before, ctx.Project.Count(), "graph must be unchanged")
}

func TestConvertNodeNil(t *testing.T) {
	prog := newMockProgram()
	conv := newTestConverter(prog)
	ctx := newTestContext(t, conv, prog)

	assert.Nil(t, ctx.ConvertNode(nil))
}

func TestConvertNodeCycleShortCircuit(t *testing.T) {
	prog := newMockProgram()
	file := prog.addUnit(t, "demo.go", "package demo\n\nvar x int\n")
	conv := newTestConverter(prog)

	var depths []int
	recursive := &mockNodeConverter{
		name:  "recursive",
		kinds: []frontend.NodeKind{frontend.KindFile},
		convert: func(ctx *Context, node ast.Node) *model.Reflection {
			depths = append(depths, ctx.pathLen())
			// Re-entering the same node must short-circuit, not recurse.
			assert.Nil(t, ctx.ConvertNode(node))
			return ctx.CreateReflection("cyclic", model.KindModule, nil)
		},
	}
	require.NoError(t, conv.Registry().Register(recursive))

	ctx := newTestContext(t, conv, prog)
	before := ctx.pathLen()

	r := ctx.ConvertNode(file)
	require.NotNil(t, r)

	assert.Equal(t, []int{1}, depths, "converter must run exactly once")
	assert.Equal(t, before, ctx.pathLen(), "path length must be restored")
}

func TestConvertNodePathRestoredOnEveryReturn(t *testing.T) {
	prog := newMockProgram()
	file := prog.addUnit(t, "demo.go", "package demo\n")
	conv := newTestConverter(prog)

	// A converter that returns nothing still must pop its path entry.
	silent := &mockNodeConverter{
		name:  "silent",
		kinds: []frontend.NodeKind{frontend.KindFile},
	}
	require.NoError(t, conv.Registry().Register(silent))

	ctx := newTestContext(t, conv, prog)
	assert.Nil(t, ctx.ConvertNode(file))
	assert.Zero(t, ctx.pathLen())
}

func TestCycleGuardSiblingIsolation(t *testing.T) {
	prog := newMockProgram()
	file := prog.addUnit(t, "demo.go", "package demo\n\nvar a int\nvar b int\n")
	conv := newTestConverter(prog)

	require.Len(t, file.Decls, 2)
	declA := file.Decls[0]
	declB := file.Decls[1]

	converted := make(map[ast.Node]int)
	decls := &mockNodeConverter{
		name:  "decls",
		kinds: []frontend.NodeKind{frontend.KindGenDecl},
		convert: func(ctx *Context, node ast.Node) *model.Reflection {
			converted[node]++
			if node == declA {
				// Provoke and resolve a cycle on branch A.
				assert.Nil(t, ctx.ConvertNode(node))
			}
			return ctx.CreateReflection("decl", model.KindVariable, nil)
		},
	}
	files := &mockNodeConverter{
		name:  "files",
		kinds: []frontend.NodeKind{frontend.KindFile},
		convert: func(ctx *Context, node ast.Node) *model.Reflection {
			for _, decl := range node.(*ast.File).Decls {
				ctx.ConvertNode(decl)
			}
			return nil
		},
	}
	require.NoError(t, conv.Registry().Register(decls))
	require.NoError(t, conv.Registry().Register(files))

	ctx := newTestContext(t, conv, prog)
	ctx.ConvertNode(file)

	// A's detected cycle must not leak into B's dispatch.
	assert.Equal(t, 1, converted[declA])
	assert.Equal(t, 1, converted[declB], "sibling B must convert despite A's cycle")
}

func TestConvertTypeNodeBasedFirstMatchWins(t *testing.T) {
	prog := newMockProgram()
	conv := newTestConverter(prog)

	lowResult := &model.IntrinsicType{Name: "low"}
	highResult := &model.IntrinsicType{Name: "high"}

	low := &mockNodeTypeConverter{
		name:     "low",
		priority: 5,
		supports: func(ctx *Context, node ast.Expr, typ types.Type) bool { return true },
		convert: func(ctx *Context, node ast.Expr, typ types.Type) model.Type {
			return lowResult
		},
	}
	high := &mockNodeTypeConverter{
		name:     "high",
		priority: 10,
		supports: func(ctx *Context, node ast.Expr, typ types.Type) bool { return true },
		convert: func(ctx *Context, node ast.Expr, typ types.Type) model.Type {
			return highResult
		},
	}
	require.NoError(t, conv.Registry().Register(low))
	require.NoError(t, conv.Registry().Register(high))

	ctx := newTestContext(t, conv, prog)
	got := ctx.ConvertType(ast.NewIdent("x"), nil)
	assert.Same(t, highResult, got)
}

func TestConvertTypeEqualPriorityFirstRegisteredWins(t *testing.T) {
	prog := newMockProgram()
	conv := newTestConverter(prog)

	firstResult := &model.IntrinsicType{Name: "first"}
	secondResult := &model.IntrinsicType{Name: "second"}

	accept := func(ctx *Context, typ types.Type) bool { return true }
	first := &mockTypeConverter{
		name: "first", priority: 5, supports: accept,
		convert: func(ctx *Context, typ types.Type) model.Type { return firstResult },
	}
	second := &mockTypeConverter{
		name: "second", priority: 5, supports: accept,
		convert: func(ctx *Context, typ types.Type) model.Type { return secondResult },
	}
	require.NoError(t, conv.Registry().Register(first))
	require.NoError(t, conv.Registry().Register(second))

	ctx := newTestContext(t, conv, prog)
	got := ctx.ConvertType(nil, types.Typ[types.Int])
	assert.Same(t, firstResult, got)
}

func TestConvertTypeFallsBackToValueBased(t *testing.T) {
	prog := newMockProgram()
	conv := newTestConverter(prog)

	valueResult := &model.IntrinsicType{Name: "value"}

	declining := &mockNodeTypeConverter{
		name:     "declining",
		priority: 10,
		supports: func(ctx *Context, node ast.Expr, typ types.Type) bool { return false },
	}
	value := &mockTypeConverter{
		name: "value", priority: 1,
		supports: func(ctx *Context, typ types.Type) bool { return true },
		convert:  func(ctx *Context, typ types.Type) model.Type { return valueResult },
	}
	require.NoError(t, conv.Registry().Register(declining))
	require.NoError(t, conv.Registry().Register(value))

	ctx := newTestContext(t, conv, prog)

	// Node given, node-based pass declines, value given directly.
	got := ctx.ConvertType(ast.NewIdent("x"), types.Typ[types.String])
	assert.Same(t, valueResult, got)

	// No node at all: straight to the value-based pass.
	got = ctx.ConvertType(nil, types.Typ[types.Bool])
	assert.Same(t, valueResult, got)
}

func TestConvertTypeDerivesTypeFromNode(t *testing.T) {
	prog := newMockProgram()
	ident := ast.NewIdent("x")
	prog.typeOf = func(expr ast.Expr) types.Type {
		if expr == ident {
			return types.Typ[types.Float64]
		}
		return nil
	}
	conv := newTestConverter(prog)

	var seen types.Type
	value := &mockTypeConverter{
		name: "value", priority: 1,
		supports: func(ctx *Context, typ types.Type) bool { return true },
		convert: func(ctx *Context, typ types.Type) model.Type {
			seen = typ
			return &model.IntrinsicType{Name: typ.String()}
		},
	}
	require.NoError(t, conv.Registry().Register(value))

	ctx := newTestContext(t, conv, prog)
	got := ctx.ConvertType(ident, nil)
	require.NotNil(t, got)
	assert.Equal(t, types.Typ[types.Float64], seen)
}

func TestConvertTypeNoMatchIsSilent(t *testing.T) {
	prog := newMockProgram()
	conv := newTestConverter(prog)
	ctx := newTestContext(t, conv, prog)

	assert.Nil(t, ctx.ConvertType(nil, nil))
	assert.Nil(t, ctx.ConvertType(ast.NewIdent("x"), nil))
	assert.Nil(t, ctx.ConvertType(nil, types.Typ[types.Int]))
}
