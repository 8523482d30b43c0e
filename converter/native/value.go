package native

import (
	"go/ast"
	"go/types"

	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// ValueSpecConverter converts package-level var and const declarations.
type ValueSpecConverter struct{}

func (c *ValueSpecConverter) Metadata() converter.Metadata {
	return metadata("native.valuespec", "Converts var and const declarations")
}

func (c *ValueSpecConverter) SupportedKinds() []frontend.NodeKind {
	return []frontend.NodeKind{frontend.KindValueSpec}
}

func (c *ValueSpecConverter) ConvertNode(ctx *converter.Context, node ast.Node) *model.Reflection {
	spec, ok := node.(*ast.ValueSpec)
	if !ok {
		return nil
	}

	var first *model.Reflection
	for _, name := range spec.Names {
		if name.Name == "_" {
			continue
		}
		exported := ast.IsExported(name.Name)
		if ctx.Config.ExcludeNotExported && !exported {
			continue
		}

		obj := ctx.Program.ObjectOf(name)
		if existing, found := ctx.ReflectionForSymbol(obj); found {
			if first == nil {
				first = existing
			}
			continue
		}

		kind := model.KindVariable
		if _, isConst := obj.(*types.Const); isConst {
			kind = model.KindConstant
		}

		r := ctx.CreateReflection(name.Name, kind, obj)
		r.Flags = model.Flags{Exported: exported}
		r.Source = sourceOf(ctx, spec)
		if spec.Type != nil {
			r.Type = ctx.ConvertType(spec.Type, nil)
		} else {
			r.Type = ctx.ConvertType(name, nil)
		}
		ctx.Emit(converter.EventDeclarationCreated, r, spec)

		if first == nil {
			first = r
		}
	}

	return first
}
