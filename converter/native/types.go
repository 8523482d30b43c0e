package native

import (
	"go/ast"

	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// TypeSpecConverter converts a named type declaration into a struct,
// interface, or alias reflection. The reflection is indexed under its
// checked object before its type is converted, so a self-referential type
// resolves to a reference rather than recursing.
type TypeSpecConverter struct{}

func (c *TypeSpecConverter) Metadata() converter.Metadata {
	return metadata("native.typespec", "Converts type declarations")
}

func (c *TypeSpecConverter) SupportedKinds() []frontend.NodeKind {
	return []frontend.NodeKind{frontend.KindTypeSpec}
}

func (c *TypeSpecConverter) ConvertNode(ctx *converter.Context, node ast.Node) *model.Reflection {
	spec, ok := node.(*ast.TypeSpec)
	if !ok {
		return nil
	}

	name := spec.Name.Name
	exported := ast.IsExported(name)
	if ctx.Config.ExcludeNotExported && !exported {
		return nil
	}

	obj := ctx.Program.ObjectOf(spec.Name)
	if existing, found := ctx.ReflectionForSymbol(obj); found {
		return existing
	}

	var kind model.Kind
	switch spec.Type.(type) {
	case *ast.StructType:
		kind = model.KindStruct
	case *ast.InterfaceType:
		kind = model.KindInterface
	default:
		kind = model.KindAlias
	}

	r := ctx.CreateReflection(name, kind, obj)
	r.Flags = model.Flags{Exported: exported}
	r.Source = sourceOf(ctx, spec)
	ctx.Emit(converter.EventDeclarationCreated, r, spec)

	convertTypeParams(ctx, r, spec.TypeParams)

	switch t := spec.Type.(type) {
	case *ast.StructType:
		defer ctx.EnterScope(r)()
		if t.Fields != nil {
			for _, field := range t.Fields.List {
				ctx.ConvertNode(field)
			}
		}
	case *ast.InterfaceType:
		defer ctx.EnterScope(r)()
		if t.Methods != nil {
			for _, method := range t.Methods.List {
				ctx.ConvertNode(method)
			}
		}
	default:
		r.Type = ctx.ConvertType(spec.Type, nil)
	}

	return r
}

// convertTypeParams creates type-parameter reflections under owner.
func convertTypeParams(ctx *converter.Context, owner *model.Reflection, params *ast.FieldList) {
	if params == nil {
		return
	}
	defer ctx.EnterScope(owner)()
	for _, field := range params.List {
		for _, name := range field.Names {
			tp := ctx.CreateReflection(name.Name, model.KindTypeParameter, nil)
			tp.Type = ctx.ConvertType(field.Type, nil)
			ctx.Emit(converter.EventTypeParameterCreated, tp, field)
		}
	}
}

// FieldConverter converts struct fields into property reflections and
// interface methods into method reflections.
type FieldConverter struct{}

func (c *FieldConverter) Metadata() converter.Metadata {
	return metadata("native.field", "Converts struct fields and interface methods")
}

func (c *FieldConverter) SupportedKinds() []frontend.NodeKind {
	return []frontend.NodeKind{frontend.KindField}
}

func (c *FieldConverter) ConvertNode(ctx *converter.Context, node ast.Node) *model.Reflection {
	field, ok := node.(*ast.Field)
	if !ok {
		return nil
	}

	_, isFunc := field.Type.(*ast.FuncType)
	isMethod := isFunc && ctx.Scope().Kind == model.KindInterface

	var first *model.Reflection
	for _, name := range field.Names {
		exported := ast.IsExported(name.Name)
		if ctx.Config.ExcludePrivate && !exported {
			continue
		}

		kind := model.KindProperty
		if isMethod {
			kind = model.KindMethod
		}

		r := ctx.CreateReflection(name.Name, kind, ctx.Program.ObjectOf(name))
		r.Flags = model.Flags{Exported: exported}
		r.Source = sourceOf(ctx, field)
		r.Type = ctx.ConvertType(field.Type, nil)
		ctx.Emit(converter.EventDeclarationCreated, r, field)

		if first == nil {
			first = r
		}
	}

	// Embedded field or embedded interface: no names, type carries identity.
	if len(field.Names) == 0 {
		name := embeddedName(field.Type)
		if name == "" {
			return nil
		}
		r := ctx.CreateReflection(name, model.KindProperty, nil)
		r.Flags = model.Flags{Exported: ast.IsExported(name)}
		r.Source = sourceOf(ctx, field)
		r.Type = ctx.ConvertType(field.Type, nil)
		ctx.Emit(converter.EventDeclarationCreated, r, field)
		return r
	}

	return first
}

// embeddedName extracts the identifier an embedded field is known by.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	}
	return ""
}
