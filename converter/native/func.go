package native

import (
	"go/ast"

	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// FuncDeclConverter converts function and method declarations. Each
// converted declaration owns one signature reflection carrying the
// parameter reflections.
type FuncDeclConverter struct{}

func (c *FuncDeclConverter) Metadata() converter.Metadata {
	return metadata("native.funcdecl", "Converts function and method declarations")
}

func (c *FuncDeclConverter) SupportedKinds() []frontend.NodeKind {
	return []frontend.NodeKind{frontend.KindFuncDecl}
}

func (c *FuncDeclConverter) ConvertNode(ctx *converter.Context, node ast.Node) *model.Reflection {
	decl, ok := node.(*ast.FuncDecl)
	if !ok {
		return nil
	}

	name := decl.Name.Name
	exported := ast.IsExported(name)
	isMethod := decl.Recv != nil

	if ctx.Config.ExcludeNotExported && !exported && !isMethod {
		return nil
	}
	if ctx.Config.ExcludePrivate && !exported && isMethod {
		return nil
	}
	if decl.Body == nil && !ctx.Config.IncludeDeclarations {
		// Bodyless declarations (assembly stubs, linkname targets) are
		// opt-in.
		return nil
	}

	obj := ctx.Program.ObjectOf(decl.Name)
	if existing, found := ctx.ReflectionForSymbol(obj); found {
		return existing
	}

	kind := model.KindFunction
	restoreScope := func() {}
	if isMethod {
		kind = model.KindMethod
		// Attach the method to its receiver's reflection when the receiver
		// type was already converted; otherwise it stays in the module.
		if owner := receiverReflection(ctx, decl.Recv); owner != nil {
			restoreScope = ctx.EnterScope(owner)
		}
	}

	r := ctx.CreateReflection(name, kind, obj)
	restoreScope()
	r.Flags = model.Flags{Exported: exported}
	r.Source = sourceOf(ctx, decl)
	ctx.Emit(converter.EventDeclarationCreated, r, decl)

	convertTypeParams(ctx, r, decl.Type.TypeParams)
	convertSignature(ctx, r, decl.Type)

	if decl.Body != nil {
		ctx.Emit(converter.EventFunctionImplementationFound, r, decl)
	}

	return r
}

// convertSignature creates the signature reflection for a function type
// and the parameter reflections beneath it.
func convertSignature(ctx *converter.Context, owner *model.Reflection, ftype *ast.FuncType) {
	defer ctx.EnterScope(owner)()

	sig := ctx.CreateReflection(owner.Name, model.KindSignature, nil)
	sig.Type = ctx.ConvertType(ftype, nil)
	ctx.Emit(converter.EventSignatureCreated, sig, ftype)

	if ftype.Params == nil {
		return
	}

	defer ctx.EnterScope(sig)()
	for _, field := range ftype.Params.List {
		if len(field.Names) == 0 {
			param := ctx.CreateReflection("_", model.KindParameter, nil)
			param.Type = ctx.ConvertType(field.Type, nil)
			ctx.Emit(converter.EventParameterCreated, param, field)
			continue
		}
		for _, pname := range field.Names {
			param := ctx.CreateReflection(pname.Name, model.KindParameter, ctx.Program.ObjectOf(pname))
			param.Type = ctx.ConvertType(field.Type, nil)
			ctx.Emit(converter.EventParameterCreated, param, field)
		}
	}
}

// receiverReflection resolves the reflection for a method's receiver type.
func receiverReflection(ctx *converter.Context, recv *ast.FieldList) *model.Reflection {
	if recv == nil || len(recv.List) == 0 {
		return nil
	}
	ident := receiverIdent(recv.List[0].Type)
	if ident == nil {
		return nil
	}
	if r, found := ctx.ReflectionForSymbol(ctx.Program.ObjectOf(ident)); found {
		return r
	}
	// Fall back to a name lookup in the current scope for sessions without
	// type information.
	return ctx.Scope().ChildByName(ident.Name)
}

// receiverIdent unwraps a receiver type expression to its base identifier.
func receiverIdent(expr ast.Expr) *ast.Ident {
	switch t := expr.(type) {
	case *ast.Ident:
		return t
	case *ast.StarExpr:
		return receiverIdent(t.X)
	case *ast.IndexExpr:
		return receiverIdent(t.X)
	case *ast.IndexListExpr:
		return receiverIdent(t.X)
	}
	return nil
}
