package native

import (
	"go/ast"
	"go/types"

	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/model"
)

// Dispatch priorities for the native type converters. Structural,
// syntax-aware converters outrank the semantic fallbacks; the terminal
// fallback sits below everything so any other eligible converter wins.
const (
	priorityFuncType  = 100
	priorityReference = 50

	priorityBasic     = 100
	priorityNamed     = 80
	priorityPointer   = 70
	priorityComposite = 60
	prioritySignature = 50
	priorityFallback  = -100
)

// FuncTypeConverter is a node-based converter for func type expressions.
type FuncTypeConverter struct{}

func (c *FuncTypeConverter) Metadata() converter.Metadata {
	return metadata("native.type.func", "Converts func type expressions")
}

func (c *FuncTypeConverter) Priority() int { return priorityFuncType }

func (c *FuncTypeConverter) SupportsNode(ctx *converter.Context, node ast.Expr, typ types.Type) bool {
	_, ok := node.(*ast.FuncType)
	return ok
}

func (c *FuncTypeConverter) ConvertNodeType(ctx *converter.Context, node ast.Expr, typ types.Type) model.Type {
	ftype := node.(*ast.FuncType)

	sig := &model.SignatureType{}
	if ftype.Params != nil {
		for _, field := range ftype.Params.List {
			t := ctx.ConvertType(field.Type, nil)
			if t == nil {
				t = &model.UnknownType{}
			}
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				sig.Parameters = append(sig.Parameters, t)
			}
		}
	}
	if ftype.Results != nil {
		for _, field := range ftype.Results.List {
			t := ctx.ConvertType(field.Type, nil)
			if t == nil {
				t = &model.UnknownType{}
			}
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				sig.Results = append(sig.Results, t)
			}
		}
	}
	return sig
}

// ReferenceNodeConverter is a node-based converter for identifiers and
// selectors that denote named types. It resolves in-graph targets through
// the symbol index, which is what terminates self-referential types: the
// reflection is indexed before its type converts, so the reference finds
// it instead of recursing.
type ReferenceNodeConverter struct{}

func (c *ReferenceNodeConverter) Metadata() converter.Metadata {
	return metadata("native.type.reference", "Converts named type references")
}

func (c *ReferenceNodeConverter) Priority() int { return priorityReference }

func (c *ReferenceNodeConverter) SupportsNode(ctx *converter.Context, node ast.Expr, typ types.Type) bool {
	ident := referenceIdent(node)
	if ident == nil {
		return false
	}
	obj := ctx.Program.ObjectOf(ident)
	if obj == nil {
		// No type information: still claim idents that name an in-scope
		// converted type, so parse-only sessions resolve local references.
		return ctx.Scope().ChildByName(ident.Name) != nil
	}
	_, isTypeName := obj.(*types.TypeName)
	return isTypeName && !isUniverse(obj)
}

func (c *ReferenceNodeConverter) ConvertNodeType(ctx *converter.Context, node ast.Expr, typ types.Type) model.Type {
	ident := referenceIdent(node)
	ref := &model.ReferenceType{Name: referenceName(node)}

	if obj := ctx.Program.ObjectOf(ident); obj != nil {
		if r, found := ctx.ReflectionForSymbol(obj); found {
			ref.ReflectionID = r.ID
		}
	} else if r := ctx.Scope().ChildByName(ident.Name); r != nil {
		ref.ReflectionID = r.ID
	}

	return ref
}

func referenceIdent(expr ast.Expr) *ast.Ident {
	switch t := expr.(type) {
	case *ast.Ident:
		return t
	case *ast.SelectorExpr:
		return t.Sel
	}
	return nil
}

func referenceName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return x.Name + "." + t.Sel.Name
		}
		return t.Sel.Name
	}
	return ""
}

// isUniverse reports whether obj lives in the universe scope (predeclared
// identifiers like error and any).
func isUniverse(obj types.Object) bool {
	return obj.Pkg() == nil
}

// BasicTypeConverter is the value-based converter for predeclared types.
type BasicTypeConverter struct{}

func (c *BasicTypeConverter) Metadata() converter.Metadata {
	return metadata("native.type.basic", "Converts predeclared basic types")
}

func (c *BasicTypeConverter) Priority() int { return priorityBasic }

func (c *BasicTypeConverter) SupportsType(ctx *converter.Context, typ types.Type) bool {
	_, ok := typ.(*types.Basic)
	return ok
}

func (c *BasicTypeConverter) ConvertType(ctx *converter.Context, typ types.Type) model.Type {
	basic := typ.(*types.Basic)
	return &model.IntrinsicType{Name: basic.Name()}
}

// NamedTypeConverter is the value-based converter for named types. It
// never descends into the underlying type, which keeps recursive types
// finite: the reference either targets an in-graph reflection or names an
// external type.
type NamedTypeConverter struct{}

func (c *NamedTypeConverter) Metadata() converter.Metadata {
	return metadata("native.type.named", "Converts named types to references")
}

func (c *NamedTypeConverter) Priority() int { return priorityNamed }

func (c *NamedTypeConverter) SupportsType(ctx *converter.Context, typ types.Type) bool {
	_, ok := typ.(*types.Named)
	return ok
}

func (c *NamedTypeConverter) ConvertType(ctx *converter.Context, typ types.Type) model.Type {
	named := typ.(*types.Named)
	obj := named.Obj()

	ref := &model.ReferenceType{Name: obj.Name()}
	if r, found := ctx.ReflectionForSymbol(obj); found {
		ref.ReflectionID = r.ID
	}
	return ref
}

// PointerTypeConverter is the value-based converter for pointer types.
type PointerTypeConverter struct{}

func (c *PointerTypeConverter) Metadata() converter.Metadata {
	return metadata("native.type.pointer", "Converts pointer types")
}

func (c *PointerTypeConverter) Priority() int { return priorityPointer }

func (c *PointerTypeConverter) SupportsType(ctx *converter.Context, typ types.Type) bool {
	_, ok := typ.(*types.Pointer)
	return ok
}

func (c *PointerTypeConverter) ConvertType(ctx *converter.Context, typ types.Type) model.Type {
	ptr := typ.(*types.Pointer)
	elem := ctx.ConvertType(nil, ptr.Elem())
	if elem == nil {
		elem = &model.UnknownType{Repr: ptr.Elem().String()}
	}
	return &model.PointerType{Element: elem}
}

// ArrayTypeConverter is the value-based converter for slices and arrays.
type ArrayTypeConverter struct{}

func (c *ArrayTypeConverter) Metadata() converter.Metadata {
	return metadata("native.type.array", "Converts slice and array types")
}

func (c *ArrayTypeConverter) Priority() int { return priorityComposite }

func (c *ArrayTypeConverter) SupportsType(ctx *converter.Context, typ types.Type) bool {
	switch typ.(type) {
	case *types.Slice, *types.Array:
		return true
	}
	return false
}

func (c *ArrayTypeConverter) ConvertType(ctx *converter.Context, typ types.Type) model.Type {
	var elemType types.Type
	length := -1
	switch t := typ.(type) {
	case *types.Slice:
		elemType = t.Elem()
	case *types.Array:
		elemType = t.Elem()
		length = int(t.Len())
	}

	elem := ctx.ConvertType(nil, elemType)
	if elem == nil {
		elem = &model.UnknownType{Repr: elemType.String()}
	}
	return &model.ArrayType{Element: elem, Length: length}
}

// MapTypeConverter is the value-based converter for map types.
type MapTypeConverter struct{}

func (c *MapTypeConverter) Metadata() converter.Metadata {
	return metadata("native.type.map", "Converts map types")
}

func (c *MapTypeConverter) Priority() int { return priorityComposite }

func (c *MapTypeConverter) SupportsType(ctx *converter.Context, typ types.Type) bool {
	_, ok := typ.(*types.Map)
	return ok
}

func (c *MapTypeConverter) ConvertType(ctx *converter.Context, typ types.Type) model.Type {
	m := typ.(*types.Map)

	key := ctx.ConvertType(nil, m.Key())
	if key == nil {
		key = &model.UnknownType{Repr: m.Key().String()}
	}
	value := ctx.ConvertType(nil, m.Elem())
	if value == nil {
		value = &model.UnknownType{Repr: m.Elem().String()}
	}
	return &model.MapType{Key: key, Value: value}
}

// SignatureTypeConverter is the value-based converter for function types.
type SignatureTypeConverter struct{}

func (c *SignatureTypeConverter) Metadata() converter.Metadata {
	return metadata("native.type.signature", "Converts function types")
}

func (c *SignatureTypeConverter) Priority() int { return prioritySignature }

func (c *SignatureTypeConverter) SupportsType(ctx *converter.Context, typ types.Type) bool {
	_, ok := typ.(*types.Signature)
	return ok
}

func (c *SignatureTypeConverter) ConvertType(ctx *converter.Context, typ types.Type) model.Type {
	sig := typ.(*types.Signature)

	out := &model.SignatureType{}
	for i := 0; i < sig.Params().Len(); i++ {
		t := ctx.ConvertType(nil, sig.Params().At(i).Type())
		if t == nil {
			t = &model.UnknownType{}
		}
		out.Parameters = append(out.Parameters, t)
	}
	for i := 0; i < sig.Results().Len(); i++ {
		t := ctx.ConvertType(nil, sig.Results().At(i).Type())
		if t == nil {
			t = &model.UnknownType{}
		}
		out.Results = append(out.Results, t)
	}
	return out
}

// FallbackTypeConverter accepts every type and preserves its printed form.
// Its priority puts it behind every other value-based converter.
type FallbackTypeConverter struct{}

func (c *FallbackTypeConverter) Metadata() converter.Metadata {
	return metadata("native.type.fallback", "Preserves unhandled types by their printed form")
}

func (c *FallbackTypeConverter) Priority() int { return priorityFallback }

func (c *FallbackTypeConverter) SupportsType(ctx *converter.Context, typ types.Type) bool {
	return true
}

func (c *FallbackTypeConverter) ConvertType(ctx *converter.Context, typ types.Type) model.Type {
	return &model.UnknownType{Repr: typ.String()}
}
