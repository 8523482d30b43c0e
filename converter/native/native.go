// Package native provides the built-in converter strategy set: node
// converters for Go files and declarations, node-based and value-based type
// converters, and the listeners that attach doc comments and group children.
//
// Install wires the whole set into a converter. Every strategy here goes
// through the same registry and event bus a third-party strategy would;
// nothing in this package is special-cased by the engine.
package native

import (
	"go/ast"
	"path"

	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/model"
	"github.com/specular-eng/specular/version"
)

// Install registers the native strategy set and listeners on conv.
func Install(conv *converter.Converter) error {
	strategies := []converter.Strategy{
		&FileConverter{},
		&GenDeclConverter{},
		&TypeSpecConverter{},
		&ValueSpecConverter{},
		&FuncDeclConverter{},
		&FieldConverter{},
		&FuncTypeConverter{},
		&ReferenceNodeConverter{},
		&BasicTypeConverter{},
		&NamedTypeConverter{},
		&PointerTypeConverter{},
		&ArrayTypeConverter{},
		&MapTypeConverter{},
		&SignatureTypeConverter{},
		&FallbackTypeConverter{},
	}
	for _, s := range strategies {
		if err := conv.Registry().Register(s); err != nil {
			return err
		}
	}

	installCommentListener(conv.Bus())
	installGroupListener(conv.Bus())
	return nil
}

func metadata(name, description string) converter.Metadata {
	return converter.Metadata{
		Name:        name,
		Version:     version.Version,
		Description: description,
	}
}

// sourceOf records the declaring position of a node.
func sourceOf(ctx *converter.Context, node ast.Node) *model.Source {
	pos := ctx.Program.Fset().Position(node.Pos())
	if !pos.IsValid() {
		return nil
	}
	return &model.Source{File: pos.Filename, Line: pos.Line}
}

// isExternal matches a file path against the configured external pattern.
func isExternal(ctx *converter.Context, file string) bool {
	pattern := ctx.Config.ExternalPattern
	if pattern == "" {
		return false
	}
	if ok, _ := path.Match(pattern, file); ok {
		return true
	}
	ok, _ := path.Match(pattern, path.Base(file))
	return ok
}
