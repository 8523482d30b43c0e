package native

import (
	"go/ast"

	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// FileConverter turns one source unit's file node into a module reflection
// and drives conversion of the file's top-level declarations.
type FileConverter struct{}

func (c *FileConverter) Metadata() converter.Metadata {
	return metadata("native.file", "Converts source files into module reflections")
}

func (c *FileConverter) SupportedKinds() []frontend.NodeKind {
	return []frontend.NodeKind{frontend.KindFile}
}

func (c *FileConverter) ConvertNode(ctx *converter.Context, node ast.Node) *model.Reflection {
	file, ok := node.(*ast.File)
	if !ok {
		return nil
	}

	filename := frontend.NormalizePath(ctx.Program.Fset().Position(file.Pos()).Filename)
	external := isExternal(ctx, filename)
	if external && ctx.Config.ExcludeExternals {
		return nil
	}

	module := ctx.CreateReflection(filename, model.KindModule, nil)
	module.Flags = model.Flags{Exported: true, External: external}
	module.Source = sourceOf(ctx, file)

	ctx.Emit(converter.EventFileBegin, module, file)

	defer ctx.EnterScope(module)()
	for _, decl := range file.Decls {
		ctx.ConvertNode(decl)
	}

	return module
}

// GenDeclConverter fans a grouped declaration (var/const/type blocks) out
// to its individual specs.
type GenDeclConverter struct{}

func (c *GenDeclConverter) Metadata() converter.Metadata {
	return metadata("native.gendecl", "Fans grouped declarations out to their specs")
}

func (c *GenDeclConverter) SupportedKinds() []frontend.NodeKind {
	return []frontend.NodeKind{frontend.KindGenDecl}
}

func (c *GenDeclConverter) ConvertNode(ctx *converter.Context, node ast.Node) *model.Reflection {
	decl, ok := node.(*ast.GenDecl)
	if !ok {
		return nil
	}

	var first *model.Reflection
	for _, spec := range decl.Specs {
		r := ctx.ConvertNode(spec)
		if r == nil {
			continue
		}
		if first == nil {
			first = r
		}
		// A doc comment on a single-spec block belongs to the spec.
		if r.Comment == "" && decl.Doc != nil && len(decl.Specs) == 1 {
			r.Comment = commentText(decl.Doc)
		}
	}
	return first
}
