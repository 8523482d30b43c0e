package native

import (
	"go/ast"
	"sort"
	"strings"

	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/model"
)

// commentText flattens a comment group to trimmed plain text.
func commentText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	return strings.TrimSpace(group.Text())
}

// docOf extracts the doc comment group attached to a declaration node.
func docOf(node ast.Node) *ast.CommentGroup {
	switch n := node.(type) {
	case *ast.FuncDecl:
		return n.Doc
	case *ast.GenDecl:
		return n.Doc
	case *ast.TypeSpec:
		return n.Doc
	case *ast.ValueSpec:
		return n.Doc
	case *ast.Field:
		return n.Doc
	case *ast.File:
		return n.Doc
	}
	return nil
}

// installCommentListener attaches doc comments to reflections as they are
// created. Comments are taken from the creating node, so this runs on the
// creation events rather than during resolve.
func installCommentListener(bus *converter.Bus) {
	attach := func(p converter.Payload) {
		if p.Reflection == nil || p.Node == nil || p.Reflection.Comment != "" {
			return
		}
		p.Reflection.Comment = commentText(docOf(p.Node))
	}
	bus.Subscribe(converter.EventDeclarationCreated, attach)
	bus.Subscribe(converter.EventFileBegin, attach)
}

// installGroupListener groups each container's children by kind during the
// resolve pass. Group ordering follows the kind enumeration and children
// keep their creation order, so output is deterministic.
func installGroupListener(bus *converter.Bus) {
	bus.Subscribe(converter.EventResolve, func(p converter.Payload) {
		r := p.Reflection
		if r == nil || !r.Kind.IsContainer() || len(r.Children) == 0 {
			return
		}

		byKind := make(map[model.Kind][]int)
		for _, child := range r.Children {
			byKind[child.Kind] = append(byKind[child.Kind], child.ID)
		}

		kinds := make([]model.Kind, 0, len(byKind))
		for kind := range byKind {
			kinds = append(kinds, kind)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

		r.Groups = r.Groups[:0]
		for _, kind := range kinds {
			r.Groups = append(r.Groups, model.Group{
				Title:    kind.String(),
				Kind:     kind,
				Children: byKind[kind],
			})
		}
	})
}
