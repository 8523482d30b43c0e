package display

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// RenderProject prints the reflection graph as a tree.
func RenderProject(project *model.Project) error {
	root := pterm.TreeNode{
		Text:     pterm.LightCyan(project.Root.Name),
		Children: treeChildren(project.Root),
	}
	return pterm.DefaultTree.WithRoot(root).Render()
}

func treeChildren(r *model.Reflection) []pterm.TreeNode {
	nodes := make([]pterm.TreeNode, 0, len(r.Children))
	for _, child := range r.Children {
		nodes = append(nodes, pterm.TreeNode{
			Text:     reflectionLabel(child),
			Children: treeChildren(child),
		})
	}
	return nodes
}

func reflectionLabel(r *model.Reflection) string {
	label := fmt.Sprintf("%s %s", pterm.Gray(r.Kind.String()), r.Name)
	if r.Type != nil {
		label += pterm.Gray(": " + r.Type.String())
	}
	return label
}

// RenderDiagnostics prints each diagnostic with severity styling and a
// closing count line.
func RenderDiagnostics(diags []frontend.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	for _, d := range diags {
		switch d.Category {
		case frontend.CategoryOptions, frontend.CategoryGlobal:
			pterm.Warning.Println(d.String())
		default:
			pterm.Error.Println(d.String())
		}
	}
	pterm.Println()
	pterm.Info.Printf("%d diagnostic(s) reported\n", len(diags))
}

// RenderSummary prints the run footer.
func RenderSummary(project *model.Project, diags []frontend.Diagnostic) {
	pterm.Println()
	if len(diags) == 0 {
		pterm.Success.Printf("Converted %d reflections\n", project.Count())
		return
	}
	pterm.Warning.Printf("Converted %d reflections with %d diagnostic(s)\n", project.Count(), len(diags))
}
