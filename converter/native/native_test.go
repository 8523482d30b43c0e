package native

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specular-eng/specular/config"
	"github.com/specular-eng/specular/converter"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// =============================================================================
// In-memory type-checked program
// =============================================================================

// checkedProgram parses and type-checks sources in memory, so the native
// strategies run against real go/types objects without touching the build
// system.
type checkedProgram struct {
	units []*frontend.SourceUnit
	fset  *token.FileSet
	info  *types.Info
}

func newCheckedProgram(t *testing.T, sources map[string]string) *checkedProgram {
	t.Helper()

	p := &checkedProgram{
		fset: token.NewFileSet(),
		info: &types.Info{
			Types: make(map[ast.Expr]types.TypeAndValue),
			Defs:  make(map[*ast.Ident]types.Object),
			Uses:  make(map[*ast.Ident]types.Object),
		},
	}

	var files []*ast.File
	for name, src := range sources {
		file, err := parser.ParseFile(p.fset, name, src, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, file)
		p.units = append(p.units, &frontend.SourceUnit{
			Path:    name,
			Package: file.Name.Name,
			File:    file,
			Fset:    p.fset,
		})
	}

	// Checking is best effort: some fixtures are intentionally incomplete
	// (bodyless declarations) and the info maps stay usable regardless.
	conf := types.Config{
		Importer: importer.Default(),
		Error:    func(error) {},
	}
	conf.Check("test", p.fset, files, p.info)
	return p
}

func (p *checkedProgram) SourceUnits() []*frontend.SourceUnit { return p.units }
func (p *checkedProgram) Fset() *token.FileSet                { return p.fset }
func (p *checkedProgram) DefaultLibFileName() string          { return "builtin.go" }

func (p *checkedProgram) TypeOf(expr ast.Expr) types.Type             { return p.info.TypeOf(expr) }
func (p *checkedProgram) ObjectOf(ident *ast.Ident) types.Object      { return p.info.ObjectOf(ident) }
func (p *checkedProgram) OptionDiagnostics() []frontend.Diagnostic    { return nil }
func (p *checkedProgram) SyntacticDiagnostics() []frontend.Diagnostic { return nil }
func (p *checkedProgram) GlobalDiagnostics() []frontend.Diagnostic    { return nil }
func (p *checkedProgram) SemanticDiagnostics() []frontend.Diagnostic  { return nil }

type checkedFrontend struct{ program *checkedProgram }

func (f *checkedFrontend) CreateProgram(files []string, opts frontend.Options) (frontend.Program, error) {
	return f.program, nil
}

// convertSources runs the full native pipeline over the sources and returns
// the resulting project graph.
func convertSources(t *testing.T, cfg *config.Config, sources map[string]string) *model.Project {
	t.Helper()
	return convertSourcesWith(t, cfg, sources, nil)
}

// convertSourcesWith additionally lets the test hook the converter (listener
// registration) before the run starts.
func convertSourcesWith(t *testing.T, cfg *config.Config, sources map[string]string, setup func(*converter.Converter)) *model.Project {
	t.Helper()

	prog := newCheckedProgram(t, sources)
	conv := converter.New(&checkedFrontend{program: prog}, converter.NewRegistry("1.0.0"), cfg)
	require.NoError(t, Install(conv))
	if setup != nil {
		setup(conv)
	}

	var files []string
	for _, unit := range prog.units {
		files = append(files, unit.Path)
	}
	result, err := conv.Convert(files)
	require.NoError(t, err)
	return result.Project
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ProjectName = "test"
	return cfg
}

// moduleOf finds the module reflection for a converted file. Module names
// are absolute normalized paths, so matching is by suffix.
func moduleOf(t *testing.T, project *model.Project, file string) *model.Reflection {
	t.Helper()
	for _, child := range project.Root.Children {
		if child.Kind == model.KindModule && strings.HasSuffix(child.Name, "/"+file) {
			return child
		}
	}
	t.Fatalf("missing module for %s", file)
	return nil
}
