package converter

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specular-eng/specular/config"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// =============================================================================
// Mock Frontend / Program
// =============================================================================

type mockProgram struct {
	units []*frontend.SourceUnit
	fset  *token.FileSet
	diags map[frontend.Category][]frontend.Diagnostic
	typeOf func(expr ast.Expr) types.Type
}

func newMockProgram() *mockProgram {
	return &mockProgram{
		fset:  token.NewFileSet(),
		diags: make(map[frontend.Category][]frontend.Diagnostic),
	}
}

func (p *mockProgram) addUnit(t *testing.T, name, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseFile(p.fset, name, src, parser.ParseComments)
	require.NoError(t, err)
	p.units = append(p.units, &frontend.SourceUnit{
		Path:    name,
		Package: file.Name.Name,
		File:    file,
		Fset:    p.fset,
	})
	return file
}

func (p *mockProgram) addDiagnostic(category frontend.Category, message string) {
	p.diags[category] = append(p.diags[category], frontend.Diagnostic{
		Category: category,
		Message:  message,
	})
}

func (p *mockProgram) SourceUnits() []*frontend.SourceUnit { return p.units }
func (p *mockProgram) Fset() *token.FileSet                { return p.fset }
func (p *mockProgram) DefaultLibFileName() string          { return "builtin.go" }

func (p *mockProgram) TypeOf(expr ast.Expr) types.Type {
	if p.typeOf != nil {
		return p.typeOf(expr)
	}
	return nil
}

func (p *mockProgram) ObjectOf(ident *ast.Ident) types.Object { return nil }

func (p *mockProgram) OptionDiagnostics() []frontend.Diagnostic {
	return p.diags[frontend.CategoryOptions]
}
func (p *mockProgram) SyntacticDiagnostics() []frontend.Diagnostic {
	return p.diags[frontend.CategorySyntactic]
}
func (p *mockProgram) GlobalDiagnostics() []frontend.Diagnostic {
	return p.diags[frontend.CategoryGlobal]
}
func (p *mockProgram) SemanticDiagnostics() []frontend.Diagnostic {
	return p.diags[frontend.CategorySemantic]
}

type mockFrontend struct {
	program *mockProgram
	err     error
}

func (f *mockFrontend) CreateProgram(files []string, opts frontend.Options) (frontend.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.program, nil
}

// =============================================================================
// Mock Strategies
// =============================================================================

type mockNodeConverter struct {
	name    string
	kinds   []frontend.NodeKind
	convert func(ctx *Context, node ast.Node) *model.Reflection
	engine  string
}

func (m *mockNodeConverter) Metadata() Metadata {
	return Metadata{Name: m.name, Version: "1.0.0", EngineVersion: m.engine}
}

func (m *mockNodeConverter) SupportedKinds() []frontend.NodeKind { return m.kinds }

func (m *mockNodeConverter) ConvertNode(ctx *Context, node ast.Node) *model.Reflection {
	if m.convert == nil {
		return nil
	}
	return m.convert(ctx, node)
}

type mockNodeTypeConverter struct {
	name     string
	priority int
	supports func(ctx *Context, node ast.Expr, typ types.Type) bool
	convert  func(ctx *Context, node ast.Expr, typ types.Type) model.Type
}

func (m *mockNodeTypeConverter) Metadata() Metadata {
	return Metadata{Name: m.name, Version: "1.0.0"}
}

func (m *mockNodeTypeConverter) Priority() int { return m.priority }

func (m *mockNodeTypeConverter) SupportsNode(ctx *Context, node ast.Expr, typ types.Type) bool {
	if m.supports == nil {
		return false
	}
	return m.supports(ctx, node, typ)
}

func (m *mockNodeTypeConverter) ConvertNodeType(ctx *Context, node ast.Expr, typ types.Type) model.Type {
	return m.convert(ctx, node, typ)
}

type mockTypeConverter struct {
	name     string
	priority int
	supports func(ctx *Context, typ types.Type) bool
	convert  func(ctx *Context, typ types.Type) model.Type
}

func (m *mockTypeConverter) Metadata() Metadata {
	return Metadata{Name: m.name, Version: "1.0.0"}
}

func (m *mockTypeConverter) Priority() int { return m.priority }

func (m *mockTypeConverter) SupportsType(ctx *Context, typ types.Type) bool {
	if m.supports == nil {
		return false
	}
	return m.supports(ctx, typ)
}

func (m *mockTypeConverter) ConvertType(ctx *Context, typ types.Type) model.Type {
	return m.convert(ctx, typ)
}

// =============================================================================
// Helpers
// =============================================================================

func newTestConverter(prog *mockProgram) *Converter {
	cfg := config.Default()
	cfg.ProjectName = "test"
	return New(&mockFrontend{program: prog}, NewRegistry("1.0.0"), cfg)
}

func newTestContext(t *testing.T, conv *Converter, prog *mockProgram) *Context {
	t.Helper()
	return newContext(conv, prog, conv.cfg)
}
