package frontend

import (
	"go/ast"
	"go/build"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/specular-eng/specular/errors"
	"github.com/specular-eng/specular/logger"
)

// GoFrontend creates programs backed by golang.org/x/tools/go/packages.
type GoFrontend struct{}

// NewGoFrontend returns the default frontend implementation.
func NewGoFrontend() *GoFrontend {
	return &GoFrontend{}
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// CreateProgram loads a type-checking session scoped to exactly the given
// files. Missing inputs become option diagnostics; parse and type errors
// become syntactic and semantic diagnostics. None of them abort loading.
func (f *GoFrontend) CreateProgram(files []string, opts Options) (Program, error) {
	files = NormalizePaths(files)

	prog := &goProgram{
		fset:  token.NewFileSet(),
		diags: make(map[Category][]Diagnostic),
	}

	patterns := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(filepath.FromSlash(file)); err != nil {
			prog.diags[CategoryOptions] = append(prog.diags[CategoryOptions], Diagnostic{
				Category: CategoryOptions,
				Message:  "input file not found: " + file,
				File:     file,
			})
			continue
		}
		patterns = append(patterns, "file="+filepath.FromSlash(file))
	}

	if len(patterns) == 0 {
		return prog, nil
	}

	cfg := &packages.Config{
		Mode:       loadMode,
		Dir:        opts.Dir,
		Env:        opts.Env,
		BuildFlags: opts.BuildFlags,
		Tests:      opts.IncludeTests,
		Fset:       prog.fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNoProgram, err.Error())
	}
	prog.pkgs = pkgs

	// Index loaded units by path, then emit them in requested-file order so
	// traversal stays deterministic regardless of package load order.
	byPath := make(map[string]*SourceUnit)
	for _, p := range pkgs {
		for _, perr := range p.Errors {
			prog.recordError(perr)
		}
		for i, syntax := range p.Syntax {
			if syntax == nil || i >= len(p.CompiledGoFiles) {
				continue
			}
			path := NormalizePath(p.CompiledGoFiles[i])
			if _, dup := byPath[path]; dup {
				continue
			}
			byPath[path] = &SourceUnit{
				Path:    path,
				Package: p.Name,
				File:    syntax,
				Fset:    prog.fset,
			}
		}
	}
	for _, file := range files {
		if unit, ok := byPath[file]; ok {
			prog.units = append(prog.units, unit)
		}
	}

	logger.Debugw("Frontend program created",
		"requested_files", len(files),
		"source_units", len(prog.units),
		"packages", len(pkgs),
	)

	return prog, nil
}

// goProgram is one loaded session. Immutable after CreateProgram returns.
type goProgram struct {
	units []*SourceUnit
	pkgs  []*packages.Package
	fset  *token.FileSet
	diags map[Category][]Diagnostic
}

func (p *goProgram) SourceUnits() []*SourceUnit { return p.units }
func (p *goProgram) Fset() *token.FileSet       { return p.fset }

func (p *goProgram) TypeOf(expr ast.Expr) types.Type {
	for _, pkg := range p.pkgs {
		if pkg.TypesInfo == nil {
			continue
		}
		if t := pkg.TypesInfo.TypeOf(expr); t != nil {
			return t
		}
	}
	return nil
}

func (p *goProgram) ObjectOf(ident *ast.Ident) types.Object {
	for _, pkg := range p.pkgs {
		if pkg.TypesInfo == nil {
			continue
		}
		if obj := pkg.TypesInfo.ObjectOf(ident); obj != nil {
			return obj
		}
	}
	return nil
}

func (p *goProgram) OptionDiagnostics() []Diagnostic    { return p.diags[CategoryOptions] }
func (p *goProgram) SyntacticDiagnostics() []Diagnostic { return p.diags[CategorySyntactic] }
func (p *goProgram) GlobalDiagnostics() []Diagnostic    { return p.diags[CategoryGlobal] }
func (p *goProgram) SemanticDiagnostics() []Diagnostic  { return p.diags[CategorySemantic] }

// DefaultLibFileName returns the predeclared-identifier source for the
// active toolchain, the closest Go analogue of a default library file.
func (p *goProgram) DefaultLibFileName() string {
	return toSlash(filepath.Join(build.Default.GOROOT, "src", "builtin", "builtin.go"))
}

// recordError files a packages.Error under the matching diagnostic category.
func (p *goProgram) recordError(perr packages.Error) {
	var category Category
	switch perr.Kind {
	case packages.ParseError:
		category = CategorySyntactic
	case packages.TypeError:
		category = CategorySemantic
	default:
		// ListError and unknown kinds are global to the load.
		category = CategoryGlobal
	}

	file, line := splitPos(perr.Pos)
	p.diags[category] = append(p.diags[category], Diagnostic{
		Category: category,
		Message:  perr.Msg,
		File:     file,
		Line:     line,
	})
}

// splitPos breaks a "file:line:col" position string into file and line.
func splitPos(pos string) (string, int) {
	if pos == "" || pos == "-" {
		return "", 0
	}
	parts := strings.Split(pos, ":")
	if len(parts) < 2 {
		return pos, 0
	}
	line, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		// Position may be just "file:line".
		if line, err = strconv.Atoi(parts[len(parts)-1]); err != nil {
			return pos, 0
		}
		return strings.Join(parts[:len(parts)-1], ":"), line
	}
	return strings.Join(parts[:len(parts)-2], ":"), line
}
