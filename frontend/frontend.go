// Package frontend wraps the Go compiler frontend (go/ast, go/types,
// golang.org/x/tools/go/packages) behind the narrow contract the converter
// consumes: enumerable source units, a node-to-type query, four diagnostic
// categories, and a default-library lookup.
//
// The converter treats this package as a black box. Parse and type errors
// reported here are data, never fatal: the converter builds a best-effort
// reflection graph regardless.
package frontend

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Options is the compiler configuration passed through to program creation.
// The converter core never interprets these fields.
type Options struct {
	// Dir is the working directory for package loading.
	Dir string

	// BuildFlags are extra flags for the underlying build system.
	BuildFlags []string

	// Env overrides the process environment for loading, nil means inherit.
	Env []string

	// IncludeTests loads _test.go files as source units.
	IncludeTests bool
}

// SourceUnit is one top-level compilation unit reported by the frontend.
type SourceUnit struct {
	// Path is the absolute, slash-normalized file path.
	Path string

	// Package is the declared package name.
	Package string

	// File is the parsed syntax tree for the unit.
	File *ast.File

	// Fset positions File's nodes.
	Fset *token.FileSet
}

// Program is one type-checking session scoped to a fixed input file set.
type Program interface {
	// SourceUnits returns the units in the order the frontend discovered them.
	SourceUnits() []*SourceUnit

	// TypeOf maps an expression node to its checked type, nil when unknown.
	TypeOf(expr ast.Expr) types.Type

	// ObjectOf maps an identifier to the object it declares or denotes,
	// nil when unknown.
	ObjectOf(ident *ast.Ident) types.Object

	// Diagnostic queries, one per category. See the Category constants for
	// the precedence the converter applies.
	OptionDiagnostics() []Diagnostic
	SyntacticDiagnostics() []Diagnostic
	GlobalDiagnostics() []Diagnostic
	SemanticDiagnostics() []Diagnostic

	// DefaultLibFileName returns the path of the default library for the
	// options the program was created with.
	DefaultLibFileName() string

	// Fset returns the file set positioning every source unit.
	Fset() *token.FileSet
}

// Frontend creates type-checking sessions.
type Frontend interface {
	CreateProgram(files []string, opts Options) (Program, error)
}
