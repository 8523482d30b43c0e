package frontend

import "go/ast"

// NodeKind is the closed enumeration converter strategies register against.
// It collapses the open set of ast.Node implementations into the kinds the
// dispatch tables key on.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindFile
	KindFuncDecl
	KindGenDecl
	KindTypeSpec
	KindValueSpec
	KindImportSpec
	KindField
	KindStructType
	KindInterfaceType
	KindFuncType
	KindIdent
	KindSelectorExpr
	KindStarExpr
	KindArrayType
	KindMapType
	KindChanType
)

var nodeKindNames = map[NodeKind]string{
	KindUnknown:       "unknown",
	KindFile:          "file",
	KindFuncDecl:      "func decl",
	KindGenDecl:       "gen decl",
	KindTypeSpec:      "type spec",
	KindValueSpec:     "value spec",
	KindImportSpec:    "import spec",
	KindField:         "field",
	KindStructType:    "struct type",
	KindInterfaceType: "interface type",
	KindFuncType:      "func type",
	KindIdent:         "ident",
	KindSelectorExpr:  "selector expr",
	KindStarExpr:      "star expr",
	KindArrayType:     "array type",
	KindMapType:       "map type",
	KindChanType:      "chan type",
}

// String returns the display name for the node kind
func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf maps a syntax node to its dispatch kind. Nodes outside the
// enumeration map to KindUnknown, which no converter can claim.
func KindOf(n ast.Node) NodeKind {
	switch n.(type) {
	case *ast.File:
		return KindFile
	case *ast.FuncDecl:
		return KindFuncDecl
	case *ast.GenDecl:
		return KindGenDecl
	case *ast.TypeSpec:
		return KindTypeSpec
	case *ast.ValueSpec:
		return KindValueSpec
	case *ast.ImportSpec:
		return KindImportSpec
	case *ast.Field:
		return KindField
	case *ast.StructType:
		return KindStructType
	case *ast.InterfaceType:
		return KindInterfaceType
	case *ast.FuncType:
		return KindFuncType
	case *ast.Ident:
		return KindIdent
	case *ast.SelectorExpr:
		return KindSelectorExpr
	case *ast.StarExpr:
		return KindStarExpr
	case *ast.ArrayType:
		return KindArrayType
	case *ast.MapType:
		return KindMapType
	case *ast.ChanType:
		return KindChanType
	default:
		return KindUnknown
	}
}
