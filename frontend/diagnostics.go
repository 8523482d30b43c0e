package frontend

import "fmt"

// Category partitions diagnostics. The converter consults categories in
// declaration order and short-circuits at the first non-empty one.
type Category int

const (
	CategoryOptions Category = iota
	CategorySyntactic
	CategoryGlobal
	CategorySemantic
)

// String returns the display name for the category
func (c Category) String() string {
	switch c {
	case CategoryOptions:
		return "options"
	case CategorySyntactic:
		return "syntactic"
	case CategoryGlobal:
		return "global"
	case CategorySemantic:
		return "semantic"
	}
	return "unknown"
}

// Diagnostic is one compiler-reported problem. Diagnostics are surfaced as
// data in the run result, never as Go errors.
type Diagnostic struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// String implements fmt.Stringer for log and CLI output.
func (d Diagnostic) String() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Category, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Category, d.Message)
}
