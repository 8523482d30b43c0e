package converter

import (
	"go/ast"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specular-eng/specular/errors"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

func TestRegisterNameConflict(t *testing.T) {
	reg := NewRegistry("1.0.0")

	first := &mockNodeConverter{name: "dup", kinds: []frontend.NodeKind{frontend.KindFile}}
	second := &mockNodeConverter{name: "dup", kinds: []frontend.NodeKind{frontend.KindFuncDecl}}

	require.NoError(t, reg.Register(first))
	err := reg.Register(second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStrategyConflict))
}

func TestRegisterLastKindClaimWins(t *testing.T) {
	reg := NewRegistry("1.0.0")

	first := &mockNodeConverter{name: "first", kinds: []frontend.NodeKind{frontend.KindFuncDecl}}
	second := &mockNodeConverter{name: "second", kinds: []frontend.NodeKind{frontend.KindFuncDecl}}

	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(second))

	nc, ok := reg.NodeConverter(frontend.KindFuncDecl)
	require.True(t, ok)
	assert.Same(t, second, nc)
}

func TestUnregisterUnknownIsNoOp(t *testing.T) {
	reg := NewRegistry("1.0.0")

	stray := &mockNodeConverter{name: "stray", kinds: []frontend.NodeKind{frontend.KindFile}}
	assert.NotPanics(t, func() { reg.Unregister(stray) })
	assert.Empty(t, reg.Strategies())
}

func TestUnregisterRemovesOnlyMatchingIdentity(t *testing.T) {
	reg := NewRegistry("1.0.0")

	first := &mockNodeConverter{name: "first", kinds: []frontend.NodeKind{frontend.KindFuncDecl}}
	second := &mockNodeConverter{name: "second", kinds: []frontend.NodeKind{frontend.KindFuncDecl}}

	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(second))

	// first's claim was already overridden by second; removing first must
	// not disturb second's entry.
	reg.Unregister(first)

	nc, ok := reg.NodeConverter(frontend.KindFuncDecl)
	require.True(t, ok)
	assert.Same(t, second, nc)

	reg.Unregister(second)
	_, ok = reg.NodeConverter(frontend.KindFuncDecl)
	assert.False(t, ok)
}

func TestUnregisterRemovesAllRoles(t *testing.T) {
	reg := NewRegistry("1.0.0")

	tc := &mockTypeConverter{name: "tc", priority: 10}
	require.NoError(t, reg.Register(tc))
	require.Len(t, reg.TypeConverters(), 1)

	reg.Unregister(tc)
	assert.Empty(t, reg.TypeConverters())
	assert.Empty(t, reg.Strategies())
}

func TestTypeConverterPriorityOrder(t *testing.T) {
	reg := NewRegistry("1.0.0")

	low := &mockTypeConverter{name: "low", priority: 5}
	high := &mockTypeConverter{name: "high", priority: 10}
	mid := &mockTypeConverter{name: "mid", priority: 7}

	require.NoError(t, reg.Register(low))
	require.NoError(t, reg.Register(high))
	require.NoError(t, reg.Register(mid))

	list := reg.TypeConverters()
	require.Len(t, list, 3)
	assert.Same(t, high, list[0])
	assert.Same(t, mid, list[1])
	assert.Same(t, low, list[2])
}

func TestTypeConverterPriorityTieKeepsRegistrationOrder(t *testing.T) {
	reg := NewRegistry("1.0.0")

	a := &mockNodeTypeConverter{name: "a", priority: 5}
	b := &mockNodeTypeConverter{name: "b", priority: 5}
	c := &mockNodeTypeConverter{name: "c", priority: 5}

	require.NoError(t, reg.Register(a))
	require.NoError(t, reg.Register(b))
	require.NoError(t, reg.Register(c))

	list := reg.NodeTypeConverters()
	require.Len(t, list, 3)
	assert.Same(t, a, list[0])
	assert.Same(t, b, list[1])
	assert.Same(t, c, list[2])
}

func TestRegisterEngineVersionConstraint(t *testing.T) {
	reg := NewRegistry("1.2.0")

	compatible := &mockNodeConverter{name: "ok", engine: ">=1.0.0"}
	require.NoError(t, reg.Register(compatible))

	incompatible := &mockNodeConverter{name: "nope", engine: ">=2.0.0"}
	err := reg.Register(incompatible)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")

	unconstrained := &mockNodeConverter{name: "any"}
	assert.NoError(t, reg.Register(unconstrained))
}

// multiRoleStrategy exercises a single strategy holding every role.
type multiRoleStrategy struct{}

func (s *multiRoleStrategy) Metadata() Metadata {
	return Metadata{Name: "multi", Version: "1.0.0"}
}

func (s *multiRoleStrategy) SupportedKinds() []frontend.NodeKind {
	return []frontend.NodeKind{frontend.KindIdent}
}

func (s *multiRoleStrategy) ConvertNode(ctx *Context, node ast.Node) *model.Reflection {
	return nil
}

func (s *multiRoleStrategy) Priority() int { return 1 }

func (s *multiRoleStrategy) SupportsNode(ctx *Context, node ast.Expr, typ types.Type) bool {
	return false
}

func (s *multiRoleStrategy) ConvertNodeType(ctx *Context, node ast.Expr, typ types.Type) model.Type {
	return nil
}

func (s *multiRoleStrategy) SupportsType(ctx *Context, typ types.Type) bool { return false }

func (s *multiRoleStrategy) ConvertType(ctx *Context, typ types.Type) model.Type { return nil }

func TestRegisterMultiRoleStrategy(t *testing.T) {
	reg := NewRegistry("1.0.0")

	s := &multiRoleStrategy{}
	require.NoError(t, reg.Register(s))

	_, ok := reg.NodeConverter(frontend.KindIdent)
	assert.True(t, ok)
	assert.Len(t, reg.NodeTypeConverters(), 1)
	assert.Len(t, reg.TypeConverters(), 1)

	reg.Unregister(s)
	_, ok = reg.NodeConverter(frontend.KindIdent)
	assert.False(t, ok)
	assert.Empty(t, reg.NodeTypeConverters())
	assert.Empty(t, reg.TypeConverters())
}

func TestStrategiesSorted(t *testing.T) {
	reg := NewRegistry("1.0.0")
	require.NoError(t, reg.Register(&mockNodeConverter{name: "zeta"}))
	require.NoError(t, reg.Register(&mockNodeConverter{name: "alpha"}))

	assert.Equal(t, []string{"alpha", "zeta"}, reg.Strategies())
}
