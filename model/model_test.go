package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	p := NewProject("demo")

	require.NotNil(t, p.Root)
	assert.Equal(t, "demo", p.Root.Name)
	assert.Equal(t, KindProject, p.Root.Kind)
	assert.Equal(t, 1, p.Count())
	assert.Same(t, p.Root, p.Reflection(p.Root.ID))
}

func TestNewReflectionAssignsSequentialIDs(t *testing.T) {
	p := NewProject("demo")

	a := p.NewReflection("a", KindModule, p.Root)
	b := p.NewReflection("b", KindFunction, a)

	assert.Equal(t, a.ID+1, b.ID)
	assert.Same(t, a, b.Parent)
	assert.Same(t, p.Root, a.Parent)
	assert.Equal(t, []*Reflection{b}, a.Children)
}

func TestReflectionsOrderedByID(t *testing.T) {
	p := NewProject("demo")
	p.NewReflection("z", KindModule, p.Root)
	p.NewReflection("a", KindModule, p.Root)
	p.NewReflection("m", KindModule, p.Root)

	all := p.Reflections()
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].ID, all[i-1].ID)
	}
}

func TestFullName(t *testing.T) {
	p := NewProject("demo")
	mod := p.NewReflection("pkg", KindModule, p.Root)
	st := p.NewReflection("Widget", KindStruct, mod)
	field := p.NewReflection("Size", KindProperty, st)

	assert.Equal(t, "pkg.Widget.Size", field.FullName())
	assert.Equal(t, "pkg", mod.FullName())
}

func TestChildByName(t *testing.T) {
	p := NewProject("demo")
	mod := p.NewReflection("pkg", KindModule, p.Root)
	f := p.NewReflection("Run", KindFunction, mod)

	assert.Same(t, f, mod.ChildByName("Run"))
	assert.Nil(t, mod.ChildByName("Walk"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "function", KindFunction.String())
	assert.Equal(t, "type parameter", KindTypeParameter.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestKindIsContainer(t *testing.T) {
	assert.True(t, KindModule.IsContainer())
	assert.True(t, KindInterface.IsContainer())
	assert.False(t, KindParameter.IsContainer())
}

func TestTypeStrings(t *testing.T) {
	sig := &SignatureType{
		Parameters: []Type{&IntrinsicType{Name: "int"}, &PointerType{Element: &ReferenceType{Name: "Widget"}}},
		Results:    []Type{&IntrinsicType{Name: "string"}, &IntrinsicType{Name: "error"}},
	}
	assert.Equal(t, "func(int, *Widget) (string, error)", sig.String())

	arr := &ArrayType{Element: &IntrinsicType{Name: "byte"}, Length: -1}
	assert.Equal(t, "[]byte", arr.String())

	fixed := &ArrayType{Element: &IntrinsicType{Name: "byte"}, Length: 4}
	assert.Equal(t, "[4]byte", fixed.String())

	m := &MapType{Key: &IntrinsicType{Name: "string"}, Value: arr}
	assert.Equal(t, "map[string][]byte", m.String())

	assert.Equal(t, "unknown", (&UnknownType{}).String())
	assert.Equal(t, "chan int", (&UnknownType{Repr: "chan int"}).String())
}

func TestReferenceResolve(t *testing.T) {
	p := NewProject("demo")
	st := p.NewReflection("Widget", KindStruct, p.Root)

	ref := &ReferenceType{Name: "Widget", ReflectionID: st.ID}
	assert.Same(t, st, ref.Resolve(p))

	external := &ReferenceType{Name: "io.Reader"}
	assert.Nil(t, external.Resolve(p))

	dangling := &ReferenceType{Name: "Gone", ReflectionID: 999}
	assert.Nil(t, dangling.Resolve(p))
}
