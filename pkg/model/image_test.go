package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCatchesMissingReverseCallEdge(t *testing.T) {
	img := NewImage("A")
	c := NewClass("A", 0, true)
	voidType := NewClass("V", 0, false)
	m1 := NewMethod("m1", Descriptor{Return: voidType}, 0, true)
	m2 := NewMethod("m2", Descriptor{Return: voidType}, 0, true)
	c.AddMethod(m1)
	c.AddMethod(m2)
	img.AddClass(c)

	// Break symmetry deliberately: m1 claims to call m2 without the reverse edge.
	m1.RefsOut[m2] = struct{}{}

	assert.Error(t, img.Validate(), "expected Validate to reject an asymmetric call edge")
}

func TestValidateAcceptsConsistentImage(t *testing.T) {
	img := NewImage("A")
	c := NewClass("A", 0, true)
	voidType := NewClass("V", 0, false)
	m1 := NewMethod("m1", Descriptor{Return: voidType}, 0, true)
	m2 := NewMethod("m2", Descriptor{Return: voidType}, 0, true)
	c.AddMethod(m1)
	c.AddMethod(m2)
	img.AddClass(c)

	m1.AddCall(m2)

	assert.NoError(t, img.Validate())
}

func TestHierarchyDepth(t *testing.T) {
	grandparent := NewClass("GP", 0, true)
	parent := NewClass("P", 0, true)
	child := NewClass("C", 0, true)
	grandparent.AddChild(parent)
	parent.AddChild(child)

	assert.Equal(t, 2, child.HierarchyDepth())
	assert.Equal(t, 0, grandparent.HierarchyDepth())
}

func TestOutClassRefsMemoized(t *testing.T) {
	owner := NewClass("Owner", 0, true)
	referenced := NewClass("Ref", 0, true)
	voidType := NewClass("V", 0, false)
	m := NewMethod("m", Descriptor{Return: voidType}, 0, true)
	m.AddClassRef(referenced)
	owner.AddMethod(m)

	first := owner.OutClassRefs()
	require.Contains(t, first, referenced)

	second := owner.OutClassRefs()
	assert.Len(t, second, len(first))
}
