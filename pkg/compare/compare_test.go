package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relabel/classmatch/pkg/model"
)

func TestCounts(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want float64
	}{
		{"boundary 3 vs 4", 3, 4, 0.75},
		{"both zero", 0, 0, 1.0},
		{"singly empty", 0, 5, 0.0},
		{"equal", 7, 7, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Counts(tt.x, tt.y))
		})
	}
}

func TestPotentiallyEqualClassesSameObject(t *testing.T) {
	a := model.NewClass("A", 0, true)
	assert.True(t, PotentiallyEqualClasses(a, a), "a class should always be potentially equal to itself")
}

func TestPotentiallyEqualClassesAlreadyMatchedToEachOther(t *testing.T) {
	a := model.NewClass("A", model.FlagInterface, true)
	b := model.NewClass("B", 0, true) // shape differs, would otherwise fail
	a.Match, b.Match = b, a

	assert.True(t, PotentiallyEqualClasses(a, b), "classes already matched to each other must be potentially equal regardless of shape")
}

func TestPotentiallyEqualClassesRejectsAlreadyMatchedElsewhere(t *testing.T) {
	a := model.NewClass("A", 0, true)
	b := model.NewClass("B", 0, true)
	other := model.NewClass("Other", 0, true)
	a.Match = other

	assert.False(t, PotentiallyEqualClasses(a, b), "a class already matched to someone else must not be potentially equal to a third class")
}

func TestPotentiallyEqualClassesShape(t *testing.T) {
	a := model.NewClass("A", model.FlagInterface, true)
	b := model.NewClass("B", model.FlagInterface, true)
	c := model.NewClass("C", model.FlagEnum, true)

	assert.True(t, PotentiallyEqualClasses(a, b), "identical shape bits should be potentially equal")
	assert.False(t, PotentiallyEqualClasses(a, c), "differing shape bits should not be potentially equal")
}

func TestPotentiallyEqualClassesBothNonReal(t *testing.T) {
	a := model.NewClass("A", model.FlagInterface, false)
	b := model.NewClass("B", model.FlagEnum, false)
	assert.True(t, PotentiallyEqualClasses(a, b), "two non-real placeholder classes should be potentially equal regardless of shape bits")
}

func TestClassSetsEmptyEmpty(t *testing.T) {
	assert.Equal(t, 1.0, ClassSets(nil, nil))
}

func TestClassSetsSinglyEmpty(t *testing.T) {
	sa := map[*model.Class]struct{}{model.NewClass("A", 0, true): {}}
	assert.Equal(t, 0.0, ClassSets(sa, nil))
}

func TestClassSetsMutualMatchScoresFull(t *testing.T) {
	a := model.NewClass("A", 0, true)
	b := model.NewClass("B", 0, true)
	a.Match, b.Match = b, a

	sa := map[*model.Class]struct{}{a: {}}
	sb := map[*model.Class]struct{}{b: {}}

	assert.Equal(t, 1.0, ClassSets(sa, sb))
}

func TestClassSetsPotentiallyEqualScoresHalf(t *testing.T) {
	a := model.NewClass("A", model.FlagInterface, true)
	b := model.NewClass("B", model.FlagInterface, true)

	sa := map[*model.Class]struct{}{a: {}}
	sb := map[*model.Class]struct{}{b: {}}

	assert.Equal(t, 0.5, ClassSets(sa, sb))
}
