package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabel/classmatch/pkg/model"
)

func TestClassTypeCheckHammingBoundary(t *testing.T) {
	a := model.NewClass("A", model.FlagInterface, true)
	b := model.NewClass("B", model.FlagAbstract, true)

	got, err := ClassTypeCheck{}.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)
}

func TestObviousRenameScoresPerfectly(t *testing.T) {
	voidType := model.NewClass("V", 0, false)

	a := model.NewClass("A", 0, true)
	aM := model.NewMethod("m", model.Descriptor{Return: voidType}, 0, true)
	a.AddMethod(aM)

	b := model.NewClass("B", 0, true)
	bM := model.NewMethod("m", model.Descriptor{Return: voidType}, 0, true)
	b.AddMethod(bM)

	typeCheck, err := ClassTypeCheck{}.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, typeCheck)

	methodCount, err := MethodCount{}.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, methodCount)

	similar, err := SimilarMethods{}.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, similar)
}

func TestSimilarMethodsEmptyEmpty(t *testing.T) {
	a := model.NewClass("A", 0, true)
	b := model.NewClass("B", 0, true)

	got, err := SimilarMethods{}.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestFrameworkRankOrdersByDescendingScore(t *testing.T) {
	fw := NewFramework(nil)
	anchor := model.NewClass("Anchor", model.FlagInterface, true)

	weak := model.NewClass("Zeta", model.FlagAbstract, true)
	strong := model.NewClass("Alpha", model.FlagInterface, true)

	ranked, err := fw.Classes.Rank(anchor, []*model.Class{weak, strong}, model.Initial)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, strong, ranked[0].Entity)
}
