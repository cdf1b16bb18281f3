package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabel/classmatch/internal/config"
	"github.com/relabel/classmatch/pkg/classify"
	"github.com/relabel/classmatch/pkg/model"
)

func testConfig() *config.Config {
	return &config.Config{
		PropagateHierarchy: true,
		Parallelism:        2,
		Thresholds: map[string]config.LevelThresholds{
			"INITIAL":   {Absolute: 0.80, Relative: 0.08},
			"SECONDARY": {Absolute: 0.70, Relative: 0.05},
			"EXTRA":     {Absolute: 0.60, Relative: 0.03},
			"FINAL":     {Absolute: 0.50, Relative: 0.01},
		},
	}
}

// TestIdentityMatch covers S1: matching an image against itself matches
// every real class to itself with similarity 1.
func TestIdentityMatch(t *testing.T) {
	img := model.NewImage("a")
	voidType := model.NewClass("V", 0, false)
	c := model.NewClass("com/example/Widget", 0, true)
	m := model.NewMethod("run", model.Descriptor{Return: voidType}, 0, true)
	c.AddMethod(m)
	img.AddClass(c)
	img.AddClass(voidType)

	named := img
	unnamed := model.NewImage("b")
	voidType2 := model.NewClass("V", 0, false)
	c2 := model.NewClass("com/example/Widget", 0, true)
	m2 := model.NewMethod("run", model.Descriptor{Return: voidType2}, 0, true)
	c2.AddMethod(m2)
	unnamed.AddClass(c2)
	unnamed.AddClass(voidType2)

	d := NewDriver(named, unnamed, classify.NewFramework(nil), testConfig(), nil)
	_, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, c2, c.Match)
	assert.Equal(t, 1.0, c.MatchSimilarity)
	assert.Equal(t, m2, m.Match)
	assert.Len(t, MatchedClasses(named), 1)
}

// TestObviousRenameAcrossImages covers S2: a renamed class with an
// unambiguous best candidate is still matched even though its identifier
// changed between versions.
func TestObviousRenameAcrossImages(t *testing.T) {
	named := model.NewImage("named")
	a := model.NewClass("com/old/Foo", 0, true)
	named.AddClass(a)

	decoy := model.NewClass("com/old/Decoy", model.FlagInterface, true)
	named.AddClass(decoy)

	unnamed := model.NewImage("unnamed")
	b := model.NewClass("a/b/c", 0, true)
	unnamed.AddClass(b)
	decoyUnnamed := model.NewClass("a/b/d", model.FlagInterface, true)
	unnamed.AddClass(decoyUnnamed)

	d := NewDriver(named, unnamed, classify.NewFramework(nil), testConfig(), nil)
	_, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, b, a.Match)
}

// TestHierarchyPropagation covers S4: once a subclass pair commits, their
// parent classes end up matched too. In this fixture the parents are also
// ranked on their own in the same pass, so the assertion holds whether the
// parent pair is committed by ranking or by propagateHierarchy.
func TestHierarchyPropagation(t *testing.T) {
	namedParent := model.NewClass("com/old/Base", model.FlagAbstract, true)
	namedChild := model.NewClass("com/old/Impl", 0, true)
	namedParent.AddChild(namedChild)
	namedM := model.NewMethod("exec", model.Descriptor{Return: model.NewClass("V", 0, false)}, 0, true)
	namedChild.AddMethod(namedM)

	unnamedParent := model.NewClass("x/y/A", model.FlagAbstract, true)
	unnamedChild := model.NewClass("x/y/B", 0, true)
	unnamedParent.AddChild(unnamedChild)
	unnamedM := model.NewMethod("exec", model.Descriptor{Return: model.NewClass("V", 0, false)}, 0, true)
	unnamedChild.AddMethod(unnamedM)

	named := model.NewImage("named")
	named.AddClass(namedParent)
	named.AddClass(namedChild)
	unnamed := model.NewImage("unnamed")
	unnamed.AddClass(unnamedParent)
	unnamed.AddClass(unnamedChild)

	d := NewDriver(named, unnamed, classify.NewFramework(nil), testConfig(), nil)
	_, err := d.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, unnamedChild, namedChild.Match)
	assert.Equal(t, unnamedParent, namedParent.Match, "expected parent classes to be matched")
}

// TestAmbiguityHeldBack covers S3: two equally good candidates at FINAL
// are recorded as ambiguous rather than committed to an arbitrary winner.
func TestAmbiguityHeldBack(t *testing.T) {
	anchor := model.NewClass("com/old/Thing", 0, true)
	cand1 := model.NewClass("x/T1", 0, true)
	cand2 := model.NewClass("x/T2", 0, true)

	named := model.NewImage("named")
	named.AddClass(anchor)
	unnamed := model.NewImage("unnamed")
	unnamed.AddClass(cand1)
	unnamed.AddClass(cand2)

	cfg := testConfig()
	d := NewDriver(named, unnamed, classify.NewFramework(nil), cfg, nil)
	store, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, anchor.IsMatched(), "expected anchor to remain unmatched given two indistinguishable candidates")
	assert.Contains(t, store.AmbiguousClasses(), anchor)
}

// TestConcurrentRankingSharesCandidateSafely covers spec §5 and §8.3: two
// anchors ranked concurrently (Parallelism > 1) both consider a third,
// shared candidate that matches neither of them. Both rankers end up
// calling that shared candidate's OutClassRefs/InClassRefs concurrently,
// which exercises the refsCache guard in pkg/model/refs.go instead of
// racing on it. Run with -race to catch a regression.
func TestConcurrentRankingSharesCandidateSafely(t *testing.T) {
	voidType := model.NewClass("V", 0, false)
	intType := model.NewClass("I", 0, false)

	named := model.NewImage("named")
	fooAnchor := model.NewClass("com/old/Foo", 0, true)
	fooAnchor.AddMethod(model.NewMethod("alpha", model.Descriptor{Return: voidType}, 0, true))
	barAnchor := model.NewClass("com/old/Bar", 0, true)
	barAnchor.AddMethod(model.NewMethod("beta", model.Descriptor{Return: voidType, Params: []*model.Class{intType}}, 0, true))
	named.AddClass(fooAnchor)
	named.AddClass(barAnchor)

	unnamed := model.NewImage("unnamed")
	fooTarget := model.NewClass("a/b/F", 0, true)
	fooTarget.AddMethod(model.NewMethod("x1", model.Descriptor{Return: voidType}, 0, true))
	barTarget := model.NewClass("a/b/B", 0, true)
	barTarget.AddMethod(model.NewMethod("y1", model.Descriptor{Return: voidType, Params: []*model.Class{intType}}, 0, true))
	// shared candidate: same shape as both anchors (no access bits set),
	// but no methods, so it loses to each anchor's true target and is
	// never committed. Both rankers still rank it on every level they run.
	shared := model.NewClass("a/b/Shared", 0, true)
	unnamed.AddClass(fooTarget)
	unnamed.AddClass(barTarget)
	unnamed.AddClass(shared)

	cfg := testConfig()
	cfg.Parallelism = 8
	d := NewDriver(named, unnamed, classify.NewFramework(nil), cfg, nil)
	_, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fooTarget, fooAnchor.Match)
	assert.Equal(t, barTarget, barAnchor.Match)
	assert.False(t, shared.IsMatched(), "expected the shared decoy to lose to both anchors' true targets")
}
