package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabel/classmatch/internal/config"
	"github.com/relabel/classmatch/pkg/classify"
	"github.com/relabel/classmatch/pkg/match"
	"github.com/relabel/classmatch/pkg/model"
)

func TestBuildSummarizesACompletedRun(t *testing.T) {
	named := model.NewImage("named")
	a := model.NewClass("com/old/Foo", 0, true)
	named.AddClass(a)

	unnamed := model.NewImage("unnamed")
	b := model.NewClass("a/b/c", 0, true)
	unnamed.AddClass(b)

	cfg := &config.Config{
		PropagateHierarchy: true,
		Parallelism:        1,
		Thresholds: map[string]config.LevelThresholds{
			"INITIAL": {Absolute: 0.80, Relative: 0.08},
		},
		Levels: []string{"INITIAL"},
	}

	d := match.NewDriver(named, unnamed, classify.NewFramework(nil), cfg, nil)
	store, err := d.Run(context.Background())
	require.NoError(t, err)

	r := Build(named, unnamed, store, d.RunID)
	assert.Equal(t, 1, r.Summary.NamedClasses)
	assert.Equal(t, 1, r.Summary.MatchedClasses)
	require.Len(t, r.Classes, 1)
	assert.Equal(t, a.ID, r.Classes[0].Named)
	assert.Equal(t, b.ID, r.Classes[0].Unnamed)
}
