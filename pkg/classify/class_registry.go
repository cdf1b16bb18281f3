package classify

import (
	"sort"

	"github.com/relabel/classmatch/pkg/model"
)

type classEntry struct {
	feature ClassFeature
	weight  int
	levels  levelSet
}

// ClassRegistry holds the weighted class features active at each level.
type ClassRegistry struct {
	entries []classEntry
}

// NewClassRegistry returns an empty registry ready for Register calls.
func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{}
}

// Register adds a feature with the given weight, active at levels (or all
// levels if none are given).
func (r *ClassRegistry) Register(f ClassFeature, weight int, levels ...model.Level) {
	r.entries = append(r.entries, classEntry{feature: f, weight: weight, levels: newLevelSet(levels)})
}

// Rank scores every candidate in bs against a at level, returning results
// sorted by descending score with a lexicographic tie-break on b.ID.
func (r *ClassRegistry) Rank(a *model.Class, bs []*model.Class, level model.Level) ([]Ranked[*model.Class], error) {
	active := make([]classEntry, 0, len(r.entries))
	totalWeight := 0
	for _, e := range r.entries {
		if e.levels.active(level) {
			active = append(active, e)
			totalWeight += e.weight
		}
	}

	out := make([]Ranked[*model.Class], 0, len(bs))
	for _, b := range bs {
		sum := 0.0
		for _, e := range active {
			v, err := e.feature.Score(a, b)
			if err != nil {
				return nil, err
			}
			if v < 0 || v > 1 {
				return nil, &FeatureOutOfRangeError{Feature: e.feature.Name(), Level: level.String(), Value: v}
			}
			sum += float64(e.weight) * v
		}
		score := 0.0
		if totalWeight > 0 {
			score = clamp(sum / float64(totalWeight))
		}
		out = append(out, Ranked[*model.Class]{Entity: b, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Entity.ID < out[j].Entity.ID
	})
	return out, nil
}
