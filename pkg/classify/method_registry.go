package classify

import (
	"sort"

	"github.com/relabel/classmatch/pkg/model"
)

type methodEntry struct {
	feature MethodFeature
	weight  int
	levels  levelSet
}

// MethodRegistry holds the weighted method features active at each level.
type MethodRegistry struct {
	entries []methodEntry
}

// NewMethodRegistry returns an empty registry ready for Register calls.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{}
}

// Register adds a feature with the given weight, active at levels (or all
// levels if none are given).
func (r *MethodRegistry) Register(f MethodFeature, weight int, levels ...model.Level) {
	r.entries = append(r.entries, methodEntry{feature: f, weight: weight, levels: newLevelSet(levels)})
}

// Rank scores every candidate in bs against a at level.
func (r *MethodRegistry) Rank(a *model.Method, bs []*model.Method, level model.Level) ([]Ranked[*model.Method], error) {
	active := make([]methodEntry, 0, len(r.entries))
	totalWeight := 0
	for _, e := range r.entries {
		if e.levels.active(level) {
			active = append(active, e)
			totalWeight += e.weight
		}
	}

	out := make([]Ranked[*model.Method], 0, len(bs))
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
		out = append(out, Ranked[*model.Method]{Entity: b, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return methodSortKey(out[i].Entity) < methodSortKey(out[j].Entity)
	})
	return out, nil
}

func methodSortKey(m *model.Method) string {
	owner := "?"
	if m.Owner != nil {
		owner = m.Owner.ID
	}
	return owner + "." + m.Name + m.Descriptor.String()
}
