package classify

import (
	"sort"

	"github.com/relabel/classmatch/pkg/model"
)

type fieldEntry struct {
	feature FieldFeature
	weight  int
	levels  levelSet
}

// FieldRegistry holds the weighted field features active at each level.
type FieldRegistry struct {
	entries []fieldEntry
}

// NewFieldRegistry returns an empty registry ready for Register calls.
func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{}
}

// Register adds a feature with the given weight, active at levels (or all
// levels if none are given).
func (r *FieldRegistry) Register(f FieldFeature, weight int, levels ...model.Level) {
	r.entries = append(r.entries, fieldEntry{feature: f, weight: weight, levels: newLevelSet(levels)})
}

// Rank scores every candidate in bs against a at level.
func (r *FieldRegistry) Rank(a *model.Field, bs []*model.Field, level model.Level) ([]Ranked[*model.Field], error) {
	active := make([]fieldEntry, 0, len(r.entries))
	totalWeight := 0
	for _, e := range r.entries {
		if e.levels.active(level) {
			active = append(active, e)
			totalWeight += e.weight
		}
	}

	out := make([]Ranked[*model.Field], 0, len(bs))
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
		out = append(out, Ranked[*model.Field]{Entity: b, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return fieldSortKey(out[i].Entity) < fieldSortKey(out[j].Entity)
	})
	return out, nil
}

func fieldSortKey(f *model.Field) string {
	owner := "?"
	if f.Owner != nil {
		owner = f.Owner.ID
	}
	typ := "?"
	if f.Type != nil {
		typ = f.Type.ID
	}
	return owner + "." + f.Name + ":" + typ
}
