// Package classify implements the classifier framework and the three
// entity-kind feature families (class, method, field) of spec.md §4.2.
//
// A registry is a list of weighted feature functions scoped to a subset of
// matching levels. Rank scores every candidate against one anchor entity
// and returns candidates ordered by descending weighted-mean score, with a
// stable secondary tie-break on entity identifier so the algorithm is
// reproducible (spec.md testable property 3).
//
// This mirrors the teacher's Classifier+ClassificationPolicy pairing in
// pkg/analysis/rules: a thin façade (Framework) over a configuration-driven
// set of registered rules (the three Registry types).
package classify

import (
	"github.com/relabel/classmatch/pkg/model"
)

// ClassFeature scores a candidate pair of classes in [0,1].
type ClassFeature interface {
	Name() string
	Score(a, b *model.Class) (float64, error)
}

// MethodFeature scores a candidate pair of methods in [0,1].
type MethodFeature interface {
	Name() string
	Score(a, b *model.Method) (float64, error)
}

// FieldFeature scores a candidate pair of fields in [0,1].
type FieldFeature interface {
	Name() string
	Score(a, b *model.Field) (float64, error)
}

// Ranked pairs a candidate with its aggregated score.
type Ranked[T any] struct {
	Entity T
	Score  float64
}

type levelSet map[model.Level]bool

func newLevelSet(levels []model.Level) levelSet {
	if len(levels) == 0 {
		return nil // nil means "all levels"
	}
	s := make(levelSet, len(levels))
	for _, l := range levels {
		s[l] = true
	}
	return s
}

func (s levelSet) active(level model.Level) bool {
	return s == nil || s[level]
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
