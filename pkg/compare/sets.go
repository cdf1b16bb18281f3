package compare

import (
	"sort"

	"github.com/relabel/classmatch/pkg/model"
)

// ClassSets is the canonical set-similarity comparator of spec.md §4.1: for
// each element of the smaller set, pick the best unclaimed partner from the
// larger set, score mutually-matched pairs at 1 and merely-potentially-equal
// pairs at a smaller positive weight, and normalize by the larger
// cardinality. Empty-empty pairs score 1; a singly-empty pair scores 0.
func ClassSets(sa, sb map[*model.Class]struct{}) float64 {
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	smaller, larger := sa, sb
	if len(sb) < len(sa) {
		smaller, larger = sb, sa
	}

	smallList := sortedClasses(smaller)
	largeList := sortedClasses(larger)
	claimed := make(map[*model.Class]bool, len(largeList))

	total := 0.0
	for _, x := range smallList {
		bestScore := 0.0
		var best *model.Class
		for _, y := range largeList {
			if claimed[y] {
				continue
			}
			score := classPairWeight(x, y)
			if score > bestScore {
				bestScore, best = score, y
			}
		}
		if best != nil {
			total += bestScore
			claimed[best] = true
		}
	}

	return total / float64(maxInt(len(sa), len(sb)))
}

func classPairWeight(x, y *model.Class) float64 {
	if x.Match == y && y.Match == x {
		return 1
	}
	if PotentiallyEqualClasses(x, y) {
		return 0.5
	}
	return 0
}

// MethodSets is the method-specialised analogue of ClassSets.
func MethodSets(sa, sb map[*model.Method]struct{}) float64 {
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	smaller, larger := sa, sb
	if len(sb) < len(sa) {
		smaller, larger = sb, sa
	}

	smallList := sortedMethods(smaller)
	largeList := sortedMethods(larger)
	claimed := make(map[*model.Method]bool, len(largeList))

	total := 0.0
	for _, x := range smallList {
		bestScore := 0.0
		var best *model.Method
		for _, y := range largeList {
			if claimed[y] {
				continue
			}
			score := methodPairWeight(x, y)
			if score > bestScore {
				bestScore, best = score, y
			}
		}
		if best != nil {
			total += bestScore
			claimed[best] = true
		}
	}

	return total / float64(maxInt(len(sa), len(sb)))
}

func methodPairWeight(x, y *model.Method) float64 {
	if x.Match == y && y.Match == x {
		return 1
	}
	if PotentiallyEqualMethods(x, y) {
		return 0.5
	}
	return 0
}

// FieldSets is the field-specialised analogue of ClassSets.
func FieldSets(sa, sb map[*model.Field]struct{}) float64 {
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	smaller, larger := sa, sb
	if len(sb) < len(sa) {
		smaller, larger = sb, sa
	}

	smallList := sortedFields(smaller)
	largeList := sortedFields(larger)
	claimed := make(map[*model.Field]bool, len(largeList))

	total := 0.0
	for _, x := range smallList {
		bestScore := 0.0
		var best *model.Field
		for _, y := range largeList {
			if claimed[y] {
				continue
			}
			score := fieldPairWeight(x, y)
			if score > bestScore {
				bestScore, best = score, y
			}
		}
		if best != nil {
			total += bestScore
			claimed[best] = true
		}
	}

	return total / float64(maxInt(len(sa), len(sb)))
}

func fieldPairWeight(x, y *model.Field) float64 {
	if x.Match == y && y.Match == x {
		return 1
	}
	if PotentiallyEqualFields(x, y) {
		return 0.5
	}
	return 0
}

func sortedClasses(s map[*model.Class]struct{}) []*model.Class {
	out := make([]*model.Class, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedMethods(s map[*model.Method]struct{}) []*model.Method {
	out := make([]*model.Method, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return methodSortKey(out[i]) < methodSortKey(out[j]) })
	return out
}

func sortedFields(s map[*model.Field]struct{}) []*model.Field {
	out := make([]*model.Field, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return fieldSortKey(out[i]) < fieldSortKey(out[j]) })
	return out
}

func methodSortKey(m *model.Method) string {
	owner := "?"
	if m.Owner != nil {
		owner = m.Owner.ID
	}
	return owner + "." + m.Name + m.Descriptor.String()
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
