package match

import (
	"sort"

	"github.com/relabel/classmatch/pkg/compare"
	"github.com/relabel/classmatch/pkg/model"
)

// unmatchedRealClasses returns img's unmatched real classes, sorted by ID
// so every pass iterates the worklist in the same order.
func unmatchedRealClasses(img *model.Image) []*model.Class {
	all := img.RealClasses()
	out := make([]*model.Class, 0, len(all))
	for _, c := range all {
		if !c.IsMatched() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// classCandidates returns the unmatched real classes of pool that are
// potentially equal to a, sorted by ID.
func classCandidates(a *model.Class, pool []*model.Class) []*model.Class {
	out := make([]*model.Class, 0)
	for _, b := range pool {
		if b.IsMatched() {
			continue
		}
		if compare.PotentiallyEqualClasses(a, b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// methodCandidates returns the unmatched methods of b (the committed match
// of m's owner) that are potentially equal to m, sorted by key.
func methodCandidates(m *model.Method, b *model.Class) []*model.Method {
	out := make([]*model.Method, 0, len(b.MethodOrder))
	for _, cand := range b.MethodOrder {
		if cand.IsMatched() {
			continue
		}
		if compare.PotentiallyEqualMethods(m, cand) {
			out = append(out, cand)
		}
	}
	sort.Slice(out, func(i, j int) bool { return methodSortKey(out[i]) < methodSortKey(out[j]) })
	return out
}

// fieldCandidates returns the unmatched fields of b that are potentially
// equal to f, sorted by key.
func fieldCandidates(f *model.Field, b *model.Class) []*model.Field {
	keys := make([]model.FieldKey, 0, len(b.Fields))
	for k := range b.Fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return fieldKeyLess(keys[i], keys[j]) })

	out := make([]*model.Field, 0, len(keys))
	for _, k := range keys {
		cand := b.Fields[k]
		if cand.IsMatched() {
			continue
		}
		if compare.PotentiallyEqualFields(f, cand) {
			out = append(out, cand)
		}
	}
	return out
}
