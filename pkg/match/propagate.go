package match

import (
	"github.com/relabel/classmatch/pkg/compare"
	"github.com/relabel/classmatch/pkg/model"
)

// propagateHierarchy extends a freshly committed class pair (a, b) to their
// parents and, where each side declares exactly one interface, to those
// interfaces too, repeating to a fixed point (spec.md §4.4). A propagated
// pair inherits the triggering pair's similarity score, since it was never
// independently ranked.
func propagateHierarchy(store *Store, a, b *model.Class, level model.Level) {
	queue := []*model.Class{a}
	partner := map[*model.Class]*model.Class{a: b}

	for len(queue) > 0 {
		ca := queue[0]
		queue = queue[1:]
		cb := partner[ca]
		similarity := ca.MatchSimilarity

		if pa, pb := ca.Parent, cb.Parent; pa != nil && pb != nil &&
			pa.Real && pb.Real && !pa.IsMatched() && !pb.IsMatched() &&
			compare.PotentiallyEqualClasses(pa, pb) {
			if err := store.CommitClass(pa, pb, level, similarity); err == nil {
				partner[pa] = pb
				queue = append(queue, pa)
			}
		}

		if len(ca.Interfaces) == 1 && len(cb.Interfaces) == 1 {
			ia, ib := soleInterface(ca), soleInterface(cb)
			if ia != nil && ib != nil && ia.Real && ib.Real && !ia.IsMatched() && !ib.IsMatched() &&
				compare.PotentiallyEqualClasses(ia, ib) {
				if err := store.CommitClass(ia, ib, level, similarity); err == nil {
					partner[ia] = ib
					queue = append(queue, ia)
				}
			}
		}
	}
}

func soleInterface(c *model.Class) *model.Class {
	for _, iface := range c.Interfaces {
		return iface
	}
	return nil
}
