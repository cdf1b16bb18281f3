package classify

import (
	"sort"

	"github.com/relabel/classmatch/pkg/compare"
	"github.com/relabel/classmatch/pkg/model"
)

// SimilarMethods is spec.md §4.2 feature 7 (weight 10): greedy
// best-matching over a's methods (in declaration order) against a mutable
// pool of b's methods, scoring each accepted pair by instruction-count
// ratio (or 1/0 for a non-real/non-real vs. non-real/real pairing).
type SimilarMethods struct{}

func (SimilarMethods) Name() string { return "similar-methods" }

func (SimilarMethods) Score(a, b *model.Class) (float64, error) {
	methodsA := a.MethodOrder
	pool := sortedPool(b.MethodOrder)

	if len(methodsA) == 0 && len(pool) == 0 {
		return 1, nil
	}
	if len(methodsA) == 0 || len(pool) == 0 {
		return 0, nil
	}

	claimed := make(map[*model.Method]bool, len(pool))
	total := 0.0

	for _, mA := range methodsA {
		bestScore := 0.0
		var best *model.Method

		for _, mB := range pool {
			if claimed[mB] {
				continue
			}
			if !compare.PotentiallyEqualMethods(mA, mB) {
				continue
			}
			if !compare.PotentiallyEqualClasses(mA.Descriptor.Return, mB.Descriptor.Return) {
				continue
			}
			if len(mA.Descriptor.Params) != len(mB.Descriptor.Params) {
				continue
			}
			paramsMatch := true
			for i := range mA.Descriptor.Params {
				if !compare.PotentiallyEqualClasses(mA.Descriptor.Params[i], mB.Descriptor.Params[i]) {
					paramsMatch = false
					break
				}
			}
			if !paramsMatch {
				continue
			}

			var score float64
			switch {
			case !mA.Real && !mB.Real:
				score = 1
			case !mA.Real || !mB.Real:
				score = 0
			default:
				score = compare.Counts(len(mA.Instructions), len(mB.Instructions))
			}

			if score > bestScore {
				bestScore, best = score, mB
			}
		}

		if best != nil {
			total += bestScore
			claimed[best] = true
		}
	}

	return total / float64(maxInt(len(methodsA), len(pool))), nil
}

func sortedPool(methods []*model.Method) []*model.Method {
	out := make([]*model.Method, len(methods))
	copy(out, methods)
	sort.Slice(out, func(i, j int) bool { return methodSortKey(out[i]) < methodSortKey(out[j]) })
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
