package match

import "sort"

// proposal is one entity's best candidate for the current pass, carried
// until the serial commit phase resolves collisions (spec.md §4.3, §5).
type proposal[T comparable] struct {
	from  T
	to    T
	score float64
}

// resolveProposals groups proposals by target and keeps only the winner of
// each group. A target proposed by a single source always survives; a
// target proposed by several sources only survives if its top proposer
// beats the runner-up proposer by at least relative, the same margin test
// a single source's own candidates must already clear before proposing.
func resolveProposals[T comparable](proposals []proposal[T], relative float64, orderKey func(T) string) []proposal[T] {
	groups := make(map[T][]proposal[T])
	for _, p := range proposals {
		groups[p.to] = append(groups[p.to], p)
	}

	survivors := make([]proposal[T], 0, len(groups))
	for _, g := range groups {
		sort.Slice(g, func(i, j int) bool {
			if g[i].score != g[j].score {
				return g[i].score > g[j].score
			}
			return orderKey(g[i].from) < orderKey(g[j].from)
		})
		if len(g) == 1 || g[0].score-g[1].score >= relative {
			survivors = append(survivors, g[0])
		}
	}

	sort.Slice(survivors, func(i, j int) bool { return orderKey(survivors[i].from) < orderKey(survivors[j].from) })
	return survivors
}
