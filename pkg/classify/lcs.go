package classify

import "github.com/relabel/classmatch/pkg/model"

// OpcodeLCSSimilarity implements the "rudimentary bytecode-sequence
// similarity" spec.md §4.2 mentions for the method classifier at
// SECONDARY level and above but leaves unspecified: the length of the
// longest common subsequence of opcode categories (spec.md's instruction
// bodies are otherwise opaque), normalized by the longer sequence's length.
func OpcodeLCSSimilarity(a, b []model.Instruction) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ca := categories(a)
	cb := categories(b)

	prev := make([]int, len(cb)+1)
	curr := make([]int, len(cb)+1)
	for i := 1; i <= len(ca); i++ {
		for j := 1; j <= len(cb); j++ {
			if ca[i-1] == cb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcsLen := prev[len(cb)]
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return float64(lcsLen) / float64(longer)
}

func categories(insns []model.Instruction) []model.OpcodeCategory {
	out := make([]model.OpcodeCategory, len(insns))
	for i, insn := range insns {
		out[i] = insn.Op.Category()
	}
	return out
}
