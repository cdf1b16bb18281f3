package classify

import (
	"math/bits"

	"github.com/relabel/classmatch/pkg/compare"
	"github.com/relabel/classmatch/pkg/model"
)

var flagBitCount = bits.OnesCount32(uint32(model.AllFlags))

// OwnerMatch is the method-classifier owner-class potential-equality check.
// The matcher driver already restricts method candidate sets to members of
// an already-matched owner pair, so this is usually 1 by construction; it
// still contributes a feature so ranking degrades gracefully if a caller
// invokes Rank outside that guarantee.
type OwnerMatch struct{}

func (OwnerMatch) Name() string { return "owner-match" }

func (OwnerMatch) Score(a, b *model.Method) (float64, error) {
	if compare.PotentiallyEqualClasses(a.Owner, b.Owner) {
		return 1, nil
	}
	return 0, nil
}

// ReturnType compares the declared return types.
type ReturnType struct{}

func (ReturnType) Name() string { return "return-type" }

func (ReturnType) Score(a, b *model.Method) (float64, error) {
	if compare.PotentiallyEqualClasses(a.Descriptor.Return, b.Descriptor.Return) {
		return 1, nil
	}
	return 0, nil
}

// ParameterTypes compares declared parameter types position by position,
// returning the fraction that are potentially equal (0 if arity differs).
type ParameterTypes struct{}

func (ParameterTypes) Name() string { return "parameter-types" }

func (ParameterTypes) Score(a, b *model.Method) (float64, error) {
	pa, pb := a.Descriptor.Params, b.Descriptor.Params
	if len(pa) != len(pb) {
		return 0, nil
	}
	if len(pa) == 0 {
		return 1, nil
	}
	matches := 0
	for i := range pa {
		if compare.PotentiallyEqualClasses(pa[i], pb[i]) {
			matches++
		}
	}
	return float64(matches) / float64(len(pa)), nil
}

// MethodAccessFlags is a Hamming-like similarity over every access bit.
type MethodAccessFlags struct{}

func (MethodAccessFlags) Name() string { return "method-access-flags" }

func (MethodAccessFlags) Score(a, b *model.Method) (float64, error) {
	diff := a.Access.HammingDistance(b.Access, model.AllFlags)
	return 1 - float64(diff)/float64(flagBitCount), nil
}

// Callers compares the set of methods calling a vs. b.
type Callers struct{}

func (Callers) Name() string { return "callers" }

func (Callers) Score(a, b *model.Method) (float64, error) {
	return compare.MethodSets(a.RefsIn, b.RefsIn), nil
}

// Callees compares the set of methods a and b call.
type Callees struct{}

func (Callees) Name() string { return "callees" }

func (Callees) Score(a, b *model.Method) (float64, error) {
	return compare.MethodSets(a.RefsOut, b.RefsOut), nil
}

// FieldReads compares the set of fields each method reads.
type FieldReads struct{}

func (FieldReads) Name() string { return "field-reads" }

func (FieldReads) Score(a, b *model.Method) (float64, error) {
	return compare.FieldSets(a.FieldReadRefs, b.FieldReadRefs), nil
}

// FieldWrites compares the set of fields each method writes.
type FieldWrites struct{}

func (FieldWrites) Name() string { return "field-writes" }

func (FieldWrites) Score(a, b *model.Method) (float64, error) {
	return compare.FieldSets(a.FieldWriteRefs, b.FieldWriteRefs), nil
}

// InstructionCount is the instruction-count ratio between method bodies.
type InstructionCount struct{}

func (InstructionCount) Name() string { return "instruction-count" }

func (InstructionCount) Score(a, b *model.Method) (float64, error) {
	return compare.Counts(len(a.Instructions), len(b.Instructions)), nil
}

// BytecodeSequence is the rudimentary opcode-category LCS similarity
// spec.md §4.2 calls for at SECONDARY level and above.
type BytecodeSequence struct{}

func (BytecodeSequence) Name() string { return "bytecode-sequence" }

func (BytecodeSequence) Score(a, b *model.Method) (float64, error) {
	return OpcodeLCSSimilarity(a.Instructions, b.Instructions), nil
}
