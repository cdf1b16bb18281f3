package classify

import (
	"github.com/relabel/classmatch/pkg/compare"
	"github.com/relabel/classmatch/pkg/model"
)

// FieldOwnerMatch is the field-classifier owner-class equality check.
type FieldOwnerMatch struct{}

func (FieldOwnerMatch) Name() string { return "field-owner-match" }

func (FieldOwnerMatch) Score(a, b *model.Field) (float64, error) {
	if compare.PotentiallyEqualClasses(a.Owner, b.Owner) {
		return 1, nil
	}
	return 0, nil
}

// FieldType compares declared field types.
type FieldType struct{}

func (FieldType) Name() string { return "field-type" }

func (FieldType) Score(a, b *model.Field) (float64, error) {
	if compare.PotentiallyEqualClasses(a.Type, b.Type) {
		return 1, nil
	}
	return 0, nil
}

// FieldAccessFlags is a Hamming-like similarity over every access bit.
type FieldAccessFlags struct{}

func (FieldAccessFlags) Name() string { return "field-access-flags" }

func (FieldAccessFlags) Score(a, b *model.Field) (float64, error) {
	diff := a.Access.HammingDistance(b.Access, model.AllFlags)
	return 1 - float64(diff)/float64(flagBitCount), nil
}

// Readers compares the set of methods reading each field.
type Readers struct{}

func (Readers) Name() string { return "readers" }

func (Readers) Score(a, b *model.Field) (float64, error) {
	return compare.MethodSets(a.Readers, b.Readers), nil
}

// Writers compares the set of methods writing each field.
type Writers struct{}

func (Writers) Name() string { return "writers" }

func (Writers) Score(a, b *model.Field) (float64, error) {
	return compare.MethodSets(a.Writers, b.Writers), nil
}
