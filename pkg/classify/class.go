package classify

import (
	"github.com/relabel/classmatch/pkg/compare"
	"github.com/relabel/classmatch/pkg/model"
)

// ClassTypeCheck is spec.md §4.2 feature 1 (weight 20): a Hamming-like
// similarity over the {enum, interface, annotation, abstract} access bits.
type ClassTypeCheck struct{}

func (ClassTypeCheck) Name() string { return "class-type-check" }

func (ClassTypeCheck) Score(a, b *model.Class) (float64, error) {
	diff := a.Access.HammingDistance(b.Access, model.TypeMask)
	return 1 - float64(diff)/4, nil
}

// HierarchyDepth is feature 2 (weight 1): compare.Counts of parent-chain
// lengths.
type HierarchyDepth struct{}

func (HierarchyDepth) Name() string { return "hierarchy-depth" }

func (HierarchyDepth) Score(a, b *model.Class) (float64, error) {
	return compare.Counts(a.HierarchyDepth(), b.HierarchyDepth()), nil
}

// ParentClass is feature 3 (weight 4).
type ParentClass struct{}

func (ParentClass) Name() string { return "parent-class" }

func (ParentClass) Score(a, b *model.Class) (float64, error) {
	switch {
	case a.Parent == nil && b.Parent == nil:
		return 1, nil
	case a.Parent == nil || b.Parent == nil:
		return 0, nil
	case compare.PotentiallyEqualClasses(a.Parent, b.Parent):
		return 1, nil
	default:
		return 0, nil
	}
}

// ChildClasses is feature 4a (weight 3).
type ChildClasses struct{}

func (ChildClasses) Name() string { return "child-classes" }

func (ChildClasses) Score(a, b *model.Class) (float64, error) {
	return compare.ClassSets(toClassSet(a.Children), toClassSet(b.Children)), nil
}

// Interfaces is feature 4b (weight 3).
type Interfaces struct{}

func (Interfaces) Name() string { return "interfaces" }

func (Interfaces) Score(a, b *model.Class) (float64, error) {
	return compare.ClassSets(toClassSet(a.Interfaces), toClassSet(b.Interfaces)), nil
}

// Implementers is feature 4c (weight 2).
type Implementers struct{}

func (Implementers) Name() string { return "implementers" }

func (Implementers) Score(a, b *model.Class) (float64, error) {
	return compare.ClassSets(toClassSet(a.Implementers), toClassSet(b.Implementers)), nil
}

// MethodCount is feature 5a (weight 3).
type MethodCount struct{}

func (MethodCount) Name() string { return "method-count" }

func (MethodCount) Score(a, b *model.Class) (float64, error) {
	return compare.Counts(len(a.Methods), len(b.Methods)), nil
}

// FieldCount is feature 5b (weight 3).
type FieldCount struct{}

func (FieldCount) Name() string { return "field-count" }

func (FieldCount) Score(a, b *model.Class) (float64, error) {
	return compare.Counts(len(a.Fields), len(b.Fields)), nil
}

// HierarchySiblings is feature 6 (weight 2): compare.Counts of the parent's
// child-set size on each side.
type HierarchySiblings struct{}

func (HierarchySiblings) Name() string { return "hierarchy-siblings" }

func (HierarchySiblings) Score(a, b *model.Class) (float64, error) {
	aSiblings, bSiblings := 0, 0
	if a.Parent != nil {
		aSiblings = len(a.Parent.Children)
	}
	if b.Parent != nil {
		bSiblings = len(b.Parent.Children)
	}
	return compare.Counts(aSiblings, bSiblings), nil
}

// OutReferences is feature 8a (weight 6): compare.ClassSets on the class's
// aggregated out-going inter-class references (spec.md §4.4).
type OutReferences struct{}

func (OutReferences) Name() string { return "out-references" }

func (OutReferences) Score(a, b *model.Class) (float64, error) {
	return compare.ClassSets(a.OutClassRefs(), b.OutClassRefs()), nil
}

// InReferences is feature 8b (weight 6): compare.ClassSets on aggregated
// incoming inter-class references.
type InReferences struct{}

func (InReferences) Name() string { return "in-references" }

func (InReferences) Score(a, b *model.Class) (float64, error) {
	return compare.ClassSets(a.InClassRefs(), b.InClassRefs()), nil
}

// MethodOutReferences is feature 9a (weight 6, SECONDARY+): compare.
// MethodSets on the class's aggregated member-level call-out references.
type MethodOutReferences struct{}

func (MethodOutReferences) Name() string { return "method-out-references" }

func (MethodOutReferences) Score(a, b *model.Class) (float64, error) {
	return compare.MethodSets(a.AggregatedMethodOutRefs(), b.AggregatedMethodOutRefs()), nil
}

// MethodInReferences is feature 9b (weight 6, SECONDARY+).
type MethodInReferences struct{}

func (MethodInReferences) Name() string { return "method-in-references" }

func (MethodInReferences) Score(a, b *model.Class) (float64, error) {
	return compare.MethodSets(a.AggregatedMethodInRefs(), b.AggregatedMethodInRefs()), nil
}

// FieldReadReferences is feature 9c (weight 5, SECONDARY+): compare.
// MethodSets on the class's aggregated field readers.
type FieldReadReferences struct{}

func (FieldReadReferences) Name() string { return "field-read-references" }

func (FieldReadReferences) Score(a, b *model.Class) (float64, error) {
	return compare.MethodSets(a.AggregatedFieldReaders(), b.AggregatedFieldReaders()), nil
}

// FieldWriteReferences is feature 9d (weight 5, SECONDARY+).
type FieldWriteReferences struct{}

func (FieldWriteReferences) Name() string { return "field-write-references" }

func (FieldWriteReferences) Score(a, b *model.Class) (float64, error) {
	return compare.MethodSets(a.AggregatedFieldWriters(), b.AggregatedFieldWriters()), nil
}

func toClassSet(m map[string]*model.Class) map[*model.Class]struct{} {
	out := make(map[*model.Class]struct{}, len(m))
	for _, c := range m {
		out[c] = struct{}{}
	}
	return out
}
