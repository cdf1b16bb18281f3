package compare

import "github.com/relabel/classmatch/pkg/model"

// ShapeMask is the subset of access bits the "potentially equal" shape
// check considers for classes: enum, interface, annotation. The matcher's
// candidate-set filter goes through PotentiallyEqualClasses and so uses
// this mask too. It is narrower than model.TypeMask, which also covers
// abstract and is used by the class-type-check feature.
const ShapeMask = model.FlagEnum | model.FlagInterface | model.FlagAnnotation

// PotentiallyEqualClasses is the fast, permissive gate used everywhere
// before expensive scoring (spec.md §4.1). A false positive only wastes
// scoring work; a false negative silently precludes a real match, so this
// is deliberately generous.
func PotentiallyEqualClasses(a, b *model.Class) bool {
	if a == b {
		return true
	}
	if a.Match == b && b.Match == a {
		return true
	}
	if a.IsMatched() || b.IsMatched() {
		return false
	}
	return classShapeCompatible(a, b)
}

func classShapeCompatible(a, b *model.Class) bool {
	if !a.Real && !b.Real {
		return true
	}
	return a.Access.HammingDistance(b.Access, ShapeMask) == 0
}

// PotentiallyEqualMethods gates method comparisons on owner compatibility
// and element-wise descriptor compatibility.
func PotentiallyEqualMethods(a, b *model.Method) bool {
	if a == b {
		return true
	}
	if a.Match == b && b.Match == a {
		return true
	}
	if a.IsMatched() || b.IsMatched() {
		return false
	}
	if !PotentiallyEqualClasses(a.Owner, b.Owner) {
		return false
	}
	return potentiallyEqualDescriptors(a.Descriptor, b.Descriptor)
}

func potentiallyEqualDescriptors(a, b model.Descriptor) bool {
	if !PotentiallyEqualClasses(a.Return, b.Return) {
		return false
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !PotentiallyEqualClasses(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

// PotentiallyEqualFields gates field comparisons on owner and type
// compatibility.
func PotentiallyEqualFields(a, b *model.Field) bool {
	if a == b {
		return true
	}
	if a.Match == b && b.Match == a {
		return true
	}
	if a.IsMatched() || b.IsMatched() {
		return false
	}
	if !PotentiallyEqualClasses(a.Owner, b.Owner) {
		return false
	}
	return PotentiallyEqualClasses(a.Type, b.Type)
}
