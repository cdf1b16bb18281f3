package classify

import "github.com/relabel/classmatch/pkg/model"

// Framework bundles the three entity-kind registries the matcher driver
// consults, mirroring the teacher's Classifier+Rules aggregator
// (pkg/analysis/rules/rules.go) at the package boundary.
type Framework struct {
	Classes *ClassRegistry
	Methods *MethodRegistry
	Fields  *FieldRegistry
}

// secondaryUp is the level set {SECONDARY, EXTRA, FINAL} spec.md §4.2 uses
// to gate the member-level reference features.
var secondaryUp = []model.Level{model.Secondary, model.Extra, model.Final}

// DefaultWeights are the spec.md §4.2 design-default weights, overridable
// per feature name via FeatureWeights in internal/config.
func DefaultWeights() map[string]int {
	return map[string]int{
		"class-type-check":        20,
		"hierarchy-depth":         1,
		"parent-class":            4,
		"child-classes":           3,
		"interfaces":              3,
		"implementers":            2,
		"method-count":            3,
		"field-count":             3,
		"hierarchy-siblings":      2,
		"similar-methods":        10,
		"out-references":         6,
		"in-references":          6,
		"method-out-references":  6,
		"method-in-references":   6,
		"field-read-references":  5,
		"field-write-references": 5,

		"owner-match":         5,
		"return-type":         8,
		"parameter-types":     10,
		"method-access-flags": 4,
		"callers":             6,
		"callees":             6,
		"field-reads":         5,
		"field-writes":        5,
		"instruction-count":   6,
		"bytecode-sequence":   8,

		"field-owner-match":  5,
		"field-type":         10,
		"field-access-flags": 4,
		"readers":            6,
		"writers":            6,
	}
}

func weightFor(overrides map[string]int, defaults map[string]int, name string) int {
	if overrides != nil {
		if w, ok := overrides[name]; ok {
			return w
		}
	}
	return defaults[name]
}

// NewFramework builds a Framework with every spec.md §4.2 feature
// registered at its design-default weight, overridden per-name by
// weightOverrides (nil for pure defaults).
func NewFramework(weightOverrides map[string]int) *Framework {
	defaults := DefaultWeights()
	w := func(name string) int { return weightFor(weightOverrides, defaults, name) }

	classes := NewClassRegistry()
	classes.Register(ClassTypeCheck{}, w("class-type-check"))
	classes.Register(HierarchyDepth{}, w("hierarchy-depth"))
	classes.Register(ParentClass{}, w("parent-class"))
	classes.Register(ChildClasses{}, w("child-classes"))
	classes.Register(Interfaces{}, w("interfaces"))
	classes.Register(Implementers{}, w("implementers"))
	classes.Register(MethodCount{}, w("method-count"))
	classes.Register(FieldCount{}, w("field-count"))
	classes.Register(HierarchySiblings{}, w("hierarchy-siblings"))
	classes.Register(SimilarMethods{}, w("similar-methods"))
	classes.Register(OutReferences{}, w("out-references"))
	classes.Register(InReferences{}, w("in-references"))
	classes.Register(MethodOutReferences{}, w("method-out-references"), secondaryUp...)
	classes.Register(MethodInReferences{}, w("method-in-references"), secondaryUp...)
	classes.Register(FieldReadReferences{}, w("field-read-references"), secondaryUp...)
	classes.Register(FieldWriteReferences{}, w("field-write-references"), secondaryUp...)

	methods := NewMethodRegistry()
	methods.Register(OwnerMatch{}, w("owner-match"))
	methods.Register(ReturnType{}, w("return-type"))
	methods.Register(ParameterTypes{}, w("parameter-types"))
	methods.Register(MethodAccessFlags{}, w("method-access-flags"))
	methods.Register(Callers{}, w("callers"))
	methods.Register(Callees{}, w("callees"))
	methods.Register(FieldReads{}, w("field-reads"))
	methods.Register(FieldWrites{}, w("field-writes"))
	methods.Register(InstructionCount{}, w("instruction-count"))
	methods.Register(BytecodeSequence{}, w("bytecode-sequence"), secondaryUp...)

	fields := NewFieldRegistry()
	fields.Register(FieldOwnerMatch{}, w("field-owner-match"))
	fields.Register(FieldType{}, w("field-type"))
	fields.Register(FieldAccessFlags{}, w("field-access-flags"))
	fields.Register(Readers{}, w("readers"))
	fields.Register(Writers{}, w("writers"))

	return &Framework{Classes: classes, Methods: methods, Fields: fields}
}
