package model

import "sync"

// Class is an owner-less top-level entity in a program image.
//
// Match and MatchSimilarity/MatchLevel form the "per-entity mutable slot"
// spec.md §3 describes: the driver writes these once a commit happens and
// never revokes them within a run. They are read by compare.* to treat an
// already-matched pair as matching without re-deriving it from the store.
type Class struct {
	ID     string
	Access AccessFlags
	Real   bool

	Parent       *Class
	Children     map[string]*Class
	Interfaces   map[string]*Class
	Implementers map[string]*Class

	Methods map[MethodKey]*Method
	Fields  map[FieldKey]*Field

	// MethodOrder preserves declaration order, which the similar-methods
	// feature (spec.md §4.2) iterates over deterministically; Go map
	// iteration order is not declaration order.
	MethodOrder []*Method

	// MethodTypeRefs / FieldTypeRefs hold members elsewhere whose declared
	// type (return, parameter, or field type) references this class.
	MethodTypeRefs map[*Method]struct{}
	FieldTypeRefs  map[*Field]struct{}

	Match           *Class
	MatchSimilarity float64
	MatchLevel      Level

	// refsMu guards refsCache: the matcher ranks candidates from several
	// goroutines at once (pkg/match.rankConcurrently), and two of them can
	// call the same candidate's aggregated-ref getters concurrently.
	refsMu    sync.Mutex
	refsCache *classRefCache
}

// NewClass constructs an empty class ready for the assembler to populate.
func NewClass(id string, access AccessFlags, real bool) *Class {
	return &Class{
		ID:             id,
		Access:         access,
		Real:           real,
		Children:       make(map[string]*Class),
		Interfaces:     make(map[string]*Class),
		Implementers:   make(map[string]*Class),
		Methods:        make(map[MethodKey]*Method),
		Fields:         make(map[FieldKey]*Field),
		MethodTypeRefs: make(map[*Method]struct{}),
		FieldTypeRefs:  make(map[*Field]struct{}),
	}
}

// IsMatched reports whether this class has a committed partner.
func (c *Class) IsMatched() bool {
	return c.Match != nil
}

// HierarchyDepth returns the number of ancestors above this class.
func (c *Class) HierarchyDepth() int {
	depth := 0
	for p := c.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// AddChild links c as the parent of child, keeping both sides of the edge
// consistent per spec invariant 1.
func (c *Class) AddChild(child *Class) {
	child.Parent = c
	c.Children[child.ID] = child
}

// AddInterface links c as implementing iface, keeping both sides consistent.
func (c *Class) AddInterface(iface *Class) {
	c.Interfaces[iface.ID] = iface
	iface.Implementers[c.ID] = c
}

// AddMethod registers a method under its owner, keying by (name, descriptor)
// and linking the method into its declared return/parameter types'
// MethodTypeRefs, keeping both sides of the edge consistent per spec
// invariant 1.
func (c *Class) AddMethod(m *Method) {
	m.Owner = c
	c.Methods[MethodKey{Name: m.Name, Descriptor: m.Descriptor.String()}] = m
	c.MethodOrder = append(c.MethodOrder, m)

	if m.Descriptor.Return != nil {
		m.Descriptor.Return.MethodTypeRefs[m] = struct{}{}
	}
	for _, p := range m.Descriptor.Params {
		if p != nil {
			p.MethodTypeRefs[m] = struct{}{}
		}
	}
}

// AddField registers a field under its owner, keying by (name, type) and
// linking the field into its declared type's FieldTypeRefs.
func (c *Class) AddField(f *Field) {
	f.Owner = c
	c.Fields[FieldKey{Name: f.Name, Type: f.Type.ID}] = f

	if f.Type != nil {
		f.Type.FieldTypeRefs[f] = struct{}{}
	}
}
