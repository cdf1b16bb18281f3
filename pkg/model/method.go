package model

// Method is owned by exactly one class.
type Method struct {
	Name       string
	Descriptor Descriptor
	Access     AccessFlags
	Owner      *Class
	Real       bool

	Instructions []Instruction

	RefsOut        map[*Method]struct{}
	RefsIn         map[*Method]struct{}
	FieldReadRefs  map[*Field]struct{}
	FieldWriteRefs map[*Field]struct{}
	ClassRefs      map[*Class]struct{}

	Match           *Method
	MatchSimilarity float64
	MatchLevel      Level
}

// NewMethod constructs an empty method ready for the assembler to populate.
func NewMethod(name string, descriptor Descriptor, access AccessFlags, real bool) *Method {
	return &Method{
		Name:           name,
		Descriptor:     descriptor,
		Access:         access,
		Real:           real,
		RefsOut:        make(map[*Method]struct{}),
		RefsIn:         make(map[*Method]struct{}),
		FieldReadRefs:  make(map[*Field]struct{}),
		FieldWriteRefs: make(map[*Field]struct{}),
		ClassRefs:      make(map[*Class]struct{}),
	}
}

// IsMatched reports whether this method has a committed partner.
func (m *Method) IsMatched() bool {
	return m.Match != nil
}

// AddCall records m calling callee, keeping both reference sets consistent
// per spec invariant 1.
func (m *Method) AddCall(callee *Method) {
	m.RefsOut[callee] = struct{}{}
	callee.RefsIn[m] = struct{}{}
}

// AddFieldRead records m reading f, keeping both sides of the edge
// consistent.
func (m *Method) AddFieldRead(f *Field) {
	m.FieldReadRefs[f] = struct{}{}
	f.Readers[m] = struct{}{}
}

// AddFieldWrite records m writing f, keeping both sides of the edge
// consistent.
func (m *Method) AddFieldWrite(f *Field) {
	m.FieldWriteRefs[f] = struct{}{}
	f.Writers[m] = struct{}{}
}

// AddClassRef records that m's body mentions c. It does not touch
// c.MethodTypeRefs: Class.AddMethod maintains those from m's descriptor,
// since not every class mention is a type reference.
func (m *Method) AddClassRef(c *Class) {
	m.ClassRefs[c] = struct{}{}
}
