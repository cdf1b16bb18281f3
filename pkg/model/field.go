package model

// Field is owned by exactly one class.
type Field struct {
	Name   string
	Type   *Class
	Access AccessFlags
	Owner  *Class
	Real   bool

	Readers map[*Method]struct{}
	Writers map[*Method]struct{}

	Match           *Field
	MatchSimilarity float64
	MatchLevel      Level
}

// NewField constructs an empty field ready for the assembler to populate.
func NewField(name string, typ *Class, access AccessFlags, real bool) *Field {
	return &Field{
		Name:    name,
		Type:    typ,
		Access:  access,
		Real:    real,
		Readers: make(map[*Method]struct{}),
		Writers: make(map[*Method]struct{}),
	}
}

// IsMatched reports whether this field has a committed partner.
func (f *Field) IsMatched() bool {
	return f.Match != nil
}
