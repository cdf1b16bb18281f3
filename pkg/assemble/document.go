package assemble

// ImageDoc is the on-disk representation of one program version.
type ImageDoc struct {
	Name    string      `json:"name"`
	Classes []ClassDoc  `json:"classes"`
}

// ClassDoc describes one class and its members.
type ClassDoc struct {
	ID         string      `json:"id"`
	Access     uint32      `json:"access"`
	Parent     string      `json:"parent,omitempty"`
	Interfaces []string    `json:"interfaces,omitempty"`
	Methods    []MethodDoc `json:"methods,omitempty"`
	Fields     []FieldDoc  `json:"fields,omitempty"`
}

// MethodDoc describes one method and the edges its body carries.
type MethodDoc struct {
	Name         string      `json:"name"`
	Access       uint32      `json:"access"`
	Return       string      `json:"return"`
	Params       []string    `json:"params,omitempty"`
	Instructions []string    `json:"instructions,omitempty"`
	Calls        []MemberRef `json:"calls,omitempty"`
	FieldReads   []MemberRef `json:"fieldReads,omitempty"`
	FieldWrites  []MemberRef `json:"fieldWrites,omitempty"`
	ClassRefs    []string    `json:"classRefs,omitempty"`
}

// FieldDoc describes one field.
type FieldDoc struct {
	Name   string `json:"name"`
	Access uint32 `json:"access"`
	Type   string `json:"type"`
}

// MemberRef points at a method or field owned by some class, used to
// express call and field-access edges without duplicating the target's
// full declaration.
type MemberRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
	// Descriptor identifies a method overload; Type identifies a field by
	// its declared type. Exactly one is set depending on context.
	Descriptor string `json:"descriptor,omitempty"`
	Type       string `json:"type,omitempty"`
}
