package model

// Image is a fully assembled in-memory representation of one program
// version, as delivered by the external assembler component (spec.md §6).
type Image struct {
	Name    string
	Classes map[string]*Class
}

// NewImage creates an empty image. The assembler populates it and calls
// Validate before handing it to the matcher driver.
func NewImage(name string) *Image {
	return &Image{Name: name, Classes: make(map[string]*Class)}
}

// AddClass registers c in the image, keyed by its identifier.
func (img *Image) AddClass(c *Class) {
	img.Classes[c.ID] = c
}

// Class looks up a class by identifier.
func (img *Image) Class(id string) (*Class, bool) {
	c, ok := img.Classes[id]
	return c, ok
}

// RealClasses returns every class in the image with Real == true, in map
// iteration order, which is not stable; callers that need determinism sort
// by ID (the matcher driver does this at the point it builds a worklist).
func (img *Image) RealClasses() []*Class {
	out := make([]*Class, 0, len(img.Classes))
	for _, c := range img.Classes {
		if c.Real {
			out = append(out, c)
		}
	}
	return out
}
