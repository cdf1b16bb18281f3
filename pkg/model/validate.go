package model

import "fmt"

// InconsistencyError reports a violation of the spec.md §3 invariants found
// while validating an assembled image. The matcher driver wraps this as a
// fatal ImageInconsistent error (see pkg/match/errors.go) with enough
// context to reproduce, per spec.md §7.
type InconsistencyError struct {
	Image string
	Rule  string
	Why   string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("image %q violates invariant %s: %s", e.Image, e.Rule, e.Why)
}

// Validate checks spec.md §3 invariants 1, 2 and 4 against the fully
// assembled image. It is the hook an assembler calls after populating an
// image, and the hook the matcher driver calls before a run. Invariant 3
// (unique member keys) is not checked: Class.Methods and Class.Fields are
// maps keyed by (name, descriptor) and (name, type), so a second member
// with the same key replaces the first in the map and is not reported.
func (img *Image) Validate() error {
	if err := img.validateEdgeSymmetry(); err != nil {
		return err
	}
	if err := img.validateForests(); err != nil {
		return err
	}
	if err := img.validateRealEntities(); err != nil {
		return err
	}
	return nil
}

func (img *Image) validateEdgeSymmetry() error {
	for _, c := range img.Classes {
		for _, m := range c.Methods {
			for callee := range m.RefsOut {
				if _, ok := callee.RefsIn[m]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s calls %s.%s but reverse edge is missing", c.ID, m.Name, calleeOwner(callee), callee.Name)}
				}
			}
			for caller := range m.RefsIn {
				if _, ok := caller.RefsOut[m]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s is called by %s.%s but reverse edge is missing", c.ID, m.Name, calleeOwner(caller), caller.Name)}
				}
			}
			for f := range m.FieldReadRefs {
				if _, ok := f.Readers[m]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s reads %s.%s but reverse edge is missing", c.ID, m.Name, fieldOwner(f), f.Name)}
				}
			}
			for f := range m.FieldWriteRefs {
				if _, ok := f.Writers[m]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s writes %s.%s but reverse edge is missing", c.ID, m.Name, fieldOwner(f), f.Name)}
				}
			}
		}
		for _, f := range c.Fields {
			for m := range f.Readers {
				if _, ok := m.FieldReadRefs[f]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s has reader %s.%s but reverse edge is missing", c.ID, f.Name, calleeOwner(m), m.Name)}
				}
			}
			for m := range f.Writers {
				if _, ok := m.FieldWriteRefs[f]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s has writer %s.%s but reverse edge is missing", c.ID, f.Name, calleeOwner(m), m.Name)}
				}
			}
		}
		for _, iface := range c.Interfaces {
			if _, ok := iface.Implementers[c.ID]; !ok {
				return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s declares interface %s but reverse implementer edge is missing", c.ID, iface.ID)}
			}
		}
		for _, impl := range c.Implementers {
			if _, ok := impl.Interfaces[c.ID]; !ok {
				return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s lists %s as an implementer but %s does not declare %s as an interface", c.ID, impl.ID, impl.ID, c.ID)}
			}
		}
		for _, child := range c.Children {
			if child.Parent != c {
				return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s lists %s as a child but child.Parent does not point back", c.ID, child.ID)}
			}
		}
		for m := range c.MethodTypeRefs {
			if !descriptorMentions(m.Descriptor, c) {
				return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s is in %s's MethodTypeRefs but its descriptor does not mention %s", calleeOwner(m), m.Name, c.ID, c.ID)}
			}
		}
		for f := range c.FieldTypeRefs {
			if f.Type != c {
				return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s is in %s's FieldTypeRefs but its declared type is %s", fieldOwner(f), f.Name, c.ID, typeID(f.Type))}
			}
		}
		for _, m := range c.Methods {
			if m.Descriptor.Return != nil {
				if _, ok := m.Descriptor.Return.MethodTypeRefs[m]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s returns %s but is missing from its MethodTypeRefs", c.ID, m.Name, m.Descriptor.Return.ID)}
				}
			}
			for _, p := range m.Descriptor.Params {
				if p == nil {
					continue
				}
				if _, ok := p.MethodTypeRefs[m]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s takes a %s parameter but is missing from its MethodTypeRefs", c.ID, m.Name, p.ID)}
				}
			}
		}
		for _, f := range c.Fields {
			if f.Type != nil {
				if _, ok := f.Type.FieldTypeRefs[f]; !ok {
					return &InconsistencyError{img.Name, "3.1", fmt.Sprintf("%s.%s has type %s but is missing from its FieldTypeRefs", c.ID, f.Name, f.Type.ID)}
				}
			}
		}
	}
	return nil
}

// descriptorMentions reports whether d's return type or any parameter is cls.
func descriptorMentions(d Descriptor, cls *Class) bool {
	if d.Return == cls {
		return true
	}
	for _, p := range d.Params {
		if p == cls {
			return true
		}
	}
	return false
}

func typeID(cls *Class) string {
	if cls == nil {
		return "?"
	}
	return cls.ID
}

func (img *Image) validateForests() error {
	for _, c := range img.Classes {
		seen := map[*Class]struct{}{}
		for p := c.Parent; p != nil; p = p.Parent {
			if _, ok := seen[p]; ok {
				return &InconsistencyError{img.Name, "3.2", fmt.Sprintf("cycle detected in parent chain starting at %s", c.ID)}
			}
			seen[p] = struct{}{}
		}
	}
	for _, c := range img.Classes {
		if err := detectInterfaceCycle(c, map[*Class]struct{}{}, img.Name); err != nil {
			return err
		}
	}
	return nil
}

// detectInterfaceCycle walks c's declared interfaces depth-first, failing
// if it revisits a class already on the current path. visiting is the set
// of ancestors on the current path, not every class seen overall, so
// legitimate diamonds (two classes implementing a shared interface) do not
// trip it.
func detectInterfaceCycle(c *Class, visiting map[*Class]struct{}, imgName string) error {
	if _, ok := visiting[c]; ok {
		return &InconsistencyError{imgName, "3.2", fmt.Sprintf("cycle detected in interface graph starting at %s", c.ID)}
	}
	visiting[c] = struct{}{}
	defer delete(visiting, c)

	for _, iface := range c.Interfaces {
		if err := detectInterfaceCycle(iface, visiting, imgName); err != nil {
			return err
		}
	}
	return nil
}

func (img *Image) validateRealEntities() error {
	for _, c := range img.Classes {
		if !c.Real && len(c.Methods)+len(c.Fields) > 0 {
			return &InconsistencyError{img.Name, "3.4", fmt.Sprintf("non-real class %s carries a body", c.ID)}
		}
		for _, m := range c.Methods {
			if !m.Real && len(m.Instructions) > 0 {
				return &InconsistencyError{img.Name, "3.4", fmt.Sprintf("non-real method %s.%s carries a body", c.ID, m.Name)}
			}
		}
	}
	return nil
}

func calleeOwner(m *Method) string {
	if m.Owner == nil {
		return "?"
	}
	return m.Owner.ID
}

func fieldOwner(f *Field) string {
	if f.Owner == nil {
		return "?"
	}
	return f.Owner.ID
}
