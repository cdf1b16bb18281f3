package assemble

import (
	"fmt"

	"github.com/relabel/classmatch/pkg/model"
)

// Assembler turns one ImageDoc into a validated model.Image.
type Assembler struct {
	img *model.Image

	methodByKey map[string]*model.Method
	fieldByKey  map[string]*model.Field
}

// Build assembles doc into a model.Image and validates it against
// spec.md §3's invariants before returning it.
func Build(doc ImageDoc) (*model.Image, error) {
	a := &Assembler{
		img:         model.NewImage(doc.Name),
		methodByKey: make(map[string]*model.Method),
		fieldByKey:  make(map[string]*model.Field),
	}

	a.declareClasses(doc.Classes)
	if err := a.declareMembers(doc.Classes); err != nil {
		return nil, err
	}
	a.resolveHierarchy(doc.Classes)
	if err := a.resolveMemberEdges(doc.Classes); err != nil {
		return nil, err
	}

	if err := a.img.Validate(); err != nil {
		return nil, fmt.Errorf("assembled image %q failed validation: %w", doc.Name, err)
	}
	return a.img, nil
}

// classOf looks up a declared class by ID, creating a non-real placeholder
// the first time an edge mentions an ID phase one never declared. An empty
// ID denotes void, which the assembler models as its own placeholder class
// rather than a nil pointer so Descriptor.String() never has to special-
// case it.
func (a *Assembler) classOf(id string) *model.Class {
	if id == "" {
		id = "void"
	}
	if c, ok := a.img.Class(id); ok {
		return c
	}
	c := model.NewClass(id, 0, false)
	a.img.AddClass(c)
	return c
}

func (a *Assembler) declareClasses(classes []ClassDoc) {
	for _, cd := range classes {
		if _, exists := a.img.Class(cd.ID); exists {
			continue
		}
		a.img.AddClass(model.NewClass(cd.ID, model.AccessFlags(cd.Access), true))
	}
}

func (a *Assembler) declareMembers(classes []ClassDoc) error {
	for _, cd := range classes {
		owner, _ := a.img.Class(cd.ID)
		for _, md := range cd.Methods {
			ret := a.classOf(md.Return)
			params := make([]*model.Class, 0, len(md.Params))
			for _, p := range md.Params {
				params = append(params, a.classOf(p))
			}
			m := model.NewMethod(md.Name, model.Descriptor{Return: ret, Params: params}, model.AccessFlags(md.Access), true)
			for _, ins := range md.Instructions {
				m.Instructions = append(m.Instructions, model.Instruction{Op: model.ParseOpcode(ins)})
			}
			// AddMethod links m into its return/parameter types'
			// MethodTypeRefs, feeding the referenced classes' InClassRefs.
			owner.AddMethod(m)
			a.methodByKey[methodKey(cd.ID, md.Name, m.Descriptor.String())] = m
		}
		for _, fd := range cd.Fields {
			typ := a.classOf(fd.Type)
			f := model.NewField(fd.Name, typ, model.AccessFlags(fd.Access), true)
			owner.AddField(f)
			a.fieldByKey[fieldKey(cd.ID, fd.Name, typ.ID)] = f
		}
	}
	return nil
}

func (a *Assembler) resolveHierarchy(classes []ClassDoc) {
	for _, cd := range classes {
		c, _ := a.img.Class(cd.ID)
		if cd.Parent != "" {
			a.classOf(cd.Parent).AddChild(c)
		}
		for _, ifaceID := range cd.Interfaces {
			c.AddInterface(a.classOf(ifaceID))
		}
	}
}

func (a *Assembler) resolveMemberEdges(classes []ClassDoc) error {
	for _, cd := range classes {
		c, _ := a.img.Class(cd.ID)
		if len(c.MethodOrder) < len(cd.Methods) {
			return fmt.Errorf("internal: class %s lost methods during assembly", cd.ID)
		}
		for idx, md := range cd.Methods {
			m := c.MethodOrder[idx]
			for _, ref := range md.Calls {
				callee, err := a.lookupMethod(ref)
				if err != nil {
					return err
				}
				m.AddCall(callee)
			}
			for _, ref := range md.FieldReads {
				f, err := a.lookupField(ref)
				if err != nil {
					return err
				}
				m.AddFieldRead(f)
			}
			for _, ref := range md.FieldWrites {
				f, err := a.lookupField(ref)
				if err != nil {
					return err
				}
				m.AddFieldWrite(f)
			}
			for _, refID := range md.ClassRefs {
				m.AddClassRef(a.classOf(refID))
			}
		}
	}
	return nil
}

func (a *Assembler) lookupMethod(ref MemberRef) (*model.Method, error) {
	key := methodKey(ref.Owner, ref.Name, ref.Descriptor)
	if m, ok := a.methodByKey[key]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("unresolved method reference %s.%s%s", ref.Owner, ref.Name, ref.Descriptor)
}

func (a *Assembler) lookupField(ref MemberRef) (*model.Field, error) {
	key := fieldKey(ref.Owner, ref.Name, ref.Type)
	if f, ok := a.fieldByKey[key]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unresolved field reference %s.%s:%s", ref.Owner, ref.Name, ref.Type)
}

func methodKey(owner, name, descriptor string) string {
	return owner + "#" + name + descriptor
}

func fieldKey(owner, name, typ string) string {
	return owner + "#" + name + ":" + typ
}
