package graphql

import "fmt"

// Walk dispatches the document to v: the Document handler first, then every
// definition in source order, each followed by its fields in declaration
// order. The first handler error stops the walk.
func Walk(v *Visitor, p *Pass, doc *Document) error {
	if v.Document != nil {
		if err := v.Document(p, doc); err != nil {
			return err
		}
	}
	for _, def := range doc.Definitions {
		if err := visitDefinition(v, p, def); err != nil {
			return err
		}
	}
	return nil
}

func visitDefinition(v *Visitor, p *Pass, def Definition) error {
	var fields []*FieldDefinition

	switch d := def.(type) {
	case *ObjectTypeDefinition:
		if v.ObjectTypeDefinition != nil {
			if err := v.ObjectTypeDefinition(p, d); err != nil {
				return err
			}
		}
		fields = d.Fields
	case *ObjectTypeExtension:
		if v.ObjectTypeExtension != nil {
			if err := v.ObjectTypeExtension(p, d); err != nil {
				return err
			}
		}
		fields = d.Fields
	case *InterfaceTypeDefinition:
		if v.InterfaceTypeDefinition != nil {
			if err := v.InterfaceTypeDefinition(p, d); err != nil {
				return err
			}
		}
		fields = d.Fields
	case *UnionTypeDefinition:
		if v.UnionTypeDefinition != nil {
			return v.UnionTypeDefinition(p, d)
		}
	case *EnumTypeDefinition:
		if v.EnumTypeDefinition != nil {
			return v.EnumTypeDefinition(p, d)
		}
	case *ScalarTypeDefinition:
		if v.ScalarTypeDefinition != nil {
			return v.ScalarTypeDefinition(p, d)
		}
	case *InputObjectTypeDefinition:
		if v.InputObjectTypeDefinition != nil {
			return v.InputObjectTypeDefinition(p, d)
		}
	case *TypeExtension:
		if v.TypeExtension != nil {
			if err := v.TypeExtension(p, d); err != nil {
				return err
			}
		}
		fields = d.Fields
	default:
		panic(fmt.Sprintf("graphql: unhandled definition %T", def))
	}

	if v.FieldDefinition == nil {
		return nil
	}
	for _, f := range fields {
		if err := v.FieldDefinition(p, f); err != nil {
			return err
		}
	}
	return nil
}

// EachTypeDefinition calls fn for every definition that is not an extension.
// Rules that treat all kinds alike ("names ending in Payload") use it from a
// Document handler.
func EachTypeDefinition(doc *Document, fn func(Definition) error) error {
	for _, def := range doc.Definitions {
		switch def.(type) {
		case *ObjectTypeExtension, *TypeExtension:
			continue
		}
		if err := fn(def); err != nil {
			return err
		}
	}
	return nil
}
