package graphql

import "fmt"

// IsListType reports whether t is a list once any non-null wrapper is removed.
// It does not look inside the list.
func IsListType(t TypeExpr) bool {
	if nn, ok := t.(*NonNullType); ok {
		t = nn.Elem
	}
	_, ok := t.(*ListType)
	return ok
}

// ExtractNamedType strips every list and non-null modifier and returns the
// underlying named type. Any other shape is malformed and yields an error.
func ExtractNamedType(t TypeExpr) (*NamedType, error) {
	switch t := t.(type) {
	case *NamedType:
		if t == nil {
			return nil, fmt.Errorf("graphql: nil named type")
		}
		return t, nil
	case *ListType:
		if t == nil {
			return nil, fmt.Errorf("graphql: nil list type")
		}
		return ExtractNamedType(t.Elem)
	case *NonNullType:
		if t == nil {
			return nil, fmt.Errorf("graphql: nil non-null type")
		}
		return ExtractNamedType(t.Elem)
	case nil:
		return nil, fmt.Errorf("graphql: missing type expression")
	default:
		return nil, fmt.Errorf("graphql: unexpected type expression %T", t)
	}
}

// TypeString renders t in SDL notation, e.g. "[Foo!]!".
func TypeString(t TypeExpr) string {
	switch t := t.(type) {
	case *NamedType:
		return t.Name
	case *ListType:
		return "[" + TypeString(t.Elem) + "]"
	case *NonNullType:
		return TypeString(t.Elem) + "!"
	}
	return "<invalid>"
}
