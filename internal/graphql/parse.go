package graphql

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"vantalint/internal/source"
)

// SyntaxError is a schema parse failure located in the file.
type SyntaxError struct {
	Span    source.Span
	Message string
}

func (e *SyntaxError) Error() string { return e.Message }

// Parse parses file as an SDL document and converts it into the closed node set.
func Parse(file *source.File) (*Document, error) {
	src := &ast.Source{Name: file.Path, Input: string(file.Content)}
	sd, err := parser.ParseSchema(src)
	if err != nil {
		return nil, syntaxError(file, err)
	}
	return convertDocument(file, sd), nil
}

func syntaxError(file *source.File, err error) error {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		sp := source.Span{File: file.ID}
		if len(gqlErr.Locations) > 0 {
			loc := gqlErr.Locations[0]
			off := lineColOffset(file, loc.Line, loc.Column)
			sp.Start, sp.End = off, off
		}
		return &SyntaxError{Span: sp, Message: gqlErr.Message}
	}
	return &SyntaxError{Span: source.Span{File: file.ID}, Message: err.Error()}
}

// lineColOffset converts a 1-based line and rune column into a byte offset.
func lineColOffset(file *source.File, line, col int) uint32 {
	if line <= 1 {
		return file.ByteOffset(col - 1)
	}
	if line-2 >= len(file.LineIdx) {
		return uint32(len(file.Content)) // #nosec G115 -- bounded by FileSet.Add
	}
	lineStart := int(file.LineIdx[line-2]) + 1
	runeStart := len([]rune(string(file.Content[:lineStart])))
	return file.ByteOffset(runeStart + col - 1)
}

type converter struct {
	file *source.File
}

func convertDocument(file *source.File, sd *ast.SchemaDocument) *Document {
	c := &converter{file: file}
	doc := &Document{
		base: base{span: source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))}}, // #nosec G115
		File: file,
	}

	type entry struct {
		def *ast.Definition
		ext bool
	}
	entries := make([]entry, 0, len(sd.Definitions)+len(sd.Extensions))
	for _, d := range sd.Definitions {
		entries = append(entries, entry{def: d})
	}
	for _, d := range sd.Extensions {
		entries = append(entries, entry{def: d, ext: true})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return posStart(entries[i].def.Position) < posStart(entries[j].def.Position)
	})

	for _, e := range entries {
		doc.Definitions = append(doc.Definitions, c.definition(e.def, e.ext))
	}
	return doc
}

func posStart(p *ast.Position) int {
	if p == nil {
		return 0
	}
	return p.Start
}

func (c *converter) definition(d *ast.Definition, ext bool) Definition {
	td := typeDef{
		base:       base{span: c.nameSpan(d.Position, d.Name)},
		Name:       d.Name,
		Directives: c.directives(d.Directives),
	}

	switch {
	case d.Kind == ast.Object && !ext:
		def := &ObjectTypeDefinition{typeDef: td, Interfaces: c.names(d.Interfaces, td.span)}
		def.Fields = c.fields(d.Fields, def)
		return def
	case d.Kind == ast.Object:
		def := &ObjectTypeExtension{typeDef: td, Interfaces: c.names(d.Interfaces, td.span)}
		def.Fields = c.fields(d.Fields, def)
		return def
	case ext:
		def := &TypeExtension{typeDef: td, Kind: string(d.Kind)}
		if d.Kind == ast.Interface {
			def.Fields = c.fields(d.Fields, def)
		}
		return def
	}

	switch d.Kind {
	case ast.Interface:
		def := &InterfaceTypeDefinition{typeDef: td, Interfaces: c.names(d.Interfaces, td.span)}
		def.Fields = c.fields(d.Fields, def)
		return def
	case ast.Union:
		return &UnionTypeDefinition{typeDef: td, Types: c.names(d.Types, td.span)}
	case ast.Enum:
		def := &EnumTypeDefinition{typeDef: td}
		for _, v := range d.EnumValues {
			def.Values = append(def.Values, v.Name)
		}
		return def
	case ast.Scalar:
		return &ScalarTypeDefinition{typeDef: td}
	case ast.InputObject:
		def := &InputObjectTypeDefinition{typeDef: td}
		for _, f := range d.Fields {
			def.Fields = append(def.Fields, c.inputValue(f.Name, f.Type, f.Directives, f.Position))
		}
		return def
	}
	panic(fmt.Sprintf("graphql: unexpected definition kind %q", d.Kind))
}

func (c *converter) fields(list ast.FieldList, parent Definition) []*FieldDefinition {
	out := make([]*FieldDefinition, 0, len(list))
	for _, f := range list {
		fd := &FieldDefinition{
			base:       base{span: c.nameSpan(f.Position, f.Name)},
			Name:       f.Name,
			Type:       c.typeExpr(f.Type),
			Directives: c.directives(f.Directives),
			Parent:     parent,
		}
		for _, a := range f.Arguments {
			fd.Arguments = append(fd.Arguments, c.inputValue(a.Name, a.Type, a.Directives, a.Position))
		}
		out = append(out, fd)
	}
	return out
}

func (c *converter) inputValue(name string, t *ast.Type, dirs ast.DirectiveList, pos *ast.Position) *InputValue {
	return &InputValue{
		base:       base{span: c.nameSpan(pos, name)},
		Name:       name,
		Type:       c.typeExpr(t),
		Directives: c.directives(dirs),
	}
}

func (c *converter) directives(list ast.DirectiveList) []*Directive {
	if len(list) == 0 {
		return nil
	}
	out := make([]*Directive, 0, len(list))
	for _, d := range list {
		out = append(out, &Directive{base: base{span: c.nameSpan(d.Position, d.Name)}, Name: d.Name})
	}
	return out
}

// names converts bare type names (interfaces, union members), which carry no
// position of their own, anchoring them at the owning definition.
func (c *converter) names(list []string, at source.Span) []*NamedType {
	out := make([]*NamedType, 0, len(list))
	for _, n := range list {
		out = append(out, &NamedType{base: base{span: at}, Name: n})
	}
	return out
}

// typeExpr turns gqlparser's flag-based type into the recursive form.
func (c *converter) typeExpr(t *ast.Type) TypeExpr {
	if t == nil {
		return nil
	}
	sp := c.typeSpan(t)
	var inner TypeExpr
	if t.Elem != nil {
		inner = &ListType{base: base{span: sp}, Elem: c.typeExpr(t.Elem)}
	} else {
		inner = &NamedType{base: base{span: sp}, Name: t.NamedType}
	}
	if t.NonNull {
		return &NonNullType{base: base{span: sp}, Elem: inner}
	}
	return inner
}

func (c *converter) typeSpan(t *ast.Type) source.Span {
	if t.Position == nil {
		return source.Span{File: c.file.ID}
	}
	start := c.file.ByteOffset(t.Position.Start)
	end := c.file.ByteOffset(t.Position.End)
	if end < start {
		end = start
	}
	return source.Span{File: c.file.ID, Start: start, End: end}
}

// nameSpan locates name starting at pos. Field and argument positions may
// point at a leading description string, which is skipped.
func (c *converter) nameSpan(pos *ast.Position, name string) source.Span {
	if pos == nil {
		return source.Span{File: c.file.ID}
	}
	content := c.file.Content
	off := int(c.file.ByteOffset(pos.Start))
	off = skipDescription(content, off)
	if name != "" && off < len(content) {
		// имя ищем целым токеном, а не подстрокой
		window := content[off:min(off+256, len(content))]
		if i := indexName(window, name); i >= 0 {
			start := off + i
			return source.Span{File: c.file.ID, Start: uint32(start), End: uint32(start + len(name))} // #nosec G115
		}
	}
	start := c.file.ByteOffset(pos.Start)
	return source.Span{File: c.file.ID, Start: start, End: start}
}

// indexName returns the offset of the first occurrence of name in b that
// stands on identifier boundaries, or -1.
func indexName(b []byte, name string) int {
	for from := 0; from < len(b); {
		i := bytes.Index(b[from:], []byte(name))
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(name)
		if (i == 0 || !isNameByte(b[i-1])) && (end == len(b) || !isNameByte(b[end])) {
			return i
		}
		from = i + 1
	}
	return -1
}

func isNameByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func skipDescription(content []byte, off int) int {
	if off >= len(content) || content[off] != '"' {
		return off
	}
	if off+3 <= len(content) && string(content[off:off+3]) == `"""` {
		i := off + 3
		for i+3 <= len(content) {
			if content[i] == '\\' && i+4 <= len(content) && string(content[i+1:i+4]) == `"""` {
				i += 4
				continue
			}
			if string(content[i:i+3]) == `"""` {
				return skipIgnored(content, i+3)
			}
			i++
		}
		return off
	}
	for i := off + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '"':
			return skipIgnored(content, i+1)
		case '\n':
			return off
		}
	}
	return off
}

// skipIgnored skips whitespace, commas and comments.
func skipIgnored(content []byte, i int) int {
	for i < len(content) {
		switch content[i] {
		case ' ', '\t', '\n', '\r', ',':
			i++
		case '#':
			for i < len(content) && content[i] != '\n' {
				i++
			}
		default:
			return i
		}
	}
	return i
}
