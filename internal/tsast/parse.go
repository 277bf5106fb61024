package tsast

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"vantalint/internal/source"
)

// SourceExtensions are the file suffixes linted as TypeScript.
var SourceExtensions = []string{".ts", ".tsx", ".mts", ".cts"}

// IsSourceFile reports whether path has a TypeScript suffix.
func IsSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// SyntaxError is the first error or missing node of a source that did not parse cleanly.
type SyntaxError struct {
	Span    source.Span
	Message string
}

func (e *SyntaxError) Error() string { return e.Message }

func languageFor(path string) *sitter.Language {
	if strings.EqualFold(filepath.Ext(path), ".tsx") {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

// Parse parses file and converts the tree into the closed node set.
// Sources with syntax errors are rejected with a *SyntaxError.
func Parse(ctx context.Context, file *source.File) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(languageFor(file.Path))

	tree, err := parser.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(file, root)
	}

	c := &converter{
		file:  file,
		src:   file.Content,
		types: make(map[nodeKey]TypeNode),
	}
	c.visit(root, "")
	return &File{Source: file, Nodes: c.nodes}, nil
}

func syntaxError(file *source.File, root *sitter.Node) error {
	bad := firstError(root)
	if bad == nil {
		return &SyntaxError{Span: source.Span{File: file.ID}, Message: "syntax error"}
	}
	sp := source.Span{File: file.ID, Start: bad.StartByte(), End: bad.EndByte()}
	if bad.IsMissing() {
		return &SyntaxError{Span: sp, Message: fmt.Sprintf("missing %q", bad.Type())}
	}
	text := bad.Content(file.Content)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if len(text) > 40 {
		text = text[:40]
	}
	return &SyntaxError{Span: sp, Message: fmt.Sprintf("unexpected %q", text)}
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || (!c.HasError() && !c.IsMissing()) {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

type nodeKey struct {
	start, end uint32
	kind       string
}

type converter struct {
	file  *source.File
	src   []byte
	nodes []Node
	types map[nodeKey]TypeNode
}

func (c *converter) base(n *sitter.Node) base {
	return base{
		span: source.Span{File: c.file.ID, Start: n.StartByte(), End: n.EndByte()},
		kind: n.Type(),
	}
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func (c *converter) expr(n *sitter.Node) *Expr {
	if n == nil {
		return nil
	}
	return &Expr{base: c.base(n)}
}

// visit appends the visitable nodes under n in pre-order.
func (c *converter) visit(n *sitter.Node, parentKind string) {
	if node := c.convert(n, parentKind); node != nil {
		c.nodes = append(c.nodes, node)
	}
	kind := n.Type()
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil {
			c.visit(child, kind)
		}
	}
}

func (c *converter) convert(n *sitter.Node, parentKind string) Node {
	switch n.Type() {
	case "import_statement":
		src := n.ChildByFieldName("source")
		if src == nil {
			return nil
		}
		return &ImportDecl{base: c.base(n), Source: c.stringLit(src)}
	case "binary_expression":
		op := n.ChildByFieldName("operator")
		if op == nil {
			return nil
		}
		return &BinaryExpr{
			base:     c.base(n),
			Operator: c.text(op),
			Left:     c.expr(n.ChildByFieldName("left")),
			Right:    c.expr(n.ChildByFieldName("right")),
		}
	case "property_signature":
		return &PropertySignature{
			base:     c.base(n),
			Name:     c.expr(n.ChildByFieldName("name")),
			Optional: hasToken(n, "?"),
			Type:     c.annotation(n.ChildByFieldName("type")),
		}
	case "optional_parameter":
		return &Parameter{
			base:     c.base(n),
			Pattern:  c.expr(n.ChildByFieldName("pattern")),
			Optional: true,
			Type:     c.annotation(n.ChildByFieldName("type")),
		}
	case "union_type":
		if parentKind == "union_type" {
			return nil
		}
		return c.typeNode(n)
	case "arrow_function":
		return c.arrowFunction(n)
	case "type_alias_declaration":
		return &TypeAlias{
			base:  c.base(n),
			Name:  c.expr(n.ChildByFieldName("name")),
			Value: c.typeNode(n.ChildByFieldName("value")),
		}
	case "variable_declarator":
		d := &VarDeclarator{base: c.base(n), Name: c.expr(n.ChildByFieldName("name"))}
		if v := n.ChildByFieldName("value"); v != nil && v.Type() == "call_expression" {
			d.Init = c.callExpr(v)
		}
		return d
	}
	return nil
}

func (c *converter) stringLit(n *sitter.Node) *StringLit {
	raw := c.text(n)
	val := raw
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		val = raw[1 : len(raw)-1]
	}
	return &StringLit{base: c.base(n), Value: val}
}

func hasToken(n *sitter.Node, tok string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch != nil && !ch.IsNamed() && ch.Type() == tok {
			return true
		}
	}
	return false
}

func (c *converter) arrowFunction(n *sitter.Node) *ArrowFunction {
	fn := &ArrowFunction{base: c.base(n)}
	body := n.ChildByFieldName("body")
	if body == nil || body.Type() != "statement_block" {
		return fn
	}
	fn.BlockBody = true
	for i := 0; i < int(body.NamedChildCount()); i++ {
		st := body.NamedChild(i)
		if st == nil || st.Type() == "comment" {
			continue
		}
		fn.Statements = append(fn.Statements, &Stmt{base: c.base(st)})
	}
	return fn
}

func (c *converter) callExpr(n *sitter.Node) *CallExpr {
	call := &CallExpr{base: c.base(n), Callee: c.expr(n.ChildByFieldName("function"))}
	if args := n.ChildByFieldName("type_arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			if t := c.typeNode(args.NamedChild(i)); t != nil {
				call.TypeArgs = append(call.TypeArgs, t)
			}
		}
	}
	return call
}

// annotation unwraps a type_annotation (": T") into its type.
func (c *converter) annotation(n *sitter.Node) TypeNode {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return c.typeNode(n.NamedChild(0))
}

// typeNode converts a type expression. Results are memoized so the node a
// rule reaches through a parent is the same value Walk dispatches.
func (c *converter) typeNode(n *sitter.Node) TypeNode {
	if n == nil {
		return nil
	}
	key := nodeKey{start: n.StartByte(), end: n.EndByte(), kind: n.Type()}
	if t, ok := c.types[key]; ok {
		return t
	}
	t := c.buildType(n)
	c.types[key] = t
	return t
}

func (c *converter) buildType(n *sitter.Node) TypeNode {
	b := c.base(n)
	switch n.Type() {
	case "type_annotation":
		return c.annotation(n)
	case "union_type":
		return &UnionType{base: b, Members: c.flatten(n, nil)}
	case "intersection_type":
		return &IntersectionType{base: b, Members: c.flatten(n, nil)}
	case "parenthesized_type":
		var inner TypeNode
		if n.NamedChildCount() > 0 {
			inner = c.typeNode(n.NamedChild(0))
		}
		return &ParenType{base: b, Inner: inner}
	case "generic_type":
		name := n.ChildByFieldName("name")
		if name == nil {
			return &OtherType{base: b}
		}
		return &TypeRef{base: b, Name: c.text(name)}
	case "type_identifier":
		if c.text(n) == "undefined" {
			return &KeywordType{base: b, Keyword: "undefined"}
		}
		return &TypeRef{base: b, Name: c.text(n)}
	case "nested_type_identifier":
		return &TypeRef{base: b, Name: c.text(n)}
	case "predefined_type":
		return &KeywordType{base: b, Keyword: c.text(n)}
	case "literal_type":
		if txt := c.text(n); txt == "null" || txt == "undefined" {
			return &KeywordType{base: b, Keyword: txt}
		}
	}
	return &OtherType{base: b}
}

// flatten collects the operands of a left-nested union or intersection.
func (c *converter) flatten(n *sitter.Node, out []TypeNode) []TypeNode {
	kind := n.Type()
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch == nil || ch.Type() == "comment" {
			continue
		}
		if ch.Type() == kind {
			out = c.flatten(ch, out)
			continue
		}
		if t := c.typeNode(ch); t != nil {
			out = append(out, t)
		}
	}
	return out
}
