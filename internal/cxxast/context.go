package cxxast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"cxxbind/internal/ir"
)

// ASTContext is the frontend facade the Importer talks to instead of a real
// clang::ASTContext: it owns the parsed translation units, the interned
// DeclID space, and the per-file comment lists.
type ASTContext struct {
	SourceMgr *SourceManager

	nextID   ir.DeclID
	byID     map[ir.DeclID]Decl
	comments map[FileID][]RawComment
}

func NewASTContext() *ASTContext {
	return &ASTContext{
		SourceMgr: NewSourceManager(),
		byID:      make(map[ir.DeclID]Decl),
		comments:  make(map[FileID][]RawComment),
	}
}

// intern assigns d a stable DeclID and records its full source range —
// n.StartPoint() through n.EndPoint() — so that resolve.FreeComments can
// tell a comment nested inside d's body from one that merely follows it.
func (c *ASTContext) intern(d Decl, base *declBase, n *sitter.Node, file FileID) {
	c.nextID++
	base.id = c.nextID
	base.loc = c.loc(n.StartPoint(), file)
	base.endLoc = c.loc(n.EndPoint(), file)
	c.byID[c.nextID] = d
}

// LookupDecl mirrors the original importer's known_type_decls_ /
// lookup_cache_ maps: once a Decl has been imported (or provisionally
// registered), later references resolve to the same DeclID.
func (c *ASTContext) LookupDecl(id ir.DeclID) (Decl, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Comments returns every raw comment collected for file (doc comments
// included), ordered by position; resolve.FreeComments filters them.
func (c *ASTContext) Comments(file FileID) []RawComment {
	return c.comments[file]
}

// DocComment returns the doc comment immediately preceding a declaration at
// loc, or "" if none was found.
func (c *ASTContext) DocComment(loc SourceLocation) string {
	return docCommentFor(c.comments[loc.File], loc)
}

// ParseFile parses one C++ header's source into a TranslationUnitDecl,
// populating this context's comment table and DeclID space as a side
// effect. It never returns an error for malformed input — tree-sitter is
// an error-tolerant parser, and any node it cannot make sense of is simply
// dropped, matching the walker's silently-skip failure mode for
// constructs the importer does not recognize.
func (c *ASTContext) ParseFile(path string, source []byte, file FileID) (*TranslationUnitDecl, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	root := tree.RootNode()

	c.collectComments(root, source, file)

	tu := &TranslationUnitDecl{File: file}
	c.intern(tu, &tu.declBase, root, file)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		if d := c.importTopLevel(root.NamedChild(i), source, file); d != nil {
			tu.Decls = append(tu.Decls, d)
		}
	}
	return tu, nil
}

func (c *ASTContext) loc(p sitter.Point, file FileID) SourceLocation {
	return SourceLocation{File: file, Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func (c *ASTContext) collectComments(root *sitter.Node, source []byte, file FileID) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "comment" {
			c.comments[file] = append(c.comments[file], RawComment{
				Text: n.Content(source),
				Range: SourceRange{
					Begin: c.loc(n.StartPoint(), file),
					End:   c.loc(n.EndPoint(), file),
				},
			})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
}

// importTopLevel dispatches on a translation-unit- or namespace-level
// child node, returning nil for anything the importer has no model for
// (preprocessor directives, static_assert, free variables, ...).
func (c *ASTContext) importTopLevel(n *sitter.Node, source []byte, file FileID) Decl {
	switch n.Type() {
	case "namespace_definition":
		return c.importNamespace(n, source, file)
	case "struct_specifier", "class_specifier", "union_specifier":
		return c.importRecord(n, source, file)
	case "declaration":
		return c.importDeclaration(n, source, file)
	case "function_definition":
		return c.importFunctionDefinition(n, source, file)
	case "type_definition":
		return c.importTypedef(n, source, file)
	case "alias_declaration":
		return c.importAliasDeclaration(n, source, file)
	case "template_declaration":
		return c.importTemplate(n, source, file)
	default:
		return nil
	}
}

func (c *ASTContext) importNamespace(n *sitter.Node, source []byte, file FileID) Decl {
	ns := &NamespaceDecl{}
	if name := n.ChildByFieldName("name"); name != nil {
		ns.Name = name.Content(source)
	}
	c.intern(ns, &ns.declBase, n, file)

	body := n.ChildByFieldName("body")
	if body == nil {
		return ns
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if d := c.importTopLevel(body.NamedChild(i), source, file); d != nil {
			ns.Decls = append(ns.Decls, d)
		}
	}
	return ns
}

// importDeclaration handles a bare "declaration" node: either it wraps a
// record specifier (struct Foo { ... };) or it is a free function
// prototype. Any other declaration (a variable, for instance) yields nil.
func (c *ASTContext) importDeclaration(n *sitter.Node, source []byte, file FileID) Decl {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "struct_specifier", "class_specifier", "union_specifier":
			return c.importRecord(child, source, file)
		}
	}
	if declarator := n.ChildByFieldName("declarator"); declarator != nil && isFunctionDeclarator(declarator) {
		return c.importFunctionFromDeclarator(n, declarator, source, file)
	}
	return nil
}

func isFunctionDeclarator(n *sitter.Node) bool {
	for n != nil {
		if n.Type() == "function_declarator" {
			return true
		}
		if n.Type() == "identifier" || n.Type() == "field_identifier" || n.Type() == "qualified_identifier" || n.Type() == "destructor_name" || n.Type() == "operator_name" {
			return false
		}
		n = firstChildAmong(n, "pointer_declarator", "reference_declarator", "parenthesized_declarator", "function_declarator")
	}
	return false
}

func firstChildAmong(n *sitter.Node, types ...string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		for _, t := range types {
			if child.Type() == t {
				return child
			}
		}
	}
	return nil
}

func (c *ASTContext) importFunctionDefinition(n *sitter.Node, source []byte, file FileID) Decl {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return nil
	}
	return c.importFunctionFromDeclarator(n, declarator, source, file)
}

// declShape is the result of peeling a tree-sitter declarator apart:
// the leaf name, any pointer/reference wrapping (as textual suffixes,
// since the Type Mapper reasons about spellings, not trees), and the
// function_declarator node carrying the parameter list, if any.
type declShape struct {
	name       string
	isDtor     bool
	suffix     string // e.g. "*", "&", "**"
	paramsNode *sitter.Node
	trailing   *sitter.Node // trailing_qualifiers under function_declarator, if present
}

func unwrapDeclarator(n *sitter.Node, source []byte) declShape {
	switch n.Type() {
	case "pointer_declarator":
		inner := unwrapDeclarator(n.NamedChild(0), source)
		inner.suffix = inner.suffix + "*"
		return inner
	case "reference_declarator":
		inner := unwrapDeclarator(n.NamedChild(0), source)
		inner.suffix = inner.suffix + referenceSuffix(n, source)
		return inner
	case "abstract_pointer_declarator", "abstract_reference_declarator":
		// An unnamed parameter's declarator ("const T&", "int*"): no name,
		// only the wrapping, optionally around a further abstract declarator.
		inner := declShape{}
		if n.NamedChildCount() > 0 {
			inner = unwrapDeclarator(n.NamedChild(0), source)
		}
		if n.Type() == "abstract_pointer_declarator" {
			inner.suffix = inner.suffix + "*"
		} else {
			inner.suffix = inner.suffix + referenceSuffix(n, source)
		}
		return inner
	case "parenthesized_declarator":
		return unwrapDeclarator(n.NamedChild(0), source)
	case "function_declarator":
		inner := unwrapDeclarator(n.NamedChild(0), source)
		inner.paramsNode = n.ChildByFieldName("parameters")
		return inner
	case "destructor_name":
		return declShape{name: strings.TrimPrefix(n.Content(source), "~"), isDtor: true}
	case "qualified_identifier":
		if name := n.ChildByFieldName("name"); name != nil {
			return unwrapDeclarator(name, source)
		}
		return declShape{name: n.Content(source)}
	default:
		return declShape{name: n.Content(source)}
	}
}

// referenceSuffix returns "&&" for an rvalue reference declarator and "&"
// for an lvalue one.
func referenceSuffix(n *sitter.Node, source []byte) string {
	if strings.HasPrefix(n.Content(source), "&&") {
		return "&&"
	}
	return "&"
}

func (c *ASTContext) importFunctionFromDeclarator(n, declarator *sitter.Node, source []byte, file FileID) Decl {
	shape := unwrapDeclarator(declarator, source)
	if shape.paramsNode == nil {
		return nil
	}

	fn := &FunctionDecl{Name: shape.name}
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		fn.ReturnType = ParseQualType(typeNode.Content(source) + shape.suffix)
	} else {
		fn.ReturnType = ParseQualType("void" + shape.suffix)
	}
	fn.Params = c.importParams(shape.paramsNode, source)
	body := n.ChildByFieldName("body")
	fn.IsInline = body != nil
	fn.IsVariadic = strings.Contains(shape.paramsNode.Content(source), "...")

	c.intern(fn, &fn.declBase, n, file)
	return fn
}

func (c *ASTContext) importParams(paramsNode *sitter.Node, source []byte) []ParmVarDecl {
	var params []ParmVarDecl
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		p := paramsNode.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		typeText := ""
		if t := p.ChildByFieldName("type"); t != nil {
			typeText = t.Content(source)
		}
		name := ""
		suffix := ""
		if d := p.ChildByFieldName("declarator"); d != nil {
			shape := unwrapDeclarator(d, source)
			name = shape.name
			suffix = shape.suffix
		}
		params = append(params, ParmVarDecl{Name: name, Type: ParseQualType(typeText + suffix)})
	}
	return params
}

func (c *ASTContext) importTypedef(n *sitter.Node, source []byte, file FileID) Decl {
	declarator := n.ChildByFieldName("declarator")
	typeNode := n.ChildByFieldName("type")
	if declarator == nil || typeNode == nil {
		return nil
	}
	shape := unwrapDeclarator(declarator, source)
	td := &TypedefNameDecl{
		Name:           shape.name,
		UnderlyingType: ParseQualType(typeNode.Content(source) + shape.suffix),
	}
	c.intern(td, &td.declBase, n, file)
	return td
}

func (c *ASTContext) importAliasDeclaration(n *sitter.Node, source []byte, file FileID) Decl {
	name := n.ChildByFieldName("name")
	value := n.ChildByFieldName("value")
	if name == nil || value == nil {
		return nil
	}
	td := &TypedefNameDecl{
		Name:           name.Content(source),
		UnderlyingType: ParseQualType(value.Content(source)),
	}
	c.intern(td, &td.declBase, n, file)
	return td
}

func (c *ASTContext) importTemplate(n *sitter.Node, source []byte, file FileID) Decl {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "struct_specifier", "class_specifier", "union_specifier":
			ct := &ClassTemplateDecl{}
			if name := child.ChildByFieldName("name"); name != nil {
				ct.Name = name.Content(source)
			}
			c.intern(ct, &ct.declBase, n, file)
			return ct
		case "function_definition", "declaration":
			ft := &FunctionTemplateDecl{}
			c.intern(ft, &ft.declBase, n, file)
			return ft
		}
	}
	return nil
}
