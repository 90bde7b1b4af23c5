package cxxast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"cxxbind/internal/ir"
)

// importRecord builds a RecordDecl from a struct_specifier/class_specifier/
// union_specifier node, scanning its field_declaration_list in source
// order and tracking the running access specifier the way clang's parser
// does (public by default for struct/union, private for class).
func (c *ASTContext) importRecord(n *sitter.Node, source []byte, file FileID) Decl {
	return c.importRecordWithParent(n, source, file, nil)
}

func (c *ASTContext) importRecordWithParent(n *sitter.Node, source []byte, file FileID, parent *RecordDecl) Decl {
	name := ""
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = nameNode.Content(source)
	}

	rec := &RecordDecl{
		Name:    name,
		IsClass: n.Type() == "class_specifier",
		IsUnion: n.Type() == "union_specifier",
		Parent:  parent,
	}
	c.intern(rec, &rec.declBase, n, file)
	if parent != nil {
		parent.Nested = append(parent.Nested, rec)
	}

	if baseClause := n.ChildByFieldName("virtual_specifier"); baseClause != nil {
		if strings.Contains(baseClause.Content(source), "final") {
			rec.IsFinal = true
		}
	}
	if strings.Contains(n.Content(source), " final") || strings.Contains(n.Content(source), "final{") || strings.Contains(n.Content(source), "final :") {
		rec.IsFinal = true
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return rec // forward declaration, not a definition — the Record Importer skips these
	}
	rec.HasDefinition = true

	access := ir.AccessPublic
	if rec.IsClass {
		access = ir.AccessPrivate
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "access_specifier":
			access = parseAccessSpecifier(member.Content(source))
		case "field_declaration":
			if nested := nestedRecordSpecifier(member); nested != nil {
				c.importRecordWithParent(nested, source, file, rec)
			} else {
				c.importField(member, source, file, rec, access)
			}
		case "function_definition":
			c.importMethod(member, source, file, rec, access, true)
		case "declaration":
			c.importMethodOrCtorDeclaration(member, source, file, rec, access)
		case "type_definition":
			if td, ok := c.importTypedef(member, source, file).(*TypedefNameDecl); ok {
				td.NestedInRecord = true
				rec.Typedefs = append(rec.Typedefs, td)
			}
		case "alias_declaration":
			if td, ok := c.importAliasDeclaration(member, source, file).(*TypedefNameDecl); ok {
				td.NestedInRecord = true
				rec.Typedefs = append(rec.Typedefs, td)
			}
		case "base_class_clause":
			rec.HasBaseClass = true
		}
	}
	return rec
}

// nestedRecordSpecifier returns the struct/class/union specifier node if
// member is a nested type *definition* rather than a field whose type
// happens to be a record ("struct Foo { struct Bar { int x; }; };") —
// distinguished by having no declarator (no member name follows the
// closing brace).
func nestedRecordSpecifier(member *sitter.Node) *sitter.Node {
	typeNode := member.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	switch typeNode.Type() {
	case "struct_specifier", "class_specifier", "union_specifier":
	default:
		return nil
	}
	if typeNode.ChildByFieldName("body") == nil {
		return nil
	}
	if member.ChildByFieldName("declarator") != nil {
		return nil
	}
	return typeNode
}

func parseAccessSpecifier(text string) ir.AccessSpecifier {
	switch strings.TrimRight(strings.TrimSpace(text), ":") {
	case "public":
		return ir.AccessPublic
	case "protected":
		return ir.AccessProtected
	default:
		return ir.AccessPrivate
	}
}

func (c *ASTContext) importField(n *sitter.Node, source []byte, file FileID, rec *RecordDecl, access ir.AccessSpecifier) {
	declarator := n.ChildByFieldName("declarator")
	typeNode := n.ChildByFieldName("type")
	if declarator == nil || typeNode == nil {
		return
	}
	shape := unwrapDeclarator(declarator, source)
	if shape.paramsNode != nil {
		// A member function prototype ("int get() const;") arrives as a
		// field_declaration; import it as a method instead of a field.
		c.importMethod(n, source, file, rec, access, false)
		return
	}
	f := &FieldDecl{
		Name:   shape.name,
		Type:   ParseQualType(typeNode.Content(source) + shape.suffix),
		Access: access,
	}
	c.intern(f, &f.declBase, n, file)
	rec.Fields = append(rec.Fields, f)
	rec.Sections = append(rec.Sections, AccessSection{Access: access, Member: f})
}

// importMethodOrCtorDeclaration handles a member "declaration" node: it is
// either an ordinary method prototype, a constructor, or a destructor —
// clang's grammar gives constructors/destructors no separate return type,
// which is how this distinguishes them from a field_declaration whose type
// was textually indistinguishable from a bare name.
func (c *ASTContext) importMethodOrCtorDeclaration(n *sitter.Node, source []byte, file FileID, rec *RecordDecl, access ir.AccessSpecifier) {
	c.importMethod(n, source, file, rec, access, false)
}

func (c *ASTContext) importMethod(n *sitter.Node, source []byte, file FileID, rec *RecordDecl, access ir.AccessSpecifier, hasBody bool) {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return
	}
	shape := unwrapDeclarator(declarator, source)
	if shape.isDtor {
		c.importCtorOrDtor(n, declarator, source, file, rec, access, hasBody)
		return
	}
	if shape.name == rec.Name {
		c.importCtorOrDtor(n, declarator, source, file, rec, access, hasBody)
		return
	}
	if shape.paramsNode == nil {
		return
	}

	m := &CXXMethodDecl{
		Name:    shape.name,
		Parent:  rec,
		Access:  access,
		IsInline: hasBody,
	}
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		m.ReturnType = ParseQualType(typeNode.Content(source) + shape.suffix)
	} else {
		m.ReturnType = ParseQualType("void" + shape.suffix)
	}
	m.Params = c.importParams(shape.paramsNode, source)

	text := n.Content(source)
	m.IsStatic = strings.HasPrefix(strings.TrimSpace(text), "static ")
	m.IsVirtual = strings.HasPrefix(strings.TrimSpace(text), "virtual ") || strings.Contains(text, " virtual ")
	m.IsPureVirtual = strings.Contains(text, "= 0") || strings.Contains(text, "=0")
	m.IsDeleted = strings.Contains(text, "= delete") || strings.Contains(text, "=delete")

	paramsText := shape.paramsNode.Content(source)
	afterParams := text
	if idx := strings.Index(text, paramsText); idx >= 0 {
		afterParams = text[idx+len(paramsText):]
	}
	trailer := afterParams
	if end := strings.IndexAny(trailer, "{;"); end >= 0 {
		trailer = trailer[:end]
	}
	m.IsConst = strings.Contains(trailer, "const")
	m.RefQualifier = ir.ReferenceUnqualified
	switch {
	case strings.Contains(trailer, "&&"):
		m.RefQualifier = ir.ReferenceRValue
	case strings.Contains(trailer, "&"):
		m.RefQualifier = ir.ReferenceLValue
	}

	c.intern(m, &m.declBase, n, file)
	rec.Methods = append(rec.Methods, m)
	rec.Sections = append(rec.Sections, AccessSection{Access: access, Member: m})
}

func (c *ASTContext) importCtorOrDtor(n, declarator *sitter.Node, source []byte, file FileID, rec *RecordDecl, access ir.AccessSpecifier, hasBody bool) {
	shape := unwrapDeclarator(declarator, source)
	text := n.Content(source)
	isDeleted := strings.Contains(text, "= delete") || strings.Contains(text, "=delete")
	isDefault := strings.Contains(text, "= default") || strings.Contains(text, "=default")

	if shape.isDtor {
		d := &CXXDestructorDecl{
			Parent:    rec,
			Access:    access,
			IsVirtual: strings.Contains(text, "virtual"),
			IsDefault: isDefault,
			IsDeleted: isDeleted,
			IsInline:  hasBody,
		}
		c.intern(d, &d.declBase, n, file)
		rec.Dtor = d
		rec.Sections = append(rec.Sections, AccessSection{Access: access, Member: d})
		return
	}

	if shape.paramsNode == nil {
		return
	}
	params := c.importParams(shape.paramsNode, source)

	ctor := &CXXConstructorDecl{
		Params:     params,
		Parent:     rec,
		Access:     access,
		IsExplicit: strings.Contains(text, "explicit "),
		IsDefault:  isDefault,
		IsDeleted:  isDeleted,
		IsInline:   hasBody,
	}
	ctor.IsUserDefined = !isDefault && !isDeleted
	ctor.IsCopy = len(params) == 1 && isCopyLikeParam(params[0], rec.Name)
	ctor.IsMove = len(params) == 1 && isMoveLikeParam(params[0], rec.Name)

	c.intern(ctor, &ctor.declBase, n, file)
	rec.Sections = append(rec.Sections, AccessSection{Access: access, Member: ctor})

	switch {
	case len(params) == 0:
		rec.DefaultCtor = ctor
	case ctor.IsCopy:
		rec.CopyCtor = ctor
	case ctor.IsMove:
		rec.MoveCtor = ctor
	default:
		rec.OtherCtors = append(rec.OtherCtors, ctor)
	}
}

func isCopyLikeParam(p ParmVarDecl, recordName string) bool {
	return p.Type.Kind == KindLValueReference && p.Type.Pointee != nil && p.Type.Pointee.Name == recordName
}

func isMoveLikeParam(p ParmVarDecl, recordName string) bool {
	return p.Type.Kind == KindRValueReference && p.Type.Pointee != nil && p.Type.Pointee.Name == recordName
}
