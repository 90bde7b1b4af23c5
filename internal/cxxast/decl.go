package cxxast

import "cxxbind/internal/ir"

// Decl is any declaration the walker can encounter inside a translation
// unit or a namespace. Every concrete decl type embeds declBase, giving it
// a stable DeclID and a location.
type Decl interface {
	ID() ir.DeclID
	Loc() SourceLocation
	EndLoc() SourceLocation
	declNode()
}

type declBase struct {
	id     ir.DeclID
	loc    SourceLocation
	endLoc SourceLocation
}

func (d declBase) ID() ir.DeclID          { return d.id }
func (d declBase) Loc() SourceLocation    { return d.loc }
func (d declBase) EndLoc() SourceLocation { return d.endLoc }
func (declBase) declNode()                {}

// TranslationUnitDecl is the root of one parsed file's declaration tree.
type TranslationUnitDecl struct {
	declBase
	File FileID
	Decls []Decl
}

// NamespaceDecl groups declarations under a (possibly empty, i.e. anonymous)
// namespace name. Only namespaces are recursed into by the walker — classes
// and functions are leaves as far as the walker's visitDeclContext is
// concerned.
type NamespaceDecl struct {
	declBase
	Name  string
	Decls []Decl
}

// AccessSection is how RecordDecl tracks the running "current access"
// state while scanning member declarations, mirroring clang's per-member
// AccessSpecifier bookkeeping.
type AccessSection struct {
	Access ir.AccessSpecifier
	Member Decl
}

// RecordDecl is a struct/class/union definition.
type RecordDecl struct {
	declBase
	Name          string
	IsClass       bool // "class" (default-private) vs "struct"/"union" (default-public)
	IsUnion       bool
	IsFinal       bool
	IsAbstract    bool // has a pure-virtual member
	HasBaseClass  bool
	IsTemplate    bool
	HasDefinition bool // false for a forward declaration ("struct Foo;")
	Parent        *RecordDecl // non-nil if this record is declared inside another record
	Fields        []*FieldDecl
	Methods       []*CXXMethodDecl
	Nested        []*RecordDecl
	Typedefs      []*TypedefNameDecl
	Sections      []AccessSection // ordered member declarations with resolved access
	CopyCtor      *CXXConstructorDecl
	MoveCtor      *CXXConstructorDecl
	Dtor          *CXXDestructorDecl
	DefaultCtor   *CXXConstructorDecl
	OtherCtors    []*CXXConstructorDecl
}

// FieldDecl is a non-static data member.
type FieldDecl struct {
	declBase
	Name   string
	Type   QualType
	Access ir.AccessSpecifier
}

// ParmVarDecl is one function or method parameter.
type ParmVarDecl struct {
	Name string
	Type QualType
}

// FunctionDecl is a free (non-member) function.
type FunctionDecl struct {
	declBase
	Name       string
	ReturnType QualType
	Params     []ParmVarDecl
	IsInline   bool
	IsDeleted  bool
	IsTemplate bool
	IsVariadic bool
}

// CXXMethodDecl is a member function, static or instance.
type CXXMethodDecl struct {
	declBase
	Name        string
	ReturnType  QualType
	Params      []ParmVarDecl
	Parent      *RecordDecl
	Access      ir.AccessSpecifier
	IsStatic    bool
	IsConst     bool
	IsVirtual   bool
	IsPureVirtual bool
	IsInline    bool
	IsDeleted   bool
	RefQualifier ir.ReferenceQualification
}

// CXXConstructorDecl is a constructor, tracked separately from ordinary
// methods because the Function Importer's special-member ordering and
// mangling both special-case it.
type CXXConstructorDecl struct {
	declBase
	Params        []ParmVarDecl
	Parent        *RecordDecl
	Access        ir.AccessSpecifier
	IsExplicit    bool
	IsDefault     bool
	IsDeleted     bool
	IsCopy        bool
	IsMove        bool
	IsUserDefined bool
	IsInline      bool
}

// CXXDestructorDecl is a destructor.
type CXXDestructorDecl struct {
	declBase
	Parent    *RecordDecl
	Access    ir.AccessSpecifier
	IsVirtual bool
	IsDefault bool
	IsDeleted bool
	IsInline  bool
}

// TypedefNameDecl is a typedef or type-alias ("using X = Y;") declaration.
type TypedefNameDecl struct {
	declBase
	Name           string
	UnderlyingType QualType
	NestedInRecord bool
}

// ClassTemplateDecl and FunctionTemplateDecl are recorded only so the
// Importer can recognize and refuse template
// declarations (spec.md's "no template definition modeling" Non-goal);
// the walker never descends into their bodies.
type ClassTemplateDecl struct {
	declBase
	Name string
}

type FunctionTemplateDecl struct {
	declBase
	Name string
}

