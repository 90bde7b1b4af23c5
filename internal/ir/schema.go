// Package ir defines the Intermediate Representation emitted by the
// Importer: an ordered list of Items describing the functions, records,
// and type aliases a C++ translation unit exposes to the target language,
// plus structured diagnostics for anything it could not model.
package ir

// DeclID is an opaque stable handle for a canonical declaration. Two DeclIDs
// compare equal iff they were interned for the same canonical declaration.
type DeclID uint64

// TargetLabel is the build label that owns a header (e.g. "//foo:bar").
type TargetLabel string

// HeaderName is the path of a header file, relative to the repo root, with
// any leading "./" stripped.
type HeaderName string

// LifetimeID is the numeric identity of a lifetime, assigned by the
// lifetime-inference oracle.
type LifetimeID int

// SourceLoc locates a single point in a source file.
type SourceLoc struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Lifetime pairs a lifetime's symbolic name with its numeric id.
type Lifetime struct {
	Name string     `json:"name"`
	ID   LifetimeID `json:"id"`
}

// IdentifierKind distinguishes ordinary names from the constructor and
// destructor sentinels.
type IdentifierKind int

const (
	IdentifierName IdentifierKind = iota
	IdentifierConstructor
	IdentifierDestructor
)

// UnqualifiedIdentifier is a translated declaration name: either a regular
// identifier, or the Constructor/Destructor sentinel.
type UnqualifiedIdentifier struct {
	Kind IdentifierKind
	Name string
}

func Identifier(name string) UnqualifiedIdentifier {
	return UnqualifiedIdentifier{Kind: IdentifierName, Name: name}
}

func Constructor() UnqualifiedIdentifier {
	return UnqualifiedIdentifier{Kind: IdentifierConstructor}
}

func Destructor() UnqualifiedIdentifier {
	return UnqualifiedIdentifier{Kind: IdentifierDestructor}
}

func (u UnqualifiedIdentifier) MarshalJSON() ([]byte, error) {
	switch u.Kind {
	case IdentifierConstructor:
		return []byte(`"Constructor"`), nil
	case IdentifierDestructor:
		return []byte(`"Destructor"`), nil
	default:
		return marshalJSONString(u.Name)
	}
}

// AccessSpecifier mirrors clang::AccessSpecifier, minus clang::AS_none
// (callers fold AS_none into the record's default access before storing it).
type AccessSpecifier int

const (
	AccessPublic AccessSpecifier = iota
	AccessProtected
	AccessPrivate
)

func (a AccessSpecifier) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "unknown"
	}
}

func (a AccessSpecifier) MarshalJSON() ([]byte, error) {
	return marshalJSONString(a.String())
}

// ReferenceQualification is the ref-qualifier of an instance method.
type ReferenceQualification int

const (
	ReferenceUnqualified ReferenceQualification = iota
	ReferenceLValue
	ReferenceRValue
)

func (r ReferenceQualification) String() string {
	switch r {
	case ReferenceLValue:
		return "lvalue"
	case ReferenceRValue:
		return "rvalue"
	default:
		return "unqualified"
	}
}

func (r ReferenceQualification) MarshalJSON() ([]byte, error) {
	return marshalJSONString(r.String())
}

// InstanceMethodMetadata carries the facts about a non-static method that
// the target language needs beyond the plain parameter/return signature.
type InstanceMethodMetadata struct {
	Reference      ReferenceQualification `json:"reference"`
	IsConst        bool                   `json:"is_const"`
	IsVirtual      bool                   `json:"is_virtual"`
	IsExplicitCtor bool                   `json:"is_explicit_ctor"`
}

// MemberFuncMetadata is attached to Func items that import a method.
// Instance is nil for static member functions.
type MemberFuncMetadata struct {
	RecordID DeclID                  `json:"record_id"`
	Instance *InstanceMethodMetadata `json:"instance,omitempty"`
}

// FuncParam is one formal parameter, already positioned (the synthesized
// __this parameter, if any, is params[0]).
type FuncParam struct {
	Type       MappedType `json:"type"`
	Identifier string     `json:"identifier"`
}

// Func is an imported function or method.
type Func struct {
	Name           UnqualifiedIdentifier `json:"name"`
	DeclID         DeclID                `json:"decl_id"`
	OwningTarget   TargetLabel           `json:"owning_target"`
	DocComment     string                `json:"doc_comment,omitempty"`
	MangledName    string                `json:"mangled_name"`
	ReturnType     MappedType            `json:"return_type"`
	Params         []FuncParam           `json:"params"`
	LifetimeParams []Lifetime            `json:"lifetime_params"`
	IsInline       bool                  `json:"is_inline"`
	MemberFunc     *MemberFuncMetadata   `json:"member_func_metadata,omitempty"`
	SourceLoc      SourceLoc             `json:"source_loc"`
}

func (Func) isItem() {}

// SpecialMemberDefinition summarizes how a special member function
// (copy/move ctor, destructor) is implemented.
type SpecialMemberDefinition int

const (
	SpecialTrivial SpecialMemberDefinition = iota
	SpecialNontrivialMembers
	SpecialNontrivialSelf
	SpecialDeleted
	SpecialNotDeclared
)

func (s SpecialMemberDefinition) String() string {
	switch s {
	case SpecialTrivial:
		return "trivial"
	case SpecialNontrivialMembers:
		return "nontrivial_members"
	case SpecialNontrivialSelf:
		return "nontrivial_self"
	case SpecialDeleted:
		return "deleted"
	default:
		return "not_declared"
	}
}

func (s SpecialMemberDefinition) MarshalJSON() ([]byte, error) {
	return marshalJSONString(s.String())
}

// SpecialMemberFunc describes one of a record's copy/move constructors or
// its destructor.
type SpecialMemberFunc struct {
	Definition SpecialMemberDefinition `json:"definition"`
	Access     AccessSpecifier         `json:"access"`
}

// Field is one data member of a Record.
type Field struct {
	Identifier string          `json:"identifier"`
	DocComment string          `json:"doc_comment,omitempty"`
	Type       MappedType      `json:"type"`
	Access     AccessSpecifier `json:"access"`
	Offset     uint64          `json:"offset"`
}

// Record is an imported struct/class.
type Record struct {
	Identifier      string            `json:"identifier"`
	DeclID          DeclID            `json:"decl_id"`
	OwningTarget    TargetLabel       `json:"owning_target"`
	DocComment      string            `json:"doc_comment,omitempty"`
	Fields          []Field           `json:"fields"`
	SizeBytes       uint64            `json:"size"`
	AlignmentBytes  uint64            `json:"alignment"`
	CopyConstructor SpecialMemberFunc `json:"copy_constructor"`
	MoveConstructor SpecialMemberFunc `json:"move_constructor"`
	Destructor      SpecialMemberFunc `json:"destructor"`
	IsTrivialAbi    bool              `json:"is_trivial_abi"`
	IsFinal         bool              `json:"is_final"`
}

func (Record) isItem() {}

// TypeAlias is an imported typedef/using declaration that was not
// suppressed by the well-known-type table.
type TypeAlias struct {
	Identifier     string      `json:"identifier"`
	DeclID         DeclID      `json:"decl_id"`
	OwningTarget   TargetLabel `json:"owning_target"`
	UnderlyingType MappedType  `json:"underlying_type"`
}

func (TypeAlias) isItem() {}

// UnsupportedItem is a structured diagnostic for a declaration, or part of
// one, that the Importer could not model.
type UnsupportedItem struct {
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	SourceLoc SourceLoc `json:"source_loc"`
}

func (UnsupportedItem) isItem() {}

// Comment is a free-floating comment not attached to any imported
// declaration's doc comment.
type Comment struct {
	Text string `json:"text"`
}

func (Comment) isItem() {}

// Item is the tagged variant stored in an IR's Items slice.
type Item interface {
	isItem()
}

// IR is the complete output of one Importer run.
type IR struct {
	Items []Item `json:"items"`
}

func marshalJSONString(s string) ([]byte, error) {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			buf = append(buf, '\\', byte(r))
		case '\n':
			buf = append(buf, '\\', 'n')
		default:
			buf = append(buf, string(r)...)
		}
	}
	buf = append(buf, '"')
	return buf, nil
}
