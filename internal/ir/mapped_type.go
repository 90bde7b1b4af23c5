package ir

// MappedKind discriminates the variants of MappedType.
type MappedKind int

const (
	MappedVoid MappedKind = iota
	MappedSimple
	MappedPointer
	MappedLValueReference
)

// TypeSide is the C++ or target-language half of a MappedType: a spelled
// name, its const-qualification, and (once resolved) the DeclID of the
// record/alias it names.
type TypeSide struct {
	Name    string  `json:"name"`
	IsConst bool    `json:"is_const"`
	DeclID  *DeclID `json:"decl_id,omitempty"`
}

// MappedType is a C++ type paired with its translated target-language
// spelling, as produced by the Type Mapper. Pointee is non-nil only for
// MappedPointer and MappedLValueReference.
type MappedType struct {
	Kind     MappedKind  `json:"kind"`
	CC       TypeSide    `json:"cc_type"`
	Target   TypeSide    `json:"target_type"`
	Pointee  *MappedType `json:"pointee,omitempty"`
	Lifetime *LifetimeID `json:"lifetime,omitempty"`
	Nullable bool        `json:"nullable"`
}

func (k MappedKind) String() string {
	switch k {
	case MappedVoid:
		return "void"
	case MappedSimple:
		return "simple"
	case MappedPointer:
		return "pointer"
	case MappedLValueReference:
		return "lvalue_reference"
	default:
		return "unknown"
	}
}

func (k MappedKind) MarshalJSON() ([]byte, error) {
	return marshalJSONString(k.String())
}

// VoidType returns the MappedType for "void".
func VoidType() MappedType {
	return MappedType{
		Kind:   MappedVoid,
		CC:     TypeSide{Name: "void"},
		Target: TypeSide{Name: "()"},
	}
}

// SimpleType returns a non-pointer, non-reference MappedType whose C++ and
// target spellings are given directly (e.g. well-known-type substitutions
// such as "int32_t" -> "i32").
func SimpleType(ccName, targetName string) MappedType {
	return MappedType{
		Kind:   MappedSimple,
		CC:     TypeSide{Name: ccName},
		Target: TypeSide{Name: targetName},
	}
}

// PointerTo returns the MappedType for a pointer to pointee, carrying the
// given lifetime (nil if none was inferred) and nullability.
func PointerTo(pointee MappedType, lifetime *LifetimeID, nullable bool) MappedType {
	return MappedType{
		Kind:     MappedPointer,
		CC:       TypeSide{Name: pointee.CC.Name + "*"},
		Target:   TypeSide{Name: pointee.Target.Name},
		Pointee:  &pointee,
		Lifetime: lifetime,
		Nullable: nullable,
	}
}

// LValueReferenceTo returns the MappedType for an lvalue reference to
// pointee, carrying the given lifetime (nil if none was inferred).
// References are never null.
func LValueReferenceTo(pointee MappedType, lifetime *LifetimeID) MappedType {
	return MappedType{
		Kind:     MappedLValueReference,
		CC:       TypeSide{Name: pointee.CC.Name + "&"},
		Target:   TypeSide{Name: pointee.Target.Name},
		Pointee:  &pointee,
		Lifetime: lifetime,
		Nullable: false,
	}
}

// WithDeclIds returns a copy of t with both TypeSides' DeclID set to id.
// Used once a simple type is resolved to name a specific record or alias.
func (t MappedType) WithDeclIds(id DeclID) MappedType {
	t.CC.DeclID = &id
	t.Target.DeclID = &id
	return t
}

// AsConst returns a copy of t with only the C++ side marked const-qualified,
// mirroring the Type Mapper's post-processing step for cv-qualified types:
// const-ness is a C++-side fact about the original declaration and is never
// projected onto the target-language spelling.
func (t MappedType) AsConst() MappedType {
	t.CC.IsConst = true
	return t
}
