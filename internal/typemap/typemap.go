// Package typemap implements the Type Mapper: it converts a parsed C++
// QualType into the IR's MappedType, in the seven-case precedence order
// spec.md §4.6 defines.
package typemap

import (
	"fmt"
	"strings"

	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/lifetime"
)

// UnsupportedTypeError is the structured diagnostic payload described in
// spec.md §6: "Errors arising in the Type Mapper carry a side-channel
// payload `type` whose value is the unsupported type's spelled form."
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type: %s", e.Type)
}

var wellKnown = map[string]ir.MappedType{
	"ptrdiff_t":     ir.SimpleType("ptrdiff_t", "isize"),
	"intptr_t":      ir.SimpleType("intptr_t", "isize"),
	"std::ptrdiff_t": ir.SimpleType("std::ptrdiff_t", "isize"),
	"std::intptr_t":  ir.SimpleType("std::intptr_t", "isize"),
	"size_t":          ir.SimpleType("size_t", "usize"),
	"uintptr_t":       ir.SimpleType("uintptr_t", "usize"),
	"std::size_t":     ir.SimpleType("std::size_t", "usize"),
	"std::uintptr_t":  ir.SimpleType("std::uintptr_t", "usize"),
	"int8_t":  ir.SimpleType("int8_t", "i8"),
	"int16_t": ir.SimpleType("int16_t", "i16"),
	"int32_t": ir.SimpleType("int32_t", "i32"),
	"int64_t": ir.SimpleType("int64_t", "i64"),
	"uint8_t":  ir.SimpleType("uint8_t", "u8"),
	"uint16_t": ir.SimpleType("uint16_t", "u16"),
	"uint32_t": ir.SimpleType("uint32_t", "u32"),
	"uint64_t": ir.SimpleType("uint64_t", "u64"),
	"char16_t": ir.SimpleType("char16_t", "u16"),
	"char32_t": ir.SimpleType("char32_t", "u32"),
	"wchar_t":  ir.SimpleType("wchar_t", "i32"),
}

var signedBuiltinWidths = map[string]int{
	"signed char": 8, "short": 16, "int": 32, "long": 64, "long long": 64,
}

var unsignedBuiltinWidths = map[string]int{
	"unsigned char": 8, "unsigned short": 16, "unsigned int": 32, "unsigned": 32,
	"unsigned long": 64, "unsigned long long": 64,
}

// KnownDecl is what the Type Mapper needs to know about a tag or typedef
// declaration already seen by the Importer, in order to emit a
// WithDeclIds reference for case 5/6.
type KnownDecl struct {
	ID               ir.DeclID
	TranslatedName   string
}

// Resolver looks up whether a tag/typedef name has already been imported,
// mirroring the Importer's known_type_decls_ memo.
type Resolver interface {
	LookupKnownType(name string) (KnownDecl, bool)
}

// Mapper converts C++ types into IR MappedTypes.
type Mapper struct {
	Resolver Resolver
}

func New(r Resolver) *Mapper {
	return &Mapper{Resolver: r}
}

// Convert implements the Type Mapper's precedence order. lifetimes may be
// nil, meaning no lifetime annotations are available for this type.
// nullable defaults to true per spec.md §4.6's stated default.
func (m *Mapper) Convert(t cxxast.QualType, lifetimes *lifetime.Stack, nullable bool) (ir.MappedType, error) {
	result, err := m.convert(t, lifetimes, nullable)
	if err != nil {
		return ir.MappedType{}, err
	}
	if t.IsConst {
		result = result.AsConst()
	}
	return result, nil
}

func (m *Mapper) convert(t cxxast.QualType, lifetimes *lifetime.Stack, nullable bool) (ir.MappedType, error) {
	// Case 1: well-known type table, checked against the unqualified spelling.
	if mapped, ok := wellKnown[t.Name]; ok && (t.Kind == cxxast.KindBuiltin || t.Kind == cxxast.KindTypedef) {
		return mapped, nil
	}

	switch t.Kind {
	case cxxast.KindPointer:
		// Case 2: pointer type — pop one lifetime, recurse on the pointee.
		var lt *ir.LifetimeID
		if lifetimes != nil {
			if l, ok := lifetimes.Pop(); ok {
				id := l.ID
				lt = &id
			}
		}
		pointee, err := m.Convert(*t.Pointee, lifetimes, true)
		if err != nil {
			return ir.MappedType{}, err
		}
		return ir.PointerTo(pointee, lt, nullable), nil

	case cxxast.KindLValueReference:
		// Case 3: lvalue reference — as pointer, but never nullable.
		var lt *ir.LifetimeID
		if lifetimes != nil {
			if l, ok := lifetimes.Pop(); ok {
				id := l.ID
				lt = &id
			}
		}
		pointee, err := m.Convert(*t.Pointee, lifetimes, true)
		if err != nil {
			return ir.MappedType{}, err
		}
		return ir.LValueReferenceTo(pointee, lt), nil

	case cxxast.KindBuiltin:
		// Case 4: builtin type.
		return m.convertBuiltin(t)

	case cxxast.KindTag:
		// Case 5: tag type.
		return m.convertNamed(t)

	case cxxast.KindTypedef:
		// Case 6: typedef type.
		return m.convertNamed(t)

	default:
		// Case 7: otherwise unsupported.
		return ir.MappedType{}, &UnsupportedTypeError{Type: t.Spelling}
	}
}

func (m *Mapper) convertBuiltin(t cxxast.QualType) (ir.MappedType, error) {
	switch t.Name {
	case "bool":
		return ir.SimpleType("bool", "bool"), nil
	case "float":
		return ir.SimpleType("float", "f32"), nil
	case "double":
		return ir.SimpleType("double", "f64"), nil
	case "void":
		return ir.VoidType(), nil
	}
	if width, ok := signedBuiltinWidths[t.Name]; ok {
		return ir.SimpleType(t.Name, fmt.Sprintf("i%d", width)), nil
	}
	if width, ok := unsignedBuiltinWidths[t.Name]; ok {
		return ir.SimpleType(t.Name, fmt.Sprintf("u%d", width)), nil
	}
	if t.Name == "char" {
		// clang treats plain char as its own type, distinct from both
		// signed and unsigned char; without a real Sema to ask about
		// target char signedness this repository always reports it
		// unsupported; signed char, unsigned char, int8_t and uint8_t map.
		return ir.MappedType{}, &UnsupportedTypeError{Type: t.Spelling}
	}
	return ir.MappedType{}, &UnsupportedTypeError{Type: t.Spelling}
}

func (m *Mapper) convertNamed(t cxxast.QualType) (ir.MappedType, error) {
	name := strings.TrimSpace(t.Name)
	known, ok := m.Resolver.LookupKnownType(name)
	if !ok {
		return ir.MappedType{}, &UnsupportedTypeError{Type: t.Spelling}
	}
	mapped := ir.SimpleType(t.Spelling, known.TranslatedName)
	return mapped.WithDeclIds(known.ID), nil
}
