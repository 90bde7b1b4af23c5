package cxxast

import "strings"

// TypeKind discriminates the shapes ParseQualType can produce. The C++
// frontend substitute described in SPEC_FULL.md §0 only needs to tell the
// Type Mapper apart pointers, references, and everything else — it never
// needs a full type-checking type system.
type TypeKind int

const (
	KindBuiltin TypeKind = iota
	KindTag              // struct/class/union/enum
	KindTypedef
	KindPointer
	KindLValueReference
	KindRValueReference
)

// QualType is a textually-parsed C++ type: enough structure for the Type
// Mapper's precedence order (§4.6) to dispatch on, built by peeling
// trailing '*'/'&'/'&&' tokens and leading/trailing 'const' off the raw
// declarator spelling tree-sitter hands back.
type QualType struct {
	Spelling string
	IsConst  bool
	Kind     TypeKind
	Name     string // bare type name for Builtin/Tag/Typedef
	Pointee  *QualType
}

var builtinNames = map[string]bool{
	"void": true, "bool": true, "char": true, "signed char": true,
	"unsigned char": true, "short": true, "unsigned short": true,
	"int": true, "unsigned int": true, "unsigned": true, "long": true,
	"unsigned long": true, "long long": true, "unsigned long long": true,
	"float": true, "double": true, "long double": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"size_t": true, "ptrdiff_t": true, "wchar_t": true, "char16_t": true, "char32_t": true,
}

// ParseQualType parses a raw C++ declarator spelling, e.g. "const Foo &"
// or "int32_t **".
func ParseQualType(spelling string) QualType {
	s := strings.TrimSpace(spelling)

	if strings.HasSuffix(s, "&&") {
		inner := ParseQualType(strings.TrimSpace(s[:len(s)-2]))
		return QualType{Spelling: s, Kind: KindRValueReference, Pointee: &inner}
	}
	if strings.HasSuffix(s, "&") {
		inner := ParseQualType(strings.TrimSpace(s[:len(s)-1]))
		return QualType{Spelling: s, Kind: KindLValueReference, Pointee: &inner}
	}
	if strings.HasSuffix(s, "*") {
		inner := ParseQualType(strings.TrimSpace(s[:len(s)-1]))
		return QualType{Spelling: s, Kind: KindPointer, Pointee: &inner}
	}

	isConst := false
	for {
		switch {
		case strings.HasPrefix(s, "const "):
			isConst = true
			s = strings.TrimSpace(s[len("const "):])
		case strings.HasSuffix(s, " const"):
			isConst = true
			s = strings.TrimSpace(s[:len(s)-len(" const")])
		default:
			goto done
		}
	}
done:
	name := strings.TrimSpace(strings.TrimPrefix(s, "struct "))
	name = strings.TrimSpace(strings.TrimPrefix(name, "class "))
	name = strings.TrimSpace(strings.TrimPrefix(name, "enum "))

	kind := KindTypedef
	if builtinNames[name] {
		kind = KindBuiltin
	} else if strings.HasPrefix(s, "struct ") || strings.HasPrefix(s, "class ") || strings.HasPrefix(s, "enum ") {
		kind = KindTag
	}

	return QualType{Spelling: spelling, IsConst: isConst, Kind: kind, Name: name}
}

// IsVoid reports whether t spells the bare "void" type.
func (t QualType) IsVoid() bool {
	return t.Kind == KindBuiltin && t.Name == "void"
}
