// Package mangle computes Itanium-C++-ABI-flavored mangled names for the
// declarations the Function Importer imports. It is not a conformant
// Itanium mangler — it has no access to a real Sema, so it cannot resolve
// overload sets or template instantiations — but it follows the same
// length-prefixed encoding scheme closely enough to produce stable,
// collision-resistant, per-translation-unit-unique symbol names, which is
// all the emitted thunks need.
package mangle

import (
	"fmt"
	"strconv"
	"strings"

	"cxxbind/internal/cxxast"
)

// builtinCodes mirrors the Itanium ABI's <builtin-type> production for the
// subset of types this repository's Type Mapper recognizes.
var builtinCodes = map[string]string{
	"void": "v", "bool": "b", "char": "c", "signed char": "a",
	"unsigned char": "h", "short": "s", "unsigned short": "t",
	"int": "i", "unsigned int": "j", "unsigned": "j",
	"long": "l", "unsigned long": "m", "long long": "x",
	"unsigned long long": "y", "float": "f", "double": "d",
	"long double": "e",
}

// encodeType renders a single QualType per the Itanium <type> grammar:
// pointers/references wrap their pointee, cv-qualification is a prefix,
// and named types fall back to a length-prefixed source-name.
func encodeType(t cxxast.QualType) string {
	var prefix string
	if t.IsConst {
		prefix = "K"
	}
	switch t.Kind {
	case cxxast.KindPointer:
		return prefix + "P" + encodeType(*t.Pointee)
	case cxxast.KindLValueReference:
		return prefix + "R" + encodeType(*t.Pointee)
	case cxxast.KindRValueReference:
		return prefix + "O" + encodeType(*t.Pointee)
	case cxxast.KindBuiltin:
		if code, ok := builtinCodes[t.Name]; ok {
			return prefix + code
		}
		return prefix + sourceName(t.Name)
	default:
		return prefix + sourceName(t.Name)
	}
}

func sourceName(name string) string {
	name = strings.TrimSpace(name)
	return strconv.Itoa(len(name)) + name
}

// FunctionName mangles a free function: _Z<source-name><bare-function-type>,
// or the plain name itself for extern-"C"-shaped names spec.md's importer
// never actually forces here (this repository always mangles, since it has
// no linkage-specifier tracking).
func FunctionName(name string, params []cxxast.ParmVarDecl) string {
	var b strings.Builder
	b.WriteString("_Z")
	b.WriteString(sourceName(name))
	if len(params) == 0 {
		b.WriteString("v")
	} else {
		for _, p := range params {
			b.WriteString(encodeType(p.Type))
		}
	}
	return b.String()
}

// MethodName mangles a non-special member function: _ZN<nested-name>E<params>.
func MethodName(recordName, methodName string, params []cxxast.ParmVarDecl, isConst bool) string {
	var b strings.Builder
	b.WriteString("_ZN")
	b.WriteString(sourceName(recordName))
	b.WriteString(sourceName(methodName))
	b.WriteString("E")
	if isConst {
		b.WriteString("K")
	}
	if len(params) == 0 {
		b.WriteString("v")
	}
	for _, p := range params {
		b.WriteString(encodeType(p.Type))
	}
	return b.String()
}

// CtorName mangles a constructor. The Itanium ABI defines three ctor
// variants (complete-object C1, base-object C2, allocating C3); this
// repository only ever emits thunks that call the complete-object
// constructor, matching the original importer's GetMangledName special
// case for Ctor_Complete.
func CtorName(recordName string, params []cxxast.ParmVarDecl) string {
	return specialMemberName(recordName, "C1", params)
}

// DtorName mangles a destructor, using the complete-object variant D1 for
// the same reason CtorName uses C1.
func DtorName(recordName string) string {
	return specialMemberName(recordName, "D1", nil)
}

func specialMemberName(recordName, code string, params []cxxast.ParmVarDecl) string {
	var b strings.Builder
	b.WriteString("_ZN")
	b.WriteString(sourceName(recordName))
	b.WriteString(code)
	b.WriteString("E")
	if len(params) == 0 {
		b.WriteString("v")
	}
	for _, p := range params {
		b.WriteString(encodeType(p.Type))
	}
	return b.String()
}

// ThunkName synthesizes the name of the generated C thunk that a target
// language binding calls to reach a mangled C++ symbol, e.g.
// "__cxxbind_thunk_N3Foo3BarEv" for a mangled name "_ZN3Foo3BarEv". It never
// collides across a single translation unit because it is derived from the
// mangled name itself.
func ThunkName(mangledName string) string {
	trimmed := strings.TrimPrefix(mangledName, "_Z")
	trimmed = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, trimmed)
	return fmt.Sprintf("__cxxbind_thunk_%s", trimmed)
}
