// Package layout computes struct/class size, alignment, and trivial-ABI
// eligibility from a field list, standing in for clang's ASTRecordLayout
// (real record layout depends on target data layout, padding rules for
// bit-fields, virtual table pointers, and empty base optimization — this
// package implements the common, non-polymorphic, non-bit-field case that
// covers the great majority of headers a binding generator sees).
package layout

import "cxxbind/internal/cxxast"

// Result is the layout the Record Importer copies into ir.Record.
type Result struct {
	SizeBytes      uint64
	AlignmentBytes uint64
}

// sizeAndAlign returns the size and alignment, in bytes, of a scalar or
// pointer/reference QualType. Named types default to 8 bytes (the common
// case for a record composed only of pointers to other records is
// correctly sized; a record embedding another by value is undercounted).
func sizeAndAlign(t cxxast.QualType) (size, align uint64) {
	switch t.Kind {
	case cxxast.KindPointer, cxxast.KindLValueReference, cxxast.KindRValueReference:
		return 8, 8
	case cxxast.KindBuiltin:
		return builtinSizeAndAlign(t.Name)
	default:
		return 8, 8
	}
}

func builtinSizeAndAlign(name string) (uint64, uint64) {
	switch name {
	case "void":
		return 0, 1
	case "bool", "char", "signed char", "unsigned char", "int8_t", "uint8_t":
		return 1, 1
	case "short", "unsigned short", "int16_t", "uint16_t", "char16_t":
		return 2, 2
	case "int", "unsigned int", "unsigned", "float", "int32_t", "uint32_t", "char32_t", "wchar_t":
		return 4, 4
	case "long", "unsigned long", "long long", "unsigned long long",
		"double", "int64_t", "uint64_t", "size_t", "ptrdiff_t":
		return 8, 8
	case "long double":
		return 16, 16
	default:
		return 4, 4
	}
}

// Compute lays fields out in declaration order applying C++'s
// natural-alignment padding rule: each field starts at the next offset
// that is a multiple of its own alignment, and the record's final size is
// padded up to a multiple of its overall alignment.
func Compute(fields []cxxast.QualType) Result {
	var offset, maxAlign uint64 = 0, 1
	for _, f := range fields {
		size, align := sizeAndAlign(f)
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignUp(offset, align)
		offset += size
	}
	if len(fields) == 0 {
		// C++ forbids zero-size objects; an empty struct/class occupies
		// one byte and has 1-byte alignment.
		return Result{SizeBytes: 1, AlignmentBytes: 1}
	}
	return Result{SizeBytes: alignUp(offset, maxAlign), AlignmentBytes: maxAlign}
}

// FieldOffsets returns each field's byte offset alongside Compute's
// overall result, matching the order fields were passed in.
func FieldOffsets(fields []cxxast.QualType) ([]uint64, Result) {
	offsets := make([]uint64, len(fields))
	var offset, maxAlign uint64 = 0, 1
	for i, f := range fields {
		size, align := sizeAndAlign(f)
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignUp(offset, align)
		offsets[i] = offset
		offset += size
	}
	if len(fields) == 0 {
		return offsets, Result{SizeBytes: 1, AlignmentBytes: 1}
	}
	return offsets, Result{SizeBytes: alignUp(offset, maxAlign), AlignmentBytes: maxAlign}
}

func alignUp(v, align uint64) uint64 {
	if align == 0 {
		return v
	}
	rem := v % align
	if rem == 0 {
		return v
	}
	return v + (align - rem)
}

// IsTrivialAbi reports whether a record with the given special-member
// definitions and base-class status is eligible for trivial ABI passing
// (i.e. can be passed in registers): no base classes, and none of the
// copy/move/dtor operations are user-provided or deleted.
func IsTrivialAbi(hasBaseClass, copyUserProvided, moveUserProvided, dtorUserProvided, anyDeleted bool) bool {
	if hasBaseClass || anyDeleted {
		return false
	}
	return !copyUserProvided && !moveUserProvided && !dtorUserProvided
}
