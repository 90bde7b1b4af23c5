package importer

import (
	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/typemap"
)

// importTypedef implements spec.md §4.5.
func (imp *Importer) importTypedef(td *cxxast.TypedefNameDecl) *memoEntry {
	fromCurrentTarget := imp.Owner.IsFromCurrentTarget(td.Loc(), imp.CurrentTarget)
	entry := &memoEntry{
		Range:             rangeOf(td),
		LocalOrder:        7,
		FromCurrentTarget: fromCurrentTarget,
		Name:              td.Name,
	}
	if td.NestedInRecord {
		entry.Errors = []string{"Typedefs nested in classes are not supported yet"}
		return entry
	}

	if _, ok := wellKnownNames[td.Name]; ok {
		return entry // substituted directly by the Type Mapper; no alias item needed
	}

	mapped, err := imp.mapper.Convert(td.UnderlyingType, nil, true)
	if err != nil {
		entry.Errors = []string{err.Error()}
		return entry
	}

	imp.registerKnownType(td.Name, typemap.KnownDecl{ID: td.ID(), TranslatedName: td.Name})

	entry.Item = &ir.TypeAlias{
		Identifier:     td.Name,
		DeclID:         td.ID(),
		OwningTarget:   imp.Owner.OwningTarget(td.Loc()),
		UnderlyingType: mapped,
	}
	return entry
}

// wellKnownNames mirrors the spelling set typemap.wellKnown recognizes;
// duplicated here (rather than exported from typemap) because the
// Typedef Importer needs only membership, not the mapped value.
var wellKnownNames = map[string]bool{
	"ptrdiff_t": true, "intptr_t": true, "std::ptrdiff_t": true, "std::intptr_t": true,
	"size_t": true, "uintptr_t": true, "std::size_t": true, "std::uintptr_t": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"char16_t": true, "char32_t": true, "wchar_t": true,
}
