package importer

import (
	"fmt"

	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/layout"
	"cxxbind/internal/resolve"
	"cxxbind/internal/typemap"
)

// importFields implements spec.md §4.4 for every field of rec, in
// declaration order. It returns the first failure message (per invariant
// 3 in spec.md §3, a Record with any unconvertible field is never
// emitted, so the caller discards partial results on error).
func (imp *Importer) importFields(rec *cxxast.RecordDecl) ([]ir.Field, string) {
	fieldTypes := make([]cxxast.QualType, len(rec.Fields))
	for i, f := range rec.Fields {
		fieldTypes[i] = f.Type
	}
	offsets, _ := layout.FieldOffsets(fieldTypes)

	fields := make([]ir.Field, 0, len(rec.Fields))
	for i, f := range rec.Fields {
		mapped, err := imp.mapper.Convert(f.Type, nil, true)
		if err != nil {
			return nil, fmt.Sprintf("Field type '%s' is not supported", f.Type.Spelling)
		}
		access := f.Access

		ident, ok := resolve.TranslateIdentifier(f.Name, i)
		if !ok {
			return nil, fmt.Sprintf("Cannot translate name for field '%s'", f.Name)
		}

		fields = append(fields, ir.Field{
			Identifier: ident.Name,
			DocComment: imp.AST.DocComment(f.Loc()),
			Type:       mapped,
			Access:     access,
			Offset:     offsets[i] * 8, // spec.md §3: "bit offset within the record"
		})
	}
	return fields, ""
}

func typemapKnownDeclFor(rec *cxxast.RecordDecl) typemap.KnownDecl {
	return typemap.KnownDecl{ID: rec.ID(), TranslatedName: rec.Name}
}
