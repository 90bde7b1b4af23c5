package importer

import (
	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/layout"
)

// importRecord implements spec.md §4.3.
func (imp *Importer) importRecord(rec *cxxast.RecordDecl) *memoEntry {
	fromCurrentTarget := imp.Owner.IsFromCurrentTarget(rec.Loc(), imp.CurrentTarget)
	entry := &memoEntry{
		Range:             rangeOf(rec),
		LocalOrder:        localOrderForRecord(rec),
		FromCurrentTarget: fromCurrentTarget,
		Name:              rec.Name,
	}

	// Skip rules.
	if !rec.HasDefinition {
		return entry
	}

	// Refuse rules.
	if rec.Parent != nil {
		entry.Errors = []string{"Nested classes are not supported yet"}
		return entry
	}
	if rec.IsUnion {
		entry.Errors = []string{"Unions are not supported yet"}
		return entry
	}
	if rec.IsTemplate {
		entry.Errors = []string{"Class templates are not supported yet"}
		return entry
	}

	if rec.Name == "" {
		return entry // anonymous / injected-class-name: silently skip
	}

	// Step 5: provisionally register so field/method types that mention
	// this record (e.g. a self-referential pointer) can resolve while the
	// record itself is still being imported.
	imp.registerKnownType(rec.Name, typemapKnownDeclFor(rec))

	fields, fieldErr := imp.importFields(rec)
	if fieldErr != "" {
		imp.unregisterKnownType(rec.Name)
		entry.Errors = []string{"Importing field failed"}
		return entry
	}

	fieldTypes := make([]cxxast.QualType, len(rec.Fields))
	for i, f := range rec.Fields {
		fieldTypes[i] = f.Type
	}
	result := layout.Compute(fieldTypes)

	copySummary := summarizeSpecialMember(rec.CopyCtor != nil, rec.CopyCtor != nil && rec.CopyCtor.IsDeleted, rec.CopyCtor != nil && rec.CopyCtor.IsUserDefined, rec.HasBaseClass, accessOrPublic(rec.CopyCtor))
	moveSummary := summarizeSpecialMember(rec.MoveCtor != nil, rec.MoveCtor != nil && rec.MoveCtor.IsDeleted, rec.MoveCtor != nil && rec.MoveCtor.IsUserDefined, rec.HasBaseClass, accessOrPublic(rec.MoveCtor))
	dtorSummary := summarizeDtor(rec.Dtor, rec.HasBaseClass)

	isTrivialAbi := layout.IsTrivialAbi(
		rec.HasBaseClass,
		copySummary.Definition == ir.SpecialNontrivialSelf,
		moveSummary.Definition == ir.SpecialNontrivialSelf,
		dtorSummary.Definition == ir.SpecialNontrivialSelf,
		copySummary.Definition == ir.SpecialDeleted || moveSummary.Definition == ir.SpecialDeleted || dtorSummary.Definition == ir.SpecialDeleted,
	)

	entry.Item = &ir.Record{
		Identifier:      rec.Name,
		DeclID:          rec.ID(),
		OwningTarget:    imp.Owner.OwningTarget(rec.Loc()),
		DocComment:      imp.AST.DocComment(rec.Loc()),
		Fields:          fields,
		SizeBytes:       result.SizeBytes,
		AlignmentBytes:  result.AlignmentBytes,
		CopyConstructor: copySummary,
		MoveConstructor: moveSummary,
		Destructor:      dtorSummary,
		IsTrivialAbi:    isTrivialAbi,
		IsFinal:         rec.IsFinal,
	}
	return entry
}

func recordTrivialAbi(rec *cxxast.RecordDecl) bool {
	copyProvided := rec.CopyCtor != nil && rec.CopyCtor.IsUserDefined
	moveProvided := rec.MoveCtor != nil && rec.MoveCtor.IsUserDefined
	dtorProvided := rec.Dtor != nil && !rec.Dtor.IsDefault && !rec.Dtor.IsDeleted
	anyDeleted := (rec.CopyCtor != nil && rec.CopyCtor.IsDeleted) || (rec.MoveCtor != nil && rec.MoveCtor.IsDeleted) || (rec.Dtor != nil && rec.Dtor.IsDeleted)
	return layout.IsTrivialAbi(rec.HasBaseClass, copyProvided, moveProvided, dtorProvided, anyDeleted)
}

func accessOrPublic(ctor *cxxast.CXXConstructorDecl) ir.AccessSpecifier {
	if ctor == nil {
		return ir.AccessPublic
	}
	return ctor.Access
}

// summarizeSpecialMember implements spec.md §4.3 step 2's "force implicit
// members to be declared so their properties are queryable": a copy/move
// constructor the source never wrote out is still an implicitly-declared
// member, not an absent one, so this never reports SpecialNotDeclared for
// it. Absent a base class that could itself contribute a non-trivial
// implementation, an implicit special member is trivial.
func summarizeSpecialMember(declared, deleted, userDefined, hasBaseClass bool, access ir.AccessSpecifier) ir.SpecialMemberFunc {
	switch {
	case !declared:
		if hasBaseClass {
			return ir.SpecialMemberFunc{Definition: ir.SpecialNontrivialMembers, Access: ir.AccessPublic}
		}
		return ir.SpecialMemberFunc{Definition: ir.SpecialTrivial, Access: ir.AccessPublic}
	case deleted:
		return ir.SpecialMemberFunc{Definition: ir.SpecialDeleted, Access: access}
	case userDefined:
		return ir.SpecialMemberFunc{Definition: ir.SpecialNontrivialSelf, Access: access}
	default:
		return ir.SpecialMemberFunc{Definition: ir.SpecialTrivial, Access: access}
	}
}

// summarizeDtor is summarizeSpecialMember's destructor counterpart: every
// record has an implicit destructor once forced-declared, so a nil Dtor
// (nothing explicit in the source) is summarized the same way, not as
// SpecialNotDeclared.
func summarizeDtor(d *cxxast.CXXDestructorDecl, hasBaseClass bool) ir.SpecialMemberFunc {
	if d == nil {
		if hasBaseClass {
			return ir.SpecialMemberFunc{Definition: ir.SpecialNontrivialMembers, Access: ir.AccessPublic}
		}
		return ir.SpecialMemberFunc{Definition: ir.SpecialTrivial, Access: ir.AccessPublic}
	}
	switch {
	case d.IsDeleted:
		return ir.SpecialMemberFunc{Definition: ir.SpecialDeleted, Access: d.Access}
	case d.IsDefault:
		return ir.SpecialMemberFunc{Definition: ir.SpecialTrivial, Access: d.Access}
	default:
		return ir.SpecialMemberFunc{Definition: ir.SpecialNontrivialSelf, Access: d.Access}
	}
}

func localOrderForRecord(rec *cxxast.RecordDecl) int {
	if rec.Parent != nil {
		return 1
	}
	return 0
}
