// Package importer implements the Translation-Unit Walker and the
// per-kind Declaration Importers (function, record, field, typedef)
// described in spec.md §4.
package importer

import (
	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/lifetime"
	"cxxbind/internal/resolve"
	"cxxbind/internal/typemap"
)

// memoEntry is one cached lookup result: at most one Item, plus zero or
// more structurally-unsupported/type-conversion-failure reasons, along
// with the metadata the walker needs to place it in the final sort.
type memoEntry struct {
	Item              ir.Item
	Errors            []string
	Range             cxxast.SourceRange
	LocalOrder        int
	FromCurrentTarget bool
	Name              string
}

// Importer holds the memo cache and the collaborators every Declaration
// Importer needs: the frontend facade, the owner/name resolvers, the type
// mapper, and the lifetime oracle. It is single-threaded, per spec.md §5.
type Importer struct {
	AST           *cxxast.ASTContext
	Owner         *resolve.OwnerResolver
	Oracle        lifetime.Oracle
	CurrentTarget ir.TargetLabel

	mapper      *typemap.Mapper
	memo        map[ir.DeclID]*memoEntry
	knownByName map[string]typemap.KnownDecl
}

func New(ast *cxxast.ASTContext, owner *resolve.OwnerResolver, oracle lifetime.Oracle, currentTarget ir.TargetLabel) *Importer {
	imp := &Importer{
		AST:           ast,
		Owner:         owner,
		Oracle:        oracle,
		CurrentTarget: currentTarget,
		memo:          make(map[ir.DeclID]*memoEntry),
		knownByName:   make(map[string]typemap.KnownDecl),
	}
	imp.mapper = typemap.New(imp)
	return imp
}

// LookupKnownType implements typemap.Resolver against the running set of
// successfully-imported tag/typedef declarations (invariant 5 in spec.md
// §3: "known_type_decls contains exactly the tag/typedef declarations
// whose import succeeded").
func (imp *Importer) LookupKnownType(name string) (typemap.KnownDecl, bool) {
	kd, ok := imp.knownByName[name]
	return kd, ok
}

func (imp *Importer) registerKnownType(name string, kd typemap.KnownDecl) {
	imp.knownByName[name] = kd
}

func (imp *Importer) unregisterKnownType(name string) {
	delete(imp.knownByName, name)
}

// LookupDecl returns the memoized import result for d, computing it on
// first sight. This is the sole entry point the walker and the
// declaration importers use to reach another declaration — spec.md §3's
// invariant 4 ("a declaration appears in the IR at most once") holds
// because every caller reaches a declaration through this function.
func (imp *Importer) LookupDecl(d cxxast.Decl) *memoEntry {
	if entry, ok := imp.memo[d.ID()]; ok {
		return entry
	}
	// Insert a placeholder before importing so that a declaration that
	// (incorrectly) refers to itself recursively terminates rather than
	// looping; the Record Importer additionally uses provisional
	// known-type registration for the common self-referential-pointer
	// case (a struct with a field of pointer-to-itself type).
	entry := &memoEntry{}
	imp.memo[d.ID()] = entry
	*entry = *imp.importDecl(d)
	return entry
}

func (imp *Importer) importDecl(d cxxast.Decl) *memoEntry {
	switch v := d.(type) {
	case *cxxast.FunctionDecl, *cxxast.CXXMethodDecl, *cxxast.CXXConstructorDecl, *cxxast.CXXDestructorDecl:
		return imp.importFunction(d)
	case *cxxast.RecordDecl:
		return imp.importRecord(v)
	case *cxxast.TypedefNameDecl:
		return imp.importTypedef(v)
	case *cxxast.NamespaceDecl:
		return &memoEntry{} // handled structurally by the walker, not as a leaf item
	case *cxxast.FunctionTemplateDecl:
		return &memoEntry{
			Errors:            []string{"Function templates are not supported yet"},
			Range:             rangeOf(d),
			FromCurrentTarget: imp.Owner.IsFromCurrentTarget(d.Loc(), imp.CurrentTarget),
		}
	case *cxxast.ClassTemplateDecl:
		return &memoEntry{
			Errors:            []string{"Class templates are not supported yet"},
			Range:             rangeOf(d),
			FromCurrentTarget: imp.Owner.IsFromCurrentTarget(d.Loc(), imp.CurrentTarget),
		}
	default:
		return &memoEntry{} // unknown declaration kind: silently skipped
	}
}

func rangeOf(d cxxast.Decl) cxxast.SourceRange {
	return cxxast.SourceRange{Begin: d.Loc(), End: d.EndLoc()}
}
