package importer

import (
	"sort"

	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/resolve"
)

// Walker drives the Translation-Unit Walker algorithm from spec.md §4.1
// across every parsed header belonging to the current target.
type Walker struct {
	Importer *Importer
}

func NewWalker(imp *Importer) *Walker {
	return &Walker{Importer: imp}
}

// orderedItem pairs an imported (or synthesized) item with the sort key
// spec.md §4.1 step 5 defines.
type orderedItem struct {
	item  ir.Item
	rng   cxxast.SourceRange
	local int
}

// Walk implements the full algorithm over the given translation units,
// one per parsed public header. Only the declarations of those units are
// visited: #include directives are not followed, so declarations in
// included headers never reach the Importer.
func (w *Walker) Walk(tus []*cxxast.TranslationUnitDecl) []ir.Item {
	var visited []cxxast.Decl
	for _, tu := range tus {
		w.visitDeclContext(tu.Decls, &visited)
	}

	var docBegins []cxxast.SourceLocation
	var occupied []cxxast.SourceRange
	var ordered []orderedItem

	for _, d := range visited {
		entry := w.Importer.LookupDecl(d)
		if entry.Item != nil {
			ordered = append(ordered, orderedItem{item: entry.Item, rng: entry.Range, local: entry.LocalOrder})
			occupied = append(occupied, entry.Range)
			if doc := w.Importer.AST.DocComment(d.Loc()); doc != "" {
				// DocComment uses the last comment ending on the line above
				// d; record where that comment begins.
				var begin cxxast.SourceLocation
				for _, c := range w.Importer.AST.Comments(d.Loc().File) {
					if c.Range.End.Line == d.Loc().Line-1 {
						begin = c.Range.Begin
					}
				}
				docBegins = append(docBegins, begin)
			}
		}
		if entry.FromCurrentTarget {
			for _, msg := range entry.Errors {
				ordered = append(ordered, orderedItem{
					item: &ir.UnsupportedItem{
						Name:      unsupportedName(entry.Name),
						Message:   msg,
						SourceLoc: locOf(w.Importer.AST, d.Loc()),
					},
					rng:   entry.Range,
					local: entry.LocalOrder,
				})
			}
		}
	}

	for _, tu := range tus {
		comments := w.Importer.AST.Comments(tu.File)
		for _, c := range resolve.FreeComments(comments, docBegins, occupied) {
			ordered = append(ordered, orderedItem{item: c, rng: cxxast.SourceRange{}, local: 0})
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.rng != b.rng {
			return a.rng.Less(b.rng)
		}
		return a.local < b.local
	})

	items := make([]ir.Item, len(ordered))
	for i, o := range ordered {
		items[i] = o.item
	}
	return items
}

func unsupportedName(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}

func locOf(ast *cxxast.ASTContext, loc cxxast.SourceLocation) ir.SourceLoc {
	return ir.SourceLoc{Filename: ast.SourceMgr.Path(loc.File), Line: loc.Line, Column: loc.Column}
}

// visitDeclContext implements step 1 of §4.1: recurse into namespaces,
// leave everything else as a leaf for the walker to re-visit through each
// record's own nested-declaration lists.
func (w *Walker) visitDeclContext(decls []cxxast.Decl, visited *[]cxxast.Decl) {
	for _, d := range decls {
		*visited = append(*visited, d)
		switch v := d.(type) {
		case *cxxast.NamespaceDecl:
			w.visitDeclContext(v.Decls, visited)
		case *cxxast.RecordDecl:
			w.Importer.LookupDecl(v) // import before descending, so nested items can check "parent successfully imported"
			w.visitRecordMembers(v, visited)
		}
	}
}

// visitRecordMembers implements §4.3 step 10: after a record is imported,
// the walker re-enters its declaration context to import nested methods,
// nested records, and nested typedefs so their diagnostics still surface.
func (w *Walker) visitRecordMembers(rec *cxxast.RecordDecl, visited *[]cxxast.Decl) {
	for _, m := range rec.Methods {
		*visited = append(*visited, m)
	}
	if rec.DefaultCtor != nil {
		*visited = append(*visited, rec.DefaultCtor)
	}
	if rec.CopyCtor != nil {
		*visited = append(*visited, rec.CopyCtor)
	}
	if rec.MoveCtor != nil {
		*visited = append(*visited, rec.MoveCtor)
	}
	for _, c := range rec.OtherCtors {
		*visited = append(*visited, c)
	}
	if rec.Dtor != nil {
		*visited = append(*visited, rec.Dtor)
	}
	for _, td := range rec.Typedefs {
		*visited = append(*visited, td)
	}
	for _, nested := range rec.Nested {
		*visited = append(*visited, nested)
		w.Importer.LookupDecl(nested)
		w.visitRecordMembers(nested, visited)
	}
}
