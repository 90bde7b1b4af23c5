package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/lifetime"
	"cxxbind/internal/resolve"
)

const currentTarget ir.TargetLabel = "//pkg:api"

func newImporter(t *testing.T, header, source string) (*Importer, []*cxxast.TranslationUnitDecl) {
	t.Helper()
	ast := cxxast.NewASTContext()
	file := ast.SourceMgr.AddEntryFile(header)
	tu, err := ast.ParseFile(header, []byte(source), file)
	require.NoError(t, err)

	owner := resolve.NewOwnerResolver(ast.SourceMgr, resolve.HeaderTargetMap{header: currentTarget})
	imp := New(ast, owner, lifetime.NoLifetimesOracle{}, currentTarget)
	return imp, []*cxxast.TranslationUnitDecl{tu}
}

func TestWalk_FreeFunctionWithBuiltins(t *testing.T) {
	imp, tus := newImporter(t, "api.h", "int f(double x);")
	items := NewWalker(imp).Walk(tus)

	var fn *ir.Func
	for _, item := range items {
		if f, ok := item.(*ir.Func); ok {
			fn = f
		}
	}
	require.NotNil(t, fn, "expected a Func item, got %#v", items)
	assert.Equal(t, ir.Identifier("f"), fn.Name)
	assert.Equal(t, "i32", fn.ReturnType.Target.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "f64", fn.Params[0].Type.Target.Name)
	assert.Equal(t, "_Z1fd", fn.MangledName)
}

func TestWalk_UnionProducesDiagnostic(t *testing.T) {
	imp, tus := newImporter(t, "api.h", "union U { int a; float b; };")
	items := NewWalker(imp).Walk(tus)

	var unsupported *ir.UnsupportedItem
	for _, item := range items {
		if u, ok := item.(*ir.UnsupportedItem); ok {
			unsupported = u
		}
		if _, ok := item.(*ir.Record); ok {
			t.Fatalf("expected no Record item for a union, got one")
		}
	}
	require.NotNil(t, unsupported)
	assert.Equal(t, "U", unsupported.Name)
	assert.Equal(t, "Unions are not supported yet", unsupported.Message)
}

func TestWalk_StructWithPointerAndReference(t *testing.T) {
	imp, tus := newImporter(t, "api.h", "struct S { int* p; int& r; };")
	items := NewWalker(imp).Walk(tus)

	var rec *ir.Record
	for _, item := range items {
		if r, ok := item.(*ir.Record); ok {
			rec = r
		}
	}
	require.NotNil(t, rec)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, ir.MappedPointer, rec.Fields[0].Type.Kind)
	assert.True(t, rec.Fields[0].Type.Nullable)
	assert.Equal(t, ir.MappedLValueReference, rec.Fields[1].Type.Kind)
	assert.True(t, rec.IsTrivialAbi)
}

func TestWalk_ForeignTargetIsSilentlySkipped(t *testing.T) {
	ast := cxxast.NewASTContext()
	file := ast.SourceMgr.AddEntryFile("other.h")
	tu, err := ast.ParseFile("other.h", []byte("int f();"), file)
	require.NoError(t, err)

	owner := resolve.NewOwnerResolver(ast.SourceMgr, resolve.HeaderTargetMap{"other.h": "//pkg:other"})
	imp := New(ast, owner, lifetime.NoLifetimesOracle{}, currentTarget)
	items := NewWalker(imp).Walk([]*cxxast.TranslationUnitDecl{tu})

	assert.Empty(t, items)
}

func TestWalk_CommentInsideRecordBodyIsNotFree(t *testing.T) {
	imp, tus := newImporter(t, "api.h", "struct S {\n  // a field comment\n  int x;\n};\n")
	items := NewWalker(imp).Walk(tus)

	for _, item := range items {
		if c, ok := item.(ir.Comment); ok {
			t.Fatalf("expected the comment nested inside S's body to be occupied, got free comment %q", c.Text)
		}
	}
}

func TestWalk_WellKnownTypedefProducesNoAlias(t *testing.T) {
	imp, tus := newImporter(t, "api.h", "typedef unsigned long size_t;\nint f(size_t n);")
	items := NewWalker(imp).Walk(tus)

	for _, item := range items {
		if a, ok := item.(*ir.TypeAlias); ok {
			t.Fatalf("expected no TypeAlias item for the well-known typedef, got %#v", a)
		}
	}
}

func TestWalk_ConstLValueRefQualifiedMethod(t *testing.T) {
	imp, tus := newImporter(t, "api.h", "struct S { int get() const &; };")
	items := NewWalker(imp).Walk(tus)

	var fn *ir.Func
	for _, item := range items {
		if f, ok := item.(*ir.Func); ok {
			fn = f
		}
	}
	require.NotNil(t, fn, "expected a Func item for S::get, got %#v", items)
	require.NotNil(t, fn.MemberFunc)
	require.NotNil(t, fn.MemberFunc.Instance)
	assert.Equal(t, ir.ReferenceLValue, fn.MemberFunc.Instance.Reference)
	assert.True(t, fn.MemberFunc.Instance.IsConst)
}

func TestWalk_NonTrivialAbiByValueParameterIsUnsupported(t *testing.T) {
	imp, tus := newImporter(t, "api.h", "struct T { T(const T&); };\nvoid f(T t);")
	items := NewWalker(imp).Walk(tus)

	var unsupported *ir.UnsupportedItem
	for _, item := range items {
		if u, ok := item.(*ir.UnsupportedItem); ok && u.Name == "f" {
			unsupported = u
		}
		if fn, ok := item.(*ir.Func); ok && fn.Name == ir.Identifier("f") {
			t.Fatalf("expected f to be rejected, got a Func item instead: %#v", fn)
		}
	}
	require.NotNil(t, unsupported, "expected an UnsupportedItem for f, got %#v", items)
	assert.Equal(t, "Non-trivial_abi type 'T' is not supported by value as a parameter", unsupported.Message)
}

func TestLookupDecl_IsMemoized(t *testing.T) {
	imp, tus := newImporter(t, "api.h", "struct S { int x; };")
	var rec *cxxast.RecordDecl
	for _, d := range tus[0].Decls {
		if r, ok := d.(*cxxast.RecordDecl); ok {
			rec = r
		}
	}
	require.NotNil(t, rec)

	first := imp.LookupDecl(rec)
	second := imp.LookupDecl(rec)
	assert.Same(t, first, second)
}
