package importer

import (
	"fmt"
	"sort"

	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
	"cxxbind/internal/lifetime"
	"cxxbind/internal/mangle"
	"cxxbind/internal/resolve"
)

// fnLike normalizes the four declaration shapes the Function Importer
// accepts (free function, ordinary method, constructor, destructor) into
// one view, since spec.md §4.2's pipeline treats them uniformly apart from
// name resolution and mangling.
type fnLike struct {
	decl       cxxast.Decl
	name       string
	isCtor     bool
	isDtor     bool
	isExplicit bool
	params     []cxxast.ParmVarDecl
	returnType cxxast.QualType
	parent     *cxxast.RecordDecl
	access     ir.AccessSpecifier
	isStatic   bool
	isConst    bool
	isVirtual  bool
	isInline   bool
	isDeleted  bool
	isTemplate bool
	ref        ir.ReferenceQualification
}

func toFnLike(d cxxast.Decl) (fnLike, bool) {
	switch v := d.(type) {
	case *cxxast.FunctionDecl:
		return fnLike{
			decl: d, name: v.Name, params: v.Params, returnType: v.ReturnType,
			access: ir.AccessPublic, isInline: v.IsInline, isDeleted: v.IsDeleted,
			isTemplate: v.IsTemplate,
		}, true
	case *cxxast.CXXMethodDecl:
		return fnLike{
			decl: d, name: v.Name, params: v.Params, returnType: v.ReturnType,
			parent: v.Parent, access: v.Access, isStatic: v.IsStatic, isConst: v.IsConst,
			isVirtual: v.IsVirtual, isInline: v.IsInline, isDeleted: v.IsDeleted, ref: v.RefQualifier,
		}, true
	case *cxxast.CXXConstructorDecl:
		return fnLike{
			decl: d, name: nameOf(v.Parent), isCtor: true, isExplicit: v.IsExplicit,
			params: v.Params, parent: v.Parent, access: v.Access,
			isInline: v.IsInline, isDeleted: v.IsDeleted,
		}, true
	case *cxxast.CXXDestructorDecl:
		return fnLike{
			decl: d, name: "~" + nameOf(v.Parent), isDtor: true, parent: v.Parent,
			access: v.Access, isVirtual: v.IsVirtual, isInline: v.IsInline, isDeleted: v.IsDeleted,
		}, true
	default:
		return fnLike{}, false
	}
}

func nameOf(r *cxxast.RecordDecl) string {
	if r == nil {
		return ""
	}
	return r.Name
}

// importFunction implements spec.md §4.2 for any of the four function-like
// declaration kinds.
func (imp *Importer) importFunction(d cxxast.Decl) *memoEntry {
	fn, ok := toFnLike(d)
	if !ok {
		return &memoEntry{}
	}

	fromCurrentTarget := imp.Owner.IsFromCurrentTarget(d.Loc(), imp.CurrentTarget)
	entry := &memoEntry{
		Range:             rangeOf(d),
		LocalOrder:        localOrderForFunc(fn),
		FromCurrentTarget: fromCurrentTarget,
		Name:              fn.name,
	}

	// Skip rules.
	if !fromCurrentTarget {
		return entry
	}
	if fn.isDeleted {
		return entry
	}
	if fn.isTemplate {
		entry.Errors = []string{"Function templates are not supported yet"}
		return entry
	}
	if fn.parent != nil && fn.access != ir.AccessPublic {
		return entry
	}

	// Refuse rule: method whose owning record was not successfully imported.
	if fn.parent != nil {
		parentEntry := imp.LookupDecl(fn.parent)
		if parentEntry.Item == nil {
			entry.Errors = []string{"Couldn't import the parent"}
			return entry
		}
	}

	var errs []string
	oracleLifetimes, hasOracle := imp.Oracle.Lifetimes(d.ID())
	if hasOracle && len(oracleLifetimes.ParamLifetimes) != len(fn.params) {
		panicInvariant("lifetime parameter count %d does not match function parameter count %d for %q",
			len(oracleLifetimes.ParamLifetimes), len(fn.params), fn.name)
	}

	var params []ir.FuncParam
	var lifetimesUsed []ir.Lifetime

	// Implicit __this parameter for non-static member functions.
	isInstanceMethod := fn.parent != nil && !fn.isStatic
	if isInstanceMethod {
		thisType := cxxast.QualType{Kind: cxxast.KindPointer, Pointee: &cxxast.QualType{Kind: cxxast.KindTag, Name: fn.parent.Name}}
		if fn.isConst {
			thisType.Pointee.IsConst = true
		}
		var stack *lifetime.Stack
		if hasOracle && oracleLifetimes.ThisLifetime != nil {
			stack = lifetime.NewStack(lifetime.TypeLifetimes{*oracleLifetimes.ThisLifetime})
		}
		mapped, err := imp.mapper.Convert(thisType, stack, false)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Parameter type '%s' is not supported", thisType.Spelling))
		} else {
			params = append(params, ir.FuncParam{Type: mapped, Identifier: "__this"})
			if hasOracle && oracleLifetimes.ThisLifetime != nil {
				lifetimesUsed = append(lifetimesUsed, *oracleLifetimes.ThisLifetime)
			}
		}
	}

	for i, p := range fn.params {
		var stack *lifetime.Stack
		if hasOracle {
			stack = lifetime.NewStack(oracleLifetimes.ParamLifetimes[i])
		}
		mapped, err := imp.mapper.Convert(p.Type, stack, true)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Parameter type '%s' is not supported", p.Type.Spelling))
			continue
		}
		if isNonTrivialAbiByValue(p.Type, imp) {
			errs = append(errs, fmt.Sprintf("Non-trivial_abi type '%s' is not supported by value as a parameter", p.Type.Spelling))
			continue
		}
		ident, ok := resolve.TranslateIdentifier(p.Name, i)
		if !ok {
			panicInvariant("missing translated identifier for regular parameter %d of %q", i, fn.name)
		}
		params = append(params, ir.FuncParam{Type: mapped, Identifier: ident.Name})
		if hasOracle {
			lifetimesUsed = append(lifetimesUsed, oracleLifetimes.ParamLifetimes[i]...)
		}
	}

	var returnType ir.MappedType
	if fn.isCtor || fn.isDtor {
		returnType = ir.VoidType()
	} else {
		var stack *lifetime.Stack
		if hasOracle {
			stack = lifetime.NewStack(oracleLifetimes.ReturnLifetimes)
		}
		mapped, err := imp.mapper.Convert(fn.returnType, stack, true)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Return type '%s' is not supported", fn.returnType.Spelling))
		} else {
			returnType = mapped
			if isNonTrivialAbiByValue(fn.returnType, imp) {
				errs = append(errs, fmt.Sprintf("Non-trivial_abi type '%s' is not supported by value as a return type", fn.returnType.Spelling))
			}
		}
		if hasOracle {
			lifetimesUsed = append(lifetimesUsed, oracleLifetimes.ReturnLifetimes...)
		}
	}

	if len(errs) > 0 {
		entry.Errors = errs
		return entry
	}

	translatedName, ok := resolve.TranslateFunctionName(fn.isCtor, fn.isDtor, fn.name, 0)
	if !ok {
		return entry // operator/conversion/literal-operator/deduction-guide: silently skip
	}

	mangled, err := mangleFunc(fn)
	if err != nil {
		panicInvariant("%s", err)
	}

	var memberFunc *ir.MemberFuncMetadata
	if fn.parent != nil {
		memberFunc = &ir.MemberFuncMetadata{RecordID: fn.parent.ID()}
		if isInstanceMethod {
			memberFunc.Instance = &ir.InstanceMethodMetadata{
				Reference:      fn.ref,
				IsConst:        fn.isConst,
				IsVirtual:      fn.isVirtual,
				IsExplicitCtor: fn.isCtor && fn.isExplicit,
			}
		}
	}

	entry.Item = &ir.Func{
		Name:           translatedName,
		DeclID:         d.ID(),
		OwningTarget:   imp.CurrentTarget,
		DocComment:     imp.AST.DocComment(d.Loc()),
		MangledName:    mangled,
		ReturnType:     returnType,
		Params:         params,
		LifetimeParams: sortedUniqueLifetimes(lifetimesUsed),
		IsInline:       fn.isInline,
		MemberFunc:     memberFunc,
		SourceLoc: ir.SourceLoc{
			Filename: imp.AST.SourceMgr.Path(d.Loc().File),
			Line:     d.Loc().Line,
			Column:   d.Loc().Column,
		},
	}
	return entry
}

// mangleFunc dispatches to the mangler appropriate for fn's shape. A
// constructor or destructor with no enclosing record is a frontend
// invariant violation: mangling a special member always requires the
// record it belongs to.
func mangleFunc(fn fnLike) (string, error) {
	switch {
	case fn.isCtor:
		if fn.parent == nil {
			return "", invariantf("failed to mangle constructor %q: no enclosing record", fn.name)
		}
		return mangle.CtorName(fn.parent.Name, fn.params), nil
	case fn.isDtor:
		if fn.parent == nil {
			return "", invariantf("failed to mangle destructor %q: no enclosing record", fn.name)
		}
		return mangle.DtorName(fn.parent.Name), nil
	case fn.parent != nil:
		return mangle.MethodName(fn.parent.Name, fn.name, fn.params, fn.isConst), nil
	default:
		return mangle.FunctionName(fn.name, fn.params), nil
	}
}

// isNonTrivialAbiByValue stands in for the frontend's "can pass in
// registers" predicate: for a by-value named type (tag or bare name) that
// resolves to an already-imported record, it reports whether that record
// fails recordTrivialAbi. Pointers, references, builtins, typedefs and
// unknown names are never flagged.
func isNonTrivialAbiByValue(t cxxast.QualType, imp *Importer) bool {
	if t.Kind != cxxast.KindTag && t.Kind != cxxast.KindTypedef {
		return false
	}
	kd, ok := imp.LookupKnownType(t.Name)
	if !ok {
		return false
	}
	rec, ok := imp.AST.LookupDecl(kd.ID)
	if !ok {
		return false
	}
	recordDecl, ok := rec.(*cxxast.RecordDecl)
	if !ok {
		return false
	}
	return !recordTrivialAbi(recordDecl)
}

func localOrderForFunc(fn fnLike) int {
	if fn.parent == nil {
		return 7
	}
	switch {
	case fn.isCtor:
		switch {
		case len(fn.params) == 0:
			return 2
		case isCopyParams(fn):
			return 3
		case isMoveParams(fn):
			return 4
		default:
			return 5
		}
	case fn.isDtor:
		return 6
	default:
		return 7
	}
}

func isCopyParams(fn fnLike) bool {
	return len(fn.params) == 1 && fn.params[0].Type.Kind == cxxast.KindLValueReference &&
		fn.params[0].Type.Pointee != nil && fn.params[0].Type.Pointee.Name == fn.parent.Name
}

func isMoveParams(fn fnLike) bool {
	return len(fn.params) == 1 && fn.params[0].Type.Kind == cxxast.KindRValueReference &&
		fn.params[0].Type.Pointee != nil && fn.params[0].Type.Pointee.Name == fn.parent.Name
}

func sortedUniqueLifetimes(in []ir.Lifetime) []ir.Lifetime {
	seen := make(map[ir.LifetimeID]ir.Lifetime)
	var names []string
	for _, l := range in {
		if _, ok := seen[l.ID]; !ok {
			names = append(names, l.Name)
		}
		seen[l.ID] = l
	}
	sort.Strings(names)
	out := make([]ir.Lifetime, 0, len(names))
	byName := make(map[string]ir.Lifetime, len(seen))
	for _, l := range seen {
		byName[l.Name] = l
	}
	for _, n := range names {
		out = append(out, byName[n])
	}
	return out
}
