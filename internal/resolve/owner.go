// Package resolve implements the Owner Resolver, Name Resolver, and
// Comment Resolver described in spec.md §4.7.
package resolve

import (
	"strings"

	"cxxbind/internal/cxxast"
	"cxxbind/internal/ir"
)

// BuiltinTarget and VirtualResourceDirTarget are the fallback owning
// targets spec.md §4.7 names for a location that never resolves to a
// mapped header (either because the include stack ran out, or because the
// location is inside a system header).
const (
	BuiltinTarget             ir.TargetLabel = "//:builtin"
	VirtualResourceDirTarget ir.TargetLabel = "//:virtual_clang_resource_dir_target"
)

// HeaderTargetMap is the header name -> owning target mapping fed in via
// --targets_and_headers.
type HeaderTargetMap map[string]ir.TargetLabel

// OwnerResolver resolves the build target that owns a declaration by
// walking its file's include stack outward until a mapped header is
// found.
type OwnerResolver struct {
	SourceMgr      *cxxast.SourceManager
	Targets        HeaderTargetMap
	SystemHeaders  map[cxxast.FileID]bool
}

func NewOwnerResolver(sm *cxxast.SourceManager, targets HeaderTargetMap) *OwnerResolver {
	return &OwnerResolver{SourceMgr: sm, Targets: targets, SystemHeaders: make(map[cxxast.FileID]bool)}
}

// MarkSystemHeader records that file was reached via a system (angle-
// bracket) include, so OwningTarget can short-circuit to the virtual
// resource-dir label for it.
func (o *OwnerResolver) MarkSystemHeader(file cxxast.FileID) {
	o.SystemHeaders[file] = true
}

// OwningTarget implements spec.md §4.7's "Owning target" algorithm: start
// at loc.File, strip a leading "./", look it up in the header->target map;
// on a miss follow the include stack outward; if the walk exhausts without
// a hit, fall back to the builtin or virtual-resource-dir label.
func (o *OwnerResolver) OwningTarget(loc cxxast.SourceLocation) ir.TargetLabel {
	stack := o.SourceMgr.IncludeStack(loc.File)
	for _, file := range stack {
		if o.SystemHeaders[file] {
			return VirtualResourceDirTarget
		}
		name := strings.TrimPrefix(o.SourceMgr.Path(file), "./")
		if target, ok := o.Targets[name]; ok {
			return target
		}
	}
	return BuiltinTarget
}

// IsFromCurrentTarget reports whether loc's owning target matches current,
// the check the Importer uses to decide whether a declaration is
// interesting at all (spec.md §7's "foreign target" silent-skip case).
func (o *OwnerResolver) IsFromCurrentTarget(loc cxxast.SourceLocation, current ir.TargetLabel) bool {
	return o.OwningTarget(loc) == current
}
