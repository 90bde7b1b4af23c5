// Package emitter provides minimal target-language and C++ thunk source
// emission so the CLI has something concrete to write to --rs_out and
// --cc_out. Full code generation is out of scope (spec.md §1): this is
// intentionally a thin, best-effort renderer proving the IR's output
// contract, not a complete backend.
package emitter

import (
	"fmt"
	"sort"
	"strings"

	"cxxbind/internal/ir"
)

// Emit renders items into a target-language source file and a companion
// C++ thunk source file. Only Func and Record items produce output;
// TypeAlias, UnsupportedItem, and Comment items are acknowledged with a
// comment line so a reader can see the full item list was consulted.
func Emit(items []ir.Item) (targetSrc, ccSrc string) {
	var target, cc strings.Builder

	target.WriteString("// Generated bindings. Do not edit by hand.\n\n")
	cc.WriteString("// Generated thunks. Do not edit by hand.\n\n")

	for _, item := range items {
		switch v := item.(type) {
		case *ir.Record:
			emitRecord(&target, v)
		case *ir.Func:
			emitFunc(&target, &cc, v)
		case *ir.TypeAlias:
			fmt.Fprintf(&target, "// type alias %s -> %s\n", v.Identifier, v.UnderlyingType.Target.Name)
		case *ir.UnsupportedItem:
			fmt.Fprintf(&target, "// unsupported: %s (%s)\n", v.Name, v.Message)
		case ir.Comment:
			fmt.Fprintf(&target, "// %s\n", strings.ReplaceAll(v.Text, "\n", "\n// "))
		}
	}
	return target.String(), cc.String()
}

func emitRecord(target *strings.Builder, r *ir.Record) {
	fmt.Fprintf(target, "// size=%d align=%d trivial_abi=%v\n", r.SizeBytes, r.AlignmentBytes, r.IsTrivialAbi)
	fmt.Fprintf(target, "struct %s {\n", r.Identifier)
	fields := append([]ir.Field(nil), r.Fields...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Offset < fields[j].Offset })
	for _, f := range fields {
		fmt.Fprintf(target, "    %s %s; // offset=%d\n", f.Identifier, f.Type.Target.Name, f.Offset)
	}
	target.WriteString("}\n\n")
}

func emitFunc(target, cc *strings.Builder, f *ir.Func) {
	name := funcDisplayName(f)
	var params []string
	for _, p := range f.Params {
		params = append(params, fmt.Sprintf("%s: %s", p.Identifier, p.Type.Target.Name))
	}
	fmt.Fprintf(target, "extern \"C\" fn %s(%s) -> %s; // %s\n", name, strings.Join(params, ", "), f.ReturnType.Target.Name, f.MangledName)

	var ccParams []string
	for _, p := range f.Params {
		ccParams = append(ccParams, fmt.Sprintf("%s %s", p.Type.CC.Name, p.Identifier))
	}
	fmt.Fprintf(cc, "extern \"C\" %s %s(%s) {\n", f.ReturnType.CC.Name, f.MangledName, strings.Join(ccParams, ", "))
	cc.WriteString("    // thunk body omitted\n")
	cc.WriteString("}\n\n")
}

func funcDisplayName(f *ir.Func) string {
	switch f.Name.Kind {
	case ir.IdentifierConstructor:
		return "new"
	case ir.IdentifierDestructor:
		return "delete"
	default:
		return f.Name.Name
	}
}
