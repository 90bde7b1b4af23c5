package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cxxbind/internal/ir"
)

func TestEmit_RecordAndFunc(t *testing.T) {
	items := []ir.Item{
		&ir.Record{
			Identifier:     "Point",
			SizeBytes:      8,
			AlignmentBytes: 4,
			IsTrivialAbi:   true,
			Fields: []ir.Field{
				{Identifier: "x", Type: ir.SimpleType("int", "i32"), Offset: 0},
				{Identifier: "y", Type: ir.SimpleType("int", "i32"), Offset: 4},
			},
		},
		&ir.Func{
			Name:        ir.Identifier("distance"),
			MangledName: "_Z8distancev",
			ReturnType:  ir.SimpleType("double", "f64"),
		},
		&ir.UnsupportedItem{Name: "U", Message: "Unions are not supported yet"},
		ir.Comment{Text: "note"},
	}

	target, cc := Emit(items)

	assert.Contains(t, target, "struct Point {")
	assert.Contains(t, target, "x i32; // offset=0")
	assert.Contains(t, target, "y i32; // offset=4")
	assert.Contains(t, target, "distance")
	assert.Contains(t, target, "unsupported: U (Unions are not supported yet)")
	assert.Contains(t, target, "// note")
	assert.Contains(t, cc, "_Z8distancev")
}

func TestFuncDisplayName_CtorAndDtor(t *testing.T) {
	assert.Equal(t, "new", funcDisplayName(&ir.Func{Name: ir.Constructor()}))
	assert.Equal(t, "delete", funcDisplayName(&ir.Func{Name: ir.Destructor()}))
	assert.Equal(t, "frob", funcDisplayName(&ir.Func{Name: ir.Identifier("frob")}))
}
