package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cxxbind/internal/cxxast"
)

func builtin(name string) cxxast.QualType {
	return cxxast.QualType{Kind: cxxast.KindBuiltin, Name: name}
}

func TestCompute_EmptyStruct(t *testing.T) {
	result := Compute(nil)
	assert.Equal(t, uint64(1), result.SizeBytes)
	assert.Equal(t, uint64(1), result.AlignmentBytes)
}

func TestCompute_NaturalAlignmentPadding(t *testing.T) {
	// char followed by int: 1 byte, then 3 bytes padding, then 4 bytes.
	result := Compute([]cxxast.QualType{builtin("char"), builtin("int")})
	assert.Equal(t, uint64(8), result.SizeBytes)
	assert.Equal(t, uint64(4), result.AlignmentBytes)
}

func TestFieldOffsets_MatchesPadding(t *testing.T) {
	offsets, result := FieldOffsets([]cxxast.QualType{builtin("char"), builtin("int"), builtin("char")})
	assert.Equal(t, []uint64{0, 4, 8}, offsets)
	assert.Equal(t, uint64(12), result.SizeBytes)
	assert.Equal(t, uint64(4), result.AlignmentBytes)
}

func TestIsTrivialAbi(t *testing.T) {
	tests := []struct {
		name                                                            string
		hasBase, copyProvided, moveProvided, dtorProvided, anyDeleted bool
		want                                                            bool
	}{
		{"plain struct", false, false, false, false, false, true},
		{"has base class", true, false, false, false, false, false},
		{"user copy ctor", false, true, false, false, false, false},
		{"deleted member", false, false, false, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsTrivialAbi(tt.hasBase, tt.copyProvided, tt.moveProvided, tt.dtorProvided, tt.anyDeleted)
			assert.Equal(t, tt.want, got)
		})
	}
}
