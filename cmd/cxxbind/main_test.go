package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cxxbind/internal/ir"
	"cxxbind/internal/resolve"
)

func TestNormalizeHeader_StripsDotSlash(t *testing.T) {
	assert.Equal(t, "public/api.h", normalizeHeader("./public/api.h"))
	assert.Equal(t, "public/api.h", normalizeHeader("public/api.h"))
}

func TestHeaderTargetMap_NormalizesEachHeader(t *testing.T) {
	entries := []targetHeaders{
		{Target: "//foo:api", Headers: []string{"./public/a.h", "public/b.h"}},
	}
	m := headerTargetMap(entries)
	assert.Equal(t, ir.TargetLabel("//foo:api"), m["public/a.h"])
	assert.Equal(t, ir.TargetLabel("//foo:api"), m["public/b.h"])
}

func TestResolveCurrentTarget_AllMatch(t *testing.T) {
	byHeader := resolve.HeaderTargetMap{
		"a.h": "//foo:api",
		"b.h": "//foo:api",
	}
	got, err := resolveCurrentTarget([]string{"a.h", "b.h"}, byHeader)
	require.NoError(t, err)
	assert.Equal(t, ir.TargetLabel("//foo:api"), got)
}

func TestResolveCurrentTarget_MismatchAborts(t *testing.T) {
	byHeader := resolve.HeaderTargetMap{
		"a.h": "//foo:api",
		"b.h": "//foo:other",
	}
	_, err := resolveCurrentTarget([]string{"a.h", "b.h"}, byHeader)
	assert.Error(t, err)
}

func TestResolveCurrentTarget_MissingHeaderErrors(t *testing.T) {
	_, err := resolveCurrentTarget([]string{"missing.h"}, resolve.HeaderTargetMap{})
	assert.Error(t, err)
}

func TestCountUnsupported(t *testing.T) {
	items := []ir.Item{
		&ir.UnsupportedItem{Name: "U"},
		&ir.Func{Name: ir.Identifier("f")},
		&ir.UnsupportedItem{Name: "V"},
	}
	assert.Equal(t, 2, countUnsupported(items))
}

func TestTaggedItem_NamesEachVariant(t *testing.T) {
	cases := []struct {
		item ir.Item
		kind string
	}{
		{&ir.Func{}, "Func"},
		{&ir.Record{}, "Record"},
		{&ir.TypeAlias{}, "TypeAlias"},
		{&ir.UnsupportedItem{}, "UnsupportedItem"},
		{ir.Comment{}, "Comment"},
	}
	for _, c := range cases {
		kind, _ := taggedItem(c.item)
		assert.Equal(t, c.kind, kind)
	}
}

func TestMarshalIR_WrapsEachItemInTaggedKey(t *testing.T) {
	items := []ir.Item{&ir.Func{Name: ir.Identifier("f"), MangledName: "_Z1fv"}}
	data, err := marshalIR(items)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Func"`)
	assert.Contains(t, string(data), `"_Z1fv"`)
}

func TestWriteSentinelFiles_CreatesEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.rs")
	b := filepath.Join(dir, "b.cc")
	require.NoError(t, writeSentinelFiles([]string{a, b}))

	for _, p := range []string{a, b} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	}
}

func TestFail_RemovesPartialOutputs(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.rs")
	require.NoError(t, os.WriteFile(p, []byte("partial"), 0o644))

	err := fail([]string{p}, assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr))
}
