package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	v, err := Parse([]byte(`{"a": {"b": 1, "c": [2, 3]}, "d": null}`))
	require.NoError(t, err)

	flat := Flatten(v, ".")
	want := Object(map[string]Value{
		"a.b":   Number(1),
		"a.c.0": Number(2),
		"a.c.1": Number(3),
		"d":     Null(),
	})
	assert.True(t, want.Equal(flat), "got %s", flat)
}

func TestFlatten_CustomSeparator(t *testing.T) {
	v := Object(map[string]Value{
		"x": Object(map[string]Value{"y": Bool(true)}),
	})
	flat := Flatten(v, "/")
	got, ok := Lookup(flat, "x/y")
	require.True(t, ok)
	assert.True(t, Bool(true).Equal(got))
}

func TestFlatten_EmptyContainersAreLeaves(t *testing.T) {
	v := Object(map[string]Value{
		"empty_obj": Object(nil),
		"empty_arr": Array(),
	})
	flat := Flatten(v, ".")
	eo, ok := flat.Field("empty_obj")
	require.True(t, ok)
	assert.Equal(t, KindObject, eo.Kind())
	ea, ok := flat.Field("empty_arr")
	require.True(t, ok)
	assert.Equal(t, KindArray, ea.Kind())
}

func TestFlatten_ScalarUnchanged(t *testing.T) {
	assert.True(t, Number(5).Equal(Flatten(Number(5), ".")))
	assert.True(t, Null().Equal(Flatten(Null(), ".")))
}

func TestFlatten_TopLevelArray(t *testing.T) {
	flat := Flatten(Array(Str("a"), Str("b")), ".")
	got, ok := flat.Field("0")
	require.True(t, ok)
	assert.True(t, Str("a").Equal(got))
}

func TestMerge_DeepObjects(t *testing.T) {
	dst, err := Parse([]byte(`{"a": {"x": 1, "y": 2}, "keep": true}`))
	require.NoError(t, err)
	src, err := Parse([]byte(`{"a": {"y": 20, "z": 30}, "new": "v"}`))
	require.NoError(t, err)

	merged := Merge(dst, src)
	want, err := Parse([]byte(`{"a": {"x": 1, "y": 20, "z": 30}, "keep": true, "new": "v"}`))
	require.NoError(t, err)
	assert.True(t, want.Equal(merged), "got %s", merged)
}

func TestMerge_SrcWinsOnConflict(t *testing.T) {
	dst := Object(map[string]Value{"a": Array(Number(1))})
	src := Object(map[string]Value{"a": Array(Number(2), Number(3))})
	merged := Merge(dst, src)
	got, _ := merged.Field("a")
	assert.Equal(t, 2, got.Len(), "arrays replace, not concatenate")
}

func TestMerge_NonObjectReturnsSrc(t *testing.T) {
	assert.True(t, Number(2).Equal(Merge(Number(1), Number(2))))
	assert.True(t, Str("s").Equal(Merge(Object(nil), Str("s"))))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	dst := Object(map[string]Value{"a": Number(1)})
	src := Object(map[string]Value{"a": Number(2)})
	_ = Merge(dst, src)
	got, _ := dst.Field("a")
	n, _ := got.AsNumber()
	assert.Equal(t, float64(1), n)
}
