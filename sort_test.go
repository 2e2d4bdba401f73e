package sortjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) Value {
	t.Helper()
	value, err := ParseString(src)
	require.NoError(t, err)
	return value
}

func TestSort_DepthGating(t *testing.T) {
	value := mustParse(t, `{"z": {"b": 1, "a": 2}, "c": 3}`)

	// sortFrom 1 keeps root order but sorts nested objects.
	sorted := Sort(value, 1, nil).(Object)
	assert.Equal(t, []string{"z", "c"}, sorted.Keys())
	nested, ok := sorted.Get("z")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, nested.(Object).Keys())

	// sortFrom 0 sorts the root as well.
	sorted = Sort(value, 0, nil).(Object)
	assert.Equal(t, []string{"c", "z"}, sorted.Keys())
	nested, ok = sorted.Get("z")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, nested.(Object).Keys())
}

func TestSort_ArraysPreserveOrder(t *testing.T) {
	value := mustParse(t, `{"list": [3, 1, 2, {"z": 1, "a": 2}]}`)

	sorted := Sort(value, 0, nil).(Object)
	list, ok := sorted.Get("list")
	require.True(t, ok)

	array := list.(Array)
	assert.Equal(t, Array{Number("3"), Number("1"), Number("2"), Object{
		{Key: "a", Value: Number("2")},
		{Key: "z", Value: Number("1")},
	}}, array)
}

func TestSort_ArraysTransparentToDepth(t *testing.T) {
	// The object inside the array sits at depth 1: array descent does not
	// consume a level.
	value := mustParse(t, `{"a": [{"z": 1, "b": 2}]}`)

	sorted := Sort(value, 1, nil).(Object)
	inner := sorted[0].Value.(Array)[0].(Object)
	assert.Equal(t, []string{"b", "z"}, inner.Keys())

	unsorted := Sort(value, 2, nil).(Object)
	inner = unsorted[0].Value.(Array)[0].(Object)
	assert.Equal(t, []string{"z", "b"}, inner.Keys())
}

func TestSort_CustomOrderPrecedence(t *testing.T) {
	value := mustParse(t, `{"description": "d", "name": "n", "version": "v", "other": "o"}`)
	order := []string{"name", "version", "description"}

	sorted := Sort(value, 0, order).(Object)
	assert.Equal(t, []string{"name", "version", "description", "other"}, sorted.Keys())
}

func TestSort_CustomOrderUnlistedKeysOrdinal(t *testing.T) {
	value := mustParse(t, `{"zeta": 1, "name": 2, "beta": 3, "alpha": 4}`)

	sorted := Sort(value, 0, []string{"name"}).(Object)
	assert.Equal(t, []string{"name", "alpha", "beta", "zeta"}, sorted.Keys())
}

func TestSort_CustomOrderOnlyAtRoot(t *testing.T) {
	value := mustParse(t, `{"wrap": {"beta": 1, "name": 2, "alpha": 3}}`)

	// The nested object sorts ordinally; sortOrder never applies below the
	// root.
	sorted := Sort(value, 0, []string{"name"}).(Object)
	nested, ok := sorted.Get("wrap")
	require.True(t, ok)
	assert.Equal(t, []string{"alpha", "beta", "name"}, nested.(Object).Keys())
}

func TestSort_CustomOrderIgnoredWhenRootNotSorted(t *testing.T) {
	value := mustParse(t, `{"b": 1, "name": 2, "a": 3}`)

	// With sortFrom 1 the root level is never reordered, so sortOrder has
	// nothing to apply to.
	sorted := Sort(value, 1, []string{"name"}).(Object)
	assert.Equal(t, []string{"b", "name", "a"}, sorted.Keys())
}

func TestSort_CustomOrderDuplicateEntries(t *testing.T) {
	value := mustParse(t, `{"b": 1, "a": 2}`)

	// The first occurrence of a duplicated entry decides its rank.
	sorted := Sort(value, 0, []string{"b", "a", "b"}).(Object)
	assert.Equal(t, []string{"b", "a"}, sorted.Keys())
}

func TestSort_Idempotence(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		sortFrom int
		order    []string
	}{
		{"nested objects", `{"z": {"b": 1, "a": {"d": 4, "c": 3}}, "a": 2}`, 0, nil},
		{"depth gated", `{"z": {"b": 1, "a": 2}, "m": 3}`, 1, nil},
		{"arrays of objects", `[{"z": 1, "a": 2}, {"b": 3, "a": 4}]`, 0, nil},
		{"custom order", `{"other": 1, "version": 2, "name": 3}`, 0, []string{"name", "version"}},
		{"scalar root", `42`, 0, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value := mustParse(t, tc.json)
			once := Sort(value, tc.sortFrom, tc.order)
			twice := Sort(once, tc.sortFrom, tc.order)
			assert.Equal(t, once, twice)
		})
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	jsonStr := `{"z": {"b": 1, "a": 2}, "a": [{"y": 1, "x": 2}]}`
	value := mustParse(t, jsonStr)
	pristine := mustParse(t, jsonStr)

	_ = Sort(value, 0, nil)

	assert.Equal(t, pristine, value)
}

func TestSort_EmptyContainers(t *testing.T) {
	assert.Equal(t, Object{}, Sort(Object{}, 0, nil))
	assert.Equal(t, Array{}, Sort(Array{}, 0, nil))
}

func TestSort_SortFromBeyondMaxDepth(t *testing.T) {
	value := mustParse(t, `{"z": {"b": 1, "a": 2}}`)

	sorted := Sort(value, 10, nil)
	assert.Equal(t, value, sorted)
}

func TestSort_OrdinalByteOrder(t *testing.T) {
	value := mustParse(t, `{"b": 1, "A": 2, "Z": 3, "a": 4}`)

	// Byte order, not case-insensitive collation: uppercase sorts first.
	sorted := Sort(value, 0, nil).(Object)
	assert.Equal(t, []string{"A", "Z", "a", "b"}, sorted.Keys())
}

func TestSort_ScalarsUntouched(t *testing.T) {
	assert.Equal(t, Value(String("x")), Sort(String("x"), 0, nil))
	assert.Equal(t, Value(Number("1.5")), Sort(Number("1.5"), 0, nil))
	assert.Equal(t, Value(Bool(true)), Sort(Bool(true), 0, nil))
	assert.Equal(t, Value(Null{}), Sort(Null{}, 0, nil))
}

func TestSort_StableForEqualKeys(t *testing.T) {
	// Duplicate keys cannot come out of Parse, but a hand-built Object can
	// carry them; a stable sort must keep their relative order.
	object := Object{
		{Key: "a", Value: Number("1")},
		{Key: "a", Value: Number("2")},
	}
	sorted := Sort(object, 0, nil).(Object)
	assert.Equal(t, object, sorted)
}
