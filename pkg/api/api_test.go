package api

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		function string
		typ      string
		polyfill string
		helper   string
		width    int
	}{
		{"inverse", "mat3x3<f32>", "InverseMat3x3", "_polyfill_inverse_3x3_f32", 4},
		{"inverse", "mat2x2h", "InverseMat2x2", "_polyfill_inverse_2x2_f16", 2},
		{"outerProduct", "mat4x2<f64>", "OuterProduct4x2", "_polyfill_outer_product_4x2_f64", 8},
		{"outerProduct", "mat2x4f", "OuterProduct2x4", "_polyfill_outer_product_2x4_f32", 4},
	}

	for _, tt := range tests {
		t.Run(tt.function+" "+tt.typ, func(t *testing.T) {
			result := Resolve(tt.function, tt.typ)
			assert.False(t, result.HasErrors)
			assert.Empty(t, result.Diagnostics)
			assert.Equal(t, tt.polyfill, result.Polyfill)
			assert.Equal(t, tt.helper, result.Helper)
			assert.Equal(t, tt.width, result.Width)
			assert.Equal(t, tt.function, result.Function)
			assert.Equal(t, tt.typ, result.Type)
		})
	}
}

func TestResolveWithoutPolyfill(t *testing.T) {
	result := Resolve("inverse", "mat3x2f")
	assert.Empty(t, result.Polyfill)
	assert.Zero(t, result.Width)
	assert.True(t, result.HasErrors)
	require.Len(t, result.Diagnostics, 1)
	assert.Contains(t, result.Diagnostics[0], "matrix must be square")

	result = Resolve("transpose", "mat3x2f")
	assert.True(t, result.Native)
	assert.False(t, result.HasErrors)
	require.Len(t, result.Diagnostics, 1)
	assert.Contains(t, result.Diagnostics[0], "info")

	result = ResolveWithOptions("transpose", "mat3x2f", Options{
		Diagnostics: map[string]string{"native-builtin": "off"},
	})
	assert.Empty(t, result.Diagnostics)

	result = ResolveWithOptions("inverse", "mat3x2f", Options{
		Diagnostics: map[string]string{"no-polyfill": "warning"},
	})
	assert.False(t, result.HasErrors)

	result = ResolveWithOptions("inverse", "mat3x2f", Options{
		Strict:      true,
		Diagnostics: map[string]string{"no-polyfill": "warning"},
	})
	assert.True(t, result.HasErrors)
}

func TestResolveMalformed(t *testing.T) {
	result := Resolve("inverse", "mat3x3<f32")
	assert.True(t, result.HasErrors)
	require.Len(t, result.Diagnostics, 1)
	assert.True(t, strings.HasPrefix(result.Diagnostics[0], "inverse mat3x3<f32:19: error:"), result.Diagnostics[0])

	assert.Equal(t, "E0002", result.Code)

	result = Resolve("outer", "mat3x3f")
	assert.True(t, result.HasErrors)
	require.Len(t, result.Diagnostics, 1)
	assert.Contains(t, result.Diagnostics[0], `unknown math function "outer"`)
	assert.Equal(t, "E0001", result.Code)
}

func TestResolveDiagnosticFormat(t *testing.T) {
	result := Resolve("inverse", "mat3x3<vec3f>")
	assert.Equal(t, "E0002", result.Code)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "inverse mat3x3<vec3f>:16: error: expected scalar element type, got vec3<f32> [E0002]\n"+
		"    inverse mat3x3<vec3f>\n"+
		"                   ^", result.Diagnostics[0])

	result = Resolve("inverse", "mat2x3f")
	assert.Equal(t, "E0100", result.Code)
	assert.Equal(t, []string{
		"inverse mat2x3f: error: no inverse polyfill for mat2x3<f32>: matrix must be square [E0100]",
	}, result.Diagnostics)
}

func TestResolveBatchErrorCount(t *testing.T) {
	result := ResolveBatch([]Request{
		{Function: "inverse", Type: "mat2x3f"},
		{Function: "transpose", Type: "mat2x3f"},
		{Function: "outerProduct", Type: "vec3f"},
	}, Options{})
	assert.True(t, result.HasErrors)
	assert.Equal(t, 2, result.ErrorCount)
	assert.Len(t, result.Diagnostics, 3)
	assert.Equal(t, "E0101", result.Results[1].Code)
}

func TestResolveBatch(t *testing.T) {
	result := ResolveBatch([]Request{
		{Function: "outerProduct", Type: "mat3x2f"},
		{Function: "inverse", Type: "mat4x4f"},
		{Function: "outerProduct", Type: "mat3x2<f32>"},
		{Function: "dot", Type: "vec3f"},
	}, Options{HelperPrefix: "wp_"})

	assert.False(t, result.HasErrors)
	require.Len(t, result.Results, 4)
	assert.Equal(t, "OuterProduct3x2", result.Results[2].Polyfill)
	assert.True(t, result.Results[3].Native)

	want := []HelperInfo{
		{Polyfill: "OuterProduct3x2", Name: "wp_outer_product_3x2_f32", Width: 4, Size: 24, Align: 8},
		{Polyfill: "InverseMat4x4", Name: "wp_inverse_4x4_f32", Width: 4, Size: 64, Align: 16},
	}
	if diff := cmp.Diff(want, result.Helpers); diff != "" {
		t.Errorf("helpers mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, result.Diagnostics, 1)
}

func TestResolveBatchJSON(t *testing.T) {
	result := ResolveBatch([]Request{{Function: "inverse", Type: "mat2x2f"}}, Options{})
	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"results": [{
			"function": "inverse",
			"type": "mat2x2f",
			"polyfill": "InverseMat2x2",
			"helper": "_polyfill_inverse_2x2_f32",
			"width": 4,
			"hasErrors": false
		}],
		"helpers": [{"polyfill": "InverseMat2x2", "name": "_polyfill_inverse_2x2_f32", "width": 4, "size": 16, "align": 8}],
		"hasErrors": false
	}`, string(data))
}

func TestTable(t *testing.T) {
	want := []TableEntry{
		{"InverseMat2x2", "inverse", 2, 2},
		{"InverseMat3x3", "inverse", 3, 3},
		{"InverseMat4x4", "inverse", 4, 4},
		{"OuterProduct2x2", "outerProduct", 2, 2},
		{"OuterProduct3x3", "outerProduct", 3, 3},
		{"OuterProduct4x4", "outerProduct", 4, 4},
		{"OuterProduct3x2", "outerProduct", 3, 2},
		{"OuterProduct2x3", "outerProduct", 2, 3},
		{"OuterProduct4x2", "outerProduct", 4, 2},
		{"OuterProduct2x4", "outerProduct", 2, 4},
		{"OuterProduct4x3", "outerProduct", 4, 3},
		{"OuterProduct3x4", "outerProduct", 3, 4},
	}
	if diff := cmp.Diff(want, Table()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestFindOverload(t *testing.T) {
	ty, err := ParseType("mat4x2<f32>")
	require.NoError(t, err)

	fn, ok := LookupFunction("outerProduct")
	require.True(t, ok)
	assert.Equal(t, MathOuter, fn)

	o, ok := FindOverload(fn, ty)
	require.True(t, ok)
	assert.Equal(t, "OuterProduct4x2", o.Function.String())
	assert.Equal(t, uint8(4), o.Width)

	_, ok = FindOverload(MathInverse, ty)
	assert.False(t, ok)
}
