package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoDaniel/wgsl-polyfill/internal/diagnostic"
	"github.com/HugoDaniel/wgsl-polyfill/internal/polyfill"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		line   string
		expect Request
	}{
		{"inverse mat3x3f", Request{"inverse", "mat3x3f"}},
		{"  outerProduct\tmat4x2< f32 > ", Request{"outerProduct", "mat4x2< f32 >"}},
	}
	for _, tt := range tests {
		got, err := ParseRequest(tt.line)
		require.NoError(t, err)
		assert.Equal(t, tt.expect, got)
	}

	_, err := ParseRequest("inverse")
	assert.Error(t, err)
	_, err = ParseRequest("")
	assert.Error(t, err)
}

func TestPlanDeduplicatesHelpers(t *testing.T) {
	p := New(DefaultOptions())
	result := p.Plan([]Request{
		{"inverse", "mat3x3f"},
		{"outerProduct", "mat4x2<f32>"},
		{"inverse", "mat3x3<f32>"},
		{"outerProduct", "mat2x4f"},
		{"inverse", "mat3x3h"},
	})

	require.False(t, result.HasErrors)
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Resolutions, 5)
	for _, r := range result.Resolutions {
		assert.True(t, r.Found, r.Request.String())
	}

	var names []string
	for _, h := range result.Helpers {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{
		"_polyfill_inverse_3x3_f32",
		"_polyfill_outer_product_4x2_f32",
		"_polyfill_outer_product_2x4_f32",
		"_polyfill_inverse_3x3_f16",
	}, names)

	assert.Equal(t, polyfill.Overload{Function: polyfill.InverseMat3x3, Width: 4}, result.Resolutions[2].Overload)
	assert.Equal(t, "_polyfill_inverse_3x3_f32", result.Resolutions[2].Helper)
}

func TestPlanDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		request  Request
		code     diagnostic.DiagnosticCode
		severity diagnostic.Severity
		offset   int
		message  string
	}{
		{
			name:     "unknown function",
			request:  Request{"invert", "mat2x2f"},
			code:     diagnostic.CodeUnknownFunction,
			severity: diagnostic.Error,
			offset:   0,
			message:  `unknown math function "invert"`,
		},
		{
			name:     "bad type",
			request:  Request{"inverse", "mat3x3<vec3f>"},
			code:     diagnostic.CodeInvalidType,
			severity: diagnostic.Error,
			offset:   15,
			message:  "expected scalar element type, got vec3<f32>",
		},
		{
			name:     "non-square inverse",
			request:  Request{"inverse", "mat2x3f"},
			code:     diagnostic.CodeNoPolyfill,
			severity: diagnostic.Error,
			offset:   -1,
			message:  "no inverse polyfill for mat2x3<f32>: matrix must be square",
		},
		{
			name:     "integer elements",
			request:  Request{"outerProduct", "mat2x2<i32>"},
			code:     diagnostic.CodeNoPolyfill,
			severity: diagnostic.Error,
			offset:   -1,
			message:  "no outerProduct polyfill for mat2x2<i32>: elements must be floating-point",
		},
		{
			name:     "vector operand",
			request:  Request{"inverse", "vec3f"},
			code:     diagnostic.CodeNoPolyfill,
			severity: diagnostic.Error,
			offset:   -1,
			message:  "no inverse polyfill for vec3<f32>: operand must be a matrix",
		},
		{
			name:     "native builtin",
			request:  Request{"transpose", "mat3x2f"},
			code:     diagnostic.CodeNativeBuiltin,
			severity: diagnostic.Info,
			offset:   -1,
			message:  "transpose is native to WGSL, no polyfill needed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(DefaultOptions()).Plan([]Request{tt.request})

			require.Len(t, result.Resolutions, 1)
			assert.False(t, result.Resolutions[0].Found)
			assert.Empty(t, result.Helpers)

			require.Len(t, result.Diagnostics, 1)
			d := result.Diagnostics[0]
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.severity, d.Severity)
			assert.Equal(t, tt.offset, d.Offset)
			assert.Equal(t, tt.message, d.Message)
			assert.Equal(t, tt.request.String(), d.Subject)
			assert.Equal(t, tt.severity == diagnostic.Error, result.HasErrors)
			assert.Equal(t, tt.code, result.Resolutions[0].Code)
		})
	}
}

func TestPlanNativeFlag(t *testing.T) {
	result := New(DefaultOptions()).Plan([]Request{{"determinant", "mat4x4f"}})
	require.Len(t, result.Resolutions, 1)
	assert.True(t, result.Resolutions[0].Native)
}

func TestPlanOptions(t *testing.T) {
	t.Run("rule override", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Rules = map[string]diagnostic.Severity{
			diagnostic.RuleNoPolyfill:    diagnostic.Warning,
			diagnostic.RuleNativeBuiltin: diagnostic.Off,
		}
		result := New(opts).Plan([]Request{
			{"inverse", "mat2x4f"},
			{"dot", "vec3f"},
		})
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, diagnostic.Warning, result.Diagnostics[0].Severity)
		assert.False(t, result.HasErrors)
		assert.Zero(t, result.ErrorCount)

		// A disabled rule still records why the request was not polyfilled
		assert.Equal(t, diagnostic.CodeNativeBuiltin, result.Resolutions[1].Code)
	})

	t.Run("error count", func(t *testing.T) {
		result := New(DefaultOptions()).Plan([]Request{
			{"inverse", "mat2x4f"},
			{"inverse", "mat2x2f"},
			{"invert", "mat2x2f"},
			{"transpose", "mat2x2f"},
		})
		assert.Equal(t, 2, result.ErrorCount)
		assert.Len(t, result.Diagnostics, 3)
	})

	t.Run("strict", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Strict = true
		opts.Rules = map[string]diagnostic.Severity{diagnostic.RuleNoPolyfill: diagnostic.Warning}
		result := New(opts).Plan([]Request{{"inverse", "mat2x4f"}})
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, diagnostic.Error, result.Diagnostics[0].Severity)
		assert.True(t, result.HasErrors)
	})

	t.Run("helper prefix", func(t *testing.T) {
		result := New(Options{HelperPrefix: "wgslpoly_"}).Plan([]Request{{"inverse", "mat4x4f"}})
		require.Len(t, result.Helpers, 1)
		assert.Equal(t, "wgslpoly_inverse_4x4_f32", result.Helpers[0].Name)
		assert.Equal(t, "wgslpoly_inverse_4x4_f32", result.Resolutions[0].Helper)
	})

	t.Run("empty prefix falls back to default", func(t *testing.T) {
		result := New(Options{}).Plan([]Request{{"inverse", "mat2x2f"}})
		require.Len(t, result.Helpers, 1)
		assert.Equal(t, "_polyfill_inverse_2x2_f32", result.Helpers[0].Name)
	})
}
