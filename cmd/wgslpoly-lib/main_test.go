//go:build cgo

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionIsStatic(t *testing.T) {
	first := wgslpoly_version()
	require.NotNil(t, first)
	assert.Same(t, first, wgslpoly_version())
}

func TestRejectsNullAndNegativeLengths(t *testing.T) {
	code := wgslpoly_table(nil, nil)
	require.Equal(t, WGSLPOLY_ERR_NULL_INPUT, int(code))

	// Any non-NULL pointer will do: inputs with a negative length are
	// rejected before they are read.
	in := wgslpoly_version()
	out, outLen := in, code

	tests := []struct {
		name string
		call func() int
	}{
		{"negative function length", func() int {
			return int(wgslpoly_resolve(in, -1, in, 3, nil, 0, &out, &outLen))
		}},
		{"negative type length", func() int {
			return int(wgslpoly_resolve(in, 3, in, -1, nil, 0, &out, &outLen))
		}},
		{"negative requests length", func() int {
			return int(wgslpoly_resolve_batch(in, -1, nil, 0, &out, &outLen))
		}},
		{"null function", func() int {
			return int(wgslpoly_resolve(nil, 0, in, 3, nil, 0, &out, &outLen))
		}},
		{"null output", func() int {
			return int(wgslpoly_resolve_batch(in, 3, nil, 0, nil, &outLen))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, WGSLPOLY_ERR_NULL_INPUT, tt.call())
			assert.Same(t, in, out, "output must be left untouched")
		})
	}
}
