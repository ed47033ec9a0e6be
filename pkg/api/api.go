// Package api provides the public API for the WGSL polyfill resolver.
//
// This package is intended for programmatic use by code generators that
// accept math calls in textual form. For CLI usage, see cmd/wgslpoly.
// Go callers holding IR types can use FindOverload directly.
package api

import (
	"strings"

	"github.com/HugoDaniel/wgsl-polyfill/internal/builtins"
	"github.com/HugoDaniel/wgsl-polyfill/internal/diagnostic"
	"github.com/HugoDaniel/wgsl-polyfill/internal/planner"
	"github.com/HugoDaniel/wgsl-polyfill/internal/polyfill"
	"github.com/HugoDaniel/wgsl-polyfill/internal/types"
)

// Options controls how requests without a polyfill are reported.
type Options struct {
	// Strict reports warnings as errors.
	Strict bool `json:"strict"`

	// HelperPrefix starts every helper name. Empty means "_polyfill_".
	HelperPrefix string `json:"helperPrefix"`

	// Diagnostics maps rule names ("no-polyfill", "native-builtin") to a
	// severity name ("error", "warning", "info", "note", "off").
	// Unknown severities are ignored.
	Diagnostics map[string]string `json:"diagnostics,omitempty"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{HelperPrefix: polyfill.DefaultHelperPrefix}
}

// Request is one math call: a WGSL builtin name and an operand type.
type Request struct {
	Function string `json:"function"`
	Type     string `json:"type"`
}

// ResolveResult is the outcome of one request.
type ResolveResult struct {
	Function string `json:"function"`
	Type     string `json:"type"`

	// Polyfill is the helper identifier (e.g. "InverseMat3x3"), empty if none.
	Polyfill string `json:"polyfill,omitempty"`

	// Helper is the symbol the helper is emitted under.
	Helper string `json:"helper,omitempty"`

	// Width is the byte width of the matrix elements, 0 if no polyfill.
	Width int `json:"width,omitempty"`

	// Native is true when WGSL provides the builtin directly.
	Native bool `json:"native,omitempty"`

	// Code is the diagnostic code raised for this request ("E0002" for a
	// malformed type), empty if the request resolved cleanly.
	Code string `json:"code,omitempty"`

	// Diagnostics explains a missing polyfill or a malformed request. Each
	// entry ends with the code and, when the column is known, the request
	// with a caret under it.
	Diagnostics []string `json:"diagnostics,omitempty"`

	// HasErrors is true if any diagnostic is an error.
	HasErrors bool `json:"hasErrors"`
}

// HelperInfo describes a helper a module must emit once.
type HelperInfo struct {
	Polyfill string `json:"polyfill"`
	Name     string `json:"name"`
	Width    int    `json:"width"`

	// Size and Align give the host-shareable layout of the helper's matrix.
	Size  int `json:"size"`
	Align int `json:"align"`
}

// BatchResult is the outcome of resolving all math calls of one module.
type BatchResult struct {
	Results     []ResolveResult `json:"results"`
	Helpers     []HelperInfo    `json:"helpers"`
	Diagnostics []string        `json:"diagnostics,omitempty"`
	HasErrors   bool            `json:"hasErrors"`
	ErrorCount  int             `json:"errorCount,omitempty"`
}

// TableEntry is one row of the polyfill table.
type TableEntry struct {
	Polyfill string `json:"polyfill"`
	Function string `json:"function"`
	Columns  int    `json:"columns"`
	Rows     int    `json:"rows"`
}

// Aliases for Go callers that work with IR types directly.
type (
	Overload     = polyfill.Overload
	Function     = polyfill.Function
	MathFunction = builtins.MathFunction
	Inner        = types.Inner
	Matrix       = types.Matrix
	Scalar       = types.Scalar
	VectorSize   = types.VectorSize
)

// The polyfillable math functions.
const (
	MathInverse = builtins.MathInverse
	MathOuter   = builtins.MathOuter
)

// ParseType parses a WGSL type spelling such as "mat3x2<f32>" or "mat4x4h".
func ParseType(src string) (Inner, error) {
	return types.Parse(src)
}

// LookupFunction returns the math builtin with the given WGSL name.
func LookupFunction(name string) (MathFunction, bool) {
	return builtins.Lookup(name)
}

// FindOverload returns the helper implementing fn for an operand of type ty,
// or false if there is none. See the polyfill package for the exact rules.
func FindOverload(fn MathFunction, ty types.Inner) (Overload, bool) {
	return polyfill.FindOverload(fn, ty)
}

// Resolve resolves one request with default options.
func Resolve(function, typ string) ResolveResult {
	return ResolveWithOptions(function, typ, Options{})
}

// ResolveWithOptions resolves one request with custom options.
func ResolveWithOptions(function, typ string, opts Options) ResolveResult {
	batch := ResolveBatch([]Request{{Function: function, Type: typ}}, opts)
	result := batch.Results[0]
	result.Diagnostics = batch.Diagnostics
	result.HasErrors = batch.HasErrors
	return result
}

// ResolveBatch resolves every request and lists each required helper once.
func ResolveBatch(requests []Request, opts Options) BatchResult {
	reqs := make([]planner.Request, len(requests))
	for i, r := range requests {
		reqs[i] = planner.Request{Function: r.Function, Type: r.Type}
	}

	plan := planner.New(toPlannerOptions(opts)).Plan(reqs)

	result := BatchResult{
		Results:    make([]ResolveResult, len(plan.Resolutions)),
		Helpers:    make([]HelperInfo, len(plan.Helpers)),
		HasErrors:  plan.HasErrors,
		ErrorCount: plan.ErrorCount,
	}
	for i, res := range plan.Resolutions {
		r := ResolveResult{
			Function: res.Request.Function,
			Type:     res.Request.Type,
			Native:   res.Native,
			Code:     string(res.Code),
		}
		if res.Found {
			r.Polyfill = res.Overload.Function.String()
			r.Helper = res.Helper
			r.Width = int(res.Overload.Width)
		}
		result.Results[i] = r
	}
	for i, h := range plan.Helpers {
		layout, _ := types.LayoutOf(h.Overload.Matrix())
		result.Helpers[i] = HelperInfo{
			Polyfill: h.Overload.Function.String(),
			Name:     h.Name,
			Width:    int(h.Overload.Width),
			Size:     layout.Size,
			Align:    layout.Alignment,
		}
	}
	for i := range plan.Diagnostics {
		text := diagnostic.FormatDiagnostic(&plan.Diagnostics[i])
		result.Diagnostics = append(result.Diagnostics, strings.TrimSuffix(text, "\n"))
	}
	return result
}

// Table returns every polyfill with the matrix shape it covers.
func Table() []TableEntry {
	fns := polyfill.Functions()
	entries := make([]TableEntry, len(fns))
	for i, fn := range fns {
		columns, rows := fn.Shape()
		entries[i] = TableEntry{
			Polyfill: fn.String(),
			Function: fn.MathFunction().String(),
			Columns:  int(columns),
			Rows:     int(rows),
		}
	}
	return entries
}

func toPlannerOptions(opts Options) planner.Options {
	popts := planner.DefaultOptions()
	popts.Strict = opts.Strict
	if opts.HelperPrefix != "" {
		popts.HelperPrefix = opts.HelperPrefix
	}
	if len(opts.Diagnostics) > 0 {
		popts.Rules = make(map[string]diagnostic.Severity, len(opts.Diagnostics))
		for rule, name := range opts.Diagnostics {
			if sev, ok := diagnostic.ParseSeverity(name); ok {
				popts.Rules[rule] = sev
			}
		}
	}
	return popts
}
