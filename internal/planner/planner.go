// Package planner decides which polyfill helpers a shader module needs.
//
// It takes textual math requests ("inverse mat3x3f"), resolves each one with
// the polyfill package and applies caller policy to the requests that have
// no helper: native builtins are reported as information, polyfillable
// builtins on an operand no helper covers are reported as errors. Both can
// be adjusted through Options.
package planner

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/HugoDaniel/wgsl-polyfill/internal/builtins"
	"github.com/HugoDaniel/wgsl-polyfill/internal/diagnostic"
	"github.com/HugoDaniel/wgsl-polyfill/internal/polyfill"
	"github.com/HugoDaniel/wgsl-polyfill/internal/types"
)

// Options controls planning behavior.
type Options struct {
	// Strict promotes warnings to errors.
	Strict bool

	// HelperPrefix starts every helper name.
	HelperPrefix string

	// Rules overrides the severity of diagnostic rules, keyed by rule name
	// (diagnostic.RuleNoPolyfill, diagnostic.RuleNativeBuiltin).
	Rules map[string]diagnostic.Severity
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		HelperPrefix: polyfill.DefaultHelperPrefix,
	}
}

// Request is one math call as written by a user or a front end.
type Request struct {
	Function string
	Type     string
}

func (r Request) String() string {
	return r.Function + " " + r.Type
}

// ParseRequest splits "function type" into a Request. The type may contain
// spaces ("outerProduct mat4x2< f32 >").
func ParseRequest(line string) (Request, error) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return Request{}, errors.Errorf("request %q: expected \"<function> <type>\"", line)
	}
	return Request{
		Function: line[:i],
		Type:     strings.TrimSpace(line[i+1:]),
	}, nil
}

// Resolution is the outcome of one request.
type Resolution struct {
	Request Request

	// Found is true when a helper was selected.
	Found    bool
	Overload polyfill.Overload
	Helper   string

	// Native is true when WGSL provides the builtin itself.
	Native bool

	// Code is the code of the diagnostic raised for this request, if any.
	// It is set even when the rule is disabled or not an error.
	Code diagnostic.DiagnosticCode
}

// Helper is a helper function the module must emit once.
type Helper struct {
	Overload polyfill.Overload
	Name     string
}

// Result contains the planning output.
type Result struct {
	// Resolutions has one entry per request, in request order.
	Resolutions []Resolution

	// Helpers lists each required helper once, in first-request order.
	Helpers []Helper

	// Diagnostics reports requests without a helper and malformed requests.
	Diagnostics []diagnostic.Diagnostic

	// HasErrors is true if any diagnostic has error severity.
	HasErrors bool

	// ErrorCount is the number of error diagnostics.
	ErrorCount int
}

// Planner resolves requests for one shader module.
type Planner struct {
	options Options
}

// New creates a new planner with the given options.
func New(options Options) *Planner {
	if options.HelperPrefix == "" {
		options.HelperPrefix = polyfill.DefaultHelperPrefix
	}
	return &Planner{options: options}
}

// Plan resolves every request.
func (p *Planner) Plan(requests []Request) Result {
	filter := diagnostic.NewDiagnosticFilter()
	for rule, sev := range p.options.Rules {
		if sev == diagnostic.Off {
			filter.DisableRule(rule)
			continue
		}
		filter.SetRule(rule, sev)
	}
	filter.WarningsAsErrors = p.options.Strict

	dl := diagnostic.NewDiagnosticList(filter)
	var helpers polyfill.Set

	result := Result{Resolutions: make([]Resolution, 0, len(requests))}
	for _, req := range requests {
		res := p.resolve(req, dl)
		if res.Found {
			helpers.Add(res.Overload)
		}
		result.Resolutions = append(result.Resolutions, res)
	}

	result.Helpers = make([]Helper, 0, helpers.Len())
	for _, o := range helpers.Overloads() {
		result.Helpers = append(result.Helpers, Helper{
			Overload: o,
			Name:     o.HelperNameWithPrefix(p.options.HelperPrefix),
		})
	}
	result.Diagnostics = dl.Diagnostics()
	result.HasErrors = dl.HasErrors()
	result.ErrorCount = dl.ErrorCount()
	return result
}

func (p *Planner) resolve(req Request, dl *diagnostic.DiagnosticList) Resolution {
	res := Resolution{Request: req}
	subject := req.String()

	fn, ok := builtins.Lookup(req.Function)
	if !ok {
		res.Code = diagnostic.CodeUnknownFunction
		dl.AddError(subject, 0, diagnostic.CodeUnknownFunction,
			fmt.Sprintf("unknown math function %q", req.Function))
		return res
	}

	ty, err := types.Parse(req.Type)
	if err != nil {
		offset, msg := len(req.Function)+1, err.Error()
		var perr *types.ParseError
		if errors.As(err, &perr) {
			offset += perr.Offset
			msg = perr.Message
		}
		res.Code = diagnostic.CodeInvalidType
		dl.AddError(subject, offset, diagnostic.CodeInvalidType, msg)
		return res
	}

	if o, ok := polyfill.FindOverload(fn, ty); ok {
		res.Found = true
		res.Overload = o
		res.Helper = o.HelperNameWithPrefix(p.options.HelperPrefix)
		return res
	}

	if fn.IsNative() {
		res.Native = true
		res.Code = diagnostic.CodeNativeBuiltin
		dl.AddRule(diagnostic.RuleNativeBuiltin, subject, diagnostic.CodeNativeBuiltin,
			fmt.Sprintf("%s is native to WGSL, no polyfill needed", fn))
		return res
	}

	res.Code = diagnostic.CodeNoPolyfill
	dl.AddRule(diagnostic.RuleNoPolyfill, subject, diagnostic.CodeNoPolyfill, explain(fn, ty))
	return res
}

// explain says why a polyfillable builtin has no helper for ty.
func explain(fn builtins.MathFunction, ty types.Inner) string {
	m, ok := types.AsMatrix(ty)
	switch {
	case !ok:
		return fmt.Sprintf("no %s polyfill for %s: operand must be a matrix", fn, ty)
	case m.Scalar.Kind != types.ScalarFloat:
		return fmt.Sprintf("no %s polyfill for %s: elements must be floating-point", fn, ty)
	case fn == builtins.MathInverse && !m.IsSquare():
		return fmt.Sprintf("no %s polyfill for %s: matrix must be square", fn, ty)
	default:
		return fmt.Sprintf("no %s polyfill for %s", fn, ty)
	}
}
