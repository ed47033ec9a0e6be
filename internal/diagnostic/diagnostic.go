// Package diagnostic reports the outcome of polyfill requests to users.
//
// The resolver itself only answers "this helper" or "nothing". Tools built on
// it turn "nothing" into a diagnostic whose severity depends on why there was
// no helper, and a DiagnosticFilter lets configuration adjust that severity.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity uint8

const (
	// Error means the request cannot be code generated.
	Error Severity = iota
	// Warning is a non-blocking issue.
	Warning
	// Info is an informational message.
	Info
	// Note provides additional context for another diagnostic.
	Note
)

// Off disables a rule when used in a DiagnosticFilter.
const Off Severity = 255

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Note:
		return "note"
	case Off:
		return "off"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name as written in configuration files.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(name) {
	case "error":
		return Error, true
	case "warning", "warn":
		return Warning, true
	case "info":
		return Info, true
	case "note":
		return Note, true
	case "off":
		return Off, true
	default:
		return 0, false
	}
}

// DiagnosticCode defines standard error codes.
type DiagnosticCode string

const (
	// Request errors (E00xx)
	CodeUnknownFunction DiagnosticCode = "E0001"
	CodeInvalidType     DiagnosticCode = "E0002"

	// Resolution outcomes (E01xx)
	CodeNoPolyfill    DiagnosticCode = "E0100"
	CodeNativeBuiltin DiagnosticCode = "E0101"
)

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	Code     DiagnosticCode
	Rule     string // Filter rule that produced it, empty for hard errors
	Message  string
	Subject  string // The request text the diagnostic refers to
	Offset   int    // Byte offset into Subject, or -1
}

// Error returns a formatted error string.
func (d *Diagnostic) Error() string {
	if d.Offset >= 0 {
		return fmt.Sprintf("%s:%d: %s: %s", d.Subject, d.Offset+1, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Subject, d.Severity, d.Message)
}

// DiagnosticList collects diagnostics while a batch of requests is resolved.
type DiagnosticList struct {
	diagnostics []Diagnostic
	filter      *DiagnosticFilter
	hasErrors   bool
}

// NewDiagnosticList creates a list that applies filter to rule-based
// diagnostics. A nil filter keeps default severities.
func NewDiagnosticList(filter *DiagnosticFilter) *DiagnosticList {
	if filter == nil {
		filter = NewDiagnosticFilter()
	}
	return &DiagnosticList{
		diagnostics: make([]Diagnostic, 0),
		filter:      filter,
	}
}

// Add adds a diagnostic to the list.
func (dl *DiagnosticList) Add(d Diagnostic) {
	dl.diagnostics = append(dl.diagnostics, d)
	if d.Severity == Error {
		dl.hasErrors = true
	}
}

// AddError adds an error diagnostic at the given offset into subject.
func (dl *DiagnosticList) AddError(subject string, offset int, code DiagnosticCode, message string) {
	dl.Add(Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  message,
		Subject:  subject,
		Offset:   offset,
	})
}

// AddRule adds a diagnostic whose severity comes from the filter.
// Nothing is added when the rule is disabled.
func (dl *DiagnosticList) AddRule(rule string, subject string, code DiagnosticCode, message string) {
	if dl.filter.IsDisabled(rule) {
		return
	}
	dl.Add(Diagnostic{
		Severity: dl.filter.GetSeverity(rule, DefaultSeverity(rule)),
		Code:     code,
		Rule:     rule,
		Message:  message,
		Subject:  subject,
		Offset:   -1,
	})
}

// HasErrors returns true if there are any error-level diagnostics.
func (dl *DiagnosticList) HasErrors() bool {
	return dl.hasErrors
}

// Diagnostics returns all collected diagnostics.
func (dl *DiagnosticList) Diagnostics() []Diagnostic {
	return dl.diagnostics
}

// ErrorCount returns the number of error-level diagnostics.
func (dl *DiagnosticList) ErrorCount() int {
	count := 0
	for _, d := range dl.diagnostics {
		if d.Severity == Error {
			count++
		}
	}
	return count
}

// FormatDiagnostic formats a single diagnostic, pointing at the offending
// byte of the subject when the offset is known.
func FormatDiagnostic(d *Diagnostic) string {
	var sb strings.Builder

	sb.WriteString(d.Error())
	if d.Code != "" {
		sb.WriteString(fmt.Sprintf(" [%s]", d.Code))
	}
	sb.WriteByte('\n')

	if d.Offset >= 0 && d.Offset <= len(d.Subject) {
		sb.WriteString(fmt.Sprintf("    %s\n", d.Subject))
		sb.WriteString(strings.Repeat(" ", d.Offset+4) + "^\n")
	}

	return sb.String()
}

// ----------------------------------------------------------------------------
// Filtering
// ----------------------------------------------------------------------------

// Rules that configuration can adjust.
const (
	// RuleNoPolyfill fires when inverse or outerProduct is requested on an
	// operand no helper covers.
	RuleNoPolyfill = "no-polyfill"
	// RuleNativeBuiltin fires when the requested builtin is native to WGSL.
	RuleNativeBuiltin = "native-builtin"
)

// DefaultSeverity returns the severity of a rule when no filter overrides it.
func DefaultSeverity(rule string) Severity {
	switch rule {
	case RuleNoPolyfill:
		return Error
	case RuleNativeBuiltin:
		return Info
	default:
		return Warning
	}
}

// DiagnosticFilter controls which diagnostics are reported.
type DiagnosticFilter struct {
	// Rules maps diagnostic rule names to their severity override.
	// Off disables the diagnostic.
	Rules map[string]Severity

	// WarningsAsErrors promotes every warning produced by a rule to an error.
	WarningsAsErrors bool
}

// NewDiagnosticFilter creates a new filter with default settings.
func NewDiagnosticFilter() *DiagnosticFilter {
	return &DiagnosticFilter{
		Rules: make(map[string]Severity),
	}
}

// SetRule sets the severity for a diagnostic rule.
func (f *DiagnosticFilter) SetRule(rule string, severity Severity) {
	f.Rules[rule] = severity
}

// DisableRule disables a diagnostic rule.
func (f *DiagnosticFilter) DisableRule(rule string) {
	f.Rules[rule] = Off
}

// IsDisabled returns true if the rule is disabled.
func (f *DiagnosticFilter) IsDisabled(rule string) bool {
	if sev, ok := f.Rules[rule]; ok {
		return sev == Off
	}
	return false
}

// GetSeverity returns the severity for a rule, or the default if not set.
func (f *DiagnosticFilter) GetSeverity(rule string, defaultSev Severity) Severity {
	sev := defaultSev
	if s, ok := f.Rules[rule]; ok && s != Off {
		sev = s
	}
	if f.WarningsAsErrors && sev == Warning {
		sev = Error
	}
	return sev
}
