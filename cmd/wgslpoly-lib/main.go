// Package main provides a C-callable static library for WGSL polyfill resolution.
//
// This is built with -buildmode=c-archive to produce libwgslpoly.a
// that can be linked into Zig/C/Rust shader compilers.
//
// Build:
//
//	CGO_ENABLED=1 go build -buildmode=c-archive -o build/libwgslpoly.a ./cmd/wgslpoly-lib
//
// Exported functions:
//
//	wgslpoly_resolve(function, function_len, type, type_len, options_json, options_len, out_json, out_json_len) -> error_code
//	wgslpoly_resolve_batch(requests_json, requests_len, options_json, options_len, out_json, out_json_len) -> error_code
//	wgslpoly_table(out_json, out_json_len) -> error_code
//	wgslpoly_free(ptr) -> void
//	wgslpoly_version() -> *char
package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"encoding/json"
	"unsafe"

	"github.com/HugoDaniel/wgsl-polyfill/pkg/api"
)

const version = "0.1.0"

// cVersion is allocated once and lives for the life of the process.
var cVersion = C.CString(version)

// Error codes
const (
	WGSLPOLY_OK              = 0
	WGSLPOLY_ERR_JSON_ENCODE = 1
	WGSLPOLY_ERR_NULL_INPUT  = 2
	WGSLPOLY_ERR_JSON_DECODE = 3
)

// wgslpoly_resolve resolves one math call.
//
// Parameters:
//   - function, function_len: WGSL builtin name (UTF-8)
//   - type, type_len: operand type spelling, e.g. "mat3x3<f32>"
//   - options_json, options_len: JSON options (can be NULL for defaults)
//   - out_json, out_json_len: receive the JSON result (caller must free with wgslpoly_free)
//
// Returns 0 on success, WGSLPOLY_ERR_NULL_INPUT for a NULL pointer or a
// negative length. A request without a polyfill is still a success;
// the JSON result carries hasErrors and the diagnostics.
//
//export wgslpoly_resolve
func wgslpoly_resolve(
	function *C.char, function_len C.int,
	typ *C.char, type_len C.int,
	options_json *C.char, options_len C.int,
	out_json **C.char, out_json_len *C.int,
) C.int {
	if function == nil || typ == nil || out_json == nil || out_json_len == nil ||
		function_len < 0 || type_len < 0 {
		return WGSLPOLY_ERR_NULL_INPUT
	}

	opts, ok := decodeOptions(options_json, options_len)
	if !ok {
		return WGSLPOLY_ERR_JSON_DECODE
	}

	result := api.ResolveWithOptions(C.GoStringN(function, function_len), C.GoStringN(typ, type_len), opts)
	return writeJSON(result, out_json, out_json_len)
}

// wgslpoly_resolve_batch resolves a JSON array of {"function", "type"}
// objects and lists each helper once.
//
//export wgslpoly_resolve_batch
func wgslpoly_resolve_batch(
	requests_json *C.char, requests_len C.int,
	options_json *C.char, options_len C.int,
	out_json **C.char, out_json_len *C.int,
) C.int {
	if requests_json == nil || out_json == nil || out_json_len == nil || requests_len < 0 {
		return WGSLPOLY_ERR_NULL_INPUT
	}

	var requests []api.Request
	if err := json.Unmarshal([]byte(C.GoStringN(requests_json, requests_len)), &requests); err != nil {
		return WGSLPOLY_ERR_JSON_DECODE
	}
	opts, ok := decodeOptions(options_json, options_len)
	if !ok {
		return WGSLPOLY_ERR_JSON_DECODE
	}

	return writeJSON(api.ResolveBatch(requests, opts), out_json, out_json_len)
}

// wgslpoly_table writes every polyfill with its matrix shape as JSON.
//
//export wgslpoly_table
func wgslpoly_table(out_json **C.char, out_json_len *C.int) C.int {
	if out_json == nil || out_json_len == nil {
		return WGSLPOLY_ERR_NULL_INPUT
	}
	return writeJSON(api.Table(), out_json, out_json_len)
}

// wgslpoly_free frees memory allocated by wgslpoly functions.
//
//export wgslpoly_free
func wgslpoly_free(ptr *C.char) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}

// wgslpoly_version returns the library version string.
// The returned pointer is static and must NOT be freed.
//
//export wgslpoly_version
func wgslpoly_version() *C.char {
	return cVersion
}

func decodeOptions(options_json *C.char, options_len C.int) (api.Options, bool) {
	opts := api.DefaultOptions()
	if options_json == nil || options_len <= 0 {
		return opts, true
	}
	if err := json.Unmarshal([]byte(C.GoStringN(options_json, options_len)), &opts); err != nil {
		return opts, false
	}
	return opts, true
}

func writeJSON(v interface{}, out_json **C.char, out_json_len *C.int) C.int {
	data, err := json.Marshal(v)
	if err != nil {
		return WGSLPOLY_ERR_JSON_ENCODE
	}
	*out_json = C.CString(string(data))
	*out_json_len = C.int(len(data))
	return WGSLPOLY_OK
}

// Required for c-archive build mode
func main() {}
