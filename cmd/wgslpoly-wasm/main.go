//go:build js && wasm

// Command wgslpoly-wasm is the WebAssembly build of the polyfill resolver.
// It exposes resolution functions to JavaScript via syscall/js.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/HugoDaniel/wgsl-polyfill/pkg/api"
)

var version = "0.1.0"

func main() {
	js.Global().Set("__wgslpoly", js.ValueOf(map[string]interface{}{
		"resolve":      js.FuncOf(resolveJS),
		"resolveBatch": js.FuncOf(resolveBatchJS),
		"table":        js.FuncOf(tableJS),
		"version":      version,
	}))

	// Keep the Go runtime alive
	select {}
}

// resolveJS is the JavaScript-callable resolve function.
// Signature: __wgslpoly.resolve(fn: string, type: string, options?: object) => object
func resolveJS(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("resolve requires 2 arguments (function, type)")
	}

	opts, err := parseOptions(args, 2)
	if err != nil {
		return makeError("invalid options: " + err.Error())
	}
	return toJS(api.ResolveWithOptions(args[0].String(), args[1].String(), opts))
}

// resolveBatchJS resolves an array of {function, type} objects.
// Signature: __wgslpoly.resolveBatch(requests: object[], options?: object) => object
func resolveBatchJS(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return makeError("resolveBatch requires an array of requests")
	}

	var requests []api.Request
	if err := json.Unmarshal([]byte(stringify(args[0])), &requests); err != nil {
		return makeError("invalid requests: " + err.Error())
	}
	opts, err := parseOptions(args, 1)
	if err != nil {
		return makeError("invalid options: " + err.Error())
	}
	return toJS(api.ResolveBatch(requests, opts))
}

// tableJS returns every polyfill with its matrix shape.
// Signature: __wgslpoly.table() => object[]
func tableJS(this js.Value, args []js.Value) interface{} {
	return toJS(api.Table())
}

// parseOptions reads the optional options object at args[i].
func parseOptions(args []js.Value, i int) (api.Options, error) {
	opts := api.DefaultOptions()
	if len(args) <= i || args[i].IsUndefined() || args[i].IsNull() {
		return opts, nil
	}
	err := json.Unmarshal([]byte(stringify(args[i])), &opts)
	return opts, err
}

func stringify(v js.Value) string {
	return js.Global().Get("JSON").Call("stringify", v).String()
}

// toJS converts a result to a plain JavaScript object by way of JSON, so
// field names match the JSON tags of the api package.
func toJS(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return makeError(err.Error())
	}
	return js.Global().Get("JSON").Call("parse", string(data))
}

// makeError creates a result object with an error.
func makeError(msg string) interface{} {
	return map[string]interface{}{
		"hasErrors":   true,
		"diagnostics": []interface{}{msg},
	}
}
