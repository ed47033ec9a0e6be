// Command wgslpoly reports which polyfill helper a WGSL backend must emit for
// math builtins the language lacks (inverse, outerProduct).
//
// Usage:
//
//	wgslpoly resolve <function> <type>
//	wgslpoly batch [file]
//	wgslpoly table
//
// Flags:
//
//	--config <file>          Use specific config file
//	--no-config              Ignore config files
//	--strict                 Report warnings as errors
//	--format <text|json>     Output format (default: text)
//	--helper-prefix <prefix> Prefix for helper names (default: _polyfill_)
//	-v, --verbose            Print the config file in use
//	--version                Print version and exit
//
// Config file:
//
//	wgslpoly looks for wgslpoly.json, .wgslpolyrc, .wgslpolyrc.json,
//	wgslpoly.yaml or .wgslpolyrc.yaml in the current directory and parent
//	directories. Config file options are overridden by CLI flags.
//
// Example wgslpoly.json:
//
//	{
//	    "strict": false,
//	    "format": "text",
//	    "helperPrefix": "_polyfill_",
//	    "diagnostics": {"native-builtin": "off"}
//	}
package main

import (
	"fmt"
	"os"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
