// Package config handles loading wgslpoly configuration from files.
//
// Configuration can be specified in a JSON file named wgslpoly.json or
// .wgslpolyrc, or in YAML as wgslpoly.yaml or .wgslpolyrc.yaml. The config
// file is searched for in the current directory and parent directories.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/HugoDaniel/wgsl-polyfill/internal/diagnostic"
	"github.com/HugoDaniel/wgsl-polyfill/pkg/api"
)

// Output formats understood by the command line tool.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the configuration file structure.
// All fields are optional and will use default values if not specified.
type Config struct {
	// Strict reports warnings as errors
	Strict *bool `json:"strict,omitempty" yaml:"strict,omitempty"`

	// Format selects the command line output format ("text" or "json")
	Format *string `json:"format,omitempty" yaml:"format,omitempty"`

	// HelperPrefix starts every generated helper name
	HelperPrefix *string `json:"helperPrefix,omitempty" yaml:"helperPrefix,omitempty"`

	// Diagnostics maps rule names ("no-polyfill", "native-builtin") to a
	// severity ("error", "warning", "info", "note" or "off")
	Diagnostics map[string]string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ConfigFileNames are the names searched for config files, in order of preference.
var ConfigFileNames = []string{
	"wgslpoly.json",
	".wgslpolyrc",
	".wgslpolyrc.json",
	"wgslpoly.yaml",
	".wgslpolyrc.yaml",
}

// Load searches for a config file starting from the given directory
// and walking up to parent directories. Returns nil if no config file is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}

// Validate checks values that the decoder cannot.
func (c *Config) Validate() error {
	if c.Format != nil && *c.Format != FormatText && *c.Format != FormatJSON {
		return errors.Errorf("format must be %q or %q, got %q", FormatText, FormatJSON, *c.Format)
	}

	rules := make([]string, 0, len(c.Diagnostics))
	for rule := range c.Diagnostics {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	for _, rule := range rules {
		if rule != diagnostic.RuleNoPolyfill && rule != diagnostic.RuleNativeBuiltin {
			return errors.Errorf("unknown diagnostic rule %q", rule)
		}
		if _, ok := diagnostic.ParseSeverity(c.Diagnostics[rule]); !ok {
			return errors.Errorf("diagnostic rule %q: unknown severity %q", rule, c.Diagnostics[rule])
		}
	}
	return nil
}

// OutputFormat returns the configured format, defaulting to text.
func (c *Config) OutputFormat() string {
	if c != nil && c.Format != nil {
		return *c.Format
	}
	return FormatText
}

// ToOptions converts a Config to api.Options, using defaults for unset fields.
func (c *Config) ToOptions() api.Options {
	opts := api.DefaultOptions()

	if c.Strict != nil {
		opts.Strict = *c.Strict
	}
	if c.HelperPrefix != nil {
		opts.HelperPrefix = *c.HelperPrefix
	}
	if len(c.Diagnostics) > 0 {
		opts.Diagnostics = make(map[string]string, len(c.Diagnostics))
		for rule, severity := range c.Diagnostics {
			opts.Diagnostics[rule] = severity
		}
	}

	return opts
}

// MergeOptions holds CLI options. Nil means not specified on the CLI.
type MergeOptions struct {
	Strict       *bool
	HelperPrefix *string
}

// Merge merges CLI options with config file options.
// CLI options override config file options when specified.
func (c *Config) Merge(cli MergeOptions) api.Options {
	opts := c.ToOptions()

	if cli.Strict != nil {
		opts.Strict = *cli.Strict
	}
	if cli.HelperPrefix != nil {
		opts.HelperPrefix = *cli.HelperPrefix
	}

	return opts
}
