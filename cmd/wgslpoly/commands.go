package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/HugoDaniel/wgsl-polyfill/internal/config"
	"github.com/HugoDaniel/wgsl-polyfill/internal/diagnostic"
	"github.com/HugoDaniel/wgsl-polyfill/internal/planner"
	"github.com/HugoDaniel/wgsl-polyfill/pkg/api"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile   string
	noConfig     bool
	strict       bool
	format       string
	helperPrefix string
	verbose      bool
}

func (f *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configFile, "config", "", "Use specific config `file`")
	fs.BoolVar(&f.noConfig, "no-config", false, "Ignore config files")
	fs.BoolVar(&f.strict, "strict", false, "Report warnings as errors")
	fs.StringVar(&f.format, "format", "", "Output `format`: text or json (default text)")
	fs.StringVar(&f.helperPrefix, "helper-prefix", "", "Prefix for helper names")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Print the config file in use")
}

// settings is the result of merging the config file with CLI flags.
type settings struct {
	options api.Options
	format  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "wgslpoly",
		Short: "Resolve WGSL polyfill helpers for inverse and outerProduct",
		Long: "wgslpoly reports which helper function a WGSL backend must emit for math\n" +
			"builtins the language lacks, and names it once per module.",
		Version:       fmt.Sprintf("v%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags.register(root.PersistentFlags())
	root.AddCommand(
		newResolveCmd(flags),
		newBatchCmd(flags),
		newTableCmd(flags),
	)
	return root
}

func newResolveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <function> <type>",
		Short: "Resolve one math call",
		Example: "  wgslpoly resolve inverse mat3x3f\n" +
			"  wgslpoly resolve outerProduct 'mat4x2<f32>' --format json",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, flags, "")
			if err != nil {
				return err
			}

			// Types such as "mat4x2< f32 >" may arrive split across arguments.
			result := api.ResolveWithOptions(args[0], strings.Join(args[1:], " "), s.options)

			if s.format == config.FormatJSON {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				writeResolution(cmd.OutOrStdout(), result)
				writeDiagnostics(cmd.ErrOrStderr(), result.Diagnostics)
			}

			if result.HasErrors {
				return resolveError(result.Code)
			}
			return nil
		},
	}
}

func newBatchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file]",
		Short: "Resolve one math call per line and list the helpers to emit",
		Long: "batch reads lines of the form \"<function> <type>\" from a file or stdin.\n" +
			"Blank lines and lines starting with # are ignored.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				input    io.Reader = cmd.InOrStdin()
				startDir string
			)
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "reading input")
				}
				defer f.Close()
				input = f
				startDir = filepath.Dir(args[0])
			}

			s, err := loadSettings(cmd, flags, startDir)
			if err != nil {
				return err
			}

			requests, err := readRequests(input)
			if err != nil {
				return err
			}

			result := api.ResolveBatch(requests, s.options)

			if s.format == config.FormatJSON {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				for _, r := range result.Results {
					writeResolution(cmd.OutOrStdout(), r)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nhelpers (%d):\n", len(result.Helpers))
				for _, h := range result.Helpers {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", h.Name)
				}
				writeDiagnostics(cmd.ErrOrStderr(), result.Diagnostics)
			}

			if result.HasErrors {
				return errors.Errorf("%d request(s) have no polyfill", result.ErrorCount)
			}
			return nil
		},
	}
}

func newTableCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print every polyfill and the matrix shape it covers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, flags, "")
			if err != nil {
				return err
			}

			table := api.Table()
			if s.format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), table)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "POLYFILL\tFUNCTION\tCOLUMNS\tROWS")
			for _, e := range table {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", e.Polyfill, e.Function, e.Columns, e.Rows)
			}
			return w.Flush()
		},
	}
}

// loadSettings loads the config file (unless disabled) and applies CLI
// overrides. startDir is where the config search begins; empty means the
// working directory.
func loadSettings(cmd *cobra.Command, flags *globalFlags, startDir string) (settings, error) {
	var cfg *config.Config
	var configPath string

	if !flags.noConfig {
		var err error
		if flags.configFile != "" {
			cfg, err = config.LoadFile(flags.configFile)
			if err != nil {
				return settings{}, errors.Wrapf(err, "loading config file %s", flags.configFile)
			}
			configPath = flags.configFile
		} else {
			if startDir == "" {
				startDir, _ = os.Getwd()
			}
			cfg, configPath, err = config.Load(startDir)
			if err != nil {
				return settings{}, errors.Wrap(err, "loading config")
			}
		}
	}

	if flags.verbose && configPath != "" {
		cmd.PrintErrf("Using config: %s\n", configPath)
	}

	if cfg == nil {
		cfg = &config.Config{}
	}

	// Only flags given on the command line override the config file.
	cli := config.MergeOptions{}
	if cmd.Flags().Changed("strict") {
		cli.Strict = &flags.strict
	}
	if cmd.Flags().Changed("helper-prefix") {
		cli.HelperPrefix = &flags.helperPrefix
	}

	s := settings{
		options: cfg.Merge(cli),
		format:  cfg.OutputFormat(),
	}
	if cmd.Flags().Changed("format") {
		s.format = flags.format
	}
	if s.format != config.FormatText && s.format != config.FormatJSON {
		return settings{}, errors.Errorf("unknown format %q (want text or json)", s.format)
	}
	return s, nil
}

// readRequests parses "<function> <type>" lines.
func readRequests(r io.Reader) ([]api.Request, error) {
	var requests []api.Request
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		req, err := planner.ParseRequest(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		requests = append(requests, api.Request{Function: req.Function, Type: req.Type})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return requests, nil
}

// resolveError names the reason a single request failed.
func resolveError(code string) error {
	switch diagnostic.DiagnosticCode(code) {
	case diagnostic.CodeUnknownFunction:
		return errors.New("unknown math function")
	case diagnostic.CodeInvalidType:
		return errors.New("invalid operand type")
	case diagnostic.CodeNativeBuiltin:
		return errors.New("builtin is native to WGSL")
	default:
		return errors.New("no polyfill available")
	}
}

func writeResolution(w io.Writer, r api.ResolveResult) {
	switch {
	case r.Polyfill != "":
		fmt.Fprintf(w, "%s %s: %s width=%d helper=%s\n", r.Function, r.Type, r.Polyfill, r.Width, r.Helper)
	case r.Native:
		fmt.Fprintf(w, "%s %s: native\n", r.Function, r.Type)
	default:
		fmt.Fprintf(w, "%s %s: no polyfill\n", r.Function, r.Type)
	}
}

func writeDiagnostics(w io.Writer, diagnostics []string) {
	for _, d := range diagnostics {
		fmt.Fprintln(w, d)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "writing output")
}
