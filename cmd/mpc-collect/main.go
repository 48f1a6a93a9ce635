// Command mpc-collect resolves the MessagePack-serializable types of a type
// universe and writes the resulting catalogue.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	msgpackcodegen "github.com/wippyai/msgpack-codegen"
	"github.com/wippyai/msgpack-codegen/catalog"
	"github.com/wippyai/msgpack-codegen/collector"
	"github.com/wippyai/msgpack-codegen/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath    string
	input         string
	output        string
	format        string
	forceMap      bool
	allowInternal bool
	witNamespace  string
	fingerprint   bool
	summary       bool
	interactive   bool
	verbose       bool
}

func newFlagSet(f *cliFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("mpc-collect", pflag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.input, "input", "", "universe document (.yaml, .json) or WIT package graph (.wit.json)")
	fs.StringVarP(&f.output, "output", "o", "", "catalogue destination (default stdout)")
	fs.StringVar(&f.format, "format", "", "catalogue encoding: json, yaml or cbor")
	fs.BoolVar(&f.forceMap, "force-map", false, "serialize every object in map mode")
	fs.BoolVar(&f.allowInternal, "allow-internal", false, "include internal types")
	fs.StringVar(&f.witNamespace, "wit-namespace", "", "namespace prefix for WIT types")
	fs.BoolVar(&f.fingerprint, "fingerprint", false, "print the catalogue BLAKE3 fingerprint")
	fs.BoolVar(&f.summary, "summary", false, "print descriptor counts")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "browse the catalogue in a TUI")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "development logging at debug level")
	return fs
}

// applyFlags copies explicitly set flags over cfg; unset flags keep the
// file and environment values.
func applyFlags(fs *pflag.FlagSet, f *cliFlags, cfg *config.Config) {
	if fs.Changed("input") {
		cfg.Input = f.input
	}
	if fs.Changed("output") {
		cfg.Output = f.output
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("force-map") {
		cfg.ForceMap = f.forceMap
	}
	if fs.Changed("allow-internal") {
		cfg.AllowInternal = f.allowInternal
	}
	if fs.Changed("wit-namespace") {
		cfg.WitNamespace = f.witNamespace
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var f cliFlags
	fs := newFlagSet(&f)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 && !fs.Changed("input") {
		if err := fs.Set("input", fs.Arg(0)); err != nil {
			return err
		}
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(fs, &f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	collector.SetLogger(log)

	comp, err := msgpackcodegen.LoadCompilation(cfg.Input, msgpackcodegen.LoadOptions{WitNamespace: cfg.WitNamespace})
	if err != nil {
		return err
	}
	cat, err := msgpackcodegen.Collect(comp, collector.Options{
		ForceMap:      cfg.ForceMap,
		AllowInternal: cfg.AllowInternal,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	if f.interactive {
		return runInteractive(cat, cfg.Input)
	}

	data, err := catalog.Marshal(cat, cfg.CatalogFormat())
	if err != nil {
		return err
	}

	// reports go to stderr when the catalogue itself occupies stdout
	report := stdout
	if cfg.Output == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("write catalogue: %w", err)
		}
		report = stderr
	} else {
		if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
			return fmt.Errorf("write catalogue: %w", err)
		}
		log.Info("catalogue written", zap.String("path", cfg.Output), zap.Int("bytes", len(data)))
	}

	if f.summary {
		fmt.Fprintln(report, renderSummary(catalog.Summarize(cat), isTerminal(report)))
	}
	if f.fingerprint {
		sum, err := catalog.FingerprintHex(cat)
		if err != nil {
			return err
		}
		fmt.Fprintf(report, "fingerprint: %s\n", sum)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
